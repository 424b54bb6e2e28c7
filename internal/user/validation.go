package user

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldBirthDate = "birth_date"
	FieldFrom      = "from"
	FieldTo        = "to"

	// AdultAge is the minimum age accepted on create and replace.
	AdultAge = 18
)

const (
	msgNotBlank      = "must not be blank"
	msgNotNull       = "must not be null"
	msgInvalidEmail  = "Invalid email format"
	msgAdult         = "The user must be at least 18 years old"
	msgPastDate      = "Birth date must be in the past"
	msgRangeOrdering = "The 'from' date must be before the 'to' date"
)

// Violation is a single failed rule. Field is empty for range-level rules.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + " " + v.Message
}

// ValidationError aggregates every violation found in one request.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.String())
	}
	return msgs
}

// Validator runs the input rules. Date rules take the evaluation day as an
// argument so callers control the clock.
type Validator struct {
	fields *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{fields: validator.New()}
}

// violations collects rule results in evaluation order.
type violations []Violation

func (vs *violations) add(field, message string) {
	*vs = append(*vs, Violation{Field: field, Message: message})
}

func (vs violations) err() error {
	if len(vs) == 0 {
		return nil
	}
	return &ValidationError{Violations: vs}
}

// ValidEmail reports whether s has the local-part@domain shape.
func (v *Validator) ValidEmail(s string) bool {
	return v.fields.Var(s, "email") == nil
}

func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsAdult reports whether someone born on birthDate is at least AdultAge
// years old on today. A nil birth date passes; required-ness is a separate
// rule.
func IsAdult(birthDate *Date, today Date) bool {
	if birthDate == nil {
		return true
	}
	return yearsBetween(*birthDate, today) >= AdultAge
}

// InPast reports whether birthDate is strictly before today. Nil passes.
func InPast(birthDate *Date, today Date) bool {
	if birthDate == nil {
		return true
	}
	return birthDate.Before(today)
}

// Ordered reports whether from is strictly before to. Nil ends pass.
func Ordered(from, to *Date) bool {
	if from == nil || to == nil {
		return true
	}
	return from.Before(*to)
}

// CreateOrReplace checks a full user payload.
func (v *Validator) CreateOrReplace(req CreateOrReplaceRequest, today Date) error {
	var vs violations

	if !NotBlank(req.Email) {
		vs.add(FieldEmail, msgNotBlank)
	} else if !v.ValidEmail(req.Email) {
		vs.add(FieldEmail, msgInvalidEmail)
	}
	if !NotBlank(req.FirstName) {
		vs.add(FieldFirstName, msgNotBlank)
	}
	if !NotBlank(req.LastName) {
		vs.add(FieldLastName, msgNotBlank)
	}
	if req.BirthDate == nil {
		vs.add(FieldBirthDate, msgNotNull)
	}
	if !IsAdult(req.BirthDate, today) {
		vs.add(FieldBirthDate, msgAdult)
	}

	return vs.err()
}

// PartialUpdate checks only the fields of req that carry a value and have a
// format constraint.
func (v *Validator) PartialUpdate(req PartialUpdateRequest, today Date) error {
	var vs violations

	if email, err := req.Email.Get(); err == nil && !v.ValidEmail(email) {
		vs.add(FieldEmail, msgInvalidEmail)
	}
	if birthDate, err := req.BirthDate.Get(); err == nil && !InPast(&birthDate, today) {
		vs.add(FieldBirthDate, msgPastDate)
	}

	return vs.err()
}

// DateRange checks a birth date query. Ordering is only evaluated once both
// ends are set.
func (v *Validator) DateRange(rng DateRange) error {
	var vs violations

	if rng.From == nil {
		vs.add(FieldFrom, msgNotNull)
	}
	if rng.To == nil {
		vs.add(FieldTo, msgNotNull)
	}
	if !Ordered(rng.From, rng.To) {
		vs.add("", msgRangeOrdering)
	}

	return vs.err()
}
