package user

import "github.com/oapi-codegen/nullable"

// CreateOrReplaceRequest is the full set of user fields accepted by create
// and replace.
type CreateOrReplaceRequest struct {
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	BirthDate   *Date   `json:"birth_date"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// PartialUpdateRequest carries only the fields a caller wants to change.
// Each field is unspecified, null or a value. A null on email, names or
// birth date leaves the field as is; a null on address or phone number
// clears it.
type PartialUpdateRequest struct {
	Email       nullable.Nullable[string] `json:"email"`
	FirstName   nullable.Nullable[string] `json:"first_name"`
	LastName    nullable.Nullable[string] `json:"last_name"`
	BirthDate   nullable.Nullable[Date]   `json:"birth_date"`
	Address     nullable.Nullable[string] `json:"address"`
	PhoneNumber nullable.Nullable[string] `json:"phone_number"`
}

// DateRange bounds a birth date query. Both ends are inclusive.
type DateRange struct {
	From *Date
	To   *Date
}
