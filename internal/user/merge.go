package user

import "github.com/oapi-codegen/nullable"

// Merge returns existing with every field of req that carries a value
// applied. Unspecified fields, and nulls on required fields, keep their
// current value. A null address or phone number clears it. The ID is never
// changed and req is expected to be validated already.
func Merge(existing User, req PartialUpdateRequest) User {
	merged := existing

	if v, err := req.Email.Get(); err == nil {
		merged.Email = v
	}
	if v, err := req.FirstName.Get(); err == nil {
		merged.FirstName = v
	}
	if v, err := req.LastName.Get(); err == nil {
		merged.LastName = v
	}
	if v, err := req.BirthDate.Get(); err == nil {
		merged.BirthDate = v
	}
	if req.Address.IsSpecified() {
		merged.Address = optionalValue(req.Address)
	}
	if req.PhoneNumber.IsSpecified() {
		merged.PhoneNumber = optionalValue(req.PhoneNumber)
	}

	return merged
}

// optionalValue maps a specified field onto a nullable column: nil for null.
func optionalValue(n nullable.Nullable[string]) *string {
	v, err := n.Get()
	if err != nil {
		return nil
	}
	return &v
}

// clonePtr keeps the user from aliasing memory owned by the request.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
