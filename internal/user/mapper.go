package user

// ToDomain builds an unsaved user from a create or replace payload. The
// birth date must already be validated as present.
func ToDomain(req CreateOrReplaceRequest) User {
	u := User{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Address:     clonePtr(req.Address),
		PhoneNumber: clonePtr(req.PhoneNumber),
	}
	if req.BirthDate != nil {
		u.BirthDate = *req.BirthDate
	}
	return u
}

func ToResponse(u User) Response {
	return Response{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		BirthDate:   u.BirthDate,
		Address:     u.Address,
		PhoneNumber: u.PhoneNumber,
	}
}
