package errors

var (
	ErrEmailTaken = &DomainError{
		Code:    "EMAIL_TAKEN",
		Message: "email is already registered",
	}
	ErrInvalidRegistration = &DomainError{
		Code:    "INVALID_REGISTRATION",
		Message: "registration details are invalid",
	}
)
