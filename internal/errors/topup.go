package errors

var (
	ErrRequestNotFound = &DomainError{
		Code:    "REQUEST_NOT_FOUND",
		Message: "top-up request not found",
	}
	ErrRequestNotPending = &DomainError{
		Code:    "REQUEST_NOT_PENDING",
		Message: "top-up request has already been processed",
	}
	ErrNotRequestOwner = &DomainError{
		Code:    "NOT_REQUEST_OWNER",
		Message: "top-up request belongs to another user",
	}
	ErrInvalidTopupMethod = &DomainError{
		Code:    "INVALID_TOPUP_METHOD",
		Message: "unsupported top-up method",
	}
	ErrCardChargeFailed = &DomainError{
		Code:    "CARD_CHARGE_FAILED",
		Message: "card charge was declined",
	}
)
