package errors

var (
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "transaction not found or not completed",
	}
	ErrInvalidRefundTarget = &DomainError{
		Code:    "INVALID_REFUND_TARGET",
		Message: "transaction cannot be refunded",
	}
	ErrDuplicateReference = &DomainError{
		Code:    "DUPLICATE_REFERENCE",
		Message: "reference number already exists",
	}
	ErrInvalidStatusTransition = &DomainError{
		Code:    "INVALID_STATUS_TRANSITION",
		Message: "transaction status transition not allowed",
	}
)
