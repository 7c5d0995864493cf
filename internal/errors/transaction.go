package errors

var (
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient wallet balance",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "amount must be positive",
	}
	ErrInvalidRequest = &DomainError{
		Code:    "INVALID_REQUEST",
		Message: "invalid transaction request",
	}
	ErrSelfTransfer = &DomainError{
		Code:    "SELF_TRANSFER",
		Message: "cannot transfer to the same wallet",
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrWalletBlocked = &DomainError{
		Code:    "WALLET_BLOCKED",
		Message: "wallet is blocked",
	}
	// ErrTransferExceedsLimit fires when a single transfer alone is over
	// the daily cap; ErrDailyLimitExceeded when history plus the current
	// transfer is.
	ErrTransferExceedsLimit = &DomainError{
		Code:    "TRANSFER_EXCEEDS_LIMIT",
		Message: "transaction exceeds daily limit",
	}
	ErrDailyLimitExceeded = &DomainError{
		Code:    "DAILY_LIMIT_EXCEEDED",
		Message: "daily transfer limit exceeded",
	}
	ErrConfigurationMissing = &DomainError{
		Code:    "CONFIGURATION_MISSING",
		Message: "required configuration value is missing",
	}
)
