package domain

import "errors"

// Domain errors.
var (
	ErrEmptyTaskName            = errors.New("task name cannot be empty")
	ErrDuplicateTask            = errors.New("task already exists")
	ErrEmptyTaskID              = errors.New("task ID cannot be empty")
	ErrTaskNotFound             = errors.New("task not found")
	ErrInvalidEmail             = errors.New("invalid email address")
	ErrAlreadySubscribed        = errors.New("email already subscribed")
	ErrSubscriptionNotFound     = errors.New("no pending subscription for email")
	ErrVerificationCodeMismatch = errors.New("verification code does not match")
	ErrNotSubscribed            = errors.New("email is not subscribed")
	ErrConfigExists             = errors.New("config file already exists")
	ErrUnknownCodec             = errors.New("unknown storage format")
)

// rejections are the errors that mean "the request was refused" rather than
// "something went wrong". Callers that only need a yes/no answer map these to false.
var rejections = []error{
	ErrEmptyTaskName,
	ErrDuplicateTask,
	ErrEmptyTaskID,
	ErrTaskNotFound,
	ErrInvalidEmail,
	ErrAlreadySubscribed,
	ErrSubscriptionNotFound,
	ErrVerificationCodeMismatch,
	ErrNotSubscribed,
}

// IsRejection reports whether err is a validation or not-found error.
func IsRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}
