package errors

import "errors"

var (
	ErrInvalidTransition      = errors.New("command is not valid in the item's current state")
	ErrItemNotFound           = errors.New("deliberation item not found")
	ErrStageNotFound          = errors.New("deliberation stage not found")
	ErrValidation             = errors.New("deliberation input is invalid")
	ErrItemImmutable          = errors.New("deliberation item is in a terminal state")
	ErrCommitteeNotFound      = errors.New("committee not found")
	ErrConflict               = errors.New("deliberation write conflict")
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	ErrIdempotencyConflict    = errors.New("idempotency key conflict")
	ErrTaskNotFound           = errors.New("execution task not found")
)
