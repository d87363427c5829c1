package submissionrepo

import "errors"

var (
	// ErrAlreadyExists indicates a submission already exists with the provided ID.
	ErrAlreadyExists = errors.New("submission already exists")

	// ErrInvalidID indicates the submission ID is empty or not in the expected format.
	ErrInvalidID = errors.New("invalid submission id")
)
