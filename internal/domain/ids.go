package domain

// SubmissionID identifies a membership or contact submission.
type SubmissionID string

// ProgramID is an internal identifier for a persisted program entry.
// It is never exposed over the API; the list is addressed as a whole.
type ProgramID string
