package service

import "errors"

// Domain error kinds. Handlers map these to HTTP statuses; anything else
// that bubbles out of a manager is a store-level failure and maps to 500.
var (
	// ErrNotFound means a referenced user, board or task id did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is authenticated but lacks the required
	// access level on the board.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict means the operation's semantic precondition failed:
	// duplicate subject or email registration, duplicate status label,
	// status still held by a task, duplicate board membership.
	ErrConflict = errors.New("conflict")

	// ErrBadRequest means a cross-reference in the request is invalid, e.g.
	// an assignee who is not a board participant.
	ErrBadRequest = errors.New("bad request")
)
