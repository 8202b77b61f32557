package worker

import "errors"

var (
	ErrWorkerNotFound  = errors.New("worker not found")
	ErrUsernameExists  = errors.New("username already exists")
	ErrProfileNotFound = errors.New("worker profile not found")
	ErrLastAdmin       = errors.New("cannot remove the last active admin")
)
