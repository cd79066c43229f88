package service

import "errors"

// Failure taxonomy shared by all services. Handlers translate these into HTTP
// statuses at the boundary; anything else is a 500.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserLocked         = errors.New("account temporarily locked")
	ErrUsernameTaken      = errors.New("user already exists")
	ErrNotFound           = errors.New("not found")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	ErrLastAdmin          = errors.New("cannot delete the last admin account")
	ErrInvalidRole        = errors.New("role must be admin or editor")
	ErrInvalidStatus      = errors.New("status must be pending, completed or failed")
	ErrFileType           = errors.New("only images, videos and documents are allowed")
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
)
