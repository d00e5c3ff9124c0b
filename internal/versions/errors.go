package versions

import "errors"

var (
	ErrNotFound      = errors.New("version not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrTokenConflict = errors.New("public token already in use")
)
