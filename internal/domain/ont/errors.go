package ont

import "errors"

var (
	ErrNotFound      = errors.New("ont not found")
	ErrAlreadyExists = errors.New("ont already exists")
)
