package entity

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrDuplicate          = errors.New("record already exists")
)
