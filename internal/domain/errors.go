package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateID         = errors.New("duplicate id")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnknownUser         = errors.New("unknown user")
	ErrInvalidArgument     = errors.New("invalid argument")
)
