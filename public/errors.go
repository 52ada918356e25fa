package public

import "errors"

var (
	ErrInvalidCommand  = errors.New("invalid command")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDirOccupied     = errors.New("runtime directory is occupied by another instance")
)
