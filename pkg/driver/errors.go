package driver

import "errors"

var (
	ErrLostItem      = errors.New("item was produced but never consumed")
	ErrDuplicateItem = errors.New("item was consumed more than once")
	ErrUnknownItem   = errors.New("item was consumed but never produced")
	ErrOutOfOrder    = errors.New("items from one producer consumed out of order")
)
