package taskstore

import "errors"

var (
	ErrDuplicateTitle = errors.New("a task with this title already exists")
)
