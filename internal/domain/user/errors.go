package user

import "errors"

var (
	ErrManagerAccessRequired = errors.New("manager access required")
)
