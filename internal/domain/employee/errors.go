package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNoEmployeeCode   = errors.New("no employee code linked to this account")
)
