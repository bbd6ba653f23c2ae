package dao

import "errors"

var (
	ErrFailedToParseConfig    = errors.New("dao: failed to parse database configuration")
	ErrFailedToOpenConnection = errors.New("dao: failed to open database connection")
	ErrHealthcheckFailed      = errors.New("dao: healthcheck failed")
	ErrNoQuerier              = errors.New("dao: no querier attached")
	ErrEmptyConnectionString  = errors.New("dao: empty connection string")
	ErrTypeMismatch           = errors.New("dao: dao does not implement the requested type")
)
