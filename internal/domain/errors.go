package domain

import "errors"

// Sentinel errors shared by the engines, services and handlers; match with errors.Is.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrMissingParameter = errors.New("missing parameter")
	ErrNoData           = errors.New("no league data found")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrMalformedInput   = errors.New("malformed input")
)
