package service

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownService  = errors.New("unknown service category")
	ErrMarkerNotFound  = errors.New("no marker for company")
	ErrInvalidCompany  = errors.New("invalid company")
)
