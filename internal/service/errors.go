package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrEmptySearchQuery = errors.New("empty search query")
	ErrEmptyCardID      = errors.New("empty card id")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
