package domain

import "errors"

var (
	// ErrNetwork covers requests that could not complete or returned a
	// non-success status.
	ErrNetwork = errors.New("network error")

	// ErrEmptyResult is a successful response without usable data.
	ErrEmptyResult = errors.New("empty result")
)
