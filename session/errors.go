package session

import "errors"

var (
	// ErrComponentSourceRequired is returned when a component source is not provided.
	ErrComponentSourceRequired = errors.New("component source required")

	// ErrVersionSourceRequired is returned when a version source is not provided.
	ErrVersionSourceRequired = errors.New("version source required")

	// ErrSessionNotReady is returned when querying a session that has not loaded.
	ErrSessionNotReady = errors.New("session not ready")
)
