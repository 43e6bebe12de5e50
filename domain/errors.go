package domain

import "errors"

var (
	// ErrInvalidNamespace indicates a storage namespace with unsupported characters.
	ErrInvalidNamespace = errors.New("invalid storage namespace")

	// ErrThreadNotFound indicates the board no longer serves the requested thread.
	ErrThreadNotFound = errors.New("thread not found")

	// ErrStoreNotInitialized indicates a store write before Initialize attached storage.
	ErrStoreNotInitialized = errors.New("store not initialized")
)
