package storage

import "errors"

var (
	// ErrCorruptSnapshot is returned when stored snapshot can't be decoded.
	ErrCorruptSnapshot = errors.New("stored snapshot is corrupted")
	// ErrPersistence is returned when snapshot can't be saved.
	ErrPersistence = errors.New("can't persist snapshot")
)
