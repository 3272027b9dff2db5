package platform

import (
	"errors"
)

// ErrAlreadyRunning is an error returned when cycle can't be started because previous cycle is not finished yet.
var ErrAlreadyRunning = errors.New("monitoring cycle already running")
