package notifier

import "errors"

// ErrNotify is returned when any of message chunks couldn't be delivered.
var ErrNotify = errors.New("can't deliver notification")
