package core

import "errors"

// ErrInvalidRequest marks a request that cannot be served at all: no
// transcript and ASR disabled, or a request referencing an unknown
// backend name. Callers surface this with a 422-class status.
var ErrInvalidRequest = errors.New("core: invalid alignment request")
