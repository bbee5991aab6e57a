package cache

import "errors"

// ErrNetwork is returned when a remote cache backend is unreachable.
var ErrNetwork = errors.New("network error")
