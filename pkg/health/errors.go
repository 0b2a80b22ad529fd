package health

import "errors"

// ErrCheckTimeout is reported for a check still running when the probe deadline passes.
var ErrCheckTimeout = errors.New("health: check timeout")
