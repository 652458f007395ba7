package resources

import "errors"

var errPanicked = errors.New("video provider panicked")
