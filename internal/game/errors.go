package game

import "errors"

var ErrSessionAborted = errors.New("session aborted")
