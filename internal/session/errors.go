package session

import "errors"

var errWriterSinkClosed = errors.New("session: writer sink closed")
