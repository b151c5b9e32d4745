package console

import (
	"github.com/pkg/errors"
)

var (
	ErrSessionClosed = errors.New("console session closed")

	errUnknownCommand = errors.New("unknown command, type 'help' for the list")
	errBadArguments   = errors.New("bad command arguments")
)
