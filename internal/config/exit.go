package config

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
)

// Exit statuses of the titfortat command.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitInterrupted = 130
)

// ExitCode reports err on w and returns the status titfortat exits with.
// A help request has already printed usage, so it is not an error.
func ExitCode(w io.Writer, err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(w, "titfortat: interrupted")
		return ExitInterrupted
	}
	fmt.Fprintf(w, "titfortat: %v\n", err)
	return ExitError
}
