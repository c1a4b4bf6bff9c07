package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrUnknownLogLevel is returned by Init for a level zerolog does not know.
	ErrUnknownLogLevel = errors.New("unknown log level")

	// ErrAppNameIsEmpty is returned if the app name of the log records is missing.
	ErrAppNameIsEmpty = errors.New("log app name is empty")

	// ErrServiceNameIsEmpty is returned if the service label of the log metrics is missing.
	ErrServiceNameIsEmpty = errors.New("log service name is empty")
)

// errorOutput receives the events zerolog failed to write.
var errorOutput io.Writer = os.Stderr //nolint:gochecknoglobals

// ErrorHandler reports a log event that could not be written. Access log and
// audit lines end up here when a log file can not be rotated or written.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(errorOutput, "rbac-admin: dropped log event: %v\n", err)
}
