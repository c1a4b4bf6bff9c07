package logger

import "io"

// SetErrorOutput redirects ErrorHandler to w until the returned func is called.
func SetErrorOutput(w io.Writer) func() {
	prev := errorOutput
	errorOutput = w

	return func() { errorOutput = prev }
}
