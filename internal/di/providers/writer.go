package providers

import (
	"io"
)

// LogWriter is where log output goes. It is registered by name so that
// tests and the CLI can supply their own.
type LogWriter = io.Writer

// LogWriterName is the service name LogWriter is registered under.
const LogWriterName = "log.writer"
