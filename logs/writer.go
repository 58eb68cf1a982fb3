package logs

import (
	"fmt"
	"io"
	"os"

	"github.com/reusee/amc/cmds"
)

var logFile = cmds.Var[string]("-log-file", "append logs to this file instead of stderr")

// Writer receives the terminal logs.
type Writer io.Writer

func (Module) Writer() Writer {
	if *logFile == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		return os.Stderr
	}
	return f
}
