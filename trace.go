/*------------------------------------------------------------------------------
* trace.go : leveled debug tracing
*-----------------------------------------------------------------------------*/
package sandtrack

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var traceMu sync.Mutex
var traceLevel int = 0
var traceOut io.Writer = os.Stderr

/* SetTraceLevel sets the global verbosity threshold; 0 disables tracing. */
func SetTraceLevel(level int) {
	traceMu.Lock()
	defer traceMu.Unlock()
	traceLevel = level
}

/* SetTraceOutput redirects trace output, e.g. to a log file opened by the CLI. */
func SetTraceOutput(w io.Writer) {
	traceMu.Lock()
	defer traceMu.Unlock()
	traceOut = w
}

/* Trace writes a formatted message when level is within the current threshold. */
func Trace(level int, format string, args ...interface{}) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if traceLevel <= 0 || level > traceLevel {
		return
	}
	fmt.Fprintf(traceOut, format, args...)
	fmt.Fprintln(traceOut)
}
