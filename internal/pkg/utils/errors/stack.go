package errors

import (
	"fmt"
	"runtime"
)

const stackDepth = 32

// StackTrace contains program counters of the callers, see runtime.Callers.
type StackTrace []uintptr

type stackTracer interface {
	StackTrace() StackTrace
}

// FileLine returns the location of the first frame.
func (s StackTrace) FileLine() (file string, line int, ok bool) {
	if len(s) == 0 {
		return "", 0, false
	}
	frame, _ := runtime.CallersFrames(s[:1]).Next()
	return frame.File, frame.Line, frame.File != ""
}

func (s StackTrace) String() string {
	if file, line, ok := s.FileLine(); ok {
		return fmt.Sprintf("%s:%d", file, line)
	}
	return ""
}

// callers skips runtime.Callers, callers and the constructor of the error.
func callers() StackTrace {
	var pcs [stackDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[0:n]
}
