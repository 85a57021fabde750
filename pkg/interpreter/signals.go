package interpreter

import (
	"fmt"

	"ruchy/interpreter-go/pkg/runtime"
)

// Control-flow signals travel the error channel so evaluation unwinds
// without extra plumbing. Each signal is consumed by the construct that
// owns it: loops take break/continue, calls take return. A signal that
// escapes to module top level is a fault, not a result.

type breakSignal struct {
	label string
	value runtime.Value
}

func (s breakSignal) Error() string {
	if s.label != "" {
		return fmt.Sprintf("break %s outside loop", s.label)
	}
	return "break outside loop"
}

type continueSignal struct {
	label string
}

func (s continueSignal) Error() string {
	if s.label != "" {
		return fmt.Sprintf("continue %s outside loop", s.label)
	}
	return "continue outside loop"
}

type returnSignal struct {
	value runtime.Value
}

func (s returnSignal) Error() string { return "return outside function" }

// reclassifyTopLevelSignal converts a stray signal into a fault. Other
// errors pass through untouched.
func reclassifyTopLevelSignal(err error) error {
	switch err.(type) {
	case breakSignal, continueSignal, returnSignal:
		return runtime.NewFault(runtime.FaultMisplacedControl, "%s", err.Error())
	default:
		return err
	}
}

// isSignal reports whether err is any control-flow signal.
func isSignal(err error) bool {
	switch err.(type) {
	case breakSignal, continueSignal, returnSignal:
		return true
	default:
		return false
	}
}
