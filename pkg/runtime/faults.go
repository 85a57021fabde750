package runtime

import "fmt"

// FaultCode identifies a category of unrecoverable evaluation error.
type FaultCode string

const (
	FaultDivisionByZero     FaultCode = "DivisionByZero"
	FaultTypeError          FaultCode = "TypeError"
	FaultUndefinedVariable  FaultCode = "UndefinedVariable"
	FaultUndefinedField     FaultCode = "UndefinedField"
	FaultUndefinedMethod    FaultCode = "UndefinedMethod"
	FaultNonExhaustiveMatch FaultCode = "NonExhaustiveMatch"
	FaultImmutableMutation  FaultCode = "ImmutableMutation"
	FaultMisplacedControl   FaultCode = "MisplacedControlFlow"
	FaultIndexOutOfBounds   FaultCode = "IndexOutOfBounds"
	FaultArityMismatch      FaultCode = "ArityMismatch"
)

// Fault is an unrecoverable evaluation error. It aborts the enclosing
// evaluation; control-flow signals are ordinary and handled elsewhere.
type Fault struct {
	Code    FaultCode
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

// NewFault builds a fault with a formatted message.
func NewFault(code FaultCode, format string, args ...interface{}) *Fault {
	return &Fault{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsFault reports whether err is a fault with the given code.
func IsFault(err error, code FaultCode) bool {
	fault, ok := err.(*Fault)
	return ok && fault.Code == code
}

// AsFault unwraps err as a fault when possible.
func AsFault(err error) (*Fault, bool) {
	fault, ok := err.(*Fault)
	return fault, ok
}
