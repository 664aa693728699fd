package native

import (
	"fmt"
	"strings"
)

// LoadError reports a failure to open the shared library itself.
type LoadError struct {
	Path   string
	Detail string
}

func (e *LoadError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("kiwi: cannot load library %q", e.Path)
	}
	return fmt.Sprintf("kiwi: cannot load library %q: %s", e.Path, e.Detail)
}

// MissingSymbolError reports a required entry point absent from the library.
// The symbol name is always included so a truncated build is diagnosable.
type MissingSymbolError struct {
	Symbol string
}

func (e *MissingSymbolError) Error() string {
	return fmt.Sprintf("kiwi: required symbol %q not found in library", e.Symbol)
}

// CapabilityError reports a call into a feature group the loaded library
// does not provide. Missing lists the symbols that blocked the capability.
type CapabilityError struct {
	Capability Capability
	Missing    []string
}

func (e *CapabilityError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("kiwi: capability %q not available in loaded library", e.Capability)
	}
	return fmt.Sprintf("kiwi: capability %q not available (missing symbols: %s)",
		e.Capability, strings.Join(e.Missing, ", "))
}

// CallError reports a native call that signalled failure. Message carries
// the engine's own error text when one was set, otherwise a static fallback.
type CallError struct {
	Op      string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("kiwi: %s: %s", e.Op, e.Message)
}

// ArgumentError reports input rejected before reaching native code.
type ArgumentError struct {
	Reason string
}

func (e *ArgumentError) Error() string {
	return "kiwi: invalid argument: " + e.Reason
}

// StateError reports an operation on a handle that is closed or consumed.
type StateError struct {
	Handle string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("kiwi: %s handle is closed", e.Handle)
}
