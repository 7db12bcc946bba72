package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownParam marks a persisted parameter its plugin does not declare.
var ErrUnknownParam = errors.New("unknown parameter")

// ParamError is a persisted parameter value rejected by its plugin's schema.
type ParamError struct {
	Node     string
	PluginID string
	Param    string
	Value    any
	Err      error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s (%s): parameter %q: %v", e.Node, e.PluginID, e.Param, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

// Unknown reports whether the parameter is not declared by the plugin.
func (e *ParamError) Unknown() bool { return errors.Is(e.Err, ErrUnknownParam) }

// RecordError collects the parameter errors of one record, sorted by name.
type RecordError struct {
	Node     string
	PluginID string
	Params   []*ParamError
}

func (e *RecordError) Error() string {
	if len(e.Params) == 1 {
		return e.Params[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): %d invalid parameters", e.Node, e.PluginID, len(e.Params))
	for _, p := range e.Params {
		fmt.Fprintf(&b, "\n  %s: %v", p.Param, p.Err)
	}
	return b.String()
}

// ParamErrors unwraps the parameter errors carried by err, if any.
func ParamErrors(err error) []*ParamError {
	var re *RecordError
	if errors.As(err, &re) {
		return re.Params
	}
	var pe *ParamError
	if errors.As(err, &pe) {
		return []*ParamError{pe}
	}
	return nil
}
