package domain

import (
	"fmt"
	"sync"
)

// ParamKind classifies a parameter value.
type ParamKind string

const (
	ParamText  ParamKind = "text" // free text, never rewritten as a path
	ParamFile  ParamKind = "file"
	ParamPath  ParamKind = "path"
	ParamBool  ParamKind = "bool"
	ParamInt   ParamKind = "int"
	ParamFloat ParamKind = "float"
)

// Well-known parameter names.
const (
	// ParamEnvVars holds the project environment variables and is never path-fixed.
	ParamEnvVars = "envVars"
	// ParamTerminalMask flags a group-input terminal as a mask port.
	ParamTerminalMask = "mask"
	// ParamTerminalOptional flags a group-input terminal as an optional port.
	ParamTerminalOptional = "optional"
)

// ParamLink points a parameter at a parameter of another node.
type ParamLink struct {
	Node  Node
	Param string
}

// Param is a named, typed parameter value. It is safe for concurrent use.
type Param struct {
	name string
	kind ParamKind

	mu    sync.RWMutex
	value any
	link  *ParamLink
}

// NewParam creates a parameter holding an initial value.
func NewParam(name string, kind ParamKind, value any) *Param {
	return &Param{name: name, kind: kind, value: value}
}

func (p *Param) Name() string    { return p.name }
func (p *Param) Kind() ParamKind { return p.kind }

// IsPathLike reports whether the value is a file system path.
func (p *Param) IsPathLike() bool {
	return p.kind == ParamFile || p.kind == ParamPath
}

// Value returns the raw value.
func (p *Param) Value() any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// SetValue replaces the raw value.
func (p *Param) SetValue(v any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = v
}

// String returns the value formatted as a string.
func (p *Param) String() string {
	v := p.Value()
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bool returns the value as a boolean, false when it is not one.
func (p *Param) Bool() bool {
	b, _ := p.Value().(bool)
	return b
}

// Link returns the parameter this one is linked to, if any.
func (p *Param) Link() (ParamLink, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.link == nil {
		return ParamLink{}, false
	}
	return *p.link, true
}

// SetLink links this parameter to param on node.
func (p *Param) SetLink(node Node, param string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.link = &ParamLink{Node: node, Param: param}
}

// ClearLink removes the link.
func (p *Param) ClearLink() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.link = nil
}

// ParamStubPluginID holds, on a stub node, the plugin id that could not be found.
const ParamStubPluginID = "stubPluginId"
