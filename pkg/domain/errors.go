package domain

import "errors"

// ErrInvalidName is returned when a script name is empty or normalises to nothing.
var ErrInvalidName = errors.New("invalid script-name")

// ErrNameConflict is returned when a script name collides with a parameter of the enclosing group.
// Parameters and nested nodes share one scripting namespace.
var ErrNameConflict = errors.New("script-name conflicts with a group parameter")

// ErrNameExists is returned when exact-name semantics were requested and the name is taken.
var ErrNameExists = errors.New("a node with this script-name already exists")

// ErrPluginNotFound is returned by factories that cannot create a plugin.
var ErrPluginNotFound = errors.New("plugin not found")

// ErrGraphNotFound is returned when a persisted graph cannot be found in a store.
var ErrGraphNotFound = errors.New("graph not found")
