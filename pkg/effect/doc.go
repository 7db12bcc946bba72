// Package effect is the in-process node layer: a Node type holding inputs,
// parameters and cancellable background work, and a Factory that instantiates
// nodes and groups from a plugin registry.
package effect
