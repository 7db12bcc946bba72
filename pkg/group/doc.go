/*
Package group implements nested sub-graphs.

A Group is both a domain.Node, by delegating to the effect node that
represents it in its parent, and a domain.Collection, through a nested
collection.Collection. Its formal input ports are derived from the
group-input terminals it contains, in the order they were activated; its
output is the single group-output terminal.

AutoConnect implements the wiring heuristic used when a node is created while
another one is selected.
*/
package group
