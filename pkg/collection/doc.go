// Package collection implements the ordered node membership of one graph level:
// recursive traversal, path lookup, naming, teardown and per-level utilities
// (path fixing, frame range aggregation, editability).
package collection
