/*
Package observability exposes Prometheus metrics for node graphs.

Metrics binds counters to the structural hooks of a collection (nodes added
and removed, group terminals, clears) and to the outcome of graph
restoration (anomalies by kind, restore duration). Each Metrics owns its
registry unless one is supplied, so several projects never collide.
*/
package observability
