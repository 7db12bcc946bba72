/*
Package restore rebuilds graphs from persisted records and captures them back.

Reconstruction runs in phases. Every record is first instantiated through a
ports.NodeFactory; the created nodes are tracked per record so that renames
forced by name collisions never break a reference. Inputs and masks are then
wired, and finally parameter links are restored, recursing into nested
groups.

Problems such as missing plugins, version mismatches or dangling references
are collected as Anomaly values; they never abort the load.
*/
package restore
