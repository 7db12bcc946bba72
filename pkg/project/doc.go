/*
Package project serialises access to persisted graphs.

A Manager wraps a ports.GraphStore and guarantees that loads, saves and
read-modify-write updates of the same graph never interleave, within one
process through reference-counted mutexes and across replicas through an
optional ports.DistributedLocker.
*/
package project
