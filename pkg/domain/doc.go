/*
Package domain contains the core contracts of the node graph.

It defines the entities shared by every other package: the Node contract that
the external effect layer satisfies, the Collection contract implemented by the
top-level graph and by every group, the persisted Record shape, and the
structural hooks the graph emits. This package is kept pure and free of I/O,
following Hexagonal Architecture principles.

# Key Entities

  - Node: a processing node owned by the application and referenced by the graph.
  - Collection: an ordered, lock-guarded membership of nodes.
  - Container: a node that is also a collection (a group).
  - Record / Document: the abstract persisted shape consumed by reconstruction.
  - GraphHooks: structural-change notifications (removed, terminal activated, cleared).
*/
package domain
