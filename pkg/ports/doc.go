/*
Package ports defines the driven ports (interfaces) of the node graph core.

These interfaces decouple graph membership, naming and reconstruction from
the application around them: the effect layer that instantiates nodes, the
project that owns path tokens, the status channel shown while loading, and
the storage backends that persist graph documents.

# Key Interfaces

  - NodeFactory: Creates a node of a persisted record's plugin inside a collection.
  - StatusReporter: Receives progress messages during a load.
  - PathResolver: Rewrites project-relative file paths.
  - GraphLoader: Reads persisted graph documents (e.g., from Loam or Memory).
  - Watchable: Signals which graph changed, for loaders backed by files.
  - GraphStore: Reads and writes persisted graph documents.
  - DistributedLocker: Provides distributed locking for concurrent graph access.
*/
package ports
