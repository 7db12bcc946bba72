/*
Package nodegraph is the structural core of a node-based compositing graph.

It manages which processing nodes belong to which graph level, nests groups
inside groups, keeps every node name unique and script-safe, wires newly
created nodes to the selection, and rebuilds persisted graphs in two phases
so references survive the renames a load may cause. Rendering, parameter
evaluation and user interfaces stay outside and are reached through ports.

# Architecture

The library follows a hexagonal layout:

  - pkg/domain: node, collection and record contracts, sentinel errors, hooks.
  - pkg/naming, pkg/collection, pkg/group, pkg/restore: the core.
  - pkg/ports: the interfaces the core is driven through (factory, storage, locks).
  - pkg/adapters: memory, file, Redis and Loam storage, and an HTTP surface.

# Usage

	proj, err := nodegraph.New("./shots/s010",
		nodegraph.WithPluginFile("plugins.yaml"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer proj.Close()

	res, err := proj.Load(ctx, "comp")
	if err != nil {
		log.Fatal(err)
	}
	for _, a := range res.Anomalies {
		log.Println(a)
	}

	for _, n := range proj.Root().ActiveNodesExpandGroups() {
		fmt.Println(n.ScriptName())
	}

Loading never stops at the first problem: unknown plugins become pass-through
stubs, unresolved references are skipped, and each case is reported as an
Anomaly in the returned Result.

# Storage

By default graphs are read from a Loam repository (Markdown or YAML front
matter, or JSON). Inject a ports.GraphStore with WithStore to save as well:

	store := file.New(".nodegraph/graphs", codec.FormatYAML)
	proj, _ := nodegraph.New("", nodegraph.WithStore(store))
	_ = proj.Save(ctx, "comp")

Redis stores share graphs across replicas; WithLocker serialises their
saves through a distributed lock.
*/
package nodegraph
