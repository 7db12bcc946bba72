package domain

// Built-in plugin identifiers.
const (
	PluginIDGroup  = "net.sf.nodegraph.group"
	PluginIDInput  = "net.sf.nodegraph.input"
	PluginIDOutput = "net.sf.nodegraph.output"
	// PluginIDStub is the pass-through node substituted for missing plugins.
	PluginIDStub = "net.sf.nodegraph.stub"
)

// TopLevelLabel names the root collection in events and status messages.
const TopLevelLabel = "top-level"
