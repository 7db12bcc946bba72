/*
Package dsl provides a Go DSL for building graph documents in code.

It produces the same domain.Document a repository would hold, so a graph can
be written next to the code (or the test) that restores it:

	b := dsl.New("comp")

	b.Add("Read1", "fr.inria.built-in.Read").
		Param("filename", "[Project]/plates/a.####.exr")

	b.Add("Blur1", "net.sf.cimg.CImgBlur").
		Version(4).
		Input("Source", "Read1").
		Param("size", 2.5)

	b.Group("Group1", func(g *dsl.Builder) {
		g.Add("Input1", domain.PluginIDInput)
		g.Add("Output", domain.PluginIDOutput).Input("Source", "Input1")
	}).Input("1", "Blur1")

	store, err := b.Store()
	// ... pass store to nodegraph.New(..., nodegraph.WithStore(store))

Nodes keep the order they were added in, and adding a name twice returns the
existing node builder.
*/
package dsl
