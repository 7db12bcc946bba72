package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plugins = `plugins:
  - id: fr.inria.built-in.Read
    label: Read
    version: 1
    capabilities: [reader]
  - id: net.sf.cimg.CImgBlur
    label: BlurCImg
    version: 4
    inputs:
      - {label: Source}
    params:
      - {name: size, kind: float, default: 1.0}
`

const compV1 = `---
name: comp
nodes:
  - plugin_id: fr.inria.built-in.Read
    name: Read1
  - plugin_id: net.sf.cimg.CImgBlur
    major: 4
    name: Blur1
    inputs:
      Source: Read1
---
`

const compV2 = `---
name: comp_v2
nodes:
  - plugin_id: fr.inria.built-in.Read
    name: Read1
  - plugin_id: net.sf.cimg.CImgBlur
    major: 4
    name: Blur1
    inputs:
      Source: Ghost1
  - plugin_id: com.vendor.Grade
    name: Grade1
---
`

const compV3 = `---
name: comp_v3
nodes:
  - plugin_id: fr.inria.built-in.Read
    name: Read1
  - plugin_id: net.sf.cimg.CImgBlur
    major: 3
    name: Blur1
    inputs:
      Source: Read1
---
`

func setupRepo(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comp.md"), []byte(compV1), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comp_v2.md"), []byte(compV2), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comp_v3.md"), []byte(compV3), 0644))

	catalogue := filepath.Join(t.TempDir(), "plugins.yaml")
	require.NoError(t, os.WriteFile(catalogue, []byte(plugins), 0644))
	return dir, catalogue
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	dir, catalogue := setupRepo(t)

	out, err := run(t, "validate", "--dir", dir, "--plugins", catalogue, "comp")
	require.NoError(t, err)
	assert.Contains(t, out, "comp: 2 nodes, ok")

	out, err = run(t, "validate", "--dir", dir, "--plugins", catalogue, "comp_v2")
	require.Error(t, err)
	assert.Contains(t, out, "error: Blur1: input Source references unknown node Ghost1")
	assert.Contains(t, out, "warning: Grade1: plugin com.vendor.Grade not found")
	assert.Contains(t, out, "comp_v2: 1 errors")

	out, err = run(t, "validate", "--dir", dir, "--plugins", catalogue, "comp_v3")
	require.Error(t, err)
	assert.Contains(t, out, "warning: Blur1: saved with version 3, available version is 4")
	assert.Contains(t, out, "comp_v3: 2 nodes, 1 anomalies")
	assert.Contains(t, out, "version_mismatch")
}

func TestList(t *testing.T) {
	dir, catalogue := setupRepo(t)

	out, err := run(t, "list", "--dir", dir, "--plugins", catalogue)
	require.NoError(t, err)
	assert.Equal(t, "comp\ncomp_v2\ncomp_v3\n", out)
}

func TestGraph(t *testing.T) {
	dir, catalogue := setupRepo(t)

	out, err := run(t, "graph", "--dir", dir, "--plugins", catalogue, "--select", "Blur1", "comp")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, "Read1 --")
	assert.Contains(t, out, "class Blur1 selected")
}

func TestDiff(t *testing.T) {
	dir, catalogue := setupRepo(t)

	out, err := run(t, "diff", "--dir", dir, "--plugins", catalogue, "comp", "comp_v2")
	require.NoError(t, err)
	assert.Contains(t, out, `"added": [`)
	assert.Contains(t, out, `"Grade1"`)
	assert.Contains(t, out, `"Source": "Ghost1"`)

	out, err = run(t, "diff", "--dir", dir, "--plugins", catalogue, "comp", "comp")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExport(t *testing.T) {
	dir, catalogue := setupRepo(t)
	outDir := t.TempDir()

	out, err := run(t, "export", "--dir", dir, "--plugins", catalogue, "--out", outDir, "--format", "json", "comp_v2")
	require.NoError(t, err)
	assert.Contains(t, out, "exported comp_v2 (3 nodes, 2 anomalies)")

	data, err := os.ReadFile(filepath.Join(outDir, "comp_v2.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"plugin_id": "com.vendor.Grade"`, "stubs keep the missing plugin id")
	assert.NotContains(t, string(data), "Ghost1")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Regexp(t, `^nodegraph version \d+\.\d+\.\d+\n$`, out)
}

func TestMCP_UnknownTransport(t *testing.T) {
	dir, _ := setupRepo(t)
	_, err := run(t, "mcp", "--dir", dir, "--transport", "carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown transport "carrier-pigeon"`)
}
