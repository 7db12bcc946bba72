package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"

	"github.com/aretw0/nodegraph/internal/testutils"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const compDoc = `---
name: comp
version: 1
nodes:
  - plugin_id: fr.inria.built-in.Read
    name: Read1
    params:
      filename: plates/shot010.exr
  - plugin_id: net.sf.cimg.CImgBlur
    major: 4
    name: Blur1
    inputs:
      Source: Read1
    params:
      size: 2.5
---
Main comp for shot 010.`

func newLoader(repo core.Repository) *Loader {
	return New(loam.NewTypedRepository[GraphMetadata](repo))
}

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t)
	ctx := context.Background()

	docs := []core.Document{
		{ID: "comp.md", Content: compDoc},
		{ID: "empty.md", Content: "---\nname: empty\n---\nNothing yet."},
	}
	for _, d := range docs {
		require.NoError(t, repo.Save(ctx, d))
	}

	tests.GraphLoaderContractTest(t, newLoader(repo), map[string]int{
		"comp":  2,
		"empty": 0,
	})
}

func TestLoader_LoadGraph_DecodesRecords(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "comp.md"), []byte(compDoc), 0644))

	doc, err := newLoader(repo).LoadGraph(context.Background(), "comp")
	require.NoError(t, err)

	assert.Equal(t, "comp", doc.Name)
	require.Len(t, doc.Nodes, 2)

	blur := doc.Nodes[1]
	assert.Equal(t, "net.sf.cimg.CImgBlur", blur.PluginID)
	assert.Equal(t, 4, blur.MajorVersion)
	assert.Equal(t, map[string]string{"Source": "Read1"}, blur.Inputs)
	assert.Equal(t, 2.5, blur.Params["size"])
}

func TestLoader_LoadGraph_NameDefaultsToFile(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	content := `{
  "nodes": [{"plugin_id": "fr.inria.built-in.Read", "name": "Read1"}]
}`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "plate.json"), []byte(content), 0644))

	doc, err := newLoader(repo).LoadGraph(context.Background(), "plate")
	require.NoError(t, err)
	assert.Equal(t, "plate", doc.Name)
	assert.Len(t, doc.Nodes, 1)
}

func TestLoader_LoadGraph_Errors(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	loader := newLoader(repo)
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		_, err := loader.LoadGraph(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrGraphNotFound)
	})

	t.Run("record without plugin", func(t *testing.T) {
		content := "---\nnodes:\n  - name: Orphan1\n---\n"
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "broken.md"), []byte(content), 0644))

		_, err := loader.LoadGraph(ctx, "broken")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "plugin_id")
	})

	t.Run("newer version", func(t *testing.T) {
		content := "---\nversion: 99\nnodes: []\n---\n"
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "future.md"), []byte(content), 0644))

		_, err := loader.LoadGraph(ctx, "future")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "newer")
	})
}

func TestLoader_ListGraphs_NormalizesNames(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	subDir := filepath.Join(tmpDir, "shots", "s010")
	require.NoError(t, os.MkdirAll(subDir, 0755))

	files := map[string]string{
		filepath.Join(tmpDir, "comp.md"):    compDoc,
		filepath.Join(tmpDir, "plate.json"): `{"nodes": []}`,
		filepath.Join(subDir, "precomp.md"): "---\nnodes: []\n---\n",
	}
	for path, content := range files {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	names, err := newLoader(repo).ListGraphs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"comp", "plate", "shots/s010/precomp"}, names)
}

func TestLoader_ListGraphs_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"comp.md":   compDoc,
		"comp.json": `{"nodes": []}`,
	}
	for filename, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, filename), []byte(content), 0644))
	}

	_, err := newLoader(repo).ListGraphs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "comp")
}
