package naming_test

import (
	"testing"

	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptFriendly(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Blur", "Blur"},
		{"Color Correct", "Color_Correct"},
		{"Grade-2", "Grade2"},
		{"Crème", "Creme"},
		{"3D", "_3D"},
		{"from", "pFrom"},
		{"under_score", "under_score"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, naming.ScriptFriendly(tt.in))
		})
	}
}

func TestBaseFromLabel(t *testing.T) {
	assert.Equal(t, "Blur", naming.BaseFromLabel("BlurOFX"))
	assert.Equal(t, "OFX", naming.BaseFromLabel("OFX"))
	assert.Equal(t, "Merge", naming.BaseFromLabel("Merge"))
}

func takenSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(s string) bool { return set[s] }
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("AppendDigitStartsAtOne", func(t *testing.T) {
		r := naming.Resolver{Taken: takenSet()}
		name, err := r.Resolve("Blur", true, false)
		require.NoError(t, err)
		assert.Equal(t, "Blur1", name)
	})

	t.Run("AppendDigitSkipsTaken", func(t *testing.T) {
		r := naming.Resolver{Taken: takenSet("Blur1", "Blur2")}
		name, err := r.Resolve("Blur", true, false)
		require.NoError(t, err)
		assert.Equal(t, "Blur3", name)
	})

	t.Run("ExactNameFree", func(t *testing.T) {
		r := naming.Resolver{Taken: takenSet("Blur1")}
		name, err := r.Resolve("Blur", false, false)
		require.NoError(t, err)
		assert.Equal(t, "Blur", name)
	})

	t.Run("ExactNameTaken", func(t *testing.T) {
		r := naming.Resolver{Taken: takenSet("Blur")}
		_, err := r.Resolve("Blur", false, false)
		assert.ErrorIs(t, err, domain.ErrNameExists)
	})

	t.Run("ErrorIfExistsWithDigit", func(t *testing.T) {
		r := naming.Resolver{Taken: takenSet("Blur1")}
		_, err := r.Resolve("Blur", true, true)
		assert.ErrorIs(t, err, domain.ErrNameExists)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := naming.Resolver{}.Resolve("", true, false)
		assert.ErrorIs(t, err, domain.ErrInvalidName)
	})

	t.Run("NormalisesToNothing", func(t *testing.T) {
		_, err := naming.Resolver{}.Resolve("***", true, false)
		assert.ErrorIs(t, err, domain.ErrInvalidName)
	})

	t.Run("ReservedByGroupParam", func(t *testing.T) {
		r := naming.Resolver{Reserved: takenSet("mix")}
		_, err := r.Resolve("mix", false, false)
		assert.ErrorIs(t, err, domain.ErrNameConflict)
	})

	t.Run("NormalisedBeforeLookup", func(t *testing.T) {
		r := naming.Resolver{Taken: takenSet("Color_Correct1")}
		name, err := r.Resolve("Color Correct", true, false)
		require.NoError(t, err)
		assert.Equal(t, "Color_Correct2", name)
	})
}

func TestSplit(t *testing.T) {
	name, rest := naming.SplitLeftToRight("Group1.Inner.Blur1")
	assert.Equal(t, "Group1", name)
	assert.Equal(t, "Inner.Blur1", rest)

	name, rest = naming.SplitLeftToRight("Blur1")
	assert.Equal(t, "Blur1", name)
	assert.Empty(t, rest)

	name, rest = naming.SplitRightToLeft("Group1.Inner.size")
	assert.Equal(t, "size", name)
	assert.Equal(t, "Group1.Inner", rest)

	name, rest = naming.SplitRightToLeft("size")
	assert.Equal(t, "size", name)
	assert.Empty(t, rest)
}
