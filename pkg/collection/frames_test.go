package collection_test

import (
	"testing"

	"github.com/aretw0/nodegraph/pkg/collection"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/effect"
	"github.com/aretw0/nodegraph/pkg/group"
	"github.com/stretchr/testify/assert"
)

func reader(name string, first, last int) *effect.Node {
	return effect.New("read", name,
		effect.WithCapabilities(domain.CapReader),
		effect.WithParams(
			domain.NewParam(effect.ParamFirstFrame, domain.ParamInt, first),
			domain.NewParam(effect.ParamLastFrame, domain.ParamInt, last),
		),
	)
}

func TestRecomputeFrameRange(t *testing.T) {
	tests := []struct {
		name        string
		ranges      [][2]int
		first, last int
		wantFirst   int
		wantLast    int
	}{
		{"Union", [][2]int{{1, 10}, {5, 20}, {0, 3}}, 100, 200, 0, 20},
		{"Single Reader Replaces", [][2]int{{10, 12}}, 1, 100, 10, 12},
		{"No Readers", nil, 1, 100, 1, 100},
		{"Unbounded Ignored", [][2]int{{effect.UnboundedFirst, 50}, {7, effect.UnboundedLast}}, 1, 100, 7, 50},
		{"Fully Unbounded", [][2]int{{effect.UnboundedFirst, effect.UnboundedLast}}, 3, 9, 3, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := collection.New()
			for i, r := range tt.ranges {
				c.AddNode(reader("Read"+string(rune('A'+i)), r[0], r[1]))
			}
			first, last := c.RecomputeFrameRangeForAllReaders(tt.first, tt.last)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestRecomputeFrameRange_Nested(t *testing.T) {
	c := collection.New()
	c.AddNode(reader("Read1", 10, 20))
	g := group.New(effect.New(domain.PluginIDGroup, "Group1"))
	c.AddNode(g)
	g.AddNode(reader("Read2", 1, 30))

	first, last := c.RecomputeFrameRangeForAllReaders(0, 0)
	assert.Equal(t, 1, first)
	assert.Equal(t, 30, last)
}
