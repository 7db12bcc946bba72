package group_test

import (
	"testing"

	"github.com/aretw0/nodegraph/pkg/collection"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/effect"
	"github.com/aretw0/nodegraph/pkg/group"
	"github.com/stretchr/testify/assert"
)

func TestAutoConnect(t *testing.T) {
	writer := func(name string) *effect.Node {
		return effect.New("write", name,
			effect.WithCapabilities(domain.CapOutputTerminal),
			effect.WithInputs(domain.InputSpec{Label: "Source"}),
		)
	}
	merge := func(name string) *effect.Node {
		return effect.New("merge", name, effect.WithInputs(
			domain.InputSpec{Label: "A"},
			domain.InputSpec{Label: "B"},
			domain.InputSpec{Label: "Mask", Mask: true},
		))
	}
	source := func(name string) *effect.Node {
		return effect.New("read", name)
	}

	t.Run("Output Selected Takes Created", func(t *testing.T) {
		c := collection.New()
		w, m := writer("Write1"), merge("Merge1")
		c.AddNode(w)
		c.AddNode(m)

		assert.True(t, group.AutoConnect(w, m))
		assert.Same(t, m, w.Input(0))
	})

	t.Run("Two Outputs", func(t *testing.T) {
		c := collection.New()
		a, b := writer("Write1"), writer("Write2")
		c.AddNode(a)
		c.AddNode(b)

		assert.False(t, group.AutoConnect(a, b))
		assert.Nil(t, a.Input(0))
		assert.Nil(t, b.Input(0))
	})

	t.Run("Two Sources", func(t *testing.T) {
		c := collection.New()
		a, b := source("Read1"), source("Read2")
		c.AddNode(a)
		c.AddNode(b)
		assert.False(t, group.AutoConnect(a, b))
	})

	t.Run("Same Or Nil", func(t *testing.T) {
		m := merge("Merge1")
		assert.False(t, group.AutoConnect(m, m))
		assert.False(t, group.AutoConnect(nil, m))
	})

	t.Run("Created Source Feeds Selected", func(t *testing.T) {
		c := collection.New()
		m, r := merge("Merge1"), source("Read1")
		c.AddNode(m)
		c.AddNode(r)

		assert.True(t, group.AutoConnect(m, r))
		assert.Same(t, r, m.Input(0))
	})

	t.Run("Splice Between Consumers", func(t *testing.T) {
		c := collection.New()
		r := source("Read1")
		grade := filter("grade", "Grade1")
		m := merge("Merge1")
		blur := filter("blur", "Blur1")
		for _, n := range []domain.Node{r, grade, m, blur} {
			c.AddNode(n)
		}
		grade.SwapInput(r, 0)
		m.SwapInput(r, 1)

		assert.True(t, group.AutoConnect(r, blur))
		assert.Same(t, r, blur.Input(0))
		assert.Same(t, blur, grade.Input(0))
		assert.Same(t, blur, m.Input(1))
		assert.Nil(t, m.Input(0))
	})

	t.Run("Created Output Does Not Splice", func(t *testing.T) {
		c := collection.New()
		blur := filter("blur", "Blur1")
		grade := filter("grade", "Grade1")
		w := writer("Write1")
		for _, n := range []domain.Node{blur, grade, w} {
			c.AddNode(n)
		}
		grade.SwapInput(blur, 0)

		assert.True(t, group.AutoConnect(blur, w))
		assert.Same(t, blur, w.Input(0))
		assert.Same(t, blur, grade.Input(0))
	})

	t.Run("Only Mask Inputs", func(t *testing.T) {
		c := collection.New()
		w := effect.New("write", "Write1",
			effect.WithCapabilities(domain.CapOutputTerminal),
			effect.WithInputs(domain.InputSpec{Label: "Mask", Mask: true}),
		)
		blur := filter("blur", "Blur1")
		c.AddNode(w)
		c.AddNode(blur)
		assert.False(t, group.AutoConnect(w, blur))
	})
}
