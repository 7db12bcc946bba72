package collection_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/nodegraph/pkg/collection"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/effect"
	"github.com/aretw0/nodegraph/pkg/group"
	"github.com/stretchr/testify/assert"
)

func TestClearNodes_DestroysNestedFirst(t *testing.T) {
	var order []string
	record := func(n *effect.Node) { order = append(order, n.ScriptName()) }

	top := collection.New()
	g := group.New(effect.New(domain.PluginIDGroup, "Group1", effect.WithOnDestroy(record)))
	top.AddNode(newNode("read", "Read1", effect.WithOnDestroy(record)))
	top.AddNode(g)
	inner := newNode("blur", "Blur1", effect.WithOnDestroy(record))
	g.AddNode(inner)

	top.ClearNodes(true)

	assert.Equal(t, []string{"Blur1", "Read1", "Group1"}, order)
	assert.False(t, top.HasNodes())
	assert.False(t, g.Members().HasNodes())
	assert.True(t, inner.Destroyed())
}

func TestClearNodes_BlockingWaitsForWork(t *testing.T) {
	top := collection.New()
	n := newNode("render", "Render1")
	top.AddNode(n)

	var finished atomic.Bool
	started := make(chan struct{})
	n.Go(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
	})
	<-started

	top.ClearNodes(true)
	assert.True(t, finished.Load(), "blocking clear must wait for in-flight work")
}

func TestQuitAnyProcessing_Recurses(t *testing.T) {
	top := collection.New()
	g := group.New(effect.New(domain.PluginIDGroup, "Group1"))
	top.AddNode(g)
	inner := newNode("render", "Render1")
	g.AddNode(inner)

	done := make(chan struct{})
	inner.Go(func(ctx context.Context) {
		<-ctx.Done()
		close(done)
	})

	top.QuitAnyProcessing(true)
	select {
	case <-done:
	default:
		t.Fatal("nested work was not stopped")
	}
	assert.True(t, top.HasNodes(), "quitting keeps the membership")
}
