package restore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/nodegraph/internal/logging"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/ports"
)

// Flags alter how references are resolved.
type Flags uint8

const (
	FlagNone Flags = 0
	// FlagConnectToExternalNodes lets an input reference that is not part of
	// the batch fall back to any node of the target collection.
	FlagConnectToExternalNodes Flags = 1 << 0
)

// Restorer rebuilds graphs from persisted records.
type Restorer struct {
	factory   ports.NodeFactory
	logger    *slog.Logger
	reporter  ports.StatusReporter
	observers []func(Anomaly)
}

// Option configures a Restorer.
type Option func(*Restorer)

// WithLogger sets the error/warning log sink.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Restorer) {
		r.logger = logger
	}
}

// WithStatusReporter sets the channel receiving load progress messages.
func WithStatusReporter(reporter ports.StatusReporter) Option {
	return func(r *Restorer) {
		r.reporter = reporter
	}
}

// WithAnomalyObserver registers a callback invoked for every anomaly.
func WithAnomalyObserver(fn func(Anomaly)) Option {
	return func(r *Restorer) {
		r.observers = append(r.observers, fn)
	}
}

// New creates a Restorer instantiating nodes through factory.
func New(factory ports.NodeFactory, opts ...Option) *Restorer {
	r := &Restorer{
		factory: factory,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// created pairs a record with the node instantiated from it. Records, not
// names, are the key: two records may carry the same persisted name.
type created struct {
	rec  *domain.Record
	node domain.Node
}

type batch struct {
	coll    domain.Collection
	level   string
	created []created
	flags   Flags
}

// CreateNodesFromRecords instantiates records inside coll, then wires their
// inputs and masks, then restores parameter links recursively.
//
// Anomalies never abort the batch: they are logged and collected in the
// Result, whose OK reports whether there were any. The error is only set when
// ctx is done or the arguments are unusable; the partial Result is still
// returned in the former case.
func (r *Restorer) CreateNodesFromRecords(ctx context.Context, coll domain.Collection, records []*domain.Record, flags Flags) (*Result, error) {
	if coll == nil {
		return nil, errors.New("restore: nil collection")
	}
	if r.factory == nil {
		return nil, errors.New("restore: no node factory")
	}

	res := &Result{}
	b, err := r.createNodes(ctx, coll, records, flags, res, 0)
	if err != nil {
		return res, err
	}
	r.restoreLinksRecursive(res, coll, records, b)
	return res, nil
}

func (r *Restorer) status(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.logger.Debug(msg)
	if r.reporter != nil {
		r.reporter.ReportStatus(msg)
	}
}

func levelLabel(coll domain.Collection) string {
	if n, ok := coll.(domain.Node); ok {
		return n.Label()
	}
	return domain.TopLevelLabel
}

// createNodes runs the instantiation and input wiring phases for one level.
// Nested records are instantiated, and their inputs wired, into the group
// created from their parent record.
func (r *Restorer) createNodes(ctx context.Context, coll domain.Collection, records []*domain.Record, flags Flags, res *Result, depth int) (*batch, error) {
	b := &batch{coll: coll, level: levelLabel(coll), flags: flags}

	r.status("Creating nodes in group: %s", b.level)

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return b, err
		}
		if rec == nil {
			continue
		}

		node, err := r.factory.CreateNode(ctx, coll, rec)
		if err != nil || node == nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return b, ctxErr
			}
			if err == nil {
				err = errors.New("factory returned no node")
			}
			r.record(res, Anomaly{
				Kind:       AnomalyCreateFailed,
				Collection: b.level,
				Node:       rec.ScriptName,
				PluginID:   rec.PluginID,
				Detail:     fmt.Sprintf("the node %s version %d.%d could not be created", rec.PluginID, rec.MajorVersion, rec.MinorVersion),
				Err:        err,
			})
			continue
		}

		switch {
		case node.PluginID() == domain.PluginIDStub && rec.PluginID != domain.PluginIDStub:
			r.record(res, Anomaly{
				Kind:       AnomalyPluginNotFound,
				Collection: b.level,
				Node:       rec.ScriptName,
				PluginID:   rec.PluginID,
				Detail: fmt.Sprintf("the node %s (%s version %d.%d) was replaced by a pass-through node",
					rec.ScriptName, rec.PluginID, rec.MajorVersion, rec.MinorVersion),
			})
		case rec.HasVersion() && node.MajorVersion() != rec.MajorVersion:
			r.record(res, Anomaly{
				Kind:       AnomalyVersionMismatch,
				Collection: b.level,
				Node:       rec.ScriptName,
				PluginID:   rec.PluginID,
				Detail: fmt.Sprintf("the node %s (%s version %d.%d) was loaded with version %d instead",
					rec.ScriptName, rec.PluginID, rec.MajorVersion, rec.MinorVersion, node.MajorVersion()),
			})
		}

		b.created = append(b.created, created{rec: rec, node: node})
		if depth == 0 {
			res.Created = append(res.Created, node)
		}
		res.Total++

		if len(rec.Children) > 0 {
			g, ok := node.AsContainer()
			if !ok {
				r.logger.Warn("record has children but node is not a group", "node", node.ScriptName())
				continue
			}
			if _, err := r.createNodes(ctx, g, rec.Children, FlagNone, res, depth+1); err != nil {
				return b, err
			}
		}
	}

	r.status("Restoring graph links in group: %s", b.level)

	for _, c := range b.created {
		r.restoreInputs(b, res, c.node, c.rec.Inputs, false)
		r.restoreInputs(b, res, c.node, c.rec.Masks, true)
	}
	return b, nil
}

// lookupCreated returns the node created from the record persisted as name.
func (b *batch) lookupCreated(name string) domain.Node {
	for _, c := range b.created {
		if c.rec.ScriptName == name {
			return c.node
		}
	}
	return nil
}

// findReferenced resolves a persisted node name: first against this batch,
// then against the whole collection when external connections are allowed.
func (b *batch) findReferenced(name string) domain.Node {
	if n := b.lookupCreated(name); n != nil {
		return n
	}
	if b.flags&FlagConnectToExternalNodes != 0 {
		return b.coll.NodeByName(name)
	}
	return nil
}

func (r *Restorer) record(res *Result, a Anomaly) {
	res.Anomalies = append(res.Anomalies, a)

	attrs := []any{"kind", a.Kind, "collection", a.Collection, "node", a.Node}
	if a.PluginID != "" {
		attrs = append(attrs, "plugin_id", a.PluginID)
	}
	if a.Err != nil {
		attrs = append(attrs, "err", a.Err)
	}
	if a.Kind.IsWarning() {
		r.logger.Warn(a.Detail, attrs...)
	} else {
		r.logger.Error(a.Detail, attrs...)
	}

	for _, obs := range r.observers {
		obs(a)
	}
}
