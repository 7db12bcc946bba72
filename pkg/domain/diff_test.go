package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	base := func() *Document {
		return &Document{
			Name: "shot010",
			Nodes: []*Record{
				{PluginID: "read", ScriptName: "Read1", Params: map[string]any{"filename": "a.exr"}},
				{PluginID: "blur", ScriptName: "Blur1", Inputs: map[string]string{"Source": "Read1"}},
				{PluginID: PluginIDGroup, ScriptName: "Group1", Children: []*Record{
					{PluginID: "grade", ScriptName: "Grade1", Params: map[string]any{"gain": 1.0}},
				}},
			},
		}
	}

	tests := []struct {
		name    string
		old     *Document
		new     *Document
		check   func(t *testing.T, d *DocumentDiff)
		wantNil bool
	}{
		{
			name: "Initial Save (Old is Nil)",
			old:  nil,
			new:  base(),
			check: func(t *testing.T, d *DocumentDiff) {
				want := []string{"Blur1", "Group1", "Group1.Grade1", "Read1"}
				if strings.Join(d.Added, ",") != strings.Join(want, ",") {
					t.Errorf("Added = %v, want %v", d.Added, want)
				}
			},
		},
		{
			name:    "No Changes",
			old:     base(),
			new:     base(),
			wantNil: true,
		},
		{
			name: "Param Changed And Removed",
			old:  base(),
			new: func() *Document {
				d := base()
				d.Nodes[0].Params = nil
				d.Nodes[2].Children[0].Params["gain"] = 2.0
				return d
			}(),
			check: func(t *testing.T, d *DocumentDiff) {
				if v, ok := d.Changed["Read1"].Params["filename"]; !ok || v != nil {
					t.Errorf("expected filename deletion, got %v", d.Changed["Read1"].Params)
				}
				if v := d.Changed["Group1.Grade1"].Params["gain"]; v != 2.0 {
					t.Errorf("expected gain 2.0, got %v", v)
				}
			},
		},
		{
			name: "Rewired And Replaced",
			old:  base(),
			new: func() *Document {
				d := base()
				d.Nodes[1].Inputs = map[string]string{"Mask": "Read1"}
				d.Nodes[1].PluginID = PluginIDStub
				return d
			}(),
			check: func(t *testing.T, d *DocumentDiff) {
				nd := d.Changed["Blur1"]
				if nd.PluginID == nil || *nd.PluginID != PluginIDStub {
					t.Errorf("expected plugin change, got %v", nd.PluginID)
				}
				if nd.Inputs["Source"] != "" || nd.Inputs["Mask"] != "Read1" {
					t.Errorf("unexpected inputs delta %v", nd.Inputs)
				}
			},
		},
		{
			name: "Node Removed",
			old:  base(),
			new: func() *Document {
				d := base()
				d.Nodes[2].Children = nil
				return d
			}(),
			check: func(t *testing.T, d *DocumentDiff) {
				if len(d.Removed) != 1 || d.Removed[0] != "Group1.Grade1" {
					t.Errorf("Removed = %v", d.Removed)
				}
				if len(d.Added) != 0 {
					t.Errorf("Added = %v", d.Added)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil diff, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a diff, got nil")
			}
			tt.check(t, got)
		})
	}
}

func TestDiff_JSON(t *testing.T) {
	d := Diff(nil, &Document{Nodes: []*Record{{PluginID: "read", ScriptName: "Read1"}}})
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"added":["Read1"]`) {
		t.Errorf("unexpected JSON: %s", s)
	}
	if strings.Contains(s, "removed") || strings.Contains(s, "changed") {
		t.Errorf("empty fields should be omitted: %s", s)
	}
}
