package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dshills/sysgrid/pkg/loader"
	"github.com/dshills/sysgrid/pkg/simulator"
)

func buildSimulator(t *testing.T) *simulator.Simulator {
	t.Helper()
	tree, _, err := loader.LoadYAML([]byte(`
title: root
systems:
  - id: a
  - id: b
links:
  - a: a
    b: b
`))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	sim := simulator.NewSimulator(tree)
	if err := sim.Compute(context.Background()); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return sim
}

func TestExportJSON_RoundTrips(t *testing.T) {
	sim := buildSimulator(t)
	data, err := ExportJSON(sim)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshalling export: %v", err)
	}
	if doc.Boundaries.Rect.Width <= 0 {
		t.Fatalf("expected a positive width, got %+v", doc.Boundaries)
	}
	if len(doc.Routes) == 0 {
		t.Fatal("expected at least one recorded route")
	}
}

func TestExportJSONCompact_IsSmallerThanIndented(t *testing.T) {
	sim := buildSimulator(t)
	indented, err := ExportJSON(sim)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	compact, err := ExportJSONCompact(sim)
	if err != nil {
		t.Fatalf("ExportJSONCompact: %v", err)
	}
	if len(compact) >= len(indented) {
		t.Fatalf("expected compact (%d bytes) to be smaller than indented (%d bytes)", len(compact), len(indented))
	}
}

func TestExportSVG_ProducesWellFormedCanvas(t *testing.T) {
	sim := buildSimulator(t)
	data, err := ExportSVG(sim, DefaultSVGOptions())
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "</svg>") {
		t.Fatalf("expected a well-formed SVG document, got: %s", s[:min(200, len(s))])
	}
}
