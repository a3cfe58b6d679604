package export

import (
	"encoding/json"
	"os"

	"github.com/dshills/sysgrid/pkg/grid"
	"github.com/dshills/sysgrid/pkg/simulator"
)

// Document is the JSON-serialisable snapshot of a computed Simulator.
type Document struct {
	Boundaries simulator.Boundaries           `json:"boundaries"`
	Grid       [][][]ObjectDTO                `json:"grid"`
	Routes     map[string]map[string][]grid.Coord `json:"routes"`
}

// ObjectDTO is the wire representation of one simulator.Object. Only the
// fields relevant to Kind are populated, matching the tagged-union
// source type.
type ObjectDTO struct {
	Kind        string `json:"kind"`
	System      string `json:"system,omitempty"`
	Variant     string `json:"variant,omitempty"`
	Blackbox    bool   `json:"blackbox,omitempty"`
	LinkA       string `json:"linkA,omitempty"`
	LinkB       string `json:"linkB,omitempty"`
	LinkVariant string `json:"linkVariant,omitempty"`
	Owner       string `json:"owner,omitempty"`
	Text        string `json:"text,omitempty"`
}

func buildDocument(sim *simulator.Simulator) Document {
	layout := sim.Layout()
	cells := make([][][]ObjectDTO, len(layout))
	for x, col := range layout {
		cells[x] = make([][]ObjectDTO, len(col))
		for y, stack := range col {
			cells[x][y] = make([]ObjectDTO, len(stack))
			for i, obj := range stack {
				cells[x][y][i] = toDTO(obj)
			}
		}
	}

	return Document{
		Boundaries: sim.Boundaries(),
		Grid:       cells,
		Routes:     sim.AllRoutes(),
	}
}

func toDTO(obj simulator.Object) ObjectDTO {
	dto := ObjectDTO{Kind: obj.Kind.String()}
	switch obj.Kind {
	case simulator.KindSystem:
		if obj.System != nil {
			dto.System = obj.System.CanonicalID
		}
		dto.Variant = systemVariantName(obj.SystemVariant)
		dto.Blackbox = obj.Blackbox
	case simulator.KindLink:
		if obj.Link != nil {
			dto.LinkA = obj.Link.A
			dto.LinkB = obj.Link.B
		}
		dto.LinkVariant = linkVariantName(obj.LinkVariant)
	case simulator.KindPort:
		if obj.Owner != nil {
			dto.Owner = obj.Owner.CanonicalID
		}
	case simulator.KindSystemTitle:
		if obj.System != nil {
			dto.System = obj.System.CanonicalID
		}
		dto.Text = obj.Text
	}
	return dto
}

func systemVariantName(v simulator.SystemVariant) string {
	names := [...]string{
		"TopLeft", "Top", "TopRight",
		"Left", "Center", "Right",
		"BottomLeft", "Bottom", "BottomRight",
	}
	if int(v) < 0 || int(v) >= len(names) {
		return "Unknown"
	}
	return names[v]
}

func linkVariantName(v simulator.LinkVariant) string {
	names := [...]string{
		"Horizontal", "Vertical",
		"BottomToRight", "BottomToLeft",
		"TopToRight", "TopToLeft",
	}
	if int(v) < 0 || int(v) >= len(names) {
		return "Unknown"
	}
	return names[v]
}

// ExportJSON serialises the computed layout to indented JSON.
func ExportJSON(sim *simulator.Simulator) ([]byte, error) {
	return json.MarshalIndent(buildDocument(sim), "", "  ")
}

// ExportJSONCompact serialises the computed layout to compact JSON.
func ExportJSONCompact(sim *simulator.Simulator) ([]byte, error) {
	return json.Marshal(buildDocument(sim))
}

// SaveJSONToFile writes the indented JSON export to path with 0644
// permissions.
func SaveJSONToFile(sim *simulator.Simulator, path string) error {
	data, err := ExportJSON(sim)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
