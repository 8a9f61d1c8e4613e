// Package layout decodes venue seating templates and normalizes the
// two on-disk section shapes into a single per-row view.  Every
// downstream consumer (inventory generation, capacity math) works on
// the normalized form only, so the legacy format concern lives in
// exactly one place.
package layout

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Row is one seating row inside a section.
type Row struct {
	RowNumber int `json:"rowNumber"` // 1-based position within the section
	Seats     int `json:"seats"`     // number of seats in the row
}

// Section is a named block of rows.  Two persisted shapes exist:
//
//	modern: {"name":"North","rows":[{"rowNumber":1,"seats":10}, ...]}
//	legacy: {"name":"North","rows":4,"seatsPerRow":10}
//
// Section.UnmarshalJSON accepts both; Normalize converts legacy
// sections into the modern shape.  Section names are North/South/
// East/West by convention but this is not enforced.
type Section struct {
	Name string // section name, unique within a layout
	Rows []Row  // per-row seat counts (modern shape)

	// Legacy uniform shape.  Meaningful only when Legacy is true.
	Legacy      bool
	LegacyRows  int
	SeatsPerRow int
}

// sectionJSON mirrors the persisted shape with the ambiguous rows
// field left raw so both encodings can be probed.
type sectionJSON struct {
	Name        string          `json:"name"`
	Rows        json.RawMessage `json:"rows"`
	SeatsPerRow *int            `json:"seatsPerRow"`
}

// UnmarshalJSON decodes either section shape.  A numeric rows field
// selects the legacy form; an array selects the modern form.  A
// missing or null rows field yields a section with zero rows.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw sectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Name = raw.Name
	if len(raw.Rows) == 0 || string(raw.Rows) == "null" {
		s.Rows = nil
		return nil
	}
	trimmed := strings.TrimSpace(string(raw.Rows))
	if strings.HasPrefix(trimmed, "[") {
		var rows []Row
		if err := json.Unmarshal(raw.Rows, &rows); err != nil {
			return fmt.Errorf("section %q: bad rows array: %w", raw.Name, err)
		}
		s.Rows = rows
		return nil
	}
	var count int
	if err := json.Unmarshal(raw.Rows, &count); err != nil {
		return fmt.Errorf("section %q: rows is neither array nor integer: %w", raw.Name, err)
	}
	s.Legacy = true
	s.LegacyRows = count
	if raw.SeatsPerRow != nil {
		s.SeatsPerRow = *raw.SeatsPerRow
	}
	return nil
}

// Layout is the decoded form of layouts.structure_json.
type Layout struct {
	Sections []Section `json:"sections"`
}

// ParseStructure decodes a structure_json blob.  An empty blob is
// treated as a layout with no sections.
func ParseStructure(structureJSON string) (*Layout, error) {
	if strings.TrimSpace(structureJSON) == "" {
		return &Layout{}, nil
	}
	var l Layout
	if err := json.Unmarshal([]byte(structureJSON), &l); err != nil {
		return nil, fmt.Errorf("decode layout structure: %w", err)
	}
	return &l, nil
}

// NormalizedSection always carries per-row seat counts.
type NormalizedSection struct {
	Name string
	Rows []Row
}

// NormalizedLayout is the single view every downstream component
// consumes.
type NormalizedLayout struct {
	Sections []NormalizedSection
}

// Normalize converts every section to the modern per-row shape.  A
// legacy section {rows: R, seatsPerRow: S} produces R rows numbered
// 1..R with S seats each.  The function is pure and total: negative
// or missing counts are treated as zero rows or zero seats, never an
// error.
func Normalize(l *Layout) *NormalizedLayout {
	out := &NormalizedLayout{Sections: make([]NormalizedSection, 0, len(l.Sections))}
	for _, sec := range l.Sections {
		ns := NormalizedSection{Name: sec.Name}
		if sec.Legacy {
			rows := sec.LegacyRows
			if rows < 0 {
				rows = 0
			}
			seats := sec.SeatsPerRow
			if seats < 0 {
				seats = 0
			}
			ns.Rows = make([]Row, 0, rows)
			for i := 1; i <= rows; i++ {
				ns.Rows = append(ns.Rows, Row{RowNumber: i, Seats: seats})
			}
		} else {
			ns.Rows = make([]Row, 0, len(sec.Rows))
			for i, r := range sec.Rows {
				seats := r.Seats
				if seats < 0 {
					seats = 0
				}
				ns.Rows = append(ns.Rows, Row{RowNumber: i + 1, Seats: seats})
			}
		}
		out.Sections = append(out.Sections, ns)
	}
	return out
}

// Capacity returns the total number of seats in the layout.
func (n *NormalizedLayout) Capacity() int {
	total := 0
	for _, sec := range n.Sections {
		for _, r := range sec.Rows {
			total += r.Seats
		}
	}
	return total
}

// Validate checks structural invariants: section names must be unique
// within the layout and no section may exceed 26 rows, because row
// letters are single characters A..Z.
func (n *NormalizedLayout) Validate() error {
	seen := make(map[string]bool, len(n.Sections))
	for _, sec := range n.Sections {
		if seen[sec.Name] {
			return fmt.Errorf("duplicate section name %q", sec.Name)
		}
		seen[sec.Name] = true
		if len(sec.Rows) > 26 {
			return fmt.Errorf("section %q has %d rows; at most 26 supported", sec.Name, len(sec.Rows))
		}
	}
	return nil
}
