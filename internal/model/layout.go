package model

import "time"

// Layout represents a venue seating template as stored in the
// `layouts` table.  The seating structure itself (sections, rows,
// seat counts) lives in the structure_json column as an opaque blob;
// the layout package decodes it into a typed form.  A layout that is
// referenced by a show should be treated as immutable, because seat
// identifiers are derived positionally from its row ordering.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – human readable layout name.
//  StructureJSON – raw JSON describing sections and rows.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Layout struct {
	ID            uint64    // layouts.id
	Name          string    // layouts.name
	StructureJSON string    // layouts.structure_json
	CreatedAt     time.Time // layouts.created_at
	UpdatedAt     time.Time // layouts.updated_at
}
