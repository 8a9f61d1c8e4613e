package inventory

import (
	"reflect"
	"testing"

	"github.com/iliyamo/venue-booking/internal/layout"
)

func mustNormalize(t *testing.T, blob string) *layout.NormalizedLayout {
	t.Helper()
	l, err := layout.ParseStructure(blob)
	if err != nil {
		t.Fatalf("ParseStructure: %v", err)
	}
	return layout.Normalize(l)
}

func TestGenerateDeterministic(t *testing.T) {
	nl := mustNormalize(t, `{"sections":[
		{"name":"North","rows":[{"rowNumber":1,"seats":3},{"rowNumber":2,"seats":2}]},
		{"name":"South","rows":2,"seatsPerRow":4}
	]}`)

	first := Generate(nl, 1500)
	second := Generate(nl, 1500)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated generation produced different seat universes")
	}
	if len(first) != 13 {
		t.Fatalf("got %d seats, want 13", len(first))
	}
}

func TestGenerateIdentifiers(t *testing.T) {
	nl := mustNormalize(t, `{"sections":[{"name":"North","rows":[{"rowNumber":1,"seats":2},{"rowNumber":2,"seats":1}]}]}`)
	seats := Generate(nl, 2000)

	want := []Seat{
		{ID: "North-A-1", DisplayName: "NA1", Section: "North", RowLetter: "A", SeatNumber: 1, PriceCents: 2000},
		{ID: "North-A-2", DisplayName: "NA2", Section: "North", RowLetter: "A", SeatNumber: 2, PriceCents: 2000},
		{ID: "North-B-1", DisplayName: "NB1", Section: "North", RowLetter: "B", SeatNumber: 1, PriceCents: 2000},
	}
	if !reflect.DeepEqual(seats, want) {
		t.Fatalf("got %+v, want %+v", seats, want)
	}
}

func TestGenerateLegacyAndModernAgree(t *testing.T) {
	legacy := mustNormalize(t, `{"sections":[{"name":"East","rows":2,"seatsPerRow":3}]}`)
	modern := mustNormalize(t, `{"sections":[{"name":"East","rows":[{"rowNumber":1,"seats":3},{"rowNumber":2,"seats":3}]}]}`)

	if !reflect.DeepEqual(Generate(legacy, 500), Generate(modern, 500)) {
		t.Fatal("legacy and modern encodings of the same layout generated different seats")
	}
}

func TestGenerateEmptyLayout(t *testing.T) {
	nl := mustNormalize(t, "")
	if seats := Generate(nl, 100); len(seats) != 0 {
		t.Fatalf("empty layout generated %d seats", len(seats))
	}
}

func TestGenerateUniformPricing(t *testing.T) {
	nl := mustNormalize(t, `{"sections":[{"name":"West","rows":3,"seatsPerRow":3}]}`)
	for _, s := range Generate(nl, 1250) {
		if s.PriceCents != 1250 {
			t.Fatalf("seat %s priced at %d, want 1250", s.ID, s.PriceCents)
		}
	}
}
