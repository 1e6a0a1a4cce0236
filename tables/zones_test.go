package tables

import (
	"testing"

	"github.com/davissekai/irys/model"
)

func TestBuildZonesMidpoints(t *testing.T) {
	headerItems := []model.TextItem{
		item("NAME", 100, 50),
		item("ID", 300, 50),
		item("SIGN", 500, 50),
	}

	zones := BuildZones(headerItems, []string{"NAME", "ID", "SIGN"})

	if len(zones) != 3 {
		t.Fatalf("expected 3 zones, got %d", len(zones))
	}

	expected := []model.ColumnZone{
		{Header: "NAME", StartX: 0, EndX: 200},
		{Header: "ID", StartX: 200, EndX: 400},
		{Header: "SIGN", StartX: 400, EndX: model.ZoneEndSentinel},
	}
	for i, want := range expected {
		if zones[i] != want {
			t.Errorf("zone %d: expected %+v, got %+v", i, want, zones[i])
		}
	}
}

func TestBuildZonesCoverEverything(t *testing.T) {
	headerItems := []model.TextItem{
		item("A", 50, 10),
		item("B", 150, 10),
		item("C", 400, 10),
	}
	zones := BuildZones(headerItems, []string{"A", "B", "C"})

	// Zones must be contiguous: each zone ends where the next begins, the
	// first starts at 0 and the last reaches the sentinel.
	if zones[0].StartX != 0 {
		t.Errorf("first zone should start at 0, got %v", zones[0].StartX)
	}
	for i := 1; i < len(zones); i++ {
		if zones[i].StartX != zones[i-1].EndX {
			t.Errorf("gap between zone %d and %d: %v != %v", i-1, i, zones[i-1].EndX, zones[i].StartX)
		}
	}
	if zones[len(zones)-1].EndX != model.ZoneEndSentinel {
		t.Errorf("last zone should end at the sentinel, got %v", zones[len(zones)-1].EndX)
	}

	// Any x lands in exactly one zone.
	for _, x := range []float64{0, 99.9, 100, 275, 1e9} {
		hits := 0
		for _, z := range zones {
			if z.Contains(x) {
				hits++
			}
		}
		if hits != 1 {
			t.Errorf("x=%v contained in %d zones, expected exactly 1", x, hits)
		}
	}
}

func TestBuildZonesSynthesizesLabels(t *testing.T) {
	headerItems := []model.TextItem{
		item("NAME", 100, 50),
		item("ID", 300, 50),
		item("EXTRA", 500, 50),
	}

	zones := BuildZones(headerItems, []string{"Name", "ID"})

	if zones[0].Header != "Name" || zones[1].Header != "ID" {
		t.Errorf("labeled zones wrong: %q, %q", zones[0].Header, zones[1].Header)
	}
	if zones[2].Header != "col_2" {
		t.Errorf("expected synthesized label col_2, got %q", zones[2].Header)
	}
}

func TestZoneFor(t *testing.T) {
	zones := []model.ColumnZone{
		{Header: "A", StartX: 0, EndX: 100},
		{Header: "B", StartX: 100, EndX: model.ZoneEndSentinel},
	}

	tests := []struct {
		x    float64
		want int
	}{
		{0, 0},
		{99.99, 0},
		{100, 1},
		{1e12, 1},
		{-5, -1},
	}
	for _, tt := range tests {
		if got := zoneFor(zones, tt.x); got != tt.want {
			t.Errorf("zoneFor(%v) = %d, expected %d", tt.x, got, tt.want)
		}
	}
}
