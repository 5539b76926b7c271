package chart

import (
	"reflect"
	"testing"

	"github.com/KaramelBytes/bikedash/internal/pipeline"
)

func TestCategoryBarHighlightsFirst(t *testing.T) {
	p := DefaultPalette()
	rows := []pipeline.CategoryCount{{Label: "summer", RentalsCount: 9}, {Label: "fall", RentalsCount: 5}, {Label: "winter", RentalsCount: 1}}
	req := Seasons(rows, p)
	if req.Kind != Bar || req.Table != TableSeasons || req.Title != "Number of Rentals by Season" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Highlight != "summer" {
		t.Fatalf("expected summer highlighted, got %q", req.Highlight)
	}
	want := []string{"#90CAF9", "#D3D3D3", "#D3D3D3"}
	if !reflect.DeepEqual(req.Colors, want) {
		t.Fatalf("colors = %v, want %v", req.Colors, want)
	}
}

func TestCategoryBarEmpty(t *testing.T) {
	req := Weather(nil, DefaultPalette())
	if req.Highlight != "" || len(req.Colors) != 0 {
		t.Fatalf("expected no highlight for empty table: %+v", req)
	}
}

func TestFactorOverlay(t *testing.T) {
	p := Palette{Highlight: "#111111", Muted: "#222222", Accent: "#333333"}
	for _, f := range Factors {
		req, err := FactorOverlay(f, p)
		if err != nil {
			t.Fatalf("FactorOverlay(%s): %v", f, err)
		}
		if req.Kind != DualLine || req.Secondary == nil || req.Secondary.Field != f || req.Secondary.Color != "#333333" {
			t.Fatalf("unexpected overlay for %s: %+v", f, req)
		}
	}
	req, _ := FactorOverlay(pipeline.FactorTemp, p)
	if req.Title != "Temperature and Rentals" || req.YLabel != "Rentals Count" || req.Secondary.Label != "Temperature (°C)" {
		t.Fatalf("unexpected temperature overlay labels: %+v", req)
	}
	if _, err := FactorOverlay("pressure", p); err == nil {
		t.Fatalf("expected error for unknown factor")
	}
}
