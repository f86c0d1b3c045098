package irrigation_test

import (
	"testing"

	"github.com/cropsaarthi/backend/internal/services/irrigation"
)

func TestTableListAndLookup(t *testing.T) {
	t.Parallel()
	table := irrigation.NewTable()

	crops := table.ListCrops()
	if len(crops) != 8 {
		t.Fatalf("expected 8 crops, got %d: %v", len(crops), crops)
	}
	if crops[0] != "Wheat" {
		t.Fatalf("expected table order preserved, first crop %q", crops[0])
	}

	wheat, ok := table.GetProfile("Wheat")
	if !ok {
		t.Fatal("Wheat profile missing")
	}
	if wheat.AlertThresholdDays != 5 || wheat.IdealSoilMoisturePct != 60 || wheat.MinRainfallPerWeekMm != 15 {
		t.Fatalf("unexpected Wheat profile: %+v", wheat)
	}

	if _, ok := table.GetProfile("Durian"); ok {
		t.Fatal("unknown crop must report absent, not a profile")
	}
}
