package irrigation

import "github.com/cropsaarthi/backend/internal/model"

// defaultProfiles is the built-in crop water-requirement table. Loaded once,
// immutable afterwards.
var defaultProfiles = []model.CropWaterProfile{
	{Crop: "Wheat", MinRainfallPerWeekMm: 15, IdealSoilMoisturePct: 60, AlertThresholdDays: 5},
	{Crop: "Rice", MinRainfallPerWeekMm: 25, IdealSoilMoisturePct: 80, AlertThresholdDays: 2},
	{Crop: "Cotton", MinRainfallPerWeekMm: 20, IdealSoilMoisturePct: 65, AlertThresholdDays: 4},
	{Crop: "Maize", MinRainfallPerWeekMm: 20, IdealSoilMoisturePct: 70, AlertThresholdDays: 3},
	{Crop: "Sugarcane", MinRainfallPerWeekMm: 30, IdealSoilMoisturePct: 75, AlertThresholdDays: 2},
	{Crop: "Pulses", MinRainfallPerWeekMm: 12, IdealSoilMoisturePct: 55, AlertThresholdDays: 6},
	{Crop: "Vegetables", MinRainfallPerWeekMm: 18, IdealSoilMoisturePct: 70, AlertThresholdDays: 2},
	{Crop: "Fruits", MinRainfallPerWeekMm: 22, IdealSoilMoisturePct: 65, AlertThresholdDays: 3},
}

// Table is the lookup of per-crop irrigation requirements.
type Table struct {
	order    []string
	profiles map[string]model.CropWaterProfile
}

// NewTable builds a table from the built-in profiles.
func NewTable() *Table {
	return NewTableWith(defaultProfiles)
}

// NewTableWith builds a table from the given profiles. Later duplicates of a
// crop name replace earlier ones.
func NewTableWith(profiles []model.CropWaterProfile) *Table {
	t := &Table{profiles: make(map[string]model.CropWaterProfile, len(profiles))}
	for _, p := range profiles {
		if _, seen := t.profiles[p.Crop]; !seen {
			t.order = append(t.order, p.Crop)
		}
		t.profiles[p.Crop] = p
	}
	return t
}

// ListCrops returns crop identifiers in table order.
func (t *Table) ListCrops() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// GetProfile looks up a crop. An absent crop is a normal outcome, not an
// error; callers must branch on ok.
func (t *Table) GetProfile(crop string) (model.CropWaterProfile, bool) {
	p, ok := t.profiles[crop]
	return p, ok
}
