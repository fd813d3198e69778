package config

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

// LoadWards reads the ward seed file configured for this deployment and
// falls back to the stock ward plan when no file is configured. Ward
// order in the file is preserved.
func LoadWards(conf *Config) ([]models.Ward, error) {
	if conf.WardSeedFile == "" {
		zap.S().Info("WARD_SEED_FILE not set, using default ward plan")
		return DefaultWards(), nil
	}
	b, err := os.ReadFile(conf.WardSeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read ward seed file: %w", err)
	}
	var wards []models.Ward
	if err := json.Unmarshal(b, &wards); err != nil {
		return nil, fmt.Errorf("failed to parse ward seed file: %w", err)
	}
	for _, w := range wards {
		if w.TotalBeds <= 0 {
			return nil, fmt.Errorf("ward %s-%s has non-positive bed count %d", w.Type, w.Number, w.TotalBeds)
		}
	}
	return wards, nil
}

// DefaultWards is the stock ward plan used when no seed file is provided
func DefaultWards() []models.Ward {
	return []models.Ward{
		{Type: models.WardGeneral, Number: "A", TotalBeds: 12, BedFacilities: map[int][]models.Facility{
			1: {models.FacilityOxygen},
			2: {models.FacilityOxygen, models.FacilityMonitor},
		}},
		{Type: models.WardGeneral, Number: "B", TotalBeds: 12},
		{Type: models.WardSemiPrivate, Number: "A", TotalBeds: 6, BedFacilities: map[int][]models.Facility{
			1: {models.FacilityAC, models.FacilityTV},
			2: {models.FacilityAC, models.FacilityTV},
		}},
		{Type: models.WardPrivate, Number: "A", TotalBeds: 4, BedFacilities: map[int][]models.Facility{
			1: {models.FacilityAC, models.FacilityTV, models.FacilityAttendant},
		}},
		{Type: models.WardICU, Number: "C", TotalBeds: 10, BedFacilities: map[int][]models.Facility{
			1: {models.FacilityVentilator, models.FacilityMonitor},
			2: {models.FacilityVentilator, models.FacilityMonitor},
		}},
		{Type: models.WardMaternity, Number: "A", TotalBeds: 8},
	}
}
