package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

func TestLoadWardsDefaults(t *testing.T) {
	wards, err := LoadWards(&Config{})
	assert.NoError(t, err)
	assert.NotEmpty(t, wards)
	assert.Equal(t, models.WardGeneral, wards[0].Type)
}

func TestLoadWardsFromSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wards.json")
	seed := `[
		{"wardType": "icu", "wardNumber": "C", "totalBeds": 10},
		{"wardType": "general", "wardNumber": "A", "totalBeds": 12}
	]`
	assert.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	wards, err := LoadWards(&Config{WardSeedFile: path})
	assert.NoError(t, err)
	assert.Len(t, wards, 2)
	// file order is preserved
	assert.Equal(t, models.WardICU, wards[0].Type)
	assert.Equal(t, 10, wards[0].TotalBeds)
}

func TestLoadWardsRejectsBadBedCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wards.json")
	assert.NoError(t, os.WriteFile(path, []byte(`[{"wardType": "icu", "wardNumber": "C", "totalBeds": 0}]`), 0o600))

	_, err := LoadWards(&Config{WardSeedFile: path})
	assert.Error(t, err)
}

func TestLoadWardsMissingFile(t *testing.T) {
	_, err := LoadWards(&Config{WardSeedFile: "/nonexistent/wards.json"})
	assert.Error(t, err)
}
