package hospital_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/hospital"
	"github.com/AvSoft-Technologies-Pvt-LTD/DigiHealth-sub000/models"
)

func testWards() []models.Ward {
	return []models.Ward{
		{Type: models.WardGeneral, Number: "A", TotalBeds: 12},
		{Type: models.WardGeneral, Number: "B", TotalBeds: 12},
		{Type: models.WardICU, Number: "C", TotalBeds: 10},
		{Type: models.WardPrivate, Number: "A", TotalBeds: 4},
	}
}

func TestCatalog_ListWardsKeepsDeclarationOrder(t *testing.T) {
	c, err := hospital.NewCatalog(testWards())
	assert.NoError(t, err)

	first := c.ListWards()
	second := c.ListWards()
	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
	assert.Equal(t, models.WardGeneral, first[0].Type)
	assert.Equal(t, "A", first[0].Number)
	assert.Equal(t, models.WardICU, first[2].Type)
	assert.Equal(t, "C", first[2].Number)
}

func TestCatalog_ListWardsReturnsCopy(t *testing.T) {
	c, err := hospital.NewCatalog(testWards())
	assert.NoError(t, err)

	wards := c.ListWards()
	wards[0].TotalBeds = 999

	again, ok := c.GetWard(models.WardGeneral, "A")
	assert.True(t, ok)
	assert.Equal(t, 12, again.TotalBeds)
}

func TestCatalog_GetWard(t *testing.T) {
	c, err := hospital.NewCatalog(testWards())
	assert.NoError(t, err)

	w, ok := c.GetWard(models.WardICU, "C")
	assert.True(t, ok)
	assert.Equal(t, 10, w.TotalBeds)

	_, ok = c.GetWard(models.WardICU, "Z")
	assert.False(t, ok)
}

func TestCatalog_RejectsDuplicateWards(t *testing.T) {
	_, err := hospital.NewCatalog([]models.Ward{
		{Type: models.WardGeneral, Number: "A", TotalBeds: 4},
		{Type: models.WardGeneral, Number: "A", TotalBeds: 6},
	})
	assert.Error(t, err)
}

func TestCatalog_RejectsNonPositiveBedCount(t *testing.T) {
	_, err := hospital.NewCatalog([]models.Ward{
		{Type: models.WardGeneral, Number: "A", TotalBeds: 0},
	})
	assert.Error(t, err)
}
