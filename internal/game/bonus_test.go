package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBonusesEmpty(t *testing.T) {
	c := Default()
	b := c.ComputeBonuses(nil)

	assert.Empty(t, b.ResourceProduction)
	assert.Empty(t, b.TroopAttack)
	assert.Empty(t, b.TroopDefense)
	assert.Zero(t, b.BuildingSpeed)
}

func TestComputeBonusesSingleTech(t *testing.T) {
	c := Default()
	b := c.ComputeBonuses([]string{"MILITER_1"})

	assert.Equal(t, 5.0, b.TroopAttack[TroopInfanteri])
	assert.Empty(t, b.ResourceProduction)
	assert.Zero(t, b.BuildingSpeed)
}

func TestComputeBonusesIgnoresUnknownIDs(t *testing.T) {
	c := Default()
	b := c.ComputeBonuses([]string{"DOES_NOT_EXIST", "KEMAJUAN_1"})

	assert.Equal(t, 10.0, b.ResourceProduction[ResourcePangan])
	assert.Len(t, b.ResourceProduction, 1)
}

func TestComputeBonusesAdditiveStacking(t *testing.T) {
	// Two technologies on the same target add, they don't multiply.
	c := Default()
	c.Technologies = map[string]Technology{
		"A": {ID: "A", Bonus: TechBonus{Kind: BonusResourceProduction, Resource: ResourcePangan, Percentage: 10}},
		"B": {ID: "B", Bonus: TechBonus{Kind: BonusResourceProduction, Resource: ResourcePangan, Percentage: 15}},
		"C": {ID: "C", Bonus: TechBonus{Kind: BonusBuildingSpeed, Percentage: 10}},
		"D": {ID: "D", Bonus: TechBonus{Kind: BonusBuildingSpeed, Percentage: 20}},
	}

	b := c.ComputeBonuses([]string{"A", "B", "C", "D"})
	require.Equal(t, 25.0, b.ResourceProduction[ResourcePangan])
	require.Equal(t, 30.0, b.BuildingSpeed)
}

func TestComputeBonusesAllKinds(t *testing.T) {
	c := Default()
	b := c.ComputeBonuses([]string{"KEMAJUAN_1", "KEMAJUAN_4", "MILITER_1", "PERTAHANAN_1"})

	assert.Equal(t, 10.0, b.ResourceProduction[ResourcePangan])
	assert.Equal(t, 10.0, b.BuildingSpeed)
	assert.Equal(t, 5.0, b.TroopAttack[TroopInfanteri])
	assert.Equal(t, 10.0, b.TroopDefense[TroopInfanteri])
}
