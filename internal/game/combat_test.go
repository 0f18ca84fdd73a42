package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttackUnknownMonster(t *testing.T) {
	c := Default()
	s := newTestState(t, c)

	_, err := c.Attack(s, "naga")
	assert.ErrorIs(t, err, ErrUnknownMonster)
}

func TestAttackTieIsDefeat(t *testing.T) {
	// 100 Infanteri at attack 10 exactly match the Celeng's power of 1000;
	// victory requires strictly more.
	c := Default()
	s := newTestState(t, c)

	report, err := c.Attack(s, "celeng")
	require.NoError(t, err)

	assert.False(t, report.Victory)
	assert.Equal(t, 1000.0, report.PlayerPower)
	assert.Equal(t, 1000, report.EnemyPower)
	// Defeat loss fraction: min(1, 0.8 × 1000/1000) = 0.8.
	assert.Equal(t, 80, report.Losses[TroopInfanteri])
	assert.Equal(t, 20, s.Troop(TroopInfanteri).Count)
	assert.Zero(t, report.RewardExp)
	assert.Equal(t, 0, s.Player.Experience)
}

func TestAttackVictoryWithResearchBonus(t *testing.T) {
	// MILITER_1 lifts Infanteri attack 5%: power 1050 beats 1000.
	c := Default()
	s := newTestState(t, c)
	s.ResearchedTechnologies = []string{"MILITER_1"}

	report, err := c.Attack(s, "celeng")
	require.NoError(t, err)

	assert.True(t, report.Victory)
	assert.InDelta(t, 1050, report.PlayerPower, 1e-9)
	// Victory loss fraction: 0.1 / min(1.05, 2); floor(100 × 0.0952) = 9.
	assert.Equal(t, 9, report.Losses[TroopInfanteri])
	assert.Equal(t, 91, s.Troop(TroopInfanteri).Count)
	assert.Equal(t, 100, report.RewardExp)
	assert.Equal(t, 100, s.Player.Experience)
	assert.Equal(t, 11000.0, s.Resources[ResourcePangan])
}

func TestAttackCounterKindContributesExtra(t *testing.T) {
	// Berkuda counters infantry-type monsters: each unit contributes 150%.
	c := Default()
	s := newTestState(t, c)
	s.Troop(TroopInfanteri).Count = 0
	s.Troop(TroopBerkuda).Count = 100

	report, err := c.Attack(s, "celeng")
	require.NoError(t, err)

	assert.True(t, report.Victory)
	assert.InDelta(t, 2250, report.PlayerPower, 1e-9) // 100 × 15 × 1.5
	// Ratio capped at 2: loss fraction 0.05.
	assert.Equal(t, 5, report.Losses[TroopBerkuda])
	assert.Equal(t, 95, s.Troop(TroopBerkuda).Count)
}

func TestAttackCrushingDefeatLosesEverything(t *testing.T) {
	c := Default()
	s := newTestState(t, c)

	report, err := c.Attack(s, "garuda") // power 3000 vs our 1000
	require.NoError(t, err)

	assert.False(t, report.Victory)
	assert.Equal(t, 100, report.Losses[TroopInfanteri])
	assert.Equal(t, 0, s.Troop(TroopInfanteri).Count)
}

func TestAttackWithNoTroops(t *testing.T) {
	c := Default()
	s := newTestState(t, c)
	for _, tr := range s.Troops {
		tr.Count = 0
	}

	report, err := c.Attack(s, "celeng")
	require.NoError(t, err)

	assert.False(t, report.Victory)
	assert.Empty(t, report.Losses)
	for _, tr := range s.Troops {
		assert.GreaterOrEqual(t, tr.Count, 0)
	}
}

func TestAttackRewardClampedToCapacity(t *testing.T) {
	c := Default()
	s := newTestState(t, c)
	s.ResearchedTechnologies = []string{"MILITER_1"}
	s.Resources[ResourcePangan] = 49800

	report, err := c.Attack(s, "celeng")
	require.NoError(t, err)

	require.True(t, report.Victory)
	assert.Equal(t, 50000.0, s.Resources[ResourcePangan])
}

func TestAttackLossesNeverNegative(t *testing.T) {
	c := Default()
	s := newTestState(t, c)
	s.Troop(TroopInfanteri).Count = 3
	s.Troop(TroopPengepung).Count = 1000 // power 20000, ratio capped at 2

	report, err := c.Attack(s, "celeng")
	require.NoError(t, err)

	require.True(t, report.Victory)
	for kind, n := range report.Losses {
		assert.Greater(t, n, 0, kind)
	}
	for _, tr := range s.Troops {
		assert.GreaterOrEqual(t, tr.Count, 0)
	}
}
