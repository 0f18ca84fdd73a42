package game

import (
	"fmt"
	"math"
)

// BattleReport is the outcome of one attack against a monster.
type BattleReport struct {
	Monster     string            `json:"monster"`
	Victory     bool              `json:"victory"`
	PlayerPower float64           `json:"player_power"`
	EnemyPower  int               `json:"enemy_power"`
	Losses      map[TroopType]int `json:"losses"`
	EnemyLosses int               `json:"enemy_losses"`
	RewardExp   int               `json:"reward_exp"`
	RewardResource Resource       `json:"reward_resource,omitempty"`
	RewardAmount   int            `json:"reward_amount"`
}

// Attack resolves a one-shot battle against a catalog monster and applies
// the result: troop losses always, experience and resource rewards on
// victory. Research attack bonuses scale each troop's contribution; troop
// kinds that counter the monster's kind contribute an extra 50%. Victory
// requires strictly exceeding the monster's power.
func (c *Catalog) Attack(s *State, monsterID string) (*BattleReport, error) {
	m := c.Monster(monsterID)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMonster, monsterID)
	}

	bonuses := c.ComputeBonuses(s.ResearchedTechnologies)

	power := 0.0
	for _, t := range s.Troops {
		eff := float64(t.Attack) * (1 + bonuses.TroopAttack[t.Type]/100)
		contribution := float64(t.Count) * eff
		power += contribution
		if c.TroopCounters[t.Type] == m.Type {
			power += contribution * 0.5
		}
	}

	report := &BattleReport{
		Monster:     m.Name,
		Victory:     power > float64(m.Power),
		PlayerPower: power,
		EnemyPower:  m.Power,
		Losses:      map[TroopType]int{},
	}

	var lossFraction float64
	if report.Victory {
		ratio := math.Min(power/float64(m.Power), 2)
		lossFraction = 0.1 / ratio
		report.EnemyLosses = m.Power
	} else {
		if power > 0 {
			lossFraction = math.Min(1, 0.8*float64(m.Power)/power)
		} else {
			lossFraction = 1
		}
		report.EnemyLosses = int(power)
	}

	for _, t := range s.Troops {
		loss := int(float64(t.Count) * lossFraction)
		if loss > t.Count {
			loss = t.Count
		}
		if loss > 0 {
			report.Losses[t.Type] = loss
			t.Count -= loss
		}
	}

	if report.Victory {
		report.RewardExp = m.RewardExp
		report.RewardResource = m.RewardResource
		report.RewardAmount = m.RewardAmount

		s.Player.Experience += m.RewardExp
		s.Resources[m.RewardResource] += float64(m.RewardAmount)
		if m.RewardResource.Capped() && s.Resources[m.RewardResource] > float64(s.WarehouseCapacity) {
			s.Resources[m.RewardResource] = float64(s.WarehouseCapacity)
		}
	}

	return report, nil
}
