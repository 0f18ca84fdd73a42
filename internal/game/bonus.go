package game

// Bonuses is the aggregate percentage modifier set derived from the
// researched-technology list. Percentages from multiple technologies
// affecting the same target add together; nothing caps them.
type Bonuses struct {
	ResourceProduction map[Resource]float64  `json:"resource_production"`
	TroopAttack        map[TroopType]float64 `json:"troop_attack"`
	TroopDefense       map[TroopType]float64 `json:"troop_defense"`
	BuildingSpeed      float64               `json:"building_speed"`
}

// ComputeBonuses folds the researched set into a Bonuses value. It is pure
// and cheap: the tick reducer calls it every second and the API recomputes
// it on demand. Technology IDs missing from the catalog are ignored.
func (c *Catalog) ComputeBonuses(researched []string) Bonuses {
	b := Bonuses{
		ResourceProduction: map[Resource]float64{},
		TroopAttack:        map[TroopType]float64{},
		TroopDefense:       map[TroopType]float64{},
	}
	for _, id := range researched {
		tech, ok := c.Technologies[id]
		if !ok {
			continue
		}
		switch tech.Bonus.Kind {
		case BonusResourceProduction:
			b.ResourceProduction[tech.Bonus.Resource] += tech.Bonus.Percentage
		case BonusTroopAttack:
			b.TroopAttack[tech.Bonus.Troop] += tech.Bonus.Percentage
		case BonusTroopDefense:
			b.TroopDefense[tech.Bonus.Troop] += tech.Bonus.Percentage
		case BonusBuildingSpeed:
			b.BuildingSpeed += tech.Bonus.Percentage
		}
	}
	return b
}
