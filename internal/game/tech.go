package game

// BonusKind enumerates what a technology improves.
type BonusKind string

const (
	BonusResourceProduction BonusKind = "RESOURCE_PRODUCTION"
	BonusTroopAttack        BonusKind = "TROOP_ATTACK"
	BonusTroopDefense       BonusKind = "TROOP_DEFENSE"
	BonusBuildingSpeed      BonusKind = "BUILDING_SPEED"
)

// TechBonus is the single percentage modifier a technology grants.
// Resource or Troop is set depending on Kind; BUILDING_SPEED targets nothing.
type TechBonus struct {
	Kind       BonusKind
	Resource   Resource
	Troop      TroopType
	Percentage float64
}

// TechCost is the single-resource price of a technology.
type TechCost struct {
	Resource Resource
	Amount   int
}

// BuildingRequirement gates a technology behind a building level.
type BuildingRequirement struct {
	Name  BuildingName
	Level int
}

// Technology is one immutable catalog entry. A technology counts as
// researched once its ID appears in the state's researched set.
type Technology struct {
	ID           string
	Name         string
	Description  string
	Icon         string
	Category     string // Kemajuan, Militer, Pertahanan, Medis
	Cost         TechCost
	ResearchTime int // seconds
	Bonus        TechBonus
	Dependencies []string
	Requires     BuildingRequirement
}

func defaultTechnologies() map[string]Technology {
	techs := []Technology{
		{
			ID: "KEMAJUAN_1", Name: "Irigasi", Category: "Kemajuan", Icon: "💧",
			Description: "Saluran air untuk sawah. Produksi Pangan +10%.",
			Cost:        TechCost{Resource: ResourceKayu, Amount: 500}, ResearchTime: 60,
			Bonus:    TechBonus{Kind: BonusResourceProduction, Resource: ResourcePangan, Percentage: 10},
			Requires: BuildingRequirement{Name: BuildingPerguruan, Level: 1},
		},
		{
			ID: "KEMAJUAN_2", Name: "Gergaji Besi", Category: "Kemajuan", Icon: "🪚",
			Description: "Mata gergaji yang lebih tajam. Produksi Kayu +10%.",
			Cost:        TechCost{Resource: ResourceBijihBesi, Amount: 400}, ResearchTime: 90,
			Bonus:        TechBonus{Kind: BonusResourceProduction, Resource: ResourceKayu, Percentage: 10},
			Dependencies: []string{"KEMAJUAN_1"},
			Requires:     BuildingRequirement{Name: BuildingPerguruan, Level: 1},
		},
		{
			ID: "KEMAJUAN_3", Name: "Pahat Batu", Category: "Kemajuan", Icon: "⛏️",
			Description: "Teknik pemahatan baru. Produksi Batu +10%.",
			Cost:        TechCost{Resource: ResourceKayu, Amount: 600}, ResearchTime: 120,
			Bonus:        TechBonus{Kind: BonusResourceProduction, Resource: ResourceBatu, Percentage: 10},
			Dependencies: []string{"KEMAJUAN_1"},
			Requires:     BuildingRequirement{Name: BuildingPerguruan, Level: 2},
		},
		{
			ID: "KEMAJUAN_4", Name: "Mandor Ahli", Category: "Kemajuan", Icon: "👷",
			Description: "Mandor berpengalaman mempercepat pembangunan. Kecepatan membangun +10%.",
			Cost:        TechCost{Resource: ResourceEmas, Amount: 200}, ResearchTime: 180,
			Bonus:        TechBonus{Kind: BonusBuildingSpeed, Percentage: 10},
			Dependencies: []string{"KEMAJUAN_2"},
			Requires:     BuildingRequirement{Name: BuildingPerguruan, Level: 2},
		},
		{
			ID: "KEMAJUAN_5", Name: "Tungku Peleburan", Category: "Kemajuan", Icon: "🔥",
			Description: "Peleburan bijih yang lebih panas. Produksi Bijih Besi +15%.",
			Cost:        TechCost{Resource: ResourceBatu, Amount: 800}, ResearchTime: 240,
			Bonus:        TechBonus{Kind: BonusResourceProduction, Resource: ResourceBijihBesi, Percentage: 15},
			Dependencies: []string{"KEMAJUAN_3"},
			Requires:     BuildingRequirement{Name: BuildingPerguruan, Level: 3},
		},
		{
			ID: "MILITER_1", Name: "Ilmu Pedang", Category: "Militer", Icon: "⚔️",
			Description: "Latihan pedang dasar. Serangan Prajurit Infanteri +5%.",
			Cost:        TechCost{Resource: ResourceBijihBesi, Amount: 300}, ResearchTime: 60,
			Bonus:    TechBonus{Kind: BonusTroopAttack, Troop: TroopInfanteri, Percentage: 5},
			Requires: BuildingRequirement{Name: BuildingPerguruan, Level: 1},
		},
		{
			ID: "MILITER_2", Name: "Busur Komposit", Category: "Militer", Icon: "🏹",
			Description: "Busur berlapis tanduk. Serangan Pemanah +5%.",
			Cost:        TechCost{Resource: ResourceKayu, Amount: 450}, ResearchTime: 90,
			Bonus:        TechBonus{Kind: BonusTroopAttack, Troop: TroopPemanah, Percentage: 5},
			Dependencies: []string{"MILITER_1"},
			Requires:     BuildingRequirement{Name: BuildingPerguruan, Level: 2},
		},
		{
			ID: "MILITER_3", Name: "Sanggurdi", Category: "Militer", Icon: "🐎",
			Description: "Pijakan kaki penunggang kuda. Serangan Prajurit Berkuda +10%.",
			Cost:        TechCost{Resource: ResourceBijihBesi, Amount: 700}, ResearchTime: 180,
			Bonus:        TechBonus{Kind: BonusTroopAttack, Troop: TroopBerkuda, Percentage: 10},
			Dependencies: []string{"MILITER_1"},
			Requires:     BuildingRequirement{Name: BuildingPerguruan, Level: 3},
		},
		{
			ID: "PERTAHANAN_1", Name: "Perisai Rotan", Category: "Pertahanan", Icon: "🛡️",
			Description: "Perisai anyaman yang ringan. Pertahanan Prajurit Infanteri +10%.",
			Cost:        TechCost{Resource: ResourceKayu, Amount: 350}, ResearchTime: 60,
			Bonus:    TechBonus{Kind: BonusTroopDefense, Troop: TroopInfanteri, Percentage: 10},
			Requires: BuildingRequirement{Name: BuildingPerguruan, Level: 1},
		},
		{
			ID: "PERTAHANAN_2", Name: "Zirah Lamina", Category: "Pertahanan", Icon: "🥋",
			Description: "Zirah lempeng bertumpuk. Pertahanan Pemanah +10%.",
			Cost:        TechCost{Resource: ResourceBijihBesi, Amount: 500}, ResearchTime: 120,
			Bonus:        TechBonus{Kind: BonusTroopDefense, Troop: TroopPemanah, Percentage: 10},
			Dependencies: []string{"PERTAHANAN_1"},
			Requires:     BuildingRequirement{Name: BuildingPerguruan, Level: 2},
		},
		{
			ID: "MEDIS_1", Name: "Ramuan Tabib", Category: "Medis", Icon: "🌿",
			Description: "Ramuan penyembuh luka. Pertahanan Prajurit Berkuda +5%.",
			Cost:        TechCost{Resource: ResourcePangan, Amount: 400}, ResearchTime: 90,
			Bonus:    TechBonus{Kind: BonusTroopDefense, Troop: TroopBerkuda, Percentage: 5},
			Requires: BuildingRequirement{Name: BuildingTabib, Level: 1},
		},
		{
			ID: "MEDIS_2", Name: "Balai Pengobatan", Category: "Medis", Icon: "⚕️",
			Description: "Perawatan mesin dan awaknya. Pertahanan Mesin Pengepung +10%.",
			Cost:        TechCost{Resource: ResourceBatu, Amount: 600}, ResearchTime: 150,
			Bonus:        TechBonus{Kind: BonusTroopDefense, Troop: TroopPengepung, Percentage: 10},
			Dependencies: []string{"MEDIS_1"},
			Requires:     BuildingRequirement{Name: BuildingTabib, Level: 2},
		},
	}

	out := make(map[string]Technology, len(techs))
	for _, t := range techs {
		out[t.ID] = t
	}
	return out
}
