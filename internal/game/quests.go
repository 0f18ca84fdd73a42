package game

// GoalKind enumerates quest and achievement goal types. RESEARCH_TECH is
// quest-only; RESEARCH_COUNT and RESOURCE_AMOUNT are achievement-only.
type GoalKind string

const (
	GoalBuildingLevel  GoalKind = "BUILDING_LEVEL"
	GoalTroopCount     GoalKind = "TROOP_COUNT"
	GoalResearchTech   GoalKind = "RESEARCH_TECH"
	GoalResearchCount  GoalKind = "RESEARCH_COUNT"
	GoalResourceAmount GoalKind = "RESOURCE_AMOUNT"
)

// Goal is a condition evaluated against the current state. Only the
// parameter matching Kind is meaningful.
type Goal struct {
	Kind     GoalKind
	Building BuildingName
	Troop    TroopType
	TechID   string
	Resource Resource
	Target   int
}

// Rewards is what completing a quest or achievement grants. Experience is
// unconditional; resources are clamped to warehouse capacity on grant.
type Rewards struct {
	Experience int
	Resources  map[Resource]int
}

// Quest is one link in the single-active quest chain. NextQuestID is empty
// at the end of the chain.
type Quest struct {
	ID          string
	Title       string
	Description string
	Goal        Goal
	Rewards     Rewards
	NextQuestID string
}

// Achievement is an independently unlockable goal. Unlike quests, every
// achievement is evaluated each tick and stays unlocked forever.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Goal        Goal
	Rewards     Rewards
}

// met reports whether the goal holds in the given state.
func (g Goal) met(s *State) bool {
	switch g.Kind {
	case GoalBuildingLevel:
		b := s.BuildingByName(g.Building)
		return b != nil && b.Level >= g.Target
	case GoalTroopCount:
		t := s.Troop(g.Troop)
		return t != nil && t.Count >= g.Target
	case GoalResearchTech:
		return s.HasResearched(g.TechID)
	case GoalResearchCount:
		return len(s.ResearchedTechnologies) >= g.Target
	case GoalResourceAmount:
		return int(s.Resources[g.Resource]) >= g.Target
	}
	return false
}

func defaultQuests() (map[string]Quest, string) {
	quests := []Quest{
		{
			ID: "Q1", Title: "Lumbung Kerajaan",
			Description: "Tingkatkan Sawah ke Tingkat 3 agar rakyat tidak kelaparan.",
			Goal:        Goal{Kind: GoalBuildingLevel, Building: BuildingSawah, Target: 3},
			Rewards:     Rewards{Experience: 100, Resources: map[Resource]int{ResourceKayu: 500}},
			NextQuestID: "Q2",
		},
		{
			ID: "Q2", Title: "Barisan Pertama",
			Description: "Latih 150 Prajurit Infanteri di Barak Prajurit.",
			Goal:        Goal{Kind: GoalTroopCount, Troop: TroopInfanteri, Target: 150},
			Rewards:     Rewards{Experience: 200, Resources: map[Resource]int{ResourcePangan: 1000}},
			NextQuestID: "Q3",
		},
		{
			ID: "Q3", Title: "Ilmu Kanuragan",
			Description: "Selesaikan penelitian Ilmu Pedang di Perguruan.",
			Goal:        Goal{Kind: GoalResearchTech, TechID: "MILITER_1"},
			Rewards:     Rewards{Experience: 300, Resources: map[Resource]int{ResourceEmas: 100}},
			NextQuestID: "Q4",
		},
		{
			ID: "Q4", Title: "Kejayaan Istana",
			Description: "Tingkatkan Istana ke Tingkat 2.",
			Goal:        Goal{Kind: GoalBuildingLevel, Building: BuildingIstana, Target: 2},
			Rewards:     Rewards{Experience: 500, Resources: map[Resource]int{ResourceBatu: 2000}},
			NextQuestID: "Q5",
		},
		{
			ID: "Q5", Title: "Mata Panah Madangkara",
			Description: "Bangun Lapangan Panah dan latih 50 Pemanah.",
			Goal:        Goal{Kind: GoalTroopCount, Troop: TroopPemanah, Target: 50},
			Rewards:     Rewards{Experience: 750, Resources: map[Resource]int{ResourceBijihBesi: 1500}},
			NextQuestID: "Q6",
		},
		{
			ID: "Q6", Title: "Gudang Penuh",
			Description: "Tingkatkan Gudang ke Tingkat 2 untuk memperluas penyimpanan.",
			Goal:        Goal{Kind: GoalBuildingLevel, Building: BuildingGudang, Target: 2},
			Rewards:     Rewards{Experience: 1000, Resources: map[Resource]int{ResourceEmas: 250}},
			NextQuestID: "",
		},
	}

	out := make(map[string]Quest, len(quests))
	for _, q := range quests {
		out[q.ID] = q
	}
	return out, "Q1"
}

func defaultAchievements() []Achievement {
	return []Achievement{
		{
			ID: "ACH_SAWAH_5", Title: "Petani Ulung",
			Description: "Capai Sawah Tingkat 5.",
			Goal:        Goal{Kind: GoalBuildingLevel, Building: BuildingSawah, Target: 5},
			Rewards:     Rewards{Experience: 250, Resources: map[Resource]int{ResourcePangan: 2000}},
		},
		{
			ID: "ACH_ISTANA_3", Title: "Singgasana Agung",
			Description: "Capai Istana Tingkat 3.",
			Goal:        Goal{Kind: GoalBuildingLevel, Building: BuildingIstana, Target: 3},
			Rewards:     Rewards{Experience: 1000, Resources: map[Resource]int{ResourceEmas: 500}},
		},
		{
			ID: "ACH_PASUKAN_500", Title: "Panglima Perang",
			Description: "Miliki 500 Prajurit Infanteri sekaligus.",
			Goal:        Goal{Kind: GoalTroopCount, Troop: TroopInfanteri, Target: 500},
			Rewards:     Rewards{Experience: 500, Resources: map[Resource]int{ResourceBijihBesi: 2500}},
		},
		{
			ID: "ACH_TEKNOLOGI_3", Title: "Cendekiawan",
			Description: "Selesaikan 3 penelitian.",
			Goal:        Goal{Kind: GoalResearchCount, Target: 3},
			Rewards:     Rewards{Experience: 400, Resources: map[Resource]int{ResourceKayu: 1500}},
		},
		{
			ID: "ACH_TEKNOLOGI_8", Title: "Mahaguru",
			Description: "Selesaikan 8 penelitian.",
			Goal:        Goal{Kind: GoalResearchCount, Target: 8},
			Rewards:     Rewards{Experience: 1500, Resources: map[Resource]int{ResourceEmas: 750}},
		},
		{
			ID: "ACH_EMAS_5000", Title: "Saudagar Kaya",
			Description: "Kumpulkan 5000 Emas.",
			Goal:        Goal{Kind: GoalResourceAmount, Resource: ResourceEmas, Target: 5000},
			Rewards:     Rewards{Experience: 800, Resources: map[Resource]int{ResourcePangan: 3000}},
		},
	}
}
