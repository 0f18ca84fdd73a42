// Immutable game data: building templates, upgrade cost curves, troop
// stats, and the monster roster. Built once at startup and injected by
// reference wherever the rules are needed, so tests can swap in smaller
// catalogs.
package game

import "math"

// UpgradeCurve defines the per-kind construction cost curve.
// Cost(level) = floor(base × growth^(level−1)); build time is five seconds
// per hundred resources of cost.
type UpgradeCurve struct {
	Resource Resource
	BaseCost int
	Growth   float64
}

// TroopStats is the fixed per-kind training and combat data.
type TroopStats struct {
	Attack  int
	Defense int
	Cost    map[Resource]int // per unit
	Time    int              // seconds per unit
	Icon    string
}

// Monster is one fixed PvE target.
type Monster struct {
	ID      string
	Name    string
	Power   int
	Type    TroopType // the kind this monster fights as; countered kinds gain a bonus
	RewardExp      int
	RewardResource Resource
	RewardAmount   int
}

// Catalog bundles every fixed data table plus the rule constants the
// reducer needs. All fields are read-only after construction.
type Catalog struct {
	Buildings    []Building // templates, cloned into a fresh State
	UpgradeCosts map[BuildingName]UpgradeCurve

	// Production: each producer building yields ProductionPerLevel units of
	// its resource per level per tick. Emas is never produced this way.
	Producers          map[BuildingName]Resource
	ProductionPerLevel float64

	// Warehouse capacity is granted entirely by one building kind.
	CapacityBuilding BuildingName
	CapacityPerLevel int

	Troops           map[TroopType]TroopStats
	TrainingBuilding map[BuildingName]TroopType
	TroopCounters    map[TroopType]TroopType

	Technologies map[string]Technology

	Quests       map[string]Quest
	FirstQuestID string
	Achievements []Achievement

	Monsters []Monster

	// ResearchUsesSpeedBonus controls whether the building-speed research
	// bonus also shortens research time. Off by default: historically the
	// bonus applied to construction only.
	ResearchUsesSpeedBonus bool
}

// UpgradeCost returns the cost resource, amount, and unadjusted build time
// in seconds for raising a building kind to the given level.
func (c *Catalog) UpgradeCost(name BuildingName, level int) (Resource, int, int) {
	curve, ok := c.UpgradeCosts[name]
	if !ok {
		return ResourcePangan, math.MaxInt32, math.MaxInt32
	}
	cost := int(math.Floor(float64(curve.BaseCost) * math.Pow(curve.Growth, float64(level-1))))
	time := (cost / 100) * 5
	return curve.Resource, cost, time
}

// Monster returns the monster with the given id, or nil.
func (c *Catalog) Monster(id string) *Monster {
	for i := range c.Monsters {
		if c.Monsters[i].ID == id {
			return &c.Monsters[i]
		}
	}
	return nil
}

// NewState builds a fresh game for the named ruler from the catalog's
// templates and starting balances.
func (c *Catalog) NewState(playerName string) *State {
	s := &State{
		Player: Player{
			Name:           playerName,
			Level:          1,
			Experience:     0,
			ExpToNextLevel: 1000,
			IstanaLevel:    1,
			VIPLevel:       1,
		},
		Resources: map[Resource]float64{
			ResourcePangan:    10000,
			ResourceKayu:      10000,
			ResourceBatu:      10000,
			ResourceBijihBesi: 5000,
			ResourceEmas:      500,
		},
		Timers:                 []*Timer{},
		ResearchedTechnologies: []string{},
		CompletedAchievements:  []string{},
	}
	for _, tmpl := range c.Buildings {
		b := tmpl
		s.Buildings = append(s.Buildings, &b)
	}
	for _, tt := range AllTroopTypes() {
		stats := c.Troops[tt]
		count := 0
		if tt == TroopInfanteri {
			count = 100
		}
		s.Troops = append(s.Troops, &Troop{Type: tt, Count: count, Attack: stats.Attack, Defense: stats.Defense})
	}
	if c.FirstQuestID != "" {
		id := c.FirstQuestID
		s.CurrentQuestID = &id
	}
	c.RecomputeCapacity(s)
	return s
}

// RecomputeCapacity derives warehouse capacity from the current levels of
// the capacity-granting building kind. Stored capacity is never trusted;
// loads and capacity-affecting constructions both go through here.
func (c *Catalog) RecomputeCapacity(s *State) {
	capacity := 0
	for _, b := range s.Buildings {
		if b.Name == c.CapacityBuilding {
			capacity += b.Level * c.CapacityPerLevel
		}
	}
	s.WarehouseCapacity = capacity
}

// Default returns the standard Madangkara catalog.
func Default() *Catalog {
	c := &Catalog{
		Buildings: []Building{
			{ID: 1, Name: BuildingIstana, Level: 1, Description: "Jantung kerajaanmu. Meningkatkannya akan membuka bangunan dan fitur baru.", Icon: "🏰"},
			{ID: 2, Name: BuildingSawah, Level: 1, Description: "Menghasilkan Pangan untuk prajurit dan rakyatmu.", Icon: "🌾"},
			{ID: 3, Name: BuildingPenggergajian, Level: 1, Description: "Menghasilkan Kayu untuk pembangunan.", Icon: "🪵"},
			{ID: 4, Name: BuildingTambangBatu, Level: 1, Description: "Menghasilkan Batu untuk bangunan tingkat lanjut.", Icon: "🪨"},
			{ID: 5, Name: BuildingTambangBesi, Level: 1, Description: "Menghasilkan Bijih Besi untuk militer dan penelitian.", Icon: "⛏️"},
			{ID: 6, Name: BuildingBarak, Level: 1, Description: "Melatih Prajurit Infanteri.", Icon: "⚔️"},
			{ID: 7, Name: BuildingLapanganPanah, Level: 0, Description: "Melatih Pemanah.", Icon: "🏹"},
			{ID: 8, Name: BuildingKandangKuda, Level: 0, Description: "Melatih Prajurit Berkuda.", Icon: "🐎"},
			{ID: 9, Name: BuildingBengkel, Level: 0, Description: "Menciptakan Mesin Pengepung.", Icon: "⚙️"},
			{ID: 10, Name: BuildingPerguruan, Level: 1, Description: "Teliti teknologi dan ilmu kanuragan di sini.", Icon: "📜"},
			{ID: 11, Name: BuildingBenteng, Level: 1, Description: "Mempertahankan kotamu dari penyerbu.", Icon: "🧱"},
			{ID: 12, Name: BuildingGudang, Level: 1, Description: "Melindungi sumber dayamu dari penjarahan.", Icon: "📦"},
			{ID: 13, Name: BuildingTabib, Level: 1, Description: "Menyembuhkan prajuritmu yang terluka.", Icon: "⚕️"},
		},
		UpgradeCosts: map[BuildingName]UpgradeCurve{
			BuildingIstana:        {Resource: ResourceKayu, BaseCost: 1000, Growth: 2.5},
			BuildingSawah:         {Resource: ResourceKayu, BaseCost: 100, Growth: 1.5},
			BuildingPenggergajian: {Resource: ResourcePangan, BaseCost: 100, Growth: 1.5},
			BuildingTambangBatu:   {Resource: ResourceKayu, BaseCost: 250, Growth: 1.6},
			BuildingTambangBesi:   {Resource: ResourceKayu, BaseCost: 250, Growth: 1.6},
			BuildingBarak:         {Resource: ResourcePangan, BaseCost: 300, Growth: 1.8},
			BuildingLapanganPanah: {Resource: ResourceKayu, BaseCost: 500, Growth: 1.8},
			BuildingKandangKuda:   {Resource: ResourcePangan, BaseCost: 500, Growth: 1.8},
			BuildingBengkel:       {Resource: ResourceBatu, BaseCost: 800, Growth: 2.0},
			BuildingPerguruan:     {Resource: ResourceKayu, BaseCost: 600, Growth: 2.2},
			BuildingBenteng:       {Resource: ResourceBatu, BaseCost: 400, Growth: 1.9},
			BuildingGudang:        {Resource: ResourceKayu, BaseCost: 200, Growth: 1.7},
			BuildingTabib:         {Resource: ResourceBatu, BaseCost: 300, Growth: 1.8},
		},
		Producers: map[BuildingName]Resource{
			BuildingSawah:         ResourcePangan,
			BuildingPenggergajian: ResourceKayu,
			BuildingTambangBatu:   ResourceBatu,
			BuildingTambangBesi:   ResourceBijihBesi,
		},
		ProductionPerLevel: 5,
		CapacityBuilding:   BuildingGudang,
		CapacityPerLevel:   50000,
		Troops: map[TroopType]TroopStats{
			TroopInfanteri: {Attack: 10, Defense: 10, Cost: map[Resource]int{ResourcePangan: 50, ResourceBijihBesi: 10}, Time: 10, Icon: "🗡️"},
			TroopPemanah:   {Attack: 12, Defense: 8, Cost: map[Resource]int{ResourcePangan: 40, ResourceKayu: 30}, Time: 15, Icon: "🏹"},
			TroopBerkuda:   {Attack: 15, Defense: 6, Cost: map[Resource]int{ResourcePangan: 80, ResourceBijihBesi: 20}, Time: 25, Icon: "🐎"},
			TroopPengepung: {Attack: 20, Defense: 4, Cost: map[Resource]int{ResourceKayu: 150, ResourceBijihBesi: 100}, Time: 60, Icon: "⚙️"},
		},
		TrainingBuilding: map[BuildingName]TroopType{
			BuildingBarak:         TroopInfanteri,
			BuildingLapanganPanah: TroopPemanah,
			BuildingKandangKuda:   TroopBerkuda,
			BuildingBengkel:       TroopPengepung,
		},
		TroopCounters: map[TroopType]TroopType{
			TroopInfanteri: TroopPemanah,
			TroopPemanah:   TroopBerkuda,
			TroopBerkuda:   TroopInfanteri,
			TroopPengepung: TroopInfanteri,
		},
		Monsters: []Monster{
			{ID: "celeng", Name: "Celeng Raksasa", Power: 1000, Type: TroopInfanteri, RewardExp: 100, RewardResource: ResourcePangan, RewardAmount: 1000},
			{ID: "garuda", Name: "Garuda", Power: 3000, Type: TroopBerkuda, RewardExp: 300, RewardResource: ResourceKayu, RewardAmount: 2000},
			{ID: "raksasa_batu", Name: "Raksasa Batu", Power: 8000, Type: TroopPengepung, RewardExp: 800, RewardResource: ResourceBatu, RewardAmount: 5000},
		},
	}
	c.Technologies = defaultTechnologies()
	c.Quests, c.FirstQuestID = defaultQuests()
	c.Achievements = defaultAchievements()
	return c
}
