// Package game implements the kingdom simulation core: the data model,
// the immutable catalogs, the one-second tick reducer, intent validation,
// and the quest/achievement tracker.
package game

// Resource identifies one of the five resource kinds. Emas (gold) is
// never capped by warehouse capacity; all others are.
type Resource string

const (
	ResourcePangan    Resource = "Pangan"
	ResourceKayu      Resource = "Kayu"
	ResourceBatu      Resource = "Batu"
	ResourceBijihBesi Resource = "BijihBesi"
	ResourceEmas      Resource = "Emas"
)

// AllResources lists every resource kind in display order.
func AllResources() []Resource {
	return []Resource{ResourcePangan, ResourceKayu, ResourceBatu, ResourceBijihBesi, ResourceEmas}
}

// Capped reports whether the resource is subject to the warehouse clamp.
func (r Resource) Capped() bool {
	return r != ResourceEmas
}

// Known reports whether r is one of the five resource kinds.
func (r Resource) Known() bool {
	switch r {
	case ResourcePangan, ResourceKayu, ResourceBatu, ResourceBijihBesi, ResourceEmas:
		return true
	}
	return false
}

// BuildingName identifies a building kind.
type BuildingName string

const (
	BuildingIstana        BuildingName = "Istana"
	BuildingSawah         BuildingName = "Sawah"
	BuildingPenggergajian BuildingName = "Penggergajian"
	BuildingTambangBatu   BuildingName = "Tambang Batu"
	BuildingTambangBesi   BuildingName = "Tambang Besi"
	BuildingBarak         BuildingName = "Barak Prajurit"
	BuildingLapanganPanah BuildingName = "Lapangan Panah"
	BuildingKandangKuda   BuildingName = "Kandang Kuda"
	BuildingBengkel       BuildingName = "Bengkel Senjata"
	BuildingPerguruan     BuildingName = "Perguruan"
	BuildingBenteng       BuildingName = "Benteng"
	BuildingGudang        BuildingName = "Gudang"
	BuildingTabib         BuildingName = "Tabib"
)

// Building is one building instance in the city. Level 0 means the
// building exists in the template list but has not been constructed yet
// (the military production buildings start locked). Buildings are created
// once at game start and never deleted; only timer resolution raises the
// level, by exactly one per resolved construction.
type Building struct {
	ID          int          `json:"id"`
	Name        BuildingName `json:"name"`
	Level       int          `json:"level"`
	Description string       `json:"description"`
	Icon        string       `json:"icon"`
}

// TroopType identifies a troop kind.
type TroopType string

const (
	TroopInfanteri TroopType = "Prajurit Infanteri"
	TroopPemanah   TroopType = "Pemanah"
	TroopBerkuda   TroopType = "Prajurit Berkuda"
	TroopPengepung TroopType = "Mesin Pengepung"
)

// AllTroopTypes lists every troop kind in display order.
func AllTroopTypes() []TroopType {
	return []TroopType{TroopInfanteri, TroopPemanah, TroopBerkuda, TroopPengepung}
}

// Troop holds the roster entry for one troop kind. Attack and defense are
// the base per-unit stats; research bonuses scale them at resolution time
// and are never written back here.
type Troop struct {
	Type    TroopType `json:"type"`
	Count   int       `json:"count"`
	Attack  int       `json:"attack"`
	Defense int       `json:"defense"`
}

// TimerKind tags the three in-flight action kinds.
type TimerKind string

const (
	TimerConstruction TimerKind = "building"
	TimerResearch     TimerKind = "research"
	TimerTraining     TimerKind = "training"
)

// ResearchSubjectID is the synthetic subject id for the single global
// research slot; it never collides with a building id.
const ResearchSubjectID = -1

// ConstructionPayload carries what a finished construction timer applies.
type ConstructionPayload struct {
	Building BuildingName `json:"building"`
	NewLevel int          `json:"new_level"`
}

// ResearchPayload carries the technology a finished research timer completes.
type ResearchPayload struct {
	TechID string `json:"tech_id"`
}

// TrainingPayload carries the troops a finished training timer delivers.
type TrainingPayload struct {
	Troop TroopType `json:"troop"`
	Count int       `json:"count"`
}

// Timer is an in-flight action counting down one second per tick. Exactly
// one payload field is set, matching Kind, so resolution can switch
// exhaustively. A timer fires exactly once, when TimeLeft reaches zero.
type Timer struct {
	SubjectID int       `json:"subject_id"`
	Kind      TimerKind `json:"kind"`
	TimeLeft  int       `json:"time_left"`

	Construction *ConstructionPayload `json:"construction,omitempty"`
	Research     *ResearchPayload     `json:"research,omitempty"`
	Training     *TrainingPayload     `json:"training,omitempty"`
}

// Player holds the ruler's progression counters. IstanaLevel mirrors the
// palace building level for display. Experience accumulates from quest and
// combat rewards; there is no level-up transition rule.
type Player struct {
	Name           string `json:"name"`
	Level          int    `json:"level"`
	Experience     int    `json:"experience"`
	ExpToNextLevel int    `json:"exp_to_next_level"`
	IstanaLevel    int    `json:"istana_level"`
	VIPLevel       int    `json:"vip_level"`
}

// State is the complete simulation snapshot. The engine owns exactly one
// State and mutates it under its lock; everything handed to observers or
// the API is a Clone.
type State struct {
	Player                 Player               `json:"player"`
	Resources              map[Resource]float64 `json:"resources"`
	WarehouseCapacity      int                  `json:"warehouse_capacity"`
	Buildings              []*Building          `json:"buildings"`
	Troops                 []*Troop             `json:"troops"`
	Timers                 []*Timer             `json:"timers"`
	ResearchedTechnologies []string             `json:"researched_technologies"`
	CurrentQuestID         *string              `json:"current_quest_id"`
	CompletedAchievements  []string             `json:"completed_achievements"`
}

// Building returns the building with the given id, or nil.
func (s *State) Building(id int) *Building {
	for _, b := range s.Buildings {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// BuildingByName returns the first building of the given kind, or nil.
func (s *State) BuildingByName(name BuildingName) *Building {
	for _, b := range s.Buildings {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Troop returns the roster entry for the given kind, or nil.
func (s *State) Troop(t TroopType) *Troop {
	for _, tr := range s.Troops {
		if tr.Type == t {
			return tr
		}
	}
	return nil
}

// HasResearched reports whether the technology id is in the researched set.
func (s *State) HasResearched(techID string) bool {
	for _, id := range s.ResearchedTechnologies {
		if id == techID {
			return true
		}
	}
	return false
}

// HasAchievement reports whether the achievement id has been unlocked.
func (s *State) HasAchievement(id string) bool {
	for _, a := range s.CompletedAchievements {
		if a == id {
			return true
		}
	}
	return false
}

// timerFor returns the active timer of the given kind for a subject id, or nil.
func (s *State) timerFor(subjectID int, kind TimerKind) *Timer {
	for _, t := range s.Timers {
		if t.SubjectID == subjectID && t.Kind == kind {
			return t
		}
	}
	return nil
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	out := &State{
		Player:            s.Player,
		Resources:         make(map[Resource]float64, len(s.Resources)),
		WarehouseCapacity: s.WarehouseCapacity,
	}
	for r, v := range s.Resources {
		out.Resources[r] = v
	}
	out.Buildings = make([]*Building, len(s.Buildings))
	for i, b := range s.Buildings {
		cp := *b
		out.Buildings[i] = &cp
	}
	out.Troops = make([]*Troop, len(s.Troops))
	for i, t := range s.Troops {
		cp := *t
		out.Troops[i] = &cp
	}
	out.Timers = make([]*Timer, len(s.Timers))
	for i, t := range s.Timers {
		cp := *t
		if t.Construction != nil {
			p := *t.Construction
			cp.Construction = &p
		}
		if t.Research != nil {
			p := *t.Research
			cp.Research = &p
		}
		if t.Training != nil {
			p := *t.Training
			cp.Training = &p
		}
		out.Timers[i] = &cp
	}
	out.ResearchedTechnologies = append([]string(nil), s.ResearchedTechnologies...)
	out.CompletedAchievements = append([]string(nil), s.CompletedAchievements...)
	if s.CurrentQuestID != nil {
		id := *s.CurrentQuestID
		out.CurrentQuestID = &id
	}
	return out
}

// Consequence is one signed resource delta from a narrative event choice.
type Consequence struct {
	Resource Resource `json:"resource"`
	Amount   int      `json:"amount"`
}

// EventChoice is one of the two options a narrative event offers.
type EventChoice struct {
	Text         string        `json:"text"`
	Consequences []Consequence `json:"consequences"`
}

// Event is a narrative event produced outside the simulation. The engine
// parks at most one pending event until the player chooses or dismisses.
type Event struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Choices     []EventChoice `json:"choices"`
}

// Notification is a user-visible signal emitted by the tick reducer
// (quest completed, achievement unlocked). It carries no state.
type Notification struct {
	Kind    string `json:"kind"` // "quest" or "achievement"
	Title   string `json:"title"`
	Message string `json:"message"`
}
