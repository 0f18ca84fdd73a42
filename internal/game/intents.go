package game

import (
	"errors"
	"fmt"
)

// Validation rejections. These are reported to the caller with state left
// untouched; none of them are errors of the engine itself.
var (
	ErrUnknownBuilding       = errors.New("unknown building")
	ErrUnknownTech           = errors.New("unknown technology")
	ErrUnknownTroop          = errors.New("unknown troop type")
	ErrUnknownMonster        = errors.New("unknown monster")
	ErrSlotBusy              = errors.New("slot busy")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrDependencyUnmet       = errors.New("dependency unmet")
	ErrBuildingRequired      = errors.New("required building level unmet")
	ErrAlreadyResearched     = errors.New("technology already researched")
	ErrInvalidQuantity       = errors.New("invalid quantity")
)

// StartUpgrade validates and enqueues a construction timer for the
// building. All-or-nothing: on any rejection the state is unchanged.
func (c *Catalog) StartUpgrade(s *State, buildingID int) error {
	b := s.Building(buildingID)
	if b == nil {
		return fmt.Errorf("%w: id %d", ErrUnknownBuilding, buildingID)
	}
	if s.timerFor(buildingID, TimerConstruction) != nil {
		return fmt.Errorf("%w: %s is already upgrading", ErrSlotBusy, b.Name)
	}

	res, cost, baseTime := c.UpgradeCost(b.Name, b.Level+1)
	if s.Resources[res] < float64(cost) {
		return fmt.Errorf("%w: need %d %s", ErrInsufficientResources, cost, res)
	}

	bonuses := c.ComputeBonuses(s.ResearchedTechnologies)
	seconds := adjustedDuration(baseTime, bonuses.BuildingSpeed)

	s.Resources[res] -= float64(cost)
	s.Timers = append(s.Timers, &Timer{
		SubjectID: buildingID,
		Kind:      TimerConstruction,
		TimeLeft:  seconds,
		Construction: &ConstructionPayload{
			Building: b.Name,
			NewLevel: b.Level + 1,
		},
	})
	return nil
}

// StartTraining validates and enqueues a training timer at the building.
// The building must be the trainer for the troop kind and already
// constructed; every required resource is checked before any is deducted.
func (c *Catalog) StartTraining(s *State, buildingID int, troop TroopType, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	b := s.Building(buildingID)
	if b == nil {
		return fmt.Errorf("%w: id %d", ErrUnknownBuilding, buildingID)
	}
	if c.TrainingBuilding[b.Name] != troop {
		return fmt.Errorf("%w: %s does not train %s", ErrUnknownTroop, b.Name, troop)
	}
	if b.Level <= 0 {
		return fmt.Errorf("%w: %s is not built yet", ErrBuildingRequired, b.Name)
	}
	if s.timerFor(buildingID, TimerTraining) != nil {
		return fmt.Errorf("%w: %s is already training", ErrSlotBusy, b.Name)
	}

	stats, ok := c.Troops[troop]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTroop, troop)
	}
	for res, perUnit := range stats.Cost {
		if s.Resources[res] < float64(perUnit*quantity) {
			return fmt.Errorf("%w: need %d %s", ErrInsufficientResources, perUnit*quantity, res)
		}
	}

	for res, perUnit := range stats.Cost {
		s.Resources[res] -= float64(perUnit * quantity)
	}
	s.Timers = append(s.Timers, &Timer{
		SubjectID: buildingID,
		Kind:      TimerTraining,
		TimeLeft:  stats.Time * quantity,
		Training: &TrainingPayload{
			Troop: troop,
			Count: quantity,
		},
	})
	return nil
}

// StartResearch validates and enqueues the single global research timer.
// The building-speed bonus does not shorten research time unless the
// catalog's ResearchUsesSpeedBonus flag is set.
func (c *Catalog) StartResearch(s *State, techID string) error {
	tech, ok := c.Technologies[techID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTech, techID)
	}
	if s.HasResearched(techID) {
		return fmt.Errorf("%w: %s", ErrAlreadyResearched, techID)
	}
	for _, t := range s.Timers {
		if t.Kind == TimerResearch {
			return fmt.Errorf("%w: research already in progress", ErrSlotBusy)
		}
	}
	for _, dep := range tech.Dependencies {
		if !s.HasResearched(dep) {
			return fmt.Errorf("%w: requires %s", ErrDependencyUnmet, dep)
		}
	}
	if req := tech.Requires; req.Name != "" {
		b := s.BuildingByName(req.Name)
		if b == nil || b.Level < req.Level {
			return fmt.Errorf("%w: %s level %d", ErrBuildingRequired, req.Name, req.Level)
		}
	}
	if s.Resources[tech.Cost.Resource] < float64(tech.Cost.Amount) {
		return fmt.Errorf("%w: need %d %s", ErrInsufficientResources, tech.Cost.Amount, tech.Cost.Resource)
	}

	seconds := tech.ResearchTime
	if c.ResearchUsesSpeedBonus {
		bonuses := c.ComputeBonuses(s.ResearchedTechnologies)
		seconds = adjustedDuration(seconds, bonuses.BuildingSpeed)
	}

	s.Resources[tech.Cost.Resource] -= float64(tech.Cost.Amount)
	s.Timers = append(s.Timers, &Timer{
		SubjectID: ResearchSubjectID,
		Kind:      TimerResearch,
		TimeLeft:  seconds,
		Research:  &ResearchPayload{TechID: techID},
	})
	return nil
}

// ResolveEvent applies a narrative choice's resource deltas immediately.
// Each resource is floored at zero, then re-clamped to capacity for capped
// kinds. Unknown resource kinds are skipped.
func (c *Catalog) ResolveEvent(s *State, consequences []Consequence) {
	for _, q := range consequences {
		if !q.Resource.Known() {
			continue
		}
		s.Resources[q.Resource] += float64(q.Amount)
		if s.Resources[q.Resource] < 0 {
			s.Resources[q.Resource] = 0
		}
		if q.Resource.Capped() && s.Resources[q.Resource] > float64(s.WarehouseCapacity) {
			s.Resources[q.Resource] = float64(s.WarehouseCapacity)
		}
	}
}

// adjustedDuration shortens a base duration by a percentage speed bonus,
// never below one second.
func adjustedDuration(base int, speedBonusPercent float64) int {
	if speedBonusPercent <= 0 {
		return base
	}
	adjusted := int(float64(base) / (1 + speedBonusPercent/100))
	if adjusted < 1 {
		adjusted = 1
	}
	return adjusted
}
