package game

import "log/slog"

// Advance moves the simulation forward by one second. The step order is
// load-bearing:
//
//  1. bonuses from the researched set
//  2. per-resource production from pre-resolution building levels
//  3. decrement every timer; a timer at or below zero afterwards is finished
//  4. resolve finished timers in insertion order
//  5. recompute warehouse capacity if a capacity-granting construction finished
//  6. apply production, clamped to the capacity that was in effect at tick start
//  7. evaluate the active quest and all achievements against the resolved state
//
// Production earned this tick is therefore clamped by last tick's capacity
// even when a warehouse finished this tick; the new ceiling takes effect
// from the next tick onward.
func (c *Catalog) Advance(s *State) []Notification {
	preCapacity := s.WarehouseCapacity

	bonuses := c.ComputeBonuses(s.ResearchedTechnologies)

	production := map[Resource]float64{}
	for _, b := range s.Buildings {
		res, ok := c.Producers[b.Name]
		if !ok || b.Level <= 0 {
			continue
		}
		base := float64(b.Level) * c.ProductionPerLevel
		production[res] += base * (1 + bonuses.ResourceProduction[res]/100)
	}

	var active []*Timer
	var finished []*Timer
	for _, t := range s.Timers {
		t.TimeLeft--
		if t.TimeLeft <= 0 {
			finished = append(finished, t)
		} else {
			active = append(active, t)
		}
	}
	s.Timers = active

	capacityDirty := false
	for _, t := range finished {
		switch t.Kind {
		case TimerConstruction:
			c.resolveConstruction(s, t)
			if t.Construction != nil && t.Construction.Building == c.CapacityBuilding {
				capacityDirty = true
			}
		case TimerResearch:
			c.resolveResearch(s, t)
		case TimerTraining:
			c.resolveTraining(s, t)
		}
	}

	if capacityDirty {
		c.RecomputeCapacity(s)
	}

	for res, amount := range production {
		s.Resources[res] += amount
		if res.Capped() && s.Resources[res] > float64(preCapacity) {
			s.Resources[res] = float64(preCapacity)
		}
	}

	notes := c.checkQuest(s)
	notes = append(notes, c.checkAchievements(s)...)
	return notes
}

func (c *Catalog) resolveConstruction(s *State, t *Timer) {
	b := s.Building(t.SubjectID)
	if b == nil {
		slog.Warn("construction timer for unknown building", "subject_id", t.SubjectID)
		return
	}
	b.Level++
	if b.Name == BuildingIstana {
		s.Player.IstanaLevel = b.Level
	}
}

func (c *Catalog) resolveResearch(s *State, t *Timer) {
	if t.Research == nil {
		return
	}
	// Set semantics: a duplicate completion is a no-op.
	if s.HasResearched(t.Research.TechID) {
		return
	}
	s.ResearchedTechnologies = append(s.ResearchedTechnologies, t.Research.TechID)
}

func (c *Catalog) resolveTraining(s *State, t *Timer) {
	if t.Training == nil {
		return
	}
	tr := s.Troop(t.Training.Troop)
	if tr == nil {
		slog.Warn("training timer for unknown troop", "troop", t.Training.Troop)
		return
	}
	tr.Count += t.Training.Count
}

// checkQuest evaluates the active quest against the post-resolution state.
// On completion the rewards are granted (experience unconditionally,
// resources clamped to the capacity now in effect) and the chain pointer
// advances; earlier quests are never re-checked.
func (c *Catalog) checkQuest(s *State) []Notification {
	if s.CurrentQuestID == nil {
		return nil
	}
	quest, ok := c.Quests[*s.CurrentQuestID]
	if !ok {
		slog.Warn("active quest missing from catalog", "quest_id", *s.CurrentQuestID)
		s.CurrentQuestID = nil
		return nil
	}
	if !quest.Goal.met(s) {
		return nil
	}

	c.grantRewards(s, quest.Rewards)
	if quest.NextQuestID != "" {
		next := quest.NextQuestID
		s.CurrentQuestID = &next
	} else {
		s.CurrentQuestID = nil
	}

	return []Notification{{
		Kind:    "quest",
		Title:   "Titah Selesai: " + quest.Title,
		Message: quest.Description,
	}}
}

// checkAchievements evaluates every locked achievement. Unlocks are
// permanent and order-independent.
func (c *Catalog) checkAchievements(s *State) []Notification {
	var notes []Notification
	for _, a := range c.Achievements {
		if s.HasAchievement(a.ID) || !a.Goal.met(s) {
			continue
		}
		s.CompletedAchievements = append(s.CompletedAchievements, a.ID)
		c.grantRewards(s, a.Rewards)
		notes = append(notes, Notification{
			Kind:    "achievement",
			Title:   "Pencapaian: " + a.Title,
			Message: a.Description,
		})
	}
	return notes
}

func (c *Catalog) grantRewards(s *State, r Rewards) {
	s.Player.Experience += r.Experience
	for res, amount := range r.Resources {
		s.Resources[res] += float64(amount)
		if res.Capped() && s.Resources[res] > float64(s.WarehouseCapacity) {
			s.Resources[res] = float64(s.WarehouseCapacity)
		}
	}
}
