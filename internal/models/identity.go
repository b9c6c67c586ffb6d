package models

import "github.com/google/uuid"

// EntityID implementations let the entity stores replace rows by id
// without knowing the concrete record type.

func (p Project) EntityID() uuid.UUID         { return p.ID }
func (t Task) EntityID() uuid.UUID            { return t.ID }
func (g Goal) EntityID() uuid.UUID            { return g.ID }
func (d DailyGoal) EntityID() uuid.UUID       { return d.ID }
func (h Habit) EntityID() uuid.UUID           { return h.ID }
func (l HabitLog) EntityID() uuid.UUID        { return l.ID }
func (d Day) EntityID() uuid.UUID             { return d.ID }
func (n Note) EntityID() uuid.UUID            { return n.ID }
func (c Category) EntityID() uuid.UUID        { return c.ID }
func (t Tag) EntityID() uuid.UUID             { return t.ID }
func (l TagLink) EntityID() uuid.UUID         { return l.ID }
func (t LearningTopic) EntityID() uuid.UUID   { return t.ID }
func (c LearningConcept) EntityID() uuid.UUID { return c.ID }
func (r Road) EntityID() uuid.UUID            { return r.ID }
func (m Milestone) EntityID() uuid.UUID       { return m.ID }
