package model

import (
	"time"

	"github.com/google/uuid"
)

// Scenario is a named, saved set of model parameters. The production input is
// always present; calculator inputs are optional.
type Scenario struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	CreatedAt   string            `json:"created_at" yaml:"created_at"`
	UpdatedAt   string            `json:"updated_at" yaml:"updated_at"`
	Production  ProductionInput   `json:"production" yaml:"production"`
	Inventory   *InventoryInput   `json:"inventory,omitempty" yaml:"inventory,omitempty"`
	Queue       *QueueInput       `json:"queue,omitempty" yaml:"queue,omitempty"`
	Reliability *ReliabilityInput `json:"reliability,omitempty" yaml:"reliability,omitempty"`
	History     History           `json:"history" yaml:"history"`
}

// NewScenario creates a scenario with a fresh short ID.
func NewScenario(name, description string, production ProductionInput) Scenario {
	now := time.Now().UTC().Format(time.RFC3339)
	return Scenario{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Production:  production.Clone(),
		History:     NewHistory(),
	}
}

// Update replaces the production input, recording the previous one for undo.
func (s *Scenario) Update(production ProductionInput, label string) {
	s.History.Push(MakeSnapshot(s.Production, label))
	s.Production = production.Clone()
	s.touch()
}

// Undo restores the previous production input. Returns false if there is nothing to undo.
func (s *Scenario) Undo() bool {
	prev, ok := s.History.Undo(MakeSnapshot(s.Production, "undo"))
	if !ok {
		return false
	}
	s.Production = prev.Production
	s.touch()
	return true
}

// Redo re-applies an undone production input. Returns false if there is nothing to redo.
func (s *Scenario) Redo() bool {
	next, ok := s.History.Redo(MakeSnapshot(s.Production, "redo"))
	if !ok {
		return false
	}
	s.Production = next.Production
	s.touch()
	return true
}

func (s *Scenario) touch() {
	s.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// ScenarioStore holds a collection of scenarios.
type ScenarioStore struct {
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios"`
}

// NewScenarioStore creates an empty scenario store.
func NewScenarioStore() ScenarioStore {
	return ScenarioStore{
		Scenarios: []Scenario{},
	}
}

// Add adds a scenario to the store.
func (ss *ScenarioStore) Add(s Scenario) {
	ss.Scenarios = append(ss.Scenarios, s)
}

// Put replaces the scenario with the same name, or adds it.
func (ss *ScenarioStore) Put(s Scenario) {
	if existing := ss.FindByName(s.Name); existing != nil {
		*existing = s
		return
	}
	ss.Add(s)
}

// Remove removes a scenario by ID or name. Returns true if found and removed.
func (ss *ScenarioStore) Remove(key string) bool {
	for i, s := range ss.Scenarios {
		if s.ID == key || s.Name == key {
			ss.Scenarios = append(ss.Scenarios[:i], ss.Scenarios[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the scenario with the given ID, or nil.
func (ss *ScenarioStore) FindByID(id string) *Scenario {
	for i := range ss.Scenarios {
		if ss.Scenarios[i].ID == id {
			return &ss.Scenarios[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first scenario with the given name, or nil.
func (ss *ScenarioStore) FindByName(name string) *Scenario {
	for i := range ss.Scenarios {
		if ss.Scenarios[i].Name == name {
			return &ss.Scenarios[i]
		}
	}
	return nil
}

// Find looks a scenario up by ID first, then by name.
func (ss *ScenarioStore) Find(key string) *Scenario {
	if s := ss.FindByID(key); s != nil {
		return s
	}
	return ss.FindByName(key)
}

// Names returns the scenario names in store order.
func (ss *ScenarioStore) Names() []string {
	names := make([]string, len(ss.Scenarios))
	for i, s := range ss.Scenarios {
		names[i] = s.Name
	}
	return names
}
