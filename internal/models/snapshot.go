package models

import (
	"slices"

	"gopkg.in/yaml.v3"
)

// CivSnapshot is the exported view of one civilization's state.
type CivSnapshot struct {
	ID       string   `yaml:"id"`
	Harmony  int      `yaml:"harmony"`
	Chaos    int      `yaml:"chaos"`
	Received []string `yaml:"received,omitempty"`
	Notes    []string `yaml:"notes,omitempty"`
}

// Snapshot is a detached copy of a session, used to compare and print
// the outcome of a playthrough. Nothing reads it back.
type Snapshot struct {
	Turn               int            `yaml:"turn"`
	RippleIndex        int            `yaml:"ripple_index"`
	Deliveries         []Delivery     `yaml:"deliveries"`
	Civilizations      []CivSnapshot  `yaml:"civilizations"`
	TagInfluence       map[string]int `yaml:"tag_influence"`
	ParadoxesTriggered int            `yaml:"paradoxes_triggered"`
	ParadoxesResolved  int            `yaml:"paradoxes_resolved"`
	UnlockedFinal      bool           `yaml:"unlocked_final"`
	GameOver           bool           `yaml:"game_over"`
	QuizScore          int            `yaml:"quiz_score,omitempty"`
	Ending             string         `yaml:"ending,omitempty"`
}

// Snapshot copies the session. Civilizations keep display order.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Turn:               s.Turn,
		RippleIndex:        s.RippleIndex,
		Deliveries:         slices.Clone(s.Deliveries),
		TagInfluence:       make(map[string]int, len(s.TagInfluence)),
		ParadoxesTriggered: s.ParadoxesTriggered,
		ParadoxesResolved:  s.ParadoxesResolved,
		UnlockedFinal:      s.UnlockedFinal,
		GameOver:           s.GameOver,
	}
	for tag, n := range s.TagInfluence {
		snap.TagInfluence[tag] = n
	}
	for _, id := range s.order {
		cs := s.civs[id]
		snap.Civilizations = append(snap.Civilizations, CivSnapshot{
			ID:       id,
			Harmony:  cs.Harmony,
			Chaos:    cs.Chaos,
			Received: slices.Clone(cs.Received),
			Notes:    slices.Clone(cs.Notes),
		})
	}
	return snap
}

// YAML renders the snapshot. Map keys come out sorted.
func (s Snapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
