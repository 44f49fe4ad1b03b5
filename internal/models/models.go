package models

import "fmt"

const (
	// MaxRipple is the upper clamp of the ripple index.
	MaxRipple = 30
	// ParadoxThreshold is the ripple index at which a paradox fires.
	ParadoxThreshold = 12
)

// CivState is the dynamic half of a civilization, owned by a Session.
type CivState struct {
	Harmony  int
	Chaos    int
	Received []string
	Notes    []string
}

// Mood is a one-phrase summary used on the destination screen.
func (c *CivState) Mood() string {
	switch {
	case c.Harmony > c.Chaos+2:
		return "glowingly content"
	case c.Chaos > c.Harmony+2:
		return "dramatically wobbly"
	default:
		return "balanced"
	}
}

// Delivery is one entry of the append-only delivery log.
type Delivery struct {
	ParcelID       string `yaml:"parcel"`
	CivilizationID string `yaml:"civilization"`
}

// Session is the mutable state of one playthrough. The set of civilizations
// and known tags is fixed at creation. Passing an id that was not part of
// that set is a programming error and panics.
type Session struct {
	RippleIndex        int
	Turn               int
	Deliveries         []Delivery
	TagInfluence       map[string]int
	ParadoxesTriggered int
	ParadoxesResolved  int
	UnlockedFinal      bool
	GameOver           bool

	civs  map[string]*CivState
	order []string
}

// NewSession creates a session with one zeroed record per civilization id
// and one zeroed counter per known tag.
func NewSession(civIDs, tags []string) *Session {
	s := &Session{
		TagInfluence: make(map[string]int, len(tags)),
		civs:         make(map[string]*CivState, len(civIDs)),
		order:        append([]string(nil), civIDs...),
	}
	for _, id := range civIDs {
		s.civs[id] = &CivState{}
	}
	for _, tag := range tags {
		s.TagInfluence[tag] = 0
	}
	return s
}

// Civ returns the live record for a civilization.
func (s *Session) Civ(id string) *CivState {
	cs, ok := s.civs[id]
	if !ok {
		panic(fmt.Sprintf("models: unknown civilization %q", id))
	}
	return cs
}

// CivIDs returns civilization ids in display order.
func (s *Session) CivIDs() []string {
	return append([]string(nil), s.order...)
}

// RecordDelivery appends to the delivery log and the civilization's received list.
func (s *Session) RecordDelivery(parcelID, civID string) {
	cs := s.Civ(civID)
	cs.Received = append(cs.Received, parcelID)
	s.Deliveries = append(s.Deliveries, Delivery{ParcelID: parcelID, CivilizationID: civID})
}

// AdjustMood applies unclamped deltas to one civilization.
func (s *Session) AdjustMood(civID string, harmonyDelta, chaosDelta int) {
	cs := s.Civ(civID)
	cs.Harmony += harmonyDelta
	cs.Chaos += chaosDelta
}

// AdjustAllHarmony applies the same harmony delta to every civilization.
func (s *Session) AdjustAllHarmony(delta int) {
	for _, cs := range s.civs {
		cs.Harmony += delta
	}
}

// AdjustRipple applies delta and clamps the result to [0, MaxRipple].
func (s *Session) AdjustRipple(delta int) {
	s.RippleIndex = Clamp(s.RippleIndex+delta, 0, MaxRipple)
}

// BumpTagInfluence counts one occurrence of tag. Unknown tags are ignored.
func (s *Session) BumpTagInfluence(tag string) {
	if _, ok := s.TagInfluence[tag]; ok {
		s.TagInfluence[tag]++
	}
}

// AddNote appends a free-text note to a civilization.
func (s *Session) AddNote(civID, note string) {
	cs := s.Civ(civID)
	cs.Notes = append(cs.Notes, note)
}

// MeanHarmony is the average harmony across all civilizations.
func (s *Session) MeanHarmony() float64 {
	if len(s.order) == 0 {
		return 0
	}
	sum := 0
	for _, cs := range s.civs {
		sum += cs.Harmony
	}
	return float64(sum) / float64(len(s.order))
}

// Unlock marks the final puzzle as accepted. It never reverts.
func (s *Session) Unlock() {
	s.UnlockedFinal = true
}

// Retire ends the playthrough early. It never reverts.
func (s *Session) Retire() {
	s.GameOver = true
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
