package catalog

import (
	"errors"
	"fmt"
)

// Ending ids, in order of preference.
const (
	EndingGoldenHarmony     = "golden_harmony"
	EndingBittersweetMosaic = "bittersweet_mosaic"
	EndingChaoticCarousel   = "chaotic_carousel"
)

// Narrative holds every fixed dialogue tree and random pool.
type Narrative struct {
	Title           []string    `yaml:"title"`
	Subtitle        string      `yaml:"subtitle"`
	Presenter       string      `yaml:"presenter"`
	Intro           []string    `yaml:"intro"`
	SideEffects     []string    `yaml:"side_effects"`
	DeliveryPhases  []string    `yaml:"delivery_phases"`
	MissionScenes   []string    `yaml:"mission_scenes"`
	MissionQuestion string      `yaml:"mission_question"`
	Advice          []Advice    `yaml:"advice"`
	Paradox         Paradox     `yaml:"paradox"`
	Unlock          Box         `yaml:"unlock"`
	Puzzle          Puzzle      `yaml:"puzzle"`
	Endings         []Ending    `yaml:"endings"`
	Credits         Credits     `yaml:"credits"`
	Retire          []string    `yaml:"retire"`
	Farewell        string      `yaml:"farewell"`
	RippleNotes     RippleNotes `yaml:"ripple_notes"`
	Rejections      Rejections  `yaml:"rejections"`
}

// Box is a titled block of lines.
type Box struct {
	Title string   `yaml:"title"`
	Lines []string `yaml:"lines"`
}

// Advice is one mission debrief option applied to the current civilization.
type Advice struct {
	ID      string `yaml:"id"`
	Label   string `yaml:"label"`
	Harmony int    `yaml:"harmony"`
	Chaos   int    `yaml:"chaos"`
	Ripple  int    `yaml:"ripple"`
	Flavor  string `yaml:"flavor"`
}

type Paradox struct {
	Title     string            `yaml:"title"`
	Lines     []string          `yaml:"lines"`
	Scenarios []ParadoxScenario `yaml:"scenarios"`
}

type ParadoxScenario struct {
	ID      string         `yaml:"id"`
	Text    string         `yaml:"text"`
	Options []ParadoxPatch `yaml:"options"`
}

// ParadoxPatch nudges ripple and the harmony of every civilization at once.
type ParadoxPatch struct {
	ID         string `yaml:"id"`
	Label      string `yaml:"label"`
	Ripple     int    `yaml:"ripple"`
	HarmonyAll int    `yaml:"harmony_all"`
	Flavor     string `yaml:"flavor"`
}

type Puzzle struct {
	Title     string     `yaml:"title"`
	Lines     []string   `yaml:"lines"`
	Analyzing string     `yaml:"analyzing"`
	Steps     []QuizStep `yaml:"steps"`
}

type QuizStep struct {
	ID      string       `yaml:"id"`
	Prompt  string       `yaml:"prompt"`
	Options []QuizOption `yaml:"options"`
}

// QuizOption contributes Score (0 or 1) to the final puzzle.
type QuizOption struct {
	ID     string `yaml:"id"`
	Label  string `yaml:"label"`
	Score  int    `yaml:"score"`
	Flavor string `yaml:"flavor"`
}

type Ending struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Body    []string `yaml:"body"`
	Closing []string `yaml:"closing"`
}

type Credits struct {
	Title   string   `yaml:"title"`
	Lines   []string `yaml:"lines"`
	Closing []string `yaml:"closing"`
}

type RippleNotes struct {
	Stable   string `yaml:"stable"`
	Spicy    string `yaml:"spicy"`
	Critical string `yaml:"critical"`
}

// Rejections are shown when a selection cannot be understood.
type Rejections struct {
	Parcel      string `yaml:"parcel"`
	Destination string `yaml:"destination"`
	Advice      string `yaml:"advice"`
	Paradox     string `yaml:"paradox"`
	Puzzle      string `yaml:"puzzle"`
}

// Ending returns the ending with the given id.
func (n *Narrative) Ending(id string) (Ending, bool) {
	for _, e := range n.Endings {
		if e.ID == id {
			return e, true
		}
	}
	return Ending{}, false
}

// Validate checks that every pool the game draws from is populated.
func (n *Narrative) Validate() error {
	var errs []error
	if len(n.SideEffects) == 0 {
		errs = append(errs, errors.New("side_effects is empty"))
	}
	if len(n.MissionScenes) == 0 {
		errs = append(errs, errors.New("mission_scenes is empty"))
	}
	if len(n.Advice) != 3 {
		errs = append(errs, fmt.Errorf("advice needs 3 options, has %d", len(n.Advice)))
	}
	if len(n.Paradox.Scenarios) == 0 {
		errs = append(errs, errors.New("paradox.scenarios is empty"))
	}
	for _, s := range n.Paradox.Scenarios {
		if len(s.Options) != 3 {
			errs = append(errs, fmt.Errorf("paradox scenario %q needs 3 options, has %d", s.ID, len(s.Options)))
		}
	}
	if len(n.Puzzle.Steps) != 3 {
		errs = append(errs, fmt.Errorf("puzzle needs 3 steps, has %d", len(n.Puzzle.Steps)))
	}
	for _, step := range n.Puzzle.Steps {
		if len(step.Options) == 0 {
			errs = append(errs, fmt.Errorf("puzzle step %q has no options", step.ID))
		}
		for _, opt := range step.Options {
			if opt.Score != 0 && opt.Score != 1 {
				errs = append(errs, fmt.Errorf("puzzle option %q scores %d, want 0 or 1", opt.ID, opt.Score))
			}
		}
	}
	for _, id := range []string{EndingGoldenHarmony, EndingBittersweetMosaic, EndingChaoticCarousel} {
		if _, ok := n.Ending(id); !ok {
			errs = append(errs, fmt.Errorf("ending %q is missing", id))
		}
	}
	return errors.Join(errs...)
}
