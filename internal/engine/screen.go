package engine

// Phase is where a playthrough currently waits for input.
type Phase int

const (
	PhaseTitle Phase = iota
	PhaseSelectParcel
	PhaseSelectCivilization
	PhaseAdvising
	PhaseParadox
	PhaseUnlockOffer
	PhaseContinue
	PhasePuzzle
	PhaseEnding
	PhaseCredits
	PhaseRetired
)

var phaseNames = [...]string{
	PhaseTitle:              "title",
	PhaseSelectParcel:       "select-parcel",
	PhaseSelectCivilization: "select-civilization",
	PhaseAdvising:           "advising",
	PhaseParadox:            "paradox",
	PhaseUnlockOffer:        "unlock-offer",
	PhaseContinue:           "continue",
	PhasePuzzle:             "puzzle",
	PhaseEnding:             "ending",
	PhaseCredits:            "credits",
	PhaseRetired:            "retired",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Terminal reports whether the playthrough is over in this phase.
func (p Phase) Terminal() bool {
	return p == PhaseCredits || p == PhaseRetired
}

// Tone is a presentation hint. Renderers that cannot style ignore it.
type Tone int

const (
	ToneNarrative Tone = iota
	ToneHeading
	ToneFlavor
	ToneHighlight
	ToneCalm
	ToneAlert
	ToneSuccess
	ToneCaution
	ToneMystic
)

type BlockKind int

const (
	BlockText BlockKind = iota
	BlockBox
	BlockArt
	BlockStatus
)

// Block is one unit of narrative output.
type Block struct {
	Kind   BlockKind
	Title  string
	Lines  []string
	Tone   Tone
	Status RippleStatus
	// Slow asks renderers that animate text to type these lines out.
	Slow bool
}

// Option is one selectable answer. Detail is a secondary line.
type Option struct {
	Key    string
	Label  string
	Detail string
}

// Screen is everything a renderer needs to show the current phase and ask
// for the next input.
type Screen struct {
	Phase   Phase
	Heading string
	Blocks  []Block
	Options []Option
	Prompt  string
	// Notice is set when the previous input was rejected.
	Notice string
}

func text(tone Tone, lines ...string) Block {
	return Block{Kind: BlockText, Tone: tone, Lines: lines}
}

func slow(tone Tone, lines ...string) Block {
	return Block{Kind: BlockText, Tone: tone, Lines: lines, Slow: true}
}

func box(tone Tone, title string, lines ...string) Block {
	return Block{Kind: BlockBox, Tone: tone, Title: title, Lines: lines}
}

func status(st RippleStatus) Block {
	return Block{Kind: BlockStatus, Status: st}
}
