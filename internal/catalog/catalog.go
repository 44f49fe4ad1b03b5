package catalog

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

//go:embed narrative.yaml
var narrativeYAML []byte

// MinParcels is the smallest parcel catalog a playthrough accepts.
const MinParcels = 20

// Tags is a set of thematic tags. Order carries no meaning.
type Tags []string

// Has reports whether tag is in the set.
func (t Tags) Has(tag string) bool {
	return slices.Contains(t, tag)
}

// Intersects reports whether the two sets share at least one tag.
func (t Tags) Intersects(other Tags) bool {
	for _, tag := range t {
		if other.Has(tag) {
			return true
		}
	}
	return false
}

// Sorted returns a sorted copy, used for display.
func (t Tags) Sorted() []string {
	out := slices.Clone([]string(t))
	slices.Sort(out)
	return out
}

// Civilization is the static half of a destination timeline.
type Civilization struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Motto     string `yaml:"motto"`
	Art       string `yaml:"art"`
	Preferred Tags   `yaml:"preferred_tags"`
	Hated     Tags   `yaml:"hated_tags"`
}

// Parcel is a deliverable idea. Parcels are never consumed.
type Parcel struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Tags       Tags   `yaml:"tags"`
	BaseRipple int    `yaml:"base_ripple"`
}

// Catalog is the read-only content of a playthrough.
type Catalog struct {
	Tags          []string       `yaml:"tags"`
	Civilizations []Civilization `yaml:"civilizations"`
	Parcels       []Parcel       `yaml:"parcels"`
	Narrative     Narrative      `yaml:"-"`

	civIndex    map[string]int
	parcelIndex map[string]int
}

// Load parses and validates the embedded content.
func Load() (*Catalog, error) {
	return Parse(catalogYAML, narrativeYAML)
}

// MustLoad is Load for process start: a broken catalog aborts the program.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a Catalog from raw catalog and narrative documents.
func Parse(catalogData, narrativeData []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogData, &c); err != nil {
		return nil, fmt.Errorf("catalog.yaml: %w", err)
	}
	if err := yaml.Unmarshal(narrativeData, &c.Narrative); err != nil {
		return nil, fmt.Errorf("narrative.yaml: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	c.civIndex = make(map[string]int, len(c.Civilizations))
	for i, civ := range c.Civilizations {
		if _, dup := c.civIndex[civ.ID]; dup {
			return fmt.Errorf("catalog: duplicate civilization id %q", civ.ID)
		}
		c.civIndex[civ.ID] = i
	}
	c.parcelIndex = make(map[string]int, len(c.Parcels))
	for i, p := range c.Parcels {
		if _, dup := c.parcelIndex[p.ID]; dup {
			return fmt.Errorf("catalog: duplicate parcel id %q", p.ID)
		}
		c.parcelIndex[p.ID] = i
	}
	return nil
}

// Validate checks the startup guarantees of the catalog.
func (c *Catalog) Validate() error {
	if len(c.Civilizations) < 1 {
		return fmt.Errorf("catalog: need at least 1 civilization, have %d", len(c.Civilizations))
	}
	if len(c.Parcels) < MinParcels {
		return fmt.Errorf("catalog: need at least %d parcels, have %d", MinParcels, len(c.Parcels))
	}
	for _, civ := range c.Civilizations {
		if civ.ID == "" || civ.Name == "" {
			return fmt.Errorf("catalog: civilization %q is missing an id or name", civ.ID)
		}
	}
	for _, p := range c.Parcels {
		if p.ID == "" || p.Name == "" {
			return fmt.Errorf("catalog: parcel %q is missing an id or name", p.ID)
		}
		if len(p.Tags) == 0 {
			return fmt.Errorf("catalog: parcel %q has no tags", p.ID)
		}
		if p.BaseRipple < 0 {
			return fmt.Errorf("catalog: parcel %q has negative base ripple %d", p.ID, p.BaseRipple)
		}
	}
	if err := c.Narrative.Validate(); err != nil {
		return fmt.Errorf("narrative: %w", err)
	}
	return nil
}

// Civilization looks up a civilization by id.
func (c *Catalog) Civilization(id string) (Civilization, bool) {
	i, ok := c.civIndex[id]
	if !ok {
		return Civilization{}, false
	}
	return c.Civilizations[i], true
}

// Parcel looks up a parcel by id.
func (c *Catalog) Parcel(id string) (Parcel, bool) {
	i, ok := c.parcelIndex[id]
	if !ok {
		return Parcel{}, false
	}
	return c.Parcels[i], true
}

// CivilizationIDs returns the ids in display order.
func (c *Catalog) CivilizationIDs() []string {
	ids := make([]string, len(c.Civilizations))
	for i, civ := range c.Civilizations {
		ids[i] = civ.ID
	}
	return ids
}
