package rowan

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the declarative description for one identifier of one kind.
// A single flat struct covers all kinds; which fields are meaningful is
// decided by the kind the config is declared under.
type Config struct {
	// Placement (sprites and shapes)
	X        Position `yaml:"x"`
	Y        Position `yaml:"y"`
	Width    float64  `yaml:"width"`
	Height   float64  `yaml:"height"`
	Rotation float64  `yaml:"rotation"`

	// Structure
	Parent string `yaml:"parent"` // identifier of the parent sprite, if any
	Tag    string `yaml:"tag"`
	ZIndex int    `yaml:"z"`
	Mask   string `yaml:"mask"` // identifier of the masking object, if any

	// Sprite fields
	Path string `yaml:"path"` // asset path for the sprite's texture

	// Shape fields
	Color  Color   `yaml:"color"`
	Radius float64 `yaml:"radius"` // nonzero radius implies a 2r × 2r extent

	// Filter fields
	Target string  `yaml:"target"` // identifier or tag selecting the affected objects
	Amount float64 `yaml:"amount"`

	// Transition fields (keyframe schedule; see transition.go)
	Property string    `yaml:"property"`
	Frames   []float64 `yaml:"frames"`
	Times    []float64 `yaml:"times"` // seconds, same length as Frames, ascending
	Repeat   bool      `yaml:"repeat"`
}

// Alias maps a logical identifier to an underlying asset-path identifier.
// Parent and sprite references that miss a direct registry lookup are
// retried through this table.
type Alias struct {
	AssetPath string `yaml:"assetPath"`
}

// Snapshot is the full declarative input for one reconciliation pass,
// keyed by kind then identifier, plus the alias table.
type Snapshot struct {
	Sprites     map[string]*Config `yaml:"sprites"`
	Shapes      map[string]*Config `yaml:"shapes"`
	Filters     map[string]*Config `yaml:"filters"`
	Transitions map[string]*Config `yaml:"transitions"`
	Aliases     map[string]Alias   `yaml:"aliases"`
}

// Configs returns the identifier→config map for one kind. The map may be
// nil when the snapshot declares nothing of that kind.
func (s *Snapshot) Configs(k Kind) map[string]*Config {
	switch k {
	case KindSprite:
		return s.Sprites
	case KindShape:
		return s.Shapes
	case KindFilter:
		return s.Filters
	case KindTransition:
		return s.Transitions
	default:
		return nil
	}
}

// LoadSnapshot parses a YAML (or JSON, a YAML subset) snapshot document
// and validates it. The document layout is kind → identifier → config:
//
//	sprites:
//	  bg:
//	    path: assets/bg.png
//	    width: 320
//	    height: 240
//	    x: {value: 0, anchors: {self: 0.5, parent: 0.5}}
//	    y: 0
//	aliases:
//	  hero: {assetPath: assets/hero.png}
func LoadSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("rowan: parse snapshot: %w", err)
	}
	if err := snap.validate(); err != nil {
		return nil, fmt.Errorf("rowan: invalid snapshot: %w", err)
	}
	return &snap, nil
}

// validate checks the structural constraints a snapshot must satisfy
// before reconciliation may touch any live state.
func (s *Snapshot) validate() error {
	for _, k := range [...]Kind{KindSprite, KindShape} {
		for id, cfg := range s.Configs(k) {
			if cfg == nil {
				return fmt.Errorf("%s %q: empty config", kindNoun(k), id)
			}
			if err := validateAnchors(cfg.X.Anchors); err != nil {
				return fmt.Errorf("%s %q: x: %w", kindNoun(k), id, err)
			}
			if err := validateAnchors(cfg.Y.Anchors); err != nil {
				return fmt.Errorf("%s %q: y: %w", kindNoun(k), id, err)
			}
		}
	}
	for id, cfg := range s.Transitions {
		if cfg == nil {
			return fmt.Errorf("transition %q: empty config", id)
		}
		if len(cfg.Frames) < 2 {
			return fmt.Errorf("transition %q: need at least 2 frames, got %d", id, len(cfg.Frames))
		}
		if len(cfg.Times) != len(cfg.Frames) {
			return fmt.Errorf("transition %q: %d times for %d frames", id, len(cfg.Times), len(cfg.Frames))
		}
		for i := 1; i < len(cfg.Times); i++ {
			if cfg.Times[i] < cfg.Times[i-1] {
				return fmt.Errorf("transition %q: times must not decrease (index %d)", id, i)
			}
		}
		if cfg.Target == "" {
			return fmt.Errorf("transition %q: missing target", id)
		}
		if cfg.Property == "" {
			return fmt.Errorf("transition %q: missing property", id)
		}
	}
	for id, cfg := range s.Filters {
		if cfg == nil {
			return fmt.Errorf("filter %q: empty config", id)
		}
		if cfg.Target == "" {
			return fmt.Errorf("filter %q: missing target", id)
		}
	}
	return nil
}

func validateAnchors(a Anchors) error {
	if a.Self < 0 || a.Self > 1 {
		return fmt.Errorf("self anchor %v outside [0,1]", a.Self)
	}
	if a.Parent < 0 || a.Parent > 1 {
		return fmt.Errorf("parent anchor %v outside [0,1]", a.Parent)
	}
	return nil
}

// kindNoun is the singular form used in error messages.
func kindNoun(k Kind) string {
	switch k {
	case KindSprite:
		return "sprite"
	case KindShape:
		return "shape"
	case KindFilter:
		return "filter"
	case KindTransition:
		return "transition"
	default:
		return "object"
	}
}

// UnmarshalYAML accepts either the full mapping form
// {value: 0.25, anchors: {self: 0.5, parent: 0.5}} or a bare scalar,
// which is shorthand for the value with both anchors centered. Anchors
// omitted from the mapping form also default to 0.5; edge anchoring must
// be asked for explicitly.
func (p *Position) UnmarshalYAML(node *yaml.Node) error {
	p.Anchors = Anchors{Self: 0.5, Parent: 0.5}
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&p.Value)
	}
	var aux struct {
		Value   float64 `yaml:"value"`
		Anchors *struct {
			Self   *float64 `yaml:"self"`
			Parent *float64 `yaml:"parent"`
		} `yaml:"anchors"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	p.Value = aux.Value
	if aux.Anchors != nil {
		if aux.Anchors.Self != nil {
			p.Anchors.Self = *aux.Anchors.Self
		}
		if aux.Anchors.Parent != nil {
			p.Anchors.Parent = *aux.Anchors.Parent
		}
	}
	return nil
}
