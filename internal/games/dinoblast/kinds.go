package dinoblast

import (
	"github.com/vovakirdan/dinoblast/internal/config"
	"github.com/vovakirdan/dinoblast/internal/core"
)

// DinoKind is the enemy variant.
type DinoKind int

const (
	KindRaptor DinoKind = iota
	KindPtero
	KindTrike
	KindBomber
	KindSplitter
	KindHatchling // Spawned by a splitter's death
	kindCount
)

// Trait is the special death behaviour of a variant.
type Trait int

const (
	TraitNone     Trait = iota
	TraitExplodes       // Kills neighbours within a radius on a stagger
	TraitSplits         // Spawns two offspring
)

// KindSpec is the resolved tuning for one variant.
type KindSpec struct {
	Kind          DinoKind
	Token         rune
	Name          string
	HP            int
	Score         int
	ShootChance   float64
	Trait         Trait
	ExplodeRadius float64
	SplitInto     DinoKind
	SplitOffset   float64
}

// Traits returns the death traits of the variant. Plain variants return nil.
func (s KindSpec) Traits() []Trait {
	if s.Trait == TraitNone {
		return nil
	}
	return []Trait{s.Trait}
}

// defaultScore is awarded for variants without a configured score.
const defaultScore = 10

var kindTokens = [kindCount]rune{
	KindRaptor:    config.TokenRaptor,
	KindPtero:     config.TokenPtero,
	KindTrike:     config.TokenTrike,
	KindBomber:    config.TokenBomber,
	KindSplitter:  config.TokenSplitter,
	KindHatchling: 's',
}

// String returns the variant name.
func (k DinoKind) String() string {
	switch k {
	case KindRaptor:
		return "raptor"
	case KindPtero:
		return "ptero"
	case KindTrike:
		return "trike"
	case KindBomber:
		return "bomber"
	case KindSplitter:
		return "splitter"
	case KindHatchling:
		return "hatchling"
	default:
		return "unknown"
	}
}

// Glyph returns the display character for a variant.
func (k DinoKind) Glyph() rune {
	if k >= 0 && k < kindCount {
		return kindTokens[k]
	}
	return '?'
}

// Color returns the display color for a variant.
func (k DinoKind) Color() core.Color {
	switch k {
	case KindRaptor:
		return core.ColorGreen
	case KindPtero:
		return core.ColorCyan
	case KindTrike:
		return core.ColorYellow
	case KindBomber:
		return core.ColorRed
	case KindSplitter:
		return core.ColorMagenta
	case KindHatchling:
		return core.ColorBrightMagenta
	default:
		return core.ColorWhite
	}
}

// kindForToken maps a layout token to a variant.
func kindForToken(r rune) (DinoKind, bool) {
	for k, tok := range kindTokens {
		if tok == r {
			return DinoKind(k), true
		}
	}
	return 0, false
}

// kindTable holds the resolved spec of every variant.
type kindTable [kindCount]KindSpec

// buildKinds resolves variant tuning from config. Variants missing from the
// config keep one hit point, the default score and never shoot.
func buildKinds(types map[string]config.DinoTypeConfig) kindTable {
	var t kindTable
	for k := DinoKind(0); k < kindCount; k++ {
		spec := KindSpec{Kind: k, Token: kindTokens[k], Name: k.String(), HP: 1, Score: defaultScore}
		if tc, ok := types[string(kindTokens[k])]; ok {
			if tc.Name != "" {
				spec.Name = tc.Name
			}
			if tc.HP > 0 {
				spec.HP = tc.HP
			}
			if tc.Score > 0 {
				spec.Score = tc.Score
			}
			spec.ShootChance = tc.ShootChance
			switch {
			case tc.ExplodeRadius > 0:
				spec.Trait = TraitExplodes
				spec.ExplodeRadius = tc.ExplodeRadius
			case tc.SplitInto != "":
				child, ok := kindForToken([]rune(tc.SplitInto)[0])
				if ok && child != k {
					spec.Trait = TraitSplits
					spec.SplitInto = child
					spec.SplitOffset = tc.SplitOffset
				}
			}
		}
		t[k] = spec
	}
	return t
}

// Spec returns the tuning for a variant.
func (t *kindTable) Spec(k DinoKind) KindSpec {
	if k < 0 || k >= kindCount {
		return KindSpec{Kind: k, HP: 1, Score: defaultScore}
	}
	return t[k]
}
