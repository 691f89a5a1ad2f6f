package dinoblast

import (
	"time"

	"github.com/vovakirdan/dinoblast/internal/core"
)

// MarchResult is what one formation step did.
type MarchResult int

const (
	MarchNone       MarchResult = iota // Timer has not elapsed
	MarchTranslated                    // Moved horizontally
	MarchDescended                     // Moved down and reversed
)

// Formation owns the live dinos of a grid wave and marches them.
type Formation struct {
	dinos map[EntityID]*Dino
	order []EntityID // Creation order

	Dir      float64 // +1 right, -1 left
	timer    time.Duration
	interval time.Duration // 0 disables marching
	stepSize float64
	descent  float64

	cellW, cellH float64
	width        float64
	margin       float64
	slowFactor   float64

	left, right float64 // Cached bounding box edges
}

// NewFormation creates an empty formation for a playfield.
func NewFormation(cellW, cellH, width, margin, slowFactor float64) *Formation {
	return &Formation{
		dinos:      make(map[EntityID]*Dino),
		Dir:        1,
		cellW:      cellW,
		cellH:      cellH,
		width:      width,
		margin:     margin,
		slowFactor: slowFactor,
	}
}

// Configure sets march pacing for a wave. The interval is
// 1000ms / (marchSpeed * marchMult / 30).
func (f *Formation) Configure(marchSpeed, marchMult, descent float64) {
	f.Dir = 1
	f.timer = 0
	f.descent = descent
	f.stepSize = marchSpeed / 2
	adjusted := marchSpeed * marchMult
	if adjusted <= 0 {
		f.interval = 0
		return
	}
	f.interval = time.Duration(float64(time.Second) * 30 / adjusted)
}

// Interval returns the march interval, stretched while slowed.
func (f *Formation) Interval(slow bool) time.Duration {
	if slow && f.slowFactor > 0 {
		return time.Duration(float64(f.interval) / f.slowFactor)
	}
	return f.interval
}

// Add appends a dino to the formation.
func (f *Formation) Add(d *Dino) {
	d.Alive = true
	f.dinos[d.ID] = d
	f.order = append(f.order, d.ID)
	f.updateBounds()
}

// Get looks up a live dino by ID.
func (f *Formation) Get(id EntityID) (*Dino, bool) {
	d, ok := f.dinos[id]
	if !ok || !d.Alive {
		return nil, false
	}
	return d, true
}

// Remove takes a dino out of the formation. Unknown IDs are ignored.
func (f *Formation) Remove(id EntityID) {
	d, ok := f.dinos[id]
	if !ok {
		return
	}
	d.Alive = false
	delete(f.dinos, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	f.updateBounds()
}

// Live returns the live dinos in creation order.
func (f *Formation) Live() []*Dino {
	out := make([]*Dino, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.dinos[id])
	}
	return out
}

// Len returns the number of live dinos.
func (f *Formation) Len() int {
	return len(f.order)
}

// IsCleared reports whether no live dinos remain.
func (f *Formation) IsCleared() bool {
	return len(f.order) == 0
}

// Clear discards every dino.
func (f *Formation) Clear() {
	for _, d := range f.dinos {
		d.Alive = false
	}
	f.dinos = make(map[EntityID]*Dino)
	f.order = f.order[:0]
	f.left, f.right = 0, 0
}

// Bounds returns the cached left and right edges.
func (f *Formation) Bounds() (left, right float64, ok bool) {
	return f.left, f.right, len(f.order) > 0
}

// Box returns a dino's collision box.
func (f *Formation) Box(d *Dino) core.Box {
	return core.NewBox(d.Pos.X, d.Pos.Y, f.cellW, f.cellH)
}

func (f *Formation) updateBounds() {
	if len(f.order) == 0 {
		f.left, f.right = 0, 0
		return
	}
	first := f.dinos[f.order[0]]
	f.left = first.Pos.X - f.cellW/2
	f.right = first.Pos.X + f.cellW/2
	for _, id := range f.order[1:] {
		d := f.dinos[id]
		f.left = min(f.left, d.Pos.X-f.cellW/2)
		f.right = max(f.right, d.Pos.X+f.cellW/2)
	}
}

// Step advances the march timer and performs at most one march step.
// A step either translates every dino or, when the translation would carry
// the bounding box past the margin, descends and reverses. Never both.
func (f *Formation) Step(dt time.Duration, slow bool) MarchResult {
	if f.interval <= 0 || len(f.order) == 0 {
		return MarchNone
	}
	f.timer += dt
	if f.timer < f.Interval(slow) {
		return MarchNone
	}
	f.timer = 0
	return f.march()
}

func (f *Formation) march() MarchResult {
	f.updateBounds()
	step := f.Dir * f.stepSize

	// Only the edge in the direction of travel is checked.
	reverse := (f.Dir > 0 && f.right+step > f.width-f.margin) ||
		(f.Dir < 0 && f.left+step < f.margin)

	if reverse {
		for _, id := range f.order {
			f.dinos[id].Pos.Y += f.descent
		}
		f.Dir = -f.Dir
		return MarchDescended
	}

	for _, id := range f.order {
		f.dinos[id].Pos.X += step
	}
	f.left += step
	f.right += step
	return MarchTranslated
}
