// Package palette assigns stable, distinguishable colors to appointments so
// blocks keep their identity across re-renders.
package palette

import (
	"math/rand"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	lightText = "#fafafa"
	darkText  = "#1a1a1a"
)

// Color pairs a block background with a text color that stays readable on it.
type Color struct {
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Assigner hands out one color per appointment id. Assignments are random
// but stable for the assigner's lifetime: once an id has a color it never
// changes until Reset. The random source is injected so tests can seed it.
type Assigner struct {
	mu     sync.Mutex
	rng    *rand.Rand
	colors map[string]Color
}

// NewAssigner builds an Assigner around the given random source.
func NewAssigner(rng *rand.Rand) *Assigner {
	return &Assigner{
		rng:    rng,
		colors: make(map[string]Color),
	}
}

// ColorFor returns the color assigned to the appointment id, generating and
// remembering a new one on first sight.
func (a *Assigner) ColorFor(appointmentID string) Color {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.colors[appointmentID]; ok {
		return c
	}
	c := a.generate()
	a.colors[appointmentID] = c
	return c
}

// Snapshot returns a copy of the current assignments.
func (a *Assigner) Snapshot() map[string]Color {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[string]Color, len(a.colors))
	for id, c := range a.colors {
		out[id] = c
	}
	return out
}

// Forget drops assignments for ids no longer present, keeping the map from
// growing across deleted appointments.
func (a *Assigner) Forget(keep map[string]struct{}) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id := range a.colors {
		if _, ok := keep[id]; !ok {
			delete(a.colors, id)
		}
	}
}

// Reset clears all assignments. Called when the appointment set itself is
// cleared so colors and appointments vanish together.
func (a *Assigner) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.colors = make(map[string]Color)
}

// generate samples a mid-saturation, mid-lightness HSL color. The band keeps
// backgrounds vivid enough to tell apart while guaranteeing contrast against
// one of the two fixed text colors.
func (a *Assigner) generate() Color {
	hue := a.rng.Float64() * 360
	saturation := 0.60 + a.rng.Float64()*0.20
	lightness := 0.45 + a.rng.Float64()*0.10

	background := colorful.Hsl(hue, saturation, lightness)

	text := lightText
	if lightness >= 0.50 {
		text = darkText
	}
	return Color{Background: background.Hex(), Text: text}
}
