package game

import "github.com/vovakirdan/tile2048/internal/board"

// Phase is the kind of animation currently playing.
type Phase int

const (
	PhaseNone  Phase = iota
	PhaseSlide       // Tiles travel from source to destination
	PhasePop         // Merged and new tiles appear
)

func (p Phase) String() string {
	switch p {
	case PhaseSlide:
		return "slide"
	case PhasePop:
		return "pop"
	default:
		return "none"
	}
}

// TileAnimation is one tile drawn by the current phase.
type TileAnimation struct {
	Value    int        // Value shown while animating
	From     board.Cell // Start cell
	To       board.Cell // End cell
	Progress float64    // 0.0 -> 1.0
	Merged   bool       // Result of a merge
	IsNew    bool       // Freshly spawned tile
}

// animator runs one phase at a time and calls its continuation when the
// phase completes.
type animator struct {
	phase    Phase
	tiles    []TileAnimation
	ticks    int
	duration int
	then     func()
}

// play starts a phase. With no duration or no tiles the continuation runs
// immediately.
func (g *Game) play(phase Phase, tiles []TileAnimation, then func()) {
	duration := g.phaseDuration(phase)
	if duration <= 0 || len(tiles) == 0 {
		g.anim.stop()
		if then != nil {
			then()
		}
		return
	}

	g.anim = animator{
		phase:    phase,
		tiles:    tiles,
		duration: duration,
		then:     then,
	}
}

func (g *Game) phaseDuration(phase Phase) int {
	if !g.cfg.Animation.Enabled {
		return 0
	}
	switch phase {
	case PhaseSlide:
		return g.cfg.Animation.SlideTicks
	case PhasePop:
		return g.cfg.Animation.PopTicks
	default:
		return 0
	}
}

// animating reports whether a phase is in progress.
func (a *animator) animating() bool {
	return a.phase != PhaseNone
}

// update advances the phase by one tick. When the phase completes its
// continuation runs exactly once; it may start the next phase.
func (a *animator) update() {
	if !a.animating() {
		return
	}

	a.ticks++
	progress := float64(a.ticks) / float64(a.duration)
	if progress > 1 {
		progress = 1
	}
	for i := range a.tiles {
		a.tiles[i].Progress = progress
	}

	if a.ticks >= a.duration {
		then := a.then
		a.stop()
		if then != nil {
			then()
		}
	}
}

// stop drops the current phase without running its continuation.
func (a *animator) stop() {
	*a = animator{}
}

// easeOutQuad provides smooth deceleration for sliding tiles.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
