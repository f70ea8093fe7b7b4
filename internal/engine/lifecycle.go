package engine

// Lifecycle is the contract a game implements. The engine calls Init once,
// then Update and Draw once per frame, always on the loop goroutine.
// Implementations must not block: time spent in a callback comes straight
// out of the frame budget.
type Lifecycle interface {
	// Init sets up game state. Called exactly once before the first frame.
	Init(rt *Runtime)

	// Update advances the game by one frame. Input has already been polled.
	Update(rt *Runtime)

	// Draw paints the current frame into rt.Display().
	Draw(rt *Runtime)
}

// Base provides no-op implementations of every Lifecycle method.
// Embed it and override only the hooks you need.
type Base struct{}

// Init does nothing.
func (Base) Init(*Runtime) {}

// Update does nothing.
func (Base) Update(*Runtime) {}

// Draw does nothing.
func (Base) Draw(*Runtime) {}

// LimitFrames wraps game so that the run stops after n frames.
// n == 0 returns game unchanged.
func LimitFrames(game Lifecycle, n uint64) Lifecycle {
	if n == 0 {
		return game
	}
	return &frameLimit{Lifecycle: game, limit: n}
}

type frameLimit struct {
	Lifecycle
	limit uint64
}

// Draw runs the wrapped Draw and requests a stop on the last allowed frame,
// unless the game already stopped itself. Frame() still reads the index of
// the frame being drawn here.
func (f *frameLimit) Draw(rt *Runtime) {
	f.Lifecycle.Draw(rt)
	if rt.Stopping() {
		return
	}
	if rt.Frame()+1 >= f.limit {
		rt.Logger().Debug("frame limit reached", "frames", f.limit)
		rt.Stop()
	}
}
