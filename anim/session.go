package anim

import "math"

// Defaults for a fade session.
const (
	DefaultFrameCount = 31
	DefaultPoolSize   = 4
)

// Session fakes a cross-fade on a surface that can only swap icons and
// toggle visibility. A pool of duplicate handles cycles through the fade
// states, each picking up the current frame while hidden, so that on every
// frame change the newest frame is shown on top of the previous one.
//
// Slots advance one state per frame change, not per Tick call: ticks that
// land on the frame already shown are ignored, so a fast tick rate does not
// run the stagger ahead of the frames.
//
// Session never touches the host: Tick returns the commands to apply.
// Initially slot 0 is visible showing frame 0 and every slot has been
// created with frame 0, hidden unless it is slot 0, at z = zBase + slot.
type Session struct {
	frames int
	pool   int

	states  []State
	shown   []int
	visible []bool
	z       []int

	last int
	done bool
}

// NewSession creates a session over frameCount frames with poolSize
// handles stacked from zBase. Counts below 1 are raised to 1. Pools smaller
// than DefaultPoolSize leave gaps where no slot is visible.
func NewSession(frameCount, poolSize, zBase int) *Session {
	frameCount = max(frameCount, 1)
	poolSize = max(poolSize, 1)
	s := &Session{
		frames:  frameCount,
		pool:    poolSize,
		states:  make([]State, poolSize),
		shown:   make([]int, poolSize),
		visible: make([]bool, poolSize),
		z:       make([]int, poolSize),
	}
	for k := range poolSize {
		s.z[k] = zBase + k
		if k == 0 {
			s.states[k] = StateVisible1
			s.visible[k] = true
			continue
		}
		s.states[k] = StatePre0 - State((k-1)%3)
	}
	return s
}

// FrameIndex maps progress in [0, 1] to one of n frames.
func FrameIndex(progress float64, n int) int {
	if n <= 1 || progress <= 0 || math.IsNaN(progress) {
		return 0
	}
	if progress >= 1 {
		return n - 1
	}
	return min(int(math.Floor(progress*float64(n))), n-1)
}

// FrameCount returns the number of frames.
func (s *Session) FrameCount() int { return s.frames }

// PoolSize returns the number of handles.
func (s *Session) PoolSize() int { return s.pool }

// InitiallyVisible reports whether slot must be created visible.
func (s *Session) InitiallyVisible(slot int) bool { return slot == 0 }

// Z returns the current z-index of slot.
func (s *Session) Z(slot int) int { return s.z[slot] }

// Frame returns the frame slot currently shows.
func (s *Session) Frame(slot int) int { return s.shown[slot] }

// Done reports whether the session has converged.
func (s *Session) Done() bool { return s.done }

// States returns a copy of the slot states.
func (s *Session) States() []State {
	return append([]State(nil), s.states...)
}

// Visible returns the visible slots in slot order.
func (s *Session) Visible() []int {
	var out []int
	for k, v := range s.visible {
		if v {
			out = append(out, k)
		}
	}
	return out
}

// Tick advances the session to progress and returns the host commands to
// apply in order. Every slot advances one state per frame change; ticks
// within the same frame return nothing. Progress >= 1 converges the pool
// onto the final frame. After convergence Tick returns nil.
func (s *Session) Tick(progress float64) []Command {
	if s.done {
		return nil
	}
	if progress >= 1 {
		return s.converge()
	}
	frame := FrameIndex(progress, s.frames)
	if frame == s.last {
		return nil
	}
	s.last = frame

	var cmds []Command
	for k := range s.states {
		next := s.states[k].Next()
		switch next {
		case StateVisible1:
			if s.shown[k] != frame {
				s.shown[k] = frame
				cmds = append(cmds, SetIcon(k, frame))
			}
			s.visible[k] = true
			cmds = append(cmds, SetVisible(k, true))
		case StatePostInvisible:
			s.visible[k] = false
			s.shown[k] = frame
			s.z[k] += s.pool
			cmds = append(cmds,
				SetVisible(k, false),
				SetIcon(k, frame),
				SetZIndex(k, s.z[k]),
			)
		}
		s.states[k] = next
	}
	return cmds
}

// converge shows the final frame on the topmost visible slot, or the
// topmost slot when none is visible, and hides every other slot.
func (s *Session) converge() []Command {
	final := s.frames - 1
	newest := -1
	for k := range s.states {
		if newest < 0 || betterNewest(s.visible[k], s.z[k], s.visible[newest], s.z[newest]) {
			newest = k
		}
	}

	var cmds []Command
	if s.shown[newest] != final {
		s.shown[newest] = final
		cmds = append(cmds, SetIcon(newest, final))
	}
	if !s.visible[newest] {
		s.visible[newest] = true
		cmds = append(cmds, SetVisible(newest, true))
	}
	s.states[newest] = StateVisible1
	for k := range s.states {
		if k == newest {
			continue
		}
		if s.visible[k] {
			s.visible[k] = false
			cmds = append(cmds, SetVisible(k, false))
		}
		s.states[k] = StatePostInvisible
	}
	s.last = final
	s.done = true
	return cmds
}

func betterNewest(vis bool, z int, curVis bool, curZ int) bool {
	if vis != curVis {
		return vis
	}
	return z > curZ
}
