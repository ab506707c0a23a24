package player

// State is the dual-buffer playback position: which slot is audible and
// which clip it is playing. Process-local, reset per query view.
type State struct {
	ActiveSlot int
	ClipIndex  int
}

// Action is what the imperative layer must do after an advance transition.
type Action int

const (
	// ActionNone: no clips, nothing to do.
	ActionNone Action = iota
	// ActionSeekActive: next clip shares the current media source; seek
	// the active slot in place instead of reloading.
	ActionSeekActive
	// ActionSwapSlots: the standby slot has the next clip preloaded and
	// ready; flip roles and resume on the formerly standby slot.
	ActionSwapSlots
	// ActionReloadActive: standby not ready; load fresh on the active
	// slot. A brief stall may be visible. Degraded but not an error.
	ActionReloadActive
)

// AdvanceEnv is the snapshot of slot readiness consulted by Advance.
type AdvanceEnv struct {
	ClipCount      int
	SameSource     bool
	StandbyClipTag int
	StandbyReady   bool
}

// Advance computes the next playback state when the active clip finishes.
// Pure so every transition path can be tested directly.
func Advance(s State, env AdvanceEnv) (State, Action) {
	if env.ClipCount == 0 {
		return s, ActionNone
	}
	next := (s.ClipIndex + 1) % env.ClipCount

	if env.SameSource {
		return State{ActiveSlot: s.ActiveSlot, ClipIndex: next}, ActionSeekActive
	}
	if env.StandbyReady && env.StandbyClipTag == next {
		return State{ActiveSlot: 1 - s.ActiveSlot, ClipIndex: next}, ActionSwapSlots
	}
	return State{ActiveSlot: s.ActiveSlot, ClipIndex: next}, ActionReloadActive
}
