package player

import (
	"fmt"
	"math"

	"github.com/clipreel/clipreel/internal/clip"
)

const (
	// advanceEpsilon is how close to a clip's end the playhead must get
	// before the engine advances.
	advanceEpsilon = 0.05
	// seekNudge keeps seeks just past the clip boundary so the previous
	// segment's last frame never flashes.
	seekNudge = 0.02
	// resumeDrift is the position error tolerated when restoring playback
	// after a layout reattachment.
	resumeDrift = 0.5
)

// PlaybackCache is the position snapshot captured on every time-update tick
// and restored when a sticky layout change detaches and reattaches the
// active element.
type PlaybackCache struct {
	Time   float64
	Src    string
	Paused bool
}

// Config wires a Player to its two media buffers.
type Config struct {
	Slots [2]Media
	// ResolveURL maps a clip's video path to a playable media URL.
	// Defaults to the identity function.
	ResolveURL func(string) string
	// ReadyThreshold is the buffered-readiness level a standby slot must
	// reach to be eligible for a gapless swap. Defaults to
	// ReadyCurrentData.
	ReadyThreshold ReadyState
	// OnClipChange, when set, is invoked with the new clip index after
	// every advance or jump, so the host view can sync the carousel and
	// sentence highlighting.
	OnClipChange func(index int)
}

// Player plays a clip sequence back-to-back across two alternating buffers,
// preloading the next clip into the standby slot while the active one plays.
// All methods must be called from the host's event loop; the Player is the
// sole writer to its two slots.
type Player struct {
	slots          [2]Media
	resolve        func(string) string
	readyThreshold ReadyState
	onClipChange   func(int)

	clips   []clip.Clip
	state   State
	cache   PlaybackCache
	loadKey string
}

func New(cfg Config) *Player {
	p := &Player{
		slots:          cfg.Slots,
		resolve:        cfg.ResolveURL,
		readyThreshold: cfg.ReadyThreshold,
		onClipChange:   cfg.OnClipChange,
	}
	if p.resolve == nil {
		p.resolve = func(s string) string { return s }
	}
	if p.readyThreshold == ReadyNothing {
		p.readyThreshold = ReadyCurrentData
	}
	for i := range p.slots {
		if m := p.slots[i]; m != nil {
			slot := i
			m.OnTimeUpdate(func() { p.HandleTimeUpdate(slot) })
			m.OnEnded(func() { p.HandleEnded(slot) })
		}
	}
	return p
}

// SetClips replaces the clip sequence, clamping the clip index when the new
// sequence is shorter, and loads the current clip plus the standby preload.
// The load key encodes the clip identity, so setting an identical sequence
// reloads nothing.
func (p *Player) SetClips(clips []clip.Clip) {
	p.clips = clips
	if p.state.ClipIndex >= len(clips) {
		p.state.ClipIndex = 0
	}
	p.syncSlots()
}

// Reset returns all derived playback state to initial values. Called on a
// query change so no stale state leaks into the next view.
func (p *Player) Reset() {
	p.clips = nil
	p.state = State{}
	p.cache = PlaybackCache{}
	p.loadKey = ""
}

func (p *Player) State() State         { return p.state }
func (p *Player) Cache() PlaybackCache { return p.cache }

// ActiveClip returns the clip the active slot should be playing.
func (p *Player) ActiveClip() (clip.Clip, bool) {
	if p.state.ClipIndex < 0 || p.state.ClipIndex >= len(p.clips) {
		return clip.Clip{}, false
	}
	return p.clips[p.state.ClipIndex], true
}

func (p *Player) active() Media  { return p.slots[p.state.ActiveSlot] }
func (p *Player) standby() Media { return p.slots[1-p.state.ActiveSlot] }

// HandleTimeUpdate processes a time-update tick from one of the two slots.
// Ticks from the standby slot are ignored. The playback position is cached
// on every tick, and reaching the clip's end boundary advances the sequence.
func (p *Player) HandleTimeUpdate(slot int) {
	active, ok := p.ActiveClip()
	if !ok || slot != p.state.ActiveSlot {
		return
	}
	m := p.active()
	if m == nil {
		return
	}
	p.cache = PlaybackCache{Time: m.CurrentTime(), Src: m.Source(), Paused: m.Paused()}
	if m.CurrentTime() >= active.End-advanceEpsilon {
		p.AdvanceClip()
	}
}

// HandleEnded processes a natural end-of-stream signal from a slot.
func (p *Player) HandleEnded(slot int) {
	if slot != p.state.ActiveSlot {
		return
	}
	p.AdvanceClip()
}

// AdvanceClip moves to the next clip in sequence. Same-source clips reuse
// the active slot with a bare seek; otherwise a ready standby slot is
// swapped in for gapless playback, falling back to a fresh load on the
// active slot when the standby is not ready.
func (p *Player) AdvanceClip() {
	n := len(p.clips)
	if n == 0 {
		return
	}
	current := p.clips[p.state.ClipIndex]
	nextIdx := (p.state.ClipIndex + 1) % n
	next := p.clips[nextIdx]

	env := AdvanceEnv{ClipCount: n}
	currentSrc := p.resolve(current.VideoPath)
	env.SameSource = currentSrc != "" && currentSrc == p.resolve(next.VideoPath)
	if standby := p.standby(); standby != nil {
		env.StandbyClipTag = standby.ClipTag()
		env.StandbyReady = standby.ReadyState() >= p.readyThreshold
	}

	newState, action := Advance(p.state, env)
	p.state = newState

	switch action {
	case ActionSeekActive:
		m := p.active()
		m.Seek(math.Max(0, next.Start+seekNudge))
		m.SetClipTag(nextIdx)
		if err := m.Play(); err != nil {
			// autoplay may be blocked; stay paused
		}
		p.loadKey = p.loadKeyFor(next)
		p.preloadStandby()
	case ActionSwapSlots:
		// The newly active slot was preloaded seeked and paused, so its
		// position is already at the clip start.
		if err := p.active().Play(); err != nil {
			// autoplay may be blocked; stay paused
		}
		p.loadKey = p.loadKeyFor(next)
		p.preloadStandby()
	case ActionReloadActive:
		p.syncSlots()
	}

	if p.onClipChange != nil {
		p.onClipChange(p.state.ClipIndex)
	}
}

// JumpTo selects a clip directly, as from a sentence-row click. The active
// slot keeps its role; only the logical clip index changes.
func (p *Player) JumpTo(clipIdx int) {
	if clipIdx < 0 || clipIdx >= len(p.clips) || clipIdx == p.state.ClipIndex {
		return
	}
	p.state.ClipIndex = clipIdx
	p.loadKey = ""
	p.syncSlots()
	if p.onClipChange != nil {
		p.onClipChange(p.state.ClipIndex)
	}
}

// RestoreLayout restores the cached playback position after the sticky
// layout detached and reattached the active element. Only applies when the
// element still holds the cached source and drift exceeds resumeDrift.
func (p *Player) RestoreLayout() {
	m := p.active()
	if m == nil || p.cache.Src == "" || m.Source() != p.cache.Src {
		return
	}
	if math.Abs(m.CurrentTime()-p.cache.Time) > resumeDrift {
		m.Seek(p.cache.Time)
	}
	if !p.cache.Paused {
		if err := m.Play(); err != nil {
			// autoplay may be blocked; stay paused
		}
	}
}

// syncSlots loads the active clip into the active slot (playing) and the
// following clip into the standby slot (seeked, paused). loadKey dedupes so
// repeated sync calls for the same position do not reload anything.
func (p *Player) syncSlots() {
	active, ok := p.ActiveClip()
	if !ok {
		return
	}
	key := p.loadKeyFor(active)
	if key == p.loadKey {
		return
	}
	p.loadKey = key

	if m := p.active(); m != nil {
		p.loadClip(m, active, true, p.state.ClipIndex)
	}
	p.preloadStandby()
}

func (p *Player) preloadStandby() {
	n := len(p.clips)
	m := p.standby()
	if m == nil || n == 0 {
		return
	}
	nextIdx := (p.state.ClipIndex + 1) % n
	p.loadClip(m, p.clips[nextIdx], false, nextIdx)
}

// loadClip points a slot at a clip: set the source if it differs, wait for
// metadata, seek just past the clip start, tag the slot, then play or stay
// paused. The ready callback re-checks the source so a superseded load can
// never act on the wrong media.
func (p *Player) loadClip(m Media, c clip.Clip, autoplay bool, tag int) {
	src := p.resolve(c.VideoPath)
	if src == "" {
		return
	}

	apply := func() {
		if m.Source() != src {
			return // superseded by a later load
		}
		m.Seek(math.Max(0, c.Start+seekNudge))
		m.SetClipTag(tag)
		if autoplay {
			if err := m.Play(); err != nil {
				// autoplay may be blocked; stay paused
			}
		} else {
			m.Pause()
		}
	}

	if m.Source() != src {
		m.SetSource(src)
		m.OnReady(apply)
		return
	}
	if m.ReadyState() >= ReadyMetadata {
		apply()
	} else {
		m.OnReady(apply)
	}
}

func (p *Player) loadKeyFor(c clip.Clip) string {
	return fmt.Sprintf("%d:%d:%d:%s:%.3f:%.3f",
		p.state.ActiveSlot, p.state.ClipIndex, c.KeySentenceID, c.VideoPath, c.Start, c.End)
}
