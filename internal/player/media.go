// Package player drives gapless playback of a clip sequence across two
// alternating media buffers, tracks playback time for the transcript views,
// and keeps the active transcript row centered on screen.
package player

// ReadyState mirrors the buffered-readiness ladder a media element reports.
type ReadyState int

const (
	ReadyNothing ReadyState = iota
	ReadyMetadata
	ReadyCurrentData
	ReadyFutureData
	ReadyEnoughData
)

// Media is the imperative surface of a single playback element. The engine
// is the only writer; everything else observes derived state. Play may be
// rejected by the host's autoplay policy, in which case the element stays
// paused and the error is swallowed by callers.
type Media interface {
	Source() string
	SetSource(src string)
	CurrentTime() float64
	Seek(t float64)
	Play() error
	Pause()
	Paused() bool
	ReadyState() ReadyState

	// ClipTag identifies which clip the element currently holds, so
	// gapless-swap eligibility and stale async loads can be checked.
	ClipTag() int
	SetClipTag(idx int)

	// OnReady registers a one-shot callback fired once metadata for the
	// current source is available. One-shot so a readiness signal can
	// never fire twice.
	OnReady(fn func())

	// OnTimeUpdate registers the handler invoked on every time-update
	// tick; nil clears it.
	OnTimeUpdate(fn func())
	// OnEnded registers the handler invoked at natural end of stream;
	// nil clears it.
	OnEnded(fn func())
}
