// Package adobe defines the capability surface of the Adobe Analytics and
// Media SDKs that the destination calls into. The production binding lives in
// the native SDK; this package carries the interfaces, the wire-level map
// constructors, a log-only client for running the bridge standalone, and a
// recording client for tests.
package adobe

// MediaEvent names a Media SDK granular tracking event.
type MediaEvent string

const (
	EventChapterStart    MediaEvent = "chapterStart"
	EventChapterComplete MediaEvent = "chapterComplete"
	EventBufferStart     MediaEvent = "bufferStart"
	EventBufferComplete  MediaEvent = "bufferComplete"
	EventSeekStart       MediaEvent = "seekStart"
	EventSeekComplete    MediaEvent = "seekComplete"
	EventAdBreakStart    MediaEvent = "adBreakStart"
	EventAdBreakComplete MediaEvent = "adBreakComplete"
	EventAdStart         MediaEvent = "adStart"
	EventAdSkip          MediaEvent = "adSkip"
	EventAdComplete      MediaEvent = "adComplete"
)

// Client is the MobileCore/Analytics surface consumed by the destination.
type Client interface {
	// SetVisitorIdentifier forwards the visitor id; an empty identifier
	// clears it.
	SetVisitorIdentifier(identifier string)
	LifecycleStart(contextData map[string]string)
	LifecyclePause()
	TrackAction(action string, contextData map[string]string)
	TrackState(state string, contextData map[string]string)
	// Flush asks the SDK to send queued hits.
	Flush()
}

// MediaTracker is one Media SDK heartbeat session.
type MediaTracker interface {
	TrackSessionStart(mediaObject map[string]interface{}, contextData map[string]string)
	TrackSessionEnd()
	TrackPlay()
	TrackPause()
	TrackComplete()
	TrackEvent(event MediaEvent, objectMap map[string]interface{}, contextData map[string]string)
	UpdateCurrentPlayhead(seconds float64)
	UpdateQoEObject(qoe map[string]interface{})
}

// TrackerFactory creates media trackers from a tracker config map.
type TrackerFactory interface {
	TrackerFor(config map[string]interface{}) MediaTracker
}
