// Package video drives the Adobe Media SDK session lifecycle from Segment
// video spec events: one heartbeat session per playback, with chapter, ad,
// buffer, seek and quality updates mapped onto tracker calls.
package video

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/adobe"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/contextdata"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/events"
)

// ErrSessionNotStarted is returned when a video event other than
// "Video Playback Started" arrives before a session exists.
var ErrSessionNotStarted = errors.New("video: session has not started yet")

type action int

const (
	playbackStarted action = iota
	playbackPaused
	playbackResumed
	playbackCompleted
	contentStarted
	contentCompleted
	bufferStarted
	bufferCompleted
	seekStarted
	seekCompleted
	adBreakStarted
	adBreakCompleted
	adStarted
	adSkipped
	adCompleted
	playbackInterrupted
	qualityUpdated
)

var actionsByName = map[string]action{
	"Video Playback Started":          playbackStarted,
	"Video Playback Paused":           playbackPaused,
	"Video Playback Resumed":          playbackResumed,
	"Video Playback Completed":        playbackCompleted,
	"Video Content Started":           contentStarted,
	"Video Content Completed":         contentCompleted,
	"Video Playback Buffer Started":   bufferStarted,
	"Video Playback Buffer Completed": bufferCompleted,
	"Video Playback Seek Started":     seekStarted,
	"Video Playback Seek Completed":   seekCompleted,
	"Video Ad Break Started":          adBreakStarted,
	"Video Ad Break Completed":        adBreakCompleted,
	"Video Ad Started":                adStarted,
	"Video Ad Skipped":                adSkipped,
	"Video Ad Completed":              adCompleted,
	"Video Playback Interrupted":      playbackInterrupted,
	"Video Quality Updated":           qualityUpdated,
}

// IsVideoEvent reports whether the event name is part of the Segment video
// spec handled by this mapper.
func IsVideoEvent(eventName string) bool {
	_, ok := actionsByName[eventName]
	return ok
}

// session is the active heartbeat session. A nil session means no playback
// has started yet.
type session struct {
	tracker adobe.MediaTracker
}

// Mapper generates Media SDK calls for all video events. Events for one
// mapper must arrive from a single caller in sequence.
type Mapper struct {
	trackers    adobe.TrackerFactory
	contextData *contextdata.Configuration
	logger      *logrus.Logger
	session     *session
}

func NewMapper(trackers adobe.TrackerFactory, contextData *contextdata.Configuration, logger *logrus.Logger) *Mapper {
	return &Mapper{
		trackers:    trackers,
		contextData: contextData,
		logger:      logger,
	}
}

// Track dispatches one video track event. Only "Video Playback Started" may
// establish a session; every other action requires one and fails with
// ErrSessionNotStarted otherwise.
func (m *Mapper) Track(ev *events.Event) error {
	act, ok := actionsByName[ev.EventName]
	if !ok {
		return nil
	}
	if act != playbackStarted && m.session == nil {
		return ErrSessionNotStarted
	}

	switch act {
	case playbackStarted:
		m.trackPlaybackStarted(ev)
	case playbackPaused, playbackInterrupted:
		m.session.tracker.TrackPause()
		m.logger.Debug("mediaTracker.trackPause")
	case playbackResumed:
		m.session.tracker.TrackPlay()
		m.logger.Debug("mediaTracker.trackPlay")
	case playbackCompleted:
		m.session.tracker.TrackComplete()
		m.session.tracker.TrackSessionEnd()
		m.logger.Debug("mediaTracker.trackComplete, trackSessionEnd")
	case contentStarted:
		m.trackContentStarted(ev)
	case contentCompleted:
		m.trackEvent(adobe.EventChapterComplete, map[string]interface{}{}, nil)
	case bufferStarted:
		m.session.tracker.TrackPause()
		m.trackEvent(adobe.EventBufferStart, map[string]interface{}{}, nil)
	case bufferCompleted:
		m.resumeAtSeekPosition(ev)
		m.trackEvent(adobe.EventBufferComplete, map[string]interface{}{}, nil)
	case seekStarted:
		m.session.tracker.TrackPause()
		m.trackEvent(adobe.EventSeekStart, map[string]interface{}{}, nil)
	case seekCompleted:
		m.resumeAtSeekPosition(ev)
		m.trackEvent(adobe.EventSeekComplete, map[string]interface{}{}, nil)
	case adBreakStarted:
		e := newVideoEvent(ev, true, m.contextData)
		m.trackEvent(adobe.EventAdBreakStart, e.adBreakObject(), e.buildContextData())
	case adBreakCompleted:
		m.trackEvent(adobe.EventAdBreakComplete, map[string]interface{}{}, nil)
	case adStarted:
		e := newVideoEvent(ev, true, m.contextData)
		m.trackEvent(adobe.EventAdStart, e.adObject(), e.buildContextData())
	case adSkipped:
		m.trackEvent(adobe.EventAdSkip, map[string]interface{}{}, nil)
	case adCompleted:
		m.trackEvent(adobe.EventAdComplete, map[string]interface{}{}, nil)
	case qualityUpdated:
		e := newVideoEvent(ev, true, m.contextData)
		m.session.tracker.UpdateQoEObject(e.qoeObject())
		m.logger.Debug("mediaTracker.updateQoEObject")
	}
	return nil
}

// trackPlaybackStarted creates a fresh tracker and starts a heartbeat
// session; a session already in progress is simply replaced.
func (m *Mapper) trackPlaybackStarted(ev *events.Event) {
	config := map[string]interface{}{
		adobe.ConfigChannel:           ev.Properties.String("channel"),
		adobe.ConfigDownloadedContent: true,
	}
	tracker := m.trackers.TrackerFor(config)
	m.session = &session{tracker: tracker}

	e := newVideoEvent(ev, false, m.contextData)
	tracker.TrackSessionStart(e.mediaObject(), e.buildContextData())
	m.logger.WithField("event", ev.EventName).Debug("mediaTracker.trackSessionStart")
}

func (m *Mapper) trackContentStarted(ev *events.Event) {
	e := newVideoEvent(ev, false, m.contextData)
	if position := ev.Properties.Float("position", 0); position > 0 {
		m.session.tracker.UpdateCurrentPlayhead(position)
	}
	m.session.tracker.TrackPlay()
	m.logger.Debug("mediaTracker.trackPlay")
	m.trackEvent(adobe.EventChapterStart, e.chapterObject(), e.buildContextData())
}

// resumeAtSeekPosition resumes playback and moves the playhead to the first
// non-zero position among the two seek spellings and the plain position.
func (m *Mapper) resumeAtSeekPosition(ev *events.Event) {
	seekPosition := ev.Properties.FirstNonDefaultInt64(0, "seekPosition", "seek_position", "position")
	m.session.tracker.TrackPlay()
	m.session.tracker.UpdateCurrentPlayhead(float64(seekPosition))
}

func (m *Mapper) trackEvent(event adobe.MediaEvent, objectMap map[string]interface{}, cdata map[string]string) {
	m.session.tracker.TrackEvent(event, objectMap, cdata)
	m.logger.WithField("event", event).Debug("mediaTracker.trackEvent")
}
