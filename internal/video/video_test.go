package video

import (
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/adobe"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/contextdata"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/events"
)

func newTestMapper(contextValues map[string]string) (*Mapper, *adobe.Recorder) {
	recorder := adobe.NewRecorder()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	cfg := contextdata.NewConfiguration("", contextValues)
	return NewMapper(recorder, cfg, logger), recorder
}

func trackEvent(name string, props events.Properties) *events.Event {
	return &events.Event{
		Type:       events.TrackType,
		EventName:  name,
		Properties: props,
	}
}

func startSession(t *testing.T, mapper *Mapper, props events.Properties) {
	t.Helper()
	require.NoError(t, mapper.Track(trackEvent("Video Playback Started", props)))
}

func TestIsVideoEvent(t *testing.T) {
	assert.True(t, IsVideoEvent("Video Playback Started"))
	assert.True(t, IsVideoEvent("Video Quality Updated"))
	assert.False(t, IsVideoEvent("Product Added"))
}

func TestActionsRequireSession(t *testing.T) {
	for name := range actionsByName {
		if name == "Video Playback Started" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			mapper, _ := newTestMapper(nil)
			err := mapper.Track(trackEvent(name, events.Properties{}))
			assert.ErrorIs(t, err, ErrSessionNotStarted)
		})
	}
}

func TestPlaybackStarted(t *testing.T) {
	mapper, recorder := newTestMapper(nil)

	startSession(t, mapper, events.Properties{
		"title":          "You Win or You Die",
		"contentAssetId": "123",
		"totalLength":    json.Number("100"),
		"channel":        "HBO",
		"program":        "Game of Thrones",
		"videoStatus":    "on-demand",
	})

	require.Len(t, recorder.TrackerConfigs, 1)
	assert.Equal(t, "HBO", recorder.TrackerConfigs[0][adobe.ConfigChannel])
	assert.Equal(t, true, recorder.TrackerConfigs[0][adobe.ConfigDownloadedContent])

	tracker := recorder.LastTracker()
	require.NotNil(t, tracker)
	require.Len(t, tracker.Calls, 1)
	call := tracker.Calls[0]
	assert.Equal(t, "trackSessionStart", call.Method)

	assert.Equal(t, "You Win or You Die", call.Object[adobe.MediaName])
	assert.Equal(t, "123", call.Object[adobe.MediaID])
	assert.Equal(t, 100.0, call.Object[adobe.MediaLength])
	assert.Equal(t, adobe.StreamTypeVOD, call.Object[adobe.MediaStreamType])
	assert.Equal(t, adobe.MediaTypeVideo, call.Object[adobe.MediaType])
	assert.Equal(t, "Game of Thrones", call.Object[adobe.MetadataShow])
	assert.Equal(t, "HBO", call.Object[adobe.MetadataNetwork])

	assert.Equal(t, map[string]string{"videoStatus": "on-demand"}, call.ContextData)
}

func TestPlaybackStartedRestartsSession(t *testing.T) {
	mapper, recorder := newTestMapper(nil)

	startSession(t, mapper, events.Properties{"title": "first"})
	startSession(t, mapper, events.Properties{"title": "second"})

	assert.Len(t, recorder.Trackers, 2)
	require.NoError(t, mapper.Track(trackEvent("Video Playback Paused", events.Properties{})))
	assert.Equal(t, []string{"trackSessionStart", "trackPause"}, recorder.Trackers[1].Methods())
}

func TestLivestreamFormat(t *testing.T) {
	tests := []struct {
		name       string
		livestream interface{}
		expected   string
	}{
		{"absent defaults to vod", nil, adobe.StreamTypeVOD},
		{"true maps to vod", true, adobe.StreamTypeVOD},
		{"literal false maps to live", "false", adobe.StreamTypeLive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapper, recorder := newTestMapper(nil)
			props := events.Properties{"title": "stream"}
			if tt.livestream != nil {
				props["livestream"] = tt.livestream
			}
			startSession(t, mapper, props)

			call := recorder.LastTracker().Calls[0]
			assert.Equal(t, tt.expected, call.Object[adobe.MediaStreamType])
		})
	}
}

func TestPlaybackControls(t *testing.T) {
	mapper, recorder := newTestMapper(nil)
	startSession(t, mapper, events.Properties{"title": "t"})
	tracker := recorder.LastTracker()

	require.NoError(t, mapper.Track(trackEvent("Video Playback Paused", events.Properties{})))
	require.NoError(t, mapper.Track(trackEvent("Video Playback Resumed", events.Properties{})))
	require.NoError(t, mapper.Track(trackEvent("Video Playback Interrupted", events.Properties{})))
	require.NoError(t, mapper.Track(trackEvent("Video Playback Completed", events.Properties{})))

	assert.Equal(t, []string{
		"trackSessionStart",
		"trackPause",
		"trackPlay",
		"trackPause",
		"trackComplete",
		"trackSessionEnd",
	}, tracker.Methods())
}

func TestContentStarted(t *testing.T) {
	mapper, recorder := newTestMapper(nil)
	startSession(t, mapper, events.Properties{"title": "t"})
	tracker := recorder.LastTracker()

	require.NoError(t, mapper.Track(trackEvent("Video Content Started", events.Properties{
		"title":       "Winter Is Coming",
		"position":    json.Number("10"),
		"totalLength": json.Number("3600"),
		"startTime":   json.Number("0"),
	})))

	require.Equal(t, []string{
		"trackSessionStart",
		"updateCurrentPlayhead",
		"trackPlay",
		"trackEvent",
	}, tracker.Methods())

	assert.Equal(t, 10.0, tracker.Calls[1].Value)
	chapter := tracker.Calls[3]
	assert.Equal(t, string(adobe.EventChapterStart), chapter.Name)
	assert.Equal(t, "Winter Is Coming", chapter.Object[adobe.ChapterName])
	assert.Equal(t, int64(1), chapter.Object[adobe.ChapterPosition])
	assert.Equal(t, 3600.0, chapter.Object[adobe.ChapterLength])
	assert.Equal(t, 0.0, chapter.Object[adobe.ChapterStartTime])
}

func TestContentStartedZeroPositionSkipsPlayhead(t *testing.T) {
	mapper, recorder := newTestMapper(nil)
	startSession(t, mapper, events.Properties{"title": "t"})

	require.NoError(t, mapper.Track(trackEvent("Video Content Started", events.Properties{
		"title": "chapter",
	})))

	assert.Equal(t, []string{
		"trackSessionStart",
		"trackPlay",
		"trackEvent",
	}, recorder.LastTracker().Methods())
}

func TestSeekAndBufferCompleted(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		mediaName adobe.MediaEvent
		props     events.Properties
		expected  float64
	}{
		{
			name:      "seek snake_case alone",
			eventName: "Video Playback Seek Completed",
			mediaName: adobe.EventSeekComplete,
			props:     events.Properties{"seek_position": json.Number("3")},
			expected:  3,
		},
		{
			name:      "seek camelCase wins when non-zero",
			eventName: "Video Playback Seek Completed",
			mediaName: adobe.EventSeekComplete,
			props:     events.Properties{"seekPosition": json.Number("5"), "seek_position": json.Number("3")},
			expected:  5,
		},
		{
			name:      "buffer falls back to position",
			eventName: "Video Playback Buffer Completed",
			mediaName: adobe.EventBufferComplete,
			props:     events.Properties{"position": json.Number("7")},
			expected:  7,
		},
		{
			name:      "no position defaults to zero",
			eventName: "Video Playback Buffer Completed",
			mediaName: adobe.EventBufferComplete,
			props:     events.Properties{},
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapper, recorder := newTestMapper(nil)
			startSession(t, mapper, events.Properties{"title": "t"})
			tracker := recorder.LastTracker()

			require.NoError(t, mapper.Track(trackEvent(tt.eventName, tt.props)))

			require.Equal(t, []string{
				"trackSessionStart",
				"trackPlay",
				"updateCurrentPlayhead",
				"trackEvent",
			}, tracker.Methods())
			assert.Equal(t, tt.expected, tracker.Calls[2].Value)
			assert.Equal(t, string(tt.mediaName), tracker.Calls[3].Name)
		})
	}
}

func TestSeekAndBufferStartedPause(t *testing.T) {
	for eventName, mediaEvent := range map[string]adobe.MediaEvent{
		"Video Playback Seek Started":   adobe.EventSeekStart,
		"Video Playback Buffer Started": adobe.EventBufferStart,
	} {
		t.Run(eventName, func(t *testing.T) {
			mapper, recorder := newTestMapper(nil)
			startSession(t, mapper, events.Properties{"title": "t"})
			tracker := recorder.LastTracker()

			require.NoError(t, mapper.Track(trackEvent(eventName, events.Properties{})))

			require.Equal(t, []string{"trackSessionStart", "trackPause", "trackEvent"}, tracker.Methods())
			assert.Equal(t, string(mediaEvent), tracker.Calls[2].Name)
			assert.Empty(t, tracker.Calls[2].Object)
			assert.Nil(t, tracker.Calls[2].ContextData)
		})
	}
}

func TestAdLifecycle(t *testing.T) {
	mapper, recorder := newTestMapper(nil)
	startSession(t, mapper, events.Properties{"title": "t"})
	tracker := recorder.LastTracker()

	require.NoError(t, mapper.Track(trackEvent("Video Ad Break Started", events.Properties{
		"title":     "mid-roll",
		"startTime": json.Number("30"),
	})))
	require.NoError(t, mapper.Track(trackEvent("Video Ad Started", events.Properties{
		"title":       "spot",
		"assetId":     "ad-1",
		"totalLength": json.Number("15"),
		"publisher":   "Acme",
	})))
	require.NoError(t, mapper.Track(trackEvent("Video Ad Skipped", events.Properties{})))
	require.NoError(t, mapper.Track(trackEvent("Video Ad Completed", events.Properties{})))
	require.NoError(t, mapper.Track(trackEvent("Video Ad Break Completed", events.Properties{})))

	require.Len(t, tracker.Calls, 6)

	adBreak := tracker.Calls[1]
	assert.Equal(t, string(adobe.EventAdBreakStart), adBreak.Name)
	assert.Equal(t, "mid-roll", adBreak.Object[adobe.AdBreakName])
	assert.Equal(t, int64(1), adBreak.Object[adobe.AdBreakPosition])
	assert.Equal(t, 30.0, adBreak.Object[adobe.AdBreakStartTime])

	ad := tracker.Calls[2]
	assert.Equal(t, string(adobe.EventAdStart), ad.Name)
	assert.Equal(t, "spot", ad.Object[adobe.AdName])
	assert.Equal(t, "ad-1", ad.Object[adobe.AdID])
	assert.Equal(t, 15.0, ad.Object[adobe.AdLength])
	assert.Equal(t, "Acme", ad.Object[adobe.MetadataAdvertiser])
	assert.NotContains(t, ad.ContextData, "publisher", "renamed ad fields are not forwarded as extras")

	assert.Equal(t, string(adobe.EventAdSkip), tracker.Calls[3].Name)
	assert.Equal(t, string(adobe.EventAdComplete), tracker.Calls[4].Name)
	assert.Equal(t, string(adobe.EventAdBreakComplete), tracker.Calls[5].Name)
}

func TestQualityUpdated(t *testing.T) {
	mapper, recorder := newTestMapper(nil)
	startSession(t, mapper, events.Properties{"title": "t"})
	tracker := recorder.LastTracker()

	require.NoError(t, mapper.Track(trackEvent("Video Quality Updated", events.Properties{
		"bitrate":        json.Number("3000"),
		"startup_time":   json.Number("2"),
		"fps":            json.Number("24"),
		"dropped_frames": json.Number("10"),
	})))

	require.Equal(t, []string{"trackSessionStart", "updateQoEObject"}, tracker.Methods())
	qoe := tracker.Calls[1].Object
	assert.Equal(t, int64(3000), qoe[adobe.QoeBitrate])
	assert.Equal(t, 2.0, qoe[adobe.QoeStartupTime])
	assert.Equal(t, 24.0, qoe[adobe.QoeFPS])
	assert.Equal(t, int64(10), qoe[adobe.QoeDroppedFrames])
}

func TestContentCompletedEmptyObjects(t *testing.T) {
	mapper, recorder := newTestMapper(nil)
	startSession(t, mapper, events.Properties{"title": "t"})
	tracker := recorder.LastTracker()

	require.NoError(t, mapper.Track(trackEvent("Video Content Completed", events.Properties{})))

	call := tracker.Calls[1]
	assert.Equal(t, string(adobe.EventChapterComplete), call.Name)
	assert.Empty(t, call.Object)
	assert.Nil(t, call.ContextData)
}

func TestContextDataTranslationAndExtras(t *testing.T) {
	mapper, recorder := newTestMapper(map[string]string{"plan": "myapp.plan"})

	startSession(t, mapper, events.Properties{
		"title":       "t",
		"plan":        "premium",
		"videoStatus": "on",
	})

	call := recorder.LastTracker().Calls[0]
	assert.Equal(t, map[string]string{
		"myapp.plan":  "premium",
		"videoStatus": "on",
	}, call.ContextData)
}
