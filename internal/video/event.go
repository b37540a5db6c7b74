package video

import (
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/adobe"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/contextdata"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/events"
)

// videoMetadataKeys renames Segment video properties to Adobe standard video
// metadata keys. Both camelCase and snake_case spellings are recognized.
var videoMetadataKeys = map[string]string{
	"assetId":          adobe.MetadataAssetID,
	"asset_id":         adobe.MetadataAssetID,
	"contentAssetId":   adobe.MetadataAssetID,
	"content_asset_id": adobe.MetadataAssetID,
	"program":          adobe.MetadataShow,
	"season":           adobe.MetadataSeason,
	"episode":          adobe.MetadataEpisode,
	"genre":            adobe.MetadataGenre,
	"channel":          adobe.MetadataNetwork,
	"airdate":          adobe.MetadataFirstAirDate,
	"publisher":        adobe.MetadataOriginator,
	"rating":           adobe.MetadataRating,
}

var adMetadataKeys = map[string]string{
	"publisher": adobe.MetadataAdvertiser,
}

// mediaObjectKeys are consumed by the media/chapter/ad object builders and
// never forwarded as extra context data.
var mediaObjectKeys = []string{
	"title",
	"indexPosition",
	"index_position",
	"position",
	"totalLength",
	"total_length",
	"startTime",
	"start_time",
}

// videoEvent wraps one track event's properties and derives the Media SDK
// parameter maps from them.
type videoEvent struct {
	props       events.Properties
	remaining   map[string]string
	metadata    map[string]string
	contextData *contextdata.Configuration
}

// newVideoEvent builds the property wrapper. isAd selects the ad metadata
// rename table instead of the video one.
func newVideoEvent(ev *events.Event, isAd bool, contextData *contextdata.Configuration) *videoEvent {
	e := &videoEvent{
		props:       ev.Properties,
		remaining:   ev.Properties.StringMap(),
		metadata:    map[string]string{},
		contextData: contextData,
	}
	renames := videoMetadataKeys
	if isAd {
		renames = adMetadataKeys
	}
	for key, metadataKey := range renames {
		if value, ok := e.remaining[key]; ok {
			e.metadata[metadataKey] = value
			delete(e.remaining, key)
		}
	}
	if !isAd {
		if value, ok := e.remaining["livestream"]; ok {
			// Only the literal string "false" selects the live stream
			// format; anything else, including "true", selects VOD.
			format := adobe.StreamTypeVOD
			if value == "false" {
				format = adobe.StreamTypeLive
			}
			e.metadata[adobe.MetadataStreamFormat] = format
			delete(e.remaining, "livestream")
		}
	}
	return e
}

// buildContextData assembles the context data attached to media events:
// configured translations first, then prefixed extras, excluding every
// property consumed by the rename tables and object builders.
func (e *videoEvent) buildContextData() map[string]string {
	extras := make(map[string]string, len(e.remaining))
	for k, v := range e.remaining {
		extras[k] = v
	}
	delete(extras, "products")
	for key := range videoMetadataKeys {
		delete(extras, key)
	}
	for key := range adMetadataKeys {
		delete(extras, key)
	}
	for _, key := range mediaObjectKeys {
		delete(extras, key)
	}

	cdata := map[string]string{}
	for _, field := range e.contextData.EventFieldNames() {
		value, err := e.contextData.ResolveProperties(field, e.props)
		if err != nil || value == nil {
			continue
		}
		if variable, ok := e.contextData.VariableName(field); ok {
			cdata[variable] = events.Stringify(value)
		}
		delete(extras, field)
	}
	prefix := e.contextData.Prefix()
	for key, value := range extras {
		cdata[prefix+key] = value
	}
	return cdata
}

func (e *videoEvent) mediaObject() map[string]interface{} {
	if len(e.props) == 0 {
		return map[string]interface{}{}
	}
	title := e.props.String("title")
	contentAssetID := e.props.FirstNonBlank("contentAssetId", "content_asset_id")
	totalLength := e.props.FirstNonDefaultFloat(0, "totalLength", "total_length")
	format := adobe.StreamTypeVOD
	if e.props.String("livestream") == "false" {
		format = adobe.StreamTypeLive
	}
	object := adobe.CreateMediaObject(title, contentAssetID, totalLength, format)
	return e.withMetadata(object)
}

func (e *videoEvent) chapterObject() map[string]interface{} {
	if len(e.props) == 0 {
		return map[string]interface{}{}
	}
	title := e.props.String("title")
	indexPosition := e.props.FirstNonDefaultInt64(1, "indexPosition", "index_position")
	totalLength := e.props.FirstNonDefaultFloat(0, "totalLength", "total_length")
	startTime := e.props.FirstNonDefaultFloat(0, "startTime", "start_time")
	object := adobe.CreateChapterObject(title, indexPosition, totalLength, startTime)
	return e.withMetadata(object)
}

func (e *videoEvent) adObject() map[string]interface{} {
	if len(e.props) == 0 {
		return map[string]interface{}{}
	}
	title := e.props.String("title")
	assetID := e.props.FirstNonBlank("assetId", "asset_id")
	indexPosition := e.props.FirstNonDefaultInt64(1, "indexPosition", "index_position")
	totalLength := e.props.FirstNonDefaultFloat(0, "totalLength", "total_length")
	object := adobe.CreateAdObject(title, assetID, indexPosition, totalLength)
	return e.withMetadata(object)
}

func (e *videoEvent) adBreakObject() map[string]interface{} {
	if len(e.props) == 0 {
		return map[string]interface{}{}
	}
	title := e.props.String("title")
	indexPosition := e.props.FirstNonDefaultInt64(1, "indexPosition", "index_position")
	startTime := e.props.FirstNonDefaultFloat(0, "startTime", "start_time")
	return adobe.CreateAdBreakObject(title, indexPosition, startTime)
}

func (e *videoEvent) qoeObject() map[string]interface{} {
	if len(e.props) == 0 {
		return map[string]interface{}{}
	}
	bitrate := e.props.Int64("bitrate", 0)
	startupTime := e.props.FirstNonDefaultFloat(0, "startupTime", "startup_time")
	fps := e.props.Float("fps", 0)
	droppedFrames := e.props.FirstNonDefaultInt64(0, "droppedFrames", "dropped_frames")
	return adobe.CreateQoEObject(bitrate, startupTime, fps, droppedFrames)
}

func (e *videoEvent) withMetadata(object map[string]interface{}) map[string]interface{} {
	for key, value := range e.metadata {
		object[key] = value
	}
	return object
}
