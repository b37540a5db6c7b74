package adobe

// Tracker config keys.
const (
	ConfigChannel           = "config.channel"
	ConfigDownloadedContent = "config.downloadedcontent"
)

// Media object keys.
const (
	MediaName       = "media.name"
	MediaID         = "media.id"
	MediaLength     = "media.length"
	MediaStreamType = "media.streamtype"
	MediaType       = "media.type"

	ChapterName      = "chapter.name"
	ChapterPosition  = "chapter.position"
	ChapterLength    = "chapter.length"
	ChapterStartTime = "chapter.starttime"

	AdBreakName      = "adbreak.name"
	AdBreakPosition  = "adbreak.position"
	AdBreakStartTime = "adbreak.starttime"

	AdName     = "ad.name"
	AdID       = "ad.id"
	AdPosition = "ad.position"
	AdLength   = "ad.length"

	QoeBitrate       = "qoe.bitrate"
	QoeStartupTime   = "qoe.startuptime"
	QoeFPS           = "qoe.fps"
	QoeDroppedFrames = "qoe.droppedframes"
)

// Stream types and media types.
const (
	StreamTypeVOD  = "vod"
	StreamTypeLive = "live"
	MediaTypeVideo = "video"
)

// Standard metadata keys reserved by Adobe for well-known video and ad fields.
const (
	MetadataShow         = "a.media.show"
	MetadataSeason       = "a.media.season"
	MetadataEpisode      = "a.media.episode"
	MetadataAssetID      = "a.media.asset"
	MetadataGenre        = "a.media.genre"
	MetadataFirstAirDate = "a.media.airDate"
	MetadataOriginator   = "a.media.originator"
	MetadataNetwork      = "a.media.network"
	MetadataRating       = "a.media.rating"
	MetadataStreamFormat = "a.media.format"
	MetadataAdvertiser   = "a.media.ad.advertiser"
)

// CreateMediaObject builds the map the Media SDK expects for a session start.
func CreateMediaObject(name, id string, length float64, streamType string) map[string]interface{} {
	return map[string]interface{}{
		MediaName:       name,
		MediaID:         id,
		MediaLength:     length,
		MediaStreamType: streamType,
		MediaType:       MediaTypeVideo,
	}
}

// CreateChapterObject builds a chapter object map.
func CreateChapterObject(name string, position int64, length, startTime float64) map[string]interface{} {
	return map[string]interface{}{
		ChapterName:      name,
		ChapterPosition:  position,
		ChapterLength:    length,
		ChapterStartTime: startTime,
	}
}

// CreateAdBreakObject builds an ad-break object map.
func CreateAdBreakObject(name string, position int64, startTime float64) map[string]interface{} {
	return map[string]interface{}{
		AdBreakName:      name,
		AdBreakPosition:  position,
		AdBreakStartTime: startTime,
	}
}

// CreateAdObject builds an ad object map.
func CreateAdObject(name, id string, position int64, length float64) map[string]interface{} {
	return map[string]interface{}{
		AdName:     name,
		AdID:       id,
		AdPosition: position,
		AdLength:   length,
	}
}

// CreateQoEObject builds a quality-of-experience object map.
func CreateQoEObject(bitrate int64, startupTime, fps float64, droppedFrames int64) map[string]interface{} {
	return map[string]interface{}{
		QoeBitrate:       bitrate,
		QoeStartupTime:   startupTime,
		QoeFPS:           fps,
		QoeDroppedFrames: droppedFrames,
	}
}
