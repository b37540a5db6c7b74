package adobe

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogClient is a Client and TrackerFactory that only logs the calls it
// receives. It stands in for the native SDK binding when the bridge runs
// outside a mobile host.
type LogClient struct {
	logger *logrus.Logger
}

func NewLogClient(logger *logrus.Logger) *LogClient {
	return &LogClient{logger: logger}
}

func (c *LogClient) SetVisitorIdentifier(identifier string) {
	c.logger.WithField("identifier", identifier).Info("Analytics.setVisitorIdentifier")
}

func (c *LogClient) LifecycleStart(contextData map[string]string) {
	c.logger.WithField("contextData", contextData).Info("MobileCore.lifecycleStart")
}

func (c *LogClient) LifecyclePause() {
	c.logger.Info("MobileCore.lifecyclePause")
}

func (c *LogClient) TrackAction(action string, contextData map[string]string) {
	c.logger.WithFields(logrus.Fields{
		"action":      action,
		"contextData": contextData,
	}).Info("MobileCore.trackAction")
}

func (c *LogClient) TrackState(state string, contextData map[string]string) {
	c.logger.WithFields(logrus.Fields{
		"state":       state,
		"contextData": contextData,
	}).Info("MobileCore.trackState")
}

func (c *LogClient) Flush() {
	c.logger.Info("Analytics.sendQueuedHits")
}

func (c *LogClient) TrackerFor(config map[string]interface{}) MediaTracker {
	sessionID := uuid.NewString()
	c.logger.WithFields(logrus.Fields{
		"config":  config,
		"session": sessionID,
	}).Info("Media.createTracker")
	return &logTracker{logger: c.logger.WithField("session", sessionID)}
}

type logTracker struct {
	logger *logrus.Entry
}

func (t *logTracker) TrackSessionStart(mediaObject map[string]interface{}, contextData map[string]string) {
	t.logger.WithFields(logrus.Fields{
		"mediaObject": mediaObject,
		"contextData": contextData,
	}).Info("mediaTracker.trackSessionStart")
}

func (t *logTracker) TrackSessionEnd() {
	t.logger.Info("mediaTracker.trackSessionEnd")
}

func (t *logTracker) TrackPlay() {
	t.logger.Info("mediaTracker.trackPlay")
}

func (t *logTracker) TrackPause() {
	t.logger.Info("mediaTracker.trackPause")
}

func (t *logTracker) TrackComplete() {
	t.logger.Info("mediaTracker.trackComplete")
}

func (t *logTracker) TrackEvent(event MediaEvent, objectMap map[string]interface{}, contextData map[string]string) {
	t.logger.WithFields(logrus.Fields{
		"event":       event,
		"objectMap":   objectMap,
		"contextData": contextData,
	}).Info("mediaTracker.trackEvent")
}

func (t *logTracker) UpdateCurrentPlayhead(seconds float64) {
	t.logger.WithField("seconds", seconds).Info("mediaTracker.updateCurrentPlayhead")
}

func (t *logTracker) UpdateQoEObject(qoe map[string]interface{}) {
	t.logger.WithField("qoe", qoe).Info("mediaTracker.updateQoEObject")
}
