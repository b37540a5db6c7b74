// Package destination routes incoming analytics events to the Adobe
// Analytics SDK: ecommerce events to the cart/purchase mapper, video events
// to the media session mapper, and everything else through the configured
// custom event table.
package destination

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/adobe"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/contextdata"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/ecommerce"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/events"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/metrics"
	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/video"
)

// runtime bundles one settings generation with the mappers built from it.
// It is replaced wholesale on every settings update so event processing
// never observes a half-applied configuration.
type runtime struct {
	settings    Settings
	contextData *contextdata.Configuration
	ecommerce   *ecommerce.Mapper
	video       *video.Mapper
}

// Destination is the Adobe Analytics destination dispatcher.
type Destination struct {
	client   adobe.Client
	trackers adobe.TrackerFactory
	logger   *logrus.Logger

	mu      sync.RWMutex
	current *runtime
}

func New(client adobe.Client, trackers adobe.TrackerFactory, logger *logrus.Logger) *Destination {
	return &Destination{
		client:   client,
		trackers: trackers,
		logger:   logger,
	}
}

// UpdateSettings rebuilds the resolver and mappers from the new settings and
// swaps them in atomically.
func (d *Destination) UpdateSettings(settings Settings) {
	cfg := contextdata.NewConfiguration(settings.CustomDataPrefix, settings.ContextValues)
	next := &runtime{
		settings:    settings,
		contextData: cfg,
		ecommerce:   ecommerce.NewMapper(d.client, cfg, settings.ProductIdentifier, d.logger),
		video:       video.NewMapper(d.trackers, cfg, d.logger),
	}
	d.mu.Lock()
	d.current = next
	d.mu.Unlock()
}

// UpdateSettingsMap decodes a raw settings payload and applies it.
func (d *Destination) UpdateSettingsMap(raw map[string]interface{}) error {
	settings, err := SettingsFromMap(raw)
	if err != nil {
		return err
	}
	d.UpdateSettings(settings)
	return nil
}

func (d *Destination) runtime() *runtime {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// Process dispatches one event by variant. Alias and group events have no
// Adobe mapping and are accepted unchanged.
func (d *Destination) Process(ev *events.Event) error {
	switch ev.Type {
	case events.TrackType:
		return d.Track(ev)
	case events.ScreenType:
		d.Screen(ev)
	case events.IdentifyType:
		d.Identify(ev)
	}
	return nil
}

// Track routes a track event: ecommerce first, then video, then the
// configured custom event table. Unmatched events are dropped with a log.
func (d *Destination) Track(ev *events.Event) error {
	rt := d.runtime()
	if rt == nil {
		d.logger.Warn("destination settings not configured, dropping event")
		metrics.DroppedEventsTotal.WithLabelValues("unconfigured").Inc()
		return nil
	}

	if ecommerce.IsEcommerceEvent(ev.EventName) {
		if _, remapped := rt.settings.EventsV2[ev.EventName]; remapped {
			d.logger.WithField("event", ev.EventName).
				Warn("mapping spec ecommerce events to custom Adobe events is not supported")
			metrics.DroppedEventsTotal.WithLabelValues("ecommerce_remap").Inc()
			return nil
		}
		rt.ecommerce.Track(ev)
		metrics.EventsTotal.WithLabelValues(string(ev.Type), metrics.OutcomeForwarded).Inc()
		return nil
	}

	if video.IsVideoEvent(ev.EventName) {
		if err := rt.video.Track(ev); err != nil {
			metrics.EventsTotal.WithLabelValues(string(ev.Type), metrics.OutcomeError).Inc()
			return err
		}
		metrics.EventsTotal.WithLabelValues(string(ev.Type), metrics.OutcomeForwarded).Inc()
		return nil
	}

	code, ok := rt.settings.EventsV2[ev.EventName]
	if !ok {
		d.logger.WithField("event", ev.EventName).
			Debug("event is neither a reserved Adobe ecommerce or video event nor configured in eventsV2, dropping")
		metrics.DroppedEventsTotal.WithLabelValues("unmapped").Inc()
		return nil
	}
	cdata := d.buildContextData(rt, ev, true)
	d.client.TrackAction(code, cdata)
	metrics.EventsTotal.WithLabelValues(string(ev.Type), metrics.OutcomeForwarded).Inc()
	d.logger.WithFields(logrus.Fields{
		"action":      code,
		"contextData": cdata,
	}).Debug("MobileCore.trackAction")
	return nil
}

// Screen forwards a screen event as a trackState call. Screen context data
// resolves against the properties only, never the event root.
func (d *Destination) Screen(ev *events.Event) {
	rt := d.runtime()
	if rt == nil {
		d.logger.Warn("destination settings not configured, dropping event")
		metrics.DroppedEventsTotal.WithLabelValues("unconfigured").Inc()
		return
	}
	if len(ev.Properties) == 0 {
		d.client.TrackState(ev.Name, nil)
	} else {
		d.client.TrackState(ev.Name, d.buildContextData(rt, ev, false))
	}
	metrics.EventsTotal.WithLabelValues(string(ev.Type), metrics.OutcomeForwarded).Inc()
	d.logger.WithField("name", ev.Name).Debug("MobileCore.trackState")
}

// Identify forwards a non-empty user id as the Adobe visitor identifier.
func (d *Destination) Identify(ev *events.Event) {
	if ev.UserID == "" {
		return
	}
	d.client.SetVisitorIdentifier(ev.UserID)
	metrics.EventsTotal.WithLabelValues(string(ev.Type), metrics.OutcomeForwarded).Inc()
	d.logger.WithField("userId", ev.UserID).Debug("Analytics.setVisitorIdentifier")
}

// Reset clears the visitor identifier.
func (d *Destination) Reset() {
	d.client.SetVisitorIdentifier("")
	d.logger.Debug("Analytics.setVisitorIdentifier(null)")
}

// Flush asks the SDK to send its queued hits.
func (d *Destination) Flush() {
	d.client.Flush()
	d.logger.Debug("Analytics.sendQueuedHits")
}

// LifecycleStart forwards a host foreground transition.
func (d *Destination) LifecycleStart(contextData map[string]string) {
	d.client.LifecycleStart(contextData)
	d.logger.Debug("MobileCore.lifecycleStart")
}

// LifecyclePause forwards a host background transition.
func (d *Destination) LifecyclePause() {
	d.client.LifecyclePause()
	d.logger.Debug("MobileCore.lifecyclePause")
}

// buildContextData maps configured fields through the translation table and
// forwards the rest with the extras prefix. withRoot enables dot-prefixed
// lookups against the event root (track events only).
func (d *Destination) buildContextData(rt *runtime, ev *events.Event, withRoot bool) map[string]string {
	extras := ev.Properties.StringMap()
	delete(extras, "products")

	cdata := map[string]string{}
	for _, field := range rt.contextData.EventFieldNames() {
		var (
			value interface{}
			err   error
		)
		if withRoot {
			value, err = rt.contextData.Resolve(field, ev)
		} else {
			value, err = rt.contextData.ResolveProperties(field, ev.Properties)
		}
		if err != nil {
			d.logger.WithError(err).WithField("field", field).Debug("skipping unresolvable context field")
			continue
		}
		if value == nil {
			continue
		}
		if variable, ok := rt.contextData.VariableName(field); ok && variable != "" {
			cdata[variable] = events.Stringify(value)
		}
		delete(extras, field)
	}

	prefix := rt.contextData.Prefix()
	for key, value := range extras {
		if key == "" {
			continue
		}
		cdata[prefix+key] = value
	}
	if len(cdata) == 0 {
		return nil
	}
	return cdata
}
