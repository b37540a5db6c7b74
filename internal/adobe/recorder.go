package adobe

// Recorder captures every call made through the Client and TrackerFactory
// surfaces so tests can assert on the exact vendor interaction sequence.
type Recorder struct {
	Calls          []RecordedCall
	TrackerConfigs []map[string]interface{}
	Trackers       []*RecordedTracker
}

// RecordedCall is one vendor call with whichever arguments it carried.
type RecordedCall struct {
	Method      string
	Name        string
	Object      map[string]interface{}
	ContextData map[string]string
	Value       float64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(call RecordedCall) {
	r.Calls = append(r.Calls, call)
}

func (r *Recorder) SetVisitorIdentifier(identifier string) {
	r.record(RecordedCall{Method: "setVisitorIdentifier", Name: identifier})
}

func (r *Recorder) LifecycleStart(contextData map[string]string) {
	r.record(RecordedCall{Method: "lifecycleStart", ContextData: contextData})
}

func (r *Recorder) LifecyclePause() {
	r.record(RecordedCall{Method: "lifecyclePause"})
}

func (r *Recorder) TrackAction(action string, contextData map[string]string) {
	r.record(RecordedCall{Method: "trackAction", Name: action, ContextData: contextData})
}

func (r *Recorder) TrackState(state string, contextData map[string]string) {
	r.record(RecordedCall{Method: "trackState", Name: state, ContextData: contextData})
}

func (r *Recorder) Flush() {
	r.record(RecordedCall{Method: "flush"})
}

func (r *Recorder) TrackerFor(config map[string]interface{}) MediaTracker {
	r.TrackerConfigs = append(r.TrackerConfigs, config)
	tracker := &RecordedTracker{}
	r.Trackers = append(r.Trackers, tracker)
	return tracker
}

// LastTracker returns the most recently created tracker, or nil.
func (r *Recorder) LastTracker() *RecordedTracker {
	if len(r.Trackers) == 0 {
		return nil
	}
	return r.Trackers[len(r.Trackers)-1]
}

// LastCall returns the most recent client call, or a zero call.
func (r *Recorder) LastCall() RecordedCall {
	if len(r.Calls) == 0 {
		return RecordedCall{}
	}
	return r.Calls[len(r.Calls)-1]
}

// RecordedTracker captures media tracker calls.
type RecordedTracker struct {
	Calls []RecordedCall
}

func (t *RecordedTracker) record(call RecordedCall) {
	t.Calls = append(t.Calls, call)
}

func (t *RecordedTracker) TrackSessionStart(mediaObject map[string]interface{}, contextData map[string]string) {
	t.record(RecordedCall{Method: "trackSessionStart", Object: mediaObject, ContextData: contextData})
}

func (t *RecordedTracker) TrackSessionEnd() {
	t.record(RecordedCall{Method: "trackSessionEnd"})
}

func (t *RecordedTracker) TrackPlay() {
	t.record(RecordedCall{Method: "trackPlay"})
}

func (t *RecordedTracker) TrackPause() {
	t.record(RecordedCall{Method: "trackPause"})
}

func (t *RecordedTracker) TrackComplete() {
	t.record(RecordedCall{Method: "trackComplete"})
}

func (t *RecordedTracker) TrackEvent(event MediaEvent, objectMap map[string]interface{}, contextData map[string]string) {
	t.record(RecordedCall{Method: "trackEvent", Name: string(event), Object: objectMap, ContextData: contextData})
}

func (t *RecordedTracker) UpdateCurrentPlayhead(seconds float64) {
	t.record(RecordedCall{Method: "updateCurrentPlayhead", Value: seconds})
}

func (t *RecordedTracker) UpdateQoEObject(qoe map[string]interface{}) {
	t.record(RecordedCall{Method: "updateQoEObject", Object: qoe})
}

// Methods returns the call names in order, for compact sequence assertions.
func (t *RecordedTracker) Methods() []string {
	methods := make([]string, len(t.Calls))
	for i, call := range t.Calls {
		methods[i] = call.Method
	}
	return methods
}
