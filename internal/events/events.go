package events

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// Type identifies the event variant in the Segment message envelope.
type Type string

const (
	IdentifyType Type = "identify"
	TrackType    Type = "track"
	ScreenType   Type = "screen"
	AliasType    Type = "alias"
	GroupType    Type = "group"
)

// Properties is the free-form property bag carried by track and screen events.
// Values decoded from JSON keep their json.Number form (sonic UseNumber).
type Properties map[string]interface{}

// Event is the common payload envelope for all five variants. Only the fields
// relevant to the variant are populated.
type Event struct {
	Type         Type                   `json:"type"`
	MessageID    string                 `json:"messageId"`
	UserID       string                 `json:"userId"`
	AnonymousID  string                 `json:"anonymousId"`
	Timestamp    time.Time              `json:"timestamp"`
	Context      map[string]interface{} `json:"context,omitempty"`
	Integrations map[string]interface{} `json:"integrations,omitempty"`

	// Track
	EventName string `json:"event,omitempty"`
	// Screen
	Name string `json:"name,omitempty"`

	Properties Properties             `json:"properties,omitempty"`
	Traits     map[string]interface{} `json:"traits,omitempty"`
	PreviousID string                 `json:"previousId,omitempty"`
	GroupID    string                 `json:"groupId,omitempty"`
}

// Stringify renders a property value the way the destination forwards it:
// scalars verbatim, numbers without exponent notation, nested structures as JSON.
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		encoded, err := sonic.MarshalString(v)
		if err != nil {
			return ""
		}
		return encoded
	}
}

// StringMap returns a stringified copy of the top-level bag.
func (p Properties) StringMap() map[string]string {
	out := make(map[string]string, len(p))
	for k, v := range p {
		out[k] = Stringify(v)
	}
	return out
}

// String returns the stringified value at key, or "" when absent.
func (p Properties) String(key string) string {
	v, ok := p[key]
	if !ok {
		return ""
	}
	return Stringify(v)
}

// Float parses the value at key as a float, returning def when the key is
// absent or the value does not parse.
func (p Properties) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(Stringify(v)), 64)
	if err != nil {
		return def
	}
	return f
}

// Int64 parses the value at key as an integer, returning def when the key is
// absent or the value does not parse. Fractional values are truncated.
func (p Properties) Int64(key string, def int64) int64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	s := strings.TrimSpace(Stringify(v))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return def
}

// FirstNonDefaultFloat walks keys in order and returns the first parsed value
// that differs from def. Keys that are absent or unparsable count as def.
// Properties commonly carry the same field under a camelCase and a snake_case
// spelling; the earlier spelling wins only when it holds a non-default value.
func (p Properties) FirstNonDefaultFloat(def float64, keys ...string) float64 {
	for _, key := range keys {
		if v := p.Float(key, def); v != def {
			return v
		}
	}
	return def
}

// FirstNonDefaultInt64 is the integer form of FirstNonDefaultFloat.
func (p Properties) FirstNonDefaultInt64(def int64, keys ...string) int64 {
	for _, key := range keys {
		if v := p.Int64(key, def); v != def {
			return v
		}
	}
	return def
}

// FirstNonBlank walks keys in order and returns the first value whose
// stringified form is non-blank, or "" when none is.
func (p Properties) FirstNonBlank(keys ...string) string {
	for _, key := range keys {
		if s := strings.TrimSpace(p.String(key)); s != "" {
			return p.String(key)
		}
	}
	return ""
}
