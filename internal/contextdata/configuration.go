package contextdata

import (
	"errors"
	"strings"

	"github.com/segment-integrations/analytics-go-adobe-analytics/internal/events"
)

// ErrInvalidField is returned when a field path is blank or contains a blank
// segment. Callers treat it as "field not resolvable" rather than fatal.
var ErrInvalidField = errors.New("contextdata: field name must be defined")

// reservedPrefix is owned by Adobe Analytics and must never be prepended to
// extra properties.
const reservedPrefix = "a."

// Configuration encapsulates the context-data settings of the destination: the
// translation table between event field paths and Adobe variable names, and the
// prefix added to properties that have no translation.
type Configuration struct {
	prefix    string
	variables map[string]string
}

// NewConfiguration builds an immutable configuration. A nil variables map is
// treated as empty; the reserved "a." prefix normalizes to "".
func NewConfiguration(prefix string, variables map[string]string) *Configuration {
	if prefix == reservedPrefix {
		prefix = ""
	}
	vars := make(map[string]string, len(variables))
	for k, v := range variables {
		vars[k] = v
	}
	return &Configuration{prefix: prefix, variables: vars}
}

// Prefix returns the normalized prefix for untranslated extra properties.
func (c *Configuration) Prefix() string {
	return c.prefix
}

// VariableName returns the Adobe variable mapped to the given field path.
func (c *Configuration) VariableName(field string) (string, bool) {
	name, ok := c.variables[field]
	return name, ok
}

// EventFieldNames returns the configured field paths, in no particular order.
func (c *Configuration) EventFieldNames() []string {
	fields := make([]string, 0, len(c.variables))
	for field := range c.variables {
		fields = append(fields, field)
	}
	return fields
}

// Resolve inspects the event payload and retrieves the value at the given
// field path. Paths use dot notation against the event properties
// ("myObject.name"); a leading dot switches resolution to the root of the
// payload (".userId", ".context.library"). Returns nil when the path does not
// resolve, and ErrInvalidField when the path itself is malformed.
func (c *Configuration) Resolve(field string, ev *events.Event) (interface{}, error) {
	segments, err := splitField(field)
	if err != nil {
		return nil, err
	}

	base := map[string]interface{}(ev.Properties)
	if segments[0] == "" {
		base = rootValues(ev)
		segments = segments[1:]
	}
	return walk(segments, base)
}

// ResolveProperties resolves a field path against a bare property bag. Root
// lookups are disabled: a leading dot switches to an empty root, so
// root-prefixed paths never resolve here.
func (c *Configuration) ResolveProperties(field string, props events.Properties) (interface{}, error) {
	segments, err := splitField(field)
	if err != nil {
		return nil, err
	}

	base := map[string]interface{}(props)
	if segments[0] == "" {
		base = map[string]interface{}{}
		segments = segments[1:]
	}
	return walk(segments, base)
}

func splitField(field string) ([]string, error) {
	if strings.TrimSpace(field) == "" {
		return nil, ErrInvalidField
	}
	segments := strings.Split(field, ".")
	// A blank first segment marks a root-prefixed path; any other blank
	// segment is malformed.
	for i, segment := range segments {
		if i == 0 && segment == "" {
			continue
		}
		if strings.TrimSpace(segment) == "" {
			return nil, ErrInvalidField
		}
	}
	return segments, nil
}

// rootValues builds the synthetic root map used for dot-prefixed paths.
func rootValues(ev *events.Event) map[string]interface{} {
	root := map[string]interface{}{
		"context":      nestedMap(ev.Context),
		"integrations": nestedMap(ev.Integrations),
		"userId":       ev.UserID,
	}
	switch ev.Type {
	case events.TrackType:
		root["anonymousId"] = ev.AnonymousID
		root["event"] = ev.EventName
	case events.ScreenType:
		root["event"] = ev.Name
	}
	return root
}

func nestedMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

func walk(segments []string, base map[string]interface{}) (interface{}, error) {
	if len(segments) == 0 {
		return nil, ErrInvalidField
	}
	current := base
	for i, segment := range segments {
		value, ok := current[segment]
		if !ok || value == nil {
			return nil, nil
		}
		if i == len(segments)-1 {
			return value, nil
		}
		next, ok := value.(map[string]interface{})
		if !ok {
			return nil, nil
		}
		current = next
	}
	return nil, nil
}
