package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Reserved attribute names mirrored from the envelope by NewEvent.
const (
	AttrID      = "id"
	AttrSource  = "source"
	AttrType    = "type"
	AttrSubject = "subject"
)

// Event is an immutable fact published onto the bus by a plugin runtime,
// a host extension or the system itself.
//
// Build events with NewEvent (or decode them with json.Unmarshal, which goes
// through the same constructor). Callers must treat the value as read-only.
type Event struct {
	// --- Envelope ---

	// ID is the producer-assigned identifier. Duplicate delivery of the same ID
	// is possible; idempotency is the producer's concern.
	ID string

	// Source identifies the producer, e.g. "plugin:weather" or "host:updater".
	Source string

	// Type is the domain event name, e.g. "com.example.created".
	Type string

	// Time is when the producer observed the fact.
	Time time.Time

	// Subject optionally narrows what the event is about.
	Subject string

	// --- Attributes ---

	attributes map[string]any
}

// NewEvent builds an event. The attribute map is copied, and the envelope
// fields id, source, type and subject are mirrored into it unless the producer
// already set those keys, so filters only ever look at attributes.
func NewEvent(id, source, eventType string, at time.Time, subject string, attributes map[string]any) *Event {
	attrs := make(map[string]any, len(attributes)+4)
	for k, v := range attributes {
		attrs[k] = v
	}
	mirror := func(key, value string) {
		if _, ok := attrs[key]; ok {
			return
		}
		if value == "" && key == AttrSubject {
			return
		}
		attrs[key] = value
	}
	mirror(AttrID, id)
	mirror(AttrSource, source)
	mirror(AttrType, eventType)
	mirror(AttrSubject, subject)

	return &Event{
		ID:         id,
		Source:     source,
		Type:       eventType,
		Time:       at,
		Subject:    subject,
		attributes: attrs,
	}
}

// Attribute returns the named attribute and whether it was present.
func (e *Event) Attribute(name string) (any, bool) {
	v, ok := e.attributes[name]
	return v, ok
}

// Attributes returns a shallow copy of the attribute map.
func (e *Event) Attributes() map[string]any {
	out := make(map[string]any, len(e.attributes))
	for k, v := range e.attributes {
		out[k] = v
	}
	return out
}

// Validate ensures the envelope carries everything routing and audit need.
func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("id is required")
	}
	if e.Source == "" {
		return fmt.Errorf("source is required")
	}
	if e.Type == "" {
		return fmt.Errorf("type is required")
	}
	if e.Time.IsZero() {
		return fmt.Errorf("time is required")
	}
	return nil
}

// wireEvent is the JSON shape shared by ingestion, Kafka and audit payloads.
type wireEvent struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Type       string         `json:"type"`
	Time       time.Time      `json:"time"`
	Subject    string         `json:"subject,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// MarshalJSON renders the event envelope and attributes.
func (e *Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireEvent{
		ID:         e.ID,
		Source:     e.Source,
		Type:       e.Type,
		Time:       e.Time,
		Subject:    e.Subject,
		Attributes: e.attributes,
	})
}

// UnmarshalJSON decodes the wire shape through NewEvent. Attribute numbers
// stay json.Number so integers beyond 2^53 compare and render exactly.
func (e *Event) UnmarshalJSON(data []byte) error {
	var w wireEvent
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&w); err != nil {
		return err
	}
	*e = *NewEvent(w.ID, w.Source, w.Type, w.Time, w.Subject, w.Attributes)
	return nil
}

// Payload returns the raw JSON snapshot stored in the audit log.
func (e *Event) Payload() json.RawMessage {
	data, err := json.Marshal(e)
	if err != nil {
		// Attributes come from JSON decoding or producer code; an unencodable
		// value (NaN, channels) is recorded rather than dropped.
		data, _ = json.Marshal(map[string]string{"encode_error": err.Error()})
	}
	return data
}
