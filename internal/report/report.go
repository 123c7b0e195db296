// Package report classifies payloads submitted by screens into known report shapes.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind discriminates submitted reports.
type Kind string

const (
	KindGeneric Kind = "generic"
	KindMission Kind = "mission"
)

// Leg is one hop of a convoy route.
type Leg struct {
	From string
	To   string
}

// Mission is convoy-tracking data surfaced to the admin map.
type Mission struct {
	Origin      string
	Destination string
	Legs        []Leg
}

// Report is the tagged union of known report shapes. Mission is set only when Kind is KindMission.
type Report struct {
	Kind    Kind
	Mission *Mission
	Fields  map[string]any
}

// IsMission reports whether r carries convoy data.
func (r Report) IsMission() bool {
	return r.Kind == KindMission && r.Mission != nil
}

// Generic wraps fields as a non-mission report.
func Generic(fields map[string]any) Report {
	return Report{Kind: KindGeneric, Fields: fields}
}

// Decode resolves raw screen output at the boundary. Anything that is not a
// JSON object is kept as a generic report under the "text" field.
func Decode(data []byte) Report {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Generic(map[string]any{"text": strings.TrimSpace(string(data))})
	}
	return Classify(fields)
}

// Classify picks the report kind from the payload's shape: a payload with
// legs, or with both origin and destination, is a mission. A "kind" field is
// carried in Fields but never decides the shape.
func Classify(fields map[string]any) Report {
	if fields == nil {
		return Generic(nil)
	}
	if truthy(fields["legs"]) || (truthy(fields["origin"]) && truthy(fields["destination"])) {
		return Report{Kind: KindMission, Mission: missionFrom(fields), Fields: fields}
	}
	return Generic(fields)
}

func missionFrom(fields map[string]any) *Mission {
	m := &Mission{
		Origin:      place(fields["origin"]),
		Destination: place(fields["destination"]),
	}
	if legs, ok := fields["legs"].([]any); ok {
		for _, raw := range legs {
			leg, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			m.Legs = append(m.Legs, Leg{From: place(firstOf(leg, "from", "origin")), To: place(firstOf(leg, "to", "destination"))})
		}
	}
	if m.Origin == "" && len(m.Legs) > 0 {
		m.Origin = m.Legs[0].From
	}
	if m.Destination == "" && len(m.Legs) > 0 {
		m.Destination = m.Legs[len(m.Legs)-1].To
	}
	return m
}

func firstOf(fields map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			return v
		}
	}
	return nil
}

// place renders a location given as a string, a named object or coordinates.
func place(v any) string {
	switch p := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(p)
	case map[string]any:
		if name, ok := p["name"].(string); ok && name != "" {
			return name
		}
		lat, latOK := p["lat"].(float64)
		lng, lngOK := p["lng"].(float64)
		if latOK && lngOK {
			return fmt.Sprintf("%.5f,%.5f", lat, lng)
		}
	}
	return fmt.Sprint(v)
}

// truthy follows the loose presence test screens were written against:
// empty strings, zero, false and null are absent; empty lists are present.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case int:
		return x != 0
	}
	return true
}
