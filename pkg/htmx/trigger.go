package htmx

import (
	"encoding/json"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// AddTrigger adds a client event to the HX-Trigger header, merging with any
// events already set. A nil detail sends the bare event name when possible.
func AddTrigger(h http.Header, event string, detail any) error {
	events := parseTriggers(h.Get(HeaderHXTrigger))
	events[event] = detail

	plain := true
	for _, d := range events {
		if d != nil {
			plain = false
			break
		}
	}

	if plain {
		names := slices.Sorted(maps.Keys(events))
		h.Set(HeaderHXTrigger, strings.Join(names, ", "))
		return nil
	}

	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	h.Set(HeaderHXTrigger, string(data))
	return nil
}

func parseTriggers(v string) map[string]any {
	out := map[string]any{}
	v = strings.TrimSpace(v)
	if v == "" {
		return out
	}
	if strings.HasPrefix(v, "{") {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal([]byte(v), &raw); err == nil {
			for k, msg := range raw {
				if string(msg) == "null" {
					out[k] = nil
				} else {
					out[k] = msg
				}
			}
			return out
		}
	}
	for name := range strings.SplitSeq(v, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out[name] = nil
		}
	}
	return out
}
