package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// detectUnknownFields compares raw JSON with known struct fields.
// It is called after Config parsing succeeded, so a parse failure here
// indicates an internal inconsistency.
func detectUnknownFields(data []byte) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	var warnings []string
	warnings = append(warnings, unknownKeys(raw, reflect.TypeOf(Config{}), "root level")...)
	warnings = append(warnings, nestedUnknownFields(raw, "bounds", reflect.TypeOf(BoundsConfig{}))...)
	warnings = append(warnings, nestedUnknownFields(raw, "comparison", reflect.TypeOf(ComparisonConfig{}))...)
	return warnings
}

func nestedUnknownFields(raw map[string]json.RawMessage, key string, t reflect.Type) []string {
	data, ok := raw[key]
	if !ok {
		return nil
	}
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil
	}
	return unknownKeys(nested, t, fmt.Sprintf("%q", key))
}

func unknownKeys(raw map[string]json.RawMessage, t reflect.Type, where string) []string {
	known := getJSONFields(t)
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var warnings []string
	for _, key := range keys {
		if key == "$schema" || known[key] {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("unknown field %q at %s (ignored)", key, where))
	}
	return warnings
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			fields[name] = true
		}
	}
	return fields
}
