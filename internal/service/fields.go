package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// DiffPayloadFields compares two entity payloads and returns the sorted names
// of the top-level fields whose values differ. Fields present on only one
// side count as different. Values are compared by their canonical JSON
// encoding, so key order inside nested objects does not matter.
func DiffPayloadFields(local, server json.RawMessage) ([]string, error) {
	localFields, err := decodeFields(local)
	if err != nil {
		return nil, fmt.Errorf("decode local payload: %w", err)
	}
	serverFields, err := decodeFields(server)
	if err != nil {
		return nil, fmt.Errorf("decode server payload: %w", err)
	}

	seen := make(map[string]struct{}, len(localFields))
	var diff []string

	for name, localValue := range localFields {
		seen[name] = struct{}{}
		serverValue, ok := serverFields[name]
		if !ok || !jsonEqual(localValue, serverValue) {
			diff = append(diff, name)
		}
	}
	for name := range serverFields {
		if _, ok := seen[name]; !ok {
			diff = append(diff, name)
		}
	}

	sort.Strings(diff)
	return diff, nil
}

func decodeFields(payload json.RawMessage) (map[string]json.RawMessage, error) {
	if len(payload) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func jsonEqual(a, b json.RawMessage) bool {
	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		return bytes.Equal(a, b)
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return bytes.Equal(a, b)
	}

	ca, errA := json.Marshal(av)
	cb, errB := json.Marshal(bv)
	if errA != nil || errB != nil {
		return bytes.Equal(a, b)
	}
	return bytes.Equal(ca, cb)
}
