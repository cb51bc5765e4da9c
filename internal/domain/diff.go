package domain

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Diff computes the field-level changes a proposed payload would make to the
// current one. Only fields present in proposed are considered; a field whose
// proposed value is structurally equal to the current one is excluded. An
// empty result means the update is a no-op and must be rejected by the caller.
// The recorder itself does not decide permissions or acceptance.
//
// Arrays and objects are compared by structure, not reference; numeric values
// are compared with JSON number semantics, so int(1000) equals float64(1000).
func Diff(current, proposed FieldMap) Changes {
	changes := make(Changes)
	for field, newValue := range proposed {
		oldValue, ok := current[field]
		if !ok {
			oldValue = nil
		}
		if equalValue(oldValue, newValue) {
			continue
		}
		changes[field] = Change{Old: oldValue, New: newValue}
	}
	return changes
}

// equalValue compares two payload values structurally. Both sides are
// normalized through JSON encoding (map keys are serialized sorted), which
// makes int/float and typed/untyped slices compare by value.
func equalValue(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	aj, aErr := json.Marshal(a)
	bj, bErr := json.Marshal(b)
	if aErr != nil || bErr != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(aj, bj)
}
