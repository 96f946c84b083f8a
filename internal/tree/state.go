package tree

import (
	"fmt"
	"reflect"
	"strconv"
)

// RecordState is the capability a state type implements to expose named
// fields for display. It is the preferred conversion: states that are plain
// structs should implement it rather than rely on the generic fallbacks.
type RecordState interface {
	StateFields() map[string]any
}

// stateData is the default node-data conversion shared by all adapters. It
// dispatches on what the state value can do: nil states are empty, record
// states expose their fields, sequences map position to value, and maps get a
// generic key-to-value conversion. Anything else is opaque and requires the
// caller to supply a node data factory.
func stateData(state any) (NodeData, error) {
	switch s := state.(type) {
	case nil:
		return NodeData{}, nil
	case RecordState:
		d := NodeData{}
		for k, v := range s.StateFields() {
			d[k] = v
		}
		return d, nil
	case map[string]any:
		d := make(NodeData, len(s))
		for k, v := range s {
			d[k] = v
		}
		return d, nil
	}

	v := reflect.ValueOf(state)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		d := make(NodeData, v.Len())
		for i := 0; i < v.Len(); i++ {
			d[strconv.Itoa(i)] = v.Index(i).Interface()
		}
		return d, nil
	case reflect.Map:
		d := make(NodeData, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			d[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return d, nil
	}

	return nil, fmt.Errorf("state %T: %w", state, ErrUnsupportedState)
}

// numericField reads a float out of edge data, accepting the numeric types
// that survive JSON decoding and the ones factories produce directly.
func numericField(data EdgeData, key string) (float64, bool) {
	v, ok := data[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
