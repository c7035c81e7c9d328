// Package playreport turns in-game play reports into presence status text.
package playreport

import (
	"fmt"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// Report is a single play report sent by a running title.
type Report struct {
	TitleID string
	Room    string
	Values  map[string]any
}

// Decode parses a MessagePack encoded report body, which is a map keyed by
// value name.
func Decode(titleID, room string, payload []byte) (Report, error) {
	var values map[string]any
	if err := msgpack.Unmarshal(payload, &values); err != nil {
		return Report{}, fmt.Errorf("failed to decode play report for %s: %w", titleID, err)
	}
	if values == nil {
		values = map[string]any{}
	}
	return Report{TitleID: titleID, Room: room, Values: values}, nil
}

// Encode is the inverse of Decode, used by event scripts and tests.
func Encode(values map[string]any) ([]byte, error) {
	return msgpack.Marshal(values)
}

// Value is one keyed entry of a report handed to a ValueFormatter.
type Value struct {
	Key string
	Raw any
}

// Bool interprets the value as a boolean. Numbers are true when non-zero.
func (v Value) Bool() (bool, bool) {
	switch x := v.Raw.(type) {
	case bool:
		return x, true
	case string:
		b, err := strconv.ParseBool(x)
		return b, err == nil
	}
	if f, ok := v.Float(); ok {
		return f != 0, true
	}
	return false, false
}

// Float interprets the value as a number.
func (v Value) Float() (float64, bool) {
	switch x := v.Raw.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	}
	return 0, false
}

// String renders the value for display and rule matching.
func (v Value) String() string {
	switch x := v.Raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []byte:
		return string(x)
	}
	if f, ok := v.Float(); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v.Raw)
}
