package audit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// excludedKeys are timestamp columns that change on every save and would
// otherwise turn each mutation into noise.
var excludedKeys = map[string]struct{}{
	"created_at": {},
	"updated_at": {},
	"deleted_at": {},
}

// Changes holds the field-level difference between two snapshots. Both
// maps are nil when nothing meaningful changed.
type Changes struct {
	Old map[string]interface{} `json:"old"`
	New map[string]interface{} `json:"new"`
}

// Empty reports whether the diff carries no changed fields at all.
func (c Changes) Empty() bool {
	return len(c.Old) == 0 && len(c.New) == 0
}

// Snapshot converts an entity into a flat field-value map using its JSON
// representation. Both sides of a diff must come through here so values
// are compared in the same shape.
func Snapshot(entity interface{}) (map[string]interface{}, error) {
	if entity == nil {
		return map[string]interface{}{}, nil
	}

	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot entity: %w", err)
	}

	fields := map[string]interface{}{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to snapshot entity: %w", err)
	}

	return fields, nil
}

// Diff compares two snapshots over the union of their keys, skipping the
// timestamp columns. A key contributes to a side only when it is present
// there, so create diffs carry New only and delete diffs carry Old only.
func Diff(before, after map[string]interface{}) Changes {
	diffOld := map[string]interface{}{}
	diffNew := map[string]interface{}{}

	keys := map[string]struct{}{}
	for key := range before {
		keys[key] = struct{}{}
	}
	for key := range after {
		keys[key] = struct{}{}
	}

	for key := range keys {
		if _, skip := excludedKeys[key]; skip {
			continue
		}

		oldValue, hadOld := before[key]
		newValue, hasNew := after[key]

		if looseEqual(oldValue, newValue) {
			continue
		}

		if hadOld {
			diffOld[key] = oldValue
		}
		if hasNew {
			diffNew[key] = newValue
		}
	}

	changes := Changes{}
	if len(diffOld) > 0 {
		changes.Old = diffOld
	}
	if len(diffNew) > 0 {
		changes.New = diffNew
	}
	return changes
}

// looseEqual mirrors the forgiving comparison used when values round-trip
// through persistence: numeric "5" equals 5, and nil matches the empty
// representations a driver may hand back.
func looseEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil {
		return isEmptyValue(b)
	}
	if b == nil {
		return isEmptyValue(a)
	}

	if aNum, aOK := toFloat(a); aOK {
		if bNum, bOK := toFloat(b); bOK {
			return aNum == bNum
		}
	}

	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func isEmptyValue(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	case bool:
		return !value
	default:
		if num, ok := toFloat(v); ok {
			return num == 0
		}
		return false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int8:
		return float64(value), true
	case int16:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case uint:
		return float64(value), true
	case uint8:
		return float64(value), true
	case uint16:
		return float64(value), true
	case uint32:
		return float64(value), true
	case uint64:
		return float64(value), true
	case json.Number:
		parsed, err := value.Float64()
		return parsed, err == nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}
