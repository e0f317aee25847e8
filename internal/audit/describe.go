package audit

import (
	"fmt"
	"sort"
	"strings"
)

// Describe renders the one-line human readable sentence stored alongside
// an audit entry. It is a pure function of its inputs.
func Describe(actor, entityType, subject, action string, changes Changes) string {
	switch action {
	case ActionCreated:
		return fmt.Sprintf("%s created %s %q", actor, entityType, subject)
	case ActionDeleted:
		return fmt.Sprintf("%s deleted %s %q", actor, entityType, subject)
	case ActionUpdated:
		return describeUpdate(actor, entityType, subject, changes)
	default:
		return fmt.Sprintf("%s performed %s on %s %q", actor, action, entityType, subject)
	}
}

func describeUpdate(actor, entityType, subject string, changes Changes) string {
	if len(changes.Old) == 0 {
		return fmt.Sprintf("%s updated %s %q", actor, entityType, subject)
	}

	keys := make([]string, 0, len(changes.Old))
	for key := range changes.Old {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s: %s → %s", key, formatValue(changes.Old[key]), formatValue(changes.New[key])))
	}

	return fmt.Sprintf("%s updated %s %q (%s)", actor, entityType, subject, strings.Join(pairs, ", "))
}

func formatValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%v", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
