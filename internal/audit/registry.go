package audit

import "strings"

// ActivityLogType is the subject tag of the audit entity itself. It can
// never be registered, which keeps the recorder from observing its own
// writes.
const ActivityLogType = "activity_log"

// Registry is the fixed allow-list of entity types the recorder observes.
// It is assembled once at process start; there is no dynamic discovery.
type Registry struct {
	tracked map[string]struct{}
}

// NewRegistry builds a registry from the given type tags. The activity
// log tag is silently refused.
func NewRegistry(types ...string) *Registry {
	tracked := make(map[string]struct{}, len(types))
	for _, t := range types {
		normalized := strings.ToLower(strings.TrimSpace(t))
		if normalized == "" || normalized == ActivityLogType {
			continue
		}
		tracked[normalized] = struct{}{}
	}
	return &Registry{tracked: tracked}
}

// Tracked reports whether mutations of the given entity type are audited.
func (r *Registry) Tracked(entityType string) bool {
	if r == nil {
		return false
	}
	_, ok := r.tracked[strings.ToLower(strings.TrimSpace(entityType))]
	return ok
}
