// Package audit contains the pure pieces of the activity trail: field
// diffing, description rendering, the tracked-entity registry and the
// actor/request context plumbing. Persistence lives in the service and
// repository layers.
package audit

import (
	"context"
	"fmt"
	"strings"
)

// Actions recorded in the activity trail.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// SystemActorName is credited when no authenticated actor is present.
const SystemActorName = "System"

// Auditable is the capability every tracked entity implements.
type Auditable interface {
	AuditType() string
	AuditID() uint
	DisplayName() string
}

// TypeLabel turns a subject type tag into the short name used in
// descriptions: "task" becomes "Task", "project_member" becomes
// "ProjectMember".
func TypeLabel(typeTag string) string {
	parts := strings.Split(strings.TrimSpace(typeTag), "_")
	label := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		label += strings.ToUpper(part[:1]) + part[1:]
	}
	return label
}

// FallbackDisplayName returns the first non-empty candidate label, or a
// generic "<Type> #<id>" tag when none is set.
func FallbackDisplayName(typeName string, id uint, candidates ...string) string {
	for _, candidate := range candidates {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return fmt.Sprintf("%s #%d", typeName, id)
}

// Actor identifies who caused a mutation. A nil ID means the change was
// system-initiated.
type Actor struct {
	ID   *uint
	Name string
}

// DisplayName resolves the name credited in descriptions.
func (a Actor) DisplayName() string {
	if strings.TrimSpace(a.Name) == "" {
		return SystemActorName
	}
	return a.Name
}

// RequestMeta carries optional request origin details onto audit entries.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type actorKey struct{}

type requestMetaKey struct{}

// WithActor binds the current actor to the context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the bound actor, if any.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	if ctx == nil {
		return Actor{}, false
	}
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

// WithRequestMeta binds request origin details to the context.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext returns the bound request metadata, if any.
func RequestMetaFromContext(ctx context.Context) (RequestMeta, bool) {
	if ctx == nil {
		return RequestMeta{}, false
	}
	meta, ok := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta, ok
}
