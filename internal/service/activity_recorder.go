package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/adityawarmn/projectflow-api/internal/audit"
	"github.com/adityawarmn/projectflow-api/internal/models"
	"github.com/adityawarmn/projectflow-api/internal/observability"
	"github.com/adityawarmn/projectflow-api/internal/repository"
)

// dedupWindow is the interval within which an identical
// (subject, action, actor) event is treated as a duplicate, and also the
// grace period after creation during which updates are considered part of
// the same creation transaction.
const dedupWindow = 2 * time.Second

// ActivityRecorder is the audit entry point. CRUD services notify it
// synchronously right after persistence with explicit before/after
// snapshots; there is no reliance on ORM dirty-tracking. The recorder
// never fails the triggering operation: storage errors are logged and
// swallowed.
type ActivityRecorder interface {
	// RecordCreated logs a fresh insert. Callers invoke it only from the
	// code path that performed the insert, never from a later re-save.
	RecordCreated(ctx context.Context, subject audit.Auditable, attributes map[string]interface{})
	// RecordUpdated logs an update given the pre- and post-mutation
	// snapshots. Updates with no meaningful field change, or landing
	// within the creation grace period, are suppressed.
	RecordUpdated(ctx context.Context, subject audit.Auditable, before, after map[string]interface{})
	// RecordDeleted logs a delete with the entity's last known fields.
	RecordDeleted(ctx context.Context, subject audit.Auditable, attributes map[string]interface{})
}

type activityRecorder struct {
	repo     repository.ActivityLogRepository
	registry *audit.Registry
	logger   zerolog.Logger
	now      func() time.Time
}

// NewActivityRecorder constructs the recorder over the given allow-list
// registry.
func NewActivityRecorder(repo repository.ActivityLogRepository, registry *audit.Registry, logger zerolog.Logger) ActivityRecorder {
	return &activityRecorder{
		repo:     repo,
		registry: registry,
		logger:   logger.With().Str("component", "activity_recorder").Logger(),
		now:      time.Now,
	}
}

func (r *activityRecorder) RecordCreated(ctx context.Context, subject audit.Auditable, attributes map[string]interface{}) {
	if !r.registry.Tracked(subject.AuditType()) {
		return
	}

	changes := audit.Diff(map[string]interface{}{}, attributes)
	r.store(ctx, subject, audit.ActionCreated, changes)
}

func (r *activityRecorder) RecordUpdated(ctx context.Context, subject audit.Auditable, before, after map[string]interface{}) {
	if !r.registry.Tracked(subject.AuditType()) {
		return
	}

	// An update landing right after the insert belongs to the same
	// creation transaction and would only duplicate the created entry.
	if createdAt, ok := snapshotTime(after, "created_at"); ok {
		if updatedAt, ok := snapshotTime(after, "updated_at"); ok {
			gap := updatedAt.Sub(createdAt)
			if gap < 0 {
				gap = -gap
			}
			if gap < dedupWindow {
				r.suppress(subject, audit.ActionUpdated, "creation_window")
				return
			}
		}
	}

	changes := audit.Diff(before, after)
	if len(changes.Old) == 0 {
		r.suppress(subject, audit.ActionUpdated, "no_changes")
		return
	}

	r.store(ctx, subject, audit.ActionUpdated, changes)
}

func (r *activityRecorder) RecordDeleted(ctx context.Context, subject audit.Auditable, attributes map[string]interface{}) {
	if !r.registry.Tracked(subject.AuditType()) {
		return
	}

	changes := audit.Diff(attributes, map[string]interface{}{})
	r.store(ctx, subject, audit.ActionDeleted, changes)
}

func (r *activityRecorder) store(ctx context.Context, subject audit.Auditable, action string, changes audit.Changes) {
	actor, _ := audit.ActorFromContext(ctx)
	meta, _ := audit.RequestMetaFromContext(ctx)

	since := r.now().Add(-dedupWindow)
	exists, err := r.repo.ExistsRecent(ctx, subject.AuditType(), subject.AuditID(), action, actor.ID, since)
	if err != nil {
		r.logger.Warn().Err(err).
			Str("subject_type", subject.AuditType()).
			Str("action", action).
			Msg("failed to check for duplicate activity entry")
		return
	}
	if exists {
		r.suppress(subject, action, "dedup_window")
		return
	}

	payload, err := json.Marshal(changes)
	if err != nil {
		r.logger.Warn().Err(err).Msg("failed to serialize activity changes")
		return
	}

	entry := models.ActivityLog{
		SubjectType: subject.AuditType(),
		SubjectID:   subject.AuditID(),
		UserID:      actor.ID,
		Action:      action,
		Description: audit.Describe(actor.DisplayName(), audit.TypeLabel(subject.AuditType()), subject.DisplayName(), action, changes),
		Changes:     datatypes.JSON(payload),
		IP:          meta.IP,
		UserAgent:   meta.UserAgent,
	}

	if err := r.repo.Create(ctx, &entry); err != nil {
		r.logger.Warn().Err(err).
			Str("subject_type", subject.AuditType()).
			Uint("subject_id", subject.AuditID()).
			Str("action", action).
			Msg("failed to store activity log entry")
		return
	}

	observability.AuditEntries().WithLabelValues(action).Inc()
}

func (r *activityRecorder) suppress(subject audit.Auditable, action, reason string) {
	observability.AuditSuppressed().WithLabelValues(reason).Inc()
	r.logger.Debug().
		Str("subject_type", subject.AuditType()).
		Uint("subject_id", subject.AuditID()).
		Str("action", action).
		Str("reason", reason).
		Msg("activity entry suppressed")
}

// snapshotOf flattens an entity for diffing. A serialization failure is
// logged and yields an empty snapshot so the triggering operation is
// never disturbed.
func snapshotOf(logger zerolog.Logger, entity interface{}) map[string]interface{} {
	fields, err := audit.Snapshot(entity)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to snapshot entity for audit")
		return map[string]interface{}{}
	}
	return fields
}

func snapshotTime(snapshot map[string]interface{}, key string) (time.Time, bool) {
	switch value := snapshot[key].(type) {
	case time.Time:
		return value, true
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			return parsed, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
