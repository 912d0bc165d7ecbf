package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/statera-app/statera-backend/internal/data/schema"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

// Tables touched when a user is removed. Static allow-lists, checked against
// the schema probe so partially migrated deployments skip what they lack.
var (
	cascadeSoftDeleteTables = []string{
		"organizations",
		"groups",
		"subscriptions",
		"user_details",
	}
	cascadeNullifyTables = []string{
		"answers",
		"assessments",
		"members",
		"sessions",
		"user_roles",
		"oauth_access_tokens",
		"oauth_auth_codes",
		"oauth_device_codes",
	}
)

// OwnershipCascadeService detaches or tombstones everything a removed user
// owned. Per-table failures are logged and skipped; the cascade never fails
// the removal that triggered it.
type OwnershipCascadeService interface {
	OnUserRemoved(ctx context.Context, userID uuid.UUID)
	OnUserRestored(ctx context.Context, userID uuid.UUID)
}

type ownershipCascadeService struct {
	db    *gorm.DB
	log   *logger.Logger
	probe schema.Probe
}

func NewOwnershipCascadeService(db *gorm.DB, log *logger.Logger, probe schema.Probe) OwnershipCascadeService {
	return &ownershipCascadeService{
		db:    db,
		log:   log.With("service", "OwnershipCascadeService"),
		probe: probe,
	}
}

func (cs *ownershipCascadeService) OnUserRemoved(ctx context.Context, userID uuid.UUID) {
	if userID == uuid.Nil {
		cs.log.Warn("cascade triggered without user id")
		return
	}

	now := time.Now().UTC()
	for _, table := range cascadeSoftDeleteTables {
		if !cs.probe.TableExists(table) {
			cs.log.Debug("cascade skipping absent table", "table", table, "user_id", userID)
			continue
		}
		if err := cs.softDeleteByUser(ctx, table, userID, now); err != nil {
			cs.log.Error("cascade soft-delete failed", "table", table, "user_id", userID, "error", err)
		}
	}

	for _, table := range cascadeNullifyTables {
		if !cs.probe.ColumnExists(table, "user_id") {
			cs.log.Debug("cascade skipping table without user_id", "table", table, "user_id", userID)
			continue
		}
		if err := cs.nullifyUser(ctx, table, userID); err != nil {
			cs.log.Error("cascade nullify failed", "table", table, "user_id", userID, "error", err)
		}
	}
}

// OnUserRestored is intentionally a no-op: the cascade is one-directional and
// dependents stay tombstoned until someone re-links them explicitly.
func (cs *ownershipCascadeService) OnUserRestored(ctx context.Context, userID uuid.UUID) {
	cs.log.Info("user restored; dependents left untouched", "user_id", userID)
}

func (cs *ownershipCascadeService) softDeleteByUser(ctx context.Context, table string, userID uuid.UUID, at time.Time) error {
	return cs.db.WithContext(ctx).Exec(
		fmt.Sprintf("UPDATE %s SET deleted_at = ? WHERE user_id = ? AND deleted_at IS NULL", table),
		at, userID,
	).Error
}

func (cs *ownershipCascadeService) nullifyUser(ctx context.Context, table string, userID uuid.UUID) error {
	return cs.db.WithContext(ctx).Exec(
		fmt.Sprintf("UPDATE %s SET user_id = NULL WHERE user_id = ?", table),
		userID,
	).Error
}
