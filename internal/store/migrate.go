package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/openregistry/ownership/internal/store/schema"
)

// Migrate creates or updates the database schema. AutoMigrate handles the
// tables; the partial unique indexes that back the single-open-call and
// single-open-request invariants need raw SQL because they carry a WHERE
// clause.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&schema.User{},
		&schema.Package{},
		&schema.Ownership{},
		&schema.OwnershipCall{},
		&schema.OwnershipRequest{},
		&schema.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate schema: %w", err)
	}

	partialIndexes := []string{
		// At most one open call per package
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_ownership_calls_open
			ON ownership_calls (package_id) WHERE status = 'open'`,
		// At most one open request per (package, candidate)
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_ownership_requests_open
			ON ownership_requests (package_id, user_id) WHERE status = 'open'`,
	}
	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create partial index: %w", err)
		}
	}

	return nil
}
