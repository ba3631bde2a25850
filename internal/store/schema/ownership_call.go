package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/openregistry/ownership/internal/domain"
)

// OwnershipCall represents the ownership_calls table - an owner-initiated
// public invitation for new co-maintainers. At most one row per package may
// be open, enforced by a partial unique index.
type OwnershipCall struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PackageID references the package the call is for
	PackageID uuid.UUID `gorm:"column:package_id;not null;type:uuid"`
	// OpenedBy is the owner who opened the call
	OpenedBy uuid.UUID `gorm:"column:opened_by;not null;type:uuid"`
	// Note is the public invitation text
	Note string `gorm:"column:note;not null;type:text"`
	// Email is the contact address shown alongside the call
	Email string `gorm:"column:email;not null;type:text"`
	// Status is open or closed; closed is terminal
	Status domain.CallStatus `gorm:"column:status;not null;default:open;type:text"`
	// CreatedAt is when the call was opened
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the call was last touched
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Package  Package            `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
	Opener   User               `gorm:"foreignKey:OpenedBy"`
	Requests []OwnershipRequest `gorm:"foreignKey:CallID"`
}

// TableName specifies the table name for the OwnershipCall model
func (OwnershipCall) TableName() string {
	return "ownership_calls"
}
