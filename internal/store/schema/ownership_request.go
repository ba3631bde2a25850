package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/openregistry/ownership/internal/domain"
)

// OwnershipRequest represents the ownership_requests table - a candidate's
// application for co-maintainership, optionally tied to an open call. At most
// one row per (package, user) may be open, enforced by a partial unique index.
type OwnershipRequest struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PackageID references the package the request is for
	PackageID uuid.UUID `gorm:"column:package_id;not null;type:uuid"`
	// UserID is the candidate
	UserID uuid.UUID `gorm:"column:user_id;not null;type:uuid"`
	// CallID ties the request to an open call; nil for a direct ask
	CallID *uint64 `gorm:"column:call_id"`
	// Note is the candidate's pitch
	Note string `gorm:"column:note;not null;type:text"`
	// Status is open, approved, or closed; approved and closed are terminal
	Status domain.RequestStatus `gorm:"column:status;not null;default:open;type:text"`
	// ApproverID is the owner who approved the request, set on approval only
	ApproverID *uuid.UUID `gorm:"column:approver_id;type:uuid"`
	// CreatedAt is when the request was submitted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the request was last touched
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Package  Package        `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
	User     User           `gorm:"foreignKey:UserID"`
	Call     *OwnershipCall `gorm:"foreignKey:CallID"`
	Approver *User          `gorm:"foreignKey:ApproverID"`
}

// TableName specifies the table name for the OwnershipRequest model
func (OwnershipRequest) TableName() string {
	return "ownership_requests"
}
