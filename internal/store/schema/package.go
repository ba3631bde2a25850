package schema

import (
	"time"

	"github.com/google/uuid"
)

// Package represents the packages table. Package storage and indexing are
// external; ownership records reference packages by identifier only.
type Package struct {
	// ID is the package identifier shared with the registry
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// Name is the unique published name of the package
	Name string `gorm:"column:name;not null;uniqueIndex;type:text"`
	// CreatedAt is when this record was mirrored locally
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Ownerships []Ownership        `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
	Calls      []OwnershipCall    `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
	Requests   []OwnershipRequest `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Package model
func (Package) TableName() string {
	return "packages"
}
