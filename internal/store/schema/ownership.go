package schema

import (
	"time"

	"github.com/google/uuid"
)

// Ownership represents the ownerships table - the ledger of co-maintainer
// grants. A row is created unconfirmed with a fresh confirmation token and
// becomes authoritative once ConfirmedAt is set.
type Ownership struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PackageID references the package the grant applies to
	PackageID uuid.UUID `gorm:"column:package_id;not null;type:uuid;uniqueIndex:idx_ownerships_package_user,priority:1"`
	// UserID is the grant holder
	UserID uuid.UUID `gorm:"column:user_id;not null;type:uuid;uniqueIndex:idx_ownerships_package_user,priority:2"`
	// AuthorizerID is the owner who granted it, when granted by someone
	AuthorizerID *uuid.UUID `gorm:"column:authorizer_id;type:uuid"`
	// ConfirmationToken is the hex of 20 random bytes; unique across all grants
	ConfirmationToken string `gorm:"column:confirmation_token;not null;uniqueIndex;type:char(40)"`
	// TokenExpiresAt bounds the token's validity
	TokenExpiresAt time.Time `gorm:"column:token_expires_at;not null;type:timestamptz"`
	// ConfirmedAt is set once when the holder visits a valid token; nil while pending
	ConfirmedAt *time.Time `gorm:"column:confirmed_at;type:timestamptz"`
	// CreatedAt is when the grant was issued
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the grant was last touched
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Package    Package `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
	User       User    `gorm:"foreignKey:UserID"`
	Authorizer *User   `gorm:"foreignKey:AuthorizerID"`
}

// TableName specifies the table name for the Ownership model
func (Ownership) TableName() string {
	return "ownerships"
}

// Confirmed reports whether the grant has been confirmed
func (o *Ownership) Confirmed() bool {
	return o.ConfirmedAt != nil
}

// TokenValidAt reports whether the confirmation token is still within its TTL
func (o *Ownership) TokenValidAt(now time.Time) bool {
	return now.Before(o.TokenExpiresAt)
}
