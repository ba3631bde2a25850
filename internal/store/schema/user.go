package schema

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table. Identity management lives elsewhere; this
// service only needs the rows to resolve handles and email addresses into
// notification payloads.
type User struct {
	// ID is the user identifier shared with the identity service
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// Handle is the unique public name of the user
	Handle string `gorm:"column:handle;not null;uniqueIndex;type:text"`
	// Email is where notification messages are addressed
	Email string `gorm:"column:email;not null;type:text"`
	// CreatedAt is when this record was mirrored locally
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
