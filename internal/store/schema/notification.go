package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/openregistry/ownership/internal/domain"
)

// NotificationStatus is the delivery state of an outbox row
type NotificationStatus string

const (
	// NotificationStatusPending means the row has not been handed to the broker yet
	NotificationStatusPending NotificationStatus = "pending"
	// NotificationStatusSent means the broker acknowledged the publish
	NotificationStatusSent NotificationStatus = "sent"
	// NotificationStatusFailed means delivery attempts are exhausted
	NotificationStatusFailed NotificationStatus = "failed"
)

// Notification represents the notification_outbox table. Rows are inserted in
// the same transaction as the state change they describe and drained by the
// dispatcher at-least-once.
type Notification struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventID is a ULID for time-sortable uniqueness; consumers dedupe on it
	EventID string `gorm:"column:event_id;not null;uniqueIndex;type:char(26)"`
	// EventKind is the notification event kind
	EventKind domain.EventKind `gorm:"column:event_kind;not null;type:text"`
	// RecipientID is the user the message is addressed to
	RecipientID uuid.UUID `gorm:"column:recipient_id;not null;type:uuid"`
	// PackageID is the package the event concerns
	PackageID uuid.UUID `gorm:"column:package_id;not null;type:uuid"`
	// Payload is the flat notification record as JSON
	Payload datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`
	// Status indicates the current delivery state: pending, sent, failed
	Status NotificationStatus `gorm:"column:status;not null;default:pending;index"`
	// Attempts is the number of publish attempts made
	Attempts int `gorm:"column:attempts;not null;default:0"`
	// LastError contains error details from the most recent failed attempt
	LastError string `gorm:"column:last_error;type:text"`
	// LastAttemptAt is the timestamp of the most recent publish attempt
	LastAttemptAt *time.Time `gorm:"column:last_attempt_at;type:timestamptz"`
	// CreatedAt is when the originating transaction committed this row
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notification_outbox"
}
