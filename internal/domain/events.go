package domain

import "time"

// EventKind identifies a notification event emitted by the workflow core.
// One outbox row equals one event to one recipient.
type EventKind string

const (
	// EventOwnershipConfirmation asks the grantee to confirm a pending grant
	EventOwnershipConfirmation EventKind = "ownership.confirmation"
	// EventOwnerAdded tells owners (and the new owner) a grant was confirmed
	EventOwnerAdded EventKind = "owner.added"
	// EventOwnerRemoved tells the removed user and remaining owners a grant was revoked
	EventOwnerRemoved EventKind = "owner.removed"
	// EventRequestSubmitted tells each current owner about open requests (batched count)
	EventRequestSubmitted EventKind = "request.submitted"
	// EventRequestReceipt confirms submission back to the candidate
	EventRequestReceipt EventKind = "request.submitted.receipt"
	// EventRequestApproved tells the candidate their request was approved
	EventRequestApproved EventKind = "request.approved"
	// EventRequestClosed tells the candidate their request was closed
	EventRequestClosed EventKind = "request.closed"
)

// NotificationEvent is the envelope published to the message broker by the
// dispatcher. Delivery is at-least-once; consumers dedupe on EventID.
type NotificationEvent struct {
	// EventID is a ULID, unique and time-sortable
	EventID string `json:"event_id"`
	// Kind is the event kind, also the subject suffix on the broker
	Kind EventKind `json:"kind"`
	// RecordedAt is when the originating transaction committed the outbox row
	RecordedAt time.Time `json:"recorded_at"`
	// Signature is an optional HMAC over the canonical payload
	Signature string              `json:"signature,omitempty"`
	Payload   NotificationPayload `json:"payload"`
}

// NotificationPayload is the flat record handed to the notifier collaborator
type NotificationPayload struct {
	PackageID   string `json:"package_id"`
	PackageName string `json:"package_name"`
	// Recipient is the user the message is addressed to
	RecipientID     string `json:"recipient_id"`
	RecipientHandle string `json:"recipient_handle"`
	RecipientEmail  string `json:"recipient_email,omitempty"`
	// Actor is the user whose action produced the event, when one exists
	ActorID     string `json:"actor_id,omitempty"`
	ActorHandle string `json:"actor_handle,omitempty"`
	// Subject is the user the event is about (grantee, removed owner, candidate)
	SubjectID     string `json:"subject_id,omitempty"`
	SubjectHandle string `json:"subject_handle,omitempty"`
	Note          string `json:"note,omitempty"`
	// OpenRequestCount batches request.submitted notices to owners
	OpenRequestCount int `json:"open_request_count,omitempty"`
	// ConfirmationToken rides only on ownership.confirmation events
	ConfirmationToken string `json:"confirmation_token,omitempty"`
}
