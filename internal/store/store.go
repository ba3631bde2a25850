package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openregistry/ownership/internal/store/schema"
)

// CreateOwnershipInput carries the fields for issuing a grant. Token and
// expiry are generated by the caller so the ledger controls token policy.
type CreateOwnershipInput struct {
	PackageID    uuid.UUID
	UserID       uuid.UUID
	AuthorizerID *uuid.UUID
	Token        string
	ExpiresAt    time.Time
}

// CreateCallInput carries the fields for opening an ownership call
type CreateCallInput struct {
	PackageID uuid.UUID
	OpenedBy  uuid.UUID
	Note      string
	Email     string
}

// CreateRequestInput carries the fields for submitting an ownership request
type CreateRequestInput struct {
	PackageID uuid.UUID
	UserID    uuid.UUID
	CallID    *uint64
	Note      string
}

// Store defines the interface for database operations. Every mutating method
// that pairs an invariant check with a write runs as one transaction; the
// notification outbox rows it produces commit atomically with the change.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateOwnership issues a pending grant and enqueues the confirmation
	// notice to the grantee. Returns domain.ErrDuplicateGrant if a grant for
	// (package, user) already exists.
	CreateOwnership(ctx context.Context, input CreateOwnershipInput) (*schema.Ownership, error)
	// CreateConfirmedOwnership issues a grant already confirmed at now,
	// skipping the token round-trip, and enqueues owner.added notices.
	CreateConfirmedOwnership(ctx context.Context, input CreateOwnershipInput, now time.Time) (*schema.Ownership, error)
	// RegenerateOwnershipToken replaces the token on an unconfirmed grant and
	// re-enqueues the confirmation notice. Returns domain.ErrGrantNotFound or
	// domain.ErrAlreadyConfirmed.
	RegenerateOwnershipToken(ctx context.Context, packageID, userID uuid.UUID, token string, expiresAt time.Time) (*schema.Ownership, error)
	// ConfirmOwnership resolves a confirmation token. Revisiting a valid token
	// is a no-op success; domain.ErrInvalidToken and domain.ErrExpiredToken
	// distinguish garbage from resendable tokens.
	ConfirmOwnership(ctx context.Context, token string, now time.Time) (*schema.Ownership, error)
	// DeleteOwnership revokes a grant and enqueues owner.removed notices. The
	// last-owner check is re-evaluated inside the delete transaction; returns
	// domain.ErrLastOwner when the holder is the sole confirmed owner.
	DeleteOwnership(ctx context.Context, packageID, userID uuid.UUID, actorID *uuid.UUID) error
	// GetOwnership retrieves a grant by (package, user); nil when absent
	GetOwnership(ctx context.Context, packageID, userID uuid.UUID) (*schema.Ownership, error)

	// CreateCall opens an ownership call. Returns domain.ErrCallAlreadyOpen
	// when the package already has one; uniqueness is enforced by the store's
	// partial unique index, not a read-then-write.
	CreateCall(ctx context.Context, input CreateCallInput) (*schema.OwnershipCall, error)
	// GetOpenCall retrieves the package's open call; nil when none
	GetOpenCall(ctx context.Context, packageID uuid.UUID) (*schema.OwnershipCall, error)
	// CloseCall transitions the call to closed and cascades to every open
	// request under it in the same transaction. Returns the number of requests
	// closed; domain.ErrAlreadyResolved when the call is not open and
	// domain.ErrPartialClose when the cascade count mismatches its snapshot.
	CloseCall(ctx context.Context, callID uint64) (int64, error)
	// ListOpenCalls returns open calls ordered by creation time descending
	ListOpenCalls(ctx context.Context, limit int, offset uint64) ([]schema.OwnershipCall, uint64, error)

	// CreateRequest submits an ownership request and enqueues the batched
	// owner notices plus the candidate receipt. Returns
	// domain.ErrDuplicateRequest when the candidate already has an open
	// request for the package.
	CreateRequest(ctx context.Context, input CreateRequestInput) (*schema.OwnershipRequest, error)
	// GetRequest retrieves a request by ID; nil when absent
	GetRequest(ctx context.Context, id uint64) (*schema.OwnershipRequest, error)
	// ApproveRequest transitions an open request to approved and materializes
	// a confirmed grant in one transaction; a successful approved status with
	// no grant cannot be observed. Returns domain.ErrAlreadyResolved when the
	// request is no longer open.
	ApproveRequest(ctx context.Context, requestID uint64, approverID uuid.UUID, token string, now time.Time) (*schema.OwnershipRequest, *schema.Ownership, error)
	// CloseRequest transitions an open request to closed. The candidate is
	// notified unless notifyCandidate is false (self-close).
	CloseRequest(ctx context.Context, requestID uint64, notifyCandidate bool) (*schema.OwnershipRequest, error)
	// CloseAllRequests closes every open request for the package as a single
	// conditional bulk update, notifying each candidate. Returns the count
	// closed; domain.ErrPartialClose when the applied count mismatches the
	// open-set snapshot.
	CloseAllRequests(ctx context.Context, packageID uuid.UUID) (int64, error)

	// IsOwner reports whether the user holds a confirmed grant on the package
	IsOwner(ctx context.Context, userID, packageID uuid.UUID) (bool, error)
	// OwnersOf returns the users holding confirmed grants on the package
	OwnersOf(ctx context.Context, packageID uuid.UUID) ([]schema.User, error)

	// GetPackageByName resolves a package by published name; nil when absent
	GetPackageByName(ctx context.Context, name string) (*schema.Package, error)
	// GetUserByHandle resolves a user by public handle; nil when absent
	GetUserByHandle(ctx context.Context, handle string) (*schema.User, error)
	// GetUserByID resolves a user by identifier; nil when absent
	GetUserByID(ctx context.Context, id uuid.UUID) (*schema.User, error)
	// UpsertUser mirrors a user record from the identity service
	UpsertUser(ctx context.Context, user *schema.User) error
	// UpsertPackage mirrors a package record from the registry
	UpsertPackage(ctx context.Context, pkg *schema.Package) error

	// ListPendingNotifications returns undelivered outbox rows oldest-first
	ListPendingNotifications(ctx context.Context, limit int) ([]schema.Notification, error)
	// MarkNotificationSent records a broker-acknowledged publish
	MarkNotificationSent(ctx context.Context, id uint64, at time.Time) error
	// MarkNotificationFailed records a failed attempt; terminal moves the row
	// to failed so the dispatcher stops retrying it
	MarkNotificationFailed(ctx context.Context, id uint64, at time.Time, lastError string, terminal bool) error
}
