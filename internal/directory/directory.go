package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/openregistry/ownership/internal/store"
	"github.com/openregistry/ownership/internal/store/schema"
)

// Directory answers ownership and identity questions for the workflow
// services. Authorization checks read the same ledger the workflow writes,
// so a just-revoked owner cannot pass a stale check.
//
//go:generate mockgen -source=directory.go -destination=../mocks/directory.go -package=mocks -mock_names=Directory=MockDirectory
type Directory interface {
	// IsOwner reports whether the user holds a confirmed grant on the package
	IsOwner(ctx context.Context, userID, packageID uuid.UUID) (bool, error)
	// OwnersOf returns the users holding confirmed grants on the package
	OwnersOf(ctx context.Context, packageID uuid.UUID) ([]schema.User, error)
	// ResolvePackage resolves a package by published name; nil when absent
	ResolvePackage(ctx context.Context, name string) (*schema.Package, error)
	// ResolveUser resolves a user by public handle; nil when absent
	ResolveUser(ctx context.Context, handle string) (*schema.User, error)
	// ResolveUserID resolves a user by identifier; nil when absent
	ResolveUserID(ctx context.Context, id uuid.UUID) (*schema.User, error)
}

type storeDirectory struct {
	store store.Store
}

// NewDirectory creates a Directory backed by the ledger store
func NewDirectory(s store.Store) Directory {
	return &storeDirectory{store: s}
}

func (d *storeDirectory) IsOwner(ctx context.Context, userID, packageID uuid.UUID) (bool, error) {
	return d.store.IsOwner(ctx, userID, packageID)
}

func (d *storeDirectory) OwnersOf(ctx context.Context, packageID uuid.UUID) ([]schema.User, error) {
	return d.store.OwnersOf(ctx, packageID)
}

func (d *storeDirectory) ResolvePackage(ctx context.Context, name string) (*schema.Package, error) {
	return d.store.GetPackageByName(ctx, name)
}

func (d *storeDirectory) ResolveUser(ctx context.Context, handle string) (*schema.User, error) {
	return d.store.GetUserByHandle(ctx, handle)
}

func (d *storeDirectory) ResolveUserID(ctx context.Context, id uuid.UUID) (*schema.User, error) {
	return d.store.GetUserByID(ctx, id)
}
