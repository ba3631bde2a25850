package call

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openregistry/ownership/internal/directory"
	"github.com/openregistry/ownership/internal/domain"
	"github.com/openregistry/ownership/internal/logger"
	"github.com/openregistry/ownership/internal/store"
	"github.com/openregistry/ownership/internal/store/schema"
)

const (
	// DefaultPageSize is the open-call listing page size when none is given
	DefaultPageSize = 20
	// MaxPageSize caps the open-call listing page size
	MaxPageSize = 100
)

// Manager coordinates ownership calls: owner-initiated public invitations
// for new co-maintainers
type Manager struct {
	store store.Store
	dir   directory.Directory
}

// NewManager creates a new call manager
func NewManager(s store.Store, dir directory.Directory) *Manager {
	return &Manager{store: s, dir: dir}
}

// Open opens a call on the package. The actor must be a confirmed owner.
// The store rejects a second open call for the same package.
func (m *Manager) Open(ctx context.Context, actorID uuid.UUID, packageName, note, email string) (*schema.OwnershipCall, error) {
	if err := domain.ValidateNote(note); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	pkg, err := m.resolvePackage(ctx, packageName)
	if err != nil {
		return nil, err
	}

	if err := m.requireOwner(ctx, actorID, pkg.ID); err != nil {
		return nil, err
	}

	created, err := m.store.CreateCall(ctx, store.CreateCallInput{
		PackageID: pkg.ID,
		OpenedBy:  actorID,
		Note:      note,
		Email:     email,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "ownership call opened",
		zap.String("package", pkg.Name),
		zap.Uint64("call_id", created.ID),
		zap.String("actor_id", actorID.String()))

	return created, nil
}

// Close closes the package's open call and cascades to the open requests
// under it. Returns the number of requests closed by the cascade.
func (m *Manager) Close(ctx context.Context, actorID uuid.UUID, packageName string) (int64, error) {
	pkg, err := m.resolvePackage(ctx, packageName)
	if err != nil {
		return 0, err
	}

	if err := m.requireOwner(ctx, actorID, pkg.ID); err != nil {
		return 0, err
	}

	open, err := m.store.GetOpenCall(ctx, pkg.ID)
	if err != nil {
		return 0, err
	}
	if open == nil {
		return 0, domain.ErrCallNotFound
	}

	closed, err := m.store.CloseCall(ctx, open.ID)
	if err != nil {
		return 0, err
	}

	logger.InfoCtx(ctx, "ownership call closed",
		zap.String("package", pkg.Name),
		zap.Uint64("call_id", open.ID),
		zap.Int64("requests_closed", closed),
		zap.String("actor_id", actorID.String()))

	return closed, nil
}

// Get retrieves the package's open call; nil when none
func (m *Manager) Get(ctx context.Context, packageName string) (*schema.OwnershipCall, error) {
	pkg, err := m.resolvePackage(ctx, packageName)
	if err != nil {
		return nil, err
	}
	return m.store.GetOpenCall(ctx, pkg.ID)
}

// ListOpen returns a page of open calls, newest first, with the total count.
// Out-of-range page sizes clamp to the defaults.
func (m *Manager) ListOpen(ctx context.Context, limit int, offset uint64) ([]schema.OwnershipCall, uint64, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return m.store.ListOpenCalls(ctx, limit, offset)
}

func (m *Manager) resolvePackage(ctx context.Context, name string) (*schema.Package, error) {
	pkg, err := m.dir.ResolvePackage(ctx, name)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrPackageNotFound
	}
	return pkg, nil
}

func (m *Manager) requireOwner(ctx context.Context, actorID, packageID uuid.UUID) error {
	isOwner, err := m.dir.IsOwner(ctx, actorID, packageID)
	if err != nil {
		return err
	}
	if !isOwner {
		return domain.ErrForbidden
	}
	return nil
}
