package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openregistry/ownership/internal/adapter"
	"github.com/openregistry/ownership/internal/directory"
	"github.com/openregistry/ownership/internal/domain"
	"github.com/openregistry/ownership/internal/logger"
	"github.com/openregistry/ownership/internal/store"
	"github.com/openregistry/ownership/internal/store/schema"
)

// Ledger coordinates ownership grants: issuing, confirming, and revoking.
// All invariant enforcement lives in the store's transactions; this layer
// resolves names, checks authority, and generates tokens.
type Ledger struct {
	store  store.Store
	dir    directory.Directory
	tokens adapter.TokenSource
	clock  adapter.Clock
	ttl    time.Duration
}

// NewLedger creates a new ownership ledger service. A zero ttl falls back to
// the default confirmation token lifetime.
func NewLedger(s store.Store, dir directory.Directory, tokens adapter.TokenSource, clock adapter.Clock, ttl time.Duration) *Ledger {
	if ttl == 0 {
		ttl = domain.DefaultTokenTTL
	}
	return &Ledger{
		store:  s,
		dir:    dir,
		tokens: tokens,
		clock:  clock,
		ttl:    ttl,
	}
}

// Grant issues a pending ownership grant to the user named by handle. The
// actor must hold a confirmed grant on the package. The grantee receives a
// confirmation notice; the grant confers no authority until confirmed.
func (l *Ledger) Grant(ctx context.Context, actorID uuid.UUID, packageName, handle string) (*schema.Ownership, error) {
	pkg, grantee, err := l.resolve(ctx, packageName, handle)
	if err != nil {
		return nil, err
	}

	if err := l.requireOwner(ctx, actorID, pkg.ID); err != nil {
		return nil, err
	}

	token, err := l.tokens.NewToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	ownership, err := l.store.CreateOwnership(ctx, store.CreateOwnershipInput{
		PackageID:    pkg.ID,
		UserID:       grantee.ID,
		AuthorizerID: &actorID,
		Token:        token,
		ExpiresAt:    l.clock.Now().Add(l.ttl),
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "ownership grant issued",
		zap.String("package", pkg.Name),
		zap.String("grantee", grantee.Handle),
		zap.String("actor_id", actorID.String()))

	return ownership, nil
}

// Confirm resolves a confirmation token presented by a grantee. Revisiting a
// still-valid token is an idempotent success.
func (l *Ledger) Confirm(ctx context.Context, token string) (*schema.Ownership, error) {
	if len(token) != domain.ConfirmationTokenLength {
		return nil, domain.ErrInvalidToken
	}

	ownership, err := l.store.ConfirmOwnership(ctx, token, l.clock.Now())
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "ownership confirmed",
		zap.String("package_id", ownership.PackageID.String()),
		zap.String("user_id", ownership.UserID.String()))

	return ownership, nil
}

// ResendConfirmation regenerates the token on the caller's own unconfirmed
// grant and re-sends the confirmation notice
func (l *Ledger) ResendConfirmation(ctx context.Context, userID uuid.UUID, packageName string) (*schema.Ownership, error) {
	pkg, err := l.resolvePackage(ctx, packageName)
	if err != nil {
		return nil, err
	}

	token, err := l.tokens.NewToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	ownership, err := l.store.RegenerateOwnershipToken(ctx, pkg.ID, userID, token, l.clock.Now().Add(l.ttl))
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "confirmation token regenerated",
		zap.String("package", pkg.Name),
		zap.String("user_id", userID.String()))

	return ownership, nil
}

// Revoke removes the grant held by the user named by handle. Owners may
// revoke any grant on their package; any user may withdraw their own. The
// store rejects removing the last confirmed owner.
func (l *Ledger) Revoke(ctx context.Context, actorID uuid.UUID, packageName, handle string) error {
	pkg, holder, err := l.resolve(ctx, packageName, handle)
	if err != nil {
		return err
	}

	if actorID != holder.ID {
		if err := l.requireOwner(ctx, actorID, pkg.ID); err != nil {
			return err
		}
	}

	if err := l.store.DeleteOwnership(ctx, pkg.ID, holder.ID, &actorID); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "ownership revoked",
		zap.String("package", pkg.Name),
		zap.String("holder", holder.Handle),
		zap.String("actor_id", actorID.String()))

	return nil
}

// Owners lists the confirmed owners of the package
func (l *Ledger) Owners(ctx context.Context, packageName string) ([]schema.User, error) {
	pkg, err := l.resolvePackage(ctx, packageName)
	if err != nil {
		return nil, err
	}
	return l.dir.OwnersOf(ctx, pkg.ID)
}

func (l *Ledger) resolve(ctx context.Context, packageName, handle string) (*schema.Package, *schema.User, error) {
	pkg, err := l.resolvePackage(ctx, packageName)
	if err != nil {
		return nil, nil, err
	}

	user, err := l.dir.ResolveUser(ctx, handle)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, domain.ErrUserNotFound
	}

	return pkg, user, nil
}

func (l *Ledger) resolvePackage(ctx context.Context, name string) (*schema.Package, error) {
	pkg, err := l.dir.ResolvePackage(ctx, name)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrPackageNotFound
	}
	return pkg, nil
}

func (l *Ledger) requireOwner(ctx context.Context, actorID, packageID uuid.UUID) error {
	isOwner, err := l.dir.IsOwner(ctx, actorID, packageID)
	if err != nil {
		return err
	}
	if !isOwner {
		return domain.ErrForbidden
	}
	return nil
}
