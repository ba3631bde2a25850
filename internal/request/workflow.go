package request

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openregistry/ownership/internal/adapter"
	"github.com/openregistry/ownership/internal/directory"
	"github.com/openregistry/ownership/internal/domain"
	"github.com/openregistry/ownership/internal/logger"
	"github.com/openregistry/ownership/internal/store"
	"github.com/openregistry/ownership/internal/store/schema"
)

// Workflow coordinates ownership requests: a candidate's application for
// co-maintainership and its resolution by the package's owners
type Workflow struct {
	store  store.Store
	dir    directory.Directory
	tokens adapter.TokenSource
	clock  adapter.Clock
}

// NewWorkflow creates a new request workflow service
func NewWorkflow(s store.Store, dir directory.Directory, tokens adapter.TokenSource, clock adapter.Clock) *Workflow {
	return &Workflow{
		store:  s,
		dir:    dir,
		tokens: tokens,
		clock:  clock,
	}
}

// Submit files an ownership request by the candidate. Existing owners cannot
// request; the store rejects a second open request by the same candidate.
// When the package has an open call the request is attached to it.
func (w *Workflow) Submit(ctx context.Context, candidateID uuid.UUID, packageName, note string) (*schema.OwnershipRequest, error) {
	if err := domain.ValidateNote(note); err != nil {
		return nil, err
	}

	pkg, err := w.resolvePackage(ctx, packageName)
	if err != nil {
		return nil, err
	}

	isOwner, err := w.dir.IsOwner(ctx, candidateID, pkg.ID)
	if err != nil {
		return nil, err
	}
	if isOwner {
		return nil, domain.ErrForbidden
	}

	var callID *uint64
	openCall, err := w.store.GetOpenCall(ctx, pkg.ID)
	if err != nil {
		return nil, err
	}
	if openCall != nil {
		callID = &openCall.ID
	}

	created, err := w.store.CreateRequest(ctx, store.CreateRequestInput{
		PackageID: pkg.ID,
		UserID:    candidateID,
		CallID:    callID,
		Note:      note,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "ownership request submitted",
		zap.String("package", pkg.Name),
		zap.Uint64("request_id", created.ID),
		zap.String("candidate_id", candidateID.String()))

	return created, nil
}

// Approve resolves an open request in the candidate's favor. The actor must
// be a confirmed owner; the confirmed grant materializes in the same
// transaction as the status transition.
func (w *Workflow) Approve(ctx context.Context, actorID uuid.UUID, requestID uint64) (*schema.OwnershipRequest, error) {
	req, err := w.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := w.requireOwner(ctx, actorID, req.PackageID); err != nil {
		return nil, err
	}

	token, err := w.tokens.NewToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	approved, _, err := w.store.ApproveRequest(ctx, requestID, actorID, token, w.clock.Now())
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "ownership request approved",
		zap.Uint64("request_id", requestID),
		zap.String("approver_id", actorID.String()))

	return approved, nil
}

// Close resolves an open request without a grant. Owners close any request
// on their package and the candidate is notified; candidates may withdraw
// their own silently.
func (w *Workflow) Close(ctx context.Context, actorID uuid.UUID, requestID uint64) (*schema.OwnershipRequest, error) {
	req, err := w.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	notifyCandidate := true
	if actorID == req.UserID {
		// Self-withdrawal needs no notice
		notifyCandidate = false
	} else if err := w.requireOwner(ctx, actorID, req.PackageID); err != nil {
		return nil, err
	}

	closed, err := w.store.CloseRequest(ctx, requestID, notifyCandidate)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "ownership request closed",
		zap.Uint64("request_id", requestID),
		zap.String("actor_id", actorID.String()))

	return closed, nil
}

// CloseAll closes every open request on the package in one atomic sweep,
// notifying each candidate. Returns the number closed.
func (w *Workflow) CloseAll(ctx context.Context, actorID uuid.UUID, packageName string) (int64, error) {
	pkg, err := w.resolvePackage(ctx, packageName)
	if err != nil {
		return 0, err
	}

	if err := w.requireOwner(ctx, actorID, pkg.ID); err != nil {
		return 0, err
	}

	closed, err := w.store.CloseAllRequests(ctx, pkg.ID)
	if err != nil {
		return 0, err
	}

	logger.InfoCtx(ctx, "ownership requests bulk closed",
		zap.String("package", pkg.Name),
		zap.Int64("closed", closed),
		zap.String("actor_id", actorID.String()))

	return closed, nil
}

func (w *Workflow) getRequest(ctx context.Context, id uint64) (*schema.OwnershipRequest, error) {
	req, err := w.store.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrRequestNotFound
	}
	return req, nil
}

func (w *Workflow) resolvePackage(ctx context.Context, name string) (*schema.Package, error) {
	pkg, err := w.dir.ResolvePackage(ctx, name)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrPackageNotFound
	}
	return pkg, nil
}

func (w *Workflow) requireOwner(ctx context.Context, actorID, packageID uuid.UUID) error {
	isOwner, err := w.dir.IsOwner(ctx, actorID, packageID)
	if err != nil {
		return err
	}
	if !isOwner {
		return domain.ErrForbidden
	}
	return nil
}
