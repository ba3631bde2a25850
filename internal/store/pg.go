package store

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openregistry/ownership/internal/domain"
	"github.com/openregistry/ownership/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// openStatus is the conflict target of the partial unique indexes on
// ownership_calls and ownership_requests
var openStatus = clause.Where{Exprs: []clause.Expression{
	clause.Eq{Column: clause.Column{Name: "status"}, Value: "open"},
}}

// =============================================================================
// Ownership ledger
// =============================================================================

// CreateOwnership issues a pending grant with the caller-generated token and
// enqueues the confirmation notice to the grantee in the same transaction
func (s *pgStore) CreateOwnership(ctx context.Context, input CreateOwnershipInput) (*schema.Ownership, error) {
	var ownership schema.Ownership
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownership = schema.Ownership{
			PackageID:         input.PackageID,
			UserID:            input.UserID,
			AuthorizerID:      input.AuthorizerID,
			ConfirmationToken: input.Token,
			TokenExpiresAt:    input.ExpiresAt,
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "package_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&ownership).Error; err != nil {
			return fmt.Errorf("failed to create ownership: %w", err)
		}

		// ID stays 0 when the unique constraint swallowed the insert
		if ownership.ID == 0 {
			return domain.ErrDuplicateGrant
		}

		pkg, err := getPackageTx(tx, input.PackageID)
		if err != nil {
			return err
		}
		grantee, err := getUserTx(tx, input.UserID)
		if err != nil {
			return err
		}

		return enqueueNotification(tx, domain.EventOwnershipConfirmation, *grantee, *pkg, domain.NotificationPayload{
			SubjectID:         grantee.ID.String(),
			SubjectHandle:     grantee.Handle,
			ActorID:           uuidStringOrEmpty(input.AuthorizerID),
			ConfirmationToken: input.Token,
		})
	})
	if err != nil {
		return nil, err
	}
	return &ownership, nil
}

// CreateConfirmedOwnership issues an already-confirmed grant, used when an
// ownership request is approved. Owner notices are enqueued atomically.
func (s *pgStore) CreateConfirmedOwnership(ctx context.Context, input CreateOwnershipInput, now time.Time) (*schema.Ownership, error) {
	var ownership schema.Ownership
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		ownership, txErr = createConfirmedOwnershipTx(tx, input, now)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return &ownership, nil
}

// createConfirmedOwnershipTx is shared between CreateConfirmedOwnership and
// ApproveRequest so approval and grant commit as one unit
func createConfirmedOwnershipTx(tx *gorm.DB, input CreateOwnershipInput, now time.Time) (schema.Ownership, error) {
	confirmedAt := now
	ownership := schema.Ownership{
		PackageID:         input.PackageID,
		UserID:            input.UserID,
		AuthorizerID:      input.AuthorizerID,
		ConfirmationToken: input.Token,
		TokenExpiresAt:    input.ExpiresAt,
		ConfirmedAt:       &confirmedAt,
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "package_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(&ownership).Error; err != nil {
		return ownership, fmt.Errorf("failed to create confirmed ownership: %w", err)
	}

	if ownership.ID == 0 {
		return ownership, domain.ErrDuplicateGrant
	}

	pkg, err := getPackageTx(tx, input.PackageID)
	if err != nil {
		return ownership, err
	}
	grantee, err := getUserTx(tx, input.UserID)
	if err != nil {
		return ownership, err
	}

	if err := notifyOwnerAdded(tx, *pkg, *grantee, input.AuthorizerID); err != nil {
		return ownership, err
	}

	return ownership, nil
}

// RegenerateOwnershipToken replaces the token on an existing unconfirmed
// grant and re-enqueues the confirmation notice
func (s *pgStore) RegenerateOwnershipToken(ctx context.Context, packageID, userID uuid.UUID, token string, expiresAt time.Time) (*schema.Ownership, error) {
	var ownership schema.Ownership
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("package_id = ? AND user_id = ?", packageID, userID).
			First(&ownership).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrGrantNotFound
			}
			return fmt.Errorf("failed to lock ownership: %w", err)
		}

		if ownership.Confirmed() {
			return domain.ErrAlreadyConfirmed
		}

		res := tx.Model(&schema.Ownership{}).
			Where("id = ? AND confirmed_at IS NULL", ownership.ID).
			Updates(map[string]interface{}{
				"confirmation_token": token,
				"token_expires_at":   expiresAt,
				"updated_at":         gorm.Expr("now()"),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to regenerate token: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyConfirmed
		}
		ownership.ConfirmationToken = token
		ownership.TokenExpiresAt = expiresAt

		pkg, err := getPackageTx(tx, ownership.PackageID)
		if err != nil {
			return err
		}
		grantee, err := getUserTx(tx, ownership.UserID)
		if err != nil {
			return err
		}

		return enqueueNotification(tx, domain.EventOwnershipConfirmation, *grantee, *pkg, domain.NotificationPayload{
			SubjectID:         grantee.ID.String(),
			SubjectHandle:     grantee.Handle,
			ConfirmationToken: token,
		})
	})
	if err != nil {
		return nil, err
	}
	return &ownership, nil
}

// ConfirmOwnership resolves a confirmation token. Revisiting a valid token on
// an already-confirmed grant is a no-op success; expiry is only reported for
// unconfirmed grants so the caller can offer a resend.
func (s *pgStore) ConfirmOwnership(ctx context.Context, token string, now time.Time) (*schema.Ownership, error) {
	var ownership schema.Ownership
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("confirmation_token = ?", token).
			First(&ownership).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvalidToken
			}
			return fmt.Errorf("failed to look up token: %w", err)
		}

		// The unique column did the lookup; compare again in constant time
		// before trusting the row
		if subtle.ConstantTimeCompare([]byte(ownership.ConfirmationToken), []byte(token)) != 1 {
			return domain.ErrInvalidToken
		}

		if !ownership.TokenValidAt(now) {
			if ownership.Confirmed() {
				// Grant already confirmed; a stale link is harmless
				return nil
			}
			return domain.ErrExpiredToken
		}

		if ownership.Confirmed() {
			// Idempotent revisit before expiry
			return nil
		}

		res := tx.Model(&schema.Ownership{}).
			Where("id = ? AND confirmed_at IS NULL", ownership.ID).
			Updates(map[string]interface{}{
				"confirmed_at": now,
				"updated_at":   gorm.Expr("now()"),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to confirm ownership: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Raced with another confirm of the same token; already done
			return nil
		}
		confirmedAt := now
		ownership.ConfirmedAt = &confirmedAt

		pkg, err := getPackageTx(tx, ownership.PackageID)
		if err != nil {
			return err
		}
		grantee, err := getUserTx(tx, ownership.UserID)
		if err != nil {
			return err
		}

		return notifyOwnerAdded(tx, *pkg, *grantee, ownership.AuthorizerID)
	})
	if err != nil {
		return nil, err
	}
	return &ownership, nil
}

// DeleteOwnership revokes a grant. The last-owner count is re-validated under
// row locks inside the delete transaction so two concurrent revokes cannot
// leave a package ownerless. Unconfirmed grants skip the check since they
// confer no authority yet.
func (s *pgStore) DeleteOwnership(ctx context.Context, packageID, userID uuid.UUID, actorID *uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ownership schema.Ownership
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("package_id = ? AND user_id = ?", packageID, userID).
			First(&ownership).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrGrantNotFound
			}
			return fmt.Errorf("failed to lock ownership: %w", err)
		}

		if ownership.Confirmed() {
			// Lock every confirmed grant on the package so a concurrent revoke
			// serializes behind this one
			var confirmed []schema.Ownership
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("package_id = ? AND confirmed_at IS NOT NULL", packageID).
				Find(&confirmed).Error; err != nil {
				return fmt.Errorf("failed to lock package owners: %w", err)
			}
			if len(confirmed) <= 1 {
				return domain.ErrLastOwner
			}
		}

		if err := tx.Delete(&schema.Ownership{}, ownership.ID).Error; err != nil {
			return fmt.Errorf("failed to delete ownership: %w", err)
		}

		pkg, err := getPackageTx(tx, packageID)
		if err != nil {
			return err
		}
		removed, err := getUserTx(tx, userID)
		if err != nil {
			return err
		}

		payload := domain.NotificationPayload{
			SubjectID:     removed.ID.String(),
			SubjectHandle: removed.Handle,
			ActorID:       uuidStringOrEmpty(actorID),
		}

		if err := enqueueNotification(tx, domain.EventOwnerRemoved, *removed, *pkg, payload); err != nil {
			return err
		}

		remaining, err := confirmedOwnersTx(tx, packageID)
		if err != nil {
			return err
		}
		for _, owner := range remaining {
			if owner.ID == removed.ID {
				continue
			}
			if err := enqueueNotification(tx, domain.EventOwnerRemoved, owner, *pkg, payload); err != nil {
				return err
			}
		}

		return nil
	})
}

// GetOwnership retrieves a grant by (package, user)
func (s *pgStore) GetOwnership(ctx context.Context, packageID, userID uuid.UUID) (*schema.Ownership, error) {
	var ownership schema.Ownership
	err := s.db.WithContext(ctx).
		Where("package_id = ? AND user_id = ?", packageID, userID).
		First(&ownership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ownership: %w", err)
	}
	return &ownership, nil
}

// =============================================================================
// Ownership calls
// =============================================================================

// CreateCall opens an ownership call. The partial unique index on
// (package_id) WHERE status = 'open' makes the uniqueness check and the
// insert a single atomic unit.
func (s *pgStore) CreateCall(ctx context.Context, input CreateCallInput) (*schema.OwnershipCall, error) {
	call := schema.OwnershipCall{
		PackageID: input.PackageID,
		OpenedBy:  input.OpenedBy,
		Note:      input.Note,
		Email:     input.Email,
		Status:    domain.CallStatusOpen,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "package_id"}},
		TargetWhere: openStatus,
		DoNothing:   true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(&call).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create ownership call: %w", err)
	}

	if call.ID == 0 {
		return nil, domain.ErrCallAlreadyOpen
	}

	return &call, nil
}

// GetOpenCall retrieves the package's open call
func (s *pgStore) GetOpenCall(ctx context.Context, packageID uuid.UUID) (*schema.OwnershipCall, error) {
	var call schema.OwnershipCall
	err := s.db.WithContext(ctx).
		Where("package_id = ? AND status = ?", packageID, domain.CallStatusOpen).
		First(&call).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open call: %w", err)
	}
	return &call, nil
}

// CloseCall transitions the call to closed and closes every open request tied
// to it as one conditional bulk update. Cascade closures are silent per
// candidate; only the call-level transition is recorded.
func (s *pgStore) CloseCall(ctx context.Context, callID uint64) (int64, error) {
	var closed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var call schema.OwnershipCall
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", callID).
			First(&call).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCallNotFound
			}
			return fmt.Errorf("failed to lock call: %w", err)
		}

		res := tx.Model(&schema.OwnershipCall{}).
			Where("id = ? AND status = ?", callID, domain.CallStatusOpen).
			Updates(map[string]interface{}{
				"status":     domain.CallStatusClosed,
				"updated_at": gorm.Expr("now()"),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to close call: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyResolved
		}

		// Snapshot the open set under lock, then require the bulk transition
		// to hit exactly that set
		var openIDs []uint64
		if err := tx.Model(&schema.OwnershipRequest{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("call_id = ? AND status = ?", callID, domain.RequestStatusOpen).
			Pluck("id", &openIDs).Error; err != nil {
			return fmt.Errorf("failed to snapshot open requests: %w", err)
		}

		if len(openIDs) == 0 {
			return nil
		}

		bulk := tx.Model(&schema.OwnershipRequest{}).
			Where("id IN ? AND status = ?", openIDs, domain.RequestStatusOpen).
			Updates(map[string]interface{}{
				"status":     domain.RequestStatusClosed,
				"updated_at": gorm.Expr("now()"),
			})
		if bulk.Error != nil {
			return fmt.Errorf("failed to cascade close requests: %w", bulk.Error)
		}
		if bulk.RowsAffected != int64(len(openIDs)) {
			return domain.ErrPartialClose
		}
		closed = bulk.RowsAffected

		return nil
	})
	if err != nil {
		return 0, err
	}
	return closed, nil
}

// ListOpenCalls returns open calls ordered by creation time descending
func (s *pgStore) ListOpenCalls(ctx context.Context, limit int, offset uint64) ([]schema.OwnershipCall, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.OwnershipCall{}).
		Where("status = ?", domain.CallStatusOpen)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count open calls: %w", err)
	}

	var calls []schema.OwnershipCall
	err := query.
		Preload("Package").Preload("Opener").
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(int(offset)). //nolint:gosec,G115
		Find(&calls).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list open calls: %w", err)
	}

	return calls, uint64(total), nil //nolint:gosec,G115
}

// =============================================================================
// Ownership requests
// =============================================================================

// CreateRequest submits an ownership request. The partial unique index on
// (package_id, user_id) WHERE status = 'open' enforces one open request per
// candidate per package atomically with the insert.
func (s *pgStore) CreateRequest(ctx context.Context, input CreateRequestInput) (*schema.OwnershipRequest, error) {
	var request schema.OwnershipRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request = schema.OwnershipRequest{
			PackageID: input.PackageID,
			UserID:    input.UserID,
			CallID:    input.CallID,
			Note:      input.Note,
			Status:    domain.RequestStatusOpen,
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "package_id"}, {Name: "user_id"}},
			TargetWhere: openStatus,
			DoNothing:   true,
		}).Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&request).Error; err != nil {
			return fmt.Errorf("failed to create ownership request: %w", err)
		}

		if request.ID == 0 {
			return domain.ErrDuplicateRequest
		}

		var openCount int64
		if err := tx.Model(&schema.OwnershipRequest{}).
			Where("package_id = ? AND status = ?", input.PackageID, domain.RequestStatusOpen).
			Count(&openCount).Error; err != nil {
			return fmt.Errorf("failed to count open requests: %w", err)
		}

		pkg, err := getPackageTx(tx, input.PackageID)
		if err != nil {
			return err
		}
		candidate, err := getUserTx(tx, input.UserID)
		if err != nil {
			return err
		}

		// One batched notice per owner carrying the open-request count
		owners, err := confirmedOwnersTx(tx, input.PackageID)
		if err != nil {
			return err
		}
		for _, owner := range owners {
			err := enqueueNotification(tx, domain.EventRequestSubmitted, owner, *pkg, domain.NotificationPayload{
				SubjectID:        candidate.ID.String(),
				SubjectHandle:    candidate.Handle,
				Note:             input.Note,
				OpenRequestCount: int(openCount),
			})
			if err != nil {
				return err
			}
		}

		return enqueueNotification(tx, domain.EventRequestReceipt, *candidate, *pkg, domain.NotificationPayload{
			SubjectID:     candidate.ID.String(),
			SubjectHandle: candidate.Handle,
			Note:          input.Note,
		})
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetRequest retrieves a request by ID
func (s *pgStore) GetRequest(ctx context.Context, id uint64) (*schema.OwnershipRequest, error) {
	var request schema.OwnershipRequest
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return &request, nil
}

// ApproveRequest transitions an open request to approved and materializes the
// confirmed grant in the same transaction. Two concurrent approvals of the
// same request serialize on the conditional update: exactly one sees
// RowsAffected == 1, the other gets domain.ErrAlreadyResolved.
func (s *pgStore) ApproveRequest(ctx context.Context, requestID uint64, approverID uuid.UUID, token string, now time.Time) (*schema.OwnershipRequest, *schema.Ownership, error) {
	var (
		request   schema.OwnershipRequest
		ownership schema.Ownership
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", requestID).
			First(&request).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRequestNotFound
			}
			return fmt.Errorf("failed to lock request: %w", err)
		}

		res := tx.Model(&schema.OwnershipRequest{}).
			Where("id = ? AND status = ?", requestID, domain.RequestStatusOpen).
			Updates(map[string]interface{}{
				"status":      domain.RequestStatusApproved,
				"approver_id": approverID,
				"updated_at":  gorm.Expr("now()"),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to approve request: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyResolved
		}
		request.Status = domain.RequestStatusApproved
		request.ApproverID = &approverID

		// Grant failure rolls the approval back; an approved request with no
		// grant cannot be observed
		ownership, err = createConfirmedOwnershipTx(tx, CreateOwnershipInput{
			PackageID:    request.PackageID,
			UserID:       request.UserID,
			AuthorizerID: &approverID,
			Token:        token,
			ExpiresAt:    now.Add(domain.DefaultTokenTTL),
		}, now)
		if err != nil {
			return err
		}

		pkg, err := getPackageTx(tx, request.PackageID)
		if err != nil {
			return err
		}
		candidate, err := getUserTx(tx, request.UserID)
		if err != nil {
			return err
		}

		return enqueueNotification(tx, domain.EventRequestApproved, *candidate, *pkg, domain.NotificationPayload{
			SubjectID:     candidate.ID.String(),
			SubjectHandle: candidate.Handle,
			ActorID:       approverID.String(),
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return &request, &ownership, nil
}

// CloseRequest transitions an open request to closed
func (s *pgStore) CloseRequest(ctx context.Context, requestID uint64, notifyCandidate bool) (*schema.OwnershipRequest, error) {
	var request schema.OwnershipRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", requestID).
			First(&request).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRequestNotFound
			}
			return fmt.Errorf("failed to lock request: %w", err)
		}

		res := tx.Model(&schema.OwnershipRequest{}).
			Where("id = ? AND status = ?", requestID, domain.RequestStatusOpen).
			Updates(map[string]interface{}{
				"status":     domain.RequestStatusClosed,
				"updated_at": gorm.Expr("now()"),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to close request: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyResolved
		}
		request.Status = domain.RequestStatusClosed

		if !notifyCandidate {
			return nil
		}

		pkg, err := getPackageTx(tx, request.PackageID)
		if err != nil {
			return err
		}
		candidate, err := getUserTx(tx, request.UserID)
		if err != nil {
			return err
		}

		return enqueueNotification(tx, domain.EventRequestClosed, *candidate, *pkg, domain.NotificationPayload{
			SubjectID:     candidate.ID.String(),
			SubjectHandle: candidate.Handle,
		})
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CloseAllRequests closes every open request for the package as one
// conditional bulk update. A concurrently submitted request cannot be
// silently swallowed: the applied count must match the locked snapshot or
// the whole transaction rolls back.
func (s *pgStore) CloseAllRequests(ctx context.Context, packageID uuid.UUID) (int64, error) {
	var closed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open []schema.OwnershipRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("package_id = ? AND status = ?", packageID, domain.RequestStatusOpen).
			Find(&open).Error; err != nil {
			return fmt.Errorf("failed to snapshot open requests: %w", err)
		}

		if len(open) == 0 {
			return nil
		}

		ids := make([]uint64, len(open))
		for i, r := range open {
			ids[i] = r.ID
		}

		bulk := tx.Model(&schema.OwnershipRequest{}).
			Where("id IN ? AND status = ?", ids, domain.RequestStatusOpen).
			Updates(map[string]interface{}{
				"status":     domain.RequestStatusClosed,
				"updated_at": gorm.Expr("now()"),
			})
		if bulk.Error != nil {
			return fmt.Errorf("failed to bulk close requests: %w", bulk.Error)
		}
		if bulk.RowsAffected != int64(len(open)) {
			return domain.ErrPartialClose
		}
		closed = bulk.RowsAffected

		pkg, err := getPackageTx(tx, packageID)
		if err != nil {
			return err
		}

		for _, r := range open {
			candidate, err := getUserTx(tx, r.UserID)
			if err != nil {
				return err
			}
			err = enqueueNotification(tx, domain.EventRequestClosed, *candidate, *pkg, domain.NotificationPayload{
				SubjectID:     candidate.ID.String(),
				SubjectHandle: candidate.Handle,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}
	return closed, nil
}

// =============================================================================
// Identity/package directory
// =============================================================================

// IsOwner reports whether the user holds a confirmed grant on the package.
// Reads the ownerships table directly, so the answer is consistent with the
// latest committed ledger state.
func (s *pgStore) IsOwner(ctx context.Context, userID, packageID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Ownership{}).
		Where("package_id = ? AND user_id = ? AND confirmed_at IS NOT NULL", packageID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check ownership: %w", err)
	}
	return count > 0, nil
}

// OwnersOf returns the users holding confirmed grants on the package
func (s *pgStore) OwnersOf(ctx context.Context, packageID uuid.UUID) ([]schema.User, error) {
	var owners []schema.User
	err := s.db.WithContext(ctx).
		Joins("JOIN ownerships ON ownerships.user_id = users.id").
		Where("ownerships.package_id = ? AND ownerships.confirmed_at IS NOT NULL", packageID).
		Order("users.handle ASC").
		Find(&owners).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	return owners, nil
}

// GetPackageByName resolves a package by published name
func (s *pgStore) GetPackageByName(ctx context.Context, name string) (*schema.Package, error) {
	var pkg schema.Package
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &pkg, nil
}

// GetUserByHandle resolves a user by public handle
func (s *pgStore) GetUserByHandle(ctx context.Context, handle string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("handle = ?", handle).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByID resolves a user by identifier
func (s *pgStore) GetUserByID(ctx context.Context, id uuid.UUID) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpsertUser mirrors a user record from the identity service
func (s *pgStore) UpsertUser(ctx context.Context, user *schema.User) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"handle", "email"}),
	}).Create(user).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// UpsertPackage mirrors a package record from the registry
func (s *pgStore) UpsertPackage(ctx context.Context, pkg *schema.Package) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(pkg).Error
	if err != nil {
		return fmt.Errorf("failed to upsert package: %w", err)
	}
	return nil
}

// =============================================================================
// Notification outbox
// =============================================================================

// ListPendingNotifications returns undelivered outbox rows oldest-first
func (s *pgStore) ListPendingNotifications(ctx context.Context, limit int) ([]schema.Notification, error) {
	var rows []schema.Notification
	err := s.db.WithContext(ctx).
		Where("status = ?", schema.NotificationStatusPending).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending notifications: %w", err)
	}
	return rows, nil
}

// MarkNotificationSent records a broker-acknowledged publish
func (s *pgStore) MarkNotificationSent(ctx context.Context, id uint64, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&schema.Notification{}).
		Where("id = ? AND status = ?", id, schema.NotificationStatusPending).
		Updates(map[string]interface{}{
			"status":          schema.NotificationStatusSent,
			"attempts":        gorm.Expr("attempts + 1"),
			"last_attempt_at": at,
			"last_error":      "",
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification sent: %w", res.Error)
	}
	return nil
}

// MarkNotificationFailed records a failed publish attempt
func (s *pgStore) MarkNotificationFailed(ctx context.Context, id uint64, at time.Time, lastError string, terminal bool) error {
	status := schema.NotificationStatusPending
	if terminal {
		status = schema.NotificationStatusFailed
	}
	res := s.db.WithContext(ctx).Model(&schema.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          status,
			"attempts":        gorm.Expr("attempts + 1"),
			"last_attempt_at": at,
			"last_error":      lastError,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification failed: %w", res.Error)
	}
	return nil
}

// =============================================================================
// Transaction helpers
// =============================================================================

func getPackageTx(tx *gorm.DB, id uuid.UUID) (*schema.Package, error) {
	var pkg schema.Package
	if err := tx.Where("id = ?", id).First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &pkg, nil
}

func getUserTx(tx *gorm.DB, id uuid.UUID) (*schema.User, error) {
	var user schema.User
	if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func confirmedOwnersTx(tx *gorm.DB, packageID uuid.UUID) ([]schema.User, error) {
	var owners []schema.User
	err := tx.
		Joins("JOIN ownerships ON ownerships.user_id = users.id").
		Where("ownerships.package_id = ? AND ownerships.confirmed_at IS NOT NULL", packageID).
		Order("users.handle ASC").
		Find(&owners).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	return owners, nil
}

// notifyOwnerAdded enqueues owner.added to the new owner and every other
// confirmed owner of the package
func notifyOwnerAdded(tx *gorm.DB, pkg schema.Package, grantee schema.User, authorizerID *uuid.UUID) error {
	payload := domain.NotificationPayload{
		SubjectID:     grantee.ID.String(),
		SubjectHandle: grantee.Handle,
		ActorID:       uuidStringOrEmpty(authorizerID),
	}

	if err := enqueueNotification(tx, domain.EventOwnerAdded, grantee, pkg, payload); err != nil {
		return err
	}

	owners, err := confirmedOwnersTx(tx, pkg.ID)
	if err != nil {
		return err
	}
	for _, owner := range owners {
		if owner.ID == grantee.ID {
			continue
		}
		if err := enqueueNotification(tx, domain.EventOwnerAdded, owner, pkg, payload); err != nil {
			return err
		}
	}

	return nil
}

// enqueueNotification inserts one outbox row addressed to one recipient.
// The row commits with the surrounding transaction.
func enqueueNotification(tx *gorm.DB, kind domain.EventKind, recipient schema.User, pkg schema.Package, payload domain.NotificationPayload) error {
	payload.PackageID = pkg.ID.String()
	payload.PackageName = pkg.Name
	payload.RecipientID = recipient.ID.String()
	payload.RecipientHandle = recipient.Handle
	payload.RecipientEmail = recipient.Email

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	row := schema.Notification{
		EventID:     ulid.Make().String(),
		EventKind:   kind,
		RecipientID: recipient.ID,
		PackageID:   pkg.ID,
		Payload:     raw,
		Status:      schema.NotificationStatusPending,
	}

	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}

	return nil
}

func uuidStringOrEmpty(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
