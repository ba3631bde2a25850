package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openregistry/ownership/internal/domain"
	"github.com/openregistry/ownership/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

var tokenCounter uint64

// nextTestToken returns a unique 40-character confirmation token
func nextTestToken() string {
	n := atomic.AddUint64(&tokenCounter, 1)
	return fmt.Sprintf("%040x", n)
}

func seedUser(t *testing.T, s Store, handle string) schema.User {
	t.Helper()
	user := schema.User{ID: uuid.New(), Handle: handle, Email: handle + "@example.com"}
	require.NoError(t, s.UpsertUser(context.Background(), &user))
	return user
}

func seedPackage(t *testing.T, s Store, name string) schema.Package {
	t.Helper()
	pkg := schema.Package{ID: uuid.New(), Name: name}
	require.NoError(t, s.UpsertPackage(context.Background(), &pkg))
	return pkg
}

// seedOwner creates a confirmed grant so the user counts as an owner
func seedOwner(t *testing.T, s Store, pkg schema.Package, user schema.User) schema.Ownership {
	t.Helper()
	ownership, err := s.CreateConfirmedOwnership(context.Background(), CreateOwnershipInput{
		PackageID: pkg.ID,
		UserID:    user.ID,
		Token:     nextTestToken(),
		ExpiresAt: time.Now().UTC().Add(domain.DefaultTokenTTL),
	}, time.Now().UTC())
	require.NoError(t, err)
	return *ownership
}

func pendingNotifications(t *testing.T, s Store) []schema.Notification {
	t.Helper()
	rows, err := s.ListPendingNotifications(context.Background(), 1000)
	require.NoError(t, err)
	return rows
}

// notificationsOf filters pending outbox rows by kind and package
func notificationsOf(rows []schema.Notification, kind domain.EventKind, packageID uuid.UUID) []schema.Notification {
	var out []schema.Notification
	for _, row := range rows {
		if row.EventKind == kind && row.PackageID == packageID {
			out = append(out, row)
		}
	}
	return out
}

func decodePayload(t *testing.T, row schema.Notification) domain.NotificationPayload {
	t.Helper()
	var payload domain.NotificationPayload
	require.NoError(t, json.Unmarshal(row.Payload, &payload))
	return payload
}

// =============================================================================
// Test: Ownership grants
// =============================================================================

func testCreateOwnership(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("creates a pending grant and enqueues the confirmation notice", func(t *testing.T) {
		owner := seedUser(t, s, "alice")
		grantee := seedUser(t, s, "bob")
		pkg := seedPackage(t, s, "redcarpet")
		seedOwner(t, s, pkg, owner)

		token := nextTestToken()
		ownership, err := s.CreateOwnership(ctx, CreateOwnershipInput{
			PackageID:    pkg.ID,
			UserID:       grantee.ID,
			AuthorizerID: &owner.ID,
			Token:        token,
			ExpiresAt:    time.Now().UTC().Add(domain.DefaultTokenTTL),
		})
		require.NoError(t, err)
		require.NotNil(t, ownership)
		assert.NotZero(t, ownership.ID)
		assert.False(t, ownership.Confirmed())

		stored, err := s.GetOwnership(ctx, pkg.ID, grantee.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, token, stored.ConfirmationToken)
		assert.Nil(t, stored.ConfirmedAt)

		// The grantee got exactly one confirmation notice carrying the token
		notices := notificationsOf(pendingNotifications(t, s), domain.EventOwnershipConfirmation, pkg.ID)
		require.Len(t, notices, 1)
		payload := decodePayload(t, notices[0])
		assert.Equal(t, grantee.ID.String(), payload.RecipientID)
		assert.Equal(t, grantee.Email, payload.RecipientEmail)
		assert.Equal(t, token, payload.ConfirmationToken)
		assert.Equal(t, pkg.Name, payload.PackageName)
	})

	t.Run("rejects a second grant for the same package and user", func(t *testing.T) {
		owner := seedUser(t, s, "carol")
		grantee := seedUser(t, s, "dave")
		pkg := seedPackage(t, s, "nokogiri")
		seedOwner(t, s, pkg, owner)

		input := CreateOwnershipInput{
			PackageID: pkg.ID,
			UserID:    grantee.ID,
			Token:     nextTestToken(),
			ExpiresAt: time.Now().UTC().Add(domain.DefaultTokenTTL),
		}
		_, err := s.CreateOwnership(ctx, input)
		require.NoError(t, err)

		input.Token = nextTestToken()
		_, err = s.CreateOwnership(ctx, input)
		assert.ErrorIs(t, err, domain.ErrDuplicateGrant)
	})

	t.Run("duplicate grant leaves no extra notification behind", func(t *testing.T) {
		grantee := seedUser(t, s, "erin")
		pkg := seedPackage(t, s, "rack")

		input := CreateOwnershipInput{
			PackageID: pkg.ID,
			UserID:    grantee.ID,
			Token:     nextTestToken(),
			ExpiresAt: time.Now().UTC().Add(domain.DefaultTokenTTL),
		}
		_, err := s.CreateOwnership(ctx, input)
		require.NoError(t, err)

		input.Token = nextTestToken()
		_, err = s.CreateOwnership(ctx, input)
		require.ErrorIs(t, err, domain.ErrDuplicateGrant)

		notices := notificationsOf(pendingNotifications(t, s), domain.EventOwnershipConfirmation, pkg.ID)
		assert.Len(t, notices, 1)
	})
}

func testConfirmOwnership(t *testing.T, s Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("confirms a pending grant and notifies the owner circle", func(t *testing.T) {
		owner := seedUser(t, s, "frank")
		grantee := seedUser(t, s, "grace")
		pkg := seedPackage(t, s, "puma")
		seedOwner(t, s, pkg, owner)

		token := nextTestToken()
		_, err := s.CreateOwnership(ctx, CreateOwnershipInput{
			PackageID: pkg.ID,
			UserID:    grantee.ID,
			Token:     token,
			ExpiresAt: now.Add(domain.DefaultTokenTTL),
		})
		require.NoError(t, err)

		confirmed, err := s.ConfirmOwnership(ctx, token, now)
		require.NoError(t, err)
		require.NotNil(t, confirmed.ConfirmedAt)

		isOwner, err := s.IsOwner(ctx, grantee.ID, pkg.ID)
		require.NoError(t, err)
		assert.True(t, isOwner)

		// owner.added goes to the new owner and every existing owner
		added := notificationsOf(pendingNotifications(t, s), domain.EventOwnerAdded, pkg.ID)
		recipients := make(map[string]bool)
		for _, row := range added {
			recipients[decodePayload(t, row).RecipientID] = true
		}
		assert.True(t, recipients[grantee.ID.String()])
		assert.True(t, recipients[owner.ID.String()])
	})

	t.Run("revisiting a valid token is idempotent", func(t *testing.T) {
		grantee := seedUser(t, s, "heidi")
		pkg := seedPackage(t, s, "sinatra")

		token := nextTestToken()
		_, err := s.CreateOwnership(ctx, CreateOwnershipInput{
			PackageID: pkg.ID,
			UserID:    grantee.ID,
			Token:     token,
			ExpiresAt: now.Add(domain.DefaultTokenTTL),
		})
		require.NoError(t, err)

		first, err := s.ConfirmOwnership(ctx, token, now)
		require.NoError(t, err)

		second, err := s.ConfirmOwnership(ctx, token, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, first.ConfirmedAt.Unix(), second.ConfirmedAt.Unix())

		// Exactly one owner.added for the grantee despite two visits
		added := notificationsOf(pendingNotifications(t, s), domain.EventOwnerAdded, pkg.ID)
		count := 0
		for _, row := range added {
			if decodePayload(t, row).RecipientID == grantee.ID.String() {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := s.ConfirmOwnership(ctx, nextTestToken(), now)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("expired token on an unconfirmed grant", func(t *testing.T) {
		grantee := seedUser(t, s, "ivan")
		pkg := seedPackage(t, s, "thor")

		token := nextTestToken()
		_, err := s.CreateOwnership(ctx, CreateOwnershipInput{
			PackageID: pkg.ID,
			UserID:    grantee.ID,
			Token:     token,
			ExpiresAt: now.Add(-time.Hour),
		})
		require.NoError(t, err)

		_, err = s.ConfirmOwnership(ctx, token, now)
		assert.ErrorIs(t, err, domain.ErrExpiredToken)
	})

	t.Run("stale link on an already-confirmed grant stays successful", func(t *testing.T) {
		grantee := seedUser(t, s, "judy")
		pkg := seedPackage(t, s, "rake")

		token := nextTestToken()
		_, err := s.CreateOwnership(ctx, CreateOwnershipInput{
			PackageID: pkg.ID,
			UserID:    grantee.ID,
			Token:     token,
			ExpiresAt: now.Add(time.Hour),
		})
		require.NoError(t, err)

		_, err = s.ConfirmOwnership(ctx, token, now)
		require.NoError(t, err)

		// Past expiry, but the grant is already confirmed
		revisit, err := s.ConfirmOwnership(ctx, token, now.Add(2*time.Hour))
		require.NoError(t, err)
		assert.True(t, revisit.Confirmed())
	})
}

func testRegenerateOwnershipToken(t *testing.T, s Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("replaces the token on an unconfirmed grant", func(t *testing.T) {
		grantee := seedUser(t, s, "karen")
		pkg := seedPackage(t, s, "byebug")

		oldToken := nextTestToken()
		_, err := s.CreateOwnership(ctx, CreateOwnershipInput{
			PackageID: pkg.ID,
			UserID:    grantee.ID,
			Token:     oldToken,
			ExpiresAt: now.Add(-time.Hour),
		})
		require.NoError(t, err)

		newToken := nextTestToken()
		regenerated, err := s.RegenerateOwnershipToken(ctx, pkg.ID, grantee.ID, newToken, now.Add(domain.DefaultTokenTTL))
		require.NoError(t, err)
		assert.Equal(t, newToken, regenerated.ConfirmationToken)

		// Old token is gone, new one confirms
		_, err = s.ConfirmOwnership(ctx, oldToken, now)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)

		confirmed, err := s.ConfirmOwnership(ctx, newToken, now)
		require.NoError(t, err)
		assert.True(t, confirmed.Confirmed())
	})

	t.Run("confirmed grants keep their token", func(t *testing.T) {
		owner := seedUser(t, s, "leo")
		pkg := seedPackage(t, s, "pry")
		seedOwner(t, s, pkg, owner)

		_, err := s.RegenerateOwnershipToken(ctx, pkg.ID, owner.ID, nextTestToken(), now.Add(domain.DefaultTokenTTL))
		assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)
	})

	t.Run("missing grant", func(t *testing.T) {
		pkg := seedPackage(t, s, "oj")
		_, err := s.RegenerateOwnershipToken(ctx, pkg.ID, uuid.New(), nextTestToken(), now.Add(domain.DefaultTokenTTL))
		assert.ErrorIs(t, err, domain.ErrGrantNotFound)
	})
}

func testDeleteOwnership(t *testing.T, s Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("revokes a grant when other confirmed owners remain", func(t *testing.T) {
		owner := seedUser(t, s, "mallory")
		other := seedUser(t, s, "nick")
		pkg := seedPackage(t, s, "faraday")
		seedOwner(t, s, pkg, owner)
		seedOwner(t, s, pkg, other)

		err := s.DeleteOwnership(ctx, pkg.ID, other.ID, &owner.ID)
		require.NoError(t, err)

		isOwner, err := s.IsOwner(ctx, other.ID, pkg.ID)
		require.NoError(t, err)
		assert.False(t, isOwner)

		// Removed user and remaining owner both hear about it
		removed := notificationsOf(pendingNotifications(t, s), domain.EventOwnerRemoved, pkg.ID)
		recipients := make(map[string]bool)
		for _, row := range removed {
			recipients[decodePayload(t, row).RecipientID] = true
		}
		assert.True(t, recipients[other.ID.String()])
		assert.True(t, recipients[owner.ID.String()])
	})

	t.Run("refuses to remove the last confirmed owner", func(t *testing.T) {
		owner := seedUser(t, s, "oscar")
		pkg := seedPackage(t, s, "rspec")
		seedOwner(t, s, pkg, owner)

		err := s.DeleteOwnership(ctx, pkg.ID, owner.ID, &owner.ID)
		assert.ErrorIs(t, err, domain.ErrLastOwner)

		isOwner, err := s.IsOwner(ctx, owner.ID, pkg.ID)
		require.NoError(t, err)
		assert.True(t, isOwner)
	})

	t.Run("unconfirmed grants are always revocable", func(t *testing.T) {
		grantee := seedUser(t, s, "peggy")
		pkg := seedPackage(t, s, "rubocop")

		_, err := s.CreateOwnership(ctx, CreateOwnershipInput{
			PackageID: pkg.ID,
			UserID:    grantee.ID,
			Token:     nextTestToken(),
			ExpiresAt: now.Add(domain.DefaultTokenTTL),
		})
		require.NoError(t, err)

		err = s.DeleteOwnership(ctx, pkg.ID, grantee.ID, nil)
		require.NoError(t, err)

		stored, err := s.GetOwnership(ctx, pkg.ID, grantee.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("missing grant", func(t *testing.T) {
		pkg := seedPackage(t, s, "webmock")
		err := s.DeleteOwnership(ctx, pkg.ID, uuid.New(), nil)
		assert.ErrorIs(t, err, domain.ErrGrantNotFound)
	})
}

// =============================================================================
// Test: Ownership calls
// =============================================================================

func testCreateCall(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("opens a call and reads it back", func(t *testing.T) {
		owner := seedUser(t, s, "quinn")
		pkg := seedPackage(t, s, "devise")
		seedOwner(t, s, pkg, owner)

		created, err := s.CreateCall(ctx, CreateCallInput{
			PackageID: pkg.ID,
			OpenedBy:  owner.ID,
			Note:      "looking for co-maintainers",
			Email:     "quinn@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.CallStatusOpen, created.Status)

		open, err := s.GetOpenCall(ctx, pkg.ID)
		require.NoError(t, err)
		require.NotNil(t, open)
		assert.Equal(t, created.ID, open.ID)
		assert.Equal(t, "quinn@example.com", open.Email)
	})

	t.Run("rejects a second open call for the same package", func(t *testing.T) {
		owner := seedUser(t, s, "ruth")
		pkg := seedPackage(t, s, "kaminari")
		seedOwner(t, s, pkg, owner)

		input := CreateCallInput{PackageID: pkg.ID, OpenedBy: owner.ID, Note: "first", Email: "ruth@example.com"}
		_, err := s.CreateCall(ctx, input)
		require.NoError(t, err)

		input.Note = "second"
		_, err = s.CreateCall(ctx, input)
		assert.ErrorIs(t, err, domain.ErrCallAlreadyOpen)
	})

	t.Run("a closed call does not block reopening", func(t *testing.T) {
		owner := seedUser(t, s, "sybil")
		pkg := seedPackage(t, s, "minitest")
		seedOwner(t, s, pkg, owner)

		input := CreateCallInput{PackageID: pkg.ID, OpenedBy: owner.ID, Note: "round one", Email: "sybil@example.com"}
		first, err := s.CreateCall(ctx, input)
		require.NoError(t, err)

		_, err = s.CloseCall(ctx, first.ID)
		require.NoError(t, err)

		input.Note = "round two"
		second, err := s.CreateCall(ctx, input)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})
}

func testCloseCall(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("closes the call and cascades to its open requests", func(t *testing.T) {
		owner := seedUser(t, s, "trent")
		candidateA := seedUser(t, s, "uma")
		candidateB := seedUser(t, s, "vince")
		pkg := seedPackage(t, s, "sidekiq")
		seedOwner(t, s, pkg, owner)

		opened, err := s.CreateCall(ctx, CreateCallInput{PackageID: pkg.ID, OpenedBy: owner.ID, Note: "help wanted", Email: "trent@example.com"})
		require.NoError(t, err)

		for _, candidate := range []schema.User{candidateA, candidateB} {
			_, err := s.CreateRequest(ctx, CreateRequestInput{
				PackageID: pkg.ID,
				UserID:    candidate.ID,
				CallID:    &opened.ID,
				Note:      "pick me",
			})
			require.NoError(t, err)
		}

		closed, err := s.CloseCall(ctx, opened.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), closed)

		open, err := s.GetOpenCall(ctx, pkg.ID)
		require.NoError(t, err)
		assert.Nil(t, open)

		// Cascade closures are silent: no request.closed notices
		closedNotices := notificationsOf(pendingNotifications(t, s), domain.EventRequestClosed, pkg.ID)
		assert.Empty(t, closedNotices)
	})

	t.Run("closing an already-closed call", func(t *testing.T) {
		owner := seedUser(t, s, "walter")
		pkg := seedPackage(t, s, "bundler")
		seedOwner(t, s, pkg, owner)

		opened, err := s.CreateCall(ctx, CreateCallInput{PackageID: pkg.ID, OpenedBy: owner.ID, Note: "open", Email: "walter@example.com"})
		require.NoError(t, err)

		_, err = s.CloseCall(ctx, opened.ID)
		require.NoError(t, err)

		_, err = s.CloseCall(ctx, opened.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
	})

	t.Run("missing call", func(t *testing.T) {
		_, err := s.CloseCall(ctx, 999999)
		assert.ErrorIs(t, err, domain.ErrCallNotFound)
	})
}

func testListOpenCalls(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "xavier")
	for i := 0; i < 3; i++ {
		pkg := seedPackage(t, s, fmt.Sprintf("listing-%d", i))
		seedOwner(t, s, pkg, owner)
		_, err := s.CreateCall(ctx, CreateCallInput{PackageID: pkg.ID, OpenedBy: owner.ID, Note: "open", Email: "xavier@example.com"})
		require.NoError(t, err)
	}

	calls, total, err := s.ListOpenCalls(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Len(t, calls, 2)

	rest, total, err := s.ListOpenCalls(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Len(t, rest, 1)
}

// =============================================================================
// Test: Ownership requests
// =============================================================================

func testCreateRequest(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("submits a request, notifying owners and the candidate", func(t *testing.T) {
		ownerA := seedUser(t, s, "yvonne")
		ownerB := seedUser(t, s, "zack")
		candidate := seedUser(t, s, "amber")
		pkg := seedPackage(t, s, "jekyll")
		seedOwner(t, s, pkg, ownerA)
		seedOwner(t, s, pkg, ownerB)

		created, err := s.CreateRequest(ctx, CreateRequestInput{
			PackageID: pkg.ID,
			UserID:    candidate.ID,
			Note:      "long-time contributor",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusOpen, created.Status)

		rows := pendingNotifications(t, s)

		// One batched notice per owner with the open-request count
		submitted := notificationsOf(rows, domain.EventRequestSubmitted, pkg.ID)
		require.Len(t, submitted, 2)
		for _, row := range submitted {
			payload := decodePayload(t, row)
			assert.Equal(t, 1, payload.OpenRequestCount)
			assert.Equal(t, candidate.ID.String(), payload.SubjectID)
		}

		// One receipt back to the candidate
		receipts := notificationsOf(rows, domain.EventRequestReceipt, pkg.ID)
		require.Len(t, receipts, 1)
		assert.Equal(t, candidate.ID.String(), decodePayload(t, receipts[0]).RecipientID)
	})

	t.Run("rejects a second open request by the same candidate", func(t *testing.T) {
		candidate := seedUser(t, s, "boris")
		pkg := seedPackage(t, s, "hanami")

		input := CreateRequestInput{PackageID: pkg.ID, UserID: candidate.ID, Note: "first"}
		_, err := s.CreateRequest(ctx, input)
		require.NoError(t, err)

		input.Note = "second"
		_, err = s.CreateRequest(ctx, input)
		assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
	})

	t.Run("a resolved request does not block resubmission", func(t *testing.T) {
		candidate := seedUser(t, s, "clara")
		pkg := seedPackage(t, s, "roda")

		first, err := s.CreateRequest(ctx, CreateRequestInput{PackageID: pkg.ID, UserID: candidate.ID, Note: "first"})
		require.NoError(t, err)

		_, err = s.CloseRequest(ctx, first.ID, false)
		require.NoError(t, err)

		second, err := s.CreateRequest(ctx, CreateRequestInput{PackageID: pkg.ID, UserID: candidate.ID, Note: "again"})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})
}

func testApproveRequest(t *testing.T, s Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("approval materializes a confirmed grant atomically", func(t *testing.T) {
		owner := seedUser(t, s, "diana")
		candidate := seedUser(t, s, "elliot")
		pkg := seedPackage(t, s, "grape")
		seedOwner(t, s, pkg, owner)

		created, err := s.CreateRequest(ctx, CreateRequestInput{PackageID: pkg.ID, UserID: candidate.ID, Note: "please"})
		require.NoError(t, err)

		approved, ownership, err := s.ApproveRequest(ctx, created.ID, owner.ID, nextTestToken(), now)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusApproved, approved.Status)
		require.NotNil(t, approved.ApproverID)
		assert.Equal(t, owner.ID, *approved.ApproverID)
		assert.True(t, ownership.Confirmed())

		isOwner, err := s.IsOwner(ctx, candidate.ID, pkg.ID)
		require.NoError(t, err)
		assert.True(t, isOwner)

		approvedNotices := notificationsOf(pendingNotifications(t, s), domain.EventRequestApproved, pkg.ID)
		require.Len(t, approvedNotices, 1)
		assert.Equal(t, candidate.ID.String(), decodePayload(t, approvedNotices[0]).RecipientID)
	})

	t.Run("only one of two competing approvals wins", func(t *testing.T) {
		owner := seedUser(t, s, "fiona")
		candidate := seedUser(t, s, "george")
		pkg := seedPackage(t, s, "trailblazer")
		seedOwner(t, s, pkg, owner)

		created, err := s.CreateRequest(ctx, CreateRequestInput{PackageID: pkg.ID, UserID: candidate.ID, Note: "please"})
		require.NoError(t, err)

		_, _, err = s.ApproveRequest(ctx, created.ID, owner.ID, nextTestToken(), now)
		require.NoError(t, err)

		_, _, err = s.ApproveRequest(ctx, created.ID, owner.ID, nextTestToken(), now)
		assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
	})

	t.Run("grant failure rolls the approval back", func(t *testing.T) {
		owner := seedUser(t, s, "hank")
		candidate := seedUser(t, s, "iris")
		pkg := seedPackage(t, s, "dry-rb")
		seedOwner(t, s, pkg, owner)
		// Candidate already holds a grant, so the approval's grant must conflict
		seedOwner(t, s, pkg, candidate)

		created, err := s.CreateRequest(ctx, CreateRequestInput{PackageID: pkg.ID, UserID: candidate.ID, Note: "redundant"})
		require.NoError(t, err)

		_, _, err = s.ApproveRequest(ctx, created.ID, owner.ID, nextTestToken(), now)
		require.ErrorIs(t, err, domain.ErrDuplicateGrant)

		// An approved request without its grant must not be observable
		stored, err := s.GetRequest(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, domain.RequestStatusOpen, stored.Status)
	})

	t.Run("missing request", func(t *testing.T) {
		owner := seedUser(t, s, "jack")
		_, _, err := s.ApproveRequest(ctx, 999999, owner.ID, nextTestToken(), now)
		assert.ErrorIs(t, err, domain.ErrRequestNotFound)
	})
}

func testCloseRequest(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("owner close notifies the candidate", func(t *testing.T) {
		candidate := seedUser(t, s, "kyle")
		pkg := seedPackage(t, s, "shrine")

		created, err := s.CreateRequest(ctx, CreateRequestInput{PackageID: pkg.ID, UserID: candidate.ID, Note: "hello"})
		require.NoError(t, err)

		closed, err := s.CloseRequest(ctx, created.ID, true)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusClosed, closed.Status)

		notices := notificationsOf(pendingNotifications(t, s), domain.EventRequestClosed, pkg.ID)
		require.Len(t, notices, 1)
		assert.Equal(t, candidate.ID.String(), decodePayload(t, notices[0]).RecipientID)
	})

	t.Run("self-withdrawal is silent", func(t *testing.T) {
		candidate := seedUser(t, s, "laura")
		pkg := seedPackage(t, s, "sequel")

		created, err := s.CreateRequest(ctx, CreateRequestInput{PackageID: pkg.ID, UserID: candidate.ID, Note: "hello"})
		require.NoError(t, err)

		_, err = s.CloseRequest(ctx, created.ID, false)
		require.NoError(t, err)

		notices := notificationsOf(pendingNotifications(t, s), domain.EventRequestClosed, pkg.ID)
		assert.Empty(t, notices)
	})

	t.Run("closing a resolved request", func(t *testing.T) {
		candidate := seedUser(t, s, "mike")
		pkg := seedPackage(t, s, "phlex")

		created, err := s.CreateRequest(ctx, CreateRequestInput{PackageID: pkg.ID, UserID: candidate.ID, Note: "hello"})
		require.NoError(t, err)

		_, err = s.CloseRequest(ctx, created.ID, false)
		require.NoError(t, err)

		_, err = s.CloseRequest(ctx, created.ID, true)
		assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
	})
}

func testCloseAllRequests(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("closes every open request and notifies each candidate", func(t *testing.T) {
		pkg := seedPackage(t, s, "mastodon")
		candidates := []schema.User{
			seedUser(t, s, "nina"),
			seedUser(t, s, "otto"),
			seedUser(t, s, "paula"),
		}
		for _, candidate := range candidates {
			_, err := s.CreateRequest(ctx, CreateRequestInput{PackageID: pkg.ID, UserID: candidate.ID, Note: "hi"})
			require.NoError(t, err)
		}

		closed, err := s.CloseAllRequests(ctx, pkg.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), closed)

		notices := notificationsOf(pendingNotifications(t, s), domain.EventRequestClosed, pkg.ID)
		assert.Len(t, notices, 3)
	})

	t.Run("no open requests is a zero-count success", func(t *testing.T) {
		pkg := seedPackage(t, s, "forem")
		closed, err := s.CloseAllRequests(ctx, pkg.ID)
		require.NoError(t, err)
		assert.Zero(t, closed)
	})
}

// =============================================================================
// Test: Directory queries and mirror upserts
// =============================================================================

func testDirectoryQueries(t *testing.T, s Store) {
	ctx := context.Background()

	owner := seedUser(t, s, "rachel")
	outsider := seedUser(t, s, "steve")
	pkg := seedPackage(t, s, "actioncable")
	seedOwner(t, s, pkg, owner)

	t.Run("IsOwner tracks confirmed grants only", func(t *testing.T) {
		isOwner, err := s.IsOwner(ctx, owner.ID, pkg.ID)
		require.NoError(t, err)
		assert.True(t, isOwner)

		isOwner, err = s.IsOwner(ctx, outsider.ID, pkg.ID)
		require.NoError(t, err)
		assert.False(t, isOwner)

		_, err = s.CreateOwnership(ctx, CreateOwnershipInput{
			PackageID: pkg.ID,
			UserID:    outsider.ID,
			Token:     nextTestToken(),
			ExpiresAt: time.Now().UTC().Add(domain.DefaultTokenTTL),
		})
		require.NoError(t, err)

		// Still not an owner until confirmed
		isOwner, err = s.IsOwner(ctx, outsider.ID, pkg.ID)
		require.NoError(t, err)
		assert.False(t, isOwner)
	})

	t.Run("OwnersOf lists confirmed owners by handle", func(t *testing.T) {
		owners, err := s.OwnersOf(ctx, pkg.ID)
		require.NoError(t, err)
		require.Len(t, owners, 1)
		assert.Equal(t, owner.Handle, owners[0].Handle)
	})

	t.Run("name and handle lookups", func(t *testing.T) {
		found, err := s.GetPackageByName(ctx, pkg.Name)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, pkg.ID, found.ID)

		missing, err := s.GetPackageByName(ctx, "no-such-package")
		require.NoError(t, err)
		assert.Nil(t, missing)

		user, err := s.GetUserByHandle(ctx, owner.Handle)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, owner.ID, user.ID)

		byID, err := s.GetUserByID(ctx, owner.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, owner.Handle, byID.Handle)
	})

	t.Run("mirror upserts are idempotent and update in place", func(t *testing.T) {
		updated := schema.User{ID: owner.ID, Handle: "rachel-renamed", Email: "rachel@new.example.com"}
		require.NoError(t, s.UpsertUser(ctx, &updated))

		user, err := s.GetUserByID(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "rachel-renamed", user.Handle)

		renamed := schema.Package{ID: pkg.ID, Name: "actioncable-next"}
		require.NoError(t, s.UpsertPackage(ctx, &renamed))

		found, err := s.GetPackageByName(ctx, "actioncable-next")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, pkg.ID, found.ID)
	})
}

// =============================================================================
// Test: Notification outbox
// =============================================================================

func testNotificationOutbox(t *testing.T, s Store) {
	ctx := context.Background()
	now := time.Now().UTC()

	grantee := seedUser(t, s, "tina")
	pkg := seedPackage(t, s, "outboxed")
	_, err := s.CreateOwnership(ctx, CreateOwnershipInput{
		PackageID: pkg.ID,
		UserID:    grantee.ID,
		Token:     nextTestToken(),
		ExpiresAt: now.Add(domain.DefaultTokenTTL),
	})
	require.NoError(t, err)

	rows := notificationsOf(pendingNotifications(t, s), domain.EventOwnershipConfirmation, pkg.ID)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Len(t, row.EventID, 26)
	assert.Equal(t, schema.NotificationStatusPending, row.Status)

	t.Run("sent rows leave the pending queue", func(t *testing.T) {
		require.NoError(t, s.MarkNotificationSent(ctx, row.ID, now))
		remaining := notificationsOf(pendingNotifications(t, s), domain.EventOwnershipConfirmation, pkg.ID)
		assert.Empty(t, remaining)
	})

	t.Run("non-terminal failure keeps the row pending", func(t *testing.T) {
		other := seedUser(t, s, "ursula")
		otherPkg := seedPackage(t, s, "retried")
		_, err := s.CreateOwnership(ctx, CreateOwnershipInput{
			PackageID: otherPkg.ID,
			UserID:    other.ID,
			Token:     nextTestToken(),
			ExpiresAt: now.Add(domain.DefaultTokenTTL),
		})
		require.NoError(t, err)

		rows := notificationsOf(pendingNotifications(t, s), domain.EventOwnershipConfirmation, otherPkg.ID)
		require.Len(t, rows, 1)

		require.NoError(t, s.MarkNotificationFailed(ctx, rows[0].ID, now, "broker unavailable", false))
		still := notificationsOf(pendingNotifications(t, s), domain.EventOwnershipConfirmation, otherPkg.ID)
		require.Len(t, still, 1)
		assert.Equal(t, 1, still[0].Attempts)
		assert.Equal(t, "broker unavailable", still[0].LastError)

		require.NoError(t, s.MarkNotificationFailed(ctx, rows[0].ID, now, "broker unavailable", true))
		gone := notificationsOf(pendingNotifications(t, s), domain.EventOwnershipConfirmation, otherPkg.ID)
		assert.Empty(t, gone)
	})
}

// RunStoreTests runs the shared store test suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"CreateOwnership", testCreateOwnership},
		{"ConfirmOwnership", testConfirmOwnership},
		{"RegenerateOwnershipToken", testRegenerateOwnershipToken},
		{"DeleteOwnership", testDeleteOwnership},
		{"CreateCall", testCreateCall},
		{"CloseCall", testCloseCall},
		{"ListOpenCalls", testListOpenCalls},
		{"CreateRequest", testCreateRequest},
		{"ApproveRequest", testApproveRequest},
		{"CloseRequest", testCloseRequest},
		{"CloseAllRequests", testCloseAllRequests},
		{"DirectoryQueries", testDirectoryQueries},
		{"NotificationOutbox", testNotificationOutbox},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
