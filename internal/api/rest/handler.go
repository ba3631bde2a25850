package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openregistry/ownership/internal/api/middleware"
	"github.com/openregistry/ownership/internal/api/rest/dto"
	"github.com/openregistry/ownership/internal/call"
	"github.com/openregistry/ownership/internal/domain"
	"github.com/openregistry/ownership/internal/ledger"
	"github.com/openregistry/ownership/internal/request"
	"github.com/openregistry/ownership/internal/store"
	"github.com/openregistry/ownership/internal/store/schema"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListOwners lists the confirmed owners of a package
	// GET /api/v1/packages/:package/owners
	ListOwners(c *gin.Context)

	// GrantOwnership issues a pending ownership grant
	// POST /api/v1/packages/:package/owners
	GrantOwnership(c *gin.Context)

	// RevokeOwnership revokes a grant
	// DELETE /api/v1/packages/:package/owners/:handle
	RevokeOwnership(c *gin.Context)

	// ResendConfirmation regenerates the caller's own confirmation token
	// POST /api/v1/packages/:package/owners/resend_confirmation
	ResendConfirmation(c *gin.Context)

	// ConfirmOwnership resolves a confirmation token from an emailed link
	// GET /api/v1/ownership_confirmations/:token
	ConfirmOwnership(c *gin.Context)

	// ListOpenCalls lists open ownership calls across all packages
	// GET /api/v1/ownership_calls?limit=<limit>&offset=<offset>
	ListOpenCalls(c *gin.Context)

	// GetOpenCall retrieves a package's open call
	// GET /api/v1/packages/:package/ownership_call
	GetOpenCall(c *gin.Context)

	// OpenCall opens an ownership call on a package
	// POST /api/v1/packages/:package/ownership_call
	OpenCall(c *gin.Context)

	// CloseCall closes a package's open call, cascading to its open requests
	// DELETE /api/v1/packages/:package/ownership_call
	CloseCall(c *gin.Context)

	// SubmitRequest files an ownership request by the caller
	// POST /api/v1/packages/:package/ownership_requests
	SubmitRequest(c *gin.Context)

	// ResolveRequest approves or closes an open request
	// PATCH /api/v1/ownership_requests/:id
	ResolveRequest(c *gin.Context)

	// CloseAllRequests closes every open request on a package
	// POST /api/v1/packages/:package/ownership_requests/close_all
	CloseAllRequests(c *gin.Context)

	// MirrorUser upserts a user record from the identity service
	// PUT /api/v1/mirror/users
	MirrorUser(c *gin.Context)

	// MirrorPackage upserts a package record from the registry
	// PUT /api/v1/mirror/packages
	MirrorPackage(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	ledger   *ledger.Ledger
	calls    *call.Manager
	requests *request.Workflow
	store    store.Store
}

// NewHandler creates a new REST API handler
func NewHandler(l *ledger.Ledger, calls *call.Manager, requests *request.Workflow, s store.Store) Handler {
	return &handler{
		ledger:   l,
		calls:    calls,
		requests: requests,
		store:    s,
	}
}

// ListOwners lists the confirmed owners of a package
func (h *handler) ListOwners(c *gin.Context) {
	owners, err := h.ledger.Owners(c.Request.Context(), c.Param("package"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"owners": dto.FromOwners(owners)})
}

// GrantOwnership issues a pending grant to the user named in the body
func (h *handler) GrantOwnership(c *gin.Context) {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		respondBadRequest(c, "Invalid authenticated subject", err.Error())
		return
	}

	var body dto.GrantOwnershipRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	ownership, err := h.ledger.Grant(c.Request.Context(), actorID, c.Param("package"), body.Handle)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromOwnership(ownership))
}

// RevokeOwnership revokes the grant held by :handle
func (h *handler) RevokeOwnership(c *gin.Context) {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		respondBadRequest(c, "Invalid authenticated subject", err.Error())
		return
	}

	if err := h.ledger.Revoke(c.Request.Context(), actorID, c.Param("package"), c.Param("handle")); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ResendConfirmation regenerates the caller's own confirmation token
func (h *handler) ResendConfirmation(c *gin.Context) {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		respondBadRequest(c, "Invalid authenticated subject", err.Error())
		return
	}

	ownership, err := h.ledger.ResendConfirmation(c.Request.Context(), actorID, c.Param("package"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOwnership(ownership))
}

// ConfirmOwnership resolves a confirmation token
func (h *handler) ConfirmOwnership(c *gin.Context) {
	token := c.Param("token")
	if len(token) != domain.ConfirmationTokenLength {
		respondDomainError(c, domain.ErrInvalidToken)
		return
	}

	ownership, err := h.ledger.Confirm(c.Request.Context(), token)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOwnership(ownership))
}

// ListOpenCalls lists open calls across all packages, newest first
func (h *handler) ListOpenCalls(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		respondBadRequest(c, "Invalid limit")
		return
	}
	offset, err := strconv.ParseUint(c.DefaultQuery("offset", "0"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid offset")
		return
	}

	calls, total, err := h.calls.ListOpen(c.Request.Context(), limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	out := make([]dto.OwnershipCall, len(calls))
	for i := range calls {
		out[i] = dto.FromCall(&calls[i])
	}
	if limit <= 0 {
		limit = call.DefaultPageSize
	}
	if limit > call.MaxPageSize {
		limit = call.MaxPageSize
	}

	c.JSON(http.StatusOK, dto.CallListResponse{
		Calls:  out,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetOpenCall retrieves the package's open call
func (h *handler) GetOpenCall(c *gin.Context) {
	openCall, err := h.calls.Get(c.Request.Context(), c.Param("package"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if openCall == nil {
		respondDomainError(c, domain.ErrCallNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.FromCall(openCall))
}

// OpenCall opens an ownership call on the package
func (h *handler) OpenCall(c *gin.Context) {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		respondBadRequest(c, "Invalid authenticated subject", err.Error())
		return
	}

	var body dto.OpenCallRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	opened, err := h.calls.Open(c.Request.Context(), actorID, c.Param("package"), body.Note, body.Email)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCall(opened))
}

// CloseCall closes the package's open call
func (h *handler) CloseCall(c *gin.Context) {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		respondBadRequest(c, "Invalid authenticated subject", err.Error())
		return
	}

	closed, err := h.calls.Close(c.Request.Context(), actorID, c.Param("package"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CloseResponse{Closed: closed})
}

// SubmitRequest files an ownership request by the caller
func (h *handler) SubmitRequest(c *gin.Context) {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		respondBadRequest(c, "Invalid authenticated subject", err.Error())
		return
	}

	var body dto.SubmitRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	submitted, err := h.requests.Submit(c.Request.Context(), actorID, c.Param("package"), body.Note)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromRequest(submitted))
}

// ResolveRequest approves or closes an open request
func (h *handler) ResolveRequest(c *gin.Context) {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		respondBadRequest(c, "Invalid authenticated subject", err.Error())
		return
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid request ID")
		return
	}

	var body dto.ResolveRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	var resolved *schema.OwnershipRequest
	switch domain.RequestStatus(body.Status) {
	case domain.RequestStatusApproved:
		resolved, err = h.requests.Approve(c.Request.Context(), actorID, requestID)
	case domain.RequestStatusClosed:
		resolved, err = h.requests.Close(c.Request.Context(), actorID, requestID)
	default:
		respondValidationError(c, "status must be approved or closed")
		return
	}
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromRequest(resolved))
}

// CloseAllRequests closes every open request on the package
func (h *handler) CloseAllRequests(c *gin.Context) {
	actorID, err := middleware.ActorID(c)
	if err != nil {
		respondBadRequest(c, "Invalid authenticated subject", err.Error())
		return
	}

	closed, err := h.requests.CloseAll(c.Request.Context(), actorID, c.Param("package"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CloseResponse{Closed: closed})
}

// MirrorUser upserts a user record from the identity service
func (h *handler) MirrorUser(c *gin.Context) {
	var body dto.MirrorUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	id, err := uuid.Parse(body.ID)
	if err != nil {
		respondBadRequest(c, "Invalid user ID")
		return
	}
	if err := domain.ValidateEmail(body.Email); err != nil {
		respondDomainError(c, err)
		return
	}

	user := &schema.User{ID: id, Handle: body.Handle, Email: body.Email}
	if err := h.store.UpsertUser(c.Request.Context(), user); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MirrorPackage upserts a package record from the registry
func (h *handler) MirrorPackage(c *gin.Context) {
	var body dto.MirrorPackageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	id, err := uuid.Parse(body.ID)
	if err != nil {
		respondBadRequest(c, "Invalid package ID")
		return
	}

	pkg := &schema.Package{ID: id, Name: body.Name}
	if err := h.store.UpsertPackage(c.Request.Context(), pkg); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
