package dto

import (
	"time"

	"github.com/openregistry/ownership/internal/store/schema"
)

// GrantOwnershipRequest is the body for issuing an ownership grant
type GrantOwnershipRequest struct {
	Handle string `json:"handle" binding:"required"`
}

// OpenCallRequest is the body for opening an ownership call
type OpenCallRequest struct {
	Note  string `json:"note" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// SubmitRequestRequest is the body for submitting an ownership request
type SubmitRequestRequest struct {
	Note string `json:"note" binding:"required"`
}

// ResolveRequestRequest is the body for resolving an ownership request
type ResolveRequestRequest struct {
	// Status is the target state: "approved" or "closed"
	Status string `json:"status" binding:"required"`
}

// Owner is a confirmed owner in API responses
type Owner struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
}

// Ownership is an ownership grant in API responses. The confirmation token
// never leaves the system through the API.
type Ownership struct {
	PackageID   string     `json:"package_id"`
	UserID      string     `json:"user_id"`
	Confirmed   bool       `json:"confirmed"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	ExpiresAt   time.Time  `json:"token_expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OwnershipCall is an ownership call in API responses
type OwnershipCall struct {
	ID          uint64    `json:"id"`
	PackageID   string    `json:"package_id"`
	PackageName string    `json:"package_name,omitempty"`
	OpenedBy    string    `json:"opened_by"`
	Note        string    `json:"note"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// OwnershipRequest is an ownership request in API responses
type OwnershipRequest struct {
	ID         uint64    `json:"id"`
	PackageID  string    `json:"package_id"`
	UserID     string    `json:"user_id"`
	CallID     *uint64   `json:"call_id,omitempty"`
	Note       string    `json:"note"`
	Status     string    `json:"status"`
	ApproverID *string   `json:"approver_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CallListResponse is a paginated page of open calls
type CallListResponse struct {
	Calls  []OwnershipCall `json:"calls"`
	Total  uint64          `json:"total"`
	Limit  int             `json:"limit"`
	Offset uint64          `json:"offset"`
}

// CloseResponse reports the outcome of a close or bulk close
type CloseResponse struct {
	Closed int64 `json:"closed"`
}

// MirrorUserRequest is the body for mirroring a user record
type MirrorUserRequest struct {
	ID     string `json:"id" binding:"required"`
	Handle string `json:"handle" binding:"required"`
	Email  string `json:"email" binding:"required"`
}

// MirrorPackageRequest is the body for mirroring a package record
type MirrorPackageRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// FromOwnership maps a schema row to its API shape
func FromOwnership(o *schema.Ownership) Ownership {
	return Ownership{
		PackageID:   o.PackageID.String(),
		UserID:      o.UserID.String(),
		Confirmed:   o.Confirmed(),
		ConfirmedAt: o.ConfirmedAt,
		ExpiresAt:   o.TokenExpiresAt,
		CreatedAt:   o.CreatedAt,
	}
}

// FromCall maps a schema row to its API shape
func FromCall(c *schema.OwnershipCall) OwnershipCall {
	out := OwnershipCall{
		ID:        c.ID,
		PackageID: c.PackageID.String(),
		OpenedBy:  c.OpenedBy.String(),
		Note:      c.Note,
		Email:     c.Email,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
	if c.Package.Name != "" {
		out.PackageName = c.Package.Name
	}
	return out
}

// FromRequest maps a schema row to its API shape
func FromRequest(r *schema.OwnershipRequest) OwnershipRequest {
	out := OwnershipRequest{
		ID:        r.ID,
		PackageID: r.PackageID.String(),
		UserID:    r.UserID.String(),
		CallID:    r.CallID,
		Note:      r.Note,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
	if r.ApproverID != nil {
		s := r.ApproverID.String()
		out.ApproverID = &s
	}
	return out
}

// FromOwners maps user rows to their API shape
func FromOwners(users []schema.User) []Owner {
	owners := make([]Owner, len(users))
	for i, u := range users {
		owners[i] = Owner{ID: u.ID.String(), Handle: u.Handle}
	}
	return owners
}
