package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/openregistry/ownership/internal/api/shared/errors"
	"github.com/openregistry/ownership/internal/domain"
	"github.com/openregistry/ownership/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(message))
}

// respondDomainError maps a workflow error onto its HTTP shape. Unrecognized
// errors are logged and surfaced as 500 without leaking internals.
func respondDomainError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		respondValidationError(c, validationErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrPackageNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrGrantNotFound),
		errors.Is(err, domain.ErrCallNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(err.Error()))

	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, apierrors.NewForbiddenError(err.Error()))

	case errors.Is(err, domain.ErrDuplicateGrant),
		errors.Is(err, domain.ErrAlreadyConfirmed),
		errors.Is(err, domain.ErrCallAlreadyOpen),
		errors.Is(err, domain.ErrDuplicateRequest),
		errors.Is(err, domain.ErrAlreadyResolved),
		errors.Is(err, domain.ErrLastOwner),
		errors.Is(err, domain.ErrPartialClose):
		c.JSON(http.StatusConflict, apierrors.NewConflictError(err.Error()))

	case errors.Is(err, domain.ErrExpiredToken):
		c.JSON(http.StatusGone, apierrors.NewGoneError(err.Error()))

	default:
		logger.ErrorCtx(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, apierrors.NewInternalError("Internal server error"))
	}
}
