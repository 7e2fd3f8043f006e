package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/namehaus/registrar/internal/api/apierrors"
	"github.com/namehaus/registrar/internal/domain"
	"github.com/namehaus/registrar/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(message))
}

// respondInternalError responds with an internal server error and logs the cause
func respondInternalError(c *gin.Context, err error, message string) {
	logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
}

// respondDomainError maps registrar sentinel errors to HTTP statuses. Every
// handler funnels operation errors through here so the mapping lives in one
// place.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, apierrors.NewNotFoundError("Name not found"))
	case errors.Is(err, domain.ErrAlreadyRegistered):
		c.JSON(http.StatusConflict, apierrors.NewConflictError("Name already registered"))
	case errors.Is(err, domain.ErrLabelTaken):
		c.JSON(http.StatusConflict, apierrors.NewConflictError("Namespace label already taken"))
	case errors.Is(err, domain.ErrReentrancyBlocked):
		c.JSON(http.StatusConflict, apierrors.NewConflictError("Operation already in progress"))
	case errors.Is(err, domain.ErrInvalidLength):
		c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError("No price configured for this name length"))
	case errors.Is(err, domain.ErrInsufficientPayment):
		c.JSON(http.StatusPaymentRequired, apierrors.NewPaymentRequiredError("Payment below the registration price"))
	case errors.Is(err, domain.ErrWrongFee):
		c.JSON(http.StatusPaymentRequired, apierrors.NewPaymentRequiredError("Payment must equal the deploy fee exactly"))
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, apierrors.NewForbiddenError("Caller does not own this name"))
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, apierrors.NewForbiddenError("Caller is not authorized"))
	case errors.Is(err, domain.ErrTransferFailed):
		c.JSON(http.StatusBadGateway, apierrors.NewServiceError("Payment transfer failed", err.Error()))
	default:
		respondInternalError(c, err, "Operation failed")
	}
}
