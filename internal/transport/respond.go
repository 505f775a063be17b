package transport

import (
	"errors"
	"net/http"

	"github.com/eventhub/eventhub-api/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// is a store or infrastructure failure: the detail is logged, the client gets
// a generic message.
func respondError(c *gin.Context, err error) {
	var verrs entity.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
		return
	}

	switch {
	case errors.Is(err, entity.ErrEventNotFound),
		errors.Is(err, entity.ErrRegistrationNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, entity.ErrAlreadyRegistered),
		errors.Is(err, entity.ErrEmailTaken),
		errors.Is(err, entity.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, entity.ErrInvalidCredentials),
		errors.Is(err, entity.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	default:
		logrus.WithError(err).Error("internal server error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
