package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/gin-gonic/gin"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindBusinessRule, domain.KindIntegrity:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := statusFor(kind)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}

	body := gin.H{"error": err.Error(), "kind": kind}
	var ob *domain.OutstandingBalanceError
	if errors.As(err, &ob) {
		body["remaining"] = ob.Remaining.StringFixed(2)
		body["currency"] = ob.Currency
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "kind": domain.KindValidation})
}
