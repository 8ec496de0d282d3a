package handler

import (
	"complaintbox/backend/internal/apperror"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var errMissingFormCredentials = errors.New("username and password are required")

// statusFor maps the error taxonomy to HTTP status codes.
var statusFor = []struct {
	err    error
	status int
}{
	{apperror.ErrDuplicateIdentity, http.StatusBadRequest},
	{apperror.ErrInvalidCredentials, http.StatusBadRequest},
	{apperror.ErrInvalidToken, http.StatusUnauthorized},
	{apperror.ErrExpiredToken, http.StatusUnauthorized},
	{apperror.ErrForbidden, http.StatusForbidden},
	{apperror.ErrNotFound, http.StatusNotFound},
	{apperror.ErrValidation, http.StatusUnprocessableEntity},
	{apperror.ErrTooManyAttempts, http.StatusTooManyRequests},
}

// respondError writes {"detail": ...} for err and aborts the chain.
func respondError(c *gin.Context, err error) {
	for _, m := range statusFor {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.status == http.StatusUnauthorized {
			c.Header("WWW-Authenticate", "Bearer")
		}
		c.AbortWithStatusJSON(m.status, gin.H{"detail": detail(err, m.err)})
		return
	}

	log.Printf("ERROR: %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}

// detail strips the sentinel prefix so only the reason reaches the client.
func detail(err, sentinel error) string {
	msg := err.Error()
	if reason, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return reason
	}
	return msg
}

// respondBindError reports malformed request bodies and failed binding tags as 422.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &verrs):
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		respondError(c, apperror.Validation("%s", strings.Join(msgs, "; ")))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		respondError(c, apperror.Validation("malformed JSON body"))
	case errors.As(err, &typeErr):
		respondError(c, apperror.Validation("field %s must be %s", typeErr.Field, typeErr.Type))
	default:
		respondError(c, apperror.Validation("%v", err))
	}
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
