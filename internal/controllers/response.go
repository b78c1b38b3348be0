package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/repositories"
)

// FieldError is one validation violation in a 400 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondBindingError maps validator violations to a field-error list; other
// binding failures (malformed JSON, type mismatches) get a generic 400.
func respondBindingError(c *gin.Context, err error) {
	var violations validator.ValidationErrors
	if errors.As(err, &violations) {
		fieldErrors := make([]FieldError, 0, len(violations))
		for _, v := range violations {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   strings.ToLower(v.Field()[:1]) + v.Field()[1:],
				Message: violationMessage(v),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": fieldErrors})
		return
	}
	respondError(c, http.StatusBadRequest, "invalid request body")
}

func violationMessage(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s", v.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", v.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", v.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", v.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", v.Param())
	default:
		return fmt.Sprintf("failed %s validation", v.Tag())
	}
}

// respondServiceError translates service errors. Not-found maps to 404;
// anything else is a 500 with the detail logged, never echoed to the client.
func respondServiceError(c *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, repositories.ErrNotFound) {
		respondError(c, http.StatusNotFound, notFoundMessage)
		return
	}
	logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	respondError(c, http.StatusInternalServerError, "Server error")
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw.(string))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid authentication context")
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathObjectID parses an ObjectID path parameter, answering 404 for garbage
// ids the way a failed lookup would.
func pathObjectID(c *gin.Context, param, notFoundMessage string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		respondError(c, http.StatusNotFound, notFoundMessage)
		return primitive.NilObjectID, false
	}
	return id, true
}
