package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/services"
)

// Authenticator is the slice of the auth service the controller needs.
type Authenticator interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

// AuthController handles /api/auth.
type AuthController struct {
	service Authenticator
}

// NewAuthController creates the auth controller.
func NewAuthController(service Authenticator) *AuthController {
	return &AuthController{service: service}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, token, err := ac.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondServiceError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"user": user, "token": token},
	})
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, token, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondServiceError(c, err, "User not found")
		return
	}

	respondOK(c, gin.H{"user": user, "token": token})
}

// Me handles GET /api/auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := ac.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "User not found")
		return
	}
	respondOK(c, user)
}
