package controllers

import (
	"net/http"

	"profiles-feed-be/internal/models"
	"profiles-feed-be/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// CreateUser handles POST /users/create
func (ac *AuthController) CreateUser(c *gin.Context) {
	var req models.SignupRequest
	if !bindJSON(c, &req, false) {
		return
	}

	user, err := ac.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// CreateToken handles POST /users/token
func (ac *AuthController) CreateToken(c *gin.Context) {
	var req models.TokenRequest
	if !bindJSON(c, &req, false) {
		return
	}

	token, err := ac.authService.IssueToken(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, token)
}
