package controllers

import (
	"net/http"

	"profiles-feed-be/internal/models"
	"profiles-feed-be/internal/service"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// GetMe handles GET /users/me
func (uc *UserController) GetMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := uc.userService.GetSelf(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe handles PATCH /users/me
func (uc *UserController) UpdateMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if !bindJSON(c, &req, true) {
		return
	}

	uc.update(c, userID, &req)
}

// ReplaceMe handles PUT /users/me
func (uc *UserController) ReplaceMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.ReplaceUserRequest
	if !bindJSON(c, &req, false) {
		return
	}

	uc.update(c, userID, req.AsUpdate())
}

func (uc *UserController) update(c *gin.Context, userID string, req *models.UpdateUserRequest) {
	user, err := uc.userService.UpdateSelf(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
