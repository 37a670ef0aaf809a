package controller

import (
	"quizdeck_backend/internal/service"
	"quizdeck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Exchange the admin password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.authService.Login(req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, gin.H{"token": token})
}
