package handlers

import (
	"net/http"

	"hairbook/models"
	"hairbook/services/user"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

// SignUpHandler creates an account and returns it with an access token.
func (h *AuthHandler) SignUpHandler(c *gin.Context) {
	var req models.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Users.SignUp(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SignOutHandler revokes the token the request was made with.
func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	if err := h.Users.SignOut(c.Request.Context(), identity.Token); err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out successfully"})
}

func (h *AuthHandler) GetDetailsHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	resp, err := h.Users.Details(c.Request.Context(), identity)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
