package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swiftroute/bus-ticketing-backend/internal/auth"
	"github.com/swiftroute/bus-ticketing-backend/internal/pkg/response"
	"github.com/swiftroute/bus-ticketing-backend/internal/user"
)

type Handler struct {
	service    user.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service user.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{service: service, jwtManager: jwtManager}
}

func (h *Handler) Register(c *gin.Context) {
	var body RegisterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	u, err := h.service.Register(c.Request.Context(), user.RegisterRequest{
		Email:    body.Email,
		Password: body.Password,
		FullName: body.FullName,
		Phone:    body.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewUserResponse(u))
}

func (h *Handler) Login(c *gin.Context) {
	var body LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	u, err := h.service.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		User:        NewUserResponse(u),
	})
}

func (h *Handler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}
