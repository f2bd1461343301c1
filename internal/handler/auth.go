package handler

import (
	"net/http"
	"time"

	"energen/internal/dto"
	"energen/internal/middleware"
	"energen/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Signup godoc
// @Summary Alta de cuenta
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Email y contraseña"
// @Success 201 {object} dto.SignupResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Login de usuario
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	expira := time.Now()
	if claims.ExpiresAt != nil {
		expira = claims.ExpiresAt.Time
	}
	if err := h.svc.Logout(c.Request.Context(), claims.UUID(), claims.ID, claims.SesionID, expira); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.svc.Perfil(c.Request.Context(), middleware.GetClaims(c).UUID())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Preferencias ─────────────────────────────────────────────────────────────

// Preferencias godoc
// @Summary Guarda tema y/o última vista
// @Tags preferencias
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.PreferenciasRequest true "Preferencias"
// @Success 200 {object} dto.UsuarioResponse
// @Router /v1/preferencias [put]
func (h *AuthHandler) Preferencias(c *gin.Context) {
	var req dto.PreferenciasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPreferencias(c.Request.Context(), middleware.GetClaims(c).UUID(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) AlternarTema(c *gin.Context) {
	resp, err := h.svc.AlternarTema(c.Request.Context(), middleware.GetClaims(c).UUID())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
