package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servicedesk/atendimentos/internal/core/domain"
	"github.com/servicedesk/atendimentos/internal/core/ports"
)

// AuthHandler serves the credential endpoints: seed admin, login and
// password change.
type AuthHandler struct {
	users ports.UserService
}

func NewAuthHandler(users ports.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// BootstrapAdmin creates the seed admin account on first use.
//
// @Summary      Create the initial admin account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  bootstrapResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/criar-admin-inicial [get]
func (h *AuthHandler) BootstrapAdmin(c echo.Context) error {
	created, err := h.users.BootstrapAdmin(c.Request().Context())
	if err != nil {
		return err
	}

	msg := "Admin já existe"
	if created {
		msg = "Admin criado com sucesso (usuário: admin, senha: 123)"
	}
	return c.JSON(http.StatusOK, bootstrapResponse{Message: msg})
}

// Login checks a user's credentials and returns their role.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload inválido")
	}

	user, err := h.users.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusUnauthorized, "Usuário não encontrado")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "Senha incorreta")
		}
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Status: "ok",
		User:   user.Name,
		Role:   user.Role,
	})
}

// ChangePassword rotates the caller's password after checking the current one.
//
// @Summary      Change own password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/minha-senha [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "payload inválido")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.ChangePassword(c.Request().Context(), req.Username, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Msg: "Senha alterada com sucesso"})
}
