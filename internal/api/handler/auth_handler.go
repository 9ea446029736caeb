package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/catalogshop/catalog-api/internal/api/metrics"
	"github.com/catalogshop/catalog-api/internal/core/domain"
	"github.com/catalogshop/catalog-api/internal/core/ports"
)

type AuthHandler struct {
	session ports.AuthSession
}

func NewAuthHandler(session ports.AuthSession) *AuthHandler {
	return &AuthHandler{session: session}
}

// Login authenticates a user and returns a signed bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  domain.LoginResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.session.Issue(c.Request().Context(), domain.Credential{Username: req.Username, Password: req.Password})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, res)
}
