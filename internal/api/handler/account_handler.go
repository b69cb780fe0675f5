package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vidtube/account-service/internal/api/metrics"
	"github.com/vidtube/account-service/internal/core/domain"
	"github.com/vidtube/account-service/internal/core/ports"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

// AccountHandler exposes the authentication and profile endpoints.
type AccountHandler struct {
	sessions   ports.SessionService
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAccountHandler(sessions ports.SessionService, accessTTL, refreshTTL time.Duration) *AccountHandler {
	return &AccountHandler{
		sessions:   sessions,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register creates a new account from a multipart form.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullName    formData  string  true   "Display name"
// @Param        email       formData  string  true   "Email address"
// @Param        username    formData  string  true   "Unique username"
// @Param        password    formData  string  true   "Password (min 8 chars)"
// @Param        avatar      formData  file    true   "Avatar image"
// @Param        coverImage  formData  file    false  "Cover image"
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /users/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	avatar, closeAvatar, err := formUpload(c, "avatar")
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "avatar file is required")
	}
	defer closeAvatar()

	cover, closeCover, err := formUpload(c, "coverImage")
	if err == nil {
		defer closeCover()
	}

	user, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
		Avatar:     avatar,
		CoverImage: cover,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerResult(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusCreated, user, "user registered successfully")
}

// Login authenticates by username or email and opens a session.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /users/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username or email is required")
	}

	result, err := h.sessions.Login(c.Request().Context(), identifier, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.setAuthCookies(c, result.Tokens)
	return respond(c, http.StatusOK, loginResponse{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}, "user logged in successfully")
}

// Logout closes the current session and clears the auth cookies.
//
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  map[string]any
// @Router       /users/logout [post]
func (h *AccountHandler) Logout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.Request().Context(), userID); err != nil {
		return err
	}

	h.clearAuthCookies(c)
	return respond(c, http.StatusOK, nil, "user logged out successfully")
}

// Refresh exchanges a valid refresh token for a new token pair. The token is
// taken from the refresh cookie, with the request body as a fallback.
//
// @Summary      Refresh the session tokens
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  false  "Refresh token (fallback when no cookie)"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  map[string]any
// @Router       /users/refresh-token [post]
func (h *AccountHandler) Refresh(c echo.Context) error {
	raw := ""
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		raw = cookie.Value
	}
	if raw == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			raw = req.RefreshToken
		}
	}

	pair, err := h.sessions.Refresh(c.Request().Context(), raw)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues(refreshResult(err)).Inc()
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	h.setAuthCookies(c, *pair)
	return respond(c, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "access token refreshed")
}

// Me returns the authenticated user's sanitized profile.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  map[string]any
// @Router       /users/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.sessions.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "current user fetched successfully")
}

// ChangePassword verifies the old password and stores a new one.
//
// @Summary      Change the account password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Old and new password"
// @Success      200   {object}  apiResponse
// @Failure      401   {object}  map[string]any
// @Router       /users/change-password [put]
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "password changed successfully")
}

// UpdateProfile applies a partial profile update from a multipart form. Text
// fields and image files are all optional; omitted fields keep their current
// value.
//
// @Summary      Update the account profile
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        fullName    formData  string  false  "New display name"
// @Param        email       formData  string  false  "New email address"
// @Param        username    formData  string  false  "New username"
// @Param        avatar      formData  file    false  "New avatar image"
// @Param        coverImage  formData  file    false  "New cover image"
// @Success      200  {object}  apiResponse
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /users/update [patch]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateProfileInput{
		FullName: optional(req.FullName),
		Email:    optional(req.Email),
		Username: optional(req.Username),
	}

	if avatar, closeAvatar, err := formUpload(c, "avatar"); err == nil {
		defer closeAvatar()
		input.Avatar = avatar
	}
	if cover, closeCover, err := formUpload(c, "coverImage"); err == nil {
		defer closeCover()
		input.CoverImage = cover
	}

	user, err := h.sessions.UpdateProfile(c.Request().Context(), userID, input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "profile updated successfully")
}

// setAuthCookies attaches the access and refresh tokens as httpOnly cookies,
// scoped to the whole site. The cookies expire with their tokens.
func (h *AccountHandler) setAuthCookies(c echo.Context, pair ports.TokenPair) {
	c.SetCookie(authCookie(accessCookieName, pair.AccessToken, h.accessTTL))
	c.SetCookie(authCookie(refreshCookieName, pair.RefreshToken, h.refreshTTL))
}

func (h *AccountHandler) clearAuthCookies(c echo.Context) {
	c.SetCookie(authCookie(accessCookieName, "", -time.Hour))
	c.SetCookie(authCookie(refreshCookieName, "", -time.Hour))
}

func authCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// formUpload opens the named multipart file and wraps it as a storage upload.
// The returned closer must be called after the service has consumed the
// reader.
func formUpload(c echo.Context, field string) (*ports.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &ports.Upload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: contentType(fh),
		Size:        fh.Size,
	}, func() { _ = f.Close() }, nil
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// optional maps an empty form value to nil so the service treats it as
// "not provided" rather than "set to empty".
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func registerResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func refreshResult(err error) string {
	if errors.Is(err, domain.ErrUnauthorized) {
		return "unauthorized"
	}
	return "error"
}
