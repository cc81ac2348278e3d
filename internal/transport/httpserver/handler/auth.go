package handler

import (
	"net/http"
	"time"

	admindomain "church-app-go/internal/domain/admin"
	"church-app-go/internal/transport/httpserver/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type accountResponse struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.failDecode(w, "auth.login", err)
		return
	}

	session, err := h.Admin.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, "auth.login", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.Cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.opts.Cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	writeSuccess(w, http.StatusOK, "Login successful", envelope{"user": toAccountResponse(session.Account)})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.Cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	writeSuccess(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.failDecode(w, "auth.forgot_password", err)
		return
	}
	if err := h.Admin.ForgotPassword(r.Context(), req.Email); err != nil {
		h.fail(w, "auth.forgot_password", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Password reset email sent", nil)
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.failDecode(w, "auth.reset_password", err)
		return
	}
	if err := h.Admin.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		h.fail(w, "auth.reset_password", err)
		return
	}
	writeSuccess(w, http.StatusOK, "Password has been reset successfully", nil)
}

func (h *Handlers) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req admindomain.CreateInput
	if err := decodeJSON(r, &req); err != nil {
		h.failDecode(w, "auth.create_admin", err)
		return
	}

	account, err := h.Admin.CreateAdmin(r.Context(), req)
	if err != nil {
		h.fail(w, "auth.create_admin", err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Success", envelope{"user": toAccountResponse(account)})
}

func (h *Handlers) CheckAuth(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "Invalid token")
		return
	}
	writeSuccess(w, http.StatusOK, "Authorized admin user", envelope{"user": toAccountResponse(account)})
}

func toAccountResponse(a *admindomain.Account) accountResponse {
	return accountResponse{ID: a.ID, UserName: a.UserName, Email: a.Email, Role: a.Role}
}
