package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/kanbanhq/cardboard/internal/application/auth"
	"github.com/kanbanhq/cardboard/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	login          *auth.Login
	signup         *auth.Signup
	forgotPassword *auth.ForgotPassword
	resetPassword  *auth.ResetPassword
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewAuthHandler(login *auth.Login, signup *auth.Signup, forgotPassword *auth.ForgotPassword, resetPassword *auth.ResetPassword, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		login:          login,
		signup:         signup,
		forgotPassword: forgotPassword,
		resetPassword:  resetPassword,
		validate:       validator.New(),
		log:            log,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid body")
		return
	}
	// Required-field checks live in the use case: missing credentials
	// answer 404 there, not a validator 400.
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    SanitizeEmail(body.Email),
		Password: SanitizePassword(body.Password),
	})
	if err != nil {
		AuditLog(h.log, r, "user.login", body.Email, "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		respondError(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "user.login", result.User.Email, result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"token": result.Token,
		"data":  map[string]interface{}{"user": serializeUser(result.User)},
	})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name            string `json:"name" validate:"required"`
		Email           string `json:"email" validate:"required"`
		Password        string `json:"password" validate:"required"`
		PasswordConfirm string `json:"passwordConfirm" validate:"required"`
		Role            string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "please fill name, email, password and passwordConfirm")
		return
	}
	result, err := h.signup.Execute(r.Context(), auth.SignupInput{
		Name:            body.Name,
		Email:           SanitizeEmail(body.Email),
		Password:        SanitizePassword(body.Password),
		PasswordConfirm: SanitizePassword(body.PasswordConfirm),
		Role:            body.Role,
	})
	if err != nil {
		AuditLog(h.log, r, "user.signup", body.Email, "", false, err.Error())
		middleware.RecordAuthAttempt("signup", false)
		respondError(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "user.signup", result.User.Email, result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("signup", true)
	writeSuccess(w, http.StatusCreated, map[string]interface{}{
		"token": result.Token,
		"data":  map[string]interface{}{"user": serializeUser(result.User)},
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid body")
		return
	}
	result, err := h.forgotPassword.Execute(r.Context(), auth.ForgotPasswordInput{
		Email: SanitizeEmail(body.Email),
	})
	if err != nil {
		AuditLog(h.log, r, "user.forgot_password", body.Email, "", false, err.Error())
		middleware.RecordAuthAttempt("forgot_password", false)
		respondError(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "user.forgot_password", body.Email, "", true, "")
	middleware.RecordAuthAttempt("forgot_password", true)
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"message": result.Message,
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email           string `json:"email"`
		Code            string `json:"code"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"passwordConfirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid body")
		return
	}
	result, err := h.resetPassword.Execute(r.Context(), auth.ResetPasswordInput{
		Email:           SanitizeEmail(body.Email),
		Code:            body.Code,
		Password:        SanitizePassword(body.Password),
		PasswordConfirm: SanitizePassword(body.PasswordConfirm),
	})
	if err != nil {
		AuditLog(h.log, r, "user.reset_password", body.Email, "", false, err.Error())
		middleware.RecordAuthAttempt("reset_password", false)
		respondError(w, h.log, err)
		return
	}
	AuditLog(h.log, r, "user.reset_password", result.User.Email, result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("reset_password", true)
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"token": result.Token,
		"data":  map[string]interface{}{"user": serializeUser(result.User)},
	})
}
