package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/medisync/internal/auth"
	"github.com/rogerio-castellano/medisync/internal/http/flash"
	"github.com/rogerio-castellano/medisync/internal/http/views"
	"github.com/rogerio-castellano/medisync/internal/logger"
	"go.uber.org/zap"
)

// IndexHandler godoc
// @Summary Landing page
// @Description Redirects to the dashboard when a session is active, otherwise to the login page
// @Tags auth
// @Success 302
// @Router / [get]
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessions.FromRequest(r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// LoginPageHandler godoc
// @Summary Login form
// @Tags auth
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /login [get]
func (s *Server) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessions.FromRequest(r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	s.render(w, r, views.Login, s.page(w, r, "Log in", ""))
}

// LoginHandler godoc
// @Summary Submit credentials
// @Description Checks the administrator set and then the users table. Sets the session cookie on success.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 303 "Redirect to /dashboard, or back to /login with an error"
// @Failure 429 {string} string "Too many login attempts"
// @Router /auth [post]
// @Router /login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/login", flash.Error, "Invalid credentials")
		return
	}

	username := r.PostFormValue("username")
	sess, err := s.authenticator.Authenticate(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		s.metrics.RecordLogin(false)
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Error("authentication failed", zap.String("username", username), zap.Error(err))
			redirectWithFlash(w, r, "/login", flash.Error, "Error signing in, please try again")
			return
		}
		log.Info("invalid credentials", zap.String("username", username))
		redirectWithFlash(w, r, "/login", flash.Error, "Invalid credentials")
		return
	}

	token, sess, err := s.sessions.Issue(sess)
	if err != nil {
		log.Error("failed to issue session", zap.Error(err))
		redirectWithFlash(w, r, "/login", flash.Error, "Error signing in, please try again")
		return
	}

	s.metrics.RecordLogin(true)
	s.sessions.SetCookie(w, token, sess)
	log.Info("user logged in", zap.String("username", sess.Username))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// LogoutHandler godoc
// @Summary End the session
// @Description Revokes the session id and clears the cookie
// @Tags auth
// @Success 302 "Redirect to /login"
// @Router /logout [get]
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if sess, err := s.sessions.FromRequest(r); err == nil {
		if err := s.sessions.Revoke(r.Context(), sess); err != nil {
			logger.FromContext(r.Context()).Error("failed to revoke session", zap.Error(err))
		}
	}
	s.sessions.ClearCookie(w)
	flash.Add(w, r, flash.Info, "You have been logged out")
	http.Redirect(w, r, "/login", http.StatusFound)
}
