package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"tweetapp/auth"
	"tweetapp/dto"
	"tweetapp/models"
	"tweetapp/repositories"
	"tweetapp/services"
)

// UserHandler handles registration, login and the follow graph.
type UserHandler struct {
	sessions *auth.Sessions
	userSvc  *services.UserService
	social   *services.SocialService
	users    repositories.UserRepository
}

func NewUserHandler(
	sessions *auth.Sessions,
	userSvc *services.UserService,
	social *services.SocialService,
	users repositories.UserRepository,
) *UserHandler {
	return &UserHandler{sessions: sessions, userSvc: userSvc, social: social, users: users}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	user, err := h.userSvc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateIdentity) {
			writeError(w, http.StatusConflict, "username or email already taken")
			return
		}
		logrus.WithError(err).Error("Registration failed")
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": dto.NewUserResponse(user)})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.userSvc.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "username or password is wrong")
			return
		}
		logrus.WithError(err).Error("Login failed")
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	if err := h.sessions.SignIn(w, r, user.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": dto.NewUserResponse(user)})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to end session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Follow handles POST (follow) and DELETE (unfollow) on
// /users/{username}/follow. Both directions are idempotent.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	viewer := auth.Viewer(r.Context())
	target, ok := h.userOr404(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPost:
		if err := h.social.Follow(viewer, target); err != nil {
			if errors.Is(err, services.ErrSelfFollow) {
				writeError(w, http.StatusBadRequest, "cannot follow yourself")
				return
			}
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
	case http.MethodDelete:
		if err := h.social.Unfollow(viewer, target); err != nil {
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) Following(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userOr404(w, r)
	if !ok {
		return
	}
	followees, err := h.social.Followees(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"follows": lo.Map(followees, func(u models.User, _ int) string { return u.Username }),
	})
}

func (h *UserHandler) Followers(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userOr404(w, r)
	if !ok {
		return
	}
	followers, err := h.social.Followers(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"followers": lo.Map(followers, func(u models.User, _ int) string { return u.Username }),
	})
}

func (h *UserHandler) userOr404(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	username := mux.Vars(r)["username"]
	user, err := h.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
		} else {
			writeError(w, http.StatusInternalServerError, "database error")
		}
		return nil, false
	}
	return user, true
}
