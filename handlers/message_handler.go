package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"tweetapp/auth"
	"tweetapp/dto"
	"tweetapp/models"
	"tweetapp/monitoring"
	"tweetapp/repositories"
)

// MessageHandler handles posting, reading and liking messages.
type MessageHandler struct {
	messages repositories.MessageRepository
	likes    repositories.LikeRepository
	users    repositories.UserRepository
}

func NewMessageHandler(
	messages repositories.MessageRepository,
	likes repositories.LikeRepository,
	users repositories.UserRepository,
) *MessageHandler {
	return &MessageHandler{messages: messages, likes: likes, users: users}
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer := auth.Viewer(r.Context())

	var req dto.CreateMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.messages.Create(viewer.ID, req.Content)
	if err != nil {
		if errors.Is(err, repositories.ErrEmptyContent) {
			writeError(w, http.StatusBadRequest, "message content is empty")
			return
		}
		logrus.WithError(err).Error("Failed to post message")
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	message.Author = *viewer

	logrus.WithFields(logrus.Fields{
		"username":   viewer.Username,
		"message_id": message.ID,
	}).Info("Message posted")
	monitoring.MessagesPosted.Inc()

	writeJSON(w, http.StatusCreated, dto.NewMessageResponse(message))
}

func (h *MessageHandler) ByID(w http.ResponseWriter, r *http.Request) {
	message, ok := h.messageOr404(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.NewMessageResponse(message))
}

// ByUser returns a user's own posts, newest first.
func (h *MessageHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	user, err := h.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
		} else {
			writeError(w, http.StatusInternalServerError, "database error")
		}
		return
	}

	messages, err := h.messages.ByAuthor(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"messages": lo.Map(messages, func(m models.Message, _ int) dto.MessageResponse {
			return dto.NewMessageResponse(&m)
		}),
	})
}

// Like handles POST (like) and DELETE (unlike) on
// /messages/{id}/like. Both directions are idempotent.
func (h *MessageHandler) Like(w http.ResponseWriter, r *http.Request) {
	viewer := auth.Viewer(r.Context())
	message, ok := h.messageOr404(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPost:
		if err := h.likes.Like(viewer.ID, message.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		monitoring.LikesRecorded.Inc()
	case http.MethodDelete:
		if err := h.likes.Unlike(viewer.ID, message.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MessageHandler) messageOr404(w http.ResponseWriter, r *http.Request) (*models.Message, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return nil, false
	}
	message, err := h.messages.ByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, http.StatusNotFound, "message not found")
		} else {
			writeError(w, http.StatusInternalServerError, "database error")
		}
		return nil, false
	}
	return message, true
}
