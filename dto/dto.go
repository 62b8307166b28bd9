package dto

import (
	"time"

	"tweetapp/models"
	"tweetapp/services"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=1"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateMessageRequest struct {
	Content string `json:"content"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}

type MessageResponse struct {
	ID       uint   `json:"id"`
	Content  string `json:"content"`
	Username string `json:"username"`
	PubDate  int64  `json:"pub_date"`
}

func NewMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:       m.ID,
		Content:  m.Content,
		Username: m.Author.Username,
		PubDate:  m.PublishedAt.Unix(),
	}
}

type TimelineEntryResponse struct {
	MessageResponse
	LikeCount     int64 `json:"like_count"`
	LikedByViewer bool  `json:"liked_by_viewer"`
}

func NewTimelineEntryResponse(e services.TimelineEntry) TimelineEntryResponse {
	return TimelineEntryResponse{
		MessageResponse: NewMessageResponse(&e.Message),
		LikeCount:       e.LikeCount,
		LikedByViewer:   e.LikedByViewer,
	}
}

// TimelineResponse wraps a cursor-paged timeline. NextCursor is empty
// once the feed is exhausted.
type TimelineResponse struct {
	Messages   []TimelineEntryResponse `json:"messages"`
	NextCursor string                  `json:"next_cursor,omitempty"`
}

// LoadMoreEntry is the incremental-fetch wire shape existing clients
// expect: a map from message id to this object.
type LoadMoreEntry struct {
	Content  string `json:"content"`
	Username string `json:"username"`
	Time     string `json:"time"`
	ID       uint   `json:"id"`
	Like     int64  `json:"like"`
	Liker    bool   `json:"liker"`
}

func NewLoadMoreEntry(e services.TimelineEntry) LoadMoreEntry {
	return LoadMoreEntry{
		Content:  e.Message.Content,
		Username: e.Message.Author.Username,
		Time:     e.Message.PublishedAt.Format(time.RFC3339),
		ID:       e.Message.ID,
		Like:     e.LikeCount,
		Liker:    e.LikedByViewer,
	}
}
