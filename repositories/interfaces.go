package repositories

import (
	"errors"
	"time"

	"tweetapp/models"
)

var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmptyContent is returned when a message body is blank or
	// whitespace-only. The check runs before any write.
	ErrEmptyContent = errors.New("message content is empty")
)

type UserRepository interface {
	Create(user *models.User) error
	FindByUsername(username string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Count() (int64, error)
}

type FollowRepository interface {
	Follow(whoID, whomID uint) error
	Unfollow(whoID, whomID uint) error
	Followees(userID uint) ([]models.User, error)
	Followers(userID uint) ([]models.User, error)
	IsFollowing(whoID, whomID uint) (bool, error)
	FolloweeIDs(userID uint) ([]uint, error)
}

type MessageRepository interface {
	Create(authorID uint, content string) (*models.Message, error)
	ByID(id uint) (*models.Message, error)
	ByAuthor(authorID uint) ([]models.Message, error)
	ByAuthors(authorIDs []uint, limit, offset int) ([]models.Message, error)
	ByAuthorsBefore(authorIDs []uint, before time.Time, beforeID uint, limit int) ([]models.Message, error)
}

type LikeRepository interface {
	Like(userID, messageID uint) error
	Unlike(userID, messageID uint) error
	CountFor(messageID uint) (int64, error)
	HasLiked(userID, messageID uint) (bool, error)
	CountsFor(messageIDs []uint) (map[uint]int64, error)
	LikedSet(userID uint, messageIDs []uint) (map[uint]bool, error)
}
