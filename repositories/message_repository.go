package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"tweetapp/models"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create stores a new message. The publish timestamp is stamped here,
// not supplied by the caller, so same-author messages order with
// insertion.
func (r *messageRepository) Create(authorID uint, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	message := models.Message{
		AuthorID:    authorID,
		Content:     content,
		PublishedAt: time.Now().UTC(),
	}
	if err := r.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Author").First(&message, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ByAuthor(authorID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("author_id = ?", authorID).
		Preload("Author").
		Order("pub_date DESC, message_id DESC").
		Find(&messages).Error
	return messages, err
}

// ByAuthors selects an offset page of messages across the given author
// set. The secondary order key on message_id keeps pagination
// deterministic when publish timestamps collide.
func (r *messageRepository) ByAuthors(authorIDs []uint, limit, offset int) ([]models.Message, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var messages []models.Message
	err := r.db.Where("author_id IN ?", authorIDs).
		Preload("Author").
		Order("pub_date DESC, message_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

// ByAuthorsBefore selects the page strictly older than the
// (before, beforeID) cursor. Keyset pagination keeps a paging session
// stable when new messages land between fetches.
func (r *messageRepository) ByAuthorsBefore(authorIDs []uint, before time.Time, beforeID uint, limit int) ([]models.Message, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var messages []models.Message
	err := r.db.Where("author_id IN ?", authorIDs).
		Where("pub_date < ? OR (pub_date = ? AND message_id < ?)", before, before, beforeID).
		Preload("Author").
		Order("pub_date DESC, message_id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
