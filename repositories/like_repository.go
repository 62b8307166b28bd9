package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tweetapp/models"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Like records the (user, message) pair with ON CONFLICT DO NOTHING.
// Liking an already-liked message succeeds silently.
func (r *likeRepository) Like(userID, messageID uint) error {
	like := models.Like{MessageID: messageID, UserID: userID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
}

// Unlike deletes the pair if present. A missing row is a no-op.
func (r *likeRepository) Unlike(userID, messageID uint) error {
	return r.db.Where("message_id = ? AND user_id = ?", messageID, userID).Delete(&models.Like{}).Error
}

func (r *likeRepository) CountFor(messageID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("message_id = ?", messageID).Count(&count).Error
	return count, err
}

func (r *likeRepository) HasLiked(userID, messageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Count(&count).Error
	return count > 0, err
}

// CountsFor returns like counts for a batch of messages in one query.
// Messages with no likes are absent from the result map.
func (r *likeRepository) CountsFor(messageIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(messageIDs))
	if len(messageIDs) == 0 {
		return counts, nil
	}

	type row struct {
		MessageID uint
		Total     int64
	}
	var rows []row
	err := r.db.Model(&models.Like{}).
		Select("message_id, COUNT(*) AS total").
		Where("message_id IN ?", messageIDs).
		Group("message_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		counts[rw.MessageID] = rw.Total
	}
	return counts, nil
}

// LikedSet returns which of the given messages userID has liked.
func (r *likeRepository) LikedSet(userID uint, messageIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(messageIDs))
	if len(messageIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND message_id IN ?", userID, messageIDs).
		Pluck("message_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
