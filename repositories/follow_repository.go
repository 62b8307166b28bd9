package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tweetapp/models"
)

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the edge with ON CONFLICT DO NOTHING, so a repeated
// follow succeeds silently instead of surfacing a duplicate-key error.
func (r *followRepository) Follow(whoID, whomID uint) error {
	follow := models.Follow{WhoID: whoID, WhomID: whomID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
}

// Unfollow deletes the edge if present. A missing edge is a no-op.
func (r *followRepository) Unfollow(whoID, whomID uint) error {
	return r.db.Where("who_id = ? AND whom_id = ?", whoID, whomID).Delete(&models.Follow{}).Error
}

func (r *followRepository) Followees(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Table("user").
		Joins("INNER JOIN follower ON follower.whom_id = \"user\".user_id").
		Where("follower.who_id = ?", userID).
		Order("\"user\".username ASC").
		Find(&users).Error
	return users, err
}

func (r *followRepository) Followers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Table("user").
		Joins("INNER JOIN follower ON follower.who_id = \"user\".user_id").
		Where("follower.whom_id = ?", userID).
		Order("\"user\".username ASC").
		Find(&users).Error
	return users, err
}

func (r *followRepository) IsFollowing(whoID, whomID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("who_id = ? AND whom_id = ?", whoID, whomID).
		Count(&count).Error
	return count > 0, err
}

// FolloweeIDs returns just the ids of the users userID follows. The
// timeline assembler uses this to build its author filter.
func (r *followRepository) FolloweeIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).
		Where("who_id = ?", userID).
		Pluck("whom_id", &ids).Error
	return ids, err
}
