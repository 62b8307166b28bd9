package services

import (
	"errors"

	"github.com/sirupsen/logrus"

	"tweetapp/models"
	"tweetapp/monitoring"
	"tweetapp/repositories"
)

// ErrSelfFollow is returned when a user tries to follow themselves.
// The storage layer permits the edge structurally; the rejection is a
// policy decision made here.
var ErrSelfFollow = errors.New("cannot follow yourself")

// SocialService owns the follow graph operations.
type SocialService struct {
	follows repositories.FollowRepository
}

func NewSocialService(follows repositories.FollowRepository) *SocialService {
	return &SocialService{follows: follows}
}

// Follow creates the edge who→whom. Repeated follows succeed silently.
func (s *SocialService) Follow(who, whom *models.User) error {
	if who.ID == whom.ID {
		return ErrSelfFollow
	}
	if err := s.follows.Follow(who.ID, whom.ID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"who":  who.Username,
		"whom": whom.Username,
	}).Info("Follow recorded")
	monitoring.FollowsRecorded.Inc()
	return nil
}

// Unfollow removes the edge if present; removing a missing edge is a
// silent no-op.
func (s *SocialService) Unfollow(who, whom *models.User) error {
	return s.follows.Unfollow(who.ID, whom.ID)
}

func (s *SocialService) Followees(user *models.User) ([]models.User, error) {
	return s.follows.Followees(user.ID)
}

func (s *SocialService) Followers(user *models.User) ([]models.User, error) {
	return s.follows.Followers(user.ID)
}

func (s *SocialService) IsFollowing(who, whom *models.User) (bool, error) {
	return s.follows.IsFollowing(who.ID, whom.ID)
}
