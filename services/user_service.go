package services

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"tweetapp/database"
	"tweetapp/models"
	"tweetapp/monitoring"
	"tweetapp/repositories"
)

var (
	// ErrDuplicateIdentity means the username or email is already taken.
	ErrDuplicateIdentity = errors.New("username or email already exists")
	// ErrInvalidCredentials covers both unknown username and wrong
	// password, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService owns registration and authentication.
type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register hashes the password and inserts the user in a single write.
// Uniqueness is enforced by the database constraint at insert time, not
// by a pre-check, so concurrent registrations cannot race past it.
func (s *UserService) Register(username, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hash),
		JoinedAt:     time.Now().UTC(),
	}
	if err := s.users.Create(&user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}

	logrus.WithField("username", user.Username).Info("User registered")
	monitoring.RegisterSuccess.Inc()
	return &user, nil
}

// Authenticate looks the user up by username and compares the bcrypt
// hash. bcrypt's comparison is constant-time.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			monitoring.LoginFailure.WithLabelValues("unknown_user").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		monitoring.LoginFailure.WithLabelValues("bad_password").Inc()
		return nil, ErrInvalidCredentials
	}

	monitoring.LoginSuccess.Inc()
	return user, nil
}
