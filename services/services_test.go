package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tweetapp/models"
	"tweetapp/repositories"
)

type testEnv struct {
	db       *gorm.DB
	users    repositories.UserRepository
	follows  repositories.FollowRepository
	messages repositories.MessageRepository
	likes    repositories.LikeRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Follow{},
		&models.Like{},
	))

	return &testEnv{
		db:       db,
		users:    repositories.NewUserRepository(db),
		follows:  repositories.NewFollowRepository(db),
		messages: repositories.NewMessageRepository(db),
		likes:    repositories.NewLikeRepository(db),
	}
}

func (e *testEnv) timeline() *TimelineService {
	return NewTimelineService(e.users, e.follows, e.messages, e.likes)
}

func registerUser(t *testing.T, svc *UserService, username string) *models.User {
	t.Helper()

	user, err := svc.Register(username, username+"@example.com", "secret-"+username)
	require.NoError(t, err)
	return user
}
