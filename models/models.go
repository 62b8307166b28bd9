package models

import "time"

// User represents a registered account.
type User struct {
	ID           uint      `gorm:"primaryKey;column:user_id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null"`
	Email        string    `gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string    `gorm:"column:pw_hash;size:60;not null"`
	JoinedAt     time.Time `gorm:"column:joined_at;not null"`
}

// TableName overrides the table name used by GORM
func (User) TableName() string {
	return "user"
}

// Message represents a single post. PublishedAt is stamped by the
// message repository at insert time and never updated afterwards.
type Message struct {
	ID          uint      `gorm:"primaryKey;column:message_id"`
	AuthorID    uint      `gorm:"column:author_id;index;not null"`
	Content     string    `gorm:"column:text;type:text;not null"`
	PublishedAt time.Time `gorm:"column:pub_date;index;not null"`

	Author User `gorm:"foreignKey:AuthorID"`
}

// TableName overrides the table name used by GORM
func (Message) TableName() string {
	return "message"
}

// Follow is a directed edge: who follows whom. The composite primary
// key keeps the pair unique, which is what makes Follow idempotent.
type Follow struct {
	WhoID  uint `gorm:"primaryKey;column:who_id;autoIncrement:false"`
	WhomID uint `gorm:"primaryKey;column:whom_id;autoIncrement:false"`
}

// TableName overrides the table name used by GORM
func (Follow) TableName() string {
	return "follower"
}

// Like marks that a user liked a message. Unlike deletes the row; no
// history is kept.
type Like struct {
	MessageID uint `gorm:"primaryKey;column:message_id;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;column:user_id;autoIncrement:false"`
}

// TableName overrides the table name used by GORM
func (Like) TableName() string {
	return "likes"
}
