package model

import "time"

// Like marks a track as a favorite of a user. Presence of the row means
// "liked"; there is no soft-delete state.
type Like struct {
	UserID    int64     `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	TrackID   int64     `json:"track_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定GORM表名
func (Like) TableName() string {
	return "likes"
}
