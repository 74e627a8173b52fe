package repository

import (
	"fmt"

	"sonicstream/model"

	"gorm.io/gorm"
)

// LikeStatus 表示一次切换操作后的状态
type LikeStatus string

const (
	StatusLiked   LikeStatus = "liked"
	StatusUnliked LikeStatus = "unliked"
)

// LikeRepository defines the interface for like data operations.
type LikeRepository interface {
	ToggleLike(userID, trackID int64) (LikeStatus, error)
	GetLikedTracks(userID int64) ([]*model.Track, error)
}

// gormLikeRepository implements LikeRepository with GORM.
type gormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new gormLikeRepository.
func NewGormLikeRepository(db *gorm.DB) LikeRepository {
	return &gormLikeRepository{db: db}
}

// ToggleLike 先尝试删除，删到了就是取消点赞；没删到则插入
// 单次往返完成判定，避免读后写的竞态窗口；并发插入撞唯一键时同样按已点赞处理
func (r *gormLikeRepository) ToggleLike(userID, trackID int64) (LikeStatus, error) {
	res := r.db.Where("user_id = ? AND track_id = ?", userID, trackID).Delete(&model.Like{})
	if res.Error != nil {
		return "", fmt.Errorf("failed to delete like for user %d track %d: %w", userID, trackID, res.Error)
	}
	if res.RowsAffected > 0 {
		return StatusUnliked, nil
	}

	like := model.Like{UserID: userID, TrackID: trackID}
	if err := r.db.Create(&like).Error; err != nil {
		if isDuplicateKeyError(err) {
			// 并发切换的败者：行已经存在，等效于点赞成功
			return StatusLiked, nil
		}
		return "", fmt.Errorf("failed to insert like for user %d track %d: %w", userID, trackID, err)
	}
	return StatusLiked, nil
}

// GetLikedTracks 返回用户点赞过的曲目，按点赞时间倒序摊平
func (r *gormLikeRepository) GetLikedTracks(userID int64) ([]*model.Track, error) {
	tracks := make([]*model.Track, 0)
	err := r.db.
		Table("likes").
		Select("t.id, t.title, t.artist, t.audio_url, t.cover_url, t.duration, t.category_id, t.created_at").
		Joins("JOIN tracks t ON t.id = likes.track_id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Scan(&tracks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query liked tracks for user %d: %w", userID, err)
	}
	return tracks, nil
}
