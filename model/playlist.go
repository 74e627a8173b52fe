package model

import "time"

// Playlist represents a named, user-owned collection of tracks.
type Playlist struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlaylistTrack 表示播放列表与曲目的多对多关联记录
// (playlist_id, track_id) 唯一，重复添加会被拒绝
type PlaylistTrack struct {
	PlaylistID int64     `json:"playlist_id"`
	TrackID    int64     `json:"track_id"`
	Position   int       `json:"position"` // insertion order within the playlist
	CreatedAt  time.Time `json:"created_at"`
}

// PlaylistWithTracks 包含播放列表信息及其解析出的曲目
type PlaylistWithTracks struct {
	Playlist
	Tracks []*Track `json:"tracks"`
}
