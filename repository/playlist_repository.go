package repository

import (
	"database/sql"
	"fmt"

	"sonicstream/model"
)

// PlaylistRepository defines the interface for playlist data operations.
type PlaylistRepository interface {
	CreatePlaylist(playlist *model.Playlist) (*model.Playlist, error)
	GetPlaylistsByUserID(userID int64) ([]*model.Playlist, error)
	GetPlaylistByID(id int64) (*model.Playlist, error)
	GetPlaylistTracks(playlistID int64) ([]*model.Track, error)
	AddTrackToPlaylist(playlistID, trackID int64) error
}

// mysqlPlaylistRepository implements PlaylistRepository for MySQL.
type mysqlPlaylistRepository struct {
	db *sql.DB
}

// NewMySQLPlaylistRepository creates a new mysqlPlaylistRepository.
func NewMySQLPlaylistRepository(db *sql.DB) PlaylistRepository {
	return &mysqlPlaylistRepository{db: db}
}

// CreatePlaylist adds a new playlist and returns the created row.
func (r *mysqlPlaylistRepository) CreatePlaylist(playlist *model.Playlist) (*model.Playlist, error) {
	query := `INSERT INTO playlists (user_id, name, description) VALUES (?, ?, ?)`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement for CreatePlaylist: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(playlist.UserID, playlist.Name, playlist.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to execute CreatePlaylist: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for CreatePlaylist: %w", err)
	}

	// 回读整行，拿到数据库生成的 created_at
	return r.GetPlaylistByID(id)
}

// GetPlaylistsByUserID 返回用户的全部播放列表，按创建时间倒序
func (r *mysqlPlaylistRepository) GetPlaylistsByUserID(userID int64) ([]*model.Playlist, error) {
	query := `SELECT id, user_id, name, description, created_at FROM playlists
	           WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists for user ID %d: %w", userID, err)
	}
	defer rows.Close()

	playlists := make([]*model.Playlist, 0)
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist in GetPlaylistsByUserID: %w", err)
		}
		playlists = append(playlists, playlist)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetPlaylistsByUserID: %w", err)
	}
	return playlists, nil
}

// GetPlaylistByID retrieves a playlist by its ID.
func (r *mysqlPlaylistRepository) GetPlaylistByID(id int64) (*model.Playlist, error) {
	query := `SELECT id, user_id, name, description, created_at FROM playlists WHERE id = ?`
	row := r.db.QueryRow(query, id)

	playlist, err := scanPlaylist(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("playlist %d not found", id)
		}
		return nil, fmt.Errorf("failed to scan playlist by ID %d: %w", id, err)
	}
	return playlist, nil
}

// GetPlaylistTracks 通过关联表解析播放列表中的曲目，按插入位置排序
func (r *mysqlPlaylistRepository) GetPlaylistTracks(playlistID int64) ([]*model.Track, error) {
	query := fmt.Sprintf(`SELECT %s FROM playlist_tracks pt
	           JOIN tracks t ON pt.track_id = t.id
	           WHERE pt.playlist_id = ? ORDER BY pt.position`, trackColumns)
	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks for playlist %d: %w", playlistID, err)
	}
	defer rows.Close()

	tracks := make([]*model.Track, 0)
	for rows.Next() {
		track, err := scanTrack(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track in GetPlaylistTracks: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetPlaylistTracks: %w", err)
	}
	return tracks, nil
}

// AddTrackToPlaylist inserts into the junction table.
// 重复的 (playlist_id, track_id) 返回 ErrDuplicateTrack
func (r *mysqlPlaylistRepository) AddTrackToPlaylist(playlistID, trackID int64) error {
	// position 取当前最大值加1，保证稳定的插入顺序
	query := `INSERT INTO playlist_tracks (playlist_id, track_id, position)
	           SELECT ?, ?, COALESCE(MAX(position), -1) + 1 FROM playlist_tracks WHERE playlist_id = ?`
	_, err := r.db.Exec(query, playlistID, trackID, playlistID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateTrack
		}
		return fmt.Errorf("failed to add track %d to playlist %d: %w", trackID, playlistID, err)
	}
	return nil
}

func scanPlaylist(row interface{ Scan(...interface{}) error }) (*model.Playlist, error) {
	playlist := &model.Playlist{}
	var description sql.NullString
	if err := row.Scan(&playlist.ID, &playlist.UserID, &playlist.Name, &description, &playlist.CreatedAt); err != nil {
		return nil, err
	}
	playlist.Description = description.String
	return playlist, nil
}
