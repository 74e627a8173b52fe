package repository

import (
	"database/sql"
	"fmt"

	"sonicstream/model"
)

const (
	catalogLimit  = 20
	searchLimit   = 10
	trendingLimit = 5
)

// TrackRepository defines the interface for track catalog operations.
type TrackRepository interface {
	GetCatalog() ([]*model.Track, error)
	SearchByTitle(query string) ([]*model.Track, error)
	GetTrending() ([]*model.Track, error)
	GetTrackByID(id int64) (*model.Track, error)
	CreateTrack(track *model.Track) (int64, error)
}

// mysqlTrackRepository implements TrackRepository for MySQL.
type mysqlTrackRepository struct {
	db *sql.DB
}

// NewMySQLTrackRepository creates a new mysqlTrackRepository.
func NewMySQLTrackRepository(db *sql.DB) TrackRepository {
	return &mysqlTrackRepository{db: db}
}

const trackColumns = `t.id, t.title, t.artist, t.audio_url, t.cover_url, t.duration, t.category_id, t.created_at`

// scanTrack reads one track row, optionally joined with its category name.
func scanTrack(row interface{ Scan(...interface{}) error }, withCategory bool) (*model.Track, error) {
	track := &model.Track{}
	var artist, coverURL sql.NullString
	var duration sql.NullFloat64
	var categoryID sql.NullInt64

	dest := []interface{}{&track.ID, &track.Title, &artist, &track.AudioURL, &coverURL, &duration, &categoryID, &track.CreatedAt}

	var categoryName sql.NullString
	if withCategory {
		dest = append(dest, &categoryName)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	track.Artist = artist.String
	track.CoverURL = coverURL.String
	track.Duration = duration.Float64
	if categoryID.Valid {
		id := categoryID.Int64
		track.CategoryID = &id
	}
	if withCategory && categoryID.Valid && categoryName.Valid {
		track.Category = &model.Category{ID: categoryID.Int64, Name: categoryName.String}
	}
	return track, nil
}

// GetCatalog 返回目录首页的曲目（最多20条），并内嵌分类名称
func (r *mysqlTrackRepository) GetCatalog() ([]*model.Track, error) {
	query := fmt.Sprintf(`SELECT %s, c.name FROM tracks t
	           LEFT JOIN categories c ON t.category_id = c.id
	           ORDER BY t.id LIMIT %d`, trackColumns, catalogLimit)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query track catalog: %w", err)
	}
	defer rows.Close()

	tracks := make([]*model.Track, 0)
	for rows.Next() {
		track, err := scanTrack(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track in GetCatalog: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetCatalog: %w", err)
	}
	return tracks, nil
}

// SearchByTitle 对标题做大小写不敏感的子串匹配（最多10条）
// 注意：不搜索 artist 字段
func (r *mysqlTrackRepository) SearchByTitle(query string) ([]*model.Track, error) {
	// MySQL的LIKE在默认排序规则下即大小写不敏感
	q := fmt.Sprintf(`SELECT %s FROM tracks t WHERE t.title LIKE ? LIMIT %d`, trackColumns, searchLimit)
	rows, err := r.db.Query(q, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search tracks for %q: %w", query, err)
	}
	defer rows.Close()

	tracks := make([]*model.Track, 0)
	for rows.Next() {
		track, err := scanTrack(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track in SearchByTitle: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in SearchByTitle: %w", err)
	}
	return tracks, nil
}

// GetTrending 返回最近入库的5首曲目
func (r *mysqlTrackRepository) GetTrending() ([]*model.Track, error) {
	query := fmt.Sprintf(`SELECT %s FROM tracks t ORDER BY t.created_at DESC LIMIT %d`, trackColumns, trendingLimit)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending tracks: %w", err)
	}
	defer rows.Close()

	tracks := make([]*model.Track, 0)
	for rows.Next() {
		track, err := scanTrack(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track in GetTrending: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetTrending: %w", err)
	}
	return tracks, nil
}

// GetTrackByID retrieves a track by its ID.
func (r *mysqlTrackRepository) GetTrackByID(id int64) (*model.Track, error) {
	query := fmt.Sprintf(`SELECT %s FROM tracks t WHERE t.id = ?`, trackColumns)
	row := r.db.QueryRow(query, id)

	track, err := scanTrack(row, false)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Track not found
		}
		return nil, fmt.Errorf("failed to scan track by ID %d: %w", id, err)
	}
	return track, nil
}

// CreateTrack adds a new track to the catalog.
func (r *mysqlTrackRepository) CreateTrack(track *model.Track) (int64, error) {
	query := `INSERT INTO tracks (title, artist, audio_url, cover_url, duration, category_id)
	           VALUES (?, ?, ?, ?, ?, ?)`
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateTrack: %w", err)
	}
	defer stmt.Close()

	var categoryID interface{}
	if track.CategoryID != nil {
		categoryID = *track.CategoryID
	}

	res, err := stmt.Exec(track.Title, track.Artist, track.AudioURL, track.CoverURL, track.Duration, categoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateTrack: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateTrack: %w", err)
	}
	return id, nil
}
