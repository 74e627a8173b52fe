package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrDuplicateTrack 表示 (playlist_id, track_id) 已存在
	ErrDuplicateTrack = errors.New("track already in playlist")
	// ErrDuplicateUser 表示用户名或邮箱已被注册
	ErrDuplicateUser = errors.New("username or email already exists")
)

// isDuplicateKeyError reports whether err is a MySQL unique-key violation (errno 1062).
func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
