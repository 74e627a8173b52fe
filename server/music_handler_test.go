package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sonicstream/model"
)

func TestGetTracksCatalog(t *testing.T) {
	env := newTestEnv(t)

	// 无Redis时缓存层降级，目录直接来自数据库
	code, body := env.doJSON(t, http.MethodGet, "/api/music", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])
	require.Equal(t, float64(0), body["count"])

	_, err := env.trackRepo.CreateTrack(&model.Track{
		Title:    "Midnight City",
		Artist:   "M83",
		AudioURL: "http://cdn/midnight.mp3",
	})
	require.NoError(t, err)

	code, body = env.doJSON(t, http.MethodGet, "/api/music", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(1), body["count"])

	tracks := body["data"].([]interface{})
	require.Equal(t, "Midnight City", tracks[0].(map[string]interface{})["title"])
}

func TestSearchTracks(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.trackRepo.CreateTrack(&model.Track{Title: "Blinding Lights", AudioURL: "http://cdn/bl.mp3"})
	require.NoError(t, err)
	_, err = env.trackRepo.CreateTrack(&model.Track{Title: "City Lights", AudioURL: "http://cdn/cl.mp3"})
	require.NoError(t, err)

	// 大小写不敏感的子串匹配
	code, body := env.doJSON(t, http.MethodGet, "/api/music/search?query=lights", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])
	require.Len(t, body["data"], 2)

	code, body = env.doJSON(t, http.MethodGet, "/api/music/search?query=Blinding", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["data"], 1)
}

func TestSearchTracksNoMatchReturnsEmptyList(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.trackRepo.CreateTrack(&model.Track{Title: "Something", AudioURL: "http://cdn/x.mp3"})
	require.NoError(t, err)

	// 无结果是成功响应加空列表，不是错误
	code, body := env.doJSON(t, http.MethodGet, "/api/music/search?query=zz-no-match", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])
	require.NotNil(t, body["data"])
	require.Empty(t, body["data"])
}

func TestSearchTracksRequiresQuery(t *testing.T) {
	env := newTestEnv(t)

	// 缺参和空参都拒绝
	code, body := env.doJSON(t, http.MethodGet, "/api/music/search", nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, false, body["success"])
	require.Equal(t, "Query parameter required", body["message"])

	code, _ = env.doJSON(t, http.MethodGet, "/api/music/search?query=", nil)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestGetTrendingReturnsNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	base := time.Now()
	for i := 0; i < 7; i++ {
		_, err := env.trackRepo.CreateTrack(&model.Track{
			Title:     string(rune('A' + i)),
			AudioURL:  "http://cdn/t.mp3",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	code, body := env.doJSON(t, http.MethodGet, "/api/music/trending", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])

	// 最多5条，最新入库的排最前
	tracks := body["data"].([]interface{})
	require.Len(t, tracks, 5)
	require.Equal(t, "G", tracks[0].(map[string]interface{})["title"])
	require.Equal(t, "C", tracks[4].(map[string]interface{})["title"])
}
