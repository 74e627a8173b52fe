package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"sonicstream/model"
)

func TestToggleLikeCycle(t *testing.T) {
	env := newTestEnv(t)

	trackID, err := env.trackRepo.CreateTrack(&model.Track{Title: "Song", AudioURL: "http://cdn/s.mp3"})
	require.NoError(t, err)

	payload := map[string]interface{}{
		"userId":  int64(3),
		"trackId": trackID,
	}

	// 同一用户对同一曲目连续切换：liked / unliked / liked
	code, body := env.doJSON(t, http.MethodPost, "/api/likes/toggle", payload)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])
	require.Equal(t, "liked", body["status"])

	code, body = env.doJSON(t, http.MethodPost, "/api/likes/toggle", payload)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "unliked", body["status"])

	code, body = env.doJSON(t, http.MethodPost, "/api/likes/toggle", payload)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "liked", body["status"])
}

func TestToggleLikeValidation(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.doJSON(t, http.MethodPost, "/api/likes/toggle", map[string]interface{}{
		"userId": int64(3),
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "userId and trackId are required", body["message"])
}

func TestGetLikedTracks(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.trackRepo.CreateTrack(&model.Track{Title: "First", AudioURL: "http://cdn/1.mp3"})
	require.NoError(t, err)
	second, err := env.trackRepo.CreateTrack(&model.Track{Title: "Second", AudioURL: "http://cdn/2.mp3"})
	require.NoError(t, err)

	for _, id := range []int64{first, second} {
		code, _ := env.doJSON(t, http.MethodPost, "/api/likes/toggle", map[string]interface{}{
			"userId":  int64(3),
			"trackId": id,
		})
		require.Equal(t, http.StatusOK, code)
	}

	code, body := env.doJSON(t, http.MethodGet, "/api/likes?userId=3", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["success"])

	// 最近点赞的排在前面
	tracks := body["data"].([]interface{})
	require.Len(t, tracks, 2)
	require.Equal(t, "Second", tracks[0].(map[string]interface{})["title"])
	require.Equal(t, "First", tracks[1].(map[string]interface{})["title"])

	// 点赞集合按用户隔离
	code, body = env.doJSON(t, http.MethodGet, "/api/likes?userId=99", nil)
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, body["data"])
}

func TestGetLikedTracksRequiresUserID(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.doJSON(t, http.MethodGet, "/api/likes", nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "userId parameter required", body["message"])
}
