package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"sonicstream/logger"
	"sonicstream/model"
	"sonicstream/repository"

	"github.com/gorilla/mux"
)

// CreatePlaylistHandler 创建播放列表，返回创建的整行
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      int64  `json:"userId"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// name 和 owner 必填（对应存储层的NOT NULL约束）
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Playlist name is required")
		return
	}
	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	playlist, err := h.playlistRepo.CreatePlaylist(&model.Playlist{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		logger.Error("[Playlist] 创建播放列表失败",
			logger.Int64("userId", req.UserID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    playlist,
	})
}

// GetUserPlaylistsHandler 返回用户的全部播放列表，按创建时间倒序
func (h *APIHandler) GetUserPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	userIDStr := r.URL.Query().Get("userId")
	if userIDStr == "" {
		writeError(w, http.StatusBadRequest, "userId parameter required")
		return
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid userId format")
		return
	}

	playlists, err := h.playlistRepo.GetPlaylistsByUserID(userID)
	if err != nil {
		logger.Error("[Playlist] 查询用户播放列表失败",
			logger.Int64("userId", userID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    playlists,
	})
}

// GetPlaylistDetailsHandler 返回播放列表信息及其解析出的曲目
func (h *APIHandler) GetPlaylistDetailsHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid playlist ID format")
		return
	}

	playlist, err := h.playlistRepo.GetPlaylistByID(id)
	if err != nil {
		logger.Error("[Playlist] 查询播放列表失败",
			logger.Int64("playlistId", id),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	tracks, err := h.playlistRepo.GetPlaylistTracks(id)
	if err != nil {
		logger.Error("[Playlist] 解析播放列表曲目失败",
			logger.Int64("playlistId", id),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": model.PlaylistWithTracks{
			Playlist: *playlist,
			Tracks:   tracks,
		},
	})
}

// AddTrackToPlaylistHandler 向播放列表添加曲目
// 重复的 (playlistId, trackId) 返回400而不是500
func (h *APIHandler) AddTrackToPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlaylistID int64 `json:"playlistId"`
		TrackID    int64 `json:"trackId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.PlaylistID == 0 || req.TrackID == 0 {
		writeError(w, http.StatusBadRequest, "playlistId and trackId are required")
		return
	}

	if err := h.playlistRepo.AddTrackToPlaylist(req.PlaylistID, req.TrackID); err != nil {
		if errors.Is(err, repository.ErrDuplicateTrack) {
			writeError(w, http.StatusBadRequest, "Song already in playlist")
			return
		}
		logger.Error("[Playlist] 添加曲目失败",
			logger.Int64("playlistId", req.PlaylistID),
			logger.Int64("trackId", req.TrackID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Track added!",
	})
}
