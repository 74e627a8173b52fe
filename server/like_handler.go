package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"sonicstream/logger"
)

// ToggleLikeHandler 幂等切换点赞：行存在则删除并返回 unliked，否则插入并返回 liked
func (h *APIHandler) ToggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  int64 `json:"userId"`
		TrackID int64 `json:"trackId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.UserID == 0 || req.TrackID == 0 {
		writeError(w, http.StatusBadRequest, "userId and trackId are required")
		return
	}

	status, err := h.likeRepo.ToggleLike(req.UserID, req.TrackID)
	if err != nil {
		logger.Error("[Like] 切换点赞失败",
			logger.Int64("userId", req.UserID),
			logger.Int64("trackId", req.TrackID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("[Like] 切换点赞成功",
		logger.Int64("userId", req.UserID),
		logger.Int64("trackId", req.TrackID),
		logger.String("status", string(status)))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  status,
	})
}

// GetLikedTracksHandler 返回用户点赞过的曲目，按点赞时间倒序
func (h *APIHandler) GetLikedTracksHandler(w http.ResponseWriter, r *http.Request) {
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

	tracks, err := h.likeRepo.GetLikedTracks(userID)
	if err != nil {
		logger.Error("[Like] 查询点赞曲目失败",
			logger.Int64("userId", userID),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    tracks,
	})
}
