package server

import (
	"net/http"
	"strconv"

	"sonicstream/cache"
	"sonicstream/logger"
	"sonicstream/model"
	"sonicstream/storage"
)

// GetTracksHandler 返回目录首页曲目（最多20条，内嵌分类名称）
func (h *APIHandler) GetTracksHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 先查缓存；缓存故障只降级到数据库，不影响请求结果
	tracks, err := cache.GetCatalog(ctx)
	if err != nil {
		logger.Warn("[Music] 读取目录缓存失败", logger.ErrorField(err))
	}

	if tracks == nil {
		tracks, err = h.trackRepo.GetCatalog()
		if err != nil {
			logger.Error("[Music] 查询曲目目录失败", logger.ErrorField(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if cacheErr := cache.SetCatalog(ctx, tracks); cacheErr != nil {
			logger.Warn("[Music] 写入目录缓存失败", logger.ErrorField(cacheErr))
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(tracks),
		"data":    tracks,
	})
}

// SearchTracksHandler 按标题做大小写不敏感的子串搜索（最多10条）
func (h *APIHandler) SearchTracksHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query parameter required")
		return
	}

	tracks, err := h.trackRepo.SearchByTitle(query)
	if err != nil {
		logger.Error("[Music] 搜索曲目失败",
			logger.String("query", query),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    tracks,
	})
}

// GetTrendingHandler 返回热门曲目（最近入库的5首）
func (h *APIHandler) GetTrendingHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tracks, err := cache.GetTrending(ctx)
	if err != nil {
		logger.Warn("[Music] 读取热门缓存失败", logger.ErrorField(err))
	}

	if tracks == nil {
		tracks, err = h.trackRepo.GetTrending()
		if err != nil {
			logger.Error("[Music] 查询热门曲目失败", logger.ErrorField(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if cacheErr := cache.SetTrending(ctx, tracks); cacheErr != nil {
			logger.Warn("[Music] 写入热门缓存失败", logger.ErrorField(cacheErr))
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    tracks,
	})
}

// 上传文件大小上限
const maxUploadSize = 100 << 20 // 100MB

// UploadTrackHandler 接收音频和封面文件，上传到对象存储后写入曲目记录
func (h *APIHandler) UploadTrackHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		logger.Error("[Upload] 解析表单失败", logger.ErrorField(err))
		writeError(w, http.StatusBadRequest, "Failed to parse upload form")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	artist := r.FormValue("artist")

	var categoryID *int64
	if v := r.FormValue("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid categoryId")
			return
		}
		categoryID = &id
	}

	audioFile, audioHeader, err := r.FormFile("trackFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Audio file is required")
		return
	}
	defer audioFile.Close()

	coverFile, coverHeader, err := r.FormFile("coverFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Cover file is required")
		return
	}
	defer coverFile.Close()

	audioURL, err := storage.UploadFile(ctx, h.cfg, "audio", audioHeader.Filename,
		audioHeader.Header.Get("Content-Type"), audioFile, audioHeader.Size)
	if err != nil {
		logger.Error("[Upload] 上传音频失败",
			logger.String("filename", audioHeader.Filename),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	coverURL, err := storage.UploadFile(ctx, h.cfg, "covers", coverHeader.Filename,
		coverHeader.Header.Get("Content-Type"), coverFile, coverHeader.Size)
	if err != nil {
		logger.Error("[Upload] 上传封面失败",
			logger.String("filename", coverHeader.Filename),
			logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	track := &model.Track{
		Title:      title,
		Artist:     artist,
		AudioURL:   audioURL,
		CoverURL:   coverURL,
		CategoryID: categoryID,
	}
	if v := r.FormValue("duration"); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil {
			track.Duration = d
		}
	}

	trackID, err := h.trackRepo.CreateTrack(track)
	if err != nil {
		logger.Error("[Upload] 写入曲目记录失败", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	track.ID = trackID

	// 新曲目入库，列表缓存失效
	if err := cache.InvalidateTrackLists(ctx); err != nil {
		logger.Warn("[Upload] 清除列表缓存失败", logger.ErrorField(err))
	}

	logger.Info("[Upload] 曲目上传完成",
		logger.Int64("trackId", trackID),
		logger.String("title", title))

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    track,
	})
}
