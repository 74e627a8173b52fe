package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sonicstream/db"
	"sonicstream/model"

	"github.com/go-redis/redis/v8"
)

// 曲目列表缓存的TTL。目录数据更新频率低，短TTL即可明显降低数据库压力
const trackListTTL = 60 * time.Second

const (
	catalogKey  = "tracks:catalog"
	trendingKey = "tracks:trending"
)

// GetCatalog 读取目录缓存。缓存未命中返回 (nil, nil)
func GetCatalog(ctx context.Context) ([]*model.Track, error) {
	return getTrackList(ctx, catalogKey)
}

// SetCatalog 写入目录缓存
func SetCatalog(ctx context.Context, tracks []*model.Track) error {
	return setTrackList(ctx, catalogKey, tracks)
}

// GetTrending 读取热门曲目缓存。缓存未命中返回 (nil, nil)
func GetTrending(ctx context.Context) ([]*model.Track, error) {
	return getTrackList(ctx, trendingKey)
}

// SetTrending 写入热门曲目缓存
func SetTrending(ctx context.Context, tracks []*model.Track) error {
	return setTrackList(ctx, trendingKey, tracks)
}

// InvalidateTrackLists 在新曲目入库后清除列表缓存
func InvalidateTrackLists(ctx context.Context) error {
	if db.RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}
	return db.RedisClient.Del(ctx, catalogKey, trendingKey).Err()
}

func getTrackList(ctx context.Context, key string) ([]*model.Track, error) {
	if db.RedisClient == nil {
		return nil, fmt.Errorf("Redis client not initialized")
	}

	data, err := db.RedisClient.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, fmt.Errorf("failed to get track list from cache: %w", err)
	}

	var tracks []*model.Track
	if err := json.Unmarshal([]byte(data), &tracks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached track list: %w", err)
	}
	return tracks, nil
}

func setTrackList(ctx context.Context, key string, tracks []*model.Track) error {
	if db.RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	data, err := json.Marshal(tracks)
	if err != nil {
		return fmt.Errorf("failed to marshal track list: %w", err)
	}

	if err := db.RedisClient.Set(ctx, key, data, trackListTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache track list: %w", err)
	}
	return nil
}
