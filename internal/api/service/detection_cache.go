package service

import (
	"time"

	"sitetrack"
	"sitetrack/internal/detect"
	"sitetrack/pkg"
)

// redisDetectionCache memoizes detection results in Redis. Any cache
// error degrades to a plain re-detection; it is never surfaced.
type redisDetectionCache struct {
	ttl time.Duration
}

func newRedisDetectionCache(ttl time.Duration) *redisDetectionCache {
	return &redisDetectionCache{ttl: ttl}
}

func (slf *redisDetectionCache) Get(hash string) (detect.Result, bool) {
	var result detect.Result
	if err := pkg.RedisGet(slf.key(hash), &result); err != nil {
		if !pkg.IsRedisNil(err) {
			sitetrack.Logger.Warn().Err(err).Msg("Detection cache read failed, re-detecting")
		}
		return detect.Result{}, false
	}
	return result, true
}

func (slf *redisDetectionCache) Set(hash string, result detect.Result) {
	if err := pkg.RedisSet(slf.key(hash), result, slf.ttl); err != nil {
		sitetrack.Logger.Warn().Err(err).Msg("Detection cache write failed")
	}
}

func (slf *redisDetectionCache) key(hash string) string {
	return "csv:detect:" + hash
}
