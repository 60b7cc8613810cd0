package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

// 规则表版本是缓存键的一部分，更换规则后旧结果自然失效
func reportCacheKey(restaurantID string, weekStart time.Time, rulesVersion string) string {
	return fmt.Sprintf("compliance_%s_%s_%s", restaurantID, weekStart.Format(time.DateOnly), rulesVersion)
}

// 缓存不可用时只记录日志，直接重新计算
func (h *Handler) getCachedReport(ctx context.Context, key string) (*domain.ComplianceReport, bool) {
	if h.redisClient == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	data, err := h.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("读取合规报告缓存失败", "key", key, "error", err)
		}
		return nil, false
	}

	report := &domain.ComplianceReport{}
	if err := json.Unmarshal(data, report); err != nil {
		slog.Warn("合规报告缓存已损坏", "key", key, "error", err)
		return nil, false
	}

	return report, true
}

func (h *Handler) setCachedReport(ctx context.Context, key string, report *domain.ComplianceReport) {
	if h.redisClient == nil {
		return
	}

	data, err := json.Marshal(report)
	if err != nil {
		slog.Warn("序列化合规报告失败", "key", key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	ttl := time.Duration(h.config.Compliance.CacheTTL) * time.Second
	if err := h.redisClient.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Warn("写入合规报告缓存失败", "key", key, "error", err)
	}
}
