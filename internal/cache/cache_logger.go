package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// BatchInvalidate invalidates multiple patterns in batch
func BatchInvalidate(ctx context.Context, helper *CacheHelper, patterns []string) error {
	var lastErr error
	for _, pattern := range patterns {
		if err := helper.InvalidatePattern(ctx, pattern); err != nil {
			lastErr = err
			slog.ErrorContext(ctx, "Failed to invalidate pattern in batch",
				"error", err,
				"pattern", pattern)
		}
	}
	return lastErr
}

// InvalidatePositionCache drops the cached position plus every listing
// that might contain it.
func InvalidatePositionCache(ctx context.Context, cm *CacheManager, positionID string) {
	SafeDelete(ctx, cm.Position, fmt.Sprintf("id:%s", positionID))
	SafeInvalidatePattern(ctx, cm.Position, "list:*")
	SafeInvalidatePattern(ctx, cm.Position, "company:*")
}

// InvalidateCompanyCache drops the cached company and company listings
func InvalidateCompanyCache(ctx context.Context, cm *CacheManager, companyID string) {
	SafeDelete(ctx, cm.Company, fmt.Sprintf("id:%s", companyID))
	SafeInvalidatePattern(ctx, cm.Company, "list:*")
}

// InvalidateSkillCache drops the cached skill and the skill catalog listings
func InvalidateSkillCache(ctx context.Context, cm *CacheManager, skillID string) {
	SafeDelete(ctx, cm.Skill, fmt.Sprintf("id:%s", skillID))
	SafeInvalidatePattern(ctx, cm.Skill, "list:*")
	// Users embed their known skills, their listings go stale too
	SafeInvalidatePattern(ctx, cm.User, "list:*")
}

// InvalidateUserCache drops cached user listings after profile changes
func InvalidateUserCache(ctx context.Context, cm *CacheManager, userID string) {
	SafeDelete(ctx, cm.User, fmt.Sprintf("id:%s", userID))
	SafeInvalidatePattern(ctx, cm.User, "list:*")
}
