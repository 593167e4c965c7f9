package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"anoa.com/lifesaver/pkg/apperror"
)

type ChatService interface {
	Ask(ctx context.Context, clientKey, message string) (string, error)
}

type chatService struct {
	provider    LLMProvider
	redisClient *redis.Client
	rateLimit   time.Duration
}

func NewChatService(provider LLMProvider, redisClient *redis.Client, rateLimit time.Duration) ChatService {
	if rateLimit <= 0 {
		rateLimit = 5 * time.Second
	}
	return &chatService{
		provider:    provider,
		redisClient: redisClient,
		rateLimit:   rateLimit,
	}
}

func (s *chatService) Ask(ctx context.Context, clientKey, message string) (string, error) {
	if s.provider == nil {
		return "", apperror.ErrNotConfigured
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: message is required", apperror.ErrInvalidInput)
	}

	allowed, err := s.checkAndSetRateLimit(ctx, clientKey)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", apperror.ErrRateLimitExceeded
	}

	return s.provider.GenerateText(ctx, message)
}

func (s *chatService) checkAndSetRateLimit(ctx context.Context, clientKey string) (bool, error) {
	if s.redisClient == nil || clientKey == "" {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:chat:%s", clientKey)

	wasSet, err := s.redisClient.SetNX(ctx, key, "locked", s.rateLimit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}
