package storage

import (
	"context"
	"strings"
	"time"
)

const loginFailPrefix = "login_fail:"

func loginFailKey(email string) string {
	return loginFailPrefix + strings.ToLower(email)
}

// RecordLoginAttempt атомарно збільшує лічильник спроб входу і повертає нове значення.
// Перша спроба відкриває вікно. Без Redis завжди 0.
func (s *Service) RecordLoginAttempt(ctx context.Context, email string, window time.Duration) (int64, error) {
	if s.Redis == nil {
		return 0, nil
	}
	key := loginFailKey(email)
	n, err := s.Redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.Redis.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// ResetLoginFailures clears the counter after a successful login.
func (s *Service) ResetLoginFailures(ctx context.Context, email string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, loginFailKey(email)).Err()
}
