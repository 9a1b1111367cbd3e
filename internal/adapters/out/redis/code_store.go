package redis

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const codeKeyPrefix = "otp:"

var _ ports.CodeStore = (*CodeStore)(nil)

type CodeStore struct {
	client goredis.UniversalClient
}

func NewCodeStore(client goredis.UniversalClient) *CodeStore {
	return &CodeStore{client: client}
}

func (s *CodeStore) Save(ctx context.Context, phone kernel.Phone, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, codeKeyPrefix+phone.String(), code, ttl).Err(); err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	return nil
}

// Consume shares the compare-and-delete script with presence removal.
func (s *CodeStore) Consume(ctx context.Context, phone kernel.Phone, code string) (bool, error) {
	n, err := compareAndDelete.Run(ctx, s.client, []string{codeKeyPrefix + phone.String()}, code).Int()
	if err != nil {
		return false, fmt.Errorf("consume code: %w", err)
	}
	return n == 1, nil
}
