package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/barber-booking/internal/domain"
)

const keyPrefix = "barber-booking:shop-rules:"

// entry запись кэша. Rules == nil - у барбершопа нет собственных правил (тоже кэшируется)
type entry struct {
	Rules *domain.ShopRules `json:"rules,omitempty"`
}

// Cache read-through кэш правил барбершопов в redis
type Cache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// New создает кэш с указанным временем жизни записей
func New(rdb redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get возвращает правила из кэша. found=false - записи нет, нужно идти в базу.
// rules == nil при found=true означает, что собственных правил у барбершопа нет.
func (c *Cache) Get(ctx context.Context, shopID int64) (rules *domain.ShopRules, found bool, err error) {
	data, err := c.rdb.Get(ctx, key(shopID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: shop=%d: %v", ErrCacheRead, shopID, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("%w: shop=%d: %v", ErrCacheDecode, shopID, err)
	}

	return e.Rules, true, nil
}

// Set сохраняет правила (или их отсутствие, rules == nil)
func (c *Cache) Set(ctx context.Context, shopID int64, rules *domain.ShopRules) error {
	data, err := json.Marshal(entry{Rules: rules})
	if err != nil {
		return fmt.Errorf("%w: shop=%d: %v", ErrCacheWrite, shopID, err)
	}

	if err := c.rdb.Set(ctx, key(shopID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: shop=%d: %v", ErrCacheWrite, shopID, err)
	}
	return nil
}

// Invalidate удаляет запись барбершопа
func (c *Cache) Invalidate(ctx context.Context, shopID int64) error {
	if err := c.rdb.Del(ctx, key(shopID)).Err(); err != nil {
		return fmt.Errorf("%w: invalidate shop=%d: %v", ErrCacheWrite, shopID, err)
	}
	return nil
}

func key(shopID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, shopID)
}
