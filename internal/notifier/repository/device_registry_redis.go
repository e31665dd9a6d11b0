package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/pkg/common"
	"golang-stock-notifier/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// NewRedisDeviceRegistry creates a DeviceRegistry persisted in a single Redis hash
// keyed by token. Every call reads Redis directly so a registration is visible
// to the next dispatch without any staleness window.
func NewRedisDeviceRegistry(client *redis.Client, keyPrefix string, log *logger.Logger) DeviceRegistry {
	key := common.RedisKeyDeviceTokens
	if keyPrefix != "" {
		key = keyPrefix + ":" + key
	}
	return &redisDeviceRegistry{
		client: client,
		key:    key,
		log:    log,
		now:    time.Now,
	}
}

type redisDeviceRegistry struct {
	client *redis.Client
	key    string
	log    *logger.Logger
	now    func() time.Time
}

func (r *redisDeviceRegistry) Register(ctx context.Context, token, owner string, platform entity.Platform) (*entity.DeviceToken, error) {
	device, err := newDeviceToken(token, owner, platform, r.now())
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(device)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal device token: %w", err)
	}
	if err := r.client.HSet(ctx, r.key, device.Token, raw).Err(); err != nil {
		return nil, fmt.Errorf("failed to store device token: %w", err)
	}
	return &device, nil
}

func (r *redisDeviceRegistry) Unregister(ctx context.Context, token string) error {
	if err := r.client.HDel(ctx, r.key, strings.TrimSpace(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete device token: %w", err)
	}
	return nil
}

func (r *redisDeviceRegistry) Get(ctx context.Context, token string) (*entity.DeviceToken, bool, error) {
	raw, err := r.client.HGet(ctx, r.key, strings.TrimSpace(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get device token: %w", err)
	}

	var device entity.DeviceToken
	if err := json.Unmarshal([]byte(raw), &device); err != nil {
		return nil, false, fmt.Errorf("failed to decode device token: %w", err)
	}
	return &device, true, nil
}

func (r *redisDeviceRegistry) ListEligible(ctx context.Context) ([]entity.DeviceToken, error) {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}

	snapshot := make([]entity.DeviceToken, 0, len(values))
	for token, raw := range values {
		var device entity.DeviceToken
		if err := json.Unmarshal([]byte(raw), &device); err != nil {
			r.log.WarnContext(ctx, "Skipping undecodable device token", logger.ErrorField(err), logger.StringField("token", token))
			continue
		}
		snapshot = append(snapshot, device)
	}

	sortDevices(snapshot)
	return snapshot, nil
}

func (r *redisDeviceRegistry) Count(ctx context.Context) (int, error) {
	n, err := r.client.HLen(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count device tokens: %w", err)
	}
	return int(n), nil
}
