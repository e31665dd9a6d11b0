package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/common"
)

// DeviceRegistry tracks the device tokens eligible to receive notifications.
type DeviceRegistry interface {
	// Register stores token, replacing any previous entry for it.
	Register(ctx context.Context, token, owner string, platform entity.Platform) (*entity.DeviceToken, error)
	// Unregister removes token. Removing an unknown token is not an error.
	Unregister(ctx context.Context, token string) error
	Get(ctx context.Context, token string) (*entity.DeviceToken, bool, error)
	// ListEligible returns a snapshot owned by the caller.
	ListEligible(ctx context.Context) ([]entity.DeviceToken, error)
	Count(ctx context.Context) (int, error)
}

// NewDeviceRegistry creates an in-memory DeviceRegistry.
func NewDeviceRegistry() DeviceRegistry {
	return &deviceRegistry{
		devices: make(map[string]entity.DeviceToken),
		now:     time.Now,
	}
}

type deviceRegistry struct {
	mu      sync.RWMutex
	devices map[string]entity.DeviceToken
	now     func() time.Time
}

func (r *deviceRegistry) Register(ctx context.Context, token, owner string, platform entity.Platform) (*entity.DeviceToken, error) {
	device, err := newDeviceToken(token, owner, platform, r.now())
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.devices[device.Token] = device
	r.mu.Unlock()

	return &device, nil
}

func (r *deviceRegistry) Unregister(ctx context.Context, token string) error {
	r.mu.Lock()
	delete(r.devices, strings.TrimSpace(token))
	r.mu.Unlock()
	return nil
}

func (r *deviceRegistry) Get(ctx context.Context, token string) (*entity.DeviceToken, bool, error) {
	r.mu.RLock()
	device, ok := r.devices[strings.TrimSpace(token)]
	r.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return &device, true, nil
}

func (r *deviceRegistry) ListEligible(ctx context.Context) ([]entity.DeviceToken, error) {
	r.mu.RLock()
	snapshot := make([]entity.DeviceToken, 0, len(r.devices))
	for _, device := range r.devices {
		snapshot = append(snapshot, device)
	}
	r.mu.RUnlock()

	sortDevices(snapshot)
	return snapshot, nil
}

func (r *deviceRegistry) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices), nil
}

func newDeviceToken(token, owner string, platform entity.Platform, now time.Time) (entity.DeviceToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entity.DeviceToken{}, apperror.NewValidation("token", "token required")
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = common.DefaultOwner
	}
	if platform == "" {
		platform = entity.PlatformIOS
	}
	return entity.DeviceToken{
		Token:        token,
		Owner:        owner,
		Platform:     platform,
		RegisteredAt: now,
	}, nil
}

// sortDevices orders a snapshot by registration time, then token, so fan-out order is stable.
func sortDevices(devices []entity.DeviceToken) {
	sort.Slice(devices, func(i, j int) bool {
		if devices[i].RegisteredAt.Equal(devices[j].RegisteredAt) {
			return devices[i].Token < devices[j].Token
		}
		return devices[i].RegisteredAt.Before(devices[j].RegisteredAt)
	})
}
