package daylock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLocked день мастера уже заблокирован другим запросом
var ErrLocked = errors.New("daylock: worker day is locked")

const keyPrefix = "salon:daylock"

// releaseScript удаляет ключ, только если он все еще принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Key день конкретного мастера в салоне
type Key struct {
	BusinessID string
	WorkerID   string
	DateKey    string
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, k.BusinessID, k.WorkerID, k.DateKey)
}

// ReleaseFunc снимает захваченные блокировки
type ReleaseFunc func(ctx context.Context) error

// Locker короткоживущая блокировка дня мастера в Redis.
// Сериализует параллельные записи в один и тот же день мастера между инстансами сервиса.
// nil *Locker допустим и ничего не блокирует.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{client: client, ttl: ttl}
}

// Acquire захватывает все переданные дни мастеров или ни одного.
// Ключи захватываются в отсортированном порядке.
func (l *Locker) Acquire(ctx context.Context, keys ...Key) (ReleaseFunc, error) {
	if l == nil || l.client == nil || len(keys) == 0 {
		return func(context.Context) error { return nil }, nil
	}

	names := uniqueSorted(keys)
	token := uuid.NewString()
	acquired := make([]string, 0, len(names))

	release := func(ctx context.Context) error {
		var errs []error
		for _, name := range acquired {
			if err := releaseScript.Run(ctx, l.client, []string{name}, token).Err(); err != nil {
				errs = append(errs, fmt.Errorf("release %s: %w", name, err))
			}
		}
		return errors.Join(errs...)
	}

	for _, name := range names {
		ok, err := l.client.SetNX(ctx, name, token, l.ttl).Result()
		if err != nil {
			_ = release(ctx)
			return nil, fmt.Errorf("daylock: acquire %s: %w", name, err)
		}
		if !ok {
			_ = release(ctx)
			return nil, fmt.Errorf("%w: %s", ErrLocked, name)
		}
		acquired = append(acquired, name)
	}

	return release, nil
}

func uniqueSorted(keys []Key) []string {
	set := make(map[string]struct{}, len(keys))
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		name := k.String()
		if _, ok := set[name]; ok {
			continue
		}
		set[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
