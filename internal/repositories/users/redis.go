package users

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dsmelov/passvault/internal/common"
	"github.com/dsmelov/passvault/internal/models"
)

const (
	userKeyPrefix = "user:"
	saltKeyPrefix = "salt:"
)

// RedisRepository stores accounts in Redis. The password digest lives at
// "user:<name>" and the per-account salt at "salt:<name>".
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository connects to Redis and validates the connection with a
// ping. An unreachable server yields common.ErrorStoreUnavailable; callers
// are expected to treat that as fatal at startup.
func NewRedisRepository(ctx context.Context, addr, password string, timeout time.Duration) (*RedisRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping: %v", common.ErrorStoreUnavailable, err)
	}

	return &RedisRepository{client: client}, nil
}

func (r *RedisRepository) Create(ctx context.Context, account *models.Account) error {
	ok, err := r.client.SetNX(ctx, userKeyPrefix+account.Username, account.Digest, 0).Result()
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return common.ErrorAlreadyExists
	}
	if len(account.Salt) > 0 {
		if err := r.client.Set(ctx, saltKeyPrefix+account.Username, hex.EncodeToString(account.Salt), 0).Err(); err != nil {
			return storeErr(err)
		}
	}
	return nil
}

func (r *RedisRepository) Get(ctx context.Context, username string) (*models.Account, error) {
	digest, err := r.client.Get(ctx, userKeyPrefix+username).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, storeErr(err)
	}

	account := &models.Account{Username: username, Digest: digest}

	saltHex, err := r.client.Get(ctx, saltKeyPrefix+username).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, storeErr(err)
	}
	if saltHex != "" {
		salt, err := hex.DecodeString(saltHex)
		if err != nil {
			return nil, fmt.Errorf("decoding salt for %q: %w", username, err)
		}
		account.Salt = salt
	}

	return account, nil
}

func (r *RedisRepository) Exists(ctx context.Context, username string) (bool, error) {
	n, err := r.client.Exists(ctx, userKeyPrefix+username).Result()
	if err != nil {
		return false, storeErr(err)
	}
	return n > 0, nil
}

func (r *RedisRepository) Delete(ctx context.Context, username string) (bool, error) {
	n, err := r.client.Del(ctx, userKeyPrefix+username).Result()
	if err != nil {
		return false, storeErr(err)
	}
	if _, err := r.client.Del(ctx, saltKeyPrefix+username).Result(); err != nil {
		return false, storeErr(err)
	}
	return n > 0, nil
}

func (r *RedisRepository) List(ctx context.Context) ([]string, error) {
	keys, err := r.client.Keys(ctx, userKeyPrefix+"*").Result()
	if err != nil {
		return nil, storeErr(err)
	}
	usernames := make([]string, 0, len(keys))
	for _, key := range keys {
		usernames = append(usernames, strings.TrimPrefix(key, userKeyPrefix))
	}
	return usernames, nil
}

// Close releases the underlying connection pool.
func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorStoreUnavailable, err)
}
