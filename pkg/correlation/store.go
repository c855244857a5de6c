package correlation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Store is the key-value contract leaf validators use to pass derived facts
// (offered catalogs, stop codes, transaction history) between messages of
// the same session. Keys are scoped so flows cannot interfere with each
// other.
type Store interface {
	// GetJSON loads the value at (session, transaction, key) into out.
	// Returns false with a nil error when the key has never been written
	// or has expired.
	GetJSON(ctx context.Context, sessionID, transactionID, key string, out any) (bool, error)

	// SetJSON stores a JSON-encodable value at (session, transaction, key)
	// with the store's TTL.
	SetJSON(ctx context.Context, sessionID, transactionID, key string, value any) error

	// AppendTransactionID records a transaction id in the flow's ordered
	// history. The append is atomic and idempotent: appending an id already
	// in the history is a no-op.
	AppendTransactionID(ctx context.Context, sessionID, flowID, transactionID string) error

	// TransactionIDs returns the flow's transaction history in append order.
	TransactionIDs(ctx context.Context, sessionID, flowID string) ([]string, error)
}

const DefaultTTL = time.Hour

// RedisStore keeps Redis as the source of truth and fronts reads with a
// bounded in-memory TTL cache. Writes go through to Redis and refresh the
// local copy, so a later read from the same process sees the write even if
// Redis round-trips are slow.
type RedisStore struct {
	rdb   *redis.Client
	local *gocache.Cache
	ttl   time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		rdb:   rdb,
		local: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func valueKey(sessionID, transactionID, key string) string {
	return fmt.Sprintf("corr:%s:%s:%s", sessionID, transactionID, key)
}

func historyKey(sessionID, flowID string) string {
	return fmt.Sprintf("txns:%s:%s", sessionID, flowID)
}

func (s *RedisStore) GetJSON(ctx context.Context, sessionID, transactionID, key string, out any) (bool, error) {
	k := valueKey(sessionID, transactionID, key)

	if raw, found := s.local.Get(k); found {
		return true, json.Unmarshal(raw.([]byte), out)
	}

	raw, err := s.rdb.Get(ctx, k).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("correlation get %s: %w", k, err)
	}

	s.local.Set(k, raw, gocache.DefaultExpiration)
	return true, json.Unmarshal(raw, out)
}

func (s *RedisStore) SetJSON(ctx context.Context, sessionID, transactionID, key string, value any) error {
	k := valueKey(sessionID, transactionID, key)

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("correlation marshal %s: %w", k, err)
	}
	if err := s.rdb.Set(ctx, k, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("correlation set %s: %w", k, err)
	}

	s.local.Set(k, raw, gocache.DefaultExpiration)
	return nil
}

func (s *RedisStore) AppendTransactionID(ctx context.Context, sessionID, flowID, transactionID string) error {
	k := historyKey(sessionID, flowID)

	// RPUSH is atomic, so concurrent flows in the same session cannot lose
	// appends the way a read-modify-write over a JSON blob would. The LPOS
	// guard keeps re-validation runs from growing the history.
	if _, err := s.rdb.LPos(ctx, k, transactionID, redis.LPosArgs{}).Result(); err == nil {
		return nil
	} else if err != redis.Nil {
		return fmt.Errorf("correlation history lookup %s: %w", k, err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, k, transactionID)
	pipe.Expire(ctx, k, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("correlation history append %s: %w", k, err)
	}

	s.local.Delete(k)
	return nil
}

func (s *RedisStore) TransactionIDs(ctx context.Context, sessionID, flowID string) ([]string, error) {
	k := historyKey(sessionID, flowID)

	if cached, found := s.local.Get(k); found {
		return cached.([]string), nil
	}

	ids, err := s.rdb.LRange(ctx, k, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("correlation history read %s: %w", k, err)
	}

	s.local.Set(k, ids, gocache.DefaultExpiration)
	return ids, nil
}
