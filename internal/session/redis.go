package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/paperdesk/paperdesk/internal/domain"
)

const (
	// KeyPrefixSession is the prefix for session keys.
	KeyPrefixSession = "paperdesk:session:"
)

// SessionKey returns the Redis key for a session by id.
func SessionKey(id string) string {
	return KeyPrefixSession + id
}

// VotedKey returns the Redis set key holding the paper ids a session
// voted on, per vote kind.
func VotedKey(id string, kind domain.VoteKind) string {
	return fmt.Sprintf("%s%s:voted:%s", KeyPrefixSession, id, kind)
}

// RedisStore keeps sessions in Redis with a TTL, for deployments where
// the service restarts more often than user sessions. The vote guard
// expires together with the session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Create(ctx context.Context, username string) (*Session, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, SessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, SessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) HasVoted(ctx context.Context, sessionID, paperID string, kind domain.VoteKind) (bool, error) {
	if _, err := s.Get(ctx, sessionID); err != nil {
		return false, err
	}
	voted, err := s.client.SIsMember(ctx, VotedKey(sessionID, kind), paperID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check vote guard: %w", err)
	}
	return voted, nil
}

func (s *RedisStore) MarkVoted(ctx context.Context, sessionID, paperID string, kind domain.VoteKind) error {
	if _, err := s.Get(ctx, sessionID); err != nil {
		return err
	}

	// Guard set expires with the session itself.
	pipe := s.client.Pipeline()
	key := VotedKey(sessionID, kind)
	pipe.SAdd(ctx, key, paperID)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record vote guard: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	keys := []string{
		SessionKey(id),
		VotedKey(id, domain.VoteUp),
		VotedKey(id, domain.VoteDown),
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
