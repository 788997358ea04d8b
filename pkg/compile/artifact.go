package compile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultArtifactTTL matches the lifetime of a generated download link.
const DefaultArtifactTTL = 5 * time.Minute

var ErrArtifactNotFound = fmt.Errorf("artifact not found or expired")

// ArtifactStore keeps compiled documents behind short-lived opaque tokens.
// Compiled output is throwaway; anything a client does not fetch within the
// TTL is gone.
type ArtifactStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewArtifactStore(client *redis.Client, ttl time.Duration) *ArtifactStore {
	if ttl <= 0 {
		ttl = DefaultArtifactTTL
	}
	return &ArtifactStore{client: client, ttl: ttl}
}

func (s *ArtifactStore) key(token string) string {
	return "artifact:" + token
}

// Put stores the document and returns the token clients use to fetch it.
func (s *ArtifactStore) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	key := s.key(token)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, "data", data, "content_type", contentType)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store artifact: %w", err)
	}
	return token, nil
}

// Get returns the stored document and its content type.
func (s *ArtifactStore) Get(ctx context.Context, token string) ([]byte, string, error) {
	fields, err := s.client.HGetAll(ctx, s.key(token)).Result()
	if err != nil {
		return nil, "", fmt.Errorf("fetch artifact: %w", err)
	}
	if len(fields) == 0 {
		return nil, "", ErrArtifactNotFound
	}
	return []byte(fields["data"]), fields["content_type"], nil
}

// TTL exposes the configured lifetime for Cache-Control headers.
func (s *ArtifactStore) TTL() time.Duration {
	return s.ttl
}
