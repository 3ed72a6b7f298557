package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"resumeforge/internal/config"
	"resumeforge/internal/logging"
	"resumeforge/internal/logging/types"
	"resumeforge/pkg/models"
)

// SchemaVersion is stamped into every stored envelope so future layout
// changes can migrate on read.
const SchemaVersion = 1

// ErrNotFound is returned when a resume ID does not exist under the user.
var ErrNotFound = errors.New("resume not found")

// Envelope wraps a saved document with its ownership and usage metadata.
// Writes are last-write-wins; there is no versioning beyond the schema stamp.
type Envelope struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	SchemaVersion int                    `json:"schemaVersion"`
	Data          *models.ResumeDocument `json:"data"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
	Views         int                    `json:"views"`
	Downloads     int                    `json:"downloads"`
}

// ResumeStore persists resume envelopes in Redis, one key per document plus
// a per-user index set.
type ResumeStore struct {
	client *redis.Client
	logger types.Logger
}

// NewResumeStore creates a resume store from configuration.
func NewResumeStore(cfg *config.Config) *ResumeStore {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
	}

	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &ResumeStore{
		client: redis.NewClient(opts),
		logger: logging.GetGlobalLogger(),
	}
}

// Ping tests the Redis connection.
func (s *ResumeStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *ResumeStore) Close() error {
	return s.client.Close()
}

// IsHealthy checks if Redis is connected and healthy.
func (s *ResumeStore) IsHealthy(ctx context.Context) error {
	return s.Ping(ctx)
}

// Create saves a new document under the user and returns its envelope.
func (s *ResumeStore) Create(ctx context.Context, userID, name string, doc *models.ResumeDocument) (*Envelope, error) {
	now := time.Now().UTC()
	env := &Envelope{
		ID:            uuid.New().String(),
		Name:          name,
		SchemaVersion: SchemaVersion,
		Data:          doc,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if env.Name == "" {
		count, err := s.client.SCard(ctx, s.indexKey(userID)).Result()
		if err != nil {
			count = 0
		}
		env.Name = fmt.Sprintf("Resume %d", count+1)
	}

	if err := s.write(ctx, userID, env); err != nil {
		return nil, err
	}
	if err := s.client.SAdd(ctx, s.indexKey(userID), env.ID).Err(); err != nil {
		return nil, fmt.Errorf("failed to index resume: %w", err)
	}

	s.logger.Info("Resume saved", map[string]interface{}{
		"user_id":   userID,
		"resume_id": env.ID,
	})
	return env, nil
}

// Get fetches one envelope by ID.
func (s *ResumeStore) Get(ctx context.Context, userID, resumeID string) (*Envelope, error) {
	raw, err := s.client.Get(ctx, s.docKey(userID, resumeID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume: %w", err)
	}
	return &env, nil
}

// List returns all of the user's envelopes, newest first.
func (s *ResumeStore) List(ctx context.Context, userID string) ([]*Envelope, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	envelopes := make([]*Envelope, 0, len(ids))
	for _, id := range ids {
		env, err := s.Get(ctx, userID, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// Index entry outlived its document; drop it
				s.client.SRem(ctx, s.indexKey(userID), id)
				continue
			}
			return nil, err
		}
		envelopes = append(envelopes, env)
	}

	sort.Slice(envelopes, func(i, j int) bool {
		return envelopes[i].UpdatedAt.After(envelopes[j].UpdatedAt)
	})
	return envelopes, nil
}

// Update replaces a stored document, keeping its creation time and counters.
func (s *ResumeStore) Update(ctx context.Context, userID, resumeID string, doc *models.ResumeDocument) (*Envelope, error) {
	env, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}

	env.Data = doc
	env.SchemaVersion = SchemaVersion
	env.UpdatedAt = time.Now().UTC()

	if err := s.write(ctx, userID, env); err != nil {
		return nil, err
	}
	return env, nil
}

// Delete removes a stored resume and its index entry.
func (s *ResumeStore) Delete(ctx context.Context, userID, resumeID string) error {
	deleted, err := s.client.Del(ctx, s.docKey(userID, resumeID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return s.client.SRem(ctx, s.indexKey(userID), resumeID).Err()
}

// IncrementViews bumps the view counter.
func (s *ResumeStore) IncrementViews(ctx context.Context, userID, resumeID string) error {
	return s.bump(ctx, userID, resumeID, func(env *Envelope) { env.Views++ })
}

// IncrementDownloads bumps the download counter.
func (s *ResumeStore) IncrementDownloads(ctx context.Context, userID, resumeID string) error {
	return s.bump(ctx, userID, resumeID, func(env *Envelope) { env.Downloads++ })
}

func (s *ResumeStore) bump(ctx context.Context, userID, resumeID string, apply func(*Envelope)) error {
	env, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return err
	}
	apply(env)
	return s.write(ctx, userID, env)
}

func (s *ResumeStore) write(ctx context.Context, userID string, env *Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}
	if err := s.client.Set(ctx, s.docKey(userID, env.ID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

func (s *ResumeStore) docKey(userID, resumeID string) string {
	return fmt.Sprintf("resume:doc:%s:%s", userID, resumeID)
}

func (s *ResumeStore) indexKey(userID string) string {
	return fmt.Sprintf("resume:index:%s", userID)
}
