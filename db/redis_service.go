package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"isimm-manager/config"
	"isimm-manager/models"
)

const (
	niveausKey       = "niveaus"    // Sorted set: niveau IDs scored by ID
	niveauInfoPrefix = "niveau:"    // Hash prefix: niveau:{id} -> niveau details
	niveauSeqKey     = "niveau:seq" // Counter used to assign IDs
)

// RedisService handles niveau persistence in Redis
type RedisService struct {
	Client *redis.Client
	log    *zap.Logger
}

// NewRedisService creates a new RedisService instance
func NewRedisService(client *redis.Client, logger *zap.Logger) *RedisService {
	return &RedisService{
		Client: client,
		log:    logger,
	}
}

// Helper to generate niveau info key
func getNiveauInfoKey(id int64) string {
	return niveauInfoPrefix + strconv.FormatInt(id, 10)
}

func niveauFields(n models.Niveau) map[string]interface{} {
	semestre := ""
	if id := n.SemestreID(); id != 0 {
		semestre = strconv.FormatInt(id, 10)
	}
	return map[string]interface{}{
		"id":         n.ID,
		"classe":     n.Classe,
		"tp":         n.Tp,
		"td":         n.Td,
		"semestreId": semestre,
	}
}

func niveauFromHash(data map[string]string) (*models.Niveau, error) {
	id, err := strconv.ParseInt(data["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt niveau id %q: %w", data["id"], err)
	}
	n := &models.Niveau{
		ID:     id,
		Classe: data["classe"],
		Tp:     data["tp"],
		Td:     data["td"],
	}
	if raw := data["semestreId"]; raw != "" {
		semestreID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt semestre id %q for niveau %d: %w", raw, id, err)
		}
		n.Semestre = &models.SemestreRef{ID: semestreID}
	}
	return n, nil
}

// --- Niveau Operations ---

// CreateNiveau assigns a new ID to n and stores it
func (s *RedisService) CreateNiveau(ctx context.Context, n models.Niveau) (*models.Niveau, error) {
	if n.ID != 0 {
		return nil, errors.New("a new niveau cannot already have an ID")
	}
	id, err := s.Client.Incr(ctx, niveauSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate niveau ID: %w", err)
	}
	n.ID = id

	if err := s.save(ctx, n); err != nil {
		return nil, err
	}
	s.log.Debug("Created niveau", zap.Int64("id", n.ID), zap.String("classe", n.Classe))
	return &n, nil
}

// SaveNiveau replaces an existing niveau
func (s *RedisService) SaveNiveau(ctx context.Context, n models.Niveau) (*models.Niveau, error) {
	if n.ID == 0 {
		return nil, errors.New("niveau ID is required")
	}
	if err := s.save(ctx, n); err != nil {
		return nil, err
	}
	s.log.Debug("Saved niveau", zap.Int64("id", n.ID))
	return &n, nil
}

func (s *RedisService) save(ctx context.Context, n models.Niveau) error {
	key := getNiveauInfoKey(n.ID)
	pipe := s.Client.TxPipeline()
	pipe.ZAdd(ctx, niveausKey, &redis.Z{Score: float64(n.ID), Member: n.ID})
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, niveauFields(n))

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Error("Error saving niveau", zap.Int64("id", n.ID), zap.Error(err))
		return fmt.Errorf("failed to save niveau to Redis: %w", err)
	}
	return nil
}

// GetNiveauByID retrieves a niveau, or nil when it does not exist
func (s *RedisService) GetNiveauByID(ctx context.Context, id int64) (*models.Niveau, error) {
	data, err := s.Client.HGetAll(ctx, getNiveauInfoKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get niveau from Redis: %w", err)
	}
	if len(data) == 0 {
		return nil, nil // Not found
	}
	return niveauFromHash(data)
}

// NiveauExists checks the niveau index for id
func (s *RedisService) NiveauExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.Client.ZScore(ctx, niveausKey, strconv.FormatInt(id, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check niveau existence: %w", err)
	}
	return true, nil
}

// PatchNiveau merges the non-nil fields of p into the stored niveau. It
// returns nil when the niveau does not exist.
func (s *RedisService) PatchNiveau(ctx context.Context, p models.NiveauPatch) (*models.Niveau, error) {
	existing, err := s.GetNiveauByID(ctx, p.ID)
	if err != nil || existing == nil {
		return nil, err
	}
	p.Apply(existing)
	return s.SaveNiveau(ctx, *existing)
}

// GetAllNiveaus retrieves every niveau ordered by sort
func (s *RedisService) GetAllNiveaus(ctx context.Context, sort models.SortSpec) ([]models.Niveau, error) {
	ids, err := s.Client.ZRange(ctx, niveausKey, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.Niveau{}, nil
		}
		return nil, fmt.Errorf("failed to get niveau IDs from Redis: %w", err)
	}

	pipe := s.Client.Pipeline()
	cmds := make([]*redis.StringStringMapCmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, pipe.HGetAll(ctx, niveauInfoPrefix+id))
	}
	if len(cmds) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("failed to load niveaus from Redis: %w", err)
		}
	}

	niveaus := make([]models.Niveau, 0, len(cmds))
	for i, cmd := range cmds {
		data := cmd.Val()
		if len(data) == 0 {
			s.log.Warn("Niveau indexed but missing details", zap.String("id", ids[i]))
			continue
		}
		n, err := niveauFromHash(data)
		if err != nil {
			// Log the error but keep the rest of the list
			s.log.Error("Skipping unreadable niveau", zap.String("id", ids[i]), zap.Error(err))
			continue
		}
		niveaus = append(niveaus, *n)
	}

	models.SortNiveaus(niveaus, sort)
	return niveaus, nil
}

// CountNiveaus returns the number of stored niveaus
func (s *RedisService) CountNiveaus(ctx context.Context) (int64, error) {
	count, err := s.Client.ZCard(ctx, niveausKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to count niveaus: %w", err)
	}
	return count, nil
}

// DeleteNiveau removes a niveau; deleting a missing niveau is not an error
func (s *RedisService) DeleteNiveau(ctx context.Context, id int64) error {
	pipe := s.Client.TxPipeline()
	pipe.ZRem(ctx, niveausKey, strconv.FormatInt(id, 10))
	pipe.Del(ctx, getNiveauInfoKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete niveau %d: %w", id, err)
	}
	s.log.Debug("Deleted niveau", zap.Int64("id", id))
	return nil
}

// Ping checks the Redis connection
func (s *RedisService) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// --- Seed Data ---

// SeedIfEmpty adds sample niveaus when none are stored yet
func (s *RedisService) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := s.CountNiveaus(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log.Info("Found existing niveaus, skipping seed", zap.Int64("count", count))
		return 0, nil
	}

	samples := []models.Niveau{
		{Classe: "LSI1", Tp: "TP1", Td: "TD1", Semestre: &models.SemestreRef{ID: 1}},
		{Classe: "LSI2", Tp: "TP2", Td: "TD1", Semestre: &models.SemestreRef{ID: 1}},
		{Classe: "ING1", Tp: "TP1", Td: "TD2", Semestre: &models.SemestreRef{ID: 2}},
		{Classe: "MP1", Tp: "TP3", Td: "TD3"},
	}
	seeded := 0
	for _, n := range samples {
		if _, err := s.CreateNiveau(ctx, n); err != nil {
			s.log.Error("Error seeding niveau", zap.String("classe", n.Classe), zap.Error(err))
			continue
		}
		seeded++
	}
	s.log.Info("Seeded niveaus", zap.Int("count", seeded))
	return seeded, nil
}

// --- Utility ---

// InitializeRedisClient creates and tests a Redis client connection
func InitializeRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}
