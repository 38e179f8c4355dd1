package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-cetak/internal/common"
	dbgen "github.com/noah-isme/backend-cetak/internal/db/gen"
	"github.com/noah-isme/backend-cetak/internal/pricing"
)

type queryProvider interface {
	GetBusinessRules(ctx context.Context, id string) (dbgen.BusinessRule, error)
	UpsertBusinessRules(ctx context.Context, arg dbgen.UpsertBusinessRulesParams) (dbgen.BusinessRule, error)
}

// Service loads the versioned business-rules record.
type Service struct {
	queries    queryProvider
	redis      *redis.Client
	ttl        time.Duration
	documentID string
	logger     zerolog.Logger
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Queries    queryProvider
	Redis      *redis.Client
	TTL        time.Duration
	DocumentID string
	Logger     zerolog.Logger
}

type cachedRules struct {
	Version int                   `json:"version"`
	Rules   pricing.BusinessRules `json:"rules"`
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("rules: queries provider is required")
	}
	id := strings.TrimSpace(cfg.DocumentID)
	if id == "" {
		id = "business_rules"
	}
	return &Service{
		queries:    cfg.Queries,
		redis:      cfg.Redis,
		ttl:        cfg.TTL,
		documentID: id,
		logger:     cfg.Logger,
	}, nil
}

func (s *Service) cacheKey() string { return "rules:" + s.documentID }

// Current returns the active rules with Version populated from the row.
func (s *Service) Current(ctx context.Context) (pricing.BusinessRules, error) {
	if cached, ok := s.readCache(ctx); ok {
		return cached, nil
	}
	row, err := s.queries.GetBusinessRules(ctx, s.documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pricing.BusinessRules{}, common.NotFound("business rules not found", err)
		}
		return pricing.BusinessRules{}, fmt.Errorf("get business rules: %w", err)
	}
	rules, err := decode(row)
	if err != nil {
		return pricing.BusinessRules{}, err
	}
	s.writeCache(ctx, rules)
	return rules, nil
}

// Replace stores a new rules document and bumps its version.
func (s *Service) Replace(ctx context.Context, rules pricing.BusinessRules) (pricing.BusinessRules, error) {
	if err := check(rules); err != nil {
		return pricing.BusinessRules{}, err
	}
	payload, err := json.Marshal(rules)
	if err != nil {
		return pricing.BusinessRules{}, fmt.Errorf("encode business rules: %w", err)
	}
	row, err := s.queries.UpsertBusinessRules(ctx, dbgen.UpsertBusinessRulesParams{ID: s.documentID, Rules: payload})
	if err != nil {
		return pricing.BusinessRules{}, fmt.Errorf("upsert business rules: %w", err)
	}
	stored, err := decode(row)
	if err != nil {
		return pricing.BusinessRules{}, err
	}
	if s.redis != nil {
		if err := s.redis.Del(ctx, s.cacheKey()).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("rules cache invalidation failed")
		}
	}
	return stored, nil
}

func (s *Service) readCache(ctx context.Context) (pricing.BusinessRules, bool) {
	if s.redis == nil || s.ttl <= 0 {
		return pricing.BusinessRules{}, false
	}
	data, err := s.redis.Get(ctx, s.cacheKey()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("rules cache read failed")
		}
		return pricing.BusinessRules{}, false
	}
	var cached cachedRules
	if err := json.Unmarshal(data, &cached); err != nil {
		return pricing.BusinessRules{}, false
	}
	cached.Rules.Version = cached.Version
	return cached.Rules, true
}

func (s *Service) writeCache(ctx context.Context, rules pricing.BusinessRules) {
	if s.redis == nil || s.ttl <= 0 {
		return
	}
	data, err := json.Marshal(cachedRules{Version: rules.Version, Rules: rules})
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, s.cacheKey(), data, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("rules cache write failed")
	}
}

func decode(row dbgen.BusinessRule) (pricing.BusinessRules, error) {
	var rules pricing.BusinessRules
	if len(row.Rules) == 0 {
		return rules, common.Internal("business rules document is empty", nil)
	}
	if err := json.Unmarshal(row.Rules, &rules); err != nil {
		return rules, common.Internal("business rules document is malformed", err)
	}
	rules.Version = int(row.Version)
	return rules, nil
}

// check rejects documents the engine could not use to estimate production time.
func check(r pricing.BusinessRules) error {
	var missing []string
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"PRINTING_SPEED_SPM", r.PrintingSpeedSPM},
		{"PERFECT_BINDER_SPEED_BPH", r.PerfectBinderSpeedBPH},
		{"SADDLE_STITCHER_SPEED_BPH", r.SaddleStitcherSpeedBPH},
		{"TRIMMING_BOOKS_PER_CYCLE", r.TrimmingBooksPerCycle},
	} {
		if field.value <= 0 {
			missing = append(missing, field.name)
		}
	}
	if r.DefaultLaborRate < 0 || r.DefaultMarkupPercent < 0 || r.DefaultSpoilagePercent < 0 {
		missing = append(missing, "defaults")
	}
	if len(missing) > 0 {
		return common.InvalidArgument("business rules must have positive speeds and non-negative defaults", nil).
			WithDetails(map[string]any{"fields": missing})
	}
	return nil
}
