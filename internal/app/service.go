// Package app provides the core serving service wired into the HTTP
// API: it loads the training artifacts once at startup and answers
// predictions and ranking queries from them.
package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/marquee/internal/adapters/repository"
	"github.com/okian/marquee/internal/domain/encoding"
	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/internal/domain/predict"
	"github.com/okian/marquee/internal/domain/schema"
	"github.com/okian/marquee/internal/domain/vector"
	"github.com/okian/marquee/pkg/logger"
	"github.com/okian/marquee/pkg/metrics"
)

// Service answers predictions against the persisted schema and model.
// All fields are written once in Start and read-only afterwards, so
// request handling needs no locking.
type Service struct {
	log logger.Logger

	schemaPath   string
	modelPath    string
	rankingsPath string

	schema   *schema.Schema
	model    *predict.Model
	rankings repository.Store

	started     time.Time
	predictions atomic.Int64
}

// Prediction is the outcome of one inference request.
type Prediction struct {
	RequestID       string
	Revenue         float64 // dollars
	RevenueMillions float64
	SchemaHash      string
}

// New creates a Service with the given options.
func New(opts ...Option) *Service {
	s := &Service{
		log:          logger.Named("app"),
		schemaPath:   "artifacts/schema.json",
		modelPath:    "artifacts/model.json",
		rankingsPath: "artifacts/rankings.json",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the artifacts. A missing or unverifiable schema or model
// is fatal: every vector must be built from the persisted schema, so
// serving without one cannot produce meaningful output. Missing
// rankings only disable the talent endpoints.
func (s *Service) Start(ctx context.Context) error {
	sch, err := schema.Load(s.schemaPath)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	m, err := predict.Load(s.modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	if m.SchemaHash() != sch.Hash() {
		return fmt.Errorf("model hash %s, schema hash %s: %w",
			m.SchemaHash(), sch.Hash(), predict.ErrSchemaMismatch)
	}

	rankings, err := repository.Load(s.rankingsPath)
	if err != nil {
		s.log.Warn(ctx, "rankings artifact unavailable; talent endpoints disabled",
			logger.String("path", s.rankingsPath), logger.Error(err))
		rankings = repository.NewRankingStore()
	}

	s.schema = sch
	s.model = m
	s.rankings = rankings
	s.started = time.Now()

	metrics.SetSchemaFeatureCount(sch.Len())
	metrics.SetTalentCount(repository.KindDirector, rankings.Count(ctx, repository.KindDirector))
	metrics.SetTalentCount(repository.KindActor, rankings.Count(ctx, repository.KindActor))

	s.log.Info(ctx, "service started",
		logger.Int("features", sch.Len()),
		logger.String("schema_hash", sch.Hash()))
	return nil
}

// Stop releases nothing today; it exists for symmetry with Start.
func (s *Service) Stop() {}

// Predict builds a schema-aligned vector from the live input and runs
// the model. Unrecognized season or genre labels are not errors; they
// contribute no signal and are counted for observability.
func (s *Service) Predict(ctx context.Context, in model.LiveInput) (Prediction, error) {
	start := time.Now()

	if _, ok := s.schema.Index(encoding.SeasonFeature(in.Season)); !ok {
		metrics.RecordUnknownCategory("season")
		s.log.Debug(ctx, "season label not in schema", logger.String("season", in.Season))
	}
	if _, ok := s.schema.Index(encoding.GenreFeature(in.PrimaryGenre)); !ok {
		metrics.RecordUnknownCategory("genre")
		s.log.Debug(ctx, "genre label not in schema", logger.String("genre", in.PrimaryGenre))
	}

	vec := vector.Build(s.schema, in)
	revenue, err := s.model.Predict(vec)
	if err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}

	s.predictions.Add(1)
	metrics.RecordPrediction(time.Since(start).Seconds())

	return Prediction{
		RequestID:       uuid.NewString(),
		Revenue:         revenue,
		RevenueMillions: revenue / 1e6,
		SchemaHash:      s.schema.Hash(),
	}, nil
}

// SchemaFeatures returns the ordered feature names being served.
func (s *Service) SchemaFeatures() []string {
	return s.schema.Features()
}

// SchemaHash returns the hash of the schema being served.
func (s *Service) SchemaHash() string {
	return s.schema.Hash()
}

// TopTalent returns the best n talents of kind.
func (s *Service) TopTalent(ctx context.Context, kind string, n int) ([]repository.Entry, error) {
	return s.rankings.TopN(ctx, kind, n)
}

// TalentRank returns the ranking entry for one exact talent name.
func (s *Service) TalentRank(ctx context.Context, kind, name string) (repository.Entry, error) {
	return s.rankings.Rank(ctx, kind, name)
}

// GetStats reports serving statistics for /stats and the metrics
// updater.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	return map[string]interface{}{
		"uptimeSeconds":  int(time.Since(s.started).Seconds()),
		"predictions":    s.predictions.Load(),
		"schemaFeatures": s.schema.Len(),
		"schemaHash":     s.schema.Hash(),
		"directors":      s.rankings.Count(ctx, repository.KindDirector),
		"actors":         s.rankings.Count(ctx, repository.KindActor),
	}
}
