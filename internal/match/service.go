package match

import (
	"context"
	"log/slog"
	"time"
)

// upcomingWindow is how far ahead the real upcoming-fixtures query looks.
const upcomingWindow = 7 * 24 * time.Hour

// syntheticUpcomingCount is how many fixtures the generator produces for an
// upcoming query.
const syntheticUpcomingCount = 3

// FixtureProvider fetches real fixtures from the upstream provider. An empty
// result with a nil error means the provider answered but had no data.
type FixtureProvider interface {
	LiveFixtures(ctx context.Context) ([]Record, error)
	UpcomingFixtures(ctx context.Context, from, to time.Time) ([]Record, error)
	FixtureByID(ctx context.Context, id int) ([]Record, error)
}

// Service is the hybrid match aggregator. When entitlement is premium it
// queries the provider and falls back to the generator on empty or failed
// responses; in free mode it serves synthetic data directly.
type Service struct {
	provider  FixtureProvider
	generator *Generator
	premium   bool
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates the aggregator. hasPremiumAccess is the result of the
// startup entitlement probe and is never re-evaluated: if the provider's
// entitlement changes mid-process the service will not notice until restart.
func NewService(provider FixtureProvider, hasPremiumAccess bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider:  provider,
		generator: NewGenerator(),
		premium:   hasPremiumAccess,
		logger:    logger,
		now:       time.Now,
	}
}

// HasPremiumAccess reports the process-wide entitlement flag.
func (s *Service) HasPremiumAccess() bool { return s.premium }

// Mode returns the envelope mode marker for this process.
func (s *Service) Mode() string {
	if s.premium {
		return ModePremium
	}
	return ModeFree
}

// LiveMatches returns current in-progress fixtures, synthetic when the real
// query is unavailable, empty, or fails.
func (s *Service) LiveMatches(ctx context.Context) (env Envelope) {
	defer s.recoverEnvelope("live", &env)

	if s.premium {
		records, err := s.provider.LiveFixtures(ctx)
		if err != nil {
			s.logger.Warn("live fixtures query failed, falling back to synthetic", "error", err)
		} else if len(records) > 0 {
			return s.envelope(records, SourceAPI)
		}
	}

	return s.envelope([]Record{s.generator.LiveFixture()}, SourceMock)
}

// UpcomingMatches returns scheduled fixtures for the next seven days,
// synthetic when the real query is unavailable, empty, or fails.
func (s *Service) UpcomingMatches(ctx context.Context) (env Envelope) {
	defer s.recoverEnvelope("upcoming", &env)

	if s.premium {
		from := s.now()
		records, err := s.provider.UpcomingFixtures(ctx, from, from.Add(upcomingWindow))
		if err != nil {
			s.logger.Warn("upcoming fixtures query failed, falling back to synthetic", "error", err)
		} else if len(records) > 0 {
			return s.envelope(records, SourceAPI)
		}
	}

	return s.envelope(s.generator.UpcomingFixtures(syntheticUpcomingCount), SourceMock)
}

// MatchDetails returns a single fixture by id, synthetic when the real
// lookup is unavailable, empty, or fails.
func (s *Service) MatchDetails(ctx context.Context, id int) (env Envelope) {
	defer s.recoverEnvelope("details", &env)

	if s.premium {
		records, err := s.provider.FixtureByID(ctx, id)
		if err != nil {
			s.logger.Warn("fixture lookup failed, falling back to synthetic", "fixture_id", id, "error", err)
		} else if len(records) > 0 {
			return s.envelope(records, SourceAPI)
		}
	}

	return s.envelope([]Record{s.generator.FixtureByID(id)}, SourceMock)
}

// envelope wraps records with provenance. Mode always reflects the
// process-wide entitlement flag, even when the data came from the generator;
// existing consumers rely on this.
func (s *Service) envelope(records []Record, source string) Envelope {
	return Envelope{
		Success: true,
		Data:    records,
		Count:   len(records),
		Source:  source,
		Mode:    s.Mode(),
	}
}

// recoverEnvelope is the outermost boundary: callers never see a panic, only
// an error-tagged envelope.
func (s *Service) recoverEnvelope(op string, env *Envelope) {
	if r := recover(); r != nil {
		s.logger.Error("match aggregation panicked", "op", op, "panic", r)
		*env = Envelope{
			Success: false,
			Data:    []Record{},
			Count:   0,
			Source:  SourceError,
			Mode:    s.Mode(),
		}
	}
}
