// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/commishtools/draftgrade/internal/adapters/mq/queue"
	"github.com/commishtools/draftgrade/internal/adapters/mq/worker"
	"github.com/commishtools/draftgrade/internal/adapters/pubsub"
	"github.com/commishtools/draftgrade/internal/adapters/repository"
	"github.com/commishtools/draftgrade/internal/domain/dedupe"
	"github.com/commishtools/draftgrade/internal/domain/grading"
	"github.com/commishtools/draftgrade/internal/domain/model"
	"github.com/commishtools/draftgrade/internal/domain/normalize"
	"github.com/commishtools/draftgrade/internal/domain/projection"
	"github.com/commishtools/draftgrade/internal/domain/types"
	"github.com/commishtools/draftgrade/pkg/logger"
	"github.com/commishtools/draftgrade/pkg/metrics"
)

// graderAdapter adapts the grading engine to the worker.Grader interface,
// resolving pick ownership through the member store and publishing a
// completion event once a league's batch lands.
type graderAdapter struct {
	engine  *grading.Engine
	members repository.MemberStore
	broker  pubsub.Broker
}

func (a *graderAdapter) Grade(ctx context.Context, job worker.Job) (bool, error) {
	resolve := normalize.Resolver(func(externalUserID string) (string, bool) {
		return a.members.Resolve(ctx, job.LeagueID, externalUserID)
	})

	graded, err := a.engine.CalculateAllGrades(ctx, job, resolve)
	if err != nil || !graded {
		return graded, err
	}

	if a.broker != nil {
		e := pubsub.Event{
			Type:     pubsub.TypeGradesCompleted,
			LeagueID: job.LeagueID,
			At:       time.Now().UTC(),
		}
		if err := a.broker.Publish(ctx, e); err != nil {
			metrics.RecordPublishError()
		}
	}
	return true, nil
}

// Service implements the API dependencies for the draft grading system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	deduper  dedupe.Deduper
	jobQueue queue.Queue
	engine   *grading.Engine
	pool     *worker.Pool
	broker   pubsub.Broker

	// Configuration
	workerCount       int
	queueSize         int
	dedupeSize        int
	defaultLeagueSize int
	projectionSeed    int64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the grade store backend. Defaults to the in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBroker sets the notification broker for grade lifecycle events.
func WithBroker(broker pubsub.Broker) Option {
	return func(s *Service) {
		if broker != nil {
			s.broker = broker
		}
	}
}

// WithWorkerCount sets the number of grading workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithDefaultLeagueSize sets the team count assumed when a submission does
// not carry one.
func WithDefaultLeagueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.defaultLeagueSize = size
		}
	}
}

// WithProjectionSeed seeds the mock point projector.
func WithProjectionSeed(seed int64) Option {
	return func(s *Service) {
		s.projectionSeed = seed
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:       runtime.NumCPU() * 2,
		queueSize:         10000,
		dedupeSize:        50000,
		defaultLeagueSize: normalize.DefaultLeagueSize,
		projectionSeed:    42,
		logger:            nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting draft grading service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory grade store")
	}
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = queue.NewInMemoryQueue(
		queue.WithCapacity(s.queueSize),
	)
	s.engine = grading.New(s.store,
		grading.WithProjector(projection.NewMockProjector(
			projection.WithSeed(s.projectionSeed),
		)),
		grading.WithDefaultLeagueSize(s.defaultLeagueSize),
	)

	grader := &graderAdapter{
		engine:  s.engine,
		members: s.store,
		broker:  s.broker,
	}
	s.pool = worker.NewPool(s.workerCount, s.jobQueue, grader)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "draft grading service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping draft grading service...")

	if s.jobQueue != nil {
		_ = s.jobQueue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}
	if s.broker != nil {
		_ = s.broker.Close()
	}
	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(ctx, "draft grading service stopped")
}

// SeenAndRecord atomically checks if a submission id was seen and records it
// if not. Returns true if the submission was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordSubmissionDuplicate()
	}
	return seen
}

// Unrecord removes a submission id from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits a draft for asynchronous grading. Returns false on
// backpressure.
func (s *Service) Enqueue(ctx context.Context, sub model.DraftSubmission) bool {
	ok := s.jobQueue.Enqueue(ctx, sub)
	if ok {
		metrics.RecordSubmissionAccepted()
		s.logger.Debug(ctx, "draft submission enqueued",
			logger.String("submissionID", sub.SubmissionID),
			logger.String("leagueID", sub.LeagueID),
			logger.Int("picks", len(sub.Picks)),
		)
	}
	return ok
}

// LeagueGrades returns a league's grades ordered by projected rank.
func (s *Service) LeagueGrades(ctx context.Context, leagueID string) ([]types.GradeRecord, error) {
	grades, err := s.store.League(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	records := make([]types.GradeRecord, len(grades))
	for i, g := range grades {
		records[i] = types.FromGrade(g)
	}
	return records, nil
}

// UserGrade returns one member's grade.
func (s *Service) UserGrade(ctx context.Context, leagueID, userID string) (types.GradeRecord, error) {
	g, err := s.store.Grade(ctx, leagueID, userID)
	if err != nil {
		return types.GradeRecord{}, err
	}
	return types.FromGrade(g), nil
}

// ClearGrades removes every grade for a league so it can be regraded.
func (s *Service) ClearGrades(ctx context.Context, leagueID string) error {
	if err := s.store.Clear(ctx, leagueID); err != nil {
		return err
	}

	if s.broker != nil {
		e := pubsub.Event{
			Type:     pubsub.TypeGradesCleared,
			LeagueID: leagueID,
			At:       time.Now().UTC(),
		}
		if err := s.broker.Publish(ctx, e); err != nil {
			metrics.RecordPublishError()
		}
	}

	s.logger.Info(ctx, "league grades cleared", logger.String("leagueID", leagueID))
	return nil
}

// PutMembers registers external-id to member mappings for a league.
func (s *Service) PutMembers(ctx context.Context, leagueID string, members map[string]string) error {
	return s.store.PutMembers(ctx, leagueID, members)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		totalGrades := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalGrades"] = totalGrades

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalGrades(totalGrades)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
