package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"missioncontrol/internal/infra/persistence/memory"
	"missioncontrol/pkg/domain"
)

// Operation names shared by logs, metrics, traces and audit entries.
const (
	OpCreateMission       = "create_mission"
	OpAppendCommunication = "append_communication"
	OpGetMission          = "get_mission"
	OpListMissions        = "list_missions"
	OpListCommunications  = "list_communications"
	OpExportState         = "export_state"
	OpImportState         = "import_state"
)

// Service wraps a mission store with logging, metrics, tracing and audit.
// Like the store it is owned by a single goroutine.
type Service struct {
	store   *memory.Store
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	audit   AuditRecorder
	clock   Clock

	storeOpts  []memory.Option
	registerer prometheus.Registerer
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(l Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(c Clock) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithMetricsRecorder attaches a metrics sink.
func WithMetricsRecorder(m MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer attaches a tracer.
func WithTracer(t Tracer) ServiceOption {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithAuditRecorder attaches an audit sink for mutating operations.
func WithAuditRecorder(a AuditRecorder) ServiceOption {
	return func(s *Service) {
		if a != nil {
			s.audit = a
		}
	}
}

// WithStoreOptions forwards options to the store built by
// NewInMemoryService. NewService ignores them.
func WithStoreOptions(opts ...memory.Option) ServiceOption {
	return func(s *Service) {
		s.storeOpts = append(s.storeOpts, opts...)
	}
}

func newService(opts []ServiceOption) *Service {
	s := &Service{
		logger:  noopLogger{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
		audit:   noopAudit{},
		clock:   systemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewService constructs a service backed by the supplied store.
func NewService(store *memory.Store, opts ...ServiceOption) *Service {
	s := newService(opts)
	s.store = store
	return s
}

// NewInMemoryService creates a store with the given initial capacity and
// wraps it in a service.
func NewInMemoryService(initialCapacity int, opts ...ServiceOption) (*Service, error) {
	s := newService(opts)
	store, err := memory.NewStore(initialCapacity, s.storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("new mission store: %w", err)
	}
	s.store = store
	s.logger.Info("mission store ready", "capacity", store.Cap())
	return s, nil
}

// Store returns the underlying storage implementation.
func (s *Service) Store() *memory.Store {
	return s.store
}

// CreateMission registers a new planned mission.
func (s *Service) CreateMission(ctx context.Context, id int, name, launchDate string) (domain.Mission, error) {
	var created domain.Mission
	err := s.run(ctx, OpCreateMission, id, true, func() (int, error) {
		var err error
		created, err = s.store.CreateMission(id, name, launchDate)
		return 0, err
	})
	if err != nil {
		return domain.Mission{}, fmt.Errorf("create mission %d: %w", id, err)
	}
	return created, nil
}

// AppendCommunication records a message on the mission's log.
func (s *Service) AppendCommunication(ctx context.Context, missionID int, timestamp string, priority domain.MessagePriority, message string) (domain.CommunicationEntry, error) {
	var entry domain.CommunicationEntry
	err := s.run(ctx, OpAppendCommunication, missionID, true, func() (int, error) {
		var err error
		entry, err = s.store.AppendCommunication(missionID, timestamp, priority, message)
		return entry.LogID, err
	})
	if err != nil {
		return domain.CommunicationEntry{}, fmt.Errorf("append communication to mission %d: %w", missionID, err)
	}
	return entry, nil
}

// GetMission returns a mission or a not-found error.
func (s *Service) GetMission(ctx context.Context, id int) (domain.Mission, error) {
	var mission domain.Mission
	err := s.run(ctx, OpGetMission, id, false, func() (int, error) {
		var ok bool
		mission, ok = s.store.FindMission(id)
		if !ok {
			return 0, domain.NotFound(OpGetMission, domain.EntityMission, id)
		}
		return 0, nil
	})
	return mission, err
}

// ListMissions returns every mission in insertion order.
func (s *Service) ListMissions(ctx context.Context) ([]domain.Mission, error) {
	var missions []domain.Mission
	err := s.run(ctx, OpListMissions, 0, false, func() (int, error) {
		missions = s.store.ListMissions()
		return 0, nil
	})
	return missions, err
}

// ListCommunications returns a mission's log entries in append order.
func (s *Service) ListCommunications(ctx context.Context, missionID int) ([]domain.CommunicationEntry, error) {
	var entries []domain.CommunicationEntry
	err := s.run(ctx, OpListCommunications, missionID, false, func() (int, error) {
		var ok bool
		entries, ok = s.store.Communications(missionID)
		if !ok {
			return 0, domain.NotFound(OpListCommunications, domain.EntityMission, missionID)
		}
		return 0, nil
	})
	return entries, err
}

// ExportState snapshots the store.
func (s *Service) ExportState(ctx context.Context) (memory.Snapshot, error) {
	var snapshot memory.Snapshot
	err := s.run(ctx, OpExportState, 0, false, func() (int, error) {
		snapshot = s.store.ExportState()
		return 0, nil
	})
	return snapshot, err
}

// ImportState replaces the store contents with snapshot.
func (s *Service) ImportState(ctx context.Context, snapshot memory.Snapshot) error {
	err := s.run(ctx, OpImportState, 0, true, func() (int, error) {
		return 0, s.store.ImportState(snapshot)
	})
	if err != nil {
		return fmt.Errorf("import state: %w", err)
	}
	return nil
}

// run executes fn inside a span and reports the outcome to every sink.
// fn returns the log id it touched, if any, for the audit entry.
func (s *Service) run(ctx context.Context, op string, missionID int, audited bool, fn func() (int, error)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := s.tracer.Start(ctx, op)
	start := s.clock.Now()

	var logID int
	err := ctx.Err()
	if err == nil {
		logID, err = fn()
	}

	elapsed := s.clock.Now().Sub(start)
	span.End(err)
	s.metrics.Observe(ctx, op, err == nil, elapsed)

	if audited {
		entry := AuditEntry{
			ID:         uuid.NewString(),
			Operation:  op,
			MissionID:  missionID,
			LogID:      logID,
			Status:     AuditStatusSuccess,
			Duration:   elapsed,
			OccurredAt: start,
		}
		if err != nil {
			entry.Status = AuditStatusError
			entry.ErrorKind = domain.KindOf(err)
			entry.Error = err.Error()
		}
		s.audit.Record(ctx, entry)
	}

	if err != nil {
		s.logger.Warn("mission control operation failed",
			"operation", op,
			"mission_id", missionID,
			"kind", string(domain.KindOf(err)),
			"error", err,
		)
		return err
	}
	s.logger.Debug("mission control operation",
		"operation", op,
		"mission_id", missionID,
		"duration", elapsed,
	)
	return nil
}
