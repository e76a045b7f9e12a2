// Package memory provides the in-memory mission store: growable mission
// records, each owning a growable communication log.
package memory

import (
	"fmt"

	"missioncontrol/internal/validation"
	"missioncontrol/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain repository interface.
var _ domain.MissionRepository = (*Store)(nil)

const (
	opNewStore            = "new_store"
	opCreateMission       = "create_mission"
	opAppendCommunication = "append_communication"
)

type missionRecord struct {
	id         int
	name       string
	launchDate string
	status     domain.MissionStatus
	log        *CommunicationLog
}

func (r *missionRecord) view() domain.Mission {
	return domain.Mission{
		ID:             r.id,
		Name:           r.name,
		LaunchDate:     r.launchDate,
		Status:         r.status,
		Communications: r.log.Entries(),
	}
}

// Store holds missions in insertion order. It is not safe for concurrent use.
type Store struct {
	missions    buffer[missionRecord]
	alloc       Allocator
	formats     domain.FormatValidator
	logCapacity int
}

// Option customises a Store at construction.
type Option func(*Store)

// WithAllocator sets the allocator that admits storage reservations.
func WithAllocator(a Allocator) Option {
	return func(s *Store) {
		if a != nil {
			s.alloc = a
		}
	}
}

// WithFormatValidator sets the date and timestamp predicates.
func WithFormatValidator(v domain.FormatValidator) Option {
	return func(s *Store) {
		if v != nil {
			s.formats = v
		}
	}
}

// WithLogCapacity sets the initial slot count of every new communication log.
func WithLogCapacity(n int) Option {
	return func(s *Store) { s.logCapacity = n }
}

// NewStore constructs an empty store with room for initialCapacity missions.
func NewStore(initialCapacity int, opts ...Option) (*Store, error) {
	s := &Store{
		alloc:       UnboundedAllocator{},
		formats:     validation.Pattern{},
		logCapacity: domain.InitialCommCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	if initialCapacity <= 0 {
		return nil, domain.InvalidArgument(opNewStore, "initial_capacity", "must be positive, got %d", initialCapacity)
	}
	if s.logCapacity <= 0 {
		return nil, domain.InvalidArgument(opNewStore, "log_capacity", "must be positive, got %d", s.logCapacity)
	}
	missions, err := newBuffer[missionRecord](s.alloc, initialCapacity)
	if err != nil {
		return nil, domain.ResourceExhausted(opNewStore, fmt.Errorf("allocate missions: %w", err))
	}
	s.missions = missions
	return s, nil
}

// Len returns the number of live missions.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.missions.size()
}

// Cap returns the number of mission slots currently allocated.
func (s *Store) Cap() int {
	if s == nil {
		return 0
	}
	return s.missions.capacity()
}

// find scans the live range for id.
func (s *Store) find(id int) (*missionRecord, bool) {
	bound := min(s.missions.capacity(), s.missions.size())
	for i := 0; i < bound; i++ {
		rec := s.missions.at(i)
		if rec.id == id {
			return rec, true
		}
	}
	return nil, false
}

// CreateMission appends a PLANNED mission with an empty communication log.
// It fails without mutation on invalid input, a duplicate id, or when storage
// for the log or the grown mission array cannot be reserved.
func (s *Store) CreateMission(id int, name, launchDate string) (domain.Mission, error) {
	if s == nil {
		return domain.Mission{}, domain.InvalidArgument(opCreateMission, "store", "store is nil")
	}
	if id <= 0 {
		return domain.Mission{}, domain.InvalidArgument(opCreateMission, "mission_id", "must be positive, got %d", id)
	}
	if err := checkText(opCreateMission, "name", name, domain.MaxNameLength); err != nil {
		return domain.Mission{}, err
	}
	if err := checkText(opCreateMission, "launch_date", launchDate, domain.MaxDateLength); err != nil {
		return domain.Mission{}, err
	}
	if !s.formats.ValidDate(launchDate) {
		return domain.Mission{}, domain.InvalidArgument(opCreateMission, "launch_date", "%q is not YYYY-MM-DD", launchDate)
	}
	if _, exists := s.find(id); exists {
		return domain.Mission{}, domain.Conflict(opCreateMission, domain.EntityMission, id)
	}

	log, err := newCommunicationLog(s.alloc, s.logCapacity)
	if err != nil {
		return domain.Mission{}, domain.ResourceExhausted(opCreateMission, fmt.Errorf("allocate communication log: %w", err))
	}
	if s.missions.full() {
		if err := s.missions.grow(); err != nil {
			log.release()
			return domain.Mission{}, domain.ResourceExhausted(opCreateMission, fmt.Errorf("grow missions from %d: %w", s.missions.capacity(), err))
		}
	}
	s.missions.push(missionRecord{
		id:         id,
		name:       name,
		launchDate: launchDate,
		status:     domain.MissionStatusPlanned,
		log:        log,
	})
	return s.missions.at(s.missions.size() - 1).view(), nil
}

// AppendCommunication adds an entry to the log of the given mission and
// returns it. The entry's log id is one past the mission's previous count.
func (s *Store) AppendCommunication(missionID int, timestamp string, priority domain.MessagePriority, message string) (domain.CommunicationEntry, error) {
	if s == nil {
		return domain.CommunicationEntry{}, domain.InvalidArgument(opAppendCommunication, "store", "store is nil")
	}
	if err := checkText(opAppendCommunication, "message", message, domain.MaxMessageLength); err != nil {
		return domain.CommunicationEntry{}, err
	}
	if err := checkText(opAppendCommunication, "timestamp", timestamp, domain.MaxTimestampLength); err != nil {
		return domain.CommunicationEntry{}, err
	}
	if !s.formats.ValidTimestamp(timestamp) {
		return domain.CommunicationEntry{}, domain.InvalidArgument(opAppendCommunication, "timestamp", "%q is not YYYY-MM-DD HH:MM", timestamp)
	}
	if !priority.Valid() {
		return domain.CommunicationEntry{}, domain.InvalidArgument(opAppendCommunication, "priority", "unknown priority %q", priority)
	}
	rec, ok := s.find(missionID)
	if !ok {
		return domain.CommunicationEntry{}, domain.NotFound(opAppendCommunication, domain.EntityMission, missionID)
	}
	entry, err := rec.log.append(timestamp, priority, message)
	if err != nil {
		return domain.CommunicationEntry{}, domain.ResourceExhausted(opAppendCommunication, fmt.Errorf("grow log of mission %d from %d: %w", missionID, rec.log.Cap(), err))
	}
	return entry, nil
}

// FindMission returns a snapshot of the mission with the given id.
func (s *Store) FindMission(id int) (domain.Mission, bool) {
	if s == nil {
		return domain.Mission{}, false
	}
	rec, ok := s.find(id)
	if !ok {
		return domain.Mission{}, false
	}
	return rec.view(), true
}

// ListMissions returns snapshots of all missions in insertion order.
func (s *Store) ListMissions() []domain.Mission {
	if s == nil {
		return nil
	}
	out := make([]domain.Mission, 0, s.missions.size())
	for i := range s.missions.live() {
		out = append(out, s.missions.at(i).view())
	}
	return out
}

// Communications returns a copy of the mission's log entries.
func (s *Store) Communications(missionID int) ([]domain.CommunicationEntry, bool) {
	log, ok := s.missionLog(missionID)
	if !ok {
		return nil, false
	}
	return log.Entries(), true
}

// missionLog returns the live log owned by the mission. Release and
// ImportState free it, so callers must not hold it across those calls.
func (s *Store) missionLog(missionID int) (*CommunicationLog, bool) {
	if s == nil {
		return nil, false
	}
	rec, ok := s.find(missionID)
	if !ok {
		return nil, false
	}
	return rec.log, true
}

// LogStats reports count and capacity of a mission's communication log.
type LogStats struct {
	Count    int `json:"count"`
	Capacity int `json:"capacity"`
}

// LogStats returns the size of the mission's communication log.
func (s *Store) LogStats(missionID int) (LogStats, bool) {
	log, ok := s.missionLog(missionID)
	if !ok {
		return LogStats{}, false
	}
	return LogStats{Count: log.Len(), Capacity: log.Cap()}, true
}

// StoreStats aggregates sizes across the whole store.
type StoreStats struct {
	Missions              int `json:"missions"`
	Capacity              int `json:"capacity"`
	Communications        int `json:"communications"`
	CommunicationCapacity int `json:"communication_capacity"`
}

// Stats walks every live mission and sums its log sizes.
func (s *Store) Stats() StoreStats {
	if s == nil {
		return StoreStats{}
	}
	stats := StoreStats{Missions: s.Len(), Capacity: s.Cap()}
	for i := range s.missions.live() {
		log := s.missions.at(i).log
		stats.Communications += log.Len()
		stats.CommunicationCapacity += log.Cap()
	}
	return stats
}

// Release returns all reserved storage to the allocator and empties the
// store. Later creations fail with a resource-exhausted error.
func (s *Store) Release() {
	if s == nil {
		return
	}
	for i := range s.missions.live() {
		s.missions.at(i).log.release()
	}
	s.missions.release()
}

func checkText(op, field, value string, maxLen int) error {
	if value == "" {
		return domain.InvalidArgument(op, field, "must not be empty")
	}
	if len(value) > maxLen {
		return domain.InvalidArgument(op, field, "exceeds %d bytes (got %d)", maxLen, len(value))
	}
	return nil
}
