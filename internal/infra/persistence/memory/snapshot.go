package memory

import (
	"fmt"

	"missioncontrol/pkg/domain"
)

const opImportState = "import_state"

// Snapshot captures a point-in-time clone of the store state.
type Snapshot struct {
	Capacity int              `json:"capacity" yaml:"capacity"`
	Missions []domain.Mission `json:"missions" yaml:"missions"`
}

// ExportState returns a deep copy of every mission and its log.
func (s *Store) ExportState() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	return Snapshot{Capacity: s.Cap(), Missions: s.ListMissions()}
}

// ImportState replaces the store contents with the snapshot. Records are
// validated with the same rules as CreateMission and AppendCommunication,
// except that any defined status and acknowledgement flag are kept. Log ids
// must run 1..n. The mission capacity starts from the store's current one and
// doubles until the records fit. A larger snapshot capacity is kept up to
// twice the record count. Log capacities start from the configured value and
// double the same way. On any error the store is left as it was.
func (s *Store) ImportState(snapshot Snapshot) error {
	if s == nil {
		return domain.InvalidArgument(opImportState, "store", "store is nil")
	}
	if err := s.validateSnapshot(snapshot); err != nil {
		return err
	}

	capacity := max(s.missions.capacity(), 1)
	for capacity < len(snapshot.Missions) {
		capacity *= 2
	}
	if snapshot.Capacity > capacity {
		capacity = max(capacity, min(snapshot.Capacity, 2*len(snapshot.Missions)))
	}
	missions, err := newBuffer[missionRecord](s.alloc, capacity)
	if err != nil {
		return domain.ResourceExhausted(opImportState, fmt.Errorf("allocate missions: %w", err))
	}
	rollback := func() {
		for i := range missions.live() {
			missions.at(i).log.release()
		}
		missions.release()
	}
	for _, m := range snapshot.Missions {
		logCap := s.logCapacity
		for logCap < len(m.Communications) {
			logCap *= 2
		}
		log, err := newCommunicationLog(s.alloc, logCap)
		if err != nil {
			rollback()
			return domain.ResourceExhausted(opImportState, fmt.Errorf("allocate log of mission %d: %w", m.ID, err))
		}
		for _, entry := range m.Communications {
			log.entries.push(entry)
		}
		missions.push(missionRecord{
			id:         m.ID,
			name:       m.Name,
			launchDate: m.LaunchDate,
			status:     m.Status,
			log:        log,
		})
	}

	s.Release()
	s.missions = missions
	return nil
}

func (s *Store) validateSnapshot(snapshot Snapshot) error {
	seen := make(map[int]struct{}, len(snapshot.Missions))
	for _, m := range snapshot.Missions {
		if m.ID <= 0 {
			return domain.InvalidArgument(opImportState, "mission_id", "must be positive, got %d", m.ID)
		}
		if _, dup := seen[m.ID]; dup {
			return domain.Conflict(opImportState, domain.EntityMission, m.ID)
		}
		seen[m.ID] = struct{}{}
		if err := checkText(opImportState, "name", m.Name, domain.MaxNameLength); err != nil {
			return err
		}
		if err := checkText(opImportState, "launch_date", m.LaunchDate, domain.MaxDateLength); err != nil {
			return err
		}
		if !s.formats.ValidDate(m.LaunchDate) {
			return domain.InvalidArgument(opImportState, "launch_date", "%q is not YYYY-MM-DD", m.LaunchDate)
		}
		if !m.Status.Valid() {
			return domain.InvalidArgument(opImportState, "status", "unknown status %q for mission %d", m.Status, m.ID)
		}
		for i, entry := range m.Communications {
			if entry.LogID != i+1 {
				return domain.InvalidArgument(opImportState, "log_id", "mission %d entry %d has log id %d", m.ID, i, entry.LogID)
			}
			if err := checkText(opImportState, "message", entry.Message, domain.MaxMessageLength); err != nil {
				return err
			}
			if err := checkText(opImportState, "timestamp", entry.Timestamp, domain.MaxTimestampLength); err != nil {
				return err
			}
			if !s.formats.ValidTimestamp(entry.Timestamp) {
				return domain.InvalidArgument(opImportState, "timestamp", "%q is not YYYY-MM-DD HH:MM", entry.Timestamp)
			}
			if !entry.Priority.Valid() {
				return domain.InvalidArgument(opImportState, "priority", "unknown priority %q", entry.Priority)
			}
		}
	}
	return nil
}
