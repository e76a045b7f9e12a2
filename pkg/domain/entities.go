// Package domain defines the mission and communication records, their
// value types, and the ports consumed by the mission control store.
package domain

// Field bounds for mission and communication records. Lengths are in bytes.
const (
	MaxNameLength      = 50
	MaxDateLength      = 10 // YYYY-MM-DD
	MaxTimestampLength = 16 // YYYY-MM-DD HH:MM
	MaxMessageLength   = 256
)

// InitialCommCapacity is the number of entry slots allocated for a new
// mission's communication log.
const InitialCommCapacity = 4

// EntityType identifies the type of record held by the store.
type EntityType string

const (
	// EntityMission identifies a mission record.
	EntityMission EntityType = "mission"
	// EntityCommunication identifies a communication log entry.
	EntityCommunication EntityType = "communication"
)

// MissionStatus represents the lifecycle state of a mission.
type MissionStatus string

// Mission statuses. Only MissionStatusPlanned is assigned by the store.
const (
	MissionStatusPlanned   MissionStatus = "planned"
	MissionStatusActive    MissionStatus = "active"
	MissionStatusCompleted MissionStatus = "completed"
	MissionStatusAborted   MissionStatus = "aborted"
)

// Valid reports whether the status is one of the defined values.
func (s MissionStatus) Valid() bool {
	switch s {
	case MissionStatusPlanned, MissionStatusActive, MissionStatusCompleted, MissionStatusAborted:
		return true
	}
	return false
}

// MessagePriority classifies a communication entry.
type MessagePriority string

// Message priorities accepted by the communication log.
const (
	PriorityRoutine   MessagePriority = "routine"
	PriorityUrgent    MessagePriority = "urgent"
	PriorityEmergency MessagePriority = "emergency"
)

// Valid reports whether the priority is one of the defined values.
func (p MessagePriority) Valid() bool {
	switch p {
	case PriorityRoutine, PriorityUrgent, PriorityEmergency:
		return true
	}
	return false
}

// CommunicationEntry is a single logged message belonging to one mission.
type CommunicationEntry struct {
	LogID        int             `json:"log_id" yaml:"log_id"`
	Timestamp    string          `json:"timestamp" yaml:"timestamp"`
	Priority     MessagePriority `json:"priority" yaml:"priority"`
	Message      string          `json:"message" yaml:"message"`
	Acknowledged bool            `json:"acknowledged" yaml:"acknowledged"`
}

// Mission is a read-side view of a tracked mission and its communications.
type Mission struct {
	ID             int                  `json:"id" yaml:"id"`
	Name           string               `json:"name" yaml:"name"`
	LaunchDate     string               `json:"launch_date" yaml:"launch_date"`
	Status         MissionStatus        `json:"status" yaml:"status"`
	Communications []CommunicationEntry `json:"communications" yaml:"communications"`
}

// LastCommunication returns the most recently appended entry, if any.
func (m Mission) LastCommunication() (CommunicationEntry, bool) {
	if len(m.Communications) == 0 {
		return CommunicationEntry{}, false
	}
	return m.Communications[len(m.Communications)-1], true
}
