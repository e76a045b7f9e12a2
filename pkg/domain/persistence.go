package domain

// FormatValidator supplies the date and timestamp predicates the store
// consumes. Implementations must be pure.
type FormatValidator interface {
	// ValidDate reports whether s matches YYYY-MM-DD.
	ValidDate(s string) bool
	// ValidTimestamp reports whether s matches YYYY-MM-DD HH:MM.
	ValidTimestamp(s string) bool
}

// MissionRepository is the store capability used by higher layers.
type MissionRepository interface {
	CreateMission(id int, name, launchDate string) (Mission, error)
	AppendCommunication(missionID int, timestamp string, priority MessagePriority, message string) (CommunicationEntry, error)
	FindMission(id int) (Mission, bool)
	ListMissions() []Mission
	Communications(missionID int) ([]CommunicationEntry, bool)
	Len() int
	Cap() int
}
