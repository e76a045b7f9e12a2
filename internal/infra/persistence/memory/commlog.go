package memory

import "missioncontrol/pkg/domain"

// CommunicationLog is the append-only message log owned by a single mission.
// Log ids are assigned from the entry count at append time, so they run
// 1, 2, 3... per mission independent of any other mission.
type CommunicationLog struct {
	entries buffer[domain.CommunicationEntry]
}

func newCommunicationLog(alloc Allocator, capacity int) (*CommunicationLog, error) {
	entries, err := newBuffer[domain.CommunicationEntry](alloc, capacity)
	if err != nil {
		return nil, err
	}
	return &CommunicationLog{entries: entries}, nil
}

// Len returns the number of entries in the log.
func (l *CommunicationLog) Len() int { return l.entries.size() }

// Cap returns the number of entry slots currently allocated.
func (l *CommunicationLog) Cap() int { return l.entries.capacity() }

// Entries returns a copy of the live entries in append order.
func (l *CommunicationLog) Entries() []domain.CommunicationEntry {
	return append([]domain.CommunicationEntry(nil), l.entries.live()...)
}

// Entry returns the entry with the given log id.
func (l *CommunicationLog) Entry(logID int) (domain.CommunicationEntry, bool) {
	if logID < 1 || logID > l.entries.size() {
		return domain.CommunicationEntry{}, false
	}
	return *l.entries.at(logID - 1), true
}

// append grows the log when full and stores a new unacknowledged entry.
// Inputs are validated by the store. On a failed grow nothing changes.
func (l *CommunicationLog) append(timestamp string, priority domain.MessagePriority, message string) (domain.CommunicationEntry, error) {
	if l.entries.full() {
		if err := l.entries.grow(); err != nil {
			return domain.CommunicationEntry{}, err
		}
	}
	entry := domain.CommunicationEntry{
		LogID:     l.entries.size() + 1,
		Timestamp: timestamp,
		Priority:  priority,
		Message:   message,
	}
	l.entries.push(entry)
	return entry, nil
}

func (l *CommunicationLog) release() { l.entries.release() }
