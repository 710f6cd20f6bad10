package service

import (
	"sync"
	"time"

	"grinder_relay/internal/models"
)

// livenessWindow is the maximum snapshot age before the gateway is reported
// disconnected.
const livenessWindow = 15 * time.Second

// StateCacheService holds the latest device snapshot. Go serves each request
// on its own goroutine, so reads and replacements are serialized by a mutex;
// values are copied in and out under the lock.
type StateCacheService struct {
	mu         sync.Mutex
	fields     models.SnapshotFields
	receivedAt time.Time
	hasData    bool

	now func() time.Time // injectable clock for tests
}

func NewStateCacheService() *StateCacheService {
	return &StateCacheService{now: time.Now}
}

// Push replaces the cached snapshot wholesale and stamps the receipt time.
// No field-level merge: the cache holds whatever the gateway last sent, with
// server-reserved keys stripped.
func (s *StateCacheService) Push(fields models.SnapshotFields) {
	sanitized := fields.Sanitized()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields = sanitized
	s.receivedAt = s.now().UTC()
	s.hasData = true
}

// Read returns the cached snapshot with connected derived against the
// reader's clock. Before the first push the snapshot is empty and
// disconnected.
func (s *StateCacheService) Read() models.DeviceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.DeviceSnapshot{
		Fields: make(models.SnapshotFields, len(s.fields)),
	}
	for k, v := range s.fields {
		snap.Fields[k] = v
	}
	if s.hasData {
		received := s.receivedAt
		snap.ReceivedAt = &received
		snap.Connected = s.now().Sub(received) < livenessWindow
	}
	return snap
}
