package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskmate-api/internal/events"
)

// RecordingNotifier records every identity passed to NotifyChanged.
type RecordingNotifier struct {
	mu         sync.Mutex
	identities []string
}

var _ events.Notifier = (*RecordingNotifier)(nil)

// NewRecordingNotifier creates an empty recorder.
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

// NotifyChanged implements events.Notifier.
func (n *RecordingNotifier) NotifyChanged(ctx context.Context, identity string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.identities = append(n.identities, identity)
}

// Identities returns the recorded identities in call order.
func (n *RecordingNotifier) Identities() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.identities))
	copy(out, n.identities)
	return out
}

// Count returns the number of recorded notifications.
func (n *RecordingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.identities)
}
