package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskbid/marketplace/internal/core/ports"
)

type recordingSettlementService struct {
	mu        sync.Mutex
	processed []ports.SettlementInput
	done      chan struct{}
	want      int
}

func newRecordingService(want int) *recordingSettlementService {
	return &recordingSettlementService{done: make(chan struct{}), want: want}
}

func (s *recordingSettlementService) Process(_ context.Context, in ports.SettlementInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed = append(s.processed, in)
	if len(s.processed) == s.want {
		close(s.done)
	}
	return nil
}

func (s *recordingSettlementService) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %d settlements", s.want)
	}
}

func TestDispatcher_ProcessesEnqueuedCallback(t *testing.T) {
	svc := newRecordingService(1)
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.SettlementInput{
		Status: ports.SettlementSuccess, Username: "alice", TaskTitle: "Fix bug",
	})

	svc.wait(t)
	if svc.processed[0].Username != "alice" || svc.processed[0].TaskTitle != "Fix bug" {
		t.Fatalf("unexpected input: %+v", svc.processed[0])
	}
}

func TestDispatcher_SameTitleProcessedInOrder(t *testing.T) {
	const n = 20
	svc := newRecordingService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < n; i++ {
		user := "buyer-" + string(rune('a'+i))
		d.Enqueue(ports.SettlementInput{
			Status: ports.SettlementSuccess, Username: user, TaskTitle: "same title",
		})
	}

	svc.wait(t)

	// all callbacks for one title land on one worker, so arrival order holds
	for i := 0; i < n; i++ {
		want := "buyer-" + string(rune('a'+i))
		if svc.processed[i].Username != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, svc.processed[i].Username)
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, newRecordingService(0), zerolog.Nop())

	first := d.shardIndex("Fix bug")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("Fix bug"); got != first {
			t.Fatalf("shard index not stable: %d vs %d", got, first)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingService(0), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
