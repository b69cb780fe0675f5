package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidtube/account-service/internal/core/ports"
)

type recordingStub struct {
	mu     sync.Mutex
	events map[string][]string
	total  int
	want   int
	done   chan struct{}
}

func newRecordingStub(want int) *recordingStub {
	return &recordingStub{events: make(map[string][]string), want: want, done: make(chan struct{})}
}

func (r *recordingStub) RecordWatch(_ context.Context, userID, videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[userID] = append(r.events[userID], videoID)
	r.total++
	if r.total == r.want {
		close(r.done)
	}
	return nil
}

func TestHistoryDispatcher_PreservesPerUserOrder(t *testing.T) {
	const perUser = 20
	users := []string{"user-a", "user-b", "user-c"}

	stub := newRecordingStub(perUser * len(users))
	d := NewHistoryDispatcher(3, stub, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < perUser; i++ {
		for _, u := range users {
			d.Enqueue(ports.WatchEvent{UserID: u, VideoID: fmt.Sprintf("video-%d", i)})
		}
	}

	select {
	case <-stub.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for events, processed %d", stub.total)
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	for _, u := range users {
		got := stub.events[u]
		if len(got) != perUser {
			t.Fatalf("user %s: expected %d events, got %d", u, perUser, len(got))
		}
		for i, videoID := range got {
			if want := fmt.Sprintf("video-%d", i); videoID != want {
				t.Fatalf("user %s: event %d out of order: got %s want %s", u, i, videoID, want)
			}
		}
	}
}

func TestHistoryDispatcher_ShardIsStable(t *testing.T) {
	d := NewHistoryDispatcher(8, newRecordingStub(0), zerolog.Nop())

	for _, userID := range []string{"alice", "bob", "carol"} {
		first := d.shardIndex(userID)
		for i := 0; i < 10; i++ {
			if d.shardIndex(userID) != first {
				t.Fatalf("shard index for %s is not deterministic", userID)
			}
		}
	}
}
