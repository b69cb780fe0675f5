package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/vidtube/account-service/internal/api/metrics"
	"github.com/vidtube/account-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// WatchRecorder appends a watch event to the user's history.
type WatchRecorder interface {
	RecordWatch(ctx context.Context, userID, videoID string) error
}

// HistoryDispatcher routes watch events to a fixed set of workers using
// consistent hashing on the user ID, so each user's history is appended in
// the order the events arrived.
type HistoryDispatcher struct {
	workers  []chan ports.WatchEvent
	recorder WatchRecorder
	log      zerolog.Logger
}

// NewHistoryDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewHistoryDispatcher(numWorkers int, recorder WatchRecorder, log zerolog.Logger) *HistoryDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &HistoryDispatcher{
		workers:  make([]chan ports.WatchEvent, numWorkers),
		recorder: recorder,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.WatchEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *HistoryDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its user. The call is
// non-blocking up to channelBuffer capacity.
func (d *HistoryDispatcher) Enqueue(event ports.WatchEvent) {
	i := d.shardIndex(event.UserID)
	d.workers[i] <- event
	metrics.WatchQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *HistoryDispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *HistoryDispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.WatchEvent) {
	gauge := metrics.WatchQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			gauge.Set(float64(len(ch)))
			if err := d.recorder.RecordWatch(ctx, event.UserID, event.VideoID); err != nil {
				d.log.Error().Err(err).
					Str("user_id", event.UserID).
					Str("video_id", event.VideoID).
					Int("worker_id", id).
					Msg("watch history append failed")
			}
		}
	}
}
