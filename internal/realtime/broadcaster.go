package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// LikeEvent is pushed to every connected viewer when a comment's like count
// changes. It carries aggregate data only, never identity.
type LikeEvent struct {
	CommentID     string `json:"commentId"`
	NumberOfLikes int    `json:"numberOfLikes"`
}

// subscriberBuffer bounds each viewer channel. Delivery is at-most-once:
// a full buffer drops the event and the viewer reconciles on its next
// REST fetch.
const subscriberBuffer = 8

// Broadcaster fans like events out to connected viewers. It is an injected
// dependency, constructed once in main and handed to the services and the
// SSE handler; there is no package-level instance.
//
// With a Redis client, events travel through a pub/sub channel so every API
// instance fans out to its own viewers. With a nil client it degrades to
// in-process delivery, which is what tests use.
type Broadcaster struct {
	rdb     *redis.Client
	channel string
	logger  *logrus.Logger

	mu   sync.Mutex
	subs map[chan LikeEvent]struct{}
}

func NewBroadcaster(rdb *redis.Client, channel string, logger *logrus.Logger) *Broadcaster {
	return &Broadcaster{
		rdb:     rdb,
		channel: channel,
		logger:  logger,
		subs:    make(map[chan LikeEvent]struct{}),
	}
}

// Run consumes the Redis channel and fans messages out locally. It blocks
// until ctx is cancelled and is a no-op without a Redis client.
func (b *Broadcaster) Run(ctx context.Context) {
	if b.rdb == nil {
		return
	}
	pubsub := b.rdb.Subscribe(ctx, b.channel)
	defer func() { _ = pubsub.Close() }()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev LikeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				if b.logger != nil {
					b.logger.WithError(err).Warn("broadcast: bad like event payload")
				}
				continue
			}
			b.fanout(ev)
		}
	}
}

// Publish emits a like event. Callers invoke it only after the durable write
// committed; speculative values are never broadcast.
func (b *Broadcaster) Publish(ctx context.Context, ev LikeEvent) error {
	if b.rdb == nil {
		b.fanout(ev)
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, payload).Err()
}

// Subscribe registers a viewer connection. The returned cancel func removes
// the subscription and must be called on disconnect.
func (b *Broadcaster) Subscribe() (<-chan LikeEvent, func()) {
	ch := make(chan LikeEvent, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Subscribers returns the number of connected viewers.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broadcaster) fanout(ev LikeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// slow viewer; drop rather than block the fan-out
		}
	}
}
