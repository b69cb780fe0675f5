package domain

import "time"

// Subscription is a directed edge: SubscriberID follows ChannelID.
// Immutable once created; this service only reads edges for aggregation.
type Subscription struct {
	ID           string
	SubscriberID string
	ChannelID    string
	CreatedAt    time.Time
}
