// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewCreatedEvent is published when a reader posts a new review. It
// carries enough information for downstream consumers to notify or feed
// analytics without querying the primary database.
type ReviewCreatedEvent struct {
	ReviewID  uint64 `json:"review_id"`
	BookID    uint64 `json:"book_id"`
	UserID    uint64 `json:"user_id"`
	Rating    int    `json:"rating"`
	CreatedAt string `json:"created_at"`
}
