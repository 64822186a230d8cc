package session

import (
	"time"

	gouuid "github.com/nu7hatch/gouuid"

	"github.com/hourboard/dashboard-api/pkg/domain"
)

// RingCapacity bounds the notification ring; the oldest entries are
// evicted first.
const RingCapacity = 50

// Ring keeps the most recent notifications of one session in insertion
// order. It is not safe for concurrent use on its own; the owning
// session serializes access.
type Ring struct {
	items []domain.Notification
}

func (r *Ring) Add(kind domain.NotificationKind, message string) domain.Notification {
	var id string
	if u4, err := gouuid.NewV4(); err == nil {
		id = u4.String()
	}
	n := domain.Notification{
		ID:        id,
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	r.items = append(r.items, n)
	if len(r.items) > RingCapacity {
		r.items = r.items[len(r.items)-RingCapacity:]
	}
	return n
}

// All returns the ring contents oldest first.
func (r *Ring) All() []domain.Notification {
	return append([]domain.Notification(nil), r.items...)
}

func (r *Ring) Len() int {
	return len(r.items)
}

// MarkRead flags one notification by id.
func (r *Ring) MarkRead(id string) bool {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Read = true
			return true
		}
	}
	return false
}

func (r *Ring) MarkAllRead() {
	for i := range r.items {
		r.items[i].Read = true
	}
}

// Unread counts notifications not yet flagged as read.
func (r *Ring) Unread() int {
	var n int
	for i := range r.items {
		if !r.items[i].Read {
			n++
		}
	}
	return n
}
