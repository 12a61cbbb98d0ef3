package realtime

import (
	"api/models"
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrNotAuthorized is returned to a publisher that is not a judge or staff
// member. The rejection goes back to that caller only, nothing is broadcast.
var ErrNotAuthorized = errors.New("only judges and staff may publish live updates")

// Envelope is the message delivered to every subscriber of a competition group
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ResultUpdate is the payload broadcast after a score submission commits.
// Score is the exact decimal string with the two fractional digits the
// column stores, never a float rendering.
type ResultUpdate struct {
	EntrantID    string `json:"entrant_id"`
	Athlete      string `json:"athlete"`
	Club         string `json:"club"`
	Score        string `json:"score"`
	XCount       int    `json:"x_count"`
	Weapon       string `json:"weapon"`
	Disqualified bool   `json:"disqualified"`
}

// Subscriber receives envelopes for one competition group. A Send error
// drops the subscriber from the group.
type Subscriber interface {
	Send(Envelope) error
}

type message struct {
	group    string
	envelope Envelope
}

// Hub fans result updates out to subscribers grouped by competition.
// The process owns exactly one Hub: construct it with NewHub, start it
// with go Run(), stop it with Stop(). Delivery is in publish order per
// group, at most once, with no replay for late subscribers.
type Hub struct {
	mu     sync.Mutex
	groups map[string]map[Subscriber]bool
	queue  chan message
	done   chan struct{}
}

// NewHub creates a hub ready to Run
func NewHub() *Hub {
	return &Hub{
		groups: make(map[string]map[Subscriber]bool),
		queue:  make(chan message, 256),
		done:   make(chan struct{}),
	}
}

// GroupName is the channel name of one competition's update stream
func GroupName(competitionID string) string {
	return fmt.Sprintf("competition_%s", competitionID)
}

// Run delivers queued messages until Stop is called. Call it in its own
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case msg := <-h.queue:
			h.deliver(msg)
		case <-h.done:
			return
		}
	}
}

// Stop shuts the delivery loop down
func (h *Hub) Stop() {
	close(h.done)
}

// Subscribe adds a subscriber to a competition's group
func (h *Hub) Subscribe(competitionID string, s Subscriber) {
	group := GroupName(competitionID)
	h.mu.Lock()
	if h.groups[group] == nil {
		h.groups[group] = make(map[Subscriber]bool)
	}
	h.groups[group][s] = true
	h.mu.Unlock()
}

// Unsubscribe removes a subscriber from a competition's group. Safe to call
// for a subscriber that was already dropped.
func (h *Hub) Unsubscribe(competitionID string, s Subscriber) {
	group := GroupName(competitionID)
	h.mu.Lock()
	if subs, exists := h.groups[group]; exists {
		delete(subs, s)
		if len(subs) == 0 {
			delete(h.groups, group)
		}
	}
	h.mu.Unlock()
}

// Publish queues an envelope for every subscriber of the competition.
// Only judges and staff may publish. Publishing never blocks the caller:
// when the queue is full the update is dropped and logged, persistence is
// the durability guarantee.
func (h *Hub) Publish(competitionID string, publisher *models.User, env Envelope) error {
	if publisher == nil || !publisher.IsPublisher() {
		return ErrNotAuthorized
	}

	select {
	case h.queue <- message{group: GroupName(competitionID), envelope: env}:
	default:
		log.Printf("realtime: queue full, dropping update for %s", GroupName(competitionID))
	}
	return nil
}

// deliver writes one envelope to every member of its group, pruning
// subscribers whose Send fails
func (h *Hub) deliver(msg message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, exists := h.groups[msg.group]
	if !exists {
		return
	}
	for s := range subs {
		if err := s.Send(msg.envelope); err != nil {
			log.Printf("realtime: send error, dropping subscriber from %s: %v", msg.group, err)
			delete(subs, s)
		}
	}
	if len(subs) == 0 {
		delete(h.groups, msg.group)
	}
}
