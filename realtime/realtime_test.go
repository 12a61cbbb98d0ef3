package realtime

import (
	"api/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriber struct {
	received chan Envelope
	fail     bool
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{received: make(chan Envelope, 16)}
}

func (f *fakeSubscriber) Send(env Envelope) error {
	if f.fail {
		return assert.AnError
	}
	f.received <- env
	return nil
}

func (f *fakeSubscriber) next(t *testing.T) Envelope {
	t.Helper()
	select {
	case env := <-f.received:
		return env
	case <-time.After(time.Second):
		t.Fatal("no envelope received")
		return Envelope{}
	}
}

func (f *fakeSubscriber) none(t *testing.T) {
	t.Helper()
	select {
	case env := <-f.received:
		t.Fatalf("unexpected envelope: %+v", env)
	case <-time.After(50 * time.Millisecond):
	}
}

var judge = &models.User{ID: "j1", Role: models.RoleJudge}

func runHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func TestPublishFansOutToCompetitionGroup(t *testing.T) {
	hub := runHub(t)

	a := newFakeSubscriber()
	b := newFakeSubscriber()
	other := newFakeSubscriber()
	hub.Subscribe("comp-1", a)
	hub.Subscribe("comp-1", b)
	hub.Subscribe("comp-2", other)

	err := hub.Publish("comp-1", judge, Envelope{Type: "result_update", Data: "payload"})
	require.NoError(t, err)

	assert.Equal(t, "result_update", a.next(t).Type)
	assert.Equal(t, "result_update", b.next(t).Type)
	other.none(t)
}

func TestPublishPreservesOrder(t *testing.T) {
	hub := runHub(t)

	sub := newFakeSubscriber()
	hub.Subscribe("comp-1", sub)

	for i := 0; i < 5; i++ {
		require.NoError(t, hub.Publish("comp-1", judge, Envelope{Type: "result_update", Data: i}))
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, i, sub.next(t).Data)
	}
}

func TestPublishRequiresJudgeOrStaff(t *testing.T) {
	hub := runHub(t)

	sub := newFakeSubscriber()
	hub.Subscribe("comp-1", sub)

	err := hub.Publish("comp-1", &models.User{Role: models.RoleViewer}, Envelope{Type: "result_update"})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	err = hub.Publish("comp-1", nil, Envelope{Type: "result_update"})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	// The rejected update must not reach anybody
	sub.none(t)

	assert.NoError(t, hub.Publish("comp-1", &models.User{Role: models.RoleStaff}, Envelope{Type: "result_update"}))
	sub.next(t)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := runHub(t)

	gone := newFakeSubscriber()
	stays := newFakeSubscriber()
	hub.Subscribe("comp-1", gone)
	hub.Subscribe("comp-1", stays)

	hub.Unsubscribe("comp-1", gone)
	require.NoError(t, hub.Publish("comp-1", judge, Envelope{Type: "result_update"}))

	stays.next(t)
	gone.none(t)
}

func TestFailingSubscriberIsPruned(t *testing.T) {
	hub := runHub(t)

	broken := newFakeSubscriber()
	broken.fail = true
	healthy := newFakeSubscriber()
	hub.Subscribe("comp-1", broken)
	hub.Subscribe("comp-1", healthy)

	require.NoError(t, hub.Publish("comp-1", judge, Envelope{Type: "result_update"}))
	healthy.next(t)

	broken.fail = false
	require.NoError(t, hub.Publish("comp-1", judge, Envelope{Type: "result_update"}))
	healthy.next(t)
	broken.none(t)
}

func TestPublishToEmptyGroupIsHarmless(t *testing.T) {
	hub := runHub(t)
	assert.NoError(t, hub.Publish("comp-without-subscribers", judge, Envelope{Type: "result_update"}))
}
