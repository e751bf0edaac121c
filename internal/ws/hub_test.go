package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"placement-prep/internal/domain/interview"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func startHub(t *testing.T) (*Hub, func()) {
	t.Helper()
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()
	return hub, func() {
		cancel()
		wg.Wait()
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, stop := startHub(t)
	a := &Client{hub: hub, send: make(chan []byte, 4)}
	b := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.Register(a)
	hub.Register(b)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.Broadcast([]byte("hello"))
	assert.Equal(t, []byte("hello"), <-a.send)
	assert.Equal(t, []byte("hello"), <-b.send)

	hub.Unregister(a)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	_, open := <-a.send
	assert.False(t, open)

	stop()
	_, open = <-b.send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_DropsSlowClient(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, stop := startHub(t)
	defer stop()

	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.Register(slow)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Broadcast([]byte("x"))
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestSlotNotifier_Events(t *testing.T) {
	hub := NewHub(nil)
	n := NewSlotNotifier(hub)
	n.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	n.SlotsCreated(nil)
	assert.Len(t, hub.broadcast, 0)

	booker := uuid.New()
	n.SlotBooked(interview.Slot{ID: uuid.New(), IsBooked: true, BookedBy: &booker})

	var evt SlotEvent
	require.NoError(t, json.Unmarshal(<-hub.broadcast, &evt))
	assert.Equal(t, EventSlotBooked, evt.Type)
	assert.Equal(t, "2030-01-01T00:00:00Z", evt.Timestamp)
	require.Len(t, evt.Slots, 1)
	assert.Nil(t, evt.Slots[0].BookedBy)
}

func TestHandler_DeliversEventsOverWebsocket(t *testing.T) {
	hub, stop := startHub(t)
	defer stop()

	srv := httptest.NewServer(NewHandler(hub, nil, nil).Mux())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+InterviewsPath, nil)
	require.NoError(t, err)
	defer conn.Close()
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	NewSlotNotifier(hub).SlotsCreated([]interview.Slot{{ID: uuid.New()}, {ID: uuid.New()}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var evt SlotEvent
	require.NoError(t, conn.ReadJSON(&evt))
	assert.Equal(t, EventSlotsCreated, evt.Type)
	assert.Len(t, evt.Slots, 2)
}

func TestHandler_RejectsUnknownOrigin(t *testing.T) {
	hub, stop := startHub(t)
	defer stop()

	srv := httptest.NewServer(NewHandler(hub, []string{"http://allowed.example"}, nil))
	defer srv.Close()

	header := map[string][]string{"Origin": {"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, 403, resp.StatusCode)
	}
}

func TestHub_CallsAfterShutdownReturn(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, stop := startHub(t)
	stop()

	c := &Client{hub: hub, send: make(chan []byte, 1)}
	for i := 0; i < membershipQueue+1; i++ {
		hub.Unregister(c)
	}
	hub.Register(c)
	assert.Equal(t, 0, hub.ClientCount())
}
