package prox

import (
	"sync"
	"testing"

	"github.com/danielrh/prox/pkg/geom"
	"github.com/stretchr/testify/require"
)

func Test_NotificationIsEdgeTriggered(t *testing.T) {
	q := originQuery()
	listener := &countingEventListener{}
	q.SetEventListener(listener)

	// Two pushes without a pop: exactly one callback.
	q.PushEvent(QueryEvent{Type: Added, ID: testID(1)})
	q.PushEvent(QueryEvent{Type: Added, ID: testID(2)})
	require.Equal(t, 1, listener.calls)

	events := popAll(q)
	require.Equal(t, []QueryEvent{
		{Type: Added, ID: testID(1)},
		{Type: Added, ID: testID(2)},
	}, events)

	// Drained: the trigger is re-armed.
	q.PushEvent(QueryEvent{Type: Removed, ID: testID(1)})
	require.Equal(t, 2, listener.calls)
}

func Test_PushEmptyBatchDoesNotNotify(t *testing.T) {
	q := originQuery()
	listener := &countingEventListener{}
	q.SetEventListener(listener)

	q.PushEvents(nil)
	q.PushEvents([]QueryEvent{})
	require.Equal(t, 0, listener.calls)
	require.Empty(t, popAll(q))
}

func Test_ListenerMayPopFromCallback(t *testing.T) {
	q := originQuery()
	listener := &drainingEventListener{}
	q.SetEventListener(listener)

	q.PushEvents([]QueryEvent{
		{Type: Added, ID: testID(1)},
		{Type: Added, ID: testID(2)},
	})

	require.Equal(t, 1, listener.calls)
	require.Len(t, listener.popped, 2)
	require.Empty(t, popAll(q))

	// The callback drained the queue, so the next push notifies again.
	q.PushEvent(QueryEvent{Type: Removed, ID: testID(1)})
	require.Equal(t, 2, listener.calls)
}

func Test_NoListenerMeansNoNotification(t *testing.T) {
	q := originQuery()
	q.PushEvent(QueryEvent{Type: Added, ID: testID(1)})
	require.Len(t, popAll(q), 1)
}

func Test_EveryPushedEventPopsExactlyOnce(t *testing.T) {
	q := originQuery()

	const pushers = 4
	const perPusher = 250

	var wg sync.WaitGroup
	for p := 0; p < pushers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perPusher; i++ {
				q.PushEvent(QueryEvent{Type: Added, ID: testID(byte(p))})
			}
		}(p)
	}

	var popped []QueryEvent
	done := make(chan struct{})
	go func() {
		defer close(done)
		for len(popped) < pushers*perPusher {
			q.PopEvents(&popped)
		}
	}()

	wg.Wait()
	<-done

	require.Len(t, popped, pushers*perPusher)
	perID := make(map[ObjectID]int)
	for _, ev := range popped {
		perID[ev.ID]++
	}
	for p := 0; p < pushers; p++ {
		require.Equal(t, perPusher, perID[testID(byte(p))])
	}
}

func Test_QueryChangeListeners(t *testing.T) {
	q := originQuery()
	h := NewBruteForceHandler()
	h.RegisterQuery(q)

	require.Panics(t, func() { q.AddChangeListener(h) })

	q.SetPosition(geom.NewMotionVector(1, geom.Vector3{X: 5}, geom.Vector3{}))
	require.Equal(t, geom.Vector3{X: 5}, q.PositionAt(1))

	q.Destroy()
	_, registered := h.queries[q]
	require.False(t, registered)
}

func Test_QueryRadiusDefaults(t *testing.T) {
	q := originQuery()
	require.Equal(t, InfiniteRadius, q.Radius())

	bounded := NewQueryWithRadius(geom.NewMotionVector(0, geom.Vector3{}, geom.Vector3{}), smallAngle(), 50)
	require.Equal(t, 50.0, bounded.Radius())

	require.Panics(t, func() {
		NewQueryWithRadius(geom.NewMotionVector(0, geom.Vector3{}, geom.Vector3{}), smallAngle(), -1)
	})
}
