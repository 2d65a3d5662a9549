package broadcast

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"kanban-api/domain"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("unable to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func waitForEvent(t *testing.T, ch chan []byte) domain.Event {
	t.Helper()
	select {
	case data := <-ch:
		var ev domain.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unable to parse delivered event: %v", err)
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for board event")
		return domain.Event{}
	}
}

func TestPublishWithoutRedisDeliversLocally(t *testing.T) {
	broker := NewBroker()
	channel := NewChannel(broker, nil, "board-updates", log.New())
	sub := broker.Subscribe("board-1")

	channel.Publish(context.Background(), domain.Event{Type: domain.ListCreated, BoardID: "board-1"})

	ev := waitForEvent(t, sub)
	if ev.Type != domain.ListCreated || ev.BoardID != "board-1" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestPublishRoundTripsThroughRedis(t *testing.T) {
	client := setupRedis(t)
	broker := NewBroker()
	channel := NewChannel(broker, client, "board-updates", log.New())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go channel.Listen(ctx)

	// Give the subscriber a moment to attach before publishing.
	deadline := time.Now().Add(2 * time.Second)
	for {
		n, err := client.PubSubNumSub(ctx, "board-updates").Result()
		if err == nil && n["board-updates"] > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("listener never subscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	sub := broker.Subscribe("board-7")
	channel.Publish(ctx, domain.Event{Type: domain.TaskUpdated, BoardID: "board-7", TaskID: "task-1"})

	ev := waitForEvent(t, sub)
	if ev.Type != domain.TaskUpdated || ev.BoardID != "board-7" || ev.TaskID != "task-1" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestPublishFallsBackWhenRedisUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("unable to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	broker := NewBroker()
	channel := NewChannel(broker, client, "board-updates", log.New())
	sub := broker.Subscribe("board-1")

	channel.Publish(context.Background(), domain.Event{Type: domain.ListDeleted, BoardID: "board-1", ListID: "list-9"})

	ev := waitForEvent(t, sub)
	if ev.Type != domain.ListDeleted || ev.ListID != "list-9" {
		t.Fatalf("unexpected event %+v", ev)
	}
}
