package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sofia-edu/admin-service/internal/ai"
	"github.com/sofia-edu/admin-service/internal/events"
	"github.com/sofia-edu/admin-service/internal/sessions"
	"github.com/sofia-edu/admin-service/internal/validator"
)

func newTestServiceManager(t *testing.T, chatModel ai.ChatModel) ServiceManager {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := sessions.NewStore(client, time.Hour)

	return NewServiceManager(newMockRepository(), testLogger(), validator.New(), store, events.NewMockEventPublisher(), chatModel, ServiceManagerConfig{
		StatsTimeZone: "UTC",
		ChatTimeout:   time.Second,
	})
}

func TestServiceManager_InitializeExposesServices(t *testing.T) {
	sm := newTestServiceManager(t, &scriptedModel{})

	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sm.Auth() == nil {
		t.Error("expected auth service")
	}
	if sm.Student() == nil {
		t.Error("expected student service")
	}
	if sm.Dashboard() == nil {
		t.Error("expected dashboard service")
	}
	if sm.Chat() == nil {
		t.Error("expected chat registry")
	}
	if !sm.Chat().Available() {
		t.Error("expected chat to be available with a configured model")
	}
}

func TestServiceManager_InitializeIsIdempotent(t *testing.T) {
	sm := newTestServiceManager(t, &scriptedModel{})

	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := sm.Chat()

	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("unexpected error on second init: %v", err)
	}
	if sm.Chat() != first {
		t.Error("expected services to survive repeated initialization")
	}
}

func TestServiceManager_DegradedChatWithoutModel(t *testing.T) {
	sm := newTestServiceManager(t, nil)

	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sm.Chat().Available() {
		t.Error("expected chat to be unavailable without a model")
	}
}

func TestServiceManager_BadTimezoneFailsInitialize(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := sessions.NewStore(client, time.Hour)

	sm := NewServiceManager(newMockRepository(), testLogger(), validator.New(), store, events.NewMockEventPublisher(), nil, ServiceManagerConfig{
		StatsTimeZone: "Not/AZone",
		ChatTimeout:   time.Second,
	})

	if err := sm.Initialize(context.Background()); err == nil {
		t.Fatal("expected error for invalid timezone")
	}
}

func TestServiceManager_ShutdownClosesPublisher(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := sessions.NewStore(client, time.Hour)
	publisher := events.NewMockEventPublisher()

	sm := NewServiceManager(newMockRepository(), testLogger(), validator.New(), store, publisher, nil, ServiceManagerConfig{
		StatsTimeZone: "UTC",
		ChatTimeout:   time.Second,
	})

	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sm.Shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !publisher.Closed() {
		t.Error("expected publisher to be closed on shutdown")
	}
}
