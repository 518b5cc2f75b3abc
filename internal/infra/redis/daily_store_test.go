package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestDailyStore(t *testing.T) (*DailyStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewDailyStore(client), mr
}

func TestChallengeRoundTrip(t *testing.T) {
	store, mr := newTestDailyStore(t)
	ctx := context.Background()

	ids, err := store.ChallengeIDs(ctx, "2026-03-15")
	if err != nil {
		t.Fatalf("challenge ids: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no challenge yet, got %v", ids)
	}

	want := []string{"q3", "q1", "q7"}
	if err := store.SaveChallenge(ctx, "2026-03-15", want); err != nil {
		t.Fatalf("save challenge: %v", err)
	}

	ids, err = store.ChallengeIDs(ctx, "2026-03-15")
	if err != nil {
		t.Fatalf("challenge ids: %v", err)
	}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order lost at %d: expected %s, got %s", i, want[i], ids[i])
		}
	}

	if !mr.Exists("daily:2026-03-15:questions") {
		t.Fatalf("expected challenge key in redis")
	}
}

func TestSaveChallengeReplacesExistingSet(t *testing.T) {
	store, _ := newTestDailyStore(t)
	ctx := context.Background()

	if err := store.SaveChallenge(ctx, "2026-03-15", []string{"q1", "q2"}); err != nil {
		t.Fatalf("save challenge: %v", err)
	}
	if err := store.SaveChallenge(ctx, "2026-03-15", []string{"q9"}); err != nil {
		t.Fatalf("save challenge: %v", err)
	}

	ids, err := store.ChallengeIDs(ctx, "2026-03-15")
	if err != nil {
		t.Fatalf("challenge ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != "q9" {
		t.Fatalf("expected replacement set [q9], got %v", ids)
	}
}

func TestMarkPlayedIsOncePerUserPerDay(t *testing.T) {
	store, mr := newTestDailyStore(t)
	ctx := context.Background()

	already, err := store.MarkPlayed(ctx, "alice", "2026-03-15")
	if err != nil {
		t.Fatalf("mark played: %v", err)
	}
	if already {
		t.Fatalf("first submission flagged as repeat")
	}

	already, err = store.MarkPlayed(ctx, "alice", "2026-03-15")
	if err != nil {
		t.Fatalf("mark played: %v", err)
	}
	if !already {
		t.Fatalf("repeat submission not detected")
	}

	// a different day is a fresh start
	already, err = store.MarkPlayed(ctx, "alice", "2026-03-16")
	if err != nil {
		t.Fatalf("mark played: %v", err)
	}
	if already {
		t.Fatalf("new day flagged as repeat")
	}

	if !mr.Exists("daily:2026-03-15:played:alice") {
		t.Fatalf("expected played marker in redis")
	}
}
