package memory

import (
	"context"
	"sync"
)

// DailyStore holds the shared daily challenge set and played markers in
// memory.
type DailyStore struct {
	mu         sync.Mutex
	challenges map[string][]string
	played     map[string]map[string]struct{} // date -> userIDs
}

func NewDailyStore() *DailyStore {
	return &DailyStore{
		challenges: make(map[string][]string),
		played:     make(map[string]map[string]struct{}),
	}
}

func (d *DailyStore) ChallengeIDs(_ context.Context, date string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.challenges[date]...), nil
}

func (d *DailyStore) SaveChallenge(_ context.Context, date string, questionIDs []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.challenges[date] = append([]string(nil), questionIDs...)
	return nil
}

func (d *DailyStore) MarkPlayed(_ context.Context, userID, date string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	users := d.played[date]
	if users == nil {
		users = make(map[string]struct{})
		d.played[date] = users
	}
	if _, ok := users[userID]; ok {
		return true, nil
	}
	users[userID] = struct{}{}
	return false, nil
}
