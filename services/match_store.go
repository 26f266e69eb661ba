package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"rps-frame-server/models"
	"rps-frame-server/monitor"
)

// MatchStore keeps every live PvP match in memory. All mutation goes
// through Update so that concurrent callbacks for the same match are
// serialized; callers only ever see copies of a record.
type MatchStore struct {
	matches map[string]*models.MatchRecord
	mutex   sync.RWMutex
	mon     *monitor.Monitor
}

func NewMatchStore(mon *monitor.Monitor) *MatchStore {
	return &MatchStore{
		matches: make(map[string]*models.MatchRecord),
		mon:     mon,
	}
}

// Create opens a new match with the given initiator and returns a copy
// of the stored record. The generated ID is the session handle carried
// in every later callback.
func (s *MatchStore) Create(initiatorFID int64) models.MatchRecord {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record := &models.MatchRecord{
		ID:           uuid.NewString(),
		InitiatorFID: initiatorFID,
		CreatedAt:    time.Now(),
	}
	s.matches[record.ID] = record
	s.publishGauge()

	return record.Clone()
}

// Get returns a copy of the record, if present.
func (s *MatchStore) Get(id string) (models.MatchRecord, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, exists := s.matches[id]
	if !exists {
		return models.MatchRecord{}, false
	}
	return record.Clone(), true
}

// Update runs fn against the stored record while holding the store
// lock, so the read-check-write inside fn is atomic with respect to
// every other callback. When fn returns true the record is removed in
// the same critical section; the returned copy reflects the state
// after fn ran. The second return is false when no such match exists.
func (s *MatchStore) Update(id string, fn func(*models.MatchRecord) (remove bool)) (models.MatchRecord, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.matches[id]
	if !exists {
		return models.MatchRecord{}, false
	}

	remove := fn(record)
	snapshot := record.Clone()
	if remove {
		delete(s.matches, id)
		s.publishGauge()
	}

	return snapshot, true
}

// Remove deletes a match outright, if present.
func (s *MatchStore) Remove(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.matches[id]; exists {
		delete(s.matches, id)
		s.publishGauge()
	}
}

// Len reports how many matches are currently held.
func (s *MatchStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.matches)
}

// SweepExpired drops every match older than ttl and reports how many
// were removed. Abandoned lobbies are the usual victims; a match that
// resolves is deleted on resolution and never reaches the sweeper.
func (s *MatchStore) SweepExpired(ttl time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := 0
	for id, record := range s.matches {
		if time.Since(record.CreatedAt) > ttl {
			delete(s.matches, id)
			removed++
		}
	}
	if removed > 0 {
		s.publishGauge()
	}

	return removed
}

// publishGauge mirrors the map size into the metrics gauge. Callers
// must hold the store lock.
func (s *MatchStore) publishGauge() {
	if s.mon != nil {
		s.mon.SetActiveMatches(len(s.matches))
	}
}
