// Package progress keeps per-user learning stats in memory. There is no
// persistence layer behind it; the store exists so the two progress tools
// have real read/write semantics within one server process.
package progress

import (
	"sort"
	"sync"
	"time"

	"github.com/quizmcp/types"
)

type userRecord struct {
	subject    string
	difficulty string
	results    []types.TestRecord
}

type Store struct {
	mu    sync.Mutex
	users map[string]*userRecord
}

func NewStore() *Store {
	return &Store{users: make(map[string]*userRecord)}
}

// Record appends test results for a user and returns the updated stats.
func (s *Store) Record(userID string, results []types.TestRecord, difficulty, subject string) types.ProgressStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		u = &userRecord{}
		s.users[userID] = u
	}
	for _, r := range results {
		if r.TakenAt.IsZero() {
			r.TakenAt = time.Now()
		}
		u.results = append(u.results, r)
	}
	if difficulty != "" {
		u.difficulty = difficulty
	}
	if subject != "" {
		u.subject = subject
	}
	return s.statsLocked(userID, u, "")
}

// Stats reports a user's aggregates. The timeframe filters records by age:
// "week", "month", or "" / "all" for everything.
func (s *Store) Stats(userID, timeframe string) types.ProgressStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return types.ProgressStats{UserID: userID, Timeframe: timeframe}
	}
	return s.statsLocked(userID, u, timeframe)
}

func (s *Store) statsLocked(userID string, u *userRecord, timeframe string) types.ProgressStats {
	cutoff := time.Time{}
	switch timeframe {
	case "week":
		cutoff = time.Now().AddDate(0, 0, -7)
	case "month":
		cutoff = time.Now().AddDate(0, -1, 0)
	}

	var sum float64
	var n int
	topicScores := make(map[string][]float64)
	for _, r := range u.results {
		if !cutoff.IsZero() && r.TakenAt.Before(cutoff) {
			continue
		}
		sum += r.Score
		n++
		topicScores[r.Topic] = append(topicScores[r.Topic], r.Score)
	}

	stats := types.ProgressStats{
		UserID:            userID,
		Subject:           u.subject,
		TestsTaken:        n,
		CurrentDifficulty: u.difficulty,
		Timeframe:         timeframe,
	}
	if n > 0 {
		stats.AverageScore = sum / float64(n)
	}
	stats.WeakAreas = weakAreas(topicScores)
	return stats
}

// weakAreas lists topics averaging under 60, worst first.
func weakAreas(topicScores map[string][]float64) []string {
	type topicAvg struct {
		topic string
		avg   float64
	}
	var weak []topicAvg
	for topic, scores := range topicScores {
		if topic == "" {
			continue
		}
		var sum float64
		for _, s := range scores {
			sum += s
		}
		avg := sum / float64(len(scores))
		if avg < 60 {
			weak = append(weak, topicAvg{topic, avg})
		}
	}
	sort.Slice(weak, func(i, j int) bool { return weak[i].avg < weak[j].avg })

	out := make([]string, 0, len(weak))
	for _, w := range weak {
		out = append(out, w.topic)
	}
	return out
}
