// Package scheduler drives unattended generation cycles on a fixed
// interval, rotating through the configured languages.
package scheduler

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sakmpar/newsforge/internal/generator"
	"github.com/sakmpar/newsforge/internal/logger"
)

// Runner is the generation entry point the loop drives each cycle.
type Runner interface {
	Generate(ctx context.Context, language string, count int) generator.Result
}

// Scheduler owns one background generation loop. Start and Stop are
// idempotent and safe for concurrent callers.
type Scheduler struct {
	gen       Runner
	languages []string
	minPosts  int
	maxPosts  int

	mu       sync.Mutex
	interval time.Duration
	running  atomic.Bool
	stop     chan struct{}
}

func New(gen Runner, languages []string, minPosts, maxPosts int) *Scheduler {
	return &Scheduler{
		gen:       gen,
		languages: languages,
		minPosts:  minPosts,
		maxPosts:  maxPosts,
	}
}

// minInterval bounds how tightly the loop may spin; it also keeps the
// language-window arithmetic away from a zero-second divisor.
const minInterval = time.Second

// Start launches the loop with the given interval, clamped to minInterval.
// Returns false when the scheduler is already running.
func (s *Scheduler) Start(interval time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running.Load() {
		return false
	}

	if interval < minInterval {
		interval = minInterval
	}

	s.interval = interval
	s.stop = make(chan struct{})
	s.running.Store(true)

	go s.loop(interval, s.stop)

	logger.Get().Info().Dur("interval", interval).Msg("Scheduler started")
	return true
}

// Stop signals the loop to exit. A cycle already in flight finishes; the
// stop takes effect at the next sleep boundary. Returns false when the
// scheduler was not running.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running.Load() {
		return false
	}

	close(s.stop)
	s.running.Store(false)

	logger.Get().Info().Msg("Scheduler stopped")
	return true
}

func (s *Scheduler) Running() bool { return s.running.Load() }

func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *Scheduler) loop(interval time.Duration, stop chan struct{}) {
	for {
		s.runCycle(interval)

		select {
		case <-stop:
			return
		case <-time.After(interval):
		}
	}
}

func (s *Scheduler) runCycle(interval time.Duration) {
	language := s.pickLanguage(time.Now(), interval)
	count := s.minPosts
	if s.maxPosts > s.minPosts {
		count += rand.Intn(s.maxPosts - s.minPosts + 1)
	}

	logger.Get().Info().Str("language", language).Int("count", count).Msg("Scheduled generation cycle")
	s.gen.Generate(context.Background(), language, count)
}

// pickLanguage rotates deterministically: successive interval-sized windows
// of wall time map to successive languages.
func (s *Scheduler) pickLanguage(t time.Time, interval time.Duration) string {
	if len(s.languages) == 0 {
		return "english"
	}
	if interval < minInterval {
		interval = minInterval
	}
	window := t.Unix() / int64(interval.Seconds())
	return s.languages[int(window%int64(len(s.languages)))]
}
