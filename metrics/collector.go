package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// EpisodeRecord describes one finished selfplay episode.
type EpisodeRecord struct {
	ID       string
	Actor    int
	Moves    int
	Duration time.Duration
}

// Summary aggregates pipeline counters over one run.
type Summary struct {
	Episodes      int
	Moves         int
	TrainingSteps int
	Checkpoints   int
	Elapsed       time.Duration
}

// Collector accumulates selfplay and training counters; implementations must
// be safe for use from every actor plus the training loop.
type Collector interface {
	AddEpisode(record EpisodeRecord)
	AddTrainingStep()
	AddCheckpoint()
	Summary() Summary
	Episodes() []EpisodeRecord
}

type collector struct {
	start       time.Time
	episodes    atomic.Int64
	moves       atomic.Int64
	steps       atomic.Int64
	checkpoints atomic.Int64

	mu      sync.Mutex
	records []EpisodeRecord
}

func NewCollector() Collector {
	return &collector{start: time.Now()}
}

func (c *collector) AddEpisode(record EpisodeRecord) {
	c.episodes.Add(1)
	c.moves.Add(int64(record.Moves))

	c.mu.Lock()
	c.records = append(c.records, record)
	c.mu.Unlock()
}

func (c *collector) AddTrainingStep() {
	c.steps.Add(1)
}

func (c *collector) AddCheckpoint() {
	c.checkpoints.Add(1)
}

func (c *collector) Summary() Summary {
	return Summary{
		Episodes:      int(c.episodes.Load()),
		Moves:         int(c.moves.Load()),
		TrainingSteps: int(c.steps.Load()),
		Checkpoints:   int(c.checkpoints.Load()),
		Elapsed:       time.Since(c.start),
	}
}

func (c *collector) Episodes() []EpisodeRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := make([]EpisodeRecord, len(c.records))
	copy(records, c.records)
	return records
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op collector for runs that do not record
// metrics.
func NewDummyCollector() Collector {
	return dummyCollector{}
}

func (dummyCollector) AddEpisode(EpisodeRecord)  {}
func (dummyCollector) AddTrainingStep()          {}
func (dummyCollector) AddCheckpoint()            {}
func (dummyCollector) Summary() Summary          { return Summary{} }
func (dummyCollector) Episodes() []EpisodeRecord { return nil }
