// Package telemetry keeps in-memory query statistics for a running server.
// Nothing is persisted or reported externally.
package telemetry

import (
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LatencyBucket is a latency histogram bucket.
type LatencyBucket string

const (
	BucketP1   LatencyBucket = "p1"   // <1ms
	BucketP10  LatencyBucket = "p10"  // 1-10ms
	BucketP50  LatencyBucket = "p50"  // 10-50ms
	BucketP100 LatencyBucket = "p100" // >=50ms
)

// LatencyToBucket converts a duration to its histogram bucket.
func LatencyToBucket(d time.Duration) LatencyBucket {
	switch {
	case d < time.Millisecond:
		return BucketP1
	case d < 10*time.Millisecond:
		return BucketP10
	case d < 50*time.Millisecond:
		return BucketP50
	default:
		return BucketP100
	}
}

// QueryEvent is one answered search.
type QueryEvent struct {
	Query       string
	ResultCount int
	Latency     time.Duration
}

// CircularBuffer is a fixed-capacity FIFO buffer.
type CircularBuffer[T any] struct {
	items    []T
	head     int
	size     int
	capacity int
}

// NewCircularBuffer creates a buffer; capacity <= 0 means 100.
func NewCircularBuffer[T any](capacity int) *CircularBuffer[T] {
	if capacity <= 0 {
		capacity = 100
	}
	return &CircularBuffer[T]{items: make([]T, capacity), capacity: capacity}
}

// Add appends item, evicting the oldest when full.
func (b *CircularBuffer[T]) Add(item T) {
	b.items[b.head] = item
	b.head = (b.head + 1) % b.capacity
	if b.size < b.capacity {
		b.size++
	}
}

// Items returns the buffered items, oldest first.
func (b *CircularBuffer[T]) Items() []T {
	out := make([]T, b.size)
	if b.size < b.capacity {
		copy(out, b.items[:b.size])
		return out
	}
	copy(out, b.items[b.head:])
	copy(out[b.capacity-b.head:], b.items[:b.head])
	return out
}

// ExtractTerms lowercases query and keeps words of at least 3 bytes.
func ExtractTerms(query string) []string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) >= 3 {
			terms = append(terms, w)
		}
	}
	return terms
}

// TermCount is a query term and how often it was searched.
type TermCount struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

// Snapshot is a point-in-time copy of the collected metrics.
type Snapshot struct {
	TotalQueries        int64                   `json:"total_queries"`
	ZeroResultCount     int64                   `json:"zero_result_count"`
	ZeroResultQueries   []string                `json:"zero_result_queries"`
	TopTerms            []TermCount             `json:"top_terms"`
	LatencyDistribution map[LatencyBucket]int64 `json:"latency_distribution"`
	Since               time.Time               `json:"since"`
}

// ZeroResultPercentage returns the share of queries that found nothing.
func (s *Snapshot) ZeroResultPercentage() float64 {
	if s.TotalQueries == 0 {
		return 0
	}
	return float64(s.ZeroResultCount) / float64(s.TotalQueries) * 100
}

// Config bounds the memory used by QueryMetrics.
type Config struct {
	TopTermsCapacity    int // distinct terms tracked (default 100)
	ZeroResultsCapacity int // recent zero-result queries kept (default 20)
	TopTermsReported    int // terms in a snapshot (default 10)
}

// DefaultConfig returns the default capacities.
func DefaultConfig() Config {
	return Config{
		TopTermsCapacity:    100,
		ZeroResultsCapacity: 20,
		TopTermsReported:    10,
	}
}

// QueryMetrics aggregates query events. It is safe for concurrent use.
type QueryMetrics struct {
	mu sync.Mutex

	cfg         Config
	total       int64
	zeroResults int64
	zeroQueries *CircularBuffer[string]
	terms       *lru.Cache[string, int64]
	latency     map[LatencyBucket]int64
	since       time.Time
}

// New creates a collector. Zero fields in cfg take their defaults.
func New(cfg Config) *QueryMetrics {
	def := DefaultConfig()
	if cfg.TopTermsCapacity <= 0 {
		cfg.TopTermsCapacity = def.TopTermsCapacity
	}
	if cfg.ZeroResultsCapacity <= 0 {
		cfg.ZeroResultsCapacity = def.ZeroResultsCapacity
	}
	if cfg.TopTermsReported <= 0 {
		cfg.TopTermsReported = def.TopTermsReported
	}

	// Only fails for a non-positive size.
	terms, _ := lru.New[string, int64](cfg.TopTermsCapacity)
	return &QueryMetrics{
		cfg:         cfg,
		zeroQueries: NewCircularBuffer[string](cfg.ZeroResultsCapacity),
		terms:       terms,
		latency:     make(map[LatencyBucket]int64),
		since:       time.Now(),
	}
}

// Record adds one event.
func (m *QueryMetrics) Record(e QueryEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total++
	m.latency[LatencyToBucket(e.Latency)]++
	if e.ResultCount == 0 {
		m.zeroResults++
		m.zeroQueries.Add(strings.TrimSpace(e.Query))
	}
	for _, term := range ExtractTerms(e.Query) {
		n, _ := m.terms.Get(term)
		m.terms.Add(term, n+1)
	}
}

// Snapshot returns a copy of the current aggregates.
func (m *QueryMetrics) Snapshot() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	latency := make(map[LatencyBucket]int64, len(m.latency))
	for k, v := range m.latency {
		latency[k] = v
	}

	top := make([]TermCount, 0, m.terms.Len())
	for _, term := range m.terms.Keys() {
		if n, ok := m.terms.Peek(term); ok {
			top = append(top, TermCount{Term: term, Count: n})
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Term < top[j].Term
	})
	if len(top) > m.cfg.TopTermsReported {
		top = top[:m.cfg.TopTermsReported]
	}

	return &Snapshot{
		TotalQueries:        m.total,
		ZeroResultCount:     m.zeroResults,
		ZeroResultQueries:   m.zeroQueries.Items(),
		TopTerms:            top,
		LatencyDistribution: latency,
		Since:               m.since,
	}
}
