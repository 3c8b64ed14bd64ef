package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// Stats is one reporting interval's worth of measurements.
type Stats struct {
	FPS         float64
	TPS         float64
	HeapMB      float64
	SysMB       float64
	AllocRateMB float64
	NumGC       uint32
	LastPause   time.Duration
	MaxPause    time.Duration
}

// Profiler counts render frames and engine ticks and logs rates and memory
// statistics once per interval. Frame and Tick may be called from different goroutines.
type Profiler struct {
	mu sync.Mutex

	frames   int
	ticks    int
	lastTime time.Time
	interval time.Duration
	now      func() time.Time
	logging  bool

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are computed and logged.
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogging enables or disables the log line written each interval.
func WithLogging(enabled bool) ProfilerOption {
	return func(p *Profiler) {
		p.logging = enabled
	}
}

// NewProfiler creates a Profiler that reports once per second and logs each report.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		interval: time.Second,
		now:      time.Now,
		logging:  true,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick records one engine tick.
func (p *Profiler) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ticks++
}

// Frame records one rendered frame and, once the interval has elapsed,
// computes a new Stats report.
//
// Returns:
//   - bool: true if a report was produced by this call
func (p *Profiler) Frame() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frames++
	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.interval {
		return false
	}

	p.last = p.collect(elapsed)
	if p.logging {
		s := p.last
		log.Printf("[Profiler] FPS: %.2f | TPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			s.FPS, s.TPS, s.HeapMB, s.AllocRateMB, s.NumGC, s.LastPause.Microseconds(), s.MaxPause.Microseconds(), s.SysMB)
	}

	p.frames = 0
	p.ticks = 0
	p.lastTime = current
	return true
}

// Last returns the most recent report.
func (p *Profiler) Last() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// collect builds a report for the elapsed interval. Caller must hold the mutex.
func (p *Profiler) collect(elapsed time.Duration) Stats {
	seconds := elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)

	s := Stats{
		FPS:         float64(p.frames) / seconds,
		TPS:         float64(p.ticks) / seconds,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		NumGC:       p.memStats.NumGC,
	}

	// PauseNs is a ring of the last 256 pauses.
	if s.NumGC > 0 {
		s.LastPause = time.Duration(p.memStats.PauseNs[(s.NumGC-1)%256])
		start := p.lastGCCount
		if s.NumGC-start > 256 {
			start = s.NumGC - 256
		}
		for i := start; i < s.NumGC; i++ {
			if pause := time.Duration(p.memStats.PauseNs[i%256]); pause > s.MaxPause {
				s.MaxPause = pause
			}
		}
	}

	p.lastGCCount = s.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return s
}
