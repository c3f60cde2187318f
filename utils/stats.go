package utils

import (
	"sync"
	"time"
)

// Stats for performance monitoring. Safe for concurrent use.
type Stats struct {
	mu                   sync.Mutex
	generationsPerSecond float64
	averagePopulation    float64
	totalGenerations     int
	population           int
	startTime            time.Time
}

// StatsSnapshot is a point-in-time copy of Stats
type StatsSnapshot struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	Population           int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{startTime: time.Now()}
}

// Update records a generation and how long it took to produce
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalGenerations = generation
	s.population = population
	if duration > 0 {
		s.generationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.averagePopulation == 0 {
		s.averagePopulation = float64(population)
	} else {
		s.averagePopulation = (s.averagePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Reset zeroes the counters and restarts the clock
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generationsPerSecond = 0
	s.averagePopulation = 0
	s.totalGenerations = 0
	s.population = 0
	s.startTime = time.Now()
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{
		GenerationsPerSecond: s.generationsPerSecond,
		AveragePopulation:    s.averagePopulation,
		TotalGenerations:     s.totalGenerations,
		Population:           s.population,
		StartTime:            s.startTime,
	}
}
