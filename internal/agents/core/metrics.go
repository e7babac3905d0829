/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com

Package core provides metrics collection for agent performance monitoring.
*/
package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/josephgoksu/codecrew/internal/llm"
)

// AgentMetrics collects performance metrics for agents
type AgentMetrics struct {
	// Counters
	TotalRuns   atomic.Int64
	TotalErrors atomic.Int64
	TotalTokens atomic.Int64

	// Timing
	totalDuration atomic.Int64 // nanoseconds

	perAgent map[string]*AgentStats
	mu       sync.RWMutex
}

// NewAgentMetrics creates a new metrics collector
func NewAgentMetrics() *AgentMetrics {
	return &AgentMetrics{perAgent: make(map[string]*AgentStats)}
}

// RecordRun records an agent run
func (m *AgentMetrics) RecordRun(agentName string, usage llm.Usage, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRuns.Add(1)
	m.TotalTokens.Add(int64(usage.TotalTokens()))
	m.totalDuration.Add(int64(duration))

	stats := m.perAgent[agentName]
	if stats == nil {
		stats = &AgentStats{}
		m.perAgent[agentName] = stats
	}
	stats.Runs++
	stats.Tokens += int64(usage.TotalTokens())
	stats.Duration += duration

	if err != nil {
		m.TotalErrors.Add(1)
		stats.Errors++
	}
}

// GetSnapshot returns a snapshot of current metrics
func (m *AgentMetrics) GetSnapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	agentStats := make(map[string]AgentStats, len(m.perAgent))
	for name, stats := range m.perAgent {
		agentStats[name] = *stats
	}

	totalDuration := time.Duration(m.totalDuration.Load())
	runs := m.TotalRuns.Load()

	var avgDuration time.Duration
	if runs > 0 {
		avgDuration = totalDuration / time.Duration(runs)
	}

	return MetricsSnapshot{
		TotalRuns:      runs,
		TotalErrors:    m.TotalErrors.Load(),
		TotalTokens:    m.TotalTokens.Load(),
		TotalDuration:  totalDuration,
		AvgRunDuration: avgDuration,
		AgentStats:     agentStats,
	}
}

// MetricsSnapshot is a point-in-time view of metrics
type MetricsSnapshot struct {
	TotalRuns      int64
	TotalErrors    int64
	TotalTokens    int64
	TotalDuration  time.Duration
	AvgRunDuration time.Duration
	AgentStats     map[string]AgentStats
}

// AgentStats contains per-agent statistics
type AgentStats struct {
	Runs     int64
	Errors   int64
	Tokens   int64
	Duration time.Duration
}

// String returns a human-readable metrics summary
func (s MetricsSnapshot) String() string {
	var b strings.Builder
	b.WriteString("=== Agent Metrics ===\n")
	fmt.Fprintf(&b, "Total Runs: %d\n", s.TotalRuns)
	fmt.Fprintf(&b, "Total Errors: %d\n", s.TotalErrors)
	fmt.Fprintf(&b, "Total Tokens: %d\n", s.TotalTokens)
	fmt.Fprintf(&b, "Total Duration: %s\n", s.TotalDuration.Round(time.Millisecond))
	fmt.Fprintf(&b, "Avg Run Duration: %s\n", s.AvgRunDuration.Round(time.Millisecond))

	if len(s.AgentStats) > 0 {
		b.WriteString("\n--- Per-Agent ---\n")
		names := make([]string, 0, len(s.AgentStats))
		for name := range s.AgentStats {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			st := s.AgentStats[name]
			fmt.Fprintf(&b, "%s: %d runs, %d errors, %d tokens, %s\n",
				name, st.Runs, st.Errors, st.Tokens, st.Duration.Round(time.Millisecond))
		}
	}
	return b.String()
}
