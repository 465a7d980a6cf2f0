package actor

import (
	"fmt"
	"io"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"go.uber.org/atomic"
)

// ═══════════════════════════════════════════════════════════════════════════
// 系统统计信息
// ═══════════════════════════════════════════════════════════════════════════

// SystemStats 系统统计快照
type SystemStats struct {
	TotalActors   int64
	TotalMessages int64
	DeadLetters   int64
	ProcessedMsgs int64
	AskTimeouts   int64
	Panics        int64
	StartTime     time.Time
}

// systemCounters 系统计数器
type systemCounters struct {
	totalActors   *atomic.Int64
	totalMessages *atomic.Int64
	deadLetters   *atomic.Int64
	processedMsgs *atomic.Int64
	askTimeouts   *atomic.Int64
	panics        *atomic.Int64
	startTime     time.Time
}

func newSystemCounters() *systemCounters {
	return &systemCounters{
		totalActors:   atomic.NewInt64(0),
		totalMessages: atomic.NewInt64(0),
		deadLetters:   atomic.NewInt64(0),
		processedMsgs: atomic.NewInt64(0),
		askTimeouts:   atomic.NewInt64(0),
		panics:        atomic.NewInt64(0),
		startTime:     time.Now(),
	}
}

// Stats 获取统计信息
func (s *System) Stats() *SystemStats {
	return &SystemStats{
		TotalActors:   s.stats.totalActors.Load(),
		TotalMessages: s.stats.totalMessages.Load(),
		DeadLetters:   s.stats.deadLetters.Load(),
		ProcessedMsgs: s.stats.processedMsgs.Load(),
		AskTimeouts:   s.stats.askTimeouts.Load(),
		Panics:        s.stats.panics.Load(),
		StartTime:     s.stats.startTime,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Prometheus 指标
// ═══════════════════════════════════════════════════════════════════════════

// systemMetrics 每个 System 独立的指标集合
type systemMetrics struct {
	set         *metrics.Set
	sent        *metrics.Counter
	deadLetters *metrics.Counter
	askTimeouts *metrics.Counter
}

func newSystemMetrics(s *System) *systemMetrics {
	set := metrics.NewSet()
	set.NewGauge("actor_count", func() float64 {
		return float64(s.stats.totalActors.Load())
	})
	return &systemMetrics{
		set:         set,
		sent:        set.NewCounter("actor_messages_sent_total"),
		deadLetters: set.NewCounter("actor_dead_letters_total"),
		askTimeouts: set.NewCounter("actor_ask_timeouts_total"),
	}
}

// processed 记录一条消息处理完成
func (m *systemMetrics) processed(actor string, start time.Time) {
	m.set.GetOrCreateCounter(fmt.Sprintf(`actor_messages_processed_total{actor=%q}`, actor)).Inc()
	m.set.GetOrCreateHistogram(fmt.Sprintf(`actor_message_duration_seconds{actor=%q}`, actor)).UpdateDuration(start)
}

// panicked 记录一次处理函数 panic
func (m *systemMetrics) panicked(actor string) {
	m.set.GetOrCreateCounter(fmt.Sprintf(`actor_panics_total{actor=%q}`, actor)).Inc()
}

// WriteMetrics 以 Prometheus 文本格式输出系统指标
func (s *System) WriteMetrics(w io.Writer) {
	s.metrics.set.WritePrometheus(w)
}
