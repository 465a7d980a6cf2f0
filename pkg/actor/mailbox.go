package actor

import (
	"sync"

	"go.uber.org/atomic"
)

// mailbox Actor 邮箱
//
// 有序（FIFO）的消息队列。push 永不阻塞：容量为 0 时无界，
// 否则超出容量返回 ErrMailboxFull。signal 用于唤醒消费者，
// 只有 Actor 自己的 goroutine 调用 pop。
type mailbox struct {
	mu       sync.Mutex
	queue    []envelope
	capacity int
	closed   bool

	signal chan struct{}
	size   *atomic.Int64
}

// newMailbox 创建邮箱，capacity <= 0 表示无界
func newMailbox(capacity int) *mailbox {
	if capacity < 0 {
		capacity = 0
	}
	return &mailbox{
		capacity: capacity,
		signal:   make(chan struct{}, 1),
		size:     atomic.NewInt64(0),
	}
}

// push 入队，邮箱已关闭返回 ErrActorStopped
func (m *mailbox) push(env envelope) error {
	return m.enqueue(env, true)
}

// pushSystem 系统消息入队，不受容量限制
func (m *mailbox) pushSystem(env envelope) error {
	return m.enqueue(env, false)
}

func (m *mailbox) enqueue(env envelope, bounded bool) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrActorStopped
	}
	if bounded && m.capacity > 0 && len(m.queue) >= m.capacity {
		m.mu.Unlock()
		return ErrMailboxFull
	}
	m.queue = append(m.queue, env)
	m.size.Inc()
	m.mu.Unlock()

	// 非阻塞唤醒：信号已存在时消费者必然还会再检查一次队列
	select {
	case m.signal <- struct{}{}:
	default:
	}
	return nil
}

// pop 出队，队列为空返回 false
func (m *mailbox) pop() (envelope, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.queue) == 0 {
		return envelope{}, false
	}
	env := m.queue[0]
	m.queue[0] = envelope{}
	m.queue = m.queue[1:]
	if len(m.queue) == 0 {
		m.queue = nil
	}
	m.size.Dec()
	return env, true
}

// close 关闭邮箱并返回尚未处理的消息
func (m *mailbox) close() []envelope {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	rest := m.queue
	m.queue = nil
	m.size.Store(0)
	return rest
}

// Len 返回当前排队的消息数
func (m *mailbox) Len() int {
	return int(m.size.Load())
}
