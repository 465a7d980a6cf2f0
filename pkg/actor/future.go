package actor

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// future 一次性回复地址
//
// 只接受第一条投递的消息；完成或超时后从注册表移除，
// 之后发往该地址的消息返回 ErrActorNotFound 并记为死信。
type future struct {
	pid    *PID
	result chan Message
	done   *atomic.Bool
}

// deliver 实现 process 接口
func (f *future) deliver(env envelope) error {
	if !f.done.CompareAndSwap(false, true) {
		return ErrActorNotFound
	}
	f.result <- env.message
	return nil
}

// newFuture 创建并注册一次性回复地址
func (s *System) newFuture() *future {
	id := "$ask/" + strconv.FormatUint(s.askSeq.Inc(), 10)
	f := &future{
		pid:    &PID{ID: id, system: s},
		result: make(chan Message, 1),
		done:   atomic.NewBool(false),
	}
	s.register(id, f)
	return f
}

// Ask 请求-回复
//
// 创建一次性回复地址，调用 build 构造携带该地址的消息并发送给 target，
// 然后等待投递到该地址的第一条消息。timeout 内没有回复时返回
// *ResponseTimeout（errors.Is(err, ErrTimeout) 成立）。超时之后到达的回复被丢弃。
// 只挂起调用方，不影响 target。
func (s *System) Ask(target *PID, build func(replyTo *PID) Message, timeout time.Duration) (Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	msg, err := s.AskContext(ctx, target, build)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, &ResponseTimeout{Target: target, Timeout: timeout}
	}
	return msg, err
}

// AskContext 带 context 的请求-回复，ctx 取消或到期时返回 ctx.Err()
func (s *System) AskContext(ctx context.Context, target *PID, build func(replyTo *PID) Message) (Message, error) {
	if !s.isRunning.Load() {
		return nil, ErrSystemStopped
	}
	if build == nil {
		return nil, ErrNilMessage
	}

	f := s.newFuture()
	defer s.unregister(f.pid.ID)

	if err := s.sendFrom(target, build(f.pid), f.pid); err != nil {
		f.done.Store(true)
		return nil, err
	}

	select {
	case msg := <-f.result:
		return msg, nil
	case <-ctx.Done():
		// 回复与超时竞争：回复已被接受则以回复为准
		if !f.done.CompareAndSwap(false, true) {
			return <-f.result, nil
		}
		s.stats.askTimeouts.Inc()
		s.metrics.askTimeouts.Inc()
		return nil, ctx.Err()
	}
}
