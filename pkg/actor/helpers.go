package actor

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ═══════════════════════════════════════════════════════════════════════════
// 类型化请求-回复辅助函数
// ═══════════════════════════════════════════════════════════════════════════

// AskAs 向 Actor 发送请求并把回复断言为 T
//
// 这是一个泛型辅助函数，简化了请求-回复模式的使用。
// 回复类型不是 T 时返回 ErrUnexpectedReply。
//
// 用法示例:
//
//	type GetStatus struct{ ReplyTo *actor.PID }
//	func (m *GetStatus) Kind() string { return "get_status" }
//
//	status, err := actor.AskAs[*Status](pid, func(r *actor.PID) actor.Message {
//	    return &GetStatus{ReplyTo: r}
//	}, 5*time.Second)
func AskAs[T Message](pid *PID, build func(replyTo *PID) Message, timeout time.Duration) (T, error) {
	reply, err := pid.Ask(build, timeout)
	return assertReply[T](pid, reply, err)
}

// AskAsContext 带 context 的 AskAs
func AskAsContext[T Message](ctx context.Context, pid *PID, build func(replyTo *PID) Message) (T, error) {
	if pid == nil || pid.system == nil {
		var zero T
		return zero, errors.Wrapf(ErrActorNotFound, "ask %s", pid)
	}
	reply, err := pid.system.AskContext(ctx, pid, build)
	return assertReply[T](pid, reply, err)
}

func assertReply[T Message](pid *PID, reply Message, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := reply.(T)
	if !ok {
		return zero, errors.Wrapf(ErrUnexpectedReply, "%s replied %s", pid, kindOf(reply))
	}
	return typed, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 错误处理工具
// ═══════════════════════════════════════════════════════════════════════════

// IsTimeout 检查错误是否为请求超时（包括 context 到期）
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}
