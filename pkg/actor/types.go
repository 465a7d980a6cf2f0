package actor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

// Message Actor 消息接口
// 所有 Actor 间传递的消息都必须实现此接口
type Message interface {
	// Kind 返回消息类型标识，用于路由、日志和监控
	Kind() string
}

// PID (Process ID) Actor 进程标识符
//
// PID 是 Actor 邮箱的唯一寻址方式，既可以作为 Send/Ask 的目标，
// 也可以嵌入消息中作为回复地址（reply-to）。
type PID struct {
	// ID Actor 唯一标识（在所属 System 内唯一）
	ID string
	// system 所属的 Actor 系统（内部使用）
	system *System
}

// String 返回 PID 的字符串表示
func (p *PID) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.ID
}

// Tell 发送消息（fire-and-forget）
//
// 永不阻塞。目标不存在或已停止时返回错误，消息不会投递给任何人。
func (p *PID) Tell(msg Message) error {
	if p == nil || p.system == nil {
		return errors.Wrapf(ErrActorNotFound, "tell %s", p)
	}
	return p.system.Send(p, msg)
}

// Ask 请求-回复
//
// build 接收一次性回复地址，返回要发送的消息；详见 [System.Ask]。
func (p *PID) Ask(build func(replyTo *PID) Message, timeout time.Duration) (Message, error) {
	if p == nil || p.system == nil {
		return nil, errors.Wrapf(ErrActorNotFound, "ask %s", p)
	}
	return p.system.Ask(p, build, timeout)
}

// Actor Actor 接口
// 实现此接口即可成为 Actor
type Actor interface {
	// Receive 处理接收到的消息
	// 同一个 Actor 的 Receive 永远不会并发执行
	Receive(ctx *Context, msg Message)
}

// ActorFunc 函数式 Actor，便于快速创建简单 Actor
type ActorFunc func(ctx *Context, msg Message)

// Receive 实现 Actor 接口
func (f ActorFunc) Receive(ctx *Context, msg Message) {
	f(ctx, msg)
}

// Context Actor 执行上下文
//
// 每条消息创建一个新的 Context。通过 Send/Reply 发出的消息先缓存在
// outbox 中，处理函数正常返回后才真正投递；处理函数 panic 时全部丢弃。
type Context struct {
	// Self 当前 Actor 的 PID
	Self *PID
	// Sender 消息发送者的 PID（从外部发送时为 nil）
	Sender *PID

	system  *System
	ctx     context.Context
	message Message
	logger  *slog.Logger
	outbox  []outbound
}

// outbound 待投递的消息
type outbound struct {
	target  *PID
	message Message
}

// Send 在当前消息处理完成后向 target 发送消息
func (c *Context) Send(target *PID, msg Message) {
	c.outbox = append(c.outbox, outbound{target: target, message: msg})
}

// Reply 回复消息给 Sender，没有 Sender 时忽略
func (c *Context) Reply(msg Message) {
	if c.Sender != nil {
		c.Send(c.Sender, msg)
	}
}

// Context 获取 Actor 生命周期对应的 Go context
func (c *Context) Context() context.Context {
	return c.ctx
}

// Message 获取当前正在处理的消息
func (c *Context) Message() Message {
	return c.message
}

// System 获取 Actor 系统引用
func (c *Context) System() *System {
	return c.system
}

// Logger 获取带有 actor 属性的日志器
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// flush 投递 outbox 中的消息，发送者为 Self
func (c *Context) flush() {
	for _, out := range c.outbox {
		if err := c.system.sendFrom(out.target, out.message, c.Self); err != nil {
			c.logger.Debug("outbound message not delivered",
				"kind", kindOf(out.message), "target", out.target, "err", err)
		}
	}
	c.outbox = nil
}

// Props Actor 属性配置
type Props struct {
	// Name Actor 名称
	Name string
	// MailboxSize 邮箱容量，<= 0 表示使用系统默认值（默认无界）
	MailboxSize int
}

// DefaultProps 默认属性
func DefaultProps(name string) *Props {
	return &Props{Name: name}
}

// WithMailboxSize 设置邮箱容量
func (p *Props) WithMailboxSize(size int) *Props {
	p.MailboxSize = size
	return p
}

// ============== 系统消息 ==============

// Started Actor 启动完成消息，总是 Actor 收到的第一条消息
type Started struct{}

// Kind 实现 Message 接口
func (s *Started) Kind() string { return "system.started" }

// Stopping Actor 正在停止消息
type Stopping struct{}

// Kind 实现 Message 接口
func (s *Stopping) Kind() string { return "system.stopping" }

// Stopped Actor 已停止消息，总是 Actor 收到的最后一条消息
type Stopped struct{}

// Kind 实现 Message 接口
func (s *Stopped) Kind() string { return "system.stopped" }

// PoisonPill 毒丸消息，排在它之前的消息处理完后停止 Actor
type PoisonPill struct{}

// Kind 实现 Message 接口
func (p *PoisonPill) Kind() string { return "system.poison_pill" }

// ============== 请求/响应支持 ==============

// ResponseTimeout 响应超时错误
type ResponseTimeout struct {
	Target  *PID
	Timeout time.Duration
}

// Kind 实现 Message 接口
func (r *ResponseTimeout) Kind() string { return "system.response_timeout" }

// Error 实现 error 接口
func (r *ResponseTimeout) Error() string {
	return fmt.Sprintf("request to %s timed out after %v", r.Target, r.Timeout)
}

// Is 使 errors.Is(err, ErrTimeout) 成立
func (r *ResponseTimeout) Is(target error) bool {
	return target == ErrTimeout
}
