package contacts

import (
	"log/slog"

	"github.com/lwmacct/251215-go-pkg-contacts/pkg/actor"
)

// DefaultActorName 联系人 Actor 的默认名称
const DefaultActorName = "contacts"

// maxIDAttempts 生成 ID 时的最大重试次数
const maxIDAttempts = 8

// service 联系人 Actor 的行为配置
type service struct {
	newID       func() ContactID
	logger      *slog.Logger
	mailboxSize int
}

// Option 配置选项
type Option func(*service)

// WithIDGenerator 替换 ID 生成器（测试中用于得到确定性的 ID）
func WithIDGenerator(gen func() ContactID) Option {
	return func(s *service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLogger 设置日志器，默认使用 Actor 自身的日志器
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// WithMailboxSize 限制邮箱容量，0 表示不限
func WithMailboxSize(size int) Option {
	return func(s *service) {
		s.mailboxSize = size
	}
}

func newService(opts ...Option) *service {
	s := &service{newID: NewContactID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Behavior 返回联系人 Actor 的状态转移函数
//
// 可直接交给 actor.SpawnState 使用：
//
//	pid, err := actor.SpawnState(sys, "contacts", store, contacts.Behavior())
func Behavior(opts ...Option) actor.Behavior[Store] {
	return newService(opts...).receive
}

// Spawn 在 sys 中创建联系人 Actor
func Spawn(sys *actor.System, name string, initial Store, opts ...Option) (*actor.PID, error) {
	s := newService(opts...)
	if name == "" {
		name = DefaultActorName
	}
	props := actor.DefaultProps(name).WithMailboxSize(s.mailboxSize)
	return actor.SpawnStateWithProps(sys, props, initial, s.receive)
}

// receive 状态转移
//
// 每条消息最多产生一条回复，ReplyTo 为 nil 时不回复。
// 不认识的消息原样返回 state。
func (s *service) receive(ctx *actor.Context, state Store, msg actor.Message) Store {
	log := s.logger
	if log == nil {
		log = ctx.Logger()
	}

	switch m := msg.(type) {
	// ─────────────────────────────────────────────────────────────────────
	// 系统消息
	// ─────────────────────────────────────────────────────────────────────

	case *actor.Started:
		log.Debug("contacts store started", "contacts", state.Len())

	case *actor.Stopping:
		log.Debug("contacts store stopping", "contacts", state.Len(), "version", state.Version())

	// ─────────────────────────────────────────────────────────────────────
	// 查询
	// ─────────────────────────────────────────────────────────────────────

	case *GetAll:
		reply(ctx, m.ReplyTo, &Success{From: ctx.Self, Contacts: state.All()})

	case *GetOne:
		c, ok := state.Get(m.ContactID)
		if !ok {
			reply(ctx, m.ReplyTo, &NotFound{From: ctx.Self, ContactID: m.ContactID})
			return state
		}
		reply(ctx, m.ReplyTo, &Success{From: ctx.Self, Contact: c})

	// ─────────────────────────────────────────────────────────────────────
	// 修改
	// ─────────────────────────────────────────────────────────────────────

	case *Create:
		id := s.freshID(state)
		c := m.Payload.Apply(Contact{ID: id})
		log.Debug("contact created", "id", id)
		reply(ctx, m.ReplyTo, &Success{From: ctx.Self, Contact: c})
		return state.With(c)

	case *Update:
		c, ok := state.Get(m.ContactID)
		if !ok {
			reply(ctx, m.ReplyTo, &NotFound{From: ctx.Self, ContactID: m.ContactID})
			return state
		}
		c = m.Payload.Apply(c)
		log.Debug("contact updated", "id", c.ID)
		reply(ctx, m.ReplyTo, &Success{From: ctx.Self, Contact: c})
		return state.With(c)

	case *Remove:
		c, ok := state.Get(m.ContactID)
		if !ok {
			reply(ctx, m.ReplyTo, &NotFound{From: ctx.Self, ContactID: m.ContactID})
			return state
		}
		log.Debug("contact removed", "id", c.ID)
		reply(ctx, m.ReplyTo, &Success{From: ctx.Self, Contact: c})
		return state.Without(c.ID)

	default:
		log.Debug("ignoring message", "kind", msg.Kind())
	}

	return state
}

// freshID 生成 state 中尚未使用的 ID
//
// 生成器重复返回已存在的 ID 时会重试，重试耗尽说明生成器本身有问题。
func (s *service) freshID(state Store) ContactID {
	for range maxIDAttempts {
		id := s.newID()
		if id != "" && !state.Has(id) {
			return id
		}
	}
	panic("contacts: id generator keeps returning used ids")
}

func reply(ctx *actor.Context, to *actor.PID, msg Message) {
	if to == nil {
		return
	}
	ctx.Send(to, msg)
}
