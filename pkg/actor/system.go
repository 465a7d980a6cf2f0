package actor

import (
	"context"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// System Actor 系统
//
// System 是显式的上下文对象：拥有 Actor 注册表、死信队列和指标，
// 由调用方创建并负责 Shutdown，不存在全局单例。
type System struct {
	// 基本信息
	name string

	// 进程注册表（Actor 与一次性回复地址）
	processes   map[string]process
	processesMu sync.RWMutex

	// 死信队列（无法投递的消息）
	deadLetters chan deadLetter

	// 生命周期控制
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning *atomic.Bool
	askSeq    *atomic.Uint64

	// 配置
	config *SystemConfig

	// 统计与指标
	stats   *systemCounters
	metrics *systemMetrics

	// 日志
	logger *slog.Logger
}

// SystemConfig 系统配置
type SystemConfig struct {
	// DeadLetterSize 死信队列大小
	DeadLetterSize int
	// DefaultActorMailboxSize 默认 Actor 邮箱容量，<= 0 表示无界
	DefaultActorMailboxSize int
	// EnableDeadLetterLogging 是否记录死信
	EnableDeadLetterLogging bool
	// PanicHandler panic 处理函数，nil 时记录错误日志
	PanicHandler func(actor *PID, msg Message, err any)
	// Logger 自定义日志器
	Logger *slog.Logger
}

// DefaultSystemConfig 默认系统配置
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DeadLetterSize:          1000,
		DefaultActorMailboxSize: 0,
		EnableDeadLetterLogging: true,
		PanicHandler:            nil, // 使用默认处理
		Logger:                  nil, // 使用默认 logger
	}
}

// process 可以接收消息的地址：Actor 或一次性回复地址
type process interface {
	deliver(env envelope) error
}

// actorCell Actor 单元，包含 Actor 及其运行时状态
type actorCell struct {
	pid      *PID
	actor    Actor
	mailbox  *mailbox
	stopping *atomic.Bool
	done     chan struct{}
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// deliver 实现 process 接口
func (c *actorCell) deliver(env envelope) error {
	if c.stopping.Load() {
		return ErrActorStopped
	}
	return c.mailbox.push(env)
}

// envelope 消息信封
type envelope struct {
	sender  *PID
	message Message
	sentAt  time.Time
}

// deadLetter 无法投递的消息
type deadLetter struct {
	target *PID
	env    envelope
	reason error
}

// NewSystem 创建新的 Actor 系统
func NewSystem(name string) *System {
	return NewSystemWithConfig(name, DefaultSystemConfig())
}

// NewSystemWithConfig 使用配置创建 Actor 系统
func NewSystemWithConfig(name string, config *SystemConfig) *System {
	if config == nil {
		config = DefaultSystemConfig()
	}
	if config.DeadLetterSize <= 0 {
		config.DeadLetterSize = DefaultSystemConfig().DeadLetterSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("system", name)

	s := &System{
		name:        name,
		processes:   make(map[string]process),
		deadLetters: make(chan deadLetter, config.DeadLetterSize),
		ctx:         ctx,
		cancel:      cancel,
		isRunning:   atomic.NewBool(true),
		askSeq:      atomic.NewUint64(0),
		config:      config,
		stats:       newSystemCounters(),
		logger:      logger,
	}
	s.metrics = newSystemMetrics(s)

	// 启动死信处理器，随 ctx 取消退出
	if config.EnableDeadLetterLogging {
		go s.deadLetterHandler()
	}

	s.logger.Info("actor system started")
	return s
}

// Name 返回系统名称
func (s *System) Name() string {
	return s.name
}

// Logger 返回系统日志器
func (s *System) Logger() *slog.Logger {
	return s.logger
}

// Spawn 创建 Actor
func (s *System) Spawn(actor Actor, name string) (*PID, error) {
	return s.SpawnWithProps(actor, DefaultProps(name))
}

// SpawnWithProps 使用属性创建 Actor
//
// 名称必须唯一且不能以 "$" 开头（保留给一次性回复地址）。
func (s *System) SpawnWithProps(actor Actor, props *Props) (*PID, error) {
	if !s.isRunning.Load() {
		return nil, ErrSystemStopped
	}
	if actor == nil {
		return nil, errors.New("actor: nil actor")
	}
	if props == nil || props.Name == "" || strings.HasPrefix(props.Name, "$") {
		return nil, errors.Errorf("actor: invalid name %q", nameOf(props))
	}

	s.processesMu.Lock()
	defer s.processesMu.Unlock()

	if _, exists := s.processes[props.Name]; exists {
		return nil, errors.Wrapf(ErrActorExists, "spawn %s", props.Name)
	}

	pid := &PID{ID: props.Name, system: s}
	ctx, cancel := context.WithCancel(s.ctx)

	mailboxSize := props.MailboxSize
	if mailboxSize <= 0 {
		mailboxSize = s.config.DefaultActorMailboxSize
	}

	cell := &actorCell{
		pid:      pid,
		actor:    actor,
		mailbox:  newMailbox(mailboxSize),
		stopping: atomic.NewBool(false),
		done:     make(chan struct{}),
		logger:   s.logger.With("actor", props.Name),
		ctx:      ctx,
		cancel:   cancel,
	}

	// Started 必须是第一条消息
	_ = cell.mailbox.pushSystem(envelope{message: &Started{}, sentAt: time.Now()})

	s.processes[props.Name] = cell
	s.stats.totalActors.Inc()

	s.wg.Add(1)
	go s.actorLoop(cell)

	s.logger.Debug("spawned actor", "actor", props.Name)
	return pid, nil
}

// Send 发送消息（无发送者）
//
// 永不阻塞；同一发送者发往同一目标的消息保持顺序。
// 目标不存在、已停止或邮箱已满时返回错误，并记录死信。
func (s *System) Send(target *PID, msg Message) error {
	return s.sendFrom(target, msg, nil)
}

// SendWithSender 发送消息（带发送者）
func (s *System) SendWithSender(target *PID, msg Message, sender *PID) error {
	return s.sendFrom(target, msg, sender)
}

// sendFrom 投递消息到目标进程
func (s *System) sendFrom(target *PID, msg Message, sender *PID) error {
	if msg == nil {
		return ErrNilMessage
	}
	if !s.isRunning.Load() {
		return ErrSystemStopped
	}

	env := envelope{sender: sender, message: msg, sentAt: time.Now()}

	if target == nil {
		s.deadLetter(nil, env, ErrActorNotFound)
		return errors.Wrap(ErrActorNotFound, "send to nil target")
	}

	proc, ok := s.lookup(target.ID)
	if !ok {
		s.deadLetter(target, env, ErrActorNotFound)
		return errors.Wrapf(ErrActorNotFound, "send %s to %s", msg.Kind(), target.ID)
	}

	if err := proc.deliver(env); err != nil {
		s.deadLetter(target, env, err)
		return errors.Wrapf(err, "send %s to %s", msg.Kind(), target.ID)
	}

	s.stats.totalMessages.Inc()
	s.metrics.sent.Inc()
	return nil
}

// lookup 查找进程
func (s *System) lookup(id string) (process, bool) {
	s.processesMu.RLock()
	defer s.processesMu.RUnlock()
	proc, ok := s.processes[id]
	return proc, ok
}

// register 注册一次性进程
func (s *System) register(id string, proc process) {
	s.processesMu.Lock()
	s.processes[id] = proc
	s.processesMu.Unlock()
}

// unregister 移除进程
func (s *System) unregister(id string) {
	s.processesMu.Lock()
	delete(s.processes, id)
	s.processesMu.Unlock()
}

// Stop 停止 Actor
//
// 已排队的消息会先处理完，之后的用户消息将被拒绝。
func (s *System) Stop(pid *PID) {
	if pid == nil {
		return
	}
	proc, ok := s.lookup(pid.ID)
	if !ok {
		return
	}
	cell, ok := proc.(*actorCell)
	if !ok {
		return
	}
	if !cell.stopping.CompareAndSwap(false, true) {
		return
	}
	_ = cell.mailbox.pushSystem(envelope{message: &PoisonPill{}, sentAt: time.Now()})
}

// StopGracefully 优雅停止 Actor（等待处理完已排队的消息）
func (s *System) StopGracefully(pid *PID, timeout time.Duration) error {
	if pid == nil {
		return nil
	}
	proc, ok := s.lookup(pid.ID)
	if !ok {
		return nil
	}
	cell, ok := proc.(*actorCell)
	if !ok {
		return nil
	}

	s.Stop(pid)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-cell.done:
		return nil
	case <-timer.C:
		return errors.Errorf("timeout waiting for actor %s to stop", pid.ID)
	}
}

// Shutdown 关闭整个 Actor 系统
func (s *System) Shutdown() {
	s.ShutdownWithTimeout(30 * time.Second)
}

// ShutdownWithTimeout 带超时的关闭
func (s *System) ShutdownWithTimeout(timeout time.Duration) {
	if !s.isRunning.Load() {
		return
	}
	s.logger.Info("actor system shutting down")

	// 先停止所有 Actor，让它们处理完已排队的消息
	for _, pid := range s.ListActors() {
		s.Stop(pid)
	}
	s.isRunning.Store(false)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		s.logger.Info("actor system shutdown complete")
	case <-timer.C:
		s.logger.Warn("actor system shutdown timeout, forcing exit")
	}
	s.cancel()
}

// actorLoop Actor 消息处理循环
//
// 每个 Actor 一个 goroutine，保证同一 Actor 的消息严格串行处理。
func (s *System) actorLoop(cell *actorCell) {
	defer s.wg.Done()
	defer s.cleanupActor(cell)

	for {
		env, ok := cell.mailbox.pop()
		if !ok {
			select {
			case <-cell.mailbox.signal:
				continue
			case <-s.ctx.Done():
				return
			}
		}

		s.processMessage(cell, env)

		// 检查是否收到 PoisonPill
		if _, ok := env.message.(*PoisonPill); ok {
			return
		}
	}
}

// processMessage 处理单条消息
func (s *System) processMessage(cell *actorCell, env envelope) {
	start := time.Now()

	msg := env.message
	if _, ok := msg.(*PoisonPill); ok {
		msg = &Stopping{}
	}

	ctx := &Context{
		Self:    cell.pid,
		Sender:  env.sender,
		system:  s,
		ctx:     cell.ctx,
		message: msg,
		logger:  cell.logger,
	}

	if !s.invoke(cell, ctx, msg) {
		return
	}
	// 只有处理函数正常返回，才投递它发出的消息
	ctx.flush()

	s.stats.processedMsgs.Inc()
	s.metrics.processed(cell.pid.ID, start)
}

// invoke 调用 Receive 并恢复 panic，返回是否正常完成
func (s *System) invoke(cell *actorCell, ctx *Context, msg Message) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			s.stats.panics.Inc()
			s.metrics.panicked(cell.pid.ID)
			if s.config.PanicHandler != nil {
				s.config.PanicHandler(cell.pid, msg, r)
				return
			}
			cell.logger.Error("panic in actor",
				"message", kindOf(msg),
				"error", r,
				"stack", string(debug.Stack()))
		}
	}()

	cell.actor.Receive(ctx, msg)
	return true
}

// cleanupActor 清理 Actor
func (s *System) cleanupActor(cell *actorCell) {
	cell.stopping.Store(true)

	// 剩余消息转为死信
	for _, env := range cell.mailbox.close() {
		if _, ok := env.message.(*PoisonPill); ok {
			continue
		}
		s.deadLetter(cell.pid, env, ErrActorStopped)
	}

	// 发送 Stopped 消息
	ctx := &Context{
		Self:    cell.pid,
		system:  s,
		ctx:     context.Background(),
		message: &Stopped{},
		logger:  cell.logger,
	}
	if s.invoke(cell, ctx, &Stopped{}) {
		ctx.flush()
	}

	s.unregister(cell.pid.ID)
	cell.cancel()
	close(cell.done)

	s.stats.totalActors.Dec()
	cell.logger.Debug("actor stopped")
}

// deadLetter 记录死信
func (s *System) deadLetter(target *PID, env envelope, reason error) {
	s.stats.deadLetters.Inc()
	s.metrics.deadLetters.Inc()

	if !s.config.EnableDeadLetterLogging {
		return
	}
	select {
	case s.deadLetters <- deadLetter{target: target, env: env, reason: reason}:
	default:
	}
}

// deadLetterHandler 死信处理器
func (s *System) deadLetterHandler() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case dl := <-s.deadLetters:
			s.logger.Warn("dead letter",
				"message", kindOf(dl.env.message),
				"target", dl.target,
				"sender", dl.env.sender,
				"reason", dl.reason)
		}
	}
}

// GetActor 获取 Actor
func (s *System) GetActor(name string) (*PID, bool) {
	proc, ok := s.lookup(name)
	if !ok {
		return nil, false
	}
	cell, ok := proc.(*actorCell)
	if !ok {
		return nil, false
	}
	return cell.pid, true
}

// ListActors 列出所有 Actor（不含一次性回复地址）
func (s *System) ListActors() []*PID {
	s.processesMu.RLock()
	defer s.processesMu.RUnlock()

	pids := make([]*PID, 0, len(s.processes))
	for _, proc := range s.processes {
		if cell, ok := proc.(*actorCell); ok {
			pids = append(pids, cell.pid)
		}
	}
	return pids
}

// Count 返回 Actor 数量
func (s *System) Count() int {
	return len(s.ListActors())
}

// IsRunning 检查系统是否运行中
func (s *System) IsRunning() bool {
	return s.isRunning.Load()
}

func nameOf(props *Props) string {
	if props == nil {
		return ""
	}
	return props.Name
}
