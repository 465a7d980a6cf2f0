// Package actor 提供轻量级进程内 Actor 模型实现
//
// 每个 Actor 是独立的计算单元：
// • 拥有私有状态（无需锁保护）
// • 通过消息邮箱（mailbox）接收消息
// • 消息处理串行化（一次处理一条，按入队顺序）
// • 只能通过消息访问，不能直接调用
//
// # 核心组件
//
// [System] 是 Actor 系统的入口，显式创建、显式关闭，没有全局单例：
//
//	sys := actor.NewSystem("my-system")
//	defer sys.Shutdown()
//
// [Actor] 接口定义消息处理行为，[ActorFunc] 提供函数式快捷方式，
// [SpawnState] 以「初始状态 + 状态转移函数」创建 Actor，
// 每条消息返回新的状态值（copy-on-write）。
//
// [PID] 是 Actor 的唯一标识，用于消息发送，也可以作为回复地址嵌入消息。
// [PID.Tell] 异步发送消息（fire-and-forget），永不阻塞；
// [PID.Ask] 创建一次性回复地址并在超时时间内等待回复。
//
// # 请求-回复
//
// Ask 的回复地址只接受第一条消息，完成或超时后即失效；
// 超时之后到达的回复会被丢弃并记为死信：
//
//	reply, err := pid.Ask(func(replyTo *actor.PID) actor.Message {
//	    return &GetStatus{ReplyTo: replyTo}
//	}, 250*time.Millisecond)
//	if errors.Is(err, actor.ErrTimeout) {
//	    // 没有回复
//	}
//
// # 处理函数的原子性
//
// 处理函数中通过 [Context.Send] / [Context.Reply] 发出的消息在处理函数
// 正常返回后才投递。处理函数 panic 时这些消息被丢弃，[SpawnState] 的状态
// 也保持不变，Actor 继续处理下一条消息。
//
// # 系统消息
//
// Actor 生命周期中会收到以下系统消息：[Started] 启动完成，[Stopping] 正在停止，
// [Stopped] 已停止。[PoisonPill] 由 [System.Stop] 发出。
//
// 完整使用示例请参考 example_test.go 或运行 go doc -all。
package actor
