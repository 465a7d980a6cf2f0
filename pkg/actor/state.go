package actor

// Behavior 状态转移函数
//
// 对当前状态和消息返回下一个状态。返回值替换 Actor 持有的状态，
// 状态本身应当是不可变值（copy-on-write），不要原地修改 state。
type Behavior[S any] func(ctx *Context, state S, msg Message) S

// stateActor 以 Behavior 驱动的 Actor
//
// 状态只在 Actor 自己的 goroutine 中读写。Behavior panic 时
// 赋值不会发生，状态保持不变。
type stateActor[S any] struct {
	state    S
	behavior Behavior[S]
}

// Receive 实现 Actor 接口
func (a *stateActor[S]) Receive(ctx *Context, msg Message) {
	next := a.behavior(ctx, a.state, msg)
	a.state = next
}

// SpawnState 以初始状态和状态转移函数创建 Actor
//
//	pid, err := actor.SpawnState(sys, "counter", 0,
//	    func(ctx *actor.Context, n int, msg actor.Message) int {
//	        if _, ok := msg.(*Incr); ok {
//	            return n + 1
//	        }
//	        return n
//	    })
func SpawnState[S any](sys *System, name string, initial S, behavior Behavior[S]) (*PID, error) {
	return SpawnStateWithProps(sys, DefaultProps(name), initial, behavior)
}

// SpawnStateWithProps 同 SpawnState，使用属性配置
func SpawnStateWithProps[S any](sys *System, props *Props, initial S, behavior Behavior[S]) (*PID, error) {
	if behavior == nil {
		return nil, ErrNilBehavior
	}
	return sys.SpawnWithProps(&stateActor[S]{state: initial, behavior: behavior}, props)
}
