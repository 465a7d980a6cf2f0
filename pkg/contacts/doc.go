// Package contacts 基于 Actor 的联系人存储
//
// 联系人保存在单个 Actor 的状态中，状态是不可变的 [Store]，
// 每条修改消息产生一个新的 Store。所有访问都通过消息完成：
//
//	sys := actor.NewSystem("app")
//	defer sys.Shutdown()
//
//	pid, _ := contacts.Spawn(sys, "contacts", contacts.SeedStore())
//	client := contacts.NewClient(pid, 250*time.Millisecond)
//
//	c, err := client.Create(contacts.NewPatch().WithName("John").WithStreet("Main St"))
//	all, err := client.List()
//
// # 协议
//
// 请求：[GetAll]、[GetOne]、[Create]、[Update]、[Remove]。
// 回复：[Success]、[NotFound]。请求的 ReplyTo 为 nil 时不回复。
// 其他消息被忽略，状态不变。
package contacts
