package contacts

import "github.com/lwmacct/251215-go-pkg-contacts/pkg/actor"

// Message 联系人 Actor 协议中的消息
//
// 接口通过未导出方法封闭，只有本包定义的七种消息实现它。
type Message interface {
	actor.Message
	contactsMessage()
}

// ═══════════════════════════════════════════════════════════════════════════
// 请求
// ═══════════════════════════════════════════════════════════════════════════

// GetAll 查询全部联系人
type GetAll struct {
	ReplyTo *actor.PID
}

// Kind 实现 Message 接口
func (m *GetAll) Kind() string   { return "contacts.get_all" }
func (*GetAll) contactsMessage() {}

// GetOne 按 ID 查询联系人
type GetOne struct {
	ReplyTo   *actor.PID
	ContactID ContactID
}

// Kind 实现 Message 接口
func (m *GetOne) Kind() string   { return "contacts.get_one" }
func (*GetOne) contactsMessage() {}

// Create 创建联系人，ID 由存储分配
type Create struct {
	ReplyTo *actor.PID
	Payload Patch
}

// Kind 实现 Message 接口
func (m *Create) Kind() string   { return "contacts.create" }
func (*Create) contactsMessage() {}

// Update 合并补丁到已有联系人
type Update struct {
	ReplyTo   *actor.PID
	ContactID ContactID
	Payload   Patch
}

// Kind 实现 Message 接口
func (m *Update) Kind() string   { return "contacts.update" }
func (*Update) contactsMessage() {}

// Remove 删除联系人
type Remove struct {
	ReplyTo   *actor.PID
	ContactID ContactID
}

// Kind 实现 Message 接口
func (m *Remove) Kind() string   { return "contacts.remove" }
func (*Remove) contactsMessage() {}

// ═══════════════════════════════════════════════════════════════════════════
// 回复
// ═══════════════════════════════════════════════════════════════════════════

// Success 操作成功
//
// GetAll 填充 Contacts，其余请求填充 Contact。
// Remove 的 Contact 是被删除前的值。
type Success struct {
	From     *actor.PID
	Contact  Contact
	Contacts []Contact
}

// Kind 实现 Message 接口
func (m *Success) Kind() string   { return "contacts.success" }
func (*Success) contactsMessage() {}

// NotFound 目标联系人不存在
type NotFound struct {
	From      *actor.PID
	ContactID ContactID
}

// Kind 实现 Message 接口
func (m *NotFound) Kind() string   { return "contacts.not_found" }
func (*NotFound) contactsMessage() {}
