package actor

import "github.com/pkg/errors"

var (
	// ErrActorNotFound 目标 Actor 不存在（从未创建、已停止或一次性回复地址已失效）
	ErrActorNotFound = errors.New("actor: not found")
	// ErrActorExists 同名 Actor 已存在
	ErrActorExists = errors.New("actor: already exists")
	// ErrActorStopped 目标 Actor 正在停止，不再接收用户消息
	ErrActorStopped = errors.New("actor: stopped")
	// ErrMailboxFull 有界邮箱已满
	ErrMailboxFull = errors.New("actor: mailbox is full")
	// ErrSystemStopped Actor 系统未运行
	ErrSystemStopped = errors.New("actor: system is not running")
	// ErrTimeout Ask 在超时时间内没有收到回复，见 [ResponseTimeout]
	ErrTimeout = errors.New("actor: request timed out")
	// ErrUnexpectedReply 回复类型与期望不符，见 [AskAs]
	ErrUnexpectedReply = errors.New("actor: unexpected reply")
	// ErrNilMessage 消息为 nil
	ErrNilMessage = errors.New("actor: nil message")
	// ErrNilBehavior 状态转移函数为 nil
	ErrNilBehavior = errors.New("actor: nil behavior")
)

// kindOf 返回消息类型，nil 安全
func kindOf(msg Message) string {
	if msg == nil {
		return "<nil>"
	}
	return msg.Kind()
}
