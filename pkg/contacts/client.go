package contacts

import (
	"time"

	"github.com/lwmacct/251215-go-pkg-contacts/pkg/actor"
	"github.com/pkg/errors"
)

// DefaultAskTimeout 请求的默认超时时间
const DefaultAskTimeout = 250 * time.Millisecond

// Client 联系人 Actor 的类型化客户端
//
// 每个方法发送一条请求并等待回复，NotFound 回复转换为 *NotFoundError。
// Client 只持有 PID，可以被多个 goroutine 同时使用。
type Client struct {
	pid     *actor.PID
	timeout time.Duration
}

// NewClient 创建客户端，timeout <= 0 时使用 DefaultAskTimeout
func NewClient(pid *actor.PID, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultAskTimeout
	}
	return &Client{pid: pid, timeout: timeout}
}

// PID 返回联系人 Actor 的 PID
func (c *Client) PID() *actor.PID { return c.pid }

// Timeout 返回请求超时时间
func (c *Client) Timeout() time.Duration { return c.timeout }

// List 返回全部联系人
func (c *Client) List() ([]Contact, error) {
	s, err := c.ask(func(r *actor.PID) actor.Message { return &GetAll{ReplyTo: r} })
	if err != nil {
		return nil, err
	}
	return s.Contacts, nil
}

// Get 按 ID 查询
func (c *Client) Get(id ContactID) (Contact, error) {
	s, err := c.ask(func(r *actor.PID) actor.Message { return &GetOne{ReplyTo: r, ContactID: id} })
	if err != nil {
		return Contact{}, err
	}
	return s.Contact, nil
}

// Create 创建联系人，返回带有新 ID 的联系人
func (c *Client) Create(p Patch) (Contact, error) {
	s, err := c.ask(func(r *actor.PID) actor.Message { return &Create{ReplyTo: r, Payload: p} })
	if err != nil {
		return Contact{}, err
	}
	return s.Contact, nil
}

// Update 合并补丁，返回更新后的联系人
func (c *Client) Update(id ContactID, p Patch) (Contact, error) {
	s, err := c.ask(func(r *actor.PID) actor.Message {
		return &Update{ReplyTo: r, ContactID: id, Payload: p}
	})
	if err != nil {
		return Contact{}, err
	}
	return s.Contact, nil
}

// Remove 删除联系人，返回删除前的值
func (c *Client) Remove(id ContactID) (Contact, error) {
	s, err := c.ask(func(r *actor.PID) actor.Message { return &Remove{ReplyTo: r, ContactID: id} })
	if err != nil {
		return Contact{}, err
	}
	return s.Contact, nil
}

// ============== 不等待回复 ==============

// NotifyCreate 发送 Create，不等待回复
func (c *Client) NotifyCreate(p Patch) error {
	return c.pid.Tell(&Create{Payload: p})
}

// NotifyUpdate 发送 Update，不等待回复
func (c *Client) NotifyUpdate(id ContactID, p Patch) error {
	return c.pid.Tell(&Update{ContactID: id, Payload: p})
}

// NotifyRemove 发送 Remove，不等待回复
func (c *Client) NotifyRemove(id ContactID) error {
	return c.pid.Tell(&Remove{ContactID: id})
}

func (c *Client) ask(build func(replyTo *actor.PID) actor.Message) (*Success, error) {
	reply, err := c.pid.Ask(build, c.timeout)
	if err != nil {
		return nil, err
	}
	switch r := reply.(type) {
	case *Success:
		return r, nil
	case *NotFound:
		return nil, &NotFoundError{ContactID: r.ContactID}
	default:
		return nil, errors.Wrapf(actor.ErrUnexpectedReply, "contacts: got %s", reply.Kind())
	}
}
