package contacts

import "github.com/google/uuid"

// ContactID 联系人标识，由存储在创建时分配，之后不可变
type ContactID string

// String 实现 fmt.Stringer
func (id ContactID) String() string { return string(id) }

// NewContactID 生成 128 位随机标识（UUIDv4）
func NewContactID() ContactID {
	return ContactID(uuid.NewString())
}

// Contact 联系人
type Contact struct {
	ID     ContactID `json:"id"`
	Name   string    `json:"name"`
	Street string    `json:"street"`
}

// Patch 联系人字段补丁
//
// 用于 Create 和 Update：设置了的字段覆盖原值，nil 字段保留原值。
// Patch 不包含 ID，ID 只能由存储分配。
type Patch struct {
	Name   *string `json:"name,omitempty"`
	Street *string `json:"street,omitempty"`
}

// NewPatch 创建空补丁
func NewPatch() Patch {
	return Patch{}
}

// WithName 设置 Name
func (p Patch) WithName(name string) Patch {
	p.Name = &name
	return p
}

// WithStreet 设置 Street
func (p Patch) WithStreet(street string) Patch {
	p.Street = &street
	return p
}

// IsEmpty 是否没有设置任何字段
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Street == nil
}

// Apply 把补丁合并到 c 上，返回新值，c 本身不变
func (p Patch) Apply(c Contact) Contact {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Street != nil {
		c.Street = *p.Street
	}
	return c
}
