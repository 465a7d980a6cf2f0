package contacts

import (
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/pkg/errors"
)

// idComparer 按字典序比较 ContactID
type idComparer struct{}

func (idComparer) Compare(a, b ContactID) int {
	return strings.Compare(string(a), string(b))
}

// Store 联系人 Actor 的状态
//
// Store 是不可变值：With / Without 返回新的 Store，原值不受影响，
// 旧快照可以安全地交给其他 goroutine 读取。
// 零值是空存储，可直接使用。
type Store struct {
	contacts *immutable.SortedMap[ContactID, Contact]
	version  uint64
}

// NewStore 用初始联系人构建存储
//
// ID 为空或重复时返回错误。
func NewStore(seed ...Contact) (Store, error) {
	b := immutable.NewSortedMapBuilder[ContactID, Contact](idComparer{})
	for _, c := range seed {
		if c.ID == "" {
			return Store{}, errors.Errorf("contacts: seed contact %q has empty id", c.Name)
		}
		if _, ok := b.Get(c.ID); ok {
			return Store{}, errors.Errorf("contacts: duplicate seed id %q", c.ID)
		}
		b.Set(c.ID, c)
	}
	return Store{contacts: b.Map()}, nil
}

func (s Store) entries() *immutable.SortedMap[ContactID, Contact] {
	if s.contacts == nil {
		return immutable.NewSortedMap[ContactID, Contact](idComparer{})
	}
	return s.contacts
}

// Len 联系人数量
func (s Store) Len() int {
	if s.contacts == nil {
		return 0
	}
	return s.contacts.Len()
}

// Version 每次修改加一，未修改的消息不会改变它
func (s Store) Version() uint64 { return s.version }

// Get 按 ID 查找
func (s Store) Get(id ContactID) (Contact, bool) {
	if s.contacts == nil {
		return Contact{}, false
	}
	return s.contacts.Get(id)
}

// Has 是否存在
func (s Store) Has(id ContactID) bool {
	_, ok := s.Get(id)
	return ok
}

// All 返回按 ID 排序的全部联系人副本
func (s Store) All() []Contact {
	out := make([]Contact, 0, s.Len())
	if s.contacts == nil {
		return out
	}
	itr := s.contacts.Iterator()
	for !itr.Done() {
		_, c, _ := itr.Next()
		out = append(out, c)
	}
	return out
}

// With 插入或替换联系人
func (s Store) With(c Contact) Store {
	return Store{contacts: s.entries().Set(c.ID, c), version: s.version + 1}
}

// Without 删除联系人，不存在时原样返回
func (s Store) Without(id ContactID) Store {
	if !s.Has(id) {
		return s
	}
	return Store{contacts: s.contacts.Delete(id), version: s.version + 1}
}
