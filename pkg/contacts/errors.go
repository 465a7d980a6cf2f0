package contacts

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound 联系人不存在
var ErrNotFound = errors.New("contacts: contact not found")

// NotFoundError 由 NotFound 回复转换而来的错误
type NotFoundError struct {
	ContactID ContactID
}

// Error 实现 error 接口
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("contacts: contact %q not found", e.ContactID)
}

// Is 使 errors.Is(err, ErrNotFound) 成立
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
