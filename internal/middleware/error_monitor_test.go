package middleware

import (
	stderrors "errors"
	"testing"

	"github.com/Kim-Changgyu/ShoeKream/internal/errors"
	"github.com/stretchr/testify/assert"
)

// TestErrorMonitor 按错误码累计计数
func TestErrorMonitor(t *testing.T) {
	monitor := NewErrorMonitor()

	monitor.RecordError(errors.New(errors.ErrMemberNotFound, "member not found"))
	monitor.RecordError(errors.New(errors.ErrMemberNotFound, "member not found"))
	monitor.RecordError(errors.New(errors.ErrInvalidCredentials, "邮箱或密码错误"))
	monitor.RecordError(stderrors.New("plain"))

	counts := monitor.ErrorCounts()
	assert.Equal(t, 2, counts[errors.ErrMemberNotFound])
	assert.Equal(t, 1, counts[errors.ErrInvalidCredentials])
	assert.Equal(t, 1, counts[errors.ErrInternal])
}
