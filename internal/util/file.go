package util

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

// GenerateObjectKey 为上传文件生成唯一的存储键，保留原始扩展名
func GenerateObjectKey(memberID int64, originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	return fmt.Sprintf("member/%d/%s%s", memberID, uuid.NewString(), ext)
}
