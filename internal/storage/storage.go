package storage

import "mime/multipart"

// ObjectStorage 对象存储接口，Store 按键上传（同键重传覆盖），
// ResolveURL 返回该键的访问地址，不发起网络调用
type ObjectStorage interface {
	Store(file *multipart.FileHeader, key string) error
	ResolveURL(key string) string
}
