package interfaces

import "github.com/Kim-Changgyu/ShoeKream/internal/model"

// ImageRepository 接口定义了图片关联仓库应该实现的方法，
// FindAllByReference 按插入顺序返回，第一张为主图
type ImageRepository interface {
	Save(image *model.Image) error
	FindAllByReference(referenceID int64, domainType model.DomainType) ([]*model.Image, error)
}
