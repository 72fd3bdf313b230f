package interfaces

import "github.com/Kim-Changgyu/ShoeKream/internal/model"

// MemberRepository 接口定义了会员仓库应该实现的方法，
// FindByEmail 在查无记录时返回 (nil, nil)
type MemberRepository interface {
	Create(member *model.Member) error
	FindByID(id int64) (*model.Member, error)
	FindByEmail(email string) (*model.Member, error)
	Update(member *model.Member) error
	Delete(id int64) error
}
