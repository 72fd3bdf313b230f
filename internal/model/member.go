package model

import "time"

// Authority 表示会员权限
type Authority string

const (
	RoleUser  Authority = "ROLE_USER"
	RoleAdmin Authority = "ROLE_ADMIN"
)

// Member 结构体表示会员模型
type Member struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // 密码哈希不应在JSON中暴露
	Phone        string    `json:"phone"`
	IsMale       bool      `json:"is_male"`
	Authority    Authority `json:"authority"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MemberUpdate 会员资料的部分更新字段，空字符串表示不修改
type MemberUpdate struct {
	Name     string
	Phone    string
	Password string
}

// MemberView 会员资料视图，imagePaths 第一项为头像
type MemberView struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	IsMale     bool      `json:"is_male"`
	Authority  Authority `json:"authority"`
	ImagePaths []string  `json:"imagePaths"`
}
