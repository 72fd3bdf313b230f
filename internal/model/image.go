package model

import "time"

// DomainType 标识图片关联行所属的实体类型
type DomainType string

const (
	DomainTypeMember DomainType = "MEMBER"
)

// Image 图片关联记录，(reference_id, domain_type) 为多态引用，
// 不依赖数据库外键约束
type Image struct {
	ID           int64      `json:"id"`
	ReferenceID  int64      `json:"reference_id"`
	DomainType   DomainType `json:"domain_type"`
	FullPath     string     `json:"full_path"`
	OriginalName string     `json:"original_name"`
	CreatedAt    time.Time  `json:"created_at"`
}
