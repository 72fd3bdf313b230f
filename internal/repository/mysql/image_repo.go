package mysql

import (
	"database/sql"
	"fmt"

	"github.com/Kim-Changgyu/ShoeKream/internal/model"
	"github.com/Kim-Changgyu/ShoeKream/internal/util"
	"go.uber.org/zap"
)

// imageRepository 实现了 ImageRepository 接口
type imageRepository struct {
	db *sql.DB
}

// NewImageRepository 创建一个新的 imageRepository 实例
func NewImageRepository(db *sql.DB) *imageRepository {
	return &imageRepository{db}
}

// Save 插入一条图片关联记录
func (r *imageRepository) Save(image *model.Image) error {
	query := `INSERT INTO images (reference_id, domain_type, full_path, original_name)
              VALUES (?, ?, ?, ?)`
	result, err := r.db.Exec(query, image.ReferenceID, image.DomainType,
		image.FullPath, image.OriginalName)
	if err != nil {
		util.Logger.Error("保存图片记录失败",
			zap.Error(err),
			zap.Int64("reference_id", image.ReferenceID),
			zap.String("domain_type", string(image.DomainType)))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	image.ID = id
	return nil
}

// FindAllByReference 查找实体关联的所有图片，按插入顺序返回
func (r *imageRepository) FindAllByReference(referenceID int64, domainType model.DomainType) ([]*model.Image, error) {
	query := `SELECT id, reference_id, domain_type, full_path, original_name, created_at
              FROM images
              WHERE reference_id = ? AND domain_type = ?
              ORDER BY id ASC`

	rows, err := r.db.Query(query, referenceID, domainType)
	if err != nil {
		util.Logger.Error("查询图片记录失败",
			zap.Error(err),
			zap.Int64("reference_id", referenceID))
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	images := make([]*model.Image, 0)
	for rows.Next() {
		var image model.Image
		err := rows.Scan(
			&image.ID, &image.ReferenceID, &image.DomainType,
			&image.FullPath, &image.OriginalName, &image.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, &image)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate images: %w", err)
	}

	return images, nil
}
