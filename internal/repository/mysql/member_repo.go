package mysql

import (
	"database/sql"
	"time"

	"github.com/Kim-Changgyu/ShoeKream/internal/model"
	"github.com/Kim-Changgyu/ShoeKream/internal/util"
	"go.uber.org/zap"
)

// memberRepository 实现了 MemberRepository 接口
type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository 创建一个新的 memberRepository 实例
func NewMemberRepository(db *sql.DB) *memberRepository {
	return &memberRepository{db}
}

// Create 创建一个新会员
func (r *memberRepository) Create(member *model.Member) error {
	if member.Authority == "" {
		member.Authority = model.RoleUser // 设置默认权限
	}

	query := `INSERT INTO members (name, email, password_hash, phone, is_male, authority)
              VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query, member.Name, member.Email, member.PasswordHash,
		member.Phone, member.IsMale, member.Authority)
	if err != nil {
		util.Logger.Error("创建会员失败", zap.Error(err), zap.String("email", member.Email))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新会员ID失败", zap.Error(err))
		return err
	}
	member.ID = id
	util.Logger.Info("会员创建成功", zap.Int64("member_id", member.ID))
	return nil
}

// FindByID 通过ID查找会员
func (r *memberRepository) FindByID(id int64) (*model.Member, error) {
	query := `SELECT id, name, email, password_hash, phone, is_male, authority, created_at, updated_at
              FROM members WHERE id = ?`
	var member model.Member
	err := r.db.QueryRow(query, id).Scan(
		&member.ID, &member.Name, &member.Email, &member.PasswordHash, &member.Phone,
		&member.IsMale, &member.Authority, &member.CreatedAt, &member.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		util.Logger.Error("查找会员失败", zap.Error(err), zap.Int64("member_id", id))
		return nil, err
	}
	return &member, nil
}

// FindByEmail 通过邮箱查找会员
func (r *memberRepository) FindByEmail(email string) (*model.Member, error) {
	query := `SELECT id, name, email, password_hash, phone, is_male, authority, created_at, updated_at
              FROM members WHERE email = ?`
	var member model.Member
	err := r.db.QueryRow(query, email).Scan(
		&member.ID, &member.Name, &member.Email, &member.PasswordHash, &member.Phone,
		&member.IsMale, &member.Authority, &member.CreatedAt, &member.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		util.Logger.Error("查找会员失败", zap.Error(err), zap.String("email", email))
		return nil, err
	}
	return &member, nil
}

// Update 更新会员信息
func (r *memberRepository) Update(member *model.Member) error {
	_, err := r.db.Exec(`
		UPDATE members
		SET name = ?, phone = ?, password_hash = ?, updated_at = ?
		WHERE id = ?`,
		member.Name, member.Phone, member.PasswordHash, time.Now(), member.ID)
	return err
}

// Delete 删除会员（仅测试清理使用）
func (r *memberRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除会员失败", zap.Error(err), zap.Int64("member_id", id))
	}
	return err
}
