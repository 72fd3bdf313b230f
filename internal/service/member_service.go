package service

import (
	"database/sql"
	stderrors "errors"
	"mime/multipart"
	"time"

	"github.com/Kim-Changgyu/ShoeKream/internal/errors"
	"github.com/Kim-Changgyu/ShoeKream/internal/model"
	"github.com/Kim-Changgyu/ShoeKream/internal/repository/interfaces"
	"github.com/Kim-Changgyu/ShoeKream/internal/storage"
	"github.com/Kim-Changgyu/ShoeKream/internal/util"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// MemberService 处理与会员相关的业务逻辑
type MemberService struct {
	memberRepo interfaces.MemberRepository
	imageRepo  interfaces.ImageRepository
	storage    storage.ObjectStorage
	auth       AuthServiceInterface
	db         *sql.DB
}

// NewMemberService 创建一个新的 MemberService 实例
func NewMemberService(
	memberRepo interfaces.MemberRepository,
	imageRepo interfaces.ImageRepository,
	objectStorage storage.ObjectStorage,
	auth AuthServiceInterface,
	db *sql.DB,
) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		imageRepo:  imageRepo,
		storage:    objectStorage,
		auth:       auth,
		db:         db,
	}
}

// Register 注册新会员
func (s *MemberService) Register(member *model.Member) error {
	existing, err := s.memberRepo.FindByEmail(member.Email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询会员失败", err)
	}
	if existing != nil {
		return errors.New(errors.ErrMemberExists, "email already exists")
	}

	hashed, err := s.auth.HashPassword(member.PasswordHash)
	if err != nil {
		return err
	}
	member.PasswordHash = hashed

	if member.Authority == "" {
		member.Authority = model.RoleUser
	}

	if err := s.memberRepo.Create(member); err != nil {
		// 并发注册时唯一键冲突可能绕过上面的查重，同样按邮箱已存在处理
		var mysqlErr *mysql.MySQLError
		if stderrors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return errors.New(errors.ErrMemberExists, "email already exists")
		}
		return errors.Wrap(errors.ErrDatabase, "创建会员失败", err)
	}

	util.Logger.Info("会员注册成功", zap.Int64("member_id", member.ID))
	return nil
}

// Login 会员登录，返回签名令牌
func (s *MemberService) Login(email, password string) (string, *model.Member, error) {
	member, err := s.auth.Authenticate(email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.auth.IssueToken(member.ID, member.Authority)
	if err != nil {
		return "", nil, err
	}

	util.Logger.Info("会员登录成功", zap.Int64("member_id", member.ID))
	return token, member, nil
}

// Get 获取会员资料，包含按插入顺序排列的图片路径
func (s *MemberService) Get(memberID int64) (*model.MemberView, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询会员失败", err)
	}
	if member == nil {
		return nil, errors.New(errors.ErrMemberNotFound, "member not found")
	}

	images, err := s.imageRepo.FindAllByReference(memberID, model.DomainTypeMember)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询会员图片失败", err)
	}

	paths := make([]string, 0, len(images))
	for _, image := range images {
		paths = append(paths, image.FullPath)
	}

	return memberView(member, paths), nil
}

// Update 更新会员资料。图片先上传到对象存储（不在事务内），
// 之后会员行更新与图片关联行替换在同一事务中提交；事务失败时
// 已上传的对象成为孤儿，可接受，不做清理
func (s *MemberService) Update(authenticatedID, memberID int64, update *model.MemberUpdate, imageFile *multipart.FileHeader) (*model.MemberView, error) {
	if authenticatedID != memberID {
		util.Logger.Warn("拒绝修改他人资料",
			zap.Int64("authenticated_id", authenticatedID),
			zap.Int64("member_id", memberID))
		return nil, errors.New(errors.ErrForbidden, "cannot update another member")
	}

	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询会员失败", err)
	}
	if member == nil {
		return nil, errors.New(errors.ErrMemberNotFound, "member not found")
	}

	// 只更新允许修改的字段
	if update.Name != "" {
		member.Name = update.Name
	}
	if update.Phone != "" {
		member.Phone = update.Phone
	}
	if update.Password != "" {
		hashed, err := s.auth.HashPassword(update.Password)
		if err != nil {
			return nil, err
		}
		member.PasswordHash = hashed
	}

	var newImage *model.Image
	if imageFile != nil {
		key := util.GenerateObjectKey(memberID, imageFile.Filename)
		if err := s.storage.Store(imageFile, key); err != nil {
			util.Logger.Error("上传图片失败", zap.Error(err), zap.String("key", key))
			return nil, errors.Wrap(errors.ErrStorage, "上传图片失败", err)
		}
		newImage = &model.Image{
			ReferenceID:  memberID,
			DomainType:   model.DomainTypeMember,
			FullPath:     s.storage.ResolveURL(key),
			OriginalName: imageFile.Filename,
		}
	}

	// 开始事务
	tx, err := s.db.Begin()
	if err != nil {
		util.Logger.Error("开始事务失败", zap.Error(err))
		return nil, errors.Wrap(errors.ErrDatabase, "开始事务失败", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE members
		SET name = ?, phone = ?, password_hash = ?, updated_at = ?
		WHERE id = ?`,
		member.Name, member.Phone, member.PasswordHash, time.Now(), member.ID)
	if err != nil {
		util.Logger.Error("更新会员失败", zap.Error(err), zap.Int64("member_id", memberID))
		return nil, errors.Wrap(errors.ErrDatabase, "更新会员失败", err)
	}

	if newImage != nil {
		// 新图替换旧图，保证第一张始终是最新头像
		_, err = tx.Exec(`DELETE FROM images WHERE reference_id = ? AND domain_type = ?`,
			newImage.ReferenceID, newImage.DomainType)
		if err != nil {
			util.Logger.Error("删除旧图片记录失败", zap.Error(err), zap.Int64("member_id", memberID))
			return nil, errors.Wrap(errors.ErrDatabase, "删除旧图片记录失败", err)
		}

		result, err := tx.Exec(`INSERT INTO images (reference_id, domain_type, full_path, original_name)
			VALUES (?, ?, ?, ?)`,
			newImage.ReferenceID, newImage.DomainType, newImage.FullPath, newImage.OriginalName)
		if err != nil {
			util.Logger.Error("保存图片记录失败", zap.Error(err), zap.Int64("member_id", memberID))
			return nil, errors.Wrap(errors.ErrDatabase, "保存图片记录失败", err)
		}
		if id, err := result.LastInsertId(); err == nil {
			newImage.ID = id
		}
	}

	if err := tx.Commit(); err != nil {
		util.Logger.Error("提交事务失败", zap.Error(err), zap.Int64("member_id", memberID))
		return nil, errors.Wrap(errors.ErrDatabase, "提交事务失败", err)
	}

	var paths []string
	if newImage != nil {
		paths = []string{newImage.FullPath}
	} else {
		images, err := s.imageRepo.FindAllByReference(memberID, model.DomainTypeMember)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "查询会员图片失败", err)
		}
		paths = make([]string, 0, len(images))
		for _, image := range images {
			paths = append(paths, image.FullPath)
		}
	}

	util.Logger.Info("会员资料更新成功", zap.Int64("member_id", memberID))
	return memberView(member, paths), nil
}

func memberView(member *model.Member, imagePaths []string) *model.MemberView {
	return &model.MemberView{
		ID:         member.ID,
		Name:       member.Name,
		Email:      member.Email,
		Phone:      member.Phone,
		IsMale:     member.IsMale,
		Authority:  member.Authority,
		ImagePaths: imagePaths,
	}
}

type MemberServiceInterface interface {
	Register(member *model.Member) error
	Login(email, password string) (string, *model.Member, error)
	Get(memberID int64) (*model.MemberView, error)
	Update(authenticatedID, memberID int64, update *model.MemberUpdate, imageFile *multipart.FileHeader) (*model.MemberView, error)
}

// 确保 MemberService 实现了 MemberServiceInterface
var _ MemberServiceInterface = (*MemberService)(nil)
