package member

import (
	"strconv"

	"github.com/Kim-Changgyu/ShoeKream/internal/errors"
	"github.com/Kim-Changgyu/ShoeKream/internal/model"
	"github.com/Kim-Changgyu/ShoeKream/internal/service"
	"github.com/Kim-Changgyu/ShoeKream/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	memberService service.MemberServiceInterface
}

func NewProfileHandler(memberService service.MemberServiceInterface) *ProfileHandler {
	return &ProfileHandler{memberService}
}

// GetMember 获取会员资料，公开接口
func (h *ProfileHandler) GetMember(c *gin.Context) {
	memberID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的会员ID", err))
		return
	}

	view, err := h.memberService.Get(memberID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, view, "")
}

// UpdateMember 更新会员资料，multipart表单，仅本人可操作。
// 认证身份由中间件写入上下文，在此显式传给服务层
func (h *ProfileHandler) UpdateMember(c *gin.Context) {
	memberID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的会员ID", err))
		return
	}

	authenticatedID := c.GetInt64("member_id")

	update := &model.MemberUpdate{
		Name:     c.PostForm("name"),
		Phone:    c.PostForm("phone"),
		Password: c.PostForm("password"),
	}

	if update.Phone != "" && !util.IsValidPhone(update.Phone) {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的手机号格式"))
		return
	}
	if update.Password != "" && !isPasswordStrong(update.Password) {
		errors.HandleError(c, errors.New(errors.ErrWeakPassword, "密码强度不足"))
		return
	}

	// 图片为可选项
	imageFile, err := c.FormFile("imageFile")
	if err != nil {
		imageFile = nil
	}

	view, err := h.memberService.Update(authenticatedID, memberID, update, imageFile)
	if err != nil {
		util.Logger.Error("更新会员资料失败", zap.Error(err), zap.Int64("member_id", memberID))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, view, "资料更新成功")
}
