package exam

import (
	"github.com/educhain/educhain/core"
)

var (
	formatTag  = "examformat"
	formatText = "{0} must be one of Trắc nghiệm, Tự luận, Vấn đáp or Đồ án"
)

func InitValidators(v *core.Validator) {
	v.RegisterEnum(formatTag, formatText, AllFormats...)
}
