package announcement

import (
	"github.com/educhain/educhain/core"
)

var (
	typeTag  = "announcementtype"
	typeText = "{0} must be one of General, Exam, Schedule or Personal"
)

func InitValidators(v *core.Validator) {
	v.RegisterEnum(typeTag, typeText, AllTypes...)
}
