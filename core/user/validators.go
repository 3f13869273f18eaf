package user

import (
	"github.com/educhain/educhain/core"
)

var (
	roleTag  = "userrole"
	roleText = "{0} must be one of student, teacher or admin"
)

// InitValidators registers the user validations on v.
func InitValidators(v *core.Validator) {
	v.RegisterEnum(roleTag, roleText, AllRoles...)
}
