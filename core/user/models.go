package user

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/educhain/educhain/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"

	// DefaultPassword is set on users created without a password. It is weak on purpose:
	// the frontend hands it out to new accounts, who are expected to change it.
	DefaultPassword = "123456"
)

var (
	AllRoles = []string{RoleStudent, RoleTeacher, RoleAdmin}

	// HashCost is the bcrypt cost used to hash passwords.
	HashCost = bcrypt.DefaultCost
)

type User struct {
	ID           string `json:"_id" db:"id"`
	Username     string `json:"username" db:"username" validate:"required"`
	FullName     string `json:"fullName" db:"full_name" validate:"required"`
	Email        string `json:"email" db:"email" validate:"required,email"`
	Role         string `json:"role" db:"role" validate:"required,userrole"`
	PasswordHash []byte `json:"-" db:"password_hash"`
}

// Validate checks the stored representation of a User.
func (u User) Validate(v *core.Validator) error {
	return v.Struct(u)
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), HashCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u User) IsStudent() bool { return u.Role == RoleStudent }

// Summary is the part of a User embedded into the entities that reference it.
type Summary struct {
	ID       string `json:"_id" db:"id"`
	FullName string `json:"fullName" db:"full_name"`
	Email    string `json:"email" db:"email"`
}

func (u User) Summary() Summary {
	return Summary{ID: u.ID, FullName: u.FullName, Email: u.Email}
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username string `json:"username" validate:"required"`
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" validate:"omitempty,userrole"`
}

func (nu *NewUser) Validate(v *core.Validator) error {
	nu.Username = core.CleanString(nu.Username)
	nu.FullName = core.CleanString(nu.FullName)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	return v.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Absent fields keep their stored value.
type UpdateUser struct {
	Username *string `json:"username"`
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Apply returns orig with the provided fields replaced.
func (uu UpdateUser) Apply(orig User) User {
	usr := orig
	if uu.Username != nil {
		usr.Username = core.CleanString(*uu.Username)
	}
	if uu.FullName != nil {
		usr.FullName = core.CleanString(*uu.FullName)
	}
	if uu.Email != nil {
		usr.Email = core.CleanString(*uu.Email, true /* lower */)
	}
	if uu.Role != nil {
		usr.Role = core.CleanString(*uu.Role, true /* lower */)
	}
	return usr
}

type QueryFilter struct {
	Role   string `query:"role"`
	Search string `query:"search"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf == nil || (qf.Role == "" && qf.Search == "")
}

func (qf *QueryFilter) Clean() {
	qf.Role = core.CleanString(qf.Role, true /* lower */)
	qf.Search = core.CleanString(qf.Search)
}
