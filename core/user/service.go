package user

import (
	"context"

	"github.com/pkg/errors"

	"github.com/educhain/educhain/core"
)

var (
	// errors
	ErrNotFound           = core.NewNotFoundError("User not found")
	ErrUsernameExists     = errors.New("a user with this username already exists")
	ErrInvalidCredentials = errors.New("Invalid username or password")
)

type (
	Repository interface {
		CheckUsernameUniqueness(ctx context.Context, username string, excludedIDs ...string) error
		CreateUser(ctx context.Context, usr User) (User, error)
		// QueryUsers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of User.Username, User.FullName or User.Email.
		QueryUsers(ctx context.Context, filter *QueryFilter) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByUsername(ctx context.Context, username string) (User, error)
		// GetUserSummaries returns the summaries of the users that exist among ids, keyed by id.
		GetUserSummaries(ctx context.Context, ids ...string) (map[string]Summary, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteUser(ctx context.Context, id string) error
	}

	Service interface {
		Create(ctx context.Context, nu NewUser) (User, error)
		Query(ctx context.Context, filter *QueryFilter) ([]User, error)
		GetByID(ctx context.Context, id string) (User, error)
		Update(ctx context.Context, id string, uu UpdateUser) (User, error)
		Delete(ctx context.Context, id string) error
		Authenticate(ctx context.Context, username, pwd string) (User, error)
	}

	service struct {
		repo     Repository
		validate *core.Validator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, validate *core.Validator) Service {
	InitValidators(validate)
	return &service{repo: repo, validate: validate}
}

func (svc *service) checkUniqueness(ctx context.Context, uname string, exclIDs ...string) error {
	if err := svc.repo.CheckUsernameUniqueness(ctx, uname, exclIDs...); err != nil {
		return trapUniquenessErr(err)
	}
	return nil
}

// trapUniquenessErr turns a username collision into a validation error on that field.
func trapUniquenessErr(err error) error {
	if errors.Cause(err) == ErrUsernameExists {
		return core.NewValidationError(ErrUsernameExists, core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
	}
	return err
}

func (svc *service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(svc.validate); err != nil {
		return User{}, err
	}
	if err := svc.checkUniqueness(ctx, nu.Username); err != nil {
		return User{}, err
	}

	usr := User{
		Username: nu.Username,
		FullName: nu.FullName,
		Email:    nu.Email,
		Role:     nu.Role,
	}
	if usr.Role == "" {
		usr.Role = RoleStudent
	}
	pwd := nu.Password
	if pwd == "" {
		pwd = DefaultPassword
	}
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, trapUniquenessErr(err)
	}
	return usr, nil
}

func (svc *service) Query(ctx context.Context, filter *QueryFilter) ([]User, error) {
	if filter != nil {
		filter.Clean()
	}
	return svc.repo.QueryUsers(ctx, filter)
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, core.CleanString(id))
}

func (svc *service) Update(ctx context.Context, id string, uu UpdateUser) (User, error) {
	orig, err := svc.repo.GetUserByID(ctx, core.CleanString(id))
	if err != nil {
		return User{}, err
	}

	usr := uu.Apply(orig)
	if err = usr.Validate(svc.validate); err != nil {
		return User{}, err
	}
	if usr.Username != orig.Username {
		if err = svc.checkUniqueness(ctx, usr.Username, usr.ID); err != nil {
			return User{}, err
		}
	}
	if uu.Password != nil && *uu.Password != "" {
		if err = usr.SetPassword(*uu.Password); err != nil {
			return User{}, errors.Wrap(err, "hashing password")
		}
	}

	usr, err = svc.repo.UpdateUser(ctx, usr)
	if err != nil {
		return User{}, trapUniquenessErr(err)
	}
	return usr, nil
}

func (svc *service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteUser(ctx, core.CleanString(id))
}

// Authenticate finds the user by username and checks their password.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (svc *service) Authenticate(ctx context.Context, username, pwd string) (User, error) {
	usr, err := svc.repo.GetUserByUsername(ctx, core.CleanString(username))
	if err != nil {
		if core.IsNotFound(err) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by username")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

// PopulateOne resolves id against summaries; a dangling reference yields nil.
func PopulateOne(summaries map[string]Summary, id string) *Summary {
	if id == "" {
		return nil
	}
	if sum, ok := summaries[id]; ok {
		return &sum
	}
	return nil
}

// PopulateMany resolves ids against summaries, dropping dangling references.
func PopulateMany(summaries map[string]Summary, ids []string) []Summary {
	pop := make([]Summary, 0, len(ids))
	for _, id := range ids {
		if sum, ok := summaries[id]; ok {
			pop = append(pop, sum)
		}
	}
	return pop
}
