package sqlxrepos

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/educhain/educhain/core/user"
)

const userColumns = "id, username, full_name, email, role, password_hash"

type userRepository struct {
	db executor
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) CheckUsernameUniqueness(ctx context.Context, username string, excludedIDs ...string) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND NOT (id = ANY($2)))",
		username, pq.StringArray(append([]string{}, excludedIDs...)))
	if err != nil {
		return errors.Wrap(err, "checking username uniqueness")
	}
	if exists {
		return user.ErrUsernameExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = newID()
	_, err := repo.db.NamedExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		VALUES (:id, :username, :full_name, :email, :role, :password_hash)`, usr)
	if err != nil {
		return user.User{}, trapUniqueErr(err, user.ErrUsernameExists, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) QueryUsers(ctx context.Context, filter *user.QueryFilter) ([]user.User, error) {
	var (
		conds []string
		args  []interface{}
	)
	if !filter.IsEmpty() {
		if filter.Role != "" {
			args = append(args, filter.Role)
			conds = append(conds, "role = $"+strconv.Itoa(len(args)))
		}
		// users with Username, FullName or Email containing the search keyword
		if filter.Search != "" {
			args = append(args, filter.Search)
			p := "$" + strconv.Itoa(len(args))
			conds = append(conds, "(strpos(lower(username), lower("+p+")) > 0"+
				" OR strpos(lower(full_name), lower("+p+")) > 0"+
				" OR strpos(lower(email), lower("+p+")) > 0)")
		}
	}

	q := "SELECT " + userColumns + " FROM users"
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY username COLLATE "C"`

	users := make([]user.User, 0)
	if err := repo.db.SelectContext(ctx, &users, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return users, nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if !validID(id) {
		return user.User{}, user.ErrNotFound
	}
	var usr user.User
	if err := repo.db.GetContext(ctx, &usr, "SELECT "+userColumns+" FROM users WHERE id = $1", id); err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "finding user by ID")
	}
	return usr, nil
}

func (repo userRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	var usr user.User
	if err := repo.db.GetContext(ctx, &usr, "SELECT "+userColumns+" FROM users WHERE username = $1", username); err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "finding user by username")
	}
	return usr, nil
}

func (repo userRepository) GetUserSummaries(ctx context.Context, ids ...string) (map[string]user.Summary, error) {
	summaries := make(map[string]user.Summary)
	ids = validIDs(ids)
	if len(ids) == 0 {
		return summaries, nil
	}

	var list []user.Summary
	err := repo.db.SelectContext(ctx, &list, "SELECT id, full_name, email FROM users WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, errors.Wrap(err, "querying user summaries")
	}
	for _, sum := range list {
		summaries[sum.ID] = sum
	}
	return summaries, nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.db.NamedExecContext(ctx,
		`UPDATE users SET username = :username, full_name = :full_name, email = :email,
		role = :role, password_hash = :password_hash WHERE id = :id`, usr)
	if err != nil {
		return user.User{}, trapUniqueErr(err, user.ErrUsernameExists, "updating user")
	}
	if err = checkAffected(res, user.ErrNotFound, "updating user"); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo userRepository) DeleteUser(ctx context.Context, id string) error {
	return deleteByID(ctx, repo.db, "users", id, user.ErrNotFound)
}
