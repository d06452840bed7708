package sqlxrepos

import (
	"context"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core/user"
)

const userColumns = `id, name, email, role, password_hash, created_at`

type userRepository struct {
	db core.DBClient
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db core.DBClient) *userRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) QueryAll(ctx context.Context) ([]user.User, error) {
	users := make([]user.User, 0)
	err := repo.db.Select(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY name`)
	return users, err
}

func (repo *userRepository) GetByID(ctx context.Context, id int) (user.User, error) {
	var usr user.User
	err := get(ctx, repo.db, user.ErrNotFound, &usr, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return usr, err
}

func (repo *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	err := get(ctx, repo.db, user.ErrNotFound, &usr, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return usr, err
}

func (repo *userRepository) Create(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.db.Insert(
		ctx,
		`INSERT INTO users (name, email, role, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		usr.Name, usr.Email, usr.Role, usr.PasswordHash, usr.CreatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	usr.ID = int(res.InsertID)
	return usr, nil
}

func (repo *userRepository) Update(ctx context.Context, usr user.User) (user.User, error) {
	res, err := repo.db.Exec(
		ctx,
		`UPDATE users SET name = ?, role = ?, password_hash = ? WHERE id = ?`,
		usr.Name, usr.Role, usr.PasswordHash, usr.ID,
	)
	if err != nil {
		return user.User{}, err
	}
	if res.RowsAffected == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}
