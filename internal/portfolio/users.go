package portfolio

import (
	"context"

	"github.com/jtetteh/portfolio-cli/internal/api"
	"github.com/jtetteh/portfolio-cli/internal/models"
)

// Users is the admin-only account management client. The backend enforces
// the role requirement; the CLI additionally refuses these commands early
// via the guard package.
type Users struct {
	c *api.Client
}

const usersBase = "/auth/users/"

func (u *Users) List(ctx context.Context, opts ListOptions) (*models.Page[models.UserListItem], error) {
	return list[models.UserListItem](ctx, u.c, usersBase, opts)
}

func (u *Users) Get(ctx context.Context, id string) (*models.User, error) {
	return get[models.User](ctx, u.c, usersBase, id)
}

func (u *Users) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	return create[models.User](ctx, u.c, usersBase, req)
}

func (u *Users) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	return patch[models.User](ctx, u.c, usersBase, id, req)
}

func (u *Users) Delete(ctx context.Context, id string) error {
	return del(ctx, u.c, usersBase, id)
}

func (u *Users) Stats(ctx context.Context) (*models.UserStats, error) {
	var stats models.UserStats
	if err := u.c.Get(ctx, usersBase+"stats/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
