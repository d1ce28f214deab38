package cli

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/jtetteh/portfolio-cli/internal/guard"
	"github.com/jtetteh/portfolio-cli/internal/models"
	"github.com/jtetteh/portfolio-cli/internal/portfolio"
)

// resourceOps adapts one resource client to the shared list/get/create/
// update/delete command shape.
type resourceOps struct {
	list   func(ctx context.Context, opts portfolio.ListOptions) (any, error)
	get    func(ctx context.Context, id string) (any, error)
	create func(ctx context.Context, file string) (any, error)
	update func(ctx context.Context, id, file string) (any, error)
	del    func(ctx context.Context, id string) error
}

func (a *App) resource(ctx context.Context, name string, args []string, ops resourceOps) error {
	sub, rest := subcommand(args, "list")
	switch sub {
	case "list":
		fs := newFlagSet(name + " list")
		page := fs.Int("page", 0, "page number")
		pageSize := fs.Int("page-size", 0, "items per page")
		search := fs.String("search", "", "search query")
		ordering := fs.String("ordering", "", "ordering field")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		out, err := ops.list(ctx, portfolio.ListOptions{
			Page:     *page,
			PageSize: *pageSize,
			Search:   *search,
			Ordering: *ordering,
		})
		if err != nil {
			return err
		}
		return a.printJSON(out)
	case "get":
		if len(rest) != 1 {
			return errors.Errorf("usage: %s get <id>", name)
		}
		out, err := ops.get(ctx, rest[0])
		if err != nil {
			return err
		}
		return a.printJSON(out)
	case "create":
		fs := newFlagSet(name + " create")
		file := fs.String("file", "", "json file, - for stdin")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		out, err := ops.create(ctx, *file)
		if err != nil {
			return err
		}
		return a.printJSON(out)
	case "update":
		fs := newFlagSet(name + " update")
		file := fs.String("file", "", "json file, - for stdin")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.Errorf("usage: %s update <id> --file <json>", name)
		}
		out, err := ops.update(ctx, fs.Arg(0), *file)
		if err != nil {
			return err
		}
		return a.printJSON(out)
	case "delete":
		if len(rest) != 1 {
			return errors.Errorf("usage: %s delete <id>", name)
		}
		if err := ops.del(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "deleted")
		return nil
	default:
		return errors.Errorf("unknown %s subcommand %q", name, sub)
	}
}

func (a *App) projects(ctx context.Context, args []string) error {
	return a.resource(ctx, "projects", args, resourceOps{
		list: func(ctx context.Context, opts portfolio.ListOptions) (any, error) {
			return a.pc.Projects.List(ctx, opts)
		},
		get: func(ctx context.Context, id string) (any, error) {
			return a.pc.Projects.Get(ctx, id)
		},
		create: func(ctx context.Context, file string) (any, error) {
			var req models.ProjectRequest
			if err := readInto(file, &req); err != nil {
				return nil, err
			}
			return a.pc.Projects.Create(ctx, req)
		},
		update: func(ctx context.Context, id, file string) (any, error) {
			var req models.ProjectRequest
			if err := readInto(file, &req); err != nil {
				return nil, err
			}
			return a.pc.Projects.Update(ctx, id, req)
		},
		del: a.pc.Projects.Delete,
	})
}

func (a *App) experience(ctx context.Context, args []string) error {
	return a.resource(ctx, "experience", args, resourceOps{
		list: func(ctx context.Context, opts portfolio.ListOptions) (any, error) {
			return a.pc.Experiences.List(ctx, opts)
		},
		get: func(ctx context.Context, id string) (any, error) {
			return a.pc.Experiences.Get(ctx, id)
		},
		create: func(ctx context.Context, file string) (any, error) {
			req, err := readRaw(file)
			if err != nil {
				return nil, err
			}
			return a.pc.Experiences.Create(ctx, req)
		},
		update: func(ctx context.Context, id, file string) (any, error) {
			req, err := readRaw(file)
			if err != nil {
				return nil, err
			}
			return a.pc.Experiences.Update(ctx, id, req)
		},
		del: a.pc.Experiences.Delete,
	})
}

func (a *App) education(ctx context.Context, args []string) error {
	return a.resource(ctx, "education", args, resourceOps{
		list: func(ctx context.Context, opts portfolio.ListOptions) (any, error) {
			return a.pc.Education.List(ctx, opts)
		},
		get: func(ctx context.Context, id string) (any, error) {
			return a.pc.Education.Get(ctx, id)
		},
		create: func(ctx context.Context, file string) (any, error) {
			req, err := readRaw(file)
			if err != nil {
				return nil, err
			}
			return a.pc.Education.Create(ctx, req)
		},
		update: func(ctx context.Context, id, file string) (any, error) {
			req, err := readRaw(file)
			if err != nil {
				return nil, err
			}
			return a.pc.Education.Update(ctx, id, req)
		},
		del: a.pc.Education.Delete,
	})
}

func (a *App) skills(ctx context.Context, args []string) error {
	return a.resource(ctx, "skills", args, resourceOps{
		list: func(ctx context.Context, opts portfolio.ListOptions) (any, error) {
			return a.pc.Skills.List(ctx, opts)
		},
		get: func(ctx context.Context, id string) (any, error) {
			return a.pc.Skills.Get(ctx, id)
		},
		create: func(ctx context.Context, file string) (any, error) {
			req, err := readRaw(file)
			if err != nil {
				return nil, err
			}
			return a.pc.Skills.Create(ctx, req)
		},
		update: func(ctx context.Context, id, file string) (any, error) {
			req, err := readRaw(file)
			if err != nil {
				return nil, err
			}
			return a.pc.Skills.Update(ctx, id, req)
		},
		del: a.pc.Skills.Delete,
	})
}

func (a *App) certifications(ctx context.Context, args []string) error {
	return a.resource(ctx, "certifications", args, resourceOps{
		list: func(ctx context.Context, opts portfolio.ListOptions) (any, error) {
			return a.pc.Certifications.List(ctx, opts)
		},
		get: func(ctx context.Context, id string) (any, error) {
			return a.pc.Certifications.Get(ctx, id)
		},
		create: func(ctx context.Context, file string) (any, error) {
			req, err := readRaw(file)
			if err != nil {
				return nil, err
			}
			return a.pc.Certifications.Create(ctx, req)
		},
		update: func(ctx context.Context, id, file string) (any, error) {
			req, err := readRaw(file)
			if err != nil {
				return nil, err
			}
			return a.pc.Certifications.Update(ctx, id, req)
		},
		del: a.pc.Certifications.Delete,
	})
}

// users is admin-only; the backend enforces this, the guard check just
// gives a clearer message than a 403.
func (a *App) users(ctx context.Context, args []string) error {
	a.sess.Initialize(ctx)
	switch guard.RequireRole(a.sess, models.RoleSuperAdmin) {
	case guard.RedirectLogin:
		return errors.New("not logged in")
	case guard.Deny:
		return errors.New("user management requires the super_admin role")
	}

	sub, rest := subcommand(args, "list")
	if sub == "stats" {
		stats, err := a.pc.Users.Stats(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(stats)
	}
	return a.resource(ctx, "users", append([]string{sub}, rest...), resourceOps{
		list: func(ctx context.Context, opts portfolio.ListOptions) (any, error) {
			return a.pc.Users.List(ctx, opts)
		},
		get: func(ctx context.Context, id string) (any, error) {
			return a.pc.Users.Get(ctx, id)
		},
		create: func(ctx context.Context, file string) (any, error) {
			var req models.CreateUserRequest
			if err := readInto(file, &req); err != nil {
				return nil, err
			}
			return a.pc.Users.Create(ctx, req)
		},
		update: func(ctx context.Context, id, file string) (any, error) {
			var req models.UpdateUserRequest
			if err := readInto(file, &req); err != nil {
				return nil, err
			}
			return a.pc.Users.Update(ctx, id, req)
		},
		del: a.pc.Users.Delete,
	})
}

// readRaw decodes the input file into a generic map for the resources whose
// clients accept any body.
func readRaw(file string) (map[string]any, error) {
	req := map[string]any{}
	if err := readInto(file, &req); err != nil {
		return nil, err
	}
	return req, nil
}
