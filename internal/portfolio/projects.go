package portfolio

import (
	"context"
	"net/url"

	"github.com/jtetteh/portfolio-cli/internal/api"
	"github.com/jtetteh/portfolio-cli/internal/models"
)

const projectsBase = "/projects/"

type Projects struct {
	c *api.Client
}

func (p *Projects) List(ctx context.Context, opts ListOptions) (*models.Page[models.Project], error) {
	return list[models.Project](ctx, p.c, projectsBase, opts)
}

// Featured lists only the projects flagged for the landing page.
func (p *Projects) Featured(ctx context.Context) (*models.Page[models.Project], error) {
	opts := ListOptions{Filters: url.Values{"featured_only": {"true"}}}
	return list[models.Project](ctx, p.c, projectsBase, opts)
}

func (p *Projects) Get(ctx context.Context, id string) (*models.ProjectDetail, error) {
	return get[models.ProjectDetail](ctx, p.c, projectsBase, id)
}

func (p *Projects) Create(ctx context.Context, req models.ProjectRequest) (*models.ProjectDetail, error) {
	return create[models.ProjectDetail](ctx, p.c, projectsBase, req)
}

func (p *Projects) Update(ctx context.Context, id string, req models.ProjectRequest) (*models.ProjectDetail, error) {
	return patch[models.ProjectDetail](ctx, p.c, projectsBase, id, req)
}

func (p *Projects) Delete(ctx context.Context, id string) error {
	return del(ctx, p.c, projectsBase, id)
}
