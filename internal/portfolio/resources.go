package portfolio

import (
	"context"

	"github.com/jtetteh/portfolio-cli/internal/api"
	"github.com/jtetteh/portfolio-cli/internal/models"
)

type Experiences struct {
	c *api.Client
}

const experiencesBase = "/experiences/"

func (e *Experiences) List(ctx context.Context, opts ListOptions) (*models.Page[models.Experience], error) {
	return list[models.Experience](ctx, e.c, experiencesBase, opts)
}

func (e *Experiences) Get(ctx context.Context, id string) (*models.Experience, error) {
	return get[models.Experience](ctx, e.c, experiencesBase, id)
}

func (e *Experiences) Create(ctx context.Context, req any) (*models.Experience, error) {
	return create[models.Experience](ctx, e.c, experiencesBase, req)
}

func (e *Experiences) Update(ctx context.Context, id string, req any) (*models.Experience, error) {
	return patch[models.Experience](ctx, e.c, experiencesBase, id, req)
}

func (e *Experiences) Delete(ctx context.Context, id string) error {
	return del(ctx, e.c, experiencesBase, id)
}

type Education struct {
	c *api.Client
}

const educationBase = "/education/"

func (e *Education) List(ctx context.Context, opts ListOptions) (*models.Page[models.Education], error) {
	return list[models.Education](ctx, e.c, educationBase, opts)
}

func (e *Education) Get(ctx context.Context, id string) (*models.Education, error) {
	return get[models.Education](ctx, e.c, educationBase, id)
}

func (e *Education) Create(ctx context.Context, req any) (*models.Education, error) {
	return create[models.Education](ctx, e.c, educationBase, req)
}

func (e *Education) Update(ctx context.Context, id string, req any) (*models.Education, error) {
	return patch[models.Education](ctx, e.c, educationBase, id, req)
}

func (e *Education) Delete(ctx context.Context, id string) error {
	return del(ctx, e.c, educationBase, id)
}

type Skills struct {
	c *api.Client
}

const skillsBase = "/skills/"

func (s *Skills) List(ctx context.Context, opts ListOptions) (*models.Page[models.Skill], error) {
	return list[models.Skill](ctx, s.c, skillsBase, opts)
}

func (s *Skills) Get(ctx context.Context, id string) (*models.Skill, error) {
	return get[models.Skill](ctx, s.c, skillsBase, id)
}

func (s *Skills) Create(ctx context.Context, req any) (*models.Skill, error) {
	return create[models.Skill](ctx, s.c, skillsBase, req)
}

func (s *Skills) Update(ctx context.Context, id string, req any) (*models.Skill, error) {
	return patch[models.Skill](ctx, s.c, skillsBase, id, req)
}

func (s *Skills) Delete(ctx context.Context, id string) error {
	return del(ctx, s.c, skillsBase, id)
}

type Certifications struct {
	c *api.Client
}

const certificationsBase = "/certifications/"

func (c *Certifications) List(ctx context.Context, opts ListOptions) (*models.Page[models.Certification], error) {
	return list[models.Certification](ctx, c.c, certificationsBase, opts)
}

func (c *Certifications) Get(ctx context.Context, id string) (*models.Certification, error) {
	return get[models.Certification](ctx, c.c, certificationsBase, id)
}

func (c *Certifications) Create(ctx context.Context, req any) (*models.Certification, error) {
	return create[models.Certification](ctx, c.c, certificationsBase, req)
}

func (c *Certifications) Update(ctx context.Context, id string, req any) (*models.Certification, error) {
	return patch[models.Certification](ctx, c.c, certificationsBase, id, req)
}

func (c *Certifications) Delete(ctx context.Context, id string) error {
	return del(ctx, c.c, certificationsBase, id)
}
