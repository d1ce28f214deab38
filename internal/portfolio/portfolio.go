// Package portfolio holds the typed resource clients: thin request/response
// wrappers over the api core, one per backend collection.
package portfolio

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jtetteh/portfolio-cli/internal/api"
	"github.com/jtetteh/portfolio-cli/internal/models"
)

// Client bundles every resource client over one shared api core.
type Client struct {
	Auth           *Auth
	Projects       *Projects
	Experiences    *Experiences
	Education      *Education
	Skills         *Skills
	Certifications *Certifications
	Users          *Users
}

func NewClient(c *api.Client) *Client {
	return &Client{
		Auth:           &Auth{c: c},
		Projects:       &Projects{c: c},
		Experiences:    &Experiences{c: c},
		Education:      &Education{c: c},
		Skills:         &Skills{c: c},
		Certifications: &Certifications{c: c},
		Users:          &Users{c: c},
	}
}

// ListOptions are the common query parameters of every paginated collection.
type ListOptions struct {
	Page     int
	PageSize int
	Search   string
	Ordering string
	// extra per-resource filters, e.g. featured_only for projects
	Filters url.Values
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(o.PageSize))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Ordering != "" {
		q.Set("ordering", o.Ordering)
	}
	for k, vs := range o.Filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return q
}

func list[T any](ctx context.Context, c *api.Client, base string, opts ListOptions) (*models.Page[T], error) {
	var page models.Page[T]
	if err := c.Get(ctx, base, opts.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func get[T any](ctx context.Context, c *api.Client, base, id string) (*T, error) {
	var out T
	if err := c.Get(ctx, base+id+"/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func create[T any](ctx context.Context, c *api.Client, base string, body any) (*T, error) {
	var out T
	if err := c.Post(ctx, base, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func patch[T any](ctx context.Context, c *api.Client, base, id string, body any) (*T, error) {
	var out T
	if err := c.Patch(ctx, base+id+"/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func del(ctx context.Context, c *api.Client, base, id string) error {
	return c.Delete(ctx, base+id+"/")
}
