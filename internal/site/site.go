// Package site serves the public portfolio over HTTP, backed by the API
// client with an on-disk cache between them.
package site

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jtetteh/portfolio-cli/internal/cache"
	"github.com/jtetteh/portfolio-cli/internal/models"
	"github.com/jtetteh/portfolio-cli/internal/portfolio"
)

const listPageSize = 100

type Server struct {
	pc    *portfolio.Client
	cache *cache.Cache
	log   *slog.Logger
}

func NewServer(pc *portfolio.Client, c *cache.Cache, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{pc: pc, cache: c, log: log}
}

func (s *Server) Routes() chi.Router {
	mx := chi.NewRouter()
	mx.Use(requestID, s.logRequests, s.recoverer, countRequests)

	mx.Get("/healthz", s.health)
	mx.Method(http.MethodGet, "/metrics", promhttp.Handler())
	mx.Get("/", s.index)

	mx.Route("/api", func(r chi.Router) {
		r.Get("/profile", s.profile)
		r.Get("/projects", s.projects)
		r.Get("/projects/{id}", s.project)
		r.Get("/experience", s.experience)
		r.Get("/education", s.education)
		r.Get("/skills", s.skills)
		r.Get("/certifications", s.certifications)
	})
	return mx
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	u, err := fetch(r.Context(), s, cache.KeyProfile, func(ctx context.Context) (*models.User, error) {
		return s.pc.Auth.Owner(ctx)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, u)
}

func (s *Server) projects(w http.ResponseWriter, r *http.Request) {
	opts := portfolio.ListOptions{PageSize: listPageSize}
	if r.URL.Query().Get("featured") == "true" {
		respondList(s, w, r, "projects-featured", func(ctx context.Context) ([]models.Project, error) {
			page, err := s.pc.Projects.Featured(ctx)
			if err != nil {
				return nil, err
			}
			return page.Results, nil
		})
		return
	}
	respondList(s, w, r, cache.KeyProjects, func(ctx context.Context) ([]models.Project, error) {
		page, err := s.pc.Projects.List(ctx, opts)
		if err != nil {
			return nil, err
		}
		return page.Results, nil
	})
}

func (s *Server) project(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := fetch(r.Context(), s, "project-"+id, func(ctx context.Context) (*models.ProjectDetail, error) {
		return s.pc.Projects.Get(ctx, id)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondJSON(w, p)
}

func (s *Server) experience(w http.ResponseWriter, r *http.Request) {
	respondList(s, w, r, cache.KeyExperiences, func(ctx context.Context) ([]models.Experience, error) {
		page, err := s.pc.Experiences.List(ctx, portfolio.ListOptions{PageSize: listPageSize})
		if err != nil {
			return nil, err
		}
		return page.Results, nil
	})
}

func (s *Server) education(w http.ResponseWriter, r *http.Request) {
	respondList(s, w, r, cache.KeyEducation, func(ctx context.Context) ([]models.Education, error) {
		page, err := s.pc.Education.List(ctx, portfolio.ListOptions{PageSize: listPageSize})
		if err != nil {
			return nil, err
		}
		return page.Results, nil
	})
}

func (s *Server) skills(w http.ResponseWriter, r *http.Request) {
	respondList(s, w, r, cache.KeySkills, func(ctx context.Context) ([]models.Skill, error) {
		page, err := s.pc.Skills.List(ctx, portfolio.ListOptions{PageSize: listPageSize})
		if err != nil {
			return nil, err
		}
		return page.Results, nil
	})
}

func (s *Server) certifications(w http.ResponseWriter, r *http.Request) {
	respondList(s, w, r, cache.KeyCertifications, func(ctx context.Context) ([]models.Certification, error) {
		page, err := s.pc.Certifications.List(ctx, portfolio.ListOptions{PageSize: listPageSize})
		if err != nil {
			return nil, err
		}
		return page.Results, nil
	})
}

func respondList[T any](s *Server, w http.ResponseWriter, r *http.Request, key string, load func(context.Context) ([]T, error)) {
	items, err := fetch(r.Context(), s, key, load)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	s.respondJSON(w, items)
}

// fetch reads key from the cache and falls back to load on a miss. A stale
// entry is refreshed, but still served if the backend is unreachable.
func fetch[T any](ctx context.Context, s *Server, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	cacheErr := s.cache.Get(key, &cached)
	if cacheErr == nil {
		return cached, nil
	}
	v, err := load(ctx)
	if err != nil {
		if errors.Is(cacheErr, cache.ErrStale) {
			s.log.Warn("serving stale cache entry", "key", key, "error", err)
			return cached, nil
		}
		return v, err
	}
	if putErr := s.cache.Put(key, v); putErr != nil {
		s.log.Error("failed to cache entry", "key", key, "error", putErr)
	}
	return v, nil
}
