package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/jtetteh/portfolio-cli/internal/cache"
	"github.com/jtetteh/portfolio-cli/internal/site"
)

func (a *App) serve(ctx context.Context, args []string) error {
	fs := newFlagSet("serve")
	addr := fs.String("addr", a.cfg.Serve.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := cache.New(a.cfg.Cache.Path, a.cfg.Cache.TTL)
	if err != nil {
		return errors.Wrap(err, "failed to open cache")
	}
	defer c.Close()

	srv := &http.Server{
		Addr:    *addr,
		Handler: site.NewServer(a.pc, c, a.log).Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("serving portfolio site", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	terminate := make(chan os.Signal, 1)
	signal.Notify(terminate, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-terminate:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
