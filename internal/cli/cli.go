// Package cli implements the portfolioctl command set.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/jtetteh/portfolio-cli/internal/api"
	"github.com/jtetteh/portfolio-cli/internal/config"
	"github.com/jtetteh/portfolio-cli/internal/portfolio"
	"github.com/jtetteh/portfolio-cli/internal/session"
	"github.com/jtetteh/portfolio-cli/internal/tokenstore"
)

const usage = `usage: portfolioctl [--config path] <command> [args]

auth:
  login --email <email> [--password <pw>] [--mfa-token <code>]
  register --email <email> [--password <pw>] --first-name <n> --last-name <n>
  logout
  whoami
  profile [show | update --file <json>]
  password [change | reset --email <email> | reset-confirm --token <t>]
  mfa [setup | verify --token <code> | disable --token <code>]
  verify-email --token <t>
  resend-verification --email <email>

content:
  projects | experience | education | skills | certifications
    list [--page n] [--search s] [--ordering f]
    get <id>
    create --file <json>
    update <id> --file <json>
    delete <id>

admin:
  users [list | get <id> | create --file <json> | update <id> --file <json> | delete <id> | stats]

site:
  serve [--addr :8080]
`

type App struct {
	cfg   *config.Config
	store *tokenstore.Store
	pc    *portfolio.Client
	sess  *session.Controller
	log   *slog.Logger
	out   io.Writer
}

func Run(args []string) error {
	global := flag.NewFlagSet("portfolioctl", flag.ContinueOnError)
	global.SetInterspersed(false)
	cfgPath := global.String("config", "", "path to the config file")
	verbose := global.BoolP("verbose", "v", false, "debug logging")
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("no command given")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	} else if cfg.Log.Level == "debug" {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	app, err := newApp(cfg, log, os.Stdout)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.dispatch(context.Background(), rest[0], rest[1:])
}

func newApp(cfg *config.Config, log *slog.Logger, out io.Writer) (*App, error) {
	store := tokenstore.New(cfg.Store.Path, cfg.Store.Secret)
	app := &App{cfg: cfg, store: store, log: log, out: out}

	client := api.New(cfg.API.BaseURL, store, api.Options{
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		Logger:            log,
		OnSessionExpired:  func() { app.sessionExpired() },
	})
	app.pc = portfolio.NewClient(client)
	app.sess = session.New(app.pc.Auth, store, log)

	// another process may refresh or clear the store while we run
	if err := store.Watch(func() {
		if !store.IsAuthenticated() {
			app.sess.HandleSessionExpired()
		}
	}); err != nil {
		log.Debug("token store watch unavailable", "error", err)
	}
	return app, nil
}

func (a *App) Close() {
	a.store.Close()
}

func (a *App) sessionExpired() {
	if a.sess != nil {
		a.sess.HandleSessionExpired()
	}
	fmt.Fprintln(os.Stderr, "session expired, please log in again")
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		return a.logout(args)
	case "whoami":
		return a.whoami(ctx, args)
	case "profile":
		return a.profile(ctx, args)
	case "password":
		return a.password(ctx, args)
	case "mfa":
		return a.mfa(ctx, args)
	case "verify-email":
		return a.verifyEmail(ctx, args)
	case "resend-verification":
		return a.resendVerification(ctx, args)
	case "projects":
		return a.projects(ctx, args)
	case "experience":
		return a.experience(ctx, args)
	case "education":
		return a.education(ctx, args)
	case "skills":
		return a.skills(ctx, args)
	case "certifications":
		return a.certifications(ctx, args)
	case "users":
		return a.users(ctx, args)
	case "serve":
		return a.serve(ctx, args)
	case "help", "--help", "-h":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return errors.Errorf("unknown command %q", cmd)
	}
}

// printJSON writes v to the output indented, the way the backend returns it.
func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readInto fills req from a json file, "-" meaning stdin.
func readInto(path string, req any) error {
	if path == "" {
		return errors.New("--file is required")
	}
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(req); err != nil {
		return errors.Wrap(err, "failed to decode input")
	}
	return nil
}

func subcommand(args []string, def string) (string, []string) {
	if len(args) == 0 {
		return def, nil
	}
	if strings.HasPrefix(args[0], "-") {
		return def, args
	}
	return args[0], args[1:]
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return fs
}
