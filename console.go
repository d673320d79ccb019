package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"posadmin/api"
	"posadmin/auth"
	"posadmin/config"
	"posadmin/dashboard"
	"posadmin/models"
	"posadmin/nav"
	"posadmin/store"
)

type stdio struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

type console struct {
	io       stdio
	logger   *log.Logger
	cfg      config.Config
	sessions *store.SessionStore
	client   *api.Client
	auth     *auth.Service
	router   *nav.Router
	closer   io.Closer
}

const usageText = `usage: posadmin [options] <command> [command options]

commands:
  login -u user [-p password]   sign in and store the session
  logout                        forget the stored session
  whoami                        show the stored session
  dashboard [-interval d] [-once]
                                show the live dashboard
  insights                      print the AI summary of today's sales

options:`

// run executes one console command and returns the process exit code.
func run(ctx context.Context, args []string, cfg config.Config, logger *log.Logger, std stdio) int {
	fs := flag.NewFlagSet("posadmin", flag.ContinueOnError)
	fs.SetOutput(std.err)
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "backend API base URL")
	fs.StringVar(&cfg.StoreKind, "store", cfg.StoreKind, "session storage: sqlite, file or memory")
	statePath := fs.String("state", "", "session storage location (default depends on -store)")
	fs.Usage = func() {
		fmt.Fprintln(std.err, usageText)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	switch {
	case *statePath != "":
		cfg.StatePath = *statePath
	case cfg.StatePath == "" || isFlagSet(fs, "store"):
		cfg.StatePath = config.DefaultStatePath(cfg.StoreKind)
	}

	c, err := newConsole(cfg, logger, std)
	if err != nil {
		fmt.Fprintf(std.err, "posadmin: %v\n", err)
		return 1
	}
	defer c.close()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		return c.login(ctx, rest)
	case "logout":
		return c.logout()
	case "whoami":
		return c.whoami()
	case "dashboard":
		return c.dashboard(ctx, rest)
	case "insights":
		return c.insights(ctx)
	}
	fmt.Fprintf(std.err, "posadmin: unknown command %q\n", cmd)
	fs.Usage()
	return 2
}

func newConsole(cfg config.Config, logger *log.Logger, std stdio) (*console, error) {
	kv, closer, err := openKV(cfg.StoreKind, cfg.StatePath)
	if err != nil {
		return nil, err
	}

	logger.Printf("[API Config] Base URL: %s", cfg.APIURL)

	sessions := store.New(kv)
	client := api.New(cfg.APIURL, sessions,
		api.WithLogger(logger),
		api.WithTimeout(cfg.RequestTimeout),
	)
	return &console{
		io:       std,
		logger:   logger,
		cfg:      cfg,
		sessions: sessions,
		client:   client,
		auth:     auth.NewService(client, sessions),
		router:   nav.NewRouter(nav.LoginPath),
		closer:   closer,
	}, nil
}

// openKV opens the session backend of the given kind.
func openKV(kind, path string) (store.KV, io.Closer, error) {
	switch kind {
	case "sqlite":
		db, err := store.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case "file":
		return store.NewFile(path), nil, nil
	case "memory":
		return store.NewMemory(), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", kind)
}

func (c *console) close() {
	if c.closer == nil {
		return
	}
	if err := c.closer.Close(); err != nil {
		c.logger.Printf("Error closing session store: %v", err)
	}
}

func (c *console) login(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(c.io.err)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password (default $POSADMIN_PASSWORD, else read from stdin)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *username == "" {
		fmt.Fprintln(c.io.err, "login: -u is required")
		return 2
	}
	if *password == "" {
		*password = os.Getenv("POSADMIN_PASSWORD")
	}
	if *password == "" {
		fmt.Fprint(c.io.err, "Password: ")
		line, err := bufio.NewReader(c.io.in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(c.io.err, "login: %v\n", err)
			return 1
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	flow := auth.NewLoginFlow(c.auth, c.router, c.logger)
	res, err := flow.Submit(ctx, *username, *password)
	if err != nil {
		fmt.Fprintln(c.io.err, res.Message)
		return 1
	}

	fmt.Fprintf(c.io.out, "Logged in as %s (%s)\n", displayName(res.Session), res.Session.Role)
	fmt.Fprintf(c.io.out, "Landing page: %s\n", res.Destination)
	return 0
}

func (c *console) logout() int {
	if err := c.auth.Logout(); err != nil {
		fmt.Fprintf(c.io.err, "logout: %v\n", err)
		return 1
	}
	fmt.Fprintln(c.io.out, "Logged out")
	return 0
}

func (c *console) whoami() int {
	sess, ok := c.auth.Current()
	if !ok {
		fmt.Fprintln(c.io.out, "not logged in")
		return 1
	}
	fmt.Fprintf(c.io.out, "%s (%s)\n", displayName(sess), sess.Role)
	if sess.ExpiresAt != nil {
		fmt.Fprintf(c.io.out, "session expires %s\n", sess.ExpiresAt.Local().Format(time.RFC1123))
	}
	return 0
}

func (c *console) dashboard(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(c.io.err)
	interval := fs.Duration("interval", c.cfg.PollInterval, "refresh interval")
	once := fs.Bool("once", false, "fetch and render a single frame")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	sess, ok := c.auth.Current()
	if !ok {
		fmt.Fprintln(c.io.err, "Not logged in. Run posadmin login first.")
		return 1
	}
	c.router.Navigate(nav.LandingPath(sess))
	if c.router.Location() != nav.DashboardPath {
		fmt.Fprintln(c.io.err, "The dashboard is only available to administrators.")
		return 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.router.Subscribe(func(path string) {
		if path != nav.DashboardPath {
			cancel()
		}
	})

	renderer := dashboard.NewRenderer(c.io.out)
	poller := dashboard.NewPoller(c.client, c.sessions, dashboard.Options{
		Interval: *interval,
		Logger:   c.logger,
		OnUpdate: func(state dashboard.State, snap *models.DashboardSnapshot) {
			if err := renderer.Frame(state, snap); err != nil {
				c.logger.Printf("Error rendering dashboard: %v", err)
			}
		},
		OnError: func(err error) { c.router.HandleError(err) },
	})

	if *once {
		err := poller.Refresh(ctx)
		return c.dashboardExit(err)
	}
	if err := poller.Run(ctx); err != nil {
		return c.dashboardExit(err)
	}
	return c.dashboardExit(nil)
}

func (c *console) dashboardExit(err error) int {
	if c.router.Location() == nav.LoginPath {
		fmt.Fprintln(c.io.err, "Session expired. Please log in again.")
		return 1
	}
	if err != nil {
		return 1
	}
	return 0
}

func (c *console) insights(ctx context.Context) int {
	in, err := c.client.Insights(ctx)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			fmt.Fprintln(c.io.err, "Session expired. Please log in again.")
			return 1
		}
		fmt.Fprintln(c.io.err, auth.FailureMessage(err))
		return 1
	}

	fmt.Fprintln(c.io.out, in.Summary)
	for _, h := range in.Highlights {
		fmt.Fprintf(c.io.out, "  - %s\n", h)
	}
	return 0
}

func displayName(s *models.Session) string {
	if s.Name != "" {
		return s.Name
	}
	if s.Username != "" {
		return s.Username
	}
	return s.ID
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
