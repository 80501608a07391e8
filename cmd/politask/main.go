package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/politask/politask/internal/api"
	"github.com/politask/politask/internal/cli"
	"github.com/politask/politask/internal/service"
	"github.com/politask/politask/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := api.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sessionPath, err := api.SessionPath()
	if err != nil {
		return fmt.Errorf("resolving session path: %w", err)
	}
	session := api.NewSession(sessionPath)

	var observer api.Observer = api.NoopObserver{}
	if cfg.Debug {
		observer = api.NewLogObserver(os.Stderr)
	}

	client := api.NewClient(cfg, session, observer)
	st := store.New(client)

	app := &cli.App{
		Auth:     service.NewAuthService(client),
		Tasks:    service.NewTaskService(client, st),
		Projects: service.NewProjectService(client, st),
		Comments: service.NewCommentService(client, st),
		Search:   service.NewSearchService(client),
		Store:    st,
		Session:  session,
	}

	// Detect interactive terminal for the TUI-only entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
