package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eringen/glowblog"
	"github.com/eringen/glowblog/sitemap"
	"github.com/eringen/glowblog/store"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe()
	case "migrate":
		err = runMigrate()
	case "sitemap":
		err = runSitemap()
	case "version":
		fmt.Printf("glowblog %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe() error {
	app := glowblog.New(glowblog.ConfigFromEnv())
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Echo.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runMigrate() error {
	cfg := glowblog.ConfigFromEnv()
	if !store.Configured(cfg.RemoteURL, cfg.RemoteKey) {
		return errors.New("REMOTE_DB_URL and REMOTE_DB_KEY must be set")
	}
	remote, err := store.OpenRemote(cfg.RemoteURL, cfg.RemoteKey)
	if err != nil {
		return err
	}
	defer remote.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := remote.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	fmt.Println("remote posts table is up to date")
	return nil
}

func runSitemap() error {
	app := glowblog.New(glowblog.ConfigFromEnv())
	defer app.Close()
	app.Echo.Logger.SetOutput(os.Stderr)
	if err := app.OpenStores(); err != nil {
		return err
	}
	gen := sitemap.Generator{
		BaseURL: app.Config.URL,
		Source:  app.Repo,
		Logger:  app.Echo.Logger,
	}
	body, err := gen.Generate(context.Background())
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(body)
	return err
}

func printUsage() {
	fmt.Println(`glowblog - a multilingual product-recommendation blog

Usage:
  glowblog [command]

Commands:
  serve      Run the web server (default)
  migrate    Create the posts table in the remote database
  sitemap    Print the sitemap to stdout
  version    Print the glowblog version
  help       Show this help message

Configuration is read from the environment and an optional .env file.`)
}
