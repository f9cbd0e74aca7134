// Command stackscope summarizes a developer's tech stack and working style
// from their public GitHub, X, Speaker Deck and blog presence.
//
// Usage:
//
//	stackscope analyze --github https://github.com/octocat --blog https://octo.example.com
//	stackscope serve            # MCP server on stdio
//	stackscope http             # HTTP API
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codeGROOVE-dev/stackscope/pkg/analyzer"
	"github.com/codeGROOVE-dev/stackscope/pkg/config"
	"github.com/codeGROOVE-dev/stackscope/pkg/httpcache"
)

var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "stackscope",
		Short:        "Summarize a developer's tech stack and working style",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("debug", false, "enable debug logging")
	root.PersistentFlags().Bool("no-cache", false, "disable the HTTP response cache")

	root.AddCommand(newAnalyzeCmd(), newServeCmd(), newHTTPCmd())
	return root
}

// env is the runtime assembled for every subcommand.
type env struct {
	cfg       config.Config
	logger    *slog.Logger
	svc       *analyzer.Service
	httpCache *httpcache.Cache
}

func (e *env) Close() {
	if err := e.svc.Close(); err != nil {
		e.logger.Warn("failed to close summary cache", "error", err)
	}
	if e.httpCache != nil {
		stats := httpcache.CacheStats()
		e.logger.Debug("HTTP cache stats", "hits", stats.Hits, "misses", stats.Misses)
		if err := e.httpCache.Close(); err != nil {
			e.logger.Warn("failed to close cache", "error", err)
		}
	}
}

// setup loads configuration and builds the analysis service. Logs always
// go to stderr so stdout stays clean for results and the MCP transport.
func setup(ctx context.Context, cmd *cobra.Command, logOut io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug { //nolint:errcheck // flag is registered
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	e := &env{cfg: cfg, logger: logger}
	opts := []analyzer.Option{
		analyzer.WithLogger(logger),
		analyzer.WithGitHubToken(cfg.GitHubToken),
		analyzer.WithTwitterToken(cfg.TwitterToken),
		analyzer.WithCacheLimits(cfg.CacheSize, cfg.CacheTTL),
	}

	noCache, _ := cmd.Flags().GetBool("no-cache") //nolint:errcheck // flag is registered
	switch {
	case noCache:
		logger.Debug("HTTP cache disabled")
	case cfg.HTTPCacheDir != "":
		hc, err := httpcache.NewWithPath(cfg.HTTPCacheTTL, cfg.HTTPCacheDir)
		if err != nil {
			logger.Warn("failed to initialize cache, continuing with memory cache", "error", err)
			hc = httpcache.NewNull(cfg.HTTPCacheTTL)
		} else {
			logger.Debug("HTTP cache initialized", "dir", cfg.HTTPCacheDir, "ttl", cfg.HTTPCacheTTL.String())
		}
		e.httpCache = hc
	default:
		e.httpCache = httpcache.NewNull(cfg.HTTPCacheTTL)
	}
	if e.httpCache != nil {
		opts = append(opts, analyzer.WithHTTPCache(e.httpCache))
	}

	svc, err := analyzer.New(ctx, opts...)
	if err != nil {
		if e.httpCache != nil {
			e.httpCache.Close() //nolint:errcheck,gosec // best effort on failed startup
		}
		return nil, err
	}
	e.svc = svc
	return e, nil
}

const shutdownTimeout = 5 * time.Second
