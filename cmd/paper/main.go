// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper CLI: fetch an IACR ePrint
// paper, cache it under ~/.local/share/papers, and link it into the current
// directory under a cryptobib-style name.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper/internal/acquire"
	"github.com/pdiddy/paper/internal/cache"
	"github.com/pdiddy/paper/internal/catalog"
	"github.com/pdiddy/paper/internal/viewer"
	"github.com/pdiddy/paper/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "paper/0.1"
)

// usageError marks failures caused by bad arguments rather than I/O.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// rootCmd fetches a paper when given a URL and hosts the other subcommands.
var rootCmd = &cobra.Command{
	Use:   "paper <url> [filename]",
	Short: "Fetch, cache, and link IACR ePrint papers",
	Long: `paper downloads a paper from the IACR Cryptology ePrint Archive, names it
after its authors and year (cryptobib style: Smith23.pdf, SmiJon23.pdf,
BCDE22.pdf), caches it under ~/.local/share/papers, and symlinks it into the
current directory.

Each paper is downloaded at most once; later invocations reuse the cached
copy and refresh its metadata. An explicit filename overrides the derived
name ("notes" becomes notes.pdf).`,
	Example: `  paper https://eprint.iacr.org/2023/1234
  paper https://eprint.iacr.org/2023/1234.pdf lattice-notes
  paper --open https://eprint.iacr.org/2022/007`,
	Args:          fetchArgs,
	RunE:          runFetch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = version
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper.yaml or ~/.config/paper/paper.yaml)")
	rootCmd.PersistentFlags().String("cache-dir", "", "paper cache directory (default ~/.local/share/papers)")
	rootCmd.Flags().Bool("open", false, "open the paper in a PDF viewer after linking")
	rootCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	rootCmd.Flags().String("viewer", "", "PDF viewer: system, zathura, evince, okular, skim, preview")

	viper.BindPFlag("cache_dir", rootCmd.PersistentFlags().Lookup("cache-dir"))
	viper.BindPFlag("open", rootCmd.Flags().Lookup("open"))
	viper.BindPFlag("timeout", rootCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("viewer", rootCmd.Flags().Lookup("viewer"))

	viper.SetDefault("timeout", defaultTimeout)
	viper.SetDefault("user_agent", defaultUserAgent)
	viper.SetDefault("viewer", viewer.System)
	viper.SetDefault("handler", false)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper"))
		}
	}

	viper.SetEnvPrefix("PAPER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// fetchArgs accepts a locator and an optional bare filename.
func fetchArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
		return usageError{err}
	}
	if len(args) == 2 {
		name := args[1]
		if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			return usageError{fmt.Errorf("filename %q must be a plain file name", name)}
		}
	}
	return nil
}

// fetchConfig assembles the fetch settings from flags, environment, and the
// config file. The invocation mode is decided here and nowhere else.
func fetchConfig() (types.FetchConfig, error) {
	cacheDir := viper.GetString("cache_dir")
	if cacheDir == "" {
		root, err := cache.DefaultRoot()
		if err != nil {
			return types.FetchConfig{}, err
		}
		cacheDir = root
	}

	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	mode := types.ModeDirect
	if viper.GetBool("handler") {
		mode = types.ModeHandler
	}

	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString("user_agent"),
		},
		CacheDir: cacheDir,
		Open:     viper.GetBool("open"),
		Viewer:   viper.GetString("viewer"),
		Mode:     mode,
	}, nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := fetchConfig()
	if err != nil {
		return err
	}

	store, err := cache.Open(cfg.CacheDir)
	if err != nil {
		return err
	}

	opts := []acquire.Option{
		acquire.WithOutput(cmd.ErrOrStderr()),
		acquire.WithOpener(viewer.New(cfg.Viewer)),
	}
	if cat, err := catalog.Open(store.DataDir()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: catalog unavailable: %v\n", err)
	} else {
		defer cat.Close()
		opts = append(opts, acquire.WithCatalog(cat))
	}

	client := &http.Client{Timeout: cfg.Timeout}
	fetcher := acquire.New(client, store, cfg, opts...)

	var name string
	if len(args) == 2 {
		name = args[1]
	}
	res, err := fetcher.Fetch(context.Background(), args[0], name)
	if err != nil {
		if acquire.IsUsageError(err) {
			return usageError{err}
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Filename)
	return nil
}

func exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ue) || acquire.IsUsageError(err):
		return ExitUsage
	default:
		return ExitError
	}
}

func main() {
	err := rootCmd.Execute()
	code := exitCode(err)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		if code == ExitUsage {
			fmt.Fprint(os.Stderr, rootCmd.UsageString())
		}
	}
	os.Exit(code)
}
