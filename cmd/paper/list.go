// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper/internal/cache"
	"github.com/pdiddy/paper/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers in the local cache",
	Long: `List prints the catalog of cached papers: filename, ePrint identifier,
and title. Filter by year or by a substring of the title or author names.
Use --format csl for a CSL-YAML bibliography keyed by filename stem.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var pathCmd = &cobra.Command{
	Use:   "path [filename]",
	Short: "Print the cache directory or a cached paper's path",
	Long: `Without arguments, path prints the cache directory. Given a cached
filename (with or without .pdf), it prints the absolute path of that PDF as
recorded in the catalog.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	},
	RunE: runPath,
}

func init() {
	listCmd.Flags().String("format", "text", "output format: text, yaml, json, or csl")
	listCmd.Flags().String("year", "", "only papers from this year")
	listCmd.Flags().String("query", "", "match title or author names")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	cfg, err := fetchConfig()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cfg.CacheDir)
		return nil
	}
	pdfPath, err := cachedPath(context.Background(), cfg.CacheDir, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), pdfPath)
	return nil
}

// cachedPath looks up the cached PDF for filename in the catalog under
// cacheDir.
func cachedPath(ctx context.Context, cacheDir, filename string) (string, error) {
	store, err := cache.Open(cacheDir)
	if err != nil {
		return "", err
	}
	cat, err := catalog.Open(store.DataDir())
	if err != nil {
		return "", err
	}
	defer cat.Close()

	rec, err := cat.Get(ctx, cache.Stem(filename))
	if errors.Is(err, catalog.ErrNotFound) {
		return "", fmt.Errorf("%s is not in the cache (see paper list): %w", filename, err)
	}
	if err != nil {
		return "", err
	}
	return rec.PDFPath, nil
}

func runList(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := catalog.ParseFormat(formatName)
	if err != nil {
		return usageError{err}
	}
	year, _ := cmd.Flags().GetString("year")
	query, _ := cmd.Flags().GetString("query")

	cfg, err := fetchConfig()
	if err != nil {
		return err
	}
	store, err := cache.Open(cfg.CacheDir)
	if err != nil {
		return err
	}
	cat, err := catalog.Open(store.DataDir())
	if err != nil {
		return err
	}
	defer cat.Close()

	records, err := cat.List(context.Background(), catalog.ListOptions{Year: year, Query: query})
	if err != nil {
		return err
	}
	return catalog.Write(cmd.OutOrStdout(), records, format)
}
