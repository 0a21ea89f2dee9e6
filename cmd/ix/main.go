// Command ix is a thin CLI over the Index Engine and Query Engine: build a
// database from one or more directories, or run a single query against a
// previously built one. Grounded on the teacher's cmd/rovo-bridge/main.go for
// overall shape (flag parsing, signal handling, JSON-on-stdout), generalized
// from stdlib flag to spf13/cobra+pflag for the larger flag surface a
// search/build tool needs (SPEC_FULL.md's ambient stack).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/example/ixsearch/internal/database"
	"github.com/example/ixsearch/internal/ixerr"
	"github.com/example/ixsearch/internal/persist"
	"github.com/example/ixsearch/internal/query"
	"github.com/example/ixsearch/internal/status"
)

var log = logrus.StandardLogger()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ix",
		Short:         "Build and query a filename index",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCmd(), newSearchCmd())
	return root
}

func newBuildCmd() *cobra.Command {
	var (
		dbPath        string
		index         []string
		fastSort      []string
		ignoreHidden  bool
		ignorePattern bool
		parallelism   int
	)

	cmd := &cobra.Command{
		Use:   "build [dirs...]",
		Short: "Walk one or more directories and write a database file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := database.NewBuilder().
				IgnoreHidden(ignoreHidden).
				IgnorePatterns(ignorePattern).
				Parallelism(parallelism)

			for _, dir := range args {
				b.AddDir(dir)
			}
			for _, name := range index {
				kind, err := parseStatusKind(name)
				if err != nil {
					return err
				}
				b.Index(kind)
			}
			for _, name := range fastSort {
				kind, err := parseStatusKind(name)
				if err != nil {
					return err
				}
				b.FastSort(kind)
			}

			log.WithField("dirs", args).Info("building index")
			db, err := b.Build()
			if err != nil {
				return err
			}

			buildID, err := persist.Save(dbPath, db)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"entries":  db.NumEntries(),
				"path":     dbPath,
				"build_id": buildID,
			}).Info("index built")
			return nil
		},
	}

	cmd.Flags().StringVarP(&dbPath, "output", "o", "ix.db", "database file to write")
	cmd.Flags().StringSliceVar(&index, "index", []string{"basename", "path", "extension"}, "attribute columns to index")
	cmd.Flags().StringSliceVar(&fastSort, "fast-sort", []string{"basename"}, "attribute columns to pre-sort")
	cmd.Flags().BoolVar(&ignoreHidden, "ignore-hidden", false, "exclude platform-hidden entries")
	cmd.Flags().BoolVar(&ignorePattern, "ignore-patterns", false, "honor .ixignore/.gitignore files")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "worker pool width (0 = GOMAXPROCS-1)")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var (
		dbPath              string
		caseInsensitive     bool
		regex               bool
		matchPath           bool
		autoMatchPath       bool
		anchoredPath        bool
		sortBy              string
		descending          bool
		sortDirsBeforeFiles bool
		asJSON              bool
	)

	cmd := &cobra.Command{
		Use:   "search <pattern>",
		Short: "Run a single query against a built database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := persist.Load(dbPath)
			if err != nil {
				return err
			}

			kind, err := parseStatusKind(sortBy)
			if err != nil {
				return err
			}
			order := query.Ascending
			if descending {
				order = query.Descending
			}

			q, err := query.NewQueryBuilder(args[0]).
				CaseInsensitive(caseInsensitive).
				Regex(regex).
				MatchPath(matchPath).
				AutoMatchPath(autoMatchPath).
				AnchoredPath(anchoredPath).
				SortBy(kind).
				SortOrder(order).
				SortDirsBeforeFiles(sortDirsBeforeFiles).
				Build()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			notifyAbort(cancel)

			ids, err := db.Search(ctx, q)
			if err != nil {
				return err
			}

			return printResults(db, ids, asJSON)
		},
	}

	cmd.Flags().StringVarP(&dbPath, "database", "d", "ix.db", "database file to read")
	cmd.Flags().BoolVarP(&caseInsensitive, "ignore-case", "i", false, "case-insensitive match")
	cmd.Flags().BoolVar(&regex, "regex", false, "treat the pattern as a regular expression")
	cmd.Flags().BoolVarP(&matchPath, "path", "p", false, "match against the full path, not just the basename")
	cmd.Flags().BoolVar(&autoMatchPath, "auto-path", true, "match against the path when the pattern contains a path separator")
	cmd.Flags().BoolVar(&anchoredPath, "anchored", false, "assert a regex+path pattern is anchored, enabling subtree short-circuiting")
	cmd.Flags().StringVar(&sortBy, "sort-by", "basename", "attribute to sort results by")
	cmd.Flags().BoolVar(&descending, "descending", false, "reverse the sort order")
	cmd.Flags().BoolVar(&sortDirsBeforeFiles, "dirs-first", false, "list directories before files")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as a JSON array")
	return cmd
}

// notifyAbort cancels ctx the moment the process receives an interrupt,
// letting an in-flight search return ixerr.ErrSearchAbort cleanly instead of
// being killed mid-traversal.
func notifyAbort(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
	}()
}

type resultRow struct {
	Path string `json:"path"`
	Dir  bool   `json:"dir"`
}

func printResults(db *database.Database, ids []database.EntryID, asJSON bool) error {
	rows := make([]resultRow, len(ids))
	for i, id := range ids {
		e := db.Entry(id)
		rows[i] = resultRow{Path: e.Path(), Dir: e.IsDir()}
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(rows)
	}
	for _, r := range rows {
		fmt.Println(r.Path)
	}
	return nil
}

func parseStatusKind(name string) (status.Kind, error) {
	for k := status.Kind(0); k < status.NumKinds; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, ixerr.NewInvalidOption("unknown attribute: " + name)
}
