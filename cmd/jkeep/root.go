package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/calumari/jkeep"
	"github.com/calumari/jkeep/store"
)

var (
	dbFlag      string
	inputFlag   string
	fieldsFlag  []string
	strictFlag  bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "jkeep",
	Short: "Demonstrate JSON key-order loss and preservation through a JSONB-like column",
	Long: `jkeep stores a JSON document twice: once lowered to a generic value that a
JSONB-like column is free to re-serialize in any member order, and once as
opaque text produced by the order-preserving codec. Reading both back shows
the first path losing the original key order and the second keeping it.`,
	RunE:          runDemo,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&dbFlag, "db", "",
		"SQLite database path (default: $JKEEP_DB, else a file under the temp dir)")
	rootCmd.Flags().StringVar(&inputFlag, "input", "",
		"Path to a JSON file to round-trip (default: built-in movies document)")
	rootCmd.Flags().StringSliceVar(&fieldsFlag, "fields",
		[]string{"title", "genre", "locations"},
		"Declared field order for the re-shaped document")
	rootCmd.Flags().BoolVar(&strictFlag, "strict", false,
		"Fail when a declared field is missing instead of skipping it")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable debug logging")
}

// defaultInput is the demonstration document: field order within each movie
// is deliberately not alphabetical so order loss is visible.
const defaultInput = `{
	"movies": [
		{
			"title": "Inception",
			"genre": "Sci-Fi",
			"locations": ["Cinema City Berlin", "Movieplex Hamburg"]
		},
		{
			"title": "The Grand Budapest Hotel",
			"genre": "Comedy",
			"locations": ["Filmtheater München", "Kino Köln"]
		}
	]
}`

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

// resolveDBPath applies the usual precedence: flag > environment > default.
func resolveDBPath() string {
	if dbFlag != "" {
		return dbFlag
	}
	if env := os.Getenv("JKEEP_DB"); env != "" {
		return env
	}
	return filepath.Join(os.TempDir(), "jkeep.db")
}

func loadInput() (string, error) {
	if inputFlag == "" {
		return defaultInput, nil
	}
	b, err := os.ReadFile(inputFlag)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}

func runDemo(cmd *cobra.Command, _ []string) error {
	logger := newLogger(verboseFlag)
	ctx := cmd.Context()

	input, err := loadInput()
	if err != nil {
		return err
	}

	dbPath := resolveDBPath()
	st, err := store.Open(dbPath, logger)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Reset(ctx); err != nil {
		return err
	}
	logger.Info("store opened", "path", dbPath)

	doc, err := jkeep.Parse([]byte(input))
	if err != nil {
		return err
	}
	logger.Info("parsed input", "keys", strings.Join(doc.Keys(), ","))

	// Regular pass: the generic value goes through the order-erasing column.
	if err := st.Put(ctx, "regular", doc.Generic(), input); err != nil {
		return err
	}

	// Ordered pass: re-shape with the declared field order and store the
	// codec's text output as the raw side channel.
	ordered, err := reshape(doc, fieldsFlag, strictFlag)
	if err != nil {
		return err
	}
	preserved, err := jkeep.Marshal(ordered)
	if err != nil {
		return err
	}
	if err := st.Put(ctx, "ordered", ordered.Generic(), string(preserved)); err != nil {
		return err
	}

	regularGeneric, _, err := st.Get(ctx, "regular")
	if err != nil {
		return err
	}
	_, orderedRaw, err := st.Get(ctx, "ordered")
	if err != nil {
		return err
	}

	// The generic value re-serializes through a map-backed writer, so the
	// member order the reader sees is the medium's, not the input's.
	roundTripped, err := json.MarshalIndent(regularGeneric, "", "  ")
	if err != nil {
		return fmt.Errorf("render retrieved generic value: %w", err)
	}

	fmt.Printf("--- Original JSON ---\n%s\n", input)
	fmt.Printf("\n--- Retrieved generic JSON (order not preserved) ---\n%s\n", roundTripped)
	fmt.Printf("\n--- Retrieved preserved JSON (order preserved) ---\n%s\n", orderedRaw)
	return nil
}

// reshape projects each element of the document's movies array onto the
// declared field order. Documents without a movies array are projected at the
// top level instead.
func reshape(doc jkeep.Document, fields []string, strict bool) (jkeep.Document, error) {
	moviesVal, ok := doc.Get("movies")
	if !ok {
		if strict {
			return doc.PickStrict(fields...)
		}
		return doc.Pick(fields...), nil
	}
	movies, err := jkeep.AsArray(moviesVal)
	if err != nil {
		return nil, err
	}
	out := jkeep.Array{}
	for _, mv := range movies {
		m, err := jkeep.AsDocument(mv)
		if err != nil {
			return nil, err
		}
		var p jkeep.Document
		if strict {
			p, err = m.PickStrict(fields...)
			if err != nil {
				return nil, err
			}
		} else {
			p = m.Pick(fields...)
		}
		out = append(out, p)
	}
	return jkeep.Build(jkeep.Entry{Key: "movies", Value: out}), nil
}
