package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wedge762/deckpress/internal/config"
	"github.com/wedge762/deckpress/internal/deck"
	"github.com/wedge762/deckpress/internal/imagestore"
	"github.com/wedge762/deckpress/internal/page"
	"github.com/wedge762/deckpress/internal/pipeline"
	"github.com/wedge762/deckpress/internal/prompt"
	"github.com/wedge762/deckpress/internal/source"
	"github.com/wedge762/deckpress/internal/source/gatherer"
	"github.com/wedge762/deckpress/internal/source/magiccards"
	"github.com/wedge762/deckpress/internal/source/scryfall"
)

var (
	cfgFile   string
	prefix    string
	cacheDir  string
	format    string
	mergePath string
	keep      bool
	overwrite bool
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "deckpress <deck_file>",
	Short: "Compile a deck list into printable proxy pages",
	Long: `Deckpress reads a deck list, fetches an image for every card through a
chain of sources (Scryfall, magiccards.info, Gatherer), caches the images
locally, and tiles them into 3x3 pages ready for printing. Pages can
optionally be merged into a single PDF.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompile(cmd.Context(), args[0])
	},
}

// Execute runs the CLI. Note that two concurrent invocations sharing one
// cache directory can race on cache checks and writes; that is unsupported.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "path to config file")
	rootCmd.Flags().StringVar(&prefix, "prefix", "", "page file prefix (default: a generated unique token)")
	rootCmd.Flags().StringVar(&cacheDir, "cache", filepath.Join(os.TempDir(), "deckpress-cache"), "card image cache directory")
	rootCmd.Flags().StringVar(&format, "format", "png", "page image format")
	rootCmd.Flags().StringVar(&mergePath, "merge", "", "merge pages into a PDF at this path (.pdf appended if missing)")
	rootCmd.Flags().BoolVar(&keep, "keep", false, "keep intermediate page images after merging")
	rootCmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite existing files without asking")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "INFO", "log level (CRITICAL or INFO)")
}

func runCompile(ctx context.Context, deckPath string) error {
	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	d, err := deck.Parse(deckPath)
	if err != nil {
		return err
	}
	logger.Info("deck loaded", "cards", d.Size(), "unique", len(d.Entries()))

	var policy prompt.Policy = prompt.Terminal{}
	if overwrite {
		policy = prompt.AllowAll{}
	}

	store, err := imagestore.New(cacheDir, policy)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Store:  store,
		Client: source.NewClient(cfg.UserAgent, cfg.RequestsPerS),
		Resolvers: []source.Resolver{
			scryfall.New(),
			magiccards.New(),
			gatherer.New(),
		},
		Log:        logger,
		CardWidth:  cfg.CardWidth,
		CardHeight: cfg.CardHeight,
	}
	res, err := p.Run(ctx, d)
	if err != nil {
		return err
	}
	logger.Info("fetch complete", "cached", res.Hits, "downloaded", res.Fetched, "failed", res.Failed)

	paths := cardPaths(d, store, logger)
	if len(paths) == 0 {
		return fmt.Errorf("no card images available for %s", deckPath)
	}

	if prefix == "" {
		prefix = uuid.NewString()
	}
	var written []string
	for i, pg := range page.Chunk(paths, page.PageSize) {
		out := fmt.Sprintf("%s%d.%s", prefix, i, format)
		if err := page.Montage(pg, cfg.CardWidth, cfg.CardHeight, cfg.Gutter, out, policy); err != nil {
			return err
		}
		logger.Info("page written", "path", out, "cards", len(pg))
		written = append(written, out)
	}

	if mergePath != "" {
		out, err := page.MergePDF(written, mergePath, policy)
		if err != nil {
			return err
		}
		logger.Info("pages merged", "path", out)
		if !keep {
			for _, w := range written {
				if err := os.Remove(w); err != nil {
					logger.Error("remove page image", "path", w, "error", err)
				}
			}
		}
	}
	return nil
}

// cardPaths expands the deck into one cache path per physical copy, in deck
// order. Cards that never got an image are left off the pages with a
// warning rather than failing the montage.
func cardPaths(d *deck.Deck, store *imagestore.Store, logger *slog.Logger) []string {
	paths := make([]string, 0, d.Size())
	for _, e := range d.Entries() {
		if !store.Exists(e.Name) {
			logger.Warn("no image for card, leaving it off the pages", "card", e.Name)
			continue
		}
		for i := 0; i < e.Count; i++ {
			paths = append(paths, store.Path(e.Name))
		}
	}
	return paths
}

func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	switch strings.ToUpper(level) {
	case "INFO":
		l = slog.LevelInfo
	case "CRITICAL":
		l = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q (want CRITICAL or INFO)", level)
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	return slog.New(h), nil
}
