package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insightdelivered/assembly-converter/internal/api"
	"github.com/insightdelivered/assembly-converter/internal/config"
	"github.com/insightdelivered/assembly-converter/internal/extractor"
	"github.com/insightdelivered/assembly-converter/internal/logging"
	"github.com/insightdelivered/assembly-converter/internal/models"
	"github.com/insightdelivered/assembly-converter/internal/parser"
	"github.com/insightdelivered/assembly-converter/internal/writer"
)

const version = "1.0.0"

var (
	configPath string
	verbose    bool

	// fetch / convert
	sourceFlag  string
	tableFlag   int
	outputFlag  string
	formatFlag  string
	headerFlag  bool
	verifyFlag  bool
	groupByFlag string
	groupBy     models.ColorChoice

	// serve
	addrFlag string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "assembly-converter",
	Short: "Legislative assembly table to dataset converter",
	Long: `Converts the member table of a legislative assembly Wikipedia article
into a flat list of constituencies tagged with their district, plus the
distinct districts and parties.

District rows in the source table are merged header cells; they are detected
and folded into every constituency row that follows them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format, verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [page ...]",
	Short: "Fetch assembly tables from upstream and convert them",
	Long: `Fetches the configured table of each page (default: the configured page)
and writes one dataset per page.

Examples:
  # Default page, JSON on stdout
  assembly-converter fetch

  # Read the article HTML instead of the JSON API
  assembly-converter fetch --source=wiki 11th_Meghalaya_Assembly

  # Several assemblies, one CSV each
  assembly-converter fetch --format=csv 10th_Meghalaya_Assembly 11th_Meghalaya_Assembly`,
	RunE: runFetch,
}

var convertCmd = &cobra.Command{
	Use:   "convert <table.json> [table2.json ...]",
	Short: "Convert saved wikitable2json responses",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConvert,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and exit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("assembly-converter v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "assembly.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	for _, cmd := range []*cobra.Command{fetchCmd, convertCmd} {
		cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path (stdout for JSON when omitted with a single input)")
		cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: json, csv, xlsx, sqlite (default from config or output extension)")
		cmd.Flags().BoolVar(&headerFlag, "header", true, "Include metadata header rows in CSV")
		cmd.Flags().BoolVar(&verifyFlag, "verify", false, "Print [district, constituency, party] for every record")
		cmd.Flags().StringVar(&groupByFlag, "by", string(models.ByParty), "Summary grouping: Party or District")
	}
	fetchCmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Source: api or wiki (default from config)")
	fetchCmd.Flags().IntVarP(&tableFlag, "table", "t", 0, "1-based table index on the page (default from config)")
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default from config)")

	rootCmd.AddCommand(fetchCmd, convertCmd, serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func fetcherOptions() extractor.Options {
	return extractor.Options{
		APIBaseURL:  cfg.Source.APIBaseURL,
		WikiBaseURL: cfg.Source.WikiBaseURL,
		Timeout:     cfg.GetTimeout(),
		MinInterval: cfg.GetMinInterval(),
		UserAgent:   cfg.Source.UserAgent,
		Logger:      logger,
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	if sourceFlag != "" {
		cfg.Source.Kind = sourceFlag
	}
	if tableFlag != 0 {
		cfg.Source.Table = tableFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := prepareOutput(cmd); err != nil {
		return err
	}

	pages := args
	if len(pages) == 0 {
		pages = []string{cfg.Source.Page}
	}

	f, err := extractor.New(models.Source(cfg.Source.Kind), fetcherOptions())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("fetching",
		zap.String("source", cfg.Source.Kind),
		zap.Strings("pages", pages),
		zap.Int("table", cfg.Source.Table))

	results, err := extractor.FetchAll(ctx, f, pages, cfg.Source.Table, cfg.Source.Concurrency)
	if err != nil {
		return err
	}

	for _, pr := range results {
		a := parser.Reduce(pr.Rows)
		a.Page = pr.Page
		a.Source = f.Source()
		if err := emit(a, pr.Page, len(results)); err != nil {
			return fmt.Errorf("%s: %w", pr.Page, err)
		}
	}
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := prepareOutput(cmd); err != nil {
		return err
	}
	for _, inputPath := range args {
		if ext := strings.ToLower(filepath.Ext(inputPath)); ext != ".json" {
			return fmt.Errorf("expected .json file, got %q", ext)
		}

		rows, err := extractor.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", inputPath, err)
		}
		logger.Debug("read table", zap.String("path", inputPath), zap.Int("rows", len(rows)))

		a := parser.Reduce(rows)
		a.Page = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		a.Source = models.SourceFile

		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		if err := emit(a, base, len(args)); err != nil {
			return fmt.Errorf("error processing %s: %w", inputPath, err)
		}
	}
	return nil
}

// prepareOutput fills output flags the user left unset from the config and
// checks the summary grouping.
func prepareOutput(cmd *cobra.Command) error {
	if outputFlag == "" {
		outputFlag = cfg.Output.Path
	}
	if !cmd.Flags().Changed("header") {
		headerFlag = cfg.Output.Header
	}
	by, err := models.ParseColorChoice(groupByFlag)
	if err != nil {
		return err
	}
	groupBy = by
	return nil
}

// emit writes one dataset and prints its summary. With several inputs, or a
// non-JSON format and no output path, the dataset goes to <base>.<ext>.
func emit(a *models.Assembly, base string, inputs int) error {
	format, err := resolveFormat()
	if err != nil {
		return err
	}

	if a.Ungrouped > 0 {
		logger.Warn("records before the first district header have no district",
			zap.String("page", a.Page), zap.Int("count", a.Ungrouped))
	}
	if a.Unnumbered > 0 {
		logger.Warn("records with a non-numeric sequence label",
			zap.String("page", a.Page), zap.Int("count", a.Unnumbered))
	}

	outPath := outputFlag
	if inputs > 1 || (outPath == "" && format != writer.FormatJSON) {
		outPath = base + format.Extension()
	}

	if outPath == "" {
		if err := (&writer.JSONWriter{}).Write(os.Stdout, a); err != nil {
			return err
		}
		if verifyFlag {
			printVerify(os.Stderr, a)
		}
		return nil
	}

	w, err := writer.New(format, headerFlag)
	if err != nil {
		return err
	}
	if err := w.WriteToFile(outPath, a); err != nil {
		return fmt.Errorf("%s write failed: %w", format, err)
	}
	logger.Info("dataset written", zap.String("path", outPath), zap.String("format", string(format)))

	printSummary(os.Stdout, a, outPath, groupBy)
	if verifyFlag {
		printVerify(os.Stdout, a)
	}
	return nil
}

func resolveFormat() (writer.Format, error) {
	switch {
	case formatFlag != "":
		return writer.ParseFormat(formatFlag)
	case outputFlag != "":
		return writer.FormatFromPath(outputFlag), nil
	default:
		return writer.ParseFormat(cfg.Output.Format)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if addrFlag != "" {
		addr = addrFlag
	}

	opts := fetcherOptions()
	h := &api.Handler{
		Fetchers: map[models.Source]extractor.Fetcher{
			models.SourceAPI:  extractor.NewAPIClient(opts),
			models.SourceWiki: extractor.NewWikiClient(opts),
		},
		DefaultTable: cfg.Source.Table,
		Version:      version,
		Logger:       logger,
	}
	app := h.NewApp(cfg.Server.BodyLimit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		_ = app.Shutdown()
	}()

	logger.Info("listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
