package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"emoji-gallery/internal/api/dto"
	"emoji-gallery/internal/config"
	"emoji-gallery/internal/files"
	"emoji-gallery/internal/logger"
	"emoji-gallery/internal/platform/paths"
)

type options struct {
	configPath string
	emojiDir   string
	listen     string
	debug      bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "emoji-gallery",
		Short: "Serve a directory of emoji images over HTTP",
		Long: `emoji-gallery indexes every image under the emoji directory and serves
the index at /api/emojis and the images themselves at /api/image.

The emoji directory comes from --emoji-dir, the EMOJI_DIR environment
variable (a .env file in the working directory is honoured) or the
emojiDir key of the YAML config file, in that order of precedence.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.emojiDir, "emoji-dir", "", "Directory to index (overrides EMOJI_DIR)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.listen, "listen", "", "host:port to listen on (serve only)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Print the grouped emoji index as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with defaults and the given flags",
		Long: `init writes a YAML config file to --config, or to the per-user config
location when --config is not given. --emoji-dir, --listen and --debug are
stored in the file. An existing file is left alone unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(serveCmd, scanCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, fmt.Errorf("load .env: %w", err)
	}

	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadOrDefault("")
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg = config.ApplyEnv(cfg, os.LookupEnv)
	if opts.emojiDir != "" {
		cfg.EmojiDir = opts.emojiDir
	}
	if opts.listen != "" {
		cfg.APIListen = opts.listen
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = opts.debug
	}
	return cfg.WithDefaults(), nil
}

func runServe(cmd *cobra.Command, opts options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	app := &serverApp{cfg: cfg}
	if err := app.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-app.Errors():
		app.Stop(context.Background())
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case sig := <-sigCh:
		app.logSvc.Info(fmt.Sprintf("shutdown signal: %s", sig))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		app.Stop(ctx)
		if err := <-app.Errors(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	}
}

func runScan(cmd *cobra.Command, opts options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log := logger.NewStderr()
	if cfg.Debug {
		log = logger.NewWriter(os.Stderr, true)
	}

	root, err := files.NewRoot(cfg.EmojiDir)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	entries, err := files.NewRootScanner(root, log).Scan(ctx)
	if err != nil {
		return err
	}

	idx := files.Group(entries)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.ListEmojisResponse{
		Emojis:        entries,
		GroupedEmojis: idx,
	}); err != nil {
		return err
	}

	log.Success(scanSummary(idx))
	return nil
}

func scanSummary(idx files.GroupedIndex) string {
	var total uint64
	for _, key := range idx.Keys {
		for _, e := range idx.Groups[key] {
			total += uint64(e.Size)
		}
	}
	return fmt.Sprintf("%d images in %d groups, %s", idx.Len(), len(idx.Keys), humanize.Bytes(total))
}

func runInit(cmd *cobra.Command, opts options, force bool) error {
	p := opts.configPath
	if p == "" {
		var err error
		p, err = paths.UserConfigFilePath()
		if err != nil {
			return fmt.Errorf("config path: %w", err)
		}
	}

	cfg := config.Default()
	if opts.emojiDir != "" {
		cfg.EmojiDir = opts.emojiDir
	}
	if opts.listen != "" {
		cfg.APIListen = opts.listen
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = opts.debug
	}

	if err := config.Save(p, cfg, force); err != nil {
		if errors.Is(err, config.ErrExists) {
			return fmt.Errorf("%w (use --force to replace it)", err)
		}
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
	return nil
}
