// Package main provides the entry point for the lexio CLI application.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lexio-app/lexio/internal/audio"
	"github.com/lexio-app/lexio/internal/cache"
	"github.com/lexio-app/lexio/internal/config"
	"github.com/lexio-app/lexio/internal/session"
	"github.com/lexio-app/lexio/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	loop       bool
	rate       float64
	autoPlay   bool
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "lexio [FILE]",
		Short: "Read text in the terminal, word by word",
		Long: paragraph(
			fmt.Sprintf("\nPlay text aloud in the terminal with the %s word highlighted as it is spoken.", keyword("current")),
		),
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.MaximumNArgs(1),
		RunE:          execute,
	}
)

// readSource reads the text to play: a file path argument, "-", or piped
// stdin.
func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		stat, err := os.Stdin.Stat()
		if err != nil {
			return "", fmt.Errorf("unable to stat stdin: %w", err)
		}
		if len(args) == 0 && stat.Mode()&os.ModeCharDevice != 0 && stat.Size() == 0 {
			return "", errors.New("missing text source: pass a file or pipe text on stdin")
		}
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("unable to read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("unable to open file: %w", err)
	}
	return string(b), nil
}

// splitItems cuts the source text into queue items at blank lines. The first
// line of each paragraph doubles as its title.
func splitItems(text string) []session.Item {
	var items []session.Item
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		title, _, _ := strings.Cut(block, "\n")
		if len(title) > 60 {
			title = title[:57] + "…"
		}
		items = append(items, session.NewItem(title, block))
	}
	return items
}

func execute(_ *cobra.Command, args []string) error {
	text, err := readSource(args)
	if err != nil {
		return err
	}

	items := splitItems(text)
	if len(items) == 0 {
		return errors.New("nothing to play: the source contains no text")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if viper.IsSet("loop") {
		cfg.Loop = viper.GetBool("loop")
	}
	if viper.IsSet("rate") {
		cfg.Rate = viper.GetFloat64("rate")
	}
	if viper.IsSet("auto_play") {
		cfg.AutoPlay = viper.GetBool("auto_play")
	}

	sess, err := buildSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.SetQueue(items)
	if _, err := sess.SetRate(cfg.Rate); err != nil {
		return err
	}

	uiCfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}
	uiCfg.HighlightColor = cfg.UI.HighlightColor
	uiCfg.ShowStatus = cfg.UI.ShowStatus

	if _, err := ui.NewProgram(uiCfg, sess).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

// buildSession assembles the playback session. When no audio device is
// available the clock falls back to a simulated player, so the word tracking
// still runs.
func buildSession(cfg config.Config) (*session.Session, error) {
	provider := &session.EstimatorProvider{
		SampleRate:     cfg.SampleRate,
		WordsPerMinute: float64(cfg.Estimator.WordsPerMinute),
	}

	var player session.Player
	devicePlayer, err := audio.NewPlayer(audio.PlayerConfig{
		SampleRate: cfg.SampleRate,
		Channels:   1,
		BitDepth:   16,
		BufferSize: 4096,
	})
	if err != nil {
		log.Warn("no audio device, using simulated clock", "err", err)
		player = audio.NewRealtimeMockPlayer()
	} else {
		if err := devicePlayer.SetVolume(cfg.Volume); err != nil {
			return nil, err
		}
		player = devicePlayer
	}

	return session.New(session.Config{
		Provider: provider,
		Player:   player,
		Cache:    cache.NewMemoryCache(cfg.Cache.MaxBytes),
		Loop:     cfg.Loop,
		AutoPlay: cfg.AutoPlay,
	})
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug logs to the log file")
	rootCmd.Flags().BoolVarP(&loop, "loop", "L", false, "wrap to the first item at the end of the queue")
	rootCmd.Flags().Float64VarP(&rate, "rate", "r", 1.0, "playback rate multiplier (0.5–2.0)")
	rootCmd.Flags().BoolVarP(&autoPlay, "auto-play", "a", true, "start playback immediately")

	_ = viper.BindPFlag("loop", rootCmd.Flags().Lookup("loop"))
	_ = viper.BindPFlag("rate", rootCmd.Flags().Lookup("rate"))
	_ = viper.BindPFlag("auto_play", rootCmd.Flags().Lookup("auto-play"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	config.SetDefaults()

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "lexio")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find the configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "lexio")}, dirs...)
	}

	if c := os.Getenv("LEXIO_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("lexio")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("lexio")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	configFile = filepath.Join(dirs[0], "lexio.yml")
}
