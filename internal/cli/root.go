package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/robiweb74/makupovalni-seznam/internal/config"
	"github.com/robiweb74/makupovalni-seznam/internal/format"
	"github.com/robiweb74/makupovalni-seznam/internal/model"
	"github.com/robiweb74/makupovalni-seznam/internal/mutate"
	"github.com/robiweb74/makupovalni-seznam/internal/store"
	"github.com/robiweb74/makupovalni-seznam/internal/suggest"
	"github.com/robiweb74/makupovalni-seznam/internal/telegram"
	"github.com/robiweb74/makupovalni-seznam/internal/tui"
)

// ListSender delivers a shared list somewhere outside the terminal.
type ListSender interface {
	SendList(ctx context.Context, l model.ShoppingList, link string) error
}

type App struct {
	Dir        string
	ConfigPath string
	PrettyJSON bool
	Format     string

	cfg    config.Config
	cfgSet bool

	// Collaborators, replaceable in tests.
	newSuggester  func(ctx context.Context, cfg config.Config) (*suggest.Service, error)
	newSender     func(cfg config.Config) (ListSender, error)
	copyClipboard func(string) error
	runTUI        func(ctx context.Context, opts tui.Options) error
}

func defaultApp() *App {
	return &App{
		newSuggester:  suggest.New,
		newSender:     newTelegramSender,
		copyClipboard: clipboard.WriteAll,
		runTUI:        tui.Run,
	}
}

func newTelegramSender(cfg config.Config) (ListSender, error) {
	return telegram.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultApp())
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "seznam",
		Short:        "Local-first shopping lists (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  seznam

  # Scriptable commands
  seznam lists new "Teden"
  seznam items add teden mleko kruh

  # Import a shared list (shortcut for: seznam import <link>)
  seznam 'https://seznam.app/#share=eyJuYW1lIjoi...'
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return startTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.loadConfig()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("SEZNAM_DIR", ""), "Path to the data dir (overrides storage.dir)")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/seznam/config.toml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SEZNAM_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newSuggestCmd(app))
	cmd.AddCommand(newShareCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) loadConfig() error {
	if app.cfgSet {
		return nil
	}
	path := strings.TrimSpace(app.ConfigPath)
	if path == "" {
		path = os.Getenv("SEZNAM_CONFIG")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(app.Dir) != "" {
		cfg.Storage.Dir = app.Dir
	}
	app.cfg = cfg
	app.cfgSet = true
	return nil
}

func (app *App) store() store.Store {
	return store.Store{Dir: app.cfg.Storage.Dir}
}

func (app *App) engine() *mutate.Engine {
	return mutate.NewEngine(app.cfg.UI.Uppercase)
}

func loadSnapshot(cmd *cobra.Command, app *App) (*model.Snapshot, store.Store, error) {
	s := app.store()
	snap, err := s.Load(cmd.Context())
	if err != nil {
		return nil, s, fmt.Errorf("load lists: %w", err)
	}
	return snap, s, nil
}

// suggester never fails: a provider that cannot be built is logged and the
// disabled service is returned.
func (app *App) suggester(ctx context.Context) *suggest.Service {
	svc, err := app.newSuggester(ctx, app.cfg)
	if err != nil {
		pslog.Ctx(ctx).Warn("suggestions disabled", "err", err)
	}
	if svc == nil {
		svc = &suggest.Service{Provider: suggest.None{}}
	}
	return svc
}

func resolveList(snap *model.Snapshot, ref string) (*model.ShoppingList, error) {
	l, ok := snap.ResolveList(ref)
	if !ok {
		return nil, errNotFound("list", ref)
	}
	return l, nil
}

// resolveItem matches an item id first, then its text ignoring case.
func resolveItem(l *model.ShoppingList, ref string) (*model.ListItem, error) {
	if it, ok := l.FindItem(ref); ok {
		return it, nil
	}
	want := strings.TrimSpace(ref)
	for i := range l.Items {
		if strings.EqualFold(strings.TrimSpace(l.Items[i].Text), want) {
			return &l.Items[i], nil
		}
	}
	return nil, errNotFound("item", ref)
}

func startTUI(cmd *cobra.Command, app *App) error {
	ctx, closeLog := withTUILog(cmd.Context(), app.cfg.LogPath())
	defer closeLog()
	snap, s, err := loadSnapshot(cmd, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	svc := app.suggester(ctx)
	defer svc.Close()
	opts := tui.Options{
		Store:          s,
		Snapshot:       snap,
		Engine:         app.engine(),
		Suggest:        svc,
		ShareBaseURL:   app.cfg.Share.BaseURL,
		Glyphs:         app.cfg.UI.Glyphs,
		AutoCategorize: app.cfg.LLM.AutoCategorize,
		CopyClipboard:  app.copyClipboard,
	}
	if sender, err := app.newSender(app.cfg); err == nil {
		opts.SendList = sender.SendList
	} else if !errors.Is(err, telegram.ErrNotConfigured) {
		pslog.Ctx(ctx).Warn("telegram sharing disabled", "err", err)
	}
	return app.runTUI(ctx, opts)
}

// withTUILog routes logging to the log file while the TUI owns the terminal.
// Without a usable file, log output is dropped.
func withTUILog(ctx context.Context, path string) (context.Context, func()) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				w = f
				closeFn = func() { _ = f.Close() }
			}
		}
	}
	logger := pslog.NewWithOptions(w, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.InfoLevel,
	})
	return pslog.ContextWithLogger(ctx, logger), closeFn
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
