package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/jockey/internal/app"
	"github.com/llehouerou/jockey/internal/config"
	"github.com/llehouerou/jockey/internal/errmsg"
	"github.com/llehouerou/jockey/internal/icons"
	"github.com/llehouerou/jockey/internal/lastfm"
	"github.com/llehouerou/jockey/internal/logger"
	"github.com/llehouerou/jockey/internal/state"
	"github.com/llehouerou/jockey/internal/stderr"
)

var version = "dev"

const loginTimeout = 5 * time.Minute

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpConfigLoad, err))
		return 1
	}

	lc := cfg.GetLogConfig()
	if err := logger.Init(logger.Config{
		Level:      lc.Level,
		File:       lc.File,
		MaxSize:    lc.MaxSize,
		MaxBackups: lc.MaxBackups,
		MaxAge:     lc.MaxAge,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
	}
	defer logger.Sync()

	icons.Init(cfg.GetUIConfig().Icons)

	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}
	switch cmd {
	case "version":
		fmt.Println("jockey", version)
		return 0
	case "stats":
		err = runStats(args[1:])
	case "login":
		err = runLogin(cfg)
	default:
		err = runPlayer(cfg, args)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runPlayer(cfg *config.Config, paths []string) error {
	// Capture before the audio output opens: ALSA prints while probing.
	capture, err := stderr.Start()
	if err != nil {
		logger.Warnf("[main] stderr capture: %v", err)
	} else {
		defer capture.Stop()
	}

	d, err := app.New(cfg)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	if capture != nil {
		d.Stderr = capture.Lines()
	}

	switch {
	case len(paths) > 0:
		err = d.Enqueue(paths...)
	case d.Service.QueueLen() == 0 && len(cfg.Library.Paths) > 0:
		err = d.Enqueue(cfg.Library.Paths...)
	}
	if err != nil {
		if len(paths) > 0 {
			_ = d.Close()
			return err
		}
		logger.Warnf("[main] library: %s", errmsg.Format(errmsg.OpFileScan, err))
	}

	logger.Infof("[main] starting with %d queued songs", d.Service.QueueLen())

	p := tea.NewProgram(app.NewModel(d), tea.WithAltScreen())
	_, runErr := p.Run()
	closeErr := d.Close()
	if runErr != nil {
		return fmt.Errorf("run: %w", runErr)
	}
	return closeErr
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	limit := fs.Int("n", 20, "number of songs to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := state.Open()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStoreOpen, err))
	}
	defer st.Close()

	top, err := st.TopPlayCounts(*limit)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStoreStats, err))
	}
	if len(top) == 0 {
		fmt.Println("No plays recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYS\tSKIPS\tLAST PLAYED\tSONG")
	for _, pc := range top {
		last := "never"
		if !pc.LastPlayed.IsZero() {
			last = humanize.Time(pc.LastPlayed)
		}
		name := pc.Title
		if pc.Artist != "" {
			name = pc.Artist + " - " + pc.Title
		}
		if name == "" {
			name = pc.Path
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			humanize.Comma(int64(pc.Plays)), humanize.Comma(int64(pc.Skips)), last, name)
	}
	return w.Flush()
}

func runLogin(cfg *config.Config) error {
	if !cfg.HasLastfmConfig() {
		return errors.New("missing credentials: set api_key and api_secret in the [lastfm] config section")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	server, err := lastfm.StartAuthServer()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLastfmAuth, err))
	}
	defer server.Shutdown()

	client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
	token, err := client.GetToken()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLastfmAuth, err))
	}

	url := client.GetAuthURL(token)
	fmt.Println("Authorize jockey in your browser:")
	fmt.Println(url)
	if err := lastfm.OpenBrowser(url); err != nil {
		logger.Warnf("[login] open browser: %v", err)
	}

	got, err := lastfm.WaitForToken(ctx, server.TokenChan(), loginTimeout)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLastfmAuth, err))
	}
	if got == "" {
		return errors.New(errmsg.Format(errmsg.OpLastfmAuth, errors.New("no authorization received")))
	}

	username, sessionKey, err := client.GetSession(got)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLastfmAuth, err))
	}

	st, err := state.Open()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStoreOpen, err))
	}
	defer st.Close()
	if err := st.SaveLastfmSession(username, sessionKey); err != nil {
		return errors.New(errmsg.Format(errmsg.OpLastfmAuth, err))
	}

	fmt.Printf("Linked Last.fm account %s.\n", username)
	return nil
}
