package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/ffplayer/pkg/adapters/smartdemux"
	"github.com/user/ffplayer/pkg/ports"
	"github.com/user/ffplayer/pkg/session"
)

func runProbe(c *cli.Context) error {
	url, err := sourceURL(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := newLogger(cfg, c.Bool("quiet"))
	env, shutdown := newEnvironment(cfg, log)
	defer shutdown()

	opened := make(chan struct{})
	var once sync.Once
	listener := session.ListenerFuncs{
		Opened: func() { once.Do(func() { close(opened) }) },
	}

	// A probe never retries; the first failure is the answer.
	opts := append(cfg.ToSessionOptions(), session.WithAutoReconnect(false))
	player := session.New(env.demuxer, env.decoders, listener, log, opts...)
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player.Open(url)
	select {
	case <-opened:
	case <-player.Done():
		return cli.Exit(l10n.F("Could not open %s (%s)", url, player.Stats().LastExit), 1)
	case <-ctx.Done():
		return cli.Exit(l10n.T("Interrupted, shutting down..."), 130)
	case <-time.After(time.Duration(cfg.OpenTimeoutMs) * time.Millisecond):
		return cli.Exit(l10n.F("Could not open %s (%s)", url, session.ExitStall), 1)
	}

	fmt.Println(l10n.F("URL: %s", url))
	fmt.Println(l10n.F("Backend: %s", smartdemux.Select(url)))
	fmt.Println(l10n.F("Frame size: %dx%d", player.FrameWidth(), player.FrameHeight()))
	fmt.Println(l10n.F("Frame rate: %.2f fps", player.FrameRate()))
	if d := player.Duration(); d >= ports.UnboundedDuration {
		fmt.Println(l10n.T("Duration: live"))
	} else {
		fmt.Println(l10n.F("Duration: %.3f s", d))
	}
	return nil
}
