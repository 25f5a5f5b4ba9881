package ffmpegdemux

import (
	"bytes"
	"fmt"
	"os/exec"
	"time"

	"github.com/user/ffplayer/pkg/ports"
)

// pollInterval is how often a blocked call re-checks its interrupt hook.
const pollInterval = 20 * time.Millisecond

// runInterruptible runs cmd to completion and returns its stdout. The process
// is killed as soon as interrupt reports true.
func runInterruptible(cmd *exec.Cmd, interrupt ports.InterruptFunc) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", cmd.Path, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			if err != nil {
				return nil, fmt.Errorf("%s: %w: %s", cmd.Path, err, bytes.TrimSpace(stderr.Bytes()))
			}
			return stdout.Bytes(), nil
		case <-ticker.C:
			if interrupt != nil && interrupt() {
				cmd.Process.Kill()
				<-done
				return nil, ports.ErrInterrupted
			}
		}
	}
}
