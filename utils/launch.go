package utils

import (
	"fmt"
	"net"
	"os/exec"
	"runtime"
	"time"
)

const (
	// DefaultPortRetries is how many times WaitForPort probes before
	// giving up.
	DefaultPortRetries = 40
	// DefaultPortInterval is the pause between probes.
	DefaultPortInterval = 250 * time.Millisecond
)

// WaitForPort polls the local TCP port until something is listening or the
// retries run out. Returns true once a connection succeeds.
func WaitForPort(port string, retries int, interval time.Duration) bool {
	addr := net.JoinHostPort("127.0.0.1", port)
	for attempt := 0; attempt < retries; attempt++ {
		conn, err := net.DialTimeout("tcp", addr, interval)
		if err == nil {
			conn.Close()
			return true
		}
		time.Sleep(interval)
	}
	return false
}

// OpenBrowser opens url in the platform's default browser. Used by the
// desktop launch mode so the till opens itself after the server is up.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
