package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"catalogage/internal/services/googlebooks"
)

const lookupCheckTimeout = 5 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// Pinger is implemented by the Google Books client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckLookup verifies that the metadata service answers. It makes a single
// attempt bounded by a short timeout.
func CheckLookup(ctx context.Context, pinger Pinger) Result {
	const name = "Google Books"

	checkCtx, cancel := context.WithTimeout(ctx, lookupCheckTimeout)
	defer cancel()

	if err := pinger.Ping(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeLookupError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

// newLookupPinger builds a client for a reachability probe.
func newLookupPinger(baseURL string) (Pinger, error) {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		return nil, errors.New("missing base url")
	}
	return googlebooks.New(base, googlebooks.WithTimeout(lookupCheckTimeout))
}

func summarizeLookupError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (service unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (service unreachable)"
	}
	return err.Error()
}
