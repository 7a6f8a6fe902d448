// Package browser opens external URLs, used for editor documentation links.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"sync"
)

// ErrUnsupported is returned on platforms without a known URL opener.
var ErrUnsupported = errors.New("opening URLs is not supported on this platform")

// Opener opens a URL outside the program.
type Opener interface {
	Open(url string) error
}

// System opens URLs with the platform's default handler.
type System struct{}

// Open starts the platform opener and does not wait for it.
func (System) Open(url string) error {
	name, args, err := command(runtime.GOOS, url)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func command(goos, url string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupported, goos)
	}
}

// Recorder remembers opened URLs instead of opening them.
type Recorder struct {
	mu     sync.Mutex
	opened []string
	Err    error
}

func (r *Recorder) Open(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.opened = append(r.opened, url)
	return nil
}

// Opened returns the URLs passed to Open so far.
func (r *Recorder) Opened() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.opened...)
}
