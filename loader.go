package shaderbg

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LoadError reports a shader source that could not be retrieved.
type LoadError struct {
	Location string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load shader %q: %v", e.Location, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader retrieves shader source text by location.
//
// A location is fetched over HTTP when it is an absolute http(s) URL, or
// when Base is an http(s) URL that it resolves against. Any other location
// is a path inside FS.
type Loader struct {
	FS     fs.FS        // nil reads from the OS file system
	Client *http.Client // defaults to http.DefaultClient
	Base   *url.URL     // optional base for relative locations
}

// Load returns the full text at location.
func (l *Loader) Load(ctx context.Context, location string) (string, error) {
	var (
		text string
		err  error
	)
	if u, ok := l.remote(location); ok {
		text, err = l.fetch(ctx, u)
	} else {
		text, err = l.read(location)
	}
	if err != nil {
		return "", &LoadError{Location: location, Err: err}
	}
	logger.Info("shader source loaded", slog.String("location", location), slog.Int("bytes", len(text)))
	return text, nil
}

// LoadPair loads a vertex and a fragment source. The two requests run
// concurrently; both must succeed.
func (l *Loader) LoadPair(ctx context.Context, vertex, fragment string) (vertSrc, fragSrc string, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vertSrc, err = l.Load(gctx, vertex)
		return err
	})
	g.Go(func() error {
		var err error
		fragSrc, err = l.Load(gctx, fragment)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return vertSrc, fragSrc, nil
}

func (l *Loader) remote(location string) (*url.URL, bool) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, false
	}
	if isHTTP(u) {
		return u, true
	}
	if l.Base != nil && isHTTP(l.Base) {
		return l.Base.ResolveReference(u), true
	}
	return nil, false
}

func isHTTP(u *url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}

func (l *Loader) fetch(ctx context.Context, u *url.URL) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (l *Loader) read(location string) (string, error) {
	var (
		b   []byte
		err error
	)
	if l.FS == nil {
		b, err = os.ReadFile(location)
	} else {
		b, err = fs.ReadFile(l.FS, path.Clean(strings.TrimPrefix(location, "/")))
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}
