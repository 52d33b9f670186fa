package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/dmitrijs2005/dogbox/internal/client/blob"
	"github.com/dmitrijs2005/dogbox/internal/client/client"
	"github.com/dmitrijs2005/dogbox/internal/client/config"
	"github.com/dmitrijs2005/dogbox/internal/client/models"
	"github.com/dmitrijs2005/dogbox/internal/client/services"
	"github.com/dmitrijs2005/dogbox/internal/client/view"
	"github.com/dmitrijs2005/dogbox/internal/logging"
	"github.com/kballard/go-shellquote"
)

type App struct {
	config *config.Config
	files  services.FileService
	logger logging.Logger
	in     io.Reader

	ping    func(ctx context.Context) error
	closeFn func() error
}

// NewApp connects the registry client and the content store to the file
// services. The gRPC connection is opened lazily.
func NewApp(c *config.Config, l logging.Logger) (*App, error) {
	apiClient, err := client.NewDogBoxClient(c.ServerEndpointAddr, c.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("error creating client: %w", err)
	}

	store := blob.NewStore(apiClient, nil, c.URLCacheTTL)
	files := services.NewFileService(apiClient, store, l, c.RollbackOrphans)

	return &App{
		config:  c,
		files:   files,
		logger:  l,
		in:      os.Stdin,
		ping:    apiClient.Ping,
		closeFn: apiClient.Close,
	}, nil
}

// Run checks the server, loads the file list and serves commands until the
// user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if a.closeFn != nil {
			_ = a.closeFn()
		}
	}()

	if a.ping != nil {
		if err := a.ping(ctx); err != nil {
			a.logger.Warn(ctx, "Server is not reachable", "addr", a.config.ServerEndpointAddr, "error", err.Error())
		}
	}

	unsubscribe := a.files.Subscribe(a.viewChanged())
	defer unsubscribe()

	_ = a.Refresh(ctx)

	printlnFn("Welcome to DogBox (type 'help' for commands)")
	runREPL(ctx, a, bufio.NewScanner(a.in))
	return nil
}

// viewChanged returns a listener that prints a line whenever names enter or
// leave the view, e.g. "Files: 3 (+a.txt, -b.txt)". Notifications arrive one
// at a time, so prev needs no lock.
func (a *App) viewChanged() view.Listener {
	prev := entryNames(a.files.Files())
	return func(entries []models.FileEntry) {
		next := entryNames(entries)
		if line := changeLine(prev, next); line != "" {
			printlnFn(line)
		}
		prev = next
	}
}

func entryNames(entries []models.FileEntry) map[string]struct{} {
	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		names[e.Name] = struct{}{}
	}
	return names
}

// changeLine describes the difference between two sets of names. Names are
// quoted the way the REPL reads them back.
func changeLine(prev, next map[string]struct{}) string {
	var added, removed []string
	for n := range next {
		if _, ok := prev[n]; !ok {
			added = append(added, n)
		}
	}
	for n := range prev {
		if _, ok := next[n]; !ok {
			removed = append(removed, n)
		}
	}
	if len(added) == 0 && len(removed) == 0 {
		return ""
	}
	slices.Sort(added)
	slices.Sort(removed)

	parts := make([]string, 0, len(added)+len(removed))
	for _, n := range added {
		parts = append(parts, "+"+shellquote.Join(n))
	}
	for _, n := range removed {
		parts = append(parts, "-"+shellquote.Join(n))
	}
	return fmt.Sprintf("Files: %d (%s)", len(next), strings.Join(parts, ", "))
}
