package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/dogbox/internal/client/client"
	"github.com/dmitrijs2005/dogbox/internal/client/services"
	"github.com/dmitrijs2005/dogbox/internal/common"
	"github.com/dmitrijs2005/dogbox/internal/filex"
	"github.com/dmitrijs2005/dogbox/internal/sizefmt"
)

// List prints the current view; it does not contact the server.
func (a *App) List(ctx context.Context) error {
	printlnFn(renderCards(a.files.Files()))
	return nil
}

// Refresh reloads the view from the registry.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.files.Refresh(ctx); err != nil {
		a.report(ctx, "refresh", "", err)
		return err
	}
	printlnFn(fmt.Sprintf("%d file(s)", len(a.files.Files())))
	return nil
}

// Upload uploads the file at path under its base name.
func (a *App) Upload(ctx context.Context, path string) error {
	p, err := pickPath(path)
	if err != nil {
		printlnFn("Cannot upload:", err.Error())
		return err
	}
	name := p.selected.name

	e, err := a.files.Upload(ctx, p)
	if err != nil {
		a.report(ctx, "upload", name, err)
		return err
	}
	printlnFn(fmt.Sprintf("Uploaded %s (%s)", e.Name, sizefmt.Format(e.Bytes)))
	return nil
}

// Download prints a retrieval URL for name, or saves the content to dest
// when dest is set. A failed save leaves dest as it was.
func (a *App) Download(ctx context.Context, name, dest string) error {
	if dest == "" {
		url, err := a.files.RetrievalURL(ctx, name)
		if err != nil {
			a.report(ctx, "download", name, err)
			return err
		}
		printlnFn(url)
		return nil
	}

	var n int64
	err := filex.WriteAtomic(dest, func(w io.Writer) error {
		var err error
		n, err = a.files.Fetch(ctx, name, w)
		return err
	})
	if err != nil {
		a.report(ctx, "download", name, err)
		return err
	}

	printlnFn(fmt.Sprintf("Saved %s to %s (%s)", name, dest, sizefmt.Format(n)))
	return nil
}

// Delete deletes the listed file called name. Its content is not removed.
func (a *App) Delete(ctx context.Context, name string) error {
	if err := a.files.Delete(ctx, name); err != nil {
		a.report(ctx, "delete", name, err)
		return err
	}
	printlnFn("Deleted", name)
	return nil
}

// report logs err and prints a short explanation for the user.
func (a *App) report(ctx context.Context, op, name string, err error) {
	a.logger.Error(ctx, "Command failed", "op", op, "name", name, "error", err.Error())
	printlnFn(describeError(name, err))
}

func describeError(name string, err error) string {
	var orphan *services.OrphanError

	switch {
	case errors.As(err, &orphan):
		return fmt.Sprintf("Upload of %q failed and its record was left without content: %v", orphan.Entry.Name, err)
	case errors.Is(err, common.ErrDuplicateName):
		return fmt.Sprintf("A file named %q already exists", name)
	case errors.Is(err, common.ErrUploadInProgress):
		return "Another upload is in progress"
	case errors.Is(err, common.ErrNotFound):
		return fmt.Sprintf("No file named %q", name)
	case errors.Is(err, common.ErrUnauthorized):
		return "Not authorized, check the access token"
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later"
	case errors.Is(err, common.ErrInvalidName), errors.Is(err, client.ErrInvalidArgument):
		return fmt.Sprintf("Invalid file name %q", name)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
