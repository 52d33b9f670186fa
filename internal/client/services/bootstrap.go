package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dogbox/internal/client/view"
	"github.com/dmitrijs2005/dogbox/internal/common"
)

// Bootstrapper loads the whole registry into the view.
type Bootstrapper struct {
	registry Registry
	view     *view.LocalView
}

func NewBootstrapper(r Registry, v *view.LocalView) *Bootstrapper {
	return &Bootstrapper{registry: r, view: v}
}

// Bootstrap replaces the view with the registry's records. On failure the
// view is left as it was.
func (b *Bootstrapper) Bootstrap(ctx context.Context) error {
	entries, err := b.registry.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrRegistry, err)
	}
	b.view.Replace(entries)
	return nil
}
