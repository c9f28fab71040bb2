package images

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/errs"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

// URLPrefix is the path images are served under.
const URLPrefix = "galaxy_images"

// Image describes one panel of the classify page.
type Image struct {
	Path     string   `json:"path"`
	URL      string   `json:"url,omitempty"`
	Title    string   `json:"title"`
	BaseName string   `json:"base_name"`
	Success  bool     `json:"success"`
	VMax     *float64 `json:"vmax"`
}

type Resolver struct {
	log      *logger.Logger
	root     string
	renderer Renderer
	mirror   Mirror
	defaults VMax
}

type ResolverOption func(*Resolver)

func WithRenderer(r Renderer) ResolverOption { return func(rs *Resolver) { rs.renderer = r } }
func WithMirror(m Mirror) ResolverOption     { return func(rs *Resolver) { rs.mirror = m } }
func WithDefaults(v VMax) ResolverOption     { return func(rs *Resolver) { rs.defaults = v } }

// NewResolver serves images from root. Without a renderer every missing
// image becomes a placeholder.
func NewResolver(log *logger.Logger, root string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		log:      log.With("service", "ImageResolver"),
		root:     root,
		defaults: DefaultVMax,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Defaults() VMax { return r.defaults }

// Resolve returns the six panels for a galaxy, rendering them when any file
// is missing.
func (r *Resolver) Resolve(ctx context.Context, galaxyID string, params types.DisplayParams, vmax VMax) ([]Image, error) {
	dir, err := r.galaxyDir(galaxyID)
	if err != nil {
		return nil, err
	}

	allExist, err := r.allExist(ctx, dir, vmax)
	if err != nil {
		return nil, err
	}

	var results map[string]RenderResult
	if !allExist {
		results = r.render(ctx, galaxyID, params, dir, vmax)
	}

	out := make([]Image, 0, len(BaseNames))
	for _, base := range BaseNames {
		name := Filename(base, vmax)
		img := Image{
			Path:     path.Join(URLPrefix, galaxyID, name),
			Title:    Title(base),
			BaseName: base,
			Success:  true,
			VMax:     vmax.Expected(base),
		}
		if results != nil {
			res := results[base]
			img.Success = res.Success
			if res.VMax != nil {
				img.VMax = res.VMax
			}
		}
		if r.mirror != nil {
			img.URL = r.mirror.PublicURL(path.Join(galaxyID, name))
		}
		out = append(out, img)
	}
	return out, nil
}

// Path returns the local file for one image, generating the galaxy's images
// first when it does not exist yet.
func (r *Resolver) Path(ctx context.Context, galaxyID, filename string, params types.DisplayParams) (string, error) {
	dir, err := r.galaxyDir(galaxyID)
	if err != nil {
		return "", err
	}
	if filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("%w: bad image name %q", errs.ErrInvalidArgument, filename)
	}
	base, vmax := ParseFilename(filename, r.defaults)
	if Title(base) == "" {
		return "", fmt.Errorf("%w: unknown image %q", errs.ErrNotFound, base)
	}
	full := filepath.Join(dir, Filename(base, vmax))
	if _, err := os.Stat(full); err == nil {
		return full, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if _, err := r.Resolve(ctx, galaxyID, params, vmax); err != nil {
		return "", err
	}
	return full, nil
}

func (r *Resolver) galaxyDir(galaxyID string) (string, error) {
	if galaxyID == "" || galaxyID != filepath.Base(galaxyID) || strings.HasPrefix(galaxyID, ".") {
		return "", fmt.Errorf("%w: bad galaxy id %q", errs.ErrInvalidArgument, galaxyID)
	}
	return filepath.Join(r.root, galaxyID), nil
}

func (r *Resolver) allExist(ctx context.Context, dir string, vmax VMax) (bool, error) {
	exists := make([]bool, len(BaseNames))
	g, _ := errgroup.WithContext(ctx)
	for i, base := range BaseNames {
		i, p := i, filepath.Join(dir, Filename(base, vmax))
		g.Go(func() error {
			_, err := os.Stat(p)
			switch {
			case err == nil:
				exists[i] = true
			case errors.Is(err, os.ErrNotExist):
			default:
				return fmt.Errorf("stat %s: %w", p, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}
	for _, ok := range exists {
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// render runs the renderer and backfills every failed panel with a
// placeholder. Renderer errors are logged, not returned.
func (r *Resolver) render(ctx context.Context, galaxyID string, params types.DisplayParams, dir string, vmax VMax) map[string]RenderResult {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		r.log.Warn("create galaxy image dir failed", "galaxy_id", galaxyID, "error", err)
	}

	results := map[string]RenderResult{}
	if r.renderer != nil {
		got, err := r.renderer.Render(ctx, galaxyID, params, dir, vmax)
		if err != nil {
			r.log.Warn("image render failed", "galaxy_id", galaxyID, "error", err)
		}
		for k, v := range got {
			results[k] = v
		}
	}

	for _, base := range BaseNames {
		name := Filename(base, vmax)
		full := filepath.Join(dir, name)
		if res, ok := results[base]; !ok || !res.Success {
			if err := DrawPlaceholder(full, Title(base)); err != nil {
				r.log.Warn("placeholder failed", "galaxy_id", galaxyID, "image", name, "error", err)
			}
			results[base] = RenderResult{Success: false, VMax: vmax.Expected(base)}
		}
		if r.mirror != nil {
			if err := r.mirror.Upload(ctx, path.Join(galaxyID, name), full); err != nil {
				r.log.Warn("image mirror upload failed", "galaxy_id", galaxyID, "image", name, "error", err)
			}
		}
	}
	return results
}
