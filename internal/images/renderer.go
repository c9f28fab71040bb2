package images

import (
	"context"

	types "github.com/yungbote/lsbmorph-backend/internal/domain"
)

type RenderResult struct {
	Success bool
	VMax    *float64
}

// Renderer produces the base images for one galaxy into outDir, named with
// Filename. Results are keyed by base name; a missing key counts as failure.
type Renderer interface {
	Render(ctx context.Context, galaxyID string, params types.DisplayParams, outDir string, vmax VMax) (map[string]RenderResult, error)
}

// Mirror receives rendered files so they can be served from object storage.
type Mirror interface {
	Upload(ctx context.Context, key string, path string) error
	PublicURL(key string) string
}
