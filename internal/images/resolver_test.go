package images

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/errs"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

type fakeRenderer struct {
	calls int
	ok    map[string]bool
	err   error
}

func (f *fakeRenderer) Render(_ context.Context, _ string, _ types.DisplayParams, outDir string, vmax VMax) (map[string]RenderResult, error) {
	f.calls++
	out := map[string]RenderResult{}
	for base, ok := range f.ok {
		if ok {
			if err := os.WriteFile(filepath.Join(outDir, Filename(base, vmax)), []byte("png"), 0o644); err != nil {
				return nil, err
			}
		}
		out[base] = RenderResult{Success: ok, VMax: vmax.Expected(base)}
	}
	return out, f.err
}

type fakeMirror struct {
	mu   sync.Mutex
	keys []string
}

func (m *fakeMirror) Upload(_ context.Context, key, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, key)
	return nil
}

func (m *fakeMirror) PublicURL(key string) string { return "https://cdn.test/" + key }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	require.NoError(t, err)
	return log
}

func TestResolve_RendersAndFillsPlaceholders(t *testing.T) {
	root := t.TempDir()
	r := &fakeRenderer{ok: map[string]bool{MaskedRBand: true, GalfitModel: true, Residual: false}}
	res := NewResolver(testLogger(t), root, WithRenderer(r))

	imgs, err := res.Resolve(context.Background(), "G1", types.DisplayParams{ID: "G1"}, DefaultVMax)
	require.NoError(t, err)
	require.Len(t, imgs, len(BaseNames))
	require.Equal(t, 1, r.calls)

	byBase := map[string]Image{}
	for _, img := range imgs {
		byBase[img.BaseName] = img
	}
	require.True(t, byBase[MaskedRBand].Success)
	require.False(t, byBase[Residual].Success)
	require.False(t, byBase[Lupton].Success)
	require.Equal(t, "galaxy_images/G1/masked_r_band_vmax99p0.png", byBase[MaskedRBand].Path)
	require.Equal(t, "Zoomed out", byBase[Lupton].Title)

	for _, base := range BaseNames {
		_, err := os.Stat(filepath.Join(root, "G1", Filename(base, DefaultVMax)))
		require.NoError(t, err, base)
	}

	imgs, err = res.Resolve(context.Background(), "G1", types.DisplayParams{ID: "G1"}, DefaultVMax)
	require.NoError(t, err)
	require.Equal(t, 1, r.calls, "existing files are not re-rendered")
	for _, img := range imgs {
		require.True(t, img.Success)
	}
}

func TestResolve_RendererErrorStillPlaceholders(t *testing.T) {
	root := t.TempDir()
	r := &fakeRenderer{err: errors.New("no fits")}
	mirror := &fakeMirror{}
	res := NewResolver(testLogger(t), root, WithRenderer(r), WithMirror(mirror))

	imgs, err := res.Resolve(context.Background(), "G2", types.DisplayParams{ID: "G2"}, DefaultVMax)
	require.NoError(t, err)
	for _, img := range imgs {
		require.False(t, img.Success)
		require.Contains(t, img.URL, "https://cdn.test/G2/")
	}
	require.Len(t, mirror.keys, len(BaseNames))
}

func TestPath(t *testing.T) {
	root := t.TempDir()
	res := NewResolver(testLogger(t), root)

	p, err := res.Path(context.Background(), "G3", "raw_r_band_vmax99p5.png", types.DisplayParams{ID: "G3"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "G3", "raw_r_band_vmax99p5.png"), p)
	_, err = os.Stat(p)
	require.NoError(t, err)

	_, err = res.Path(context.Background(), "G3", "../secret.png", types.DisplayParams{})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = res.Path(context.Background(), "..", "lupton.png", types.DisplayParams{})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = res.Path(context.Background(), "G3", "thumbnail.png", types.DisplayParams{})
	require.ErrorIs(t, err, errs.ErrNotFound)
}
