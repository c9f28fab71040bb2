package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/lsbmorph-backend/internal/platform/ctxutil"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/services"
)

// recordingProgress remembers the recent-list size each Stats call asked for.
type recordingProgress struct {
	recent []int
}

func (p *recordingProgress) Progress(dbctx.Context, uint) (*services.Progress, error) {
	return &services.Progress{}, nil
}

func (p *recordingProgress) Stats(_ dbctx.Context, _ uint, recentN int) (*services.Stats, error) {
	p.recent = append(p.recent, recentN)
	return &services.Stats{}, nil
}

func (p *recordingProgress) InvalidateTotal(dbctx.Context) error { return nil }

func TestResultsRecentLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query string
		code  int
		want  int
	}{
		{query: "", code: http.StatusOK, want: 7},
		{query: "?recent=0", code: http.StatusOK, want: 7},
		{query: "?recent=25", code: http.StatusOK, want: 25},
		{query: "?recent=1000000", code: http.StatusOK, want: services.MaxRecentLimit},
		{query: "?recent=abc", code: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			progress := &recordingProgress{}
			h := NewProgressHandler(progress, 7)

			r := gin.New()
			r.GET("/api/results", func(c *gin.Context) {
				ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: 1, Username: "alice"})
				c.Request = c.Request.WithContext(ctx)
				h.Results(c)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/results"+tc.query, nil))
			require.Equal(t, tc.code, rec.Code, rec.Body.String())
			if tc.code != http.StatusOK {
				require.Empty(t, progress.recent)
				return
			}
			require.Equal(t, []int{tc.want}, progress.recent)
		})
	}
}

func TestNewProgressHandlerClampsConfiguredLimit(t *testing.T) {
	require.Equal(t, services.DefaultRecentLimit, NewProgressHandler(&recordingProgress{}, 0).recentLimit)
	require.Equal(t, services.MaxRecentLimit, NewProgressHandler(&recordingProgress{}, 5000).recentLimit)
}
