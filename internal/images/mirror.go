package images

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/lsbmorph-backend/internal/platform/gcp"
)

type bucketMirror struct {
	bucket gcp.ImageBucket
}

// NewBucketMirror mirrors rendered files into an object storage bucket.
func NewBucketMirror(bucket gcp.ImageBucket) Mirror {
	return &bucketMirror{bucket: bucket}
}

func (m *bucketMirror) Upload(ctx context.Context, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return m.bucket.Upload(ctx, key, f)
}

func (m *bucketMirror) PublicURL(key string) string { return m.bucket.PublicURL(key) }
