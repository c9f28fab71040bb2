package images

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

const placeholderSize = 400

// DrawPlaceholder writes a sad-face PNG captioned with title to path.
func DrawPlaceholder(path, title string) error {
	const s = float64(placeholderSize)
	dc := gg.NewContext(placeholderSize, placeholderSize)

	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(color.Black)
	dc.SetLineWidth(6)
	dc.DrawCircle(s*0.35, s*0.38, s*0.05)
	dc.DrawCircle(s*0.65, s*0.38, s*0.05)
	dc.Fill()
	dc.DrawArc(s/2, s*0.75, s*0.18, gg.Radians(200), gg.Radians(340))
	dc.Stroke()

	dc.DrawStringAnchored(title+" not available", s/2, s*0.1, 0.5, 0.5)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save placeholder: %w", err)
	}
	return nil
}
