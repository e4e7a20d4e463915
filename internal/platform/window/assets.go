package window

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/core"
)

// Assets holds the optional sprites of a variant. A nil image means the
// body is drawn as a solid rectangle.
type Assets struct {
	Player     *ebiten.Image
	Enemy      *ebiten.Image
	Background *ebiten.Image
}

// LoadAssets loads the variant's sprites once. Missing or broken files are
// logged and left nil.
func LoadAssets(dir string, s config.Sprites, logger *log.Logger) Assets {
	return Assets{
		Player:     loadSprite(dir, s.Player, logger),
		Enemy:      loadSprite(dir, s.Enemy, logger),
		Background: loadSprite(dir, s.Background, logger),
	}
}

func loadSprite(dir, name string, logger *log.Logger) *ebiten.Image {
	if name == "" {
		return nil
	}
	path := spritePath(dir, name)
	img, err := decodeImage(path)
	if err != nil {
		logger.Warn("sprite unavailable, using solid fill", "path", path, "err", err)
		return nil
	}
	return ebiten.NewImageFromImage(img)
}

// spritePath resolves name against dir unless it is absolute.
func spritePath(dir, name string) string {
	if dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

// drawSprite scales img onto r. It reports false when there is no image.
func (a Assets) drawSprite(dst, img *ebiten.Image, r core.RectF) bool {
	if img == nil {
		return false
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return false
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	dst.DrawImage(img, op)
	return true
}

// drawBackground stretches the background over dst.
func (a Assets) drawBackground(dst *ebiten.Image) bool {
	b := dst.Bounds()
	return a.drawSprite(dst, a.Background, core.NewRectF(0, 0, float64(b.Dx()), float64(b.Dy())))
}
