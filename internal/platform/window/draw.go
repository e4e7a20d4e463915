package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/touch-arcade/internal/config"
	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/engine"
	"github.com/vovakirdan/touch-arcade/internal/input"
)

var labelFace = text.NewGoXFace(basicfont.Face7x13)

var (
	background = color.RGBA{0x10, 0x10, 0x18, 0xff}
	bandColor  = color.RGBA{0x60, 0x60, 0x60, 0xff}
	shade      = color.RGBA{0x00, 0x00, 0x00, 0xb0}
)

// rgba maps the terminal colour names to window colours.
var rgba = map[core.Color]color.RGBA{
	core.ColorDefault:       {0xdd, 0xdd, 0xdd, 0xff},
	core.ColorRed:           {0xcc, 0x33, 0x33, 0xff},
	core.ColorGreen:         {0x33, 0xaa, 0x44, 0xff},
	core.ColorYellow:        {0xcc, 0xaa, 0x22, 0xff},
	core.ColorBlue:          {0x33, 0x55, 0xdd, 0xff},
	core.ColorMagenta:       {0xaa, 0x44, 0xbb, 0xff},
	core.ColorCyan:          {0x33, 0xaa, 0xbb, 0xff},
	core.ColorWhite:         {0xcc, 0xcc, 0xcc, 0xff},
	core.ColorBrightRed:     {0xff, 0x55, 0x55, 0xff},
	core.ColorBrightGreen:   {0x66, 0xff, 0x66, 0xff},
	core.ColorBrightYellow:  {0xff, 0xee, 0x55, 0xff},
	core.ColorBrightBlue:    {0x66, 0x88, 0xff, 0xff},
	core.ColorBrightMagenta: {0xff, 0x66, 0xff, 0xff},
	core.ColorBrightCyan:    {0x66, 0xff, 0xff, 0xff},
	core.ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
	core.ColorOrange:        {0xff, 0x88, 0x22, 0xff},
	core.ColorGray:          {0x88, 0x88, 0x88, 0xff},
}

// colorOf resolves a colour name, falling back when it is empty or
// unknown.
func colorOf(name string, fallback core.Color) color.RGBA {
	if v, ok := rgba[colorName(name, fallback)]; ok {
		return v
	}
	return rgba[core.ColorDefault]
}

type palette struct {
	player, playerBump, playerJump color.RGBA
	enemy, obstacle, obstacleHit   color.RGBA
	platform, bullet, floor        color.RGBA
	button, buttonActive, score    color.RGBA
}

func newPalette(c config.Colors) palette {
	return palette{
		player:       colorOf(c.Player, core.ColorBlue),
		playerBump:   colorOf(c.PlayerBump, colorName(c.Player, core.ColorBlue)),
		playerJump:   colorOf(c.PlayerJump, colorName(c.Player, core.ColorBlue)),
		enemy:        colorOf(c.Enemy, core.ColorRed),
		obstacle:     colorOf(c.Obstacle, core.ColorRed),
		obstacleHit:  colorOf(c.ObstacleHit, colorName(c.Obstacle, core.ColorRed)),
		platform:     colorOf(c.Platform, core.ColorWhite),
		bullet:       colorOf(c.Bullet, core.ColorYellow),
		floor:        colorOf(c.Floor, core.ColorWhite),
		button:       colorOf(c.Button, core.ColorGreen),
		buttonActive: colorOf(c.ButtonActive, core.ColorBrightGreen),
		score:        colorOf(c.Score, core.ColorWhite),
	}
}

// colorName parses name, or returns fallback.
func colorName(name string, fallback core.Color) core.Color {
	if c, ok := core.ParseColor(name); ok && name != "" {
		return c
	}
	return fallback
}

// drawer renders one frame.
type drawer struct {
	dst     *ebiten.Image
	palette palette
	assets  Assets
}

func (d drawer) draw(s engine.Snapshot, buttons []input.Button, active []string, v config.Variant) {
	if !d.assets.drawBackground(d.dst) {
		d.dst.Fill(background)
	}

	if s.PlayArea != s.World {
		d.hline(s.PlayArea.Y, bandColor)
		d.hline(s.PlayArea.Bottom(), bandColor)
	}
	if s.Floor > 0 {
		d.hline(s.Floor, d.palette.floor)
	}

	for _, e := range s.Platforms {
		d.fill(e.Box, d.palette.platform)
	}
	for _, e := range s.Obstacles {
		c := d.palette.obstacle
		if e.Flash > 0 {
			c = d.palette.obstacleHit
		}
		d.fill(e.Box, c)
	}
	for _, e := range s.Enemies {
		if !d.assets.drawSprite(d.dst, d.assets.Enemy, e.Box) {
			d.fill(e.Box, d.palette.enemy)
		}
	}
	for _, e := range s.Bullets {
		d.fill(e.Box, d.palette.bullet)
	}
	d.drawPlayer(s.Player, v.Physics.Gravity > 0)

	on := make(map[string]bool, len(active))
	for _, name := range active {
		on[name] = true
	}
	for _, b := range buttons {
		c := d.palette.button
		if on[b.Name] {
			c = d.palette.buttonActive
		}
		d.button(b, c)
	}

	d.hud(s, v.Title)

	switch {
	case s.Paused:
		d.message(s.World, "PAUSED", "Press P to resume")
	case s.GameOver():
		d.gameOver(s, v.Restart)
	}
}

func (d drawer) drawPlayer(p engine.Player, gravity bool) {
	if p.Bump == 0 && d.assets.drawSprite(d.dst, d.assets.Player, p.Box) {
		return
	}
	c := d.palette.player
	switch {
	case p.Bump > 0:
		c = d.palette.playerBump
	case p.Jumping() && gravity:
		c = d.palette.playerJump
	}
	d.fill(p.Box, c)
	if p.Frame%2 == 1 {
		inner := p.Box
		inner.X += inner.W / 4
		inner.Y += inner.H / 4
		inner.W /= 2
		inner.H /= 2
		d.fill(inner, shade)
	}
}

func (d drawer) fill(r core.RectF, c color.Color) {
	vector.DrawFilledRect(d.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func (d drawer) hline(y float64, c color.Color) {
	w := float32(d.dst.Bounds().Dx())
	vector.StrokeLine(d.dst, 0, float32(y), w, float32(y), 2, c, false)
}

func (d drawer) button(b input.Button, c color.Color) {
	r := b.Box
	vector.StrokeRect(d.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, c, false)
	label := b.Label
	if label == "" {
		label = b.Name
	}
	d.centered(label, r, c)
}

// centered draws label centred in r.
func (d drawer) centered(label string, r core.RectF, c color.Color) {
	cx, cy := r.Center()
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(c)
	text.Draw(d.dst, label, labelFace, op)
}

// textAt draws label with its top-left corner at (x, y).
func (d drawer) textAt(label string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(d.dst, label, labelFace, op)
}

func (d drawer) hud(s engine.Snapshot, title string) {
	line := fmt.Sprintf("Score: %d", s.DisplayScore)
	if s.MaxHealth > 0 {
		line += fmt.Sprintf("  Health: %d/%d", s.Health, s.MaxHealth)
	}
	d.textAt(line, 4, 4, d.palette.score)
	if title != "" {
		w, _ := text.Measure(title, labelFace, 0)
		d.textAt(title, float64(d.dst.Bounds().Dx())-w-4, 4, d.palette.score)
	}
	ebitenutil.DebugPrintAt(d.dst, fmt.Sprintf("TPS: %0.0f", ebiten.ActualTPS()), 4, d.dst.Bounds().Dy()-18)
}

func (d drawer) gameOver(s engine.Snapshot, r config.Restart) {
	hint := "Press R or tap to restart"
	if !r.Anywhere && r.W > 0 && r.H > 0 {
		label := r.Label
		if label == "" {
			label = "Restart"
		}
		d.button(input.Button{Name: "restart", Label: label, Box: core.NewRectF(r.X, r.Y, r.W, r.H)}, rgba[core.ColorBrightWhite])
		hint = "Press R or tap " + label
	}
	d.message(s.World, "GAME OVER", fmt.Sprintf("Score: %d  |  %s", s.DisplayScore, hint))
}

// message draws a shaded box in the upper part of the world so it does
// not hide the restart button.
func (d drawer) message(world core.RectF, title, subtitle string) {
	tw, th := text.Measure(title, labelFace, 0)
	sw, _ := text.Measure(subtitle, labelFace, 0)
	w := max(tw, sw) + 24
	h := th*2 + 24
	box := core.NewRectF((world.W-w)/2, world.H/4-h/2, w, h)
	d.fill(box, shade)
	vector.StrokeRect(d.dst, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), 2, rgba[core.ColorBrightWhite], false)

	top := box
	top.H /= 2
	white := rgba[core.ColorBrightWhite]
	d.centered(title, top, white)
	bottom := top
	bottom.Y += top.H
	d.centered(subtitle, bottom, rgba[core.ColorDefault])
}
