package arcade

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/engine"
	"github.com/vovakirdan/touch-arcade/internal/input"
)

// Visual characters for rendering
const (
	PlayerChar     = '█'
	PlayerWalkChar = '▓'
	EnemyChar      = '▒'
	ObstacleChar   = '▓'
	PlatformChar   = '▀'
	BulletChar     = '•'
	FloorChar      = '═'
	BandChar       = '─'
	HeartChar      = '♥'
)

// hudRows is the number of rows above the play field.
const hudRows = 1

// view maps world units to screen cells for the last Render.
type view struct {
	ux, uy float64 // World units per cell
}

func (v view) rect(r core.RectF) core.Rect {
	c := r.Scale(1/v.ux, 1/v.uy)
	c.Y += hudRows
	return c
}

// CellToWorld converts a screen cell from the last Render into the world
// position at the cell's centre.
func (g *Game) CellToWorld(col, row int) (float64, float64) {
	if g.view.ux <= 0 || g.view.uy <= 0 {
		return -1, -1
	}
	x := (float64(col) + 0.5) * g.view.ux
	y := (float64(row-hudRows) + 0.5) * g.view.uy
	return x, y
}

// palette resolves the variant's color names once per frame.
type palette struct {
	player, playerBump, playerJump core.Color
	enemy, obstacle, obstacleHit   core.Color
	platform, bullet, floor        core.Color
	button, buttonActive, score    core.Color
}

func color(name string, fallback core.Color) core.Color {
	if name == "" {
		return fallback
	}
	if c, ok := core.ParseColor(name); ok {
		return c
	}
	return fallback
}

func (g *Game) palette() palette {
	c := g.variant.Colors
	p := palette{
		player:       color(c.Player, core.ColorBlue),
		enemy:        color(c.Enemy, core.ColorRed),
		obstacle:     color(c.Obstacle, core.ColorRed),
		platform:     color(c.Platform, core.ColorWhite),
		bullet:       color(c.Bullet, core.ColorYellow),
		floor:        color(c.Floor, core.ColorWhite),
		button:       color(c.Button, core.ColorGreen),
		buttonActive: color(c.ButtonActive, core.ColorBrightGreen),
		score:        color(c.Score, core.ColorWhite),
	}
	p.playerBump = color(c.PlayerBump, p.player)
	p.playerJump = color(c.PlayerJump, p.player)
	p.obstacleHit = color(c.ObstacleHit, p.obstacle)
	return p
}

// Render draws the round scaled to the screen: a HUD row on top and the
// world below it.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	s := g.round.Snapshot()
	rows := dst.Height() - hudRows
	if rows <= 0 || dst.Width() <= 0 || s.World.W <= 0 || s.World.H <= 0 {
		return
	}
	g.view = view{
		ux: s.World.W / float64(dst.Width()),
		uy: s.World.H / float64(rows),
	}
	p := g.palette()

	g.drawField(dst, s, p)
	g.drawButtons(dst, p)
	g.drawHUD(dst, s, p)

	switch {
	case s.Paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case s.GameOver():
		g.drawGameOver(dst, s)
	}
}

func (g *Game) drawField(dst *core.Screen, s engine.Snapshot, p palette) {
	if s.PlayArea != s.World {
		top := g.view.rect(core.NewRectF(0, s.PlayArea.Y, s.World.W, 0))
		bottom := g.view.rect(core.NewRectF(0, s.PlayArea.Bottom(), s.World.W, 0))
		dst.DrawHLine(0, top.Y, dst.Width(), BandChar, core.ColorGray)
		dst.DrawHLine(0, bottom.Y, dst.Width(), BandChar, core.ColorGray)
	}
	if s.Floor > 0 {
		floor := g.view.rect(core.NewRectF(0, s.Floor, s.World.W, 0))
		dst.DrawHLine(0, floor.Y, dst.Width(), FloorChar, p.floor)
	}

	for _, e := range s.Platforms {
		dst.DrawRect(g.view.rect(e.Box), PlatformChar, p.platform)
	}
	for _, e := range s.Obstacles {
		c := p.obstacle
		if e.Flash > 0 {
			c = p.obstacleHit
		}
		dst.DrawRect(g.view.rect(e.Box), ObstacleChar, c)
	}
	for _, e := range s.Enemies {
		dst.DrawRect(g.view.rect(e.Box), EnemyChar, p.enemy)
	}
	for _, e := range s.Bullets {
		dst.DrawRect(g.view.rect(e.Box), BulletChar, p.bullet)
	}

	pl := s.Player
	c := p.player
	switch {
	case pl.Bump > 0:
		c = p.playerBump
	case pl.Jumping() && g.variant.Physics.Gravity > 0:
		c = p.playerJump
	}
	ch := PlayerChar
	if pl.Frame%2 == 1 {
		ch = PlayerWalkChar
	}
	dst.DrawRect(g.view.rect(pl.Box), ch, c)
}

func (g *Game) drawButtons(dst *core.Screen, p palette) {
	active := make(map[string]bool, len(g.active))
	for _, name := range g.active {
		active[name] = true
	}
	for _, b := range g.Buttons() {
		c := p.button
		if active[b.Name] {
			c = p.buttonActive
		}
		g.drawButton(dst, b, c)
	}
}

func (g *Game) drawButton(dst *core.Screen, b input.Button, c core.Color) {
	r := g.view.rect(b.Box)
	if r.W >= 3 && r.H >= 3 {
		dst.DrawBox(r, c)
	} else {
		dst.DrawRect(r, '░', c)
	}
	label := b.Label
	if label == "" {
		label = b.Name
	}
	cx, cy := r.Center()
	dst.DrawTextColored(cx-len([]rune(label))/2, cy, label, c)
}

func (g *Game) drawHUD(dst *core.Screen, s engine.Snapshot, p palette) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", s.DisplayScore), p.score)

	if s.MaxHealth > 0 {
		hearts := strings.Repeat(string(HeartChar), s.Health) +
			strings.Repeat("·", s.MaxHealth-s.Health)
		dst.DrawTextColored(14, 0, hearts, core.ColorRed)
	}

	title := g.Title()
	dst.DrawText(dst.Width()-len([]rune(title))-1, 0, title)
}

func (g *Game) drawGameOver(dst *core.Screen, s engine.Snapshot) {
	r := g.variant.Restart
	hint := "Press R or tap to restart"
	if !r.Anywhere && r.W > 0 && r.H > 0 {
		label := r.Label
		if label == "" {
			label = "Restart"
		}
		g.drawButton(dst, input.Button{
			Name:  "restart",
			Label: label,
			Box:   core.NewRectF(r.X, r.Y, r.W, r.H),
		}, core.ColorBrightWhite)
		hint = "Press R or tap " + label
	}
	g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  %s", s.DisplayScore, hint))
}

// drawCenteredMessage draws a message box near the top of the field so it
// does not hide the restart button.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	boxW := core.Min(core.Max(len([]rune(title)), len([]rune(subtitle)))+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := hudRows + int(math.Max(0, float64(dst.Height()-hudRows-boxH)/4))

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)

	dst.DrawTextCentered(boxY+1, title, core.ColorBrightWhite)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorDefault)
}
