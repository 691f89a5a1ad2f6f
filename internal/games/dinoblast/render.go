package dinoblast

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/dinoblast/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar     = '='
	EggChar        = 'o'
	BulletChar     = '!'
	ReflectedChar  = '^'
	LaserChar      = '|'
	BunkerChar     = '#'
	BumperChar     = '@'
	VortexChar     = '%'
	WormholeChar   = '0'
	GravityChar    = '*'
	BossChar       = '█'
	WeakPointChar  = '◎'
	EarthLineChar  = '─'
	hudRows        = 2
	minFieldHeight = 8
)

// Render draws the playfield scaled into the screen, with a two-row HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.formation == nil {
		return
	}
	if dst.Height() < hudRows+minFieldHeight || dst.Width() < 20 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	g.renderHUD(dst)
	v := newViewport(g.cfg.Playfield.Width, g.cfg.Playfield.Height, dst.Width(), dst.Height()-hudRows)

	ey := v.y(g.cfg.Playfield.EarthLineY)
	dst.DrawHLine(0, ey, dst.Width(), EarthLineChar)

	for _, o := range g.obstacles {
		g.renderObstacle(dst, v, o)
	}
	for _, d := range g.formation.Live() {
		g.renderDino(dst, v, d)
	}
	if g.boss != nil && g.boss.Alive {
		g.renderBoss(dst, v)
	}
	for _, t := range g.paddle.Bunker {
		if t.Alive {
			fillBox(dst, v, t.Box, BunkerChar, core.ColorGray)
		}
	}
	for _, d := range g.drops {
		dst.SetColored(v.x(d.Pos.X), v.y(d.Pos.Y), d.Pickup.Glyph(), d.Pickup.Color())
	}
	for _, b := range g.bullets {
		if b.Reflected {
			dst.SetColored(v.x(b.Pos.X), v.y(b.Pos.Y), ReflectedChar, core.ColorBrightGreen)
		} else {
			dst.SetColored(v.x(b.Pos.X), v.y(b.Pos.Y), BulletChar, core.ColorBrightRed)
		}
	}
	for _, l := range g.lasers {
		dst.SetColored(v.x(l.Pos.X), v.y(l.Pos.Y), LaserChar, core.ColorBrightYellow)
	}

	paddleColor := core.ColorBrightWhite
	if g.paddle.Dashing {
		paddleColor = core.ColorBrightCyan
	}
	fillBox(dst, v, g.paddle.Box(g.buffs), PaddleChar, paddleColor)

	for _, e := range g.eggs {
		c := core.ColorBrightYellow
		if g.buffs.Piercing(e.PierceLeft) {
			c = core.ColorBrightRed
		}
		dst.SetColored(v.x(e.Pos.X), v.y(e.Pos.Y), EggChar, c)
	}

	g.renderOverlay(dst)
}

// viewport maps world pixels to screen cells below the HUD.
type viewport struct {
	sx, sy float64
	rows   int
}

func newViewport(worldW, worldH float64, cols, rows int) viewport {
	return viewport{sx: float64(cols) / worldW, sy: float64(rows) / worldH, rows: rows}
}

func (v viewport) x(wx float64) int { return int(wx * v.sx) }
func (v viewport) y(wy float64) int { return hudRows + core.Clamp(int(wy*v.sy), 0, v.rows-1) }

func fillBox(dst *core.Screen, v viewport, b core.Box, r rune, c core.Color) {
	x0, x1 := v.x(b.Left()), v.x(b.Right())
	y0, y1 := v.y(b.Top()), v.y(b.Bottom())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetColored(x, y, r, c)
		}
	}
}

func (g *Game) renderDino(dst *core.Screen, v viewport, d *Dino) {
	box := g.formation.Box(d)
	x0, x1 := v.x(box.Left()), v.x(box.Right())
	y := v.y(d.Pos.Y)
	glyph := d.Kind.Glyph()
	for x := x0; x < max(x1-1, x0+1); x++ {
		dst.SetColored(x, y, glyph, d.Kind.Color())
	}
	if d.HP > 1 {
		dst.SetColored(x0, y, rune('0'+min(d.HP, 9)), core.ColorBrightWhite)
	}
}

func (g *Game) renderBoss(dst *core.Screen, v viewport) {
	b := g.boss
	color := []core.Color{core.ColorRed, core.ColorMagenta, core.ColorBrightRed}[min(b.Phase, 2)]
	fillBox(dst, v, b.Box(), BossChar, color)
	for i := range b.WeakPoints {
		c := b.WeakPointCircle(i)
		wc := core.ColorBrightYellow
		if !b.WeakPointReady(i, g.clock) {
			wc = core.ColorGray
		}
		dst.SetColored(v.x(c.C.X), v.y(c.C.Y), WeakPointChar, wc)
	}
	label := fmt.Sprintf(" %s %d/%d ", strings.ToUpper(b.Name), b.HP, b.MaxHP)
	dst.DrawTextColored(v.x(b.Pos.X)-len([]rune(label))/2, v.y(b.Box().Top()), label, core.ColorBrightWhite)
}

func (g *Game) renderObstacle(dst *core.Screen, v viewport, o Obstacle) {
	switch o.Kind {
	case ObstacleBumper:
		dst.SetColored(v.x(o.Pos.X), v.y(o.Pos.Y), BumperChar, core.ColorBrightMagenta)
	case ObstacleVortex:
		dst.SetColored(v.x(o.Pos.X), v.y(o.Pos.Y), VortexChar, core.ColorCyan)
	case ObstacleWormhole:
		c := core.ColorBrightCyan
		if g.clock < o.readyAt {
			c = core.ColorGray
		}
		dst.SetColored(v.x(o.Pos.X), v.y(o.Pos.Y), WormholeChar, c)
		dst.SetColored(v.x(o.Exit.X), v.y(o.Exit.Y), WormholeChar, c)
	case ObstacleGravityWell:
		dst.SetColored(v.x(o.Pos.X), v.y(o.Pos.Y), GravityChar, core.ColorBlue)
	}
}

// renderHUD draws score, hearts, wave and combo on row 0 and buffs on row 1.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	hearts := strings.Repeat("♥", max(g.hearts, 0)) + strings.Repeat("·", max(g.profile.Hearts-g.hearts, 0))
	shield := strings.Repeat("◆", g.paddle.Shield)
	dst.DrawTextColored(dst.Width()/2-6, 0, hearts, core.ColorBrightRed)
	dst.DrawTextColored(dst.Width()/2-6+len([]rune(hearts))+1, 0, shield, core.ColorBrightCyan)

	waveText := fmt.Sprintf("Wave: %d/%d", g.wave, g.waves.FinalWave())
	dst.DrawText(dst.Width()-len(waveText)-1, 0, waveText)

	var parts []string
	if g.combo >= g.cfg.Combo.Double {
		parts = append(parts, fmt.Sprintf("x%d COMBO %d", g.comboMult(), g.combo))
	}
	for _, e := range g.buffs.Timed() {
		parts = append(parts, fmt.Sprintf("%s(%d)", e.Type, int(e.Remaining.Seconds()+0.999)))
	}
	for _, m := range g.buffs.Held() {
		parts = append(parts, fmt.Sprintf("%s×%d", m, g.buffs.Stacks(m)))
	}
	if g.paddle.DashCooldown <= 0 {
		parts = append(parts, "DASH")
	}
	dst.DrawText(1, 1, strings.Join(parts, " "))
}

// renderOverlay draws pause, wave transition and run end messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	mid := dst.Height() / 2
	switch {
	case g.paused:
		dst.DrawTextCentered(mid, "PAUSED")
		dst.DrawTextCentered(mid+1, "Press P to resume")
	case g.phase == PhaseWaveCleared:
		dst.DrawTextCentered(mid, fmt.Sprintf("WAVE %d CLEARED", g.wave))
	case g.phase == PhaseBossPending:
		dst.DrawTextCentered(mid, "WARNING: BOSS APPROACHING")
	case g.phase == PhaseWon:
		dst.DrawTextCentered(mid-1, "EARTH IS SAVED!")
		dst.DrawTextCentered(mid, fmt.Sprintf("Final Score: %d", g.score))
		dst.DrawTextCentered(mid+1, "Press R to play again")
	case g.phase == PhaseLost:
		dst.DrawTextCentered(mid-1, "GAME OVER")
		dst.DrawTextCentered(mid, fmt.Sprintf("Score: %d  Wave: %d", g.score, g.wave))
		dst.DrawTextCentered(mid+1, "Press R to restart")
	default:
		for _, e := range g.eggs {
			if e.Stuck && !g.buffs.IsActive(PowerMulti) && g.buffs.Stacks(MutMagnet) == 0 {
				dst.DrawTextCentered(mid+2, "Press SPACE to launch")
				break
			}
		}
	}
}
