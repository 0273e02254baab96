package render

import (
	"fmt"

	"gravedelve/internal/component"
	"gravedelve/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

// DrawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(w *ecs.World, playerID ecs.EntityID, depth, xp int, messages []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - 5

	r.drawHLine(hudY, tcell.ColorGray)

	hpText := "HP: ?"
	if c := w.Get(playerID, component.CHealth); c != nil {
		hp := c.(component.Health)
		hpText = fmt.Sprintf("HP: %d/%d", hp.Current, hp.Max())
	}

	combatText := ""
	if c := w.Get(playerID, component.CCombat); c != nil {
		cb := c.(component.Combat)
		combatText = fmt.Sprintf("  POW:%d AC:%d", cb.Power, cb.ArmorClass())
	}
	plagueText := ""
	if w.Has(playerID, component.CPlague) {
		plagueText = "  ☣ plagued"
	}

	statusLine := fmt.Sprintf("%s%s  XP:%d  Depth: %d%s", hpText, combatText, xp, depth, plagueText)
	r.drawText(0, hudY+1, statusLine, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	// Message log (last 3 messages).
	start := len(messages) - 3
	if start < 0 {
		start = 0
	}
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col++
	}
}
