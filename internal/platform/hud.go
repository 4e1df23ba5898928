package platform

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// HUD formats the status line with locale digit grouping.
type HUD struct {
	p *message.Printer
}

// NewHUD formats for the BCP 47 tag lang. Unparseable tags fall back to
// English.
func NewHUD(lang string) HUD {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return HUD{p: message.NewPrinter(tag)}
}

func (h HUD) Playing(score, level uint64) string {
	return h.p.Sprintf(" SCORE %d   WAVE %d", score, level)
}

func (h HUD) GameOver(score, level uint64) string {
	return h.p.Sprintf(" GAME OVER   SCORE %d   WAVE %d   [enter] exit", score, level)
}

// Summary is printed after the terminal is released.
func (h HUD) Summary(score, level uint64) string {
	return h.p.Sprintf("final score %d, reached wave %d", score, level)
}
