package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-dungeon/internal/core"
)

func TestRenderScreenKeepsGlyphs(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '@', core.ColorBrightYellow)
	s.SetColored(3, 0, '▒', core.ColorBrown)
	s.SetColored(0, 1, '·', core.ColorDarkGray)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	for _, r := range []string{"ab", "@", "▒", "·"} {
		assert.Contains(t, out, r)
	}
}

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorBrown; c++ {
		_, ok := colorStyles[c]
		assert.True(t, ok, "color %d has no style", c)
	}
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "   abcd", centerText("abcd", 10))
	assert.Equal(t, "toolong", centerText("toolong", 4))
	assert.Equal(t, "  ·", centerText("·", 5))
}

func TestOverlayBottom(t *testing.T) {
	got := overlayBottom("1\n2\n3\n4\n", "x\ny")
	assert.Equal(t, "1\n2\nx\ny", got)
}
