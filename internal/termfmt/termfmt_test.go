package termfmt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleWrapsValue(t *testing.T) {
	SetEnabled(true)
	t.Cleanup(func() { SetEnabled(true) })

	assert.Equal(t, "\x1b[1mhi\x1b[0m", Bold().Sprint("hi"))
	assert.Equal(t, "\x1b[31mred\x1b[0m", Fg(Red).Sprint("red"))
	assert.Equal(t, "\x1b[90mgrey\x1b[0m", Fg(DarkGrey).Sprint("grey"))
	assert.Equal(t, "\x1b[42mbg\x1b[0m", (Style{}).Bg(Green).Sprint("bg"))
}

func TestStyleHonoursVerbs(t *testing.T) {
	SetEnabled(false)
	t.Cleanup(func() { SetEnabled(true) })

	assert.Equal(t, "   42", fmt.Sprintf("%5d", Bold().V(42)))
	assert.Equal(t, "3.14", fmt.Sprintf("%.2f", Bold().V(3.14159)))
}

func TestDisabledStylesArePlain(t *testing.T) {
	SetEnabled(false)
	t.Cleanup(func() { SetEnabled(true) })

	assert.Equal(t, "done", Success.Sprint("done"))
	assert.Equal(t, "2 docs", Failure.Sprintf("%d docs", 2))
}

func TestUnprintableStripped(t *testing.T) {
	SetEnabled(false)
	t.Cleanup(func() { SetEnabled(true) })

	assert.Equal(t, "ab", Bold().Sprint("a\x1b\x07b"))
}

func TestDerivedStylesDoNotShareEscapes(t *testing.T) {
	SetEnabled(true)
	base := Bold()
	red := base.Fg(Red)
	green := base.Fg(Green)

	assert.Contains(t, red.Sprint("x"), "\x1b[31m")
	assert.NotContains(t, red.Sprint("x"), "\x1b[32m")
	assert.Contains(t, green.Sprint("x"), "\x1b[32m")
}
