package tui_test

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/tsbuild/internal/adapters/tui"
)

func fill(vt *tui.Vterm, n int) {
	for i := 1; i <= n; i++ {
		vt.WriteLine(fmt.Sprintf("line %d", i))
	}
}

func TestVterm_FollowsOutputAtBottom(t *testing.T) {
	t.Parallel()

	vt := tui.NewVterm()
	vt.SetWidth(40)
	vt.SetHeight(3)
	fill(vt, 10)

	assert.Equal(t, vt.MaxOffset(), vt.Offset)
	assert.True(t, vt.AtBottom())
	assert.Contains(t, vt.View(), "line 10")
	assert.NotContains(t, vt.View(), "line 1\n")
}

func TestVterm_StaysScrolledWhenNotAtBottom(t *testing.T) {
	t.Parallel()

	vt := tui.NewVterm()
	vt.SetWidth(40)
	vt.SetHeight(3)
	fill(vt, 10)

	vt.Scroll(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 0, vt.Offset)

	vt.WriteLine("more")
	assert.Equal(t, 0, vt.Offset)
	assert.False(t, vt.AtBottom())
	assert.Contains(t, vt.View(), "line 1")
	assert.NotContains(t, vt.View(), "line 10")
}

func TestVterm_ScrollToBottom(t *testing.T) {
	t.Parallel()

	vt := tui.NewVterm()
	vt.SetWidth(40)
	vt.SetHeight(2)
	fill(vt, 8)

	vt.Scroll(tea.KeyMsg{Type: tea.KeyHome})
	vt.ScrollToBottom()

	assert.Equal(t, vt.MaxOffset(), vt.Offset)
	assert.True(t, vt.AtBottom())
}

func TestVterm_ScrollClamps(t *testing.T) {
	t.Parallel()

	vt := tui.NewVterm()
	vt.SetWidth(40)
	vt.SetHeight(4)
	fill(vt, 6)

	vt.Scroll(tea.KeyMsg{Type: tea.KeyHome})
	vt.Scroll(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, vt.Offset)

	vt.Scroll(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, min(1, vt.MaxOffset()), vt.Offset)

	vt.Scroll(tea.KeyMsg{Type: tea.KeyPgDown})
	vt.Scroll(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, vt.MaxOffset(), vt.Offset)
}

func TestVterm_SetHeight(t *testing.T) {
	t.Parallel()

	vt := tui.NewVterm()
	vt.SetWidth(40)
	fill(vt, 10)

	vt.Offset = vt.MaxOffset()
	vt.SetHeight(5)
	assert.Equal(t, 5, vt.Height)
	assert.Equal(t, vt.MaxOffset(), vt.Offset)

	vt.Offset = 0
	vt.SetHeight(2)
	assert.Equal(t, 0, vt.Offset)

	vt.SetHeight(0)
	assert.Equal(t, 1, vt.Height)
}
