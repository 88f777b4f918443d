package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/adtkit/adt/builder"
)

// TestHelper drives a Model the way the bubbletea runtime would, without
// executing commands.
type TestHelper struct {
	model  Model
	copied []string
}

func testBlob(t *testing.T) []byte {
	t.Helper()
	b := builder.New("device-tree")
	b.SetBytes(nil, "serial-number", []byte{1, 2, 3, 4})
	b.SetString([]string{"chosen"}, "firmware-version", "iBoot-1234")
	b.SetU32([]string{"arm-io", "uart0"}, "reg", 0x200)
	b.SetU32([]string{"arm-io", "uart1"}, "reg", 0x300)
	blob, err := b.Bytes()
	require.NoError(t, err)
	return blob
}

func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	h := &TestHelper{}
	h.model = NewModel("DeviceTree.bin", testBlob(t))
	h.model.copyText = func(s string) error {
		h.copied = append(h.copied, s)
		return nil
	}
	require.NoError(t, h.model.err)
	return h.SendWindowSize(120, 40)
}

func (h *TestHelper) Send(msg tea.Msg) *TestHelper {
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	return h.Send(tea.KeyMsg{Type: keyType})
}

func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	return h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (h *TestHelper) Type(s string) *TestHelper {
	for _, r := range s {
		h.SendKeyRune(r)
	}
	return h
}

func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	return h.Send(tea.WindowSizeMsg{Width: width, Height: height})
}

func (h *TestHelper) CurrentPath() string {
	if it := h.model.currentItem(); it != nil {
		return it.Path
	}
	return ""
}
