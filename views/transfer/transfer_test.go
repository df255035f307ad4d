package transfer

import (
	"testing"

	"cellar-transfer-tui/indexer"
	"cellar-transfer-tui/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		n, cursor, size int
		start, end      int
	}{
		{n: 3, cursor: 0, size: 0, start: 0, end: 3},
		{n: 3, cursor: 2, size: 5, start: 0, end: 3},
		{n: 10, cursor: 0, size: 3, start: 0, end: 3},
		{n: 10, cursor: 5, size: 3, start: 4, end: 7},
		{n: 10, cursor: 9, size: 3, start: 7, end: 10},
	}
	for _, tt := range tests {
		start, end := Window(tt.n, tt.cursor, tt.size)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
		assert.True(t, tt.n == 0 || (tt.cursor >= start && tt.cursor < end))
	}
}

func TestRenderSteps(t *testing.T) {
	w := wizard.New(false)
	p := Params{
		Wizard:         w,
		Inputs:         map[wizard.Field]string{},
		DestinationURL: "https://intercellar.io",
		Width:          100,
	}

	out := Render(p)
	assert.Contains(t, out, "Step 1 of 4")
	assert.Contains(t, out, wizard.StepIdentity.Title())
	assert.Contains(t, out, "Cancel")
	assert.Contains(t, out, "Continue")

	_, err := w.Continue()
	require.Error(t, err)
	out = Render(p)
	assert.Contains(t, out, "First name is required")

	w.SetField(wizard.FieldFirstName, "Lucas")
	w.SetField(wizard.FieldLastName, "InterCellar")
	w.SetField(wizard.FieldEthereumWallet, "0x1111111111111111111111111111111111111111")
	req, err := w.Continue()
	require.NoError(t, err)
	assert.Contains(t, Render(p), "Loading")

	require.True(t, w.FetchSucceeded(req.Generation, nil))
	out = Render(p)
	assert.Contains(t, out, "Previous")
	assert.Contains(t, out, "No NFTs Found")
}

func TestRenderConfirmation(t *testing.T) {
	w := wizard.New(false)
	w.SetField(wizard.FieldFirstName, "Lucas")
	w.SetField(wizard.FieldLastName, "InterCellar")
	w.SetField(wizard.FieldEthereumWallet, "0x1111111111111111111111111111111111111111")
	req, err := w.Continue()
	require.NoError(t, err)
	require.True(t, w.FetchSucceeded(req.Generation, []indexer.OwnedToken{{TokenID: "1", Balance: 1}}))
	_, err = w.Continue()
	require.NoError(t, err)
	w.SetField(wizard.FieldPolygonWallet, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	_, err = w.Continue()
	require.NoError(t, err)
	require.Equal(t, wizard.StepConfirmation, w.Step())

	out := Render(Params{Wizard: w, Width: 100, DestinationURL: "https://intercellar.io", QR: "QRCODE"})
	assert.Contains(t, out, "Step 4 of 4")
	assert.Contains(t, out, "Close")
	assert.Contains(t, out, "Visit InterCellar.io")
	assert.Contains(t, out, w.RequestID())
	assert.Contains(t, out, "QRCODE")
	assert.NotContains(t, out, "Previous")
	assert.NotContains(t, out, "Cancel")
}
