package thumbnail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRender(t *testing.T) {
	art, err := Render(testPNG(t), 6, 3)
	require.NoError(t, err)

	lines := strings.Split(art, "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 6, lipgloss.Width(line))
	}
}

func TestRenderUnsupported(t *testing.T) {
	_, err := Render([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), 4, 2)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Render([]byte("not an image"), 4, 2)
	assert.ErrorIs(t, err, ErrUnsupported)
}

// pngHeader returns a PNG signature and IHDR chunk declaring w x h pixels, with no image data
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8  // bit depth
	ihdr[9] = 6  // RGBA
	ihdr[10] = 0 // compression
	ihdr[11] = 0 // filter
	ihdr[12] = 0 // interlace

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestRenderRejectsOversizedImages(t *testing.T) {
	_, err := Render(pngHeader(40000, 40000), 4, 2)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Render(pngHeader(maxImageSide+1, 10), 4, 2)
	assert.ErrorIs(t, err, ErrUnsupported)

	// within the limit the header passes and decoding fails on the missing data
	_, err = Render(pngHeader(16, 16), 4, 2)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupported)
}

func TestFetch(t *testing.T) {
	pngData := testPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/img.png", "/ipfs/QmHash/1.png":
			_, _ = w.Write(pngData)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	l := NewLoader(server.Client(), server.URL+"/ipfs", 4, 2)
	ctx := context.Background()

	tests := []struct {
		name    string
		uri     string
		want    []byte
		wantErr bool
	}{
		{name: "http", uri: server.URL + "/img.png", want: pngData},
		{name: "ipfs", uri: "ipfs://QmHash/1.png", want: pngData},
		{name: "ipfs with path prefix", uri: "ipfs://ipfs/QmHash/1.png", want: pngData},
		{name: "data uri base64", uri: "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData), want: pngData},
		{name: "data uri plain", uri: "data:text/plain,hello", want: []byte("hello")},
		{name: "data uri no data", uri: "data:image/png;base64,", wantErr: true},
		{name: "not found", uri: server.URL + "/missing.png", wantErr: true},
		{name: "unsupported scheme", uri: "ar://tx", wantErr: true},
		{name: "empty", uri: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Fetch(ctx, tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadAllTracksFailuresPerToken(t *testing.T) {
	pngData := testPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok.png" {
			_, _ = w.Write(pngData)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	l := NewLoader(server.Client(), "", 4, 2)
	results := l.LoadAll(context.Background(), []Request{
		{TokenID: "1", URL: server.URL + "/ok.png"},
		{TokenID: "2", URL: server.URL + "/broken.png"},
		{TokenID: "3", URL: "data:image/svg+xml;utf8,<svg></svg>"},
	})
	require.Len(t, results, 3)

	byID := map[string]Result{}
	for _, r := range results {
		byID[r.TokenID] = r
	}
	assert.NoError(t, byID["1"].Err)
	assert.NotEmpty(t, byID["1"].Art)
	assert.Error(t, byID["2"].Err)
	assert.ErrorIs(t, byID["3"].Err, ErrUnsupported)

	assert.Nil(t, l.LoadAll(context.Background(), nil))
}
