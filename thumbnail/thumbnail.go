// Package thumbnail turns token images into small half-block text renderings.
package thumbnail

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"
)

const (
	dataURISchema = "data:"
	ipfsSchema    = "ipfs://"

	DefaultGateway = "https://ipfs.io/ipfs"
	DefaultWidth   = 14
	DefaultHeight  = 7

	maxImageBytes = 8 << 20
	// decoded images are capped at this many pixels per side
	maxImageSide = 4096
)

// ErrUnsupported is returned for content that is not a decodable raster image
var ErrUnsupported = errors.New("unsupported image type")

// Loader fetches and renders token images
type Loader struct {
	client  *http.Client
	gateway string
	timeout time.Duration
	width   int
	height  int
	workers int
}

// NewLoader creates a loader rendering width x height cells
func NewLoader(client *http.Client, gateway string, width, height int) *Loader {
	if client == nil {
		client = &http.Client{}
	}
	if gateway == "" {
		gateway = DefaultGateway
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Loader{
		client:  client,
		gateway: strings.TrimRight(gateway, "/"),
		timeout: 10 * time.Second,
		width:   width,
		height:  height,
		workers: 4,
	}
}

// Fetch reads an http(s), ipfs:// or data: URI
func (l *Loader) Fetch(ctx context.Context, uri string) ([]byte, error) {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return nil, xerrors.Errorf("empty image uri")
	case strings.HasPrefix(uri, dataURISchema):
		return readDataURI(uri)
	case strings.HasPrefix(uri, ipfsSchema):
		path := strings.TrimPrefix(strings.TrimPrefix(uri, ipfsSchema), "ipfs/")
		return l.get(ctx, l.gateway+"/"+path)
	default:
		u, err := url.Parse(uri)
		if err != nil {
			return nil, xerrors.Errorf("parse image uri: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, xerrors.Errorf("unsupported scheme %q", u.Scheme)
		}
		return l.get(ctx, uri)
	}
}

func (l *Loader) get(ctx context.Context, uri string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("get image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.Errorf("resp.StatusCode %d != 200", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, xerrors.Errorf("read image body: %w", err)
	}
	return body, nil
}

// readDataURI decodes data:[<mediatype>][;base64],<data>
func readDataURI(uri string) ([]byte, error) {
	parts := strings.SplitN(strings.TrimPrefix(uri, dataURISchema), ",", 2)
	if len(parts) < 2 || len(parts[1]) == 0 {
		return nil, xerrors.Errorf("no data part provided")
	}
	if strings.HasSuffix(parts[0], ";base64") {
		return base64.StdEncoding.DecodeString(parts[1])
	}
	return []byte(parts[1]), nil
}

// Render draws data as width x height cells of upper half blocks, two pixels per cell
func Render(data []byte, width, height int) (string, error) {
	mtype := mimetype.Detect(data)
	if !mtype.Is("image/png") && !mtype.Is("image/jpeg") && !mtype.Is("image/gif") {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, mtype.String())
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", xerrors.Errorf("decode %s header: %w", mtype.String(), err)
	}
	if cfg.Width > maxImageSide || cfg.Height > maxImageSide {
		return "", fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrUnsupported, cfg.Width, cfg.Height, maxImageSide, maxImageSide)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", xerrors.Errorf("decode %s: %w", mtype.String(), err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return "", xerrors.Errorf("empty image")
	}

	pxH := height * 2
	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			x := b.Min.X + col*b.Dx()/width
			yTop := b.Min.Y + (row*2)*b.Dy()/pxH
			yBot := b.Min.Y + (row*2+1)*b.Dy()/pxH
			top, _ := colorful.MakeColor(img.At(x, yTop))
			bot, _ := colorful.MakeColor(img.At(x, yBot))
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top.Hex())).
				Background(lipgloss.Color(bot.Hex())).
				Render("▀"))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// Load fetches and renders one image
func (l *Loader) Load(ctx context.Context, uri string) (string, error) {
	data, err := l.Fetch(ctx, uri)
	if err != nil {
		return "", err
	}
	return Render(data, l.width, l.height)
}

// Request names one image to load
type Request struct {
	TokenID string
	URL     string
}

// Result is the outcome for one token; Err non-nil means show the placeholder
type Result struct {
	TokenID string
	Art     string
	Err     error
}

// LoadAll loads every request through a bounded worker batch. Results come
// back in completion order.
func (l *Loader) LoadAll(ctx context.Context, reqs []Request) []Result {
	if len(reqs) == 0 {
		return nil
	}

	b := goroutines.NewBatch(l.workers, goroutines.WithBatchSize(len(reqs)))
	defer b.Close()

	for i := range reqs {
		req := reqs[i]
		b.Queue(func() (interface{}, error) {
			art, err := l.Load(ctx, req.URL)
			return Result{TokenID: req.TokenID, Art: art, Err: err}, nil
		})
	}
	b.QueueComplete()

	out := make([]Result, 0, len(reqs))
	for ret := range b.Results() {
		if ret.Error() != nil {
			continue
		}
		out = append(out, ret.Value().(Result))
	}
	return out
}
