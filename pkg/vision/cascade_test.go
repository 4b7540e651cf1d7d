package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/assetgen/pkg/config"
	"github.com/ilkoid/assetgen/pkg/llm"
)

// --- хелперы ---

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// Товар на белом: белый холст с тёмным объектом в центре.
func productOnWhite() *image.RGBA {
	img := solidImage(200, 200, color.RGBA{255, 255, 255, 255})
	for y := 60; y < 140; y++ {
		for x := 60; x < 140; x++ {
			img.SetRGBA(x, y, color.RGBA{40, 40, 40, 255})
		}
	}
	return img
}

// Неуверенный случай: среднетёмные полосы, ни одно правило не срабатывает.
func ambiguousStripes() *image.RGBA {
	palette := []color.RGBA{
		{96, 96, 96, 255}, {128, 96, 96, 255}, {160, 96, 96, 255},
		{96, 128, 96, 255}, {96, 160, 96, 255}, {96, 96, 128, 255},
		{96, 96, 160, 255}, {128, 128, 128, 255},
	}
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			img.SetRGBA(x, y, palette[(x/25)%len(palette)])
		}
	}
	return img
}

type fakeProvider struct {
	answer string
	err    error
	calls  int
}

func (f *fakeProvider) Generate(_ context.Context, msgs []llm.Message) (llm.Message, error) {
	f.calls++
	if f.err != nil {
		return llm.Message{}, f.err
	}
	return llm.Message{Role: llm.RoleAssistant, Content: f.answer}, nil
}

type fakeFetcher struct {
	data  []byte
	ctype string
	err   error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) ([]byte, string, error) {
	return f.data, f.ctype, f.err
}

func newTestClassifier(p llm.Provider, f Fetcher) *Classifier {
	return New(p, f, config.VisionConfig{})
}

// --- нормализация меток ---

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		raw  string
		want Label
	}{
		{"main_product_image", LabelMain},
		{"Main Product", LabelMain},
		{"  lifestyle  ", LabelLifestyle},
		{"this is an infographic", LabelInformational},
		{"technical drawing with dimensions", LabelDimension},
		{"colour swatch", LabelSwatch},
		{"close-up", LabelDetail},
		{"что-то непонятное", LabelDetail},
		{"", LabelDetail},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeLabel(tc.raw), "raw=%q", tc.raw)
	}
}

// --- решающий список ---

func TestClassifySignals(t *testing.T) {
	cases := []struct {
		name     string
		s        Signals
		want     Label
		wantConf int
	}{
		{"swatch", Signals{UniqueColors: 2, GrayStd: 5, WhitePct: 10}, LabelSwatch, 90},
		{"main", Signals{LightPct: 80, CenterLight: 20, TextBlocks: 3, UniqueColors: 10, GrayStd: 60}, LabelMain, 88},
		{"dimension", Signals{LightPct: 90, CenterLight: 85, UniqueColors: 8, EdgePct: 9, TextBlocks: 15, GrayStd: 40}, LabelDimension, 75},
		{"informational", Signals{LightPct: 50, CenterLight: 50, TextBlocks: 50, UniqueColors: 40, GrayStd: 50}, LabelInformational, 82},
		{"lifestyle", Signals{LightPct: 10, UniqueColors: 30, GrayStd: 45, CenterLight: 50}, LabelLifestyle, 78},
		{"uncertain", Signals{LightPct: 40, UniqueColors: 10, GrayStd: 25, CenterLight: 50}, LabelDetail, 55},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			label, conf := ClassifySignals(tc.s)
			assert.Equal(t, tc.want, label)
			assert.Equal(t, tc.wantConf, conf)
		})
	}
}

// dimension проверяется раньше informational: размерный чертёж
// с текстовыми блоками не должен стать инфографикой.
func TestClassifySignalsDimensionBeforeInformational(t *testing.T) {
	s := Signals{LightPct: 85, UniqueColors: 10, EdgePct: 8, TextBlocks: 40, CenterLight: 80, GrayStd: 40}
	label, conf := ClassifySignals(s)
	assert.Equal(t, LabelDimension, label)
	assert.Equal(t, 75, conf)
}

// --- экстрактор сигналов ---

func TestExtractSignalsUniformWhite(t *testing.T) {
	s := ExtractSignals(solidImage(200, 200, color.RGBA{255, 255, 255, 255}))

	assert.InDelta(t, 100.0, s.WhitePct, 1.0)
	assert.InDelta(t, 100.0, s.LightPct, 1.0)
	assert.LessOrEqual(t, s.UniqueColors, 2)
	assert.Equal(t, 0, s.TextBlocks)
	assert.Less(t, s.GrayStd, 5.0)
}

func TestExtractSignalsProductOnWhite(t *testing.T) {
	s := ExtractSignals(productOnWhite())

	assert.Greater(t, s.LightPct, 55.0)
	assert.Less(t, s.CenterLight, 45.0)
	assert.Less(t, s.TextBlocks, 25)
	// Белый фон с тёмным объектом — высокий контраст
	assert.Greater(t, s.GrayStd, 20.0)
}

func TestExtractSignalsDownsamplesLargeImage(t *testing.T) {
	// Экстрактор обязан сам привести картинку к своей сетке
	s := ExtractSignals(solidImage(800, 600, color.RGBA{180, 30, 30, 255}))
	assert.LessOrEqual(t, s.UniqueColors, 4)
	assert.Less(t, s.GrayStd, 20.0)
}

// --- каскад: байты ---

func TestClassifyBytesSwatchByHeuristic(t *testing.T) {
	provider := &fakeProvider{answer: "lifestyle"}
	c := newTestClassifier(provider, nil)

	res := c.ClassifyBytes(context.Background(), encodePNG(t, solidImage(200, 200, color.RGBA{180, 30, 30, 255})))

	assert.Equal(t, LabelSwatch, res.Label)
	assert.Equal(t, 90, res.Confidence)
	assert.Equal(t, StageHeuristic, res.Stage)
	assert.Equal(t, 0, provider.calls, "уверенная эвристика не должна звать модель")
}

func TestClassifyBytesMainByHeuristic(t *testing.T) {
	c := newTestClassifier(nil, nil)

	res := c.ClassifyBytes(context.Background(), encodePNG(t, productOnWhite()))

	assert.Equal(t, LabelMain, res.Label)
	assert.Equal(t, 88, res.Confidence)
	assert.Equal(t, StageHeuristic, res.Stage)
	assert.Contains(t, res.Details, "light_pct")
}

func TestClassifyBytesEscalatesToModel(t *testing.T) {
	provider := &fakeProvider{answer: "Lifestyle"}
	c := newTestClassifier(provider, nil)

	res := c.ClassifyBytes(context.Background(), encodePNG(t, ambiguousStripes()))

	assert.Equal(t, LabelLifestyle, res.Label)
	assert.Equal(t, 92, res.Confidence)
	assert.Equal(t, StageExternal, res.Stage)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, "lifestyle", res.Details["raw_answer"])
}

func TestClassifyBytesWithoutProviderKeepsHeuristic(t *testing.T) {
	c := newTestClassifier(nil, nil)

	res := c.ClassifyBytes(context.Background(), encodePNG(t, ambiguousStripes()))

	assert.Equal(t, LabelDetail, res.Label)
	assert.Equal(t, 55, res.Confidence)
	assert.Equal(t, StageHeuristic, res.Stage)
}

func TestClassifyBytesModelFailure(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("api down")}
	c := newTestClassifier(provider, nil)

	res := c.ClassifyBytes(context.Background(), encodePNG(t, ambiguousStripes()))

	assert.Equal(t, LabelDetail, res.Label)
	assert.Equal(t, 0, res.Confidence)
	assert.Equal(t, StageError, res.Stage)
	assert.Contains(t, res.Details["error"], "api down")
}

func TestClassifyBytesBadData(t *testing.T) {
	c := newTestClassifier(nil, nil)

	res := c.ClassifyBytes(context.Background(), []byte("definitely not an image"))

	assert.Equal(t, LabelDetail, res.Label)
	assert.Equal(t, 0, res.Confidence)
	assert.Equal(t, StageError, res.Stage)
	assert.NotEmpty(t, res.Details["error"])
}

// --- каскад: ссылки ---

func TestClassifyRefVideoShortCircuit(t *testing.T) {
	// Fetcher nil: до скачивания дойти не должны
	c := newTestClassifier(nil, nil)

	for _, ref := range []string{
		"https://cdn.example.com/demo.mp4",
		"https://youtube.com/watch?v=abc123",
	} {
		res := c.ClassifyRef(context.Background(), ref)
		assert.Equal(t, LabelVideo, res.Label, "ref=%s", ref)
		assert.Equal(t, 95, res.Confidence)
		assert.Equal(t, StageHeuristic, res.Stage)
	}
}

func TestClassifyRefPDFByExtension(t *testing.T) {
	c := newTestClassifier(nil, nil)

	res := c.ClassifyRef(context.Background(), "https://cdn.example.com/specs/Sheet.PDF")

	assert.Equal(t, LabelSpecSheet, res.Label)
	assert.Equal(t, 95, res.Confidence)
	assert.Equal(t, StageHeuristic, res.Stage)
}

func TestClassifyRefPDFByContentType(t *testing.T) {
	c := newTestClassifier(nil, &fakeFetcher{data: []byte("%PDF-1.4"), ctype: "application/pdf"})

	res := c.ClassifyRef(context.Background(), "https://cdn.example.com/spec-sheet")

	assert.Equal(t, LabelSpecSheet, res.Label)
	assert.Equal(t, 95, res.Confidence)
}

func TestClassifyRefFetchError(t *testing.T) {
	c := newTestClassifier(nil, &fakeFetcher{err: fmt.Errorf("connection refused")})

	res := c.ClassifyRef(context.Background(), "https://unreachable.example.com/img.jpg")

	assert.Equal(t, LabelDetail, res.Label)
	assert.Equal(t, 0, res.Confidence)
	assert.Equal(t, StageError, res.Stage)
	assert.Contains(t, res.Details["error"], "connection refused")
	assert.Equal(t, "https://unreachable.example.com/img.jpg", res.Details["ref"])
}

func TestClassifyRefImage(t *testing.T) {
	data := encodePNG(t, solidImage(200, 200, color.RGBA{180, 30, 30, 255}))
	c := newTestClassifier(nil, &fakeFetcher{data: data, ctype: "image/png"})

	res := c.ClassifyRef(context.Background(), "https://cdn.example.com/swatch-red.png")

	assert.Equal(t, LabelSwatch, res.Label)
	assert.Equal(t, StageHeuristic, res.Stage)
}

// --- fetcher ---

type fakeHTTPClient struct {
	resp *http.Response
	err  error
}

func (f *fakeHTTPClient) Do(_ *http.Request) (*http.Response, error) {
	return f.resp, f.err
}

func TestHTTPFetcherOK(t *testing.T) {
	f := &HTTPFetcher{Client: &fakeHTTPClient{
		resp: &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"image/jpeg"}},
			Body:       io.NopCloser(bytes.NewReader([]byte("jpeg-bytes"))),
		},
	}}

	data, ctype, err := f.Fetch(context.Background(), "https://cdn.example.com/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
	assert.Equal(t, "image/jpeg", ctype)
}

func TestHTTPFetcherBadStatus(t *testing.T) {
	f := &HTTPFetcher{Client: &fakeHTTPClient{
		resp: &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(bytes.NewReader(nil)),
		},
	}}

	_, _, err := f.Fetch(context.Background(), "https://cdn.example.com/missing.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestRefFetcherLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.bin")
	require.NoError(t, os.WriteFile(path, []byte("local-bytes"), 0o644))

	f := &RefFetcher{HTTP: NewHTTPFetcher(0)}

	data, ctype, err := f.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []byte("local-bytes"), data)
	assert.Empty(t, ctype)
}

func TestRefFetcherS3NotConfigured(t *testing.T) {
	f := &RefFetcher{HTTP: NewHTTPFetcher(0)}

	_, _, err := f.Fetch(context.Background(), "s3://bucket/key.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
