package app

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/assetgen/internal/ui"
	"github.com/ilkoid/assetgen/pkg/columns"
	"github.com/ilkoid/assetgen/pkg/config"
	"github.com/ilkoid/assetgen/pkg/mfg"
	"github.com/ilkoid/assetgen/pkg/table"
	"github.com/ilkoid/assetgen/pkg/vision"
)

func boolPtr(b bool) *bool { return &b }

func writeWorkbook(t *testing.T, header []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vendor.xlsx")
	require.NoError(t, table.WriteSheet(path, "Sheet1", header, rows))
	return path
}

// --- перекрытия конфига ---

func TestApplyColumnRulesDropAndRetype(t *testing.T) {
	tbl := &table.SourceTable{
		Columns: []string{"Image 1", "Docs", "Mystery"},
		Rows: [][]string{
			{"a.jpg", "spec.pdf", "file.jpg"},
		},
	}
	profiles := []columns.Profile{
		{Name: "Image 1", Role: columns.RoleImage, Confidence: 90},
		{Name: "Docs", Role: columns.RolePDF, Confidence: 80},
	}

	rules := map[string]config.ColumnRule{
		"Docs":    {Keep: boolPtr(false)},
		"Image 1": {MediaType: "lifestyle"},
		"Mystery": {Role: "image", MediaType: "angle"},
	}

	out := applyColumnRules(profiles, tbl, rules)

	require.Len(t, out, 2)
	assert.Equal(t, "Image 1", out[0].Name)
	assert.Equal(t, "lifestyle", out[0].MediaType)

	// Колонка добавлена конфигом: роль принудительная, семплы из таблицы
	assert.Equal(t, "Mystery", out[1].Name)
	assert.Equal(t, columns.RoleImage, out[1].Role)
	assert.Equal(t, 100, out[1].Confidence)
	assert.Equal(t, []string{"file.jpg"}, out[1].Samples)
}

func TestApplyColumnRulesUnknownColumnIgnored(t *testing.T) {
	tbl := &table.SourceTable{Columns: []string{"Image 1"}, Rows: [][]string{{"a.jpg"}}}
	profiles := []columns.Profile{{Name: "Image 1", Role: columns.RoleImage}}

	out := applyColumnRules(profiles, tbl, map[string]config.ColumnRule{
		"Нет такой": {Role: "pdf"},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "Image 1", out[0].Name)
}

// --- решения оператора ---

func TestApplyConfirmation(t *testing.T) {
	profiles := []columns.Profile{
		{Name: "Image 1", Role: columns.RoleImage, MediaType: ""},
		{Name: "Image 2", Role: columns.RoleImage, MediaType: "lifestyle"},
		{Name: "Docs", Role: columns.RolePDF},
	}

	out := applyConfirmation(profiles, ui.Confirmation{
		Accepted:  true,
		SKUColumn: "SKU",
		Columns: []ui.ColumnChoice{
			{Name: "Image 1", Keep: true, MediaType: "swatch"},
			{Name: "Image 2", Keep: false},
			{Name: "Docs", Keep: true},
		},
	})

	require.Len(t, out, 2)
	assert.Equal(t, "Image 1", out[0].Name)
	assert.Equal(t, "swatch", out[0].MediaType)
	assert.Equal(t, "Docs", out[1].Name)
}

func TestKeepConfirmed(t *testing.T) {
	out := keepConfirmed([]columns.Profile{
		{Name: "Image 1", Role: columns.RoleImage},
		{Name: "Notes", Role: columns.RoleNone},
		{Name: "Video", Role: columns.RoleVideo},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "Image 1", out[0].Name)
	assert.Equal(t, "Video", out[1].Name)
}

// --- нейминг ---

func TestResolveNamingPrecedence(t *testing.T) {
	p := &Pipeline{
		cfg: &config.AppConfig{
			Naming: config.NamingConfig{Prefix: "999", BrandFolder: "cfgbrand"},
		},
		registry: mfg.Empty(),
	}

	// Флаги сильнее конфига
	n, err := p.resolveNaming(RunOptions{Prefix: "2605", BrandFolder: "afx"})
	require.NoError(t, err)
	assert.Equal(t, "2605", n.Prefix)
	assert.Equal(t, "afx", n.BrandFolder)

	// Без флагов — конфиг
	n, err = p.resolveNaming(RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, "999", n.Prefix)
	assert.Equal(t, "cfgbrand", n.BrandFolder)
}

func TestResolveNamingVendorFallback(t *testing.T) {
	p := &Pipeline{cfg: &config.AppConfig{}, registry: mfg.Empty()}

	// Префикса нет нигде — ошибка
	_, err := p.resolveNaming(RunOptions{Vendor: "AFX Lighting"})
	require.Error(t, err)

	// С префиксом папка выводится из имени вендора
	n, err := p.resolveNaming(RunOptions{Vendor: "AFX Lighting", Prefix: "2605"})
	require.NoError(t, err)
	assert.Equal(t, "afxlighting", n.BrandFolder)
}

// --- vision обогащение ---

func TestMediaTypeForLabel(t *testing.T) {
	assert.Equal(t, "lifestyle", mediaTypeForLabel(vision.LabelLifestyle))
	assert.Equal(t, "swatch", mediaTypeForLabel(vision.LabelSwatch))
	assert.Equal(t, "", mediaTypeForLabel(vision.LabelMain))
	assert.Equal(t, "", mediaTypeForLabel(vision.LabelVideo))
}

func TestEnrichMediaTypesFromURLPair(t *testing.T) {
	// Семпл — однотонный свотч, эвристика уверена без модели
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			img.SetRGBA(x, y, color.RGBA{180, 30, 30, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	samplePath := filepath.Join(t.TempDir(), "sample.png")
	require.NoError(t, os.WriteFile(samplePath, buf.Bytes(), 0o644))

	tbl := &table.SourceTable{
		Columns: []string{"Image 1", "Image 1 URL"},
		Rows:    [][]string{{"sample.png", samplePath}},
	}
	profiles := []columns.Profile{
		{Name: "Image 1", Role: columns.RoleImage, MediaType: ""},
	}

	p := &Pipeline{
		cfg:        &config.AppConfig{},
		registry:   mfg.Empty(),
		classifier: vision.New(nil, &vision.RefFetcher{HTTP: vision.NewHTTPFetcher(0)}, config.VisionConfig{}),
	}
	p.enrichMediaTypes(context.Background(), tbl, profiles)

	assert.Equal(t, "swatch", profiles[0].MediaType)
}

func TestEnrichMediaTypesKeepsNamedType(t *testing.T) {
	p := &Pipeline{
		cfg:        &config.AppConfig{},
		registry:   mfg.Empty(),
		classifier: vision.New(nil, &vision.RefFetcher{HTTP: vision.NewHTTPFetcher(0)}, config.VisionConfig{}),
	}

	tbl := &table.SourceTable{Columns: []string{"Lifestyle Shot"}, Rows: [][]string{{"a.jpg"}}}
	profiles := []columns.Profile{
		{Name: "Lifestyle Shot", Role: columns.RoleImage, MediaType: "lifestyle"},
	}
	p.enrichMediaTypes(context.Background(), tbl, profiles)

	assert.Equal(t, "lifestyle", profiles[0].MediaType)
}

// --- полный прогон ---

func TestRunEndToEnd(t *testing.T) {
	input := writeWorkbook(t,
		[]string{"SKU", "Image 1", "Image 2", "Spec Sheet"},
		[][]string{
			{"FOO-1", "Foo Main.jpg", "foo-angle.jpg", "foo specs.pdf"},
			{"", "orphan.jpg", "", ""},
			{"FOO-2", "bar.jpg", "", ""},
		})

	outDir := t.TempDir()
	output := filepath.Join(outDir, "assets.xlsx")

	p := &Pipeline{
		cfg:      &config.AppConfig{},
		registry: mfg.Empty(),
		confirm: func(profiles []columns.Profile, skuOptions []string, skuCurrent string) (ui.Confirmation, error) {
			t.Fatal("confirm не должен вызываться при -yes")
			return ui.Confirmation{}, nil
		},
	}

	result, err := p.Run(context.Background(), RunOptions{
		InputPath:   input,
		OutputPath:  output,
		HeaderRow:   1,
		Prefix:      "2605",
		BrandFolder: "afx",
		Yes:         true,
	})
	require.NoError(t, err)

	// FOO-1: main + media + spec, FOO-2: main; строка без SKU пропущена
	assert.Equal(t, 4, len(result.Records))
	assert.Equal(t, 1, len(result.Report.SkippedRows))

	// Выходная книга читается обратно
	got, err := table.ReadTable(output, outputSheet, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, got.RowCount())
	assert.Equal(t, "code", got.Columns[0])

	// Лог записан рядом
	logData, err := os.ReadFile(output + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(logData), "=== SUMMARY ===")
}

func TestRunCancelled(t *testing.T) {
	input := writeWorkbook(t,
		[]string{"SKU", "Image 1"},
		[][]string{{"FOO-1", "foo.jpg"}})

	p := &Pipeline{
		cfg:      &config.AppConfig{},
		registry: mfg.Empty(),
		confirm: func(profiles []columns.Profile, skuOptions []string, skuCurrent string) (ui.Confirmation, error) {
			return ui.Confirmation{Accepted: false}, nil
		},
	}

	_, err := p.Run(context.Background(), RunOptions{
		InputPath:   input,
		OutputPath:  filepath.Join(t.TempDir(), "out.xlsx"),
		HeaderRow:   1,
		Prefix:      "2605",
		BrandFolder: "afx",
	})
	require.ErrorIs(t, err, ErrCancelled)
}
