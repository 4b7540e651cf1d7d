package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/assetgen/pkg/columns"
	"github.com/ilkoid/assetgen/pkg/table"
)

var testNaming = Naming{Prefix: "2605", BrandFolder: "afx"}

func imageProfile(name, mediaType string) columns.Profile {
	return columns.Profile{Name: name, Role: columns.RoleImage, MediaType: mediaType, Confidence: 100}
}

func buildTable(cols []string, rows ...[]string) *table.SourceTable {
	return &table.SourceTable{Columns: cols, Rows: rows}
}

func TestBuildMainSlotScenario(t *testing.T) {
	// Сценарий из контракта: первая валидная картинка — main, вторая — media
	tbl := buildTable(
		[]string{"SKU", "Image File 1", "Lifestyle Image 1"},
		[]string{"ABC-1", "Foo Bar.JPG", "Room.png"},
	)
	profiles := []columns.Profile{
		imageProfile("Image File 1", "detail"),
		imageProfile("Lifestyle Image 1", "lifestyle"),
	}

	res, err := Build(tbl, profiles, Options{SKUColumn: "SKU", Naming: testNaming, HeaderRow: 1})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	main := res.Records[0]
	assert.Equal(t, "2605_foo_bar_new_1k", main.Code)
	assert.Equal(t, "2605_foo_bar_new_1k", main.Label)
	assert.Equal(t, "2605_ABC-1", main.ProductReference)
	assert.Equal(t, "afx/products/Foo Bar_new_1k.jpg", main.ImageLink)
	assert.Equal(t, FamilyMain, main.Family)
	assert.Equal(t, "", main.MediaType)

	media := res.Records[1]
	assert.Equal(t, FamilyMedia, media.Family)
	assert.Equal(t, "lifestyle", media.MediaType)
	assert.Equal(t, "afx/media/Room_new_1k.jpg", media.ImageLink)
}

func TestBuildExactlyOneMainPerRow(t *testing.T) {
	tbl := buildTable(
		[]string{"SKU", "Img 1", "Img 2", "Img 3"},
		[]string{"A1", "a.jpg", "b.jpg", "c.jpg"},
		[]string{"A2", "", "d.jpg", "e.jpg"},
	)
	profiles := []columns.Profile{
		imageProfile("Img 1", ""), imageProfile("Img 2", ""), imageProfile("Img 3", ""),
	}

	res, err := Build(tbl, profiles, Options{SKUColumn: "SKU", Naming: testNaming})
	require.NoError(t, err)

	mains := 0
	for _, rec := range res.Records {
		if rec.Family == FamilyMain {
			mains++
		}
	}
	// По одному main на строку с хотя бы одной валидной картинкой,
	// даже когда первая колонка строки пуста
	assert.Equal(t, 2, mains)
	assert.Equal(t, FamilyMain, res.Records[3].Family, "row 2: main from Img 2")
	assert.Equal(t, 5, len(res.Records))
}

func TestBuildInstallSheet(t *testing.T) {
	tbl := buildTable(
		[]string{"SKU", "Installation/Assembly Image 1", "Spec Sheet Image"},
		[]string{"ABC-1", "Steps.pdf", "Data.pdf"},
	)
	profiles := []columns.Profile{
		{Name: "Installation/Assembly Image 1", Role: columns.RolePDF},
		{Name: "Spec Sheet Image", Role: columns.RolePDF},
	}

	res, err := Build(tbl, profiles, Options{SKUColumn: "SKU", Naming: testNaming})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	install := res.Records[0]
	assert.Equal(t, FamilyInstallSheet, install.Family)
	assert.True(t, strings.HasSuffix(install.Code, "_specs"), install.Code)
	assert.True(t, strings.HasSuffix(install.ImageLink, "Steps_new.pdf"), install.ImageLink)
	assert.Equal(t, "", install.MediaType)

	assert.Equal(t, FamilySpecSheet, res.Records[1].Family)
}

func TestBuildVideoVerbatimLink(t *testing.T) {
	tbl := buildTable(
		[]string{"SKU", "Video 1"},
		[]string{"ABC-1", "Brand Promo.MP4"},
	)
	profiles := []columns.Profile{{Name: "Video 1", Role: columns.RoleVideo}}

	res, err := Build(tbl, profiles, Options{SKUColumn: "SKU", Naming: testNaming})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	rec := res.Records[0]
	assert.Equal(t, "2605_brand_promo", rec.Code, "no suffix for video")
	assert.Equal(t, "afx/media/Brand Promo.MP4", rec.ImageLink, "filename kept verbatim")
	assert.Equal(t, FamilyMedia, rec.Family)
	assert.Equal(t, "detail", rec.MediaType)
}

func TestBuildRowRejections(t *testing.T) {
	tbl := buildTable(
		[]string{"SKU", "Image File 1"},
		[]string{"", "a.jpg"},      // пустой SKU
		[]string{"DUP", "b.jpg"},   //
		[]string{"DUP", "c.jpg"},   // дубликат SKU
		[]string{"OK", "d.jpg"},
	)
	profiles := []columns.Profile{imageProfile("Image File 1", "")}

	res, err := Build(tbl, profiles, Options{SKUColumn: "SKU", Naming: testNaming, HeaderRow: 1})
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	require.Len(t, res.Report.SkippedRows, 2)
	assert.Equal(t, "Row 2: empty SKU", res.Report.SkippedRows[0])
	assert.Contains(t, res.Report.SkippedRows[1], "Row 4")
	assert.Contains(t, res.Report.SkippedRows[1], "duplicate SKU 'DUP'")
}

func TestBuildDuplicateCodeDropped(t *testing.T) {
	// Одинаковое имя файла в двух строках -> одинаковый код
	tbl := buildTable(
		[]string{"SKU", "Image File 1"},
		[]string{"A1", "shared.jpg"},
		[]string{"A2", "shared.jpg"},
	)
	profiles := []columns.Profile{imageProfile("Image File 1", "")}

	res, err := Build(tbl, profiles, Options{SKUColumn: "SKU", Naming: testNaming})
	require.NoError(t, err)

	require.Len(t, res.Records, 1, "first occurrence wins")
	assert.Equal(t, "A1", strings.TrimPrefix(res.Records[0].ProductReference, "2605_"))
	require.Len(t, res.Report.DuplicateCodes, 1)
	assert.Contains(t, res.Report.DuplicateCodes[0], "2605_shared_new_1k")
}

func TestBuildCellNoise(t *testing.T) {
	tbl := buildTable(
		[]string{"SKU", "Image File 1", "Image File 2", "Spec Sheet Image"},
		[]string{"A1", "clip.mp4", "real.jpg", "photo.jpg"},
	)
	profiles := []columns.Profile{
		imageProfile("Image File 1", ""),
		imageProfile("Image File 2", ""),
		{Name: "Spec Sheet Image", Role: columns.RolePDF},
	}

	res, err := Build(tbl, profiles, Options{SKUColumn: "SKU", Naming: testNaming})
	require.NoError(t, err)

	// Видео в картиночной колонке не продвигается в запись, а флагуется;
	// jpg в pdf колонке скипается молча
	require.Len(t, res.Records, 1)
	assert.Equal(t, FamilyMain, res.Records[0].Family)
	assert.Equal(t, "2605_real_new_1k", res.Records[0].Code)

	require.Len(t, res.Report.FlaggedCells, 1)
	assert.Contains(t, res.Report.FlaggedCells[0], "video marker in image column")
}

func TestBuildConfigErrors(t *testing.T) {
	tbl := buildTable([]string{"SKU", "Image File 1"}, []string{"A", "a.jpg"})
	profiles := []columns.Profile{imageProfile("Image File 1", "")}

	_, err := Build(tbl, profiles, Options{SKUColumn: "Missing", Naming: testNaming})
	require.Error(t, err)

	_, err = Build(tbl, profiles, Options{SKUColumn: "SKU", Naming: Naming{Prefix: "", BrandFolder: "afx"}})
	require.Error(t, err)

	_, err = Build(tbl, profiles, Options{SKUColumn: "SKU", Naming: Naming{Prefix: "2605", BrandFolder: "Bad Folder"}})
	require.Error(t, err)
}

func TestBuildDeterminism(t *testing.T) {
	tbl := buildTable(
		[]string{"SKU", "Image File 1", "Video 1"},
		[]string{"A1", "a.jpg", "v.mp4"},
		[]string{"A2", "b.jpg", ""},
	)
	profiles := []columns.Profile{
		imageProfile("Image File 1", ""),
		{Name: "Video 1", Role: columns.RoleVideo},
	}
	opts := Options{SKUColumn: "SKU", Naming: testNaming}

	first, err := Build(tbl, profiles, opts)
	require.NoError(t, err)
	second, err := Build(tbl, profiles, opts)
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
}

func TestBuildSKUColumnCaseInsensitive(t *testing.T) {
	tbl := buildTable([]string{"Sku", "Image File 1"}, []string{"A", "a.jpg"})
	profiles := []columns.Profile{imageProfile("Image File 1", "")}

	res, err := Build(tbl, profiles, Options{SKUColumn: "SKU", Naming: testNaming})
	require.NoError(t, err)
	assert.Len(t, res.Records, 1)
}

func TestReportTruncation(t *testing.T) {
	r := NewReport("2605", "afx", "SKU")
	for i := 0; i < 30; i++ {
		r.SkipRow(i+2, "empty SKU")
	}

	text := r.Render()
	assert.Contains(t, text, "Skipped rows (30):")
	assert.Contains(t, text, "... and 10 more")
	assert.Equal(t, listCap, strings.Count(text, "empty SKU"))
}
