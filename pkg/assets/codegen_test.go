package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamingComposition(t *testing.T) {
	n := Naming{Prefix: "2605", BrandFolder: "afx"}

	// Код всегда lowercase, ссылка сохраняет регистр stem
	assert.Equal(t, "2605_foo_bar_new_1k", n.ImageCode("Foo Bar"))
	assert.Equal(t, "afx/products/Foo Bar_new_1k.jpg", n.ImageLink("Foo Bar", FolderProducts))
	assert.Equal(t, "afx/media/Foo Bar_new_1k.jpg", n.ImageLink("Foo Bar", FolderMedia))

	assert.Equal(t, "2605_steps_specs", n.PDFCode("Steps"))
	assert.Equal(t, "afx/specsheets/Steps_new.pdf", n.PDFLink("Steps"))

	assert.Equal(t, "2605_brand_promo", n.VideoCode("Brand Promo"))
	assert.Equal(t, "afx/media/Brand Promo.mp4", n.VideoLink("Brand Promo.mp4"))

	assert.Equal(t, "2605_ABC-1", n.ProductReference("ABC-1"))
}
