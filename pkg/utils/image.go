// Package utils предоставляет утилиты для обработки изображений.
package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif" // Регистрируем GIF декодер
	"image/jpeg"
	_ "image/png" // Регистрируем PNG декодер

	"github.com/nfnt/resize"
)

// ResizeImage ресайзит изображение до указанной ширины, сохраняя пропорции.
//
// Параметры:
//   - data: байты исходного изображения (JPEG, PNG, GIF)
//   - maxWidth: целевая ширина в пикселях. Если 0 или меньше исходной ширины — ресайз не применяется.
//   - quality: качество JPEG при кодировании (1-100). Рекомендуется 85.
//
// Возвращает байты JPEG изображения (для Vision LLM и base64).
func ResizeImage(data []byte, maxWidth int, quality int) ([]byte, error) {
	// 1. Декодируем изображение
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	originalWidth := img.Bounds().Dx()

	// 2. Проверяем нужен ли ресайз
	if maxWidth <= 0 || originalWidth <= maxWidth {
		// Ресайз не нужен, но конвертируем в JPEG для консистентности
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode to jpeg: %w", err)
		}
		return buf.Bytes(), nil
	}

	// 3. Вычисляем новую высоту сохраняя aspect ratio
	aspectRatio := float64(img.Bounds().Dy()) / float64(originalWidth)
	newHeight := uint(float64(maxWidth) * aspectRatio)

	// 4. Lanczos3 — качественный алгоритм, артефактов почти нет
	resized := resize.Resize(uint(maxWidth), newHeight, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode resized image: %w", err)
	}

	return buf.Bytes(), nil
}

// DownsampleSquare уменьшает изображение до квадрата size x size
// без сохранения пропорций.
//
// Используется экстрактором сигналов классификатора: все пороги
// решающего списка откалиброваны на сетке 200x200.
func DownsampleSquare(img image.Image, size int) image.Image {
	return resize.Resize(uint(size), uint(size), img, resize.Lanczos3)
}

// ResizeWithPadding вписывает изображение в квадрат target x target
// с сохранением пропорций и добавляет поля цветом фона.
//
// Цвет полей определяется по углам исходной картинки: белые товарные
// фото остаются на белом, тонированные — на своём фоне.
//
// Возвращает байты JPEG.
func ResizeWithPadding(data []byte, target int, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty image %dx%d", w, h)
	}

	// 1. Масштаб: вписываем в target x target (thumbnail-семантика).
	// Мелкие картинки не растягиваем, только центрируем.
	scale := float64(target) / float64(w)
	if sh := float64(target) / float64(h); sh < scale {
		scale = sh
	}
	if scale > 1 {
		scale = 1
	}

	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	fitted := resize.Resize(uint(newW), uint(newH), img, resize.Lanczos3)

	// 2. Холст с цветом доминирующего фона
	canvas := image.NewRGBA(image.Rect(0, 0, target, target))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(DominantEdgeColor(img)), image.Point{}, draw.Src)

	// 3. Центрируем
	offset := image.Pt((target-newW)/2, (target-newH)/2)
	draw.Draw(canvas, image.Rect(0, 0, newW, newH).Add(offset), fitted, fitted.Bounds().Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode padded image: %w", err)
	}
	return buf.Bytes(), nil
}

// DominantEdgeColor возвращает самый частый цвет в четырёх углах изображения.
//
// Семплируются квадраты до 50px (но не больше 1/5 стороны).
// Для вырожденной картинки возвращается белый.
func DominantEdgeColor(img image.Image) color.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	corner := 50
	if w/5 < corner {
		corner = w / 5
	}
	if h/5 < corner {
		corner = h / 5
	}
	if corner < 1 {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}

	counts := make(map[color.RGBA]int)
	sample := func(x0, y0 int) {
		for y := y0; y < y0+corner; y++ {
			for x := x0; x < x0+corner; x++ {
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				c := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: 255}
				counts[c]++
			}
		}
	}

	sample(0, 0)
	sample(w-corner, 0)
	sample(0, h-corner)
	sample(w-corner, h-corner)

	best := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	bestN := 0
	for c, n := range counts {
		if n > bestN {
			best, bestN = c, n
		}
	}
	return best
}
