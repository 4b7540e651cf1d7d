package vision

import (
	"image"
	"math"

	"github.com/ilkoid/assetgen/pkg/utils"
)

// Сетка экстрактора. Все пороги решающего списка откалиброваны
// на 200x200, менять без перекалибровки нельзя.
const signalGrid = 200

// Signals — семь числовых сигналов, извлечённых из картинки.
type Signals struct {
	WhitePct     float64 // % пикселей светлее 230 по всем каналам
	LightPct     float64 // % пикселей светлее 210 по всем каналам
	UniqueColors int     // цветовые корзины: 8 бинов на канал, максимум 512
	EdgePct      float64 // % пикселей с откликом границ > 30
	TextBlocks   int     // активные блоки текстовой сетки 10x10
	CenterLight  float64 // % светлых пикселей в центральной половине
	GrayStd      float64 // СКО яркости — общий контраст/сложность
}

// ExtractSignals уменьшает картинку до 200x200 и считает сигналы.
//
// Алгоритм:
//  1. Даунсемпл до квадрата (пропорции намеренно не сохраняются)
//  2. Светлота фона: доли белых (>230) и светлых (>210) пикселей
//  3. Палитра: число занятых корзин (r/32, g/32, b/32)
//  4. Границы: лапласиан 3x3 (центр 8, соседи -1) по яркости
//  5. Текстовая сетка: блоки 20x20, активен если >40 граничных пикселей
//  6. Светлота центра: внутренний квадрат 50..150
//  7. СКО яркости
func ExtractSignals(img image.Image) Signals {
	sm := utils.DownsampleSquare(img, signalGrid)
	b := sm.Bounds()

	n := signalGrid * signalGrid
	red := make([]uint8, n)
	green := make([]uint8, n)
	blue := make([]uint8, n)
	gray := make([]uint8, n)

	for y := 0; y < signalGrid; y++ {
		for x := 0; x < signalGrid; x++ {
			r, g, bl, _ := sm.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := y*signalGrid + x
			red[i] = uint8(r >> 8)
			green[i] = uint8(g >> 8)
			blue[i] = uint8(bl >> 8)
			// Яркость L = 0.299R + 0.587G + 0.114B
			gray[i] = uint8((uint32(red[i])*19595 + uint32(green[i])*38470 + uint32(blue[i])*7471 + 0x8000) >> 16)
		}
	}

	// 2. Светлота фона
	white, light := 0, 0
	for i := 0; i < n; i++ {
		if red[i] > 230 && green[i] > 230 && blue[i] > 230 {
			white++
		}
		if red[i] > 210 && green[i] > 210 && blue[i] > 210 {
			light++
		}
	}

	// 3. Цветовые корзины
	buckets := make(map[[3]uint8]struct{})
	for i := 0; i < n; i++ {
		buckets[[3]uint8{red[i] / 32, green[i] / 32, blue[i] / 32}] = struct{}{}
	}

	// 4. Карта границ
	edges := edgeMap(gray)
	edgeCount := 0
	for i := 0; i < n; i++ {
		if edges[i] > 30 {
			edgeCount++
		}
	}

	// 5. Текстовая сетка 10x10
	textBlocks := 0
	for row := 0; row < signalGrid; row += 20 {
		for col := 0; col < signalGrid; col += 20 {
			active := 0
			for y := row; y < row+20; y++ {
				for x := col; x < col+20; x++ {
					if edges[y*signalGrid+x] > 30 {
						active++
					}
				}
			}
			if active > 40 {
				textBlocks++
			}
		}
	}

	// 6. Светлота центра (внутренние 50%)
	centerLight, centerN := 0, 0
	for y := 50; y < 150; y++ {
		for x := 50; x < 150; x++ {
			i := y*signalGrid + x
			if red[i] > 210 && green[i] > 210 && blue[i] > 210 {
				centerLight++
			}
			centerN++
		}
	}

	// 7. СКО яркости
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += float64(gray[i])
	}
	mean := sum / float64(n)
	varSum := 0.0
	for i := 0; i < n; i++ {
		d := float64(gray[i]) - mean
		varSum += d * d
	}

	return Signals{
		WhitePct:     float64(white) / float64(n) * 100,
		LightPct:     float64(light) / float64(n) * 100,
		UniqueColors: len(buckets),
		EdgePct:      float64(edgeCount) / float64(n) * 100,
		TextBlocks:   textBlocks,
		CenterLight:  float64(centerLight) / float64(centerN) * 100,
		GrayStd:      math.Sqrt(varSum / float64(n)),
	}
}

// edgeMap применяет лапласиан 3x3 (центр 8, соседи -1) к карте яркости.
// Результат обрезается в диапазон 0..255; граничные пиксели копируются
// из исходной карты.
func edgeMap(gray []uint8) []uint8 {
	out := make([]uint8, len(gray))
	copy(out, gray)

	for y := 1; y < signalGrid-1; y++ {
		for x := 1; x < signalGrid-1; x++ {
			i := y*signalGrid + x
			v := 8*int(gray[i]) -
				int(gray[i-signalGrid-1]) - int(gray[i-signalGrid]) - int(gray[i-signalGrid+1]) -
				int(gray[i-1]) - int(gray[i+1]) -
				int(gray[i+signalGrid-1]) - int(gray[i+signalGrid]) - int(gray[i+signalGrid+1])
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			out[i] = uint8(v)
		}
	}
	return out
}
