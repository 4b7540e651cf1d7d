// Package ui реализует экран подтверждения колонок (Bubble Tea TUI).
//
// Оператор видит результат автоклассификации колонок и до генерации
// может: выключить колонку, сменить media type, выбрать SKU колонку.
package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/assetgen/pkg/columns"
)

// ColumnChoice — решение оператора по одной колонке.
type ColumnChoice struct {
	Name       string
	Role       columns.Role
	MediaType  string
	Confidence int
	Evidence   string
	Keep       bool
}

// Confirmation — итог работы экрана.
//
// Accepted == false означает, что оператор отменил запуск (q / Ctrl+C),
// генерация не выполняется.
type Confirmation struct {
	Columns   []ColumnChoice
	SKUColumn string
	Accepted  bool
}

// mediaTypeCycle — порядок перебора media type клавишей 'm'.
var mediaTypeCycle = []string{"detail", "angle", "lifestyle", "informational", "dimension", "swatch"}

// ConfirmModel — Bubble Tea модель экрана подтверждения.
//
// Компоненты:
//   - viewport: прокручиваемый список колонок
//   - choices: редактируемые решения по колонкам
//   - skuOptions: кандидаты SKU колонки (перебираются клавишей 's')
type ConfirmModel struct {
	viewport viewport.Model

	choices    []ColumnChoice
	skuOptions []string
	skuIdx     int

	cursor   int
	accepted bool
	done     bool
	ready    bool
	width    int
}

// NewConfirmModel создает модель из профилей колонок.
//
// skuOptions — имена всех колонок таблицы; skuCurrent — выбранная
// (автодетектом или конфигом) SKU колонка.
func NewConfirmModel(profiles []columns.Profile, skuOptions []string, skuCurrent string) ConfirmModel {
	choices := make([]ColumnChoice, len(profiles))
	for i, p := range profiles {
		choices[i] = ColumnChoice{
			Name:       p.Name,
			Role:       p.Role,
			MediaType:  p.MediaType,
			Confidence: p.Confidence,
			Evidence:   p.Evidence,
			Keep:       p.Role != columns.RoleNone,
		}
	}

	skuIdx := 0
	for i, name := range skuOptions {
		if name == skuCurrent {
			skuIdx = i
			break
		}
	}

	// Размеры (0,0) обновятся при первом событии WindowSizeMsg
	vp := viewport.New(0, 0)

	return ConfirmModel{
		viewport:   vp,
		choices:    choices,
		skuOptions: skuOptions,
		skuIdx:     skuIdx,
	}
}

// Init запускается один раз при старте Bubble Tea программы.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Result возвращает итог после завершения программы.
func (m ConfirmModel) Result() Confirmation {
	sku := ""
	if len(m.skuOptions) > 0 {
		sku = m.skuOptions[m.skuIdx]
	}
	return Confirmation{
		Columns:   m.choices,
		SKUColumn: sku,
		Accepted:  m.accepted,
	}
}
