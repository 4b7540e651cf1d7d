package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/ilkoid/assetgen/pkg/columns"
)

// View отрисовывает экран подтверждения.
func (m ConfirmModel) View() string {
	if !m.ready {
		return "Инициализация..."
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("Asset Template Generator — подтверждение колонок"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	sku := "(не найдена)"
	if len(m.skuOptions) > 0 {
		sku = m.skuOptions[m.skuIdx]
	}
	b.WriteString(okStyle(fmt.Sprintf("SKU колонка: %s", sku)))
	b.WriteString("\n")

	help := "↑/↓ навигация · space вкл/выкл · m media type · s SKU колонка · enter запуск · q отмена"
	width := m.width
	if width <= 0 {
		width = 80
	}
	b.WriteString(helpStyle(wordwrap.String(help, width)))

	return b.String()
}

// renderList строит содержимое вьюпорта: по строке на колонку.
func (m ConfirmModel) renderList() string {
	if len(m.choices) == 0 {
		return helpStyle("Подходящих колонок не найдено.")
	}

	var b strings.Builder
	for i, c := range m.choices {
		line := formatChoice(c)

		switch {
		case i == m.cursor:
			line = selectedStyle("> " + line)
		case !c.Keep:
			line = "  " + droppedStyle(line)
		default:
			line = "  " + line
		}

		b.WriteString(line)
		if i < len(m.choices)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// formatChoice — строка вида:
// [x] Image 1  image/lifestyle  85%  (name:image(5); content:3/3 image)
func formatChoice(c ColumnChoice) string {
	mark := "[ ]"
	if c.Keep {
		mark = "[x]"
	}

	kind := string(c.Role)
	if c.Role == columns.RoleImage && c.MediaType != "" {
		kind = fmt.Sprintf("%s/%s", c.Role, c.MediaType)
	}

	return fmt.Sprintf("%s %-24s %-22s %3d%%  (%s)", mark, c.Name, kind, c.Confidence, c.Evidence)
}
