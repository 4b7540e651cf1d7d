package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/assetgen/pkg/columns"
)

// Confirm запускает интерактивный экран и блокируется до решения оператора.
//
// Возвращает подтверждённый набор колонок и выбранную SKU колонку.
// Отмена (q / Ctrl+C) — это Accepted == false, не ошибка.
func Confirm(profiles []columns.Profile, skuOptions []string, skuCurrent string) (Confirmation, error) {
	model := NewConfirmModel(profiles, skuOptions, skuCurrent)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Confirmation{}, fmt.Errorf("tui error: %w", err)
	}

	m, ok := final.(ConfirmModel)
	if !ok {
		return Confirmation{}, fmt.Errorf("unexpected final model type %T", final)
	}
	return m.Result(), nil
}
