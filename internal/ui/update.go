package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/assetgen/pkg/columns"
)

// headerHeight + footerHeight — строки вне вьюпорта.
const (
	headerHeight = 2
	footerHeight = 4
)

// Update обрабатывает события Bubble Tea.
//
// Клавиши:
//
//	up/down, j/k — навигация по колонкам
//	space        — включить/выключить колонку
//	m            — следующий media type (только для image колонок)
//	s            — следующая SKU колонка
//	enter        — подтвердить и запустить генерацию
//	q, Ctrl+C    — отменить запуск
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		if m.viewport.Height < 3 {
			m.viewport.Height = 3
		}
		m.ready = true
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {

		case "ctrl+c", "q", "esc":
			m.accepted = false
			m.done = true
			return m, tea.Quit

		case "enter":
			m.accepted = true
			m.done = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.syncViewport()
			return m, nil

		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
			m.syncViewport()
			return m, nil

		case " ":
			if len(m.choices) > 0 {
				m.choices[m.cursor].Keep = !m.choices[m.cursor].Keep
			}
			m.syncViewport()
			return m, nil

		case "m":
			if len(m.choices) > 0 && m.choices[m.cursor].Role == columns.RoleImage {
				m.choices[m.cursor].MediaType = nextMediaType(m.choices[m.cursor].MediaType)
			}
			m.syncViewport()
			return m, nil

		case "s":
			if len(m.skuOptions) > 0 {
				m.skuIdx = (m.skuIdx + 1) % len(m.skuOptions)
			}
			m.syncViewport()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// nextMediaType возвращает следующий media type по циклу.
func nextMediaType(current string) string {
	for i, mt := range mediaTypeCycle {
		if mt == current {
			return mediaTypeCycle[(i+1)%len(mediaTypeCycle)]
		}
	}
	return mediaTypeCycle[0]
}

// syncViewport перерисовывает список и держит курсор в видимой области.
func (m *ConfirmModel) syncViewport() {
	m.viewport.SetContent(m.renderList())

	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	}
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}
