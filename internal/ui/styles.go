// Красота

package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Цвета (можно настроить под бренд)
	primaryColor   = lipgloss.Color("62")  // Фиолетовый
	secondaryColor = lipgloss.Color("205") // Розовый
	grayColor      = lipgloss.Color("240")

	// Стили хедера
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 1).
			Bold(true)

	// Выбранная строка списка
	selectedStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			Render

	// Выключенные колонки
	droppedStyle = lipgloss.NewStyle().
			Foreground(grayColor).
			Strikethrough(true).
			Render

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575")). // Зеленый
		Render

	helpStyle = lipgloss.NewStyle().
			Foreground(grayColor).
			Render
)
