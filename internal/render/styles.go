package render

import "github.com/charmbracelet/lipgloss"

// Markdown styles
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Underline(true)
}

func SubtitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true)
}

func BoldStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true)
}

func ItalicStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Italic(true)
}

func LinkStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Underline(true)
}

func QuoteStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("241")).
		PaddingLeft(1)
}

func RuleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
}

// Code styles
func InlineCodeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color("17")).
		Foreground(lipgloss.Color("255")).
		Padding(0, 1)
}

func CodeBlockStyle(width int, selected bool) lipgloss.Style {
	border := lipgloss.Color("238")
	if selected {
		border = lipgloss.Color("62")
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if width > 0 {
		style = style.Width(width)
	}
	return style
}

func LanguageLabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("237")).
		Padding(0, 1).
		Bold(true)
}

func CopyLabelStyle(copied bool) lipgloss.Style {
	if copied {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
}

func LineNumberStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
}
