package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Gold      = lipgloss.Color("#E5C07B")
	SlateDark = lipgloss.Color("#1F2937")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Red       = lipgloss.Color("#EF4444")
)

// Chrome
var (
	WidgetBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 2)

	CityBadge = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(Gold).
			Bold(true).
			Padding(0, 1)

	ClockStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)

// Hero section
var (
	NextLabelStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Bold(true)

	NextTimeStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	CountdownStyle = lipgloss.NewStyle().
			Foreground(Gold)
)

// Prayer list
var (
	RowStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	NextRowStyle = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)

	CompletedRowStyle = lipgloss.NewStyle().
				Foreground(Green).
				Strikethrough(true)

	ElapsedRowStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	CursorStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateDark)
)

// Menu overlay and status line
var (
	MenuTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	MenuItemStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	MenuActiveStyle = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)
)
