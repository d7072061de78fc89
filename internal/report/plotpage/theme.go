package plotpage

// Theme selects the color palette applied to a rendered page.
type Theme string

const (
	// ThemeDark is the default WattTrace report theme.
	ThemeDark Theme = "dark"
	// ThemeLight is offered for embedding in light-background dashboards.
	ThemeLight Theme = "light"
)

// ThemeConfig holds the chart-relevant styling values for a Theme.
type ThemeConfig struct {
	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string
	EChartsTheme    string
}

// ChartPalette is a consistent set of series colors for a Theme.
type ChartPalette struct {
	Primary  []string
	Semantic struct {
		Good    string
		Warning string
		Bad     string
	}
}

// GetThemeConfig returns the styling values for theme, defaulting to dark.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeLight {
		return lightTheme
	}

	return darkTheme
}

// GetChartPalette returns the series palette for theme, defaulting to dark.
func GetChartPalette(theme Theme) ChartPalette {
	if theme == ThemeLight {
		return lightPalette
	}

	return darkPalette
}

var darkTheme = ThemeConfig{ //nolint:gochecknoglobals // fixed palette table
	ChartBackground: "transparent",
	ChartGrid:       "#44403c",
	ChartAxis:       "#57534e",
	ChartText:       "#d6d3d1",
	ChartTextMuted:  "#a8a29e",
	EChartsTheme:    "",
}

var lightTheme = ThemeConfig{ //nolint:gochecknoglobals // fixed palette table
	ChartBackground: "transparent",
	ChartGrid:       "#e7e5e4",
	ChartAxis:       "#a8a29e",
	ChartText:       "#44403c",
	ChartTextMuted:  "#78716c",
	EChartsTheme:    "",
}

var darkPalette = ChartPalette{ //nolint:gochecknoglobals // fixed palette table
	Primary: []string{"#fbbf24", "#38bdf8", "#a3e635", "#a78bfa", "#f472b6", "#22d3ee", "#fb923c"},
	Semantic: struct {
		Good    string
		Warning string
		Bad     string
	}{Good: "#22c55e", Warning: "#eab308", Bad: "#ef4444"},
}

var lightPalette = ChartPalette{ //nolint:gochecknoglobals // fixed palette table
	Primary: []string{"#a16207", "#0369a1", "#4d7c0f", "#7c3aed", "#be185d", "#0891b2", "#c2410c"},
	Semantic: struct {
		Good    string
		Warning string
		Bad     string
	}{Good: "#16a34a", Warning: "#ca8a04", Bad: "#dc2626"},
}
