package colors

// Kanagawa returns the Kanagawa Wave color scheme (dark theme with blue/purple accents)
func Kanagawa() *ColorScheme {
	return &ColorScheme{
		Preset: "kanagawa",

		// Primary accent color (oniViolet)
		Accent: "#957FB8",

		// Text colors
		Title:  "#7E9CD8", // crystalBlue
		Subtle: "#727169", // fujiGray
		Normal: "#DCD7BA", // fujiWhite

		Completed:   "#98BB6C", // springGreen
		Overlapping: "#FF9E3B", // roninYellow

		InfoFg:    "#7FB4CA", // springBlue
		InfoBg:    "#2D4F67", // waveBlue2
		WarningFg: "#E6C384", // carpYellow
		WarningBg: "#49443C", // winterYellow
		ErrorFg:   "#FF5D62", // peachRed
		ErrorBg:   "#43242B", // winterRed
	}
}
