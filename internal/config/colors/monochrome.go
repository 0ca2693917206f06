package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		Title:  "#FFFFFF",
		Subtle: "#808080",
		Normal: "#D0D0D0",

		High:   "#FFFFFF",
		Medium: "#D0D0D0",
		Low:    "#A8A8A8",

		Success: "#FFFFFF",
		Error:   "#FFFFFF",
	}
}
