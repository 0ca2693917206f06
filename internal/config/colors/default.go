package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#7D56F4",

		Title:  "#FAFAFA",
		Subtle: "#6C6C6C",
		Normal: "#DDDDDD",

		High:   "#FF5F87",
		Medium: "#FFAF00",
		Low:    "#5FAFFF",

		Success: "#04B575",
		Error:   "#FF4672",
	}
}
