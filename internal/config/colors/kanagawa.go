package colors

// Kanagawa palette, shared by the dragon, lotus and wave presets
const (
	fujiWhite    = "#DCD7BA"
	fujiGray     = "#727169"
	oniViolet    = "#957FB8"
	crystalBlue  = "#7E9CD8"
	springGreen  = "#98BB6C"
	surimiOrange = "#FFA066"
	samuraiRed   = "#E82424"
	autumnRed    = "#C34043"

	dragonWhite  = "#C5C9C5"
	dragonAsh    = "#737C73"
	dragonViolet = "#8992A7"
	dragonBlue2  = "#8BA4B0"
	dragonGreen2 = "#8A9A7B"
	dragonYellow = "#C4B28A"
	dragonRed    = "#C4746E"

	lotusInk1    = "#545464"
	lotusGray3   = "#8A8980"
	lotusViolet4 = "#624C83"
	lotusBlue4   = "#4D699B"
	lotusGreen   = "#6F894E"
	lotusOrange  = "#CC6D00"
	lotusRed     = "#C84053"
)

// Dragon returns the Kanagawa Dragon color scheme (dark theme with warm earth tones)
func Dragon() *ColorScheme {
	return &ColorScheme{
		Preset:  "dragon",
		Accent:  dragonViolet,
		Title:   dragonBlue2,
		Subtle:  dragonAsh,
		Normal:  dragonWhite,
		High:    dragonRed,
		Medium:  dragonYellow,
		Low:     dragonBlue2,
		Success: dragonGreen2,
		Error:   dragonRed,
	}
}

// Lotus returns the Kanagawa Lotus color scheme (light theme)
func Lotus() *ColorScheme {
	return &ColorScheme{
		Preset:  "lotus",
		Accent:  lotusViolet4,
		Title:   lotusViolet4,
		Subtle:  lotusGray3,
		Normal:  lotusInk1,
		High:    lotusRed,
		Medium:  lotusOrange,
		Low:     lotusBlue4,
		Success: lotusGreen,
		Error:   lotusRed,
	}
}

// Wave returns the Kanagawa Wave color scheme
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset:  "wave",
		Accent:  oniViolet,
		Title:   crystalBlue,
		Subtle:  fujiGray,
		Normal:  fujiWhite,
		High:    samuraiRed,
		Medium:  surimiOrange,
		Low:     crystalBlue,
		Success: springGreen,
		Error:   autumnRed,
	}
}
