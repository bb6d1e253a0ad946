package scenario

// Chart palette
const (
	ColorRed    = "#e74c3c"
	ColorOrange = "#e67e22"
	ColorGold   = "#f39c12"
	ColorGreen  = "#27ae60"
	ColorBlue   = "#3498db"
	ColorPurple = "#9b59b6"
	ColorCyan   = "#00d4ff"
	ColorWhite  = "#f5f5f5"

	ColorMA9   = ColorRed
	ColorMA20  = ColorGold
	ColorMA50  = ColorGreen
	ColorMA200 = ColorBlue
	ColorSMA   = ColorBlue
	ColorEMA   = ColorRed
	ColorWMA   = ColorPurple
	ColorPrice = ColorGold

	ColorSupportZone    = "rgba(39, 174, 96, 0.15)"
	ColorResistanceZone = "rgba(231, 76, 60, 0.15)"
)
