package core

// Color is the foreground color of a screen cell. Games pick from this
// fixed set and each front end maps it to its own palette.
type Color uint8

const (
	ColorDefault       Color = iota
	ColorRed                 // blood gems
	ColorYellow              // chests
	ColorCyan                // hint markers
	ColorBrightRed           // ruby gems
	ColorBrightGreen         // selection, met goals
	ColorBrightYellow        // stars, fresh notes
	ColorBrightMagenta       // amethyst gems
	ColorBrightCyan          // title
	ColorBrightWhite         // silver gems, cursor
	ColorOrange              // low moves or time
	ColorGray                // holes, onyx gems, dimmed text
)
