package render

// BandTiles holds the emoji glyphs used to draw one band's terrain. Emoji
// carry their own colors, so visible vs explored-but-dark states use
// distinct glyphs instead of terminal FG tinting.
type BandTiles struct {
	Wall     string // fully-visible wall tile
	Floor    string // fully-visible floor tile
	DimWall  string // explored but not currently visible wall
	DimFloor string // explored but not currently visible floor
}

// BandThemes maps a difficulty band (1-indexed) to its tile set. The barrow
// turns from packed earth to bone to grave-cold stone as the delve deepens.
var BandThemes = [6]BandTiles{
	{}, // band 0 unused
	{
		// Band 1 — the upper barrows: earth and root
		Wall:     "🟫",
		Floor:    "🟤",
		DimWall:  "🌑",
		DimFloor: "🔲",
	},
	{
		// Band 2 — the ossuary: stacked bone
		Wall:     "🦴",
		Floor:    "⬜",
		DimWall:  "🌑",
		DimFloor: "🔲",
	},
	{
		// Band 3 — the flooded crypts
		Wall:     "🪨",
		Floor:    "🟦",
		DimWall:  "🌑",
		DimFloor: "🔲",
	},
	{
		// Band 4 — the mold gardens
		Wall:     "🍄",
		Floor:    "🟩",
		DimWall:  "🌑",
		DimFloor: "🔲",
	},
	{
		// Band 5 — the deep vaults
		Wall:     "💀",
		Floor:    "🟪",
		DimWall:  "🌑",
		DimFloor: "🔲",
	},
}
