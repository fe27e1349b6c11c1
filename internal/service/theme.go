package service

import "github.com/limbo/fitlog/pkg/entity"

var (
	lightPalette = entity.Palette{
		Primary:    "#ff7700",
		Secondary:  "#d69456",
		Success:    "#c76534",
		Background: "#FFFFFF",
		Card:       "#F2F2F7",
		Text:       "#000000",
		Border:     "#C6C6C8",
		Subtitle:   "#666666",
	}
	darkPalette = entity.Palette{
		Primary:    "#ff7700",
		Secondary:  "#d69456",
		Success:    "#c76534",
		Background: "#000000",
		Card:       "#1C1C1E",
		Text:       "#FFFFFF",
		Border:     "#38383A",
		Subtitle:   "#98989F",
	}
)

func PaletteFor(darkMode bool) entity.Palette {
	if darkMode {
		return darkPalette
	}
	return lightPalette
}
