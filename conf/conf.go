// Package conf reads greygrid's settings out of viper.
package conf

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/ArnaudCalmettes/greygrid/grid"
	"github.com/spf13/viper"
)

// Configuration keys
const (
	DB           = "db"
	BotToken     = "bot.token"
	BotPrefix    = "bot.prefix"
	BlockSize    = "grid.block_size"
	Thresholds   = "grid.thresholds"
	DrawLines    = "grid.draw_lines"
	LineColor    = "grid.line_color"
	FontSize     = "grid.font_size"
	Normalize    = "grid.normalize"
	InputDir     = "paths.input"
	OutputDir    = "paths.output"
	HistoryLimit = "history.limit"
)

// SetDefaults registers default values for every key.
func SetDefaults(v *viper.Viper) {
	def := grid.DefaultOptions()
	v.SetDefault(DB, "greygrid.sqlite")
	v.SetDefault(BotPrefix, ".")
	v.SetDefault(BlockSize, def.BlockSize)
	v.SetDefault(Thresholds, []string{"50", "100", "200"})
	v.SetDefault(DrawLines, def.DrawLines)
	v.SetDefault(LineColor, int(def.LineColor.Y))
	v.SetDefault(FontSize, def.FontSize)
	v.SetDefault(Normalize, false)
	v.SetDefault(InputDir, "data/original_images")
	v.SetDefault(OutputDir, "data/processed_images")
	v.SetDefault(HistoryLimit, 10)
}

// ParseThresholds parses a list of numeric thresholds.
func ParseThresholds(values []string) ([]float64, error) {
	thresholds := make([]float64, 0, len(values))
	for _, s := range values {
		t, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold %q", s)
		}
		thresholds = append(thresholds, t)
	}
	return thresholds, nil
}

// GridOptions builds validated grid options from the configuration.
func GridOptions(v *viper.Viper) (grid.Options, error) {
	thresholds, err := ParseThresholds(v.GetStringSlice(Thresholds))
	if err != nil {
		return grid.Options{}, err
	}

	lc := v.GetInt(LineColor)
	if lc < 0 || lc > 255 {
		return grid.Options{}, fmt.Errorf("line color must be within 0..255 (got %d)", lc)
	}

	opts := grid.Options{
		Thresholds: thresholds,
		BlockSize:  v.GetInt(BlockSize),
		DrawLines:  v.GetBool(DrawLines),
		LineColor:  color.Gray{Y: uint8(lc)},
		FontSize:   v.GetFloat64(FontSize),
	}
	return opts, opts.Validate()
}
