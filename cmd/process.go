package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/ArnaudCalmettes/greygrid/batch"
	"github.com/ArnaudCalmettes/greygrid/conf"
	"github.com/ArnaudCalmettes/greygrid/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	exportKey bool
	record    bool
	workers   int
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <image>...",
	Short: "Turn images into numbered grids",
	Long: `Reads each image from the input directory and writes two images to the
output directory: "<N>colors_result_<image>", the shaded blocks, and
"<N>colors_base_<image>", the numbered sheet.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := conf.GridOptions(viper.GetViper())
		if err != nil {
			return err
		}

		p := &batch.Processor{
			InputDir:  viper.GetString(conf.InputDir),
			OutputDir: viper.GetString(conf.OutputDir),
			Options:   opts,
			Normalize: viper.GetBool(conf.Normalize),
			ExportKey: exportKey,
		}

		outputs, err := p.ProcessAll(context.Background(), args, workers)
		if err != nil {
			return err
		}

		for _, out := range outputs {
			fmt.Println(out.ResultPath)
			fmt.Println(out.BasePath)
			if out.KeyPath != "" {
				fmt.Println(out.KeyPath)
			}
		}
		fmt.Println("Images processed successfully.")

		if record {
			return recordJobs(outputs, p)
		}
		return nil
	},
}

func recordJobs(outputs []*batch.Output, p *batch.Processor) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, out := range outputs {
		err := models.RecordJob(db, &models.Job{
			Source:     out.Source,
			Thresholds: models.FormatThresholds(p.Options.Thresholds),
			BlockSize:  p.Options.BlockSize,
			Rows:       out.Levels.Rows,
			Cols:       out.Levels.Cols,
			ResultPath: out.ResultPath,
			BasePath:   out.BasePath,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(processCmd)

	flags := processCmd.Flags()
	flags.StringSliceP("thresholds", "t", []string{"50", "100", "200"}, "brightness thresholds separating levels")
	flags.IntP("block-size", "b", 15, "edge length of a block, in pixels")
	flags.Bool("lines", true, "draw grid lines at block boundaries")
	flags.Int("line-color", 0, "grid lines intensity (0-255)")
	flags.Float64("font-size", 0, "label size in points (0: small bitmap font)")
	flags.Bool("normalize", false, "stretch image contrast before averaging")
	flags.StringP("input-dir", "i", "data/original_images", "directory images are read from")
	flags.StringP("output-dir", "o", "data/processed_images", "directory grids are written to")
	flags.BoolVar(&exportKey, "key", false, "also write the grid and its legend as YAML")
	flags.BoolVar(&record, "record", false, "record processed images in the job history")
	flags.IntVarP(&workers, "workers", "w", runtime.NumCPU(), "images processed at once")

	viper.BindPFlag(conf.Thresholds, flags.Lookup("thresholds"))
	viper.BindPFlag(conf.BlockSize, flags.Lookup("block-size"))
	viper.BindPFlag(conf.DrawLines, flags.Lookup("lines"))
	viper.BindPFlag(conf.LineColor, flags.Lookup("line-color"))
	viper.BindPFlag(conf.FontSize, flags.Lookup("font-size"))
	viper.BindPFlag(conf.Normalize, flags.Lookup("normalize"))
	viper.BindPFlag(conf.InputDir, flags.Lookup("input-dir"))
	viper.BindPFlag(conf.OutputDir, flags.Lookup("output-dir"))
}
