// Command roomvision is the local CLI front-end to the detection core,
// structured as a cobra root command with subcommands the way the
// teacher's cmd/arx/main.go wires arx's commands.
package main

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/arxos/roomvision/internal/types"
	"github.com/arxos/roomvision/pkg/detection"
	"github.com/arxos/roomvision/pkg/roomdetect"
	"github.com/arxos/roomvision/pkg/walldetect"
)

var (
	version       string
	confidence    float64
	minRoomArea   int
	kernelSize    int
	epsilonFactor float64
	withViz       bool
)

var rootCmd = &cobra.Command{
	Use:   "roomvision",
	Short: "Detect enclosed rooms in architectural raster blueprints",
	Long: `roomvision runs the wall-detection and room-extraction core against a
local PNG or JPEG blueprint and prints the resulting room polygons.

  roomvision detect floorplan.png
  roomvision ascii floorplan.png`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var detectCmd = &cobra.Command{
	Use:   "detect <image-path>",
	Short: "Run detection against a local image and print the JSON response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := loadImage(args[0])
		if err != nil {
			return err
		}

		router, err := buildRouter()
		if err != nil {
			return err
		}

		opts := types.DefaultDetectionOptions(types.ModelVersion(version))
		if cmd.Flags().Changed("confidence") {
			opts.ConfidenceThreshold = confidence
		}
		if cmd.Flags().Changed("min-room-area") {
			opts.MinRoomArea = minRoomArea
		}
		if cmd.Flags().Changed("kernel-size") {
			opts.KernelSize = kernelSize
		}
		if cmd.Flags().Changed("epsilon-factor") {
			opts.EpsilonFactor = epsilonFactor
		}
		opts.ReturnVisualization = withViz

		resp, err := router.Detect(img, opts)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

var asciiCmd = &cobra.Command{
	Use:   "ascii <image-path>",
	Short: "Print an ASCII-grid debug render of detected room bounding boxes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := loadImage(args[0])
		if err != nil {
			return err
		}

		router, err := buildRouter()
		if err != nil {
			return err
		}

		opts := types.DefaultDetectionOptions(types.ModelVersion(version))
		opts.ReturnVisualization = false
		resp, err := router.Detect(img, opts)
		if err != nil {
			return err
		}

		bounds := img.Bounds()
		grid := renderASCIIGrid(bounds.Dx(), bounds.Dy(), resp.Rooms, 80)
		fmt.Fprintln(cmd.OutOrStdout(), grid)
		return nil
	},
}

func buildRouter() (*detection.Router, error) {
	wallModel, err := walldetect.Load("")
	if err != nil {
		return nil, err
	}
	roomModel, err := roomdetect.Load("")
	if err != nil {
		return nil, err
	}
	return detection.NewRouter(wallModel, roomModel), nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&version, "version", "V", "v1", "detection model version: v1 or v2")
	rootCmd.PersistentFlags().Float64Var(&confidence, "confidence", 0, "confidence threshold override")
	rootCmd.PersistentFlags().IntVar(&minRoomArea, "min-room-area", 0, "minimum room area override")
	rootCmd.PersistentFlags().IntVar(&kernelSize, "kernel-size", 0, "morphology kernel size override")
	rootCmd.PersistentFlags().Float64Var(&epsilonFactor, "epsilon-factor", 0, "polygon simplification tolerance override")
	detectCmd.Flags().BoolVar(&withViz, "with-visualization", false, "include the base64 PNG annotation in output")

	rootCmd.AddCommand(detectCmd, asciiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "roomvision: %v\n", err)
		os.Exit(1)
	}
}
