package main

import (
	"fmt"
	"io"
	"os"

	logslider "github.com/SKAARHOJ/ibeam-logslider-go"
	"github.com/SKAARHOJ/ibeam-logslider-go/valuehelpers"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func sweepCmd() *cobra.Command {
	var (
		minAmount   string
		maxAmount   string
		sliderSteps string
		points      int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Print the amount curve for a slider configuration",
		Long: `Sweep moves the high handle from the left end to the right end of the slider and prints the
amount reported at every point. Amount flags accept digit grouping like 100_000 or 100,000.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(os.Stdout,
				valuehelpers.ParseAmount(minAmount, logslider.DefaultAmountMin),
				valuehelpers.ParseAmount(maxAmount, logslider.DefaultAmountMax),
				valuehelpers.ParseAmount(sliderSteps, logslider.DefaultSliderSteps),
				points,
			)
		},
	}

	cmd.Flags().StringVar(&minAmount, "min", "", "Lowest amount (default: 0)")
	cmd.Flags().StringVar(&maxAmount, "max", "", "Highest amount (default: 100000)")
	cmd.Flags().StringVar(&sliderSteps, "steps", "", "Slider steps (default: 100)")
	cmd.Flags().IntVar(&points, "points", 10, "Number of intervals to print")

	return cmd
}

func runSweep(w io.Writer, minAmount, maxAmount, sliderSteps float64, points int) error {
	if points < 1 {
		return fmt.Errorf("points must be at least 1, got %d", points)
	}

	var rows []logslider.RangeResult
	controller := logslider.NewRangeController()
	controller.Configure(minAmount, maxAmount, sliderSteps, logslider.ListenerFuncs{
		Moving: func(result logslider.RangeResult) { rows = append(rows, result) },
	})
	params, _ := controller.Parameters()
	if params.IsDegenerate() {
		fmt.Fprintf(w, "degenerate range, every position maps to %s\n", humanize.Commaf(minAmount))
	} else {
		fmt.Fprintf(w, "exponent %.6f over %s steps\n", params.Exponent, humanize.Commaf(sliderSteps))
	}

	for i := 0; i <= points; i++ {
		position := valuehelpers.Normalise(float64(i), 0, float64(points), 0, sliderSteps)
		position = valuehelpers.Constrain(position, 0, sliderSteps)
		controller.OnDragUpdate(0, position)
	}
	controller.OnDragEnd()

	for _, row := range rows {
		fmt.Fprintf(w, "%10.2f  %s\n", row.High.CurrentSlider, humanize.Commaf(row.High.CurrentAmount))
	}
	return nil
}
