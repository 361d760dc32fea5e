// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/ik5/pcmscribe/formats/wav"
	"github.com/spf13/cobra"
)

func (a *app) newSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples <file>",
		Short: "Normalize a file and report its sample count, duration and peak",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			norm, err := a.normalizer()
			if err != nil {
				return err
			}

			samples, err := norm.Normalize(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var peak float64
			for _, s := range samples {
				peak = math.Max(peak, math.Abs(float64(s)))
			}
			dur := time.Duration(len(samples)) * time.Second / wav.CanonicalRate

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "samples:  %d\n", len(samples))
			fmt.Fprintf(out, "duration: %s\n", dur)
			fmt.Fprintf(out, "peak:     %.4f\n", peak)

			return nil
		},
	}
}
