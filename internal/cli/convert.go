// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output.wav>",
		Short: "Convert an audio file to the canonical mono 16 kHz 16-bit WAV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := a.transcoder()
			if err != nil {
				return err
			}

			if err := <-tr.Transcode(cmd.Context(), args[0], args[1]); err != nil {
				return fmt.Errorf("converting %s: %w", args[0], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Wrote:", args[1])
			return nil
		},
	}
}
