package csr

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var decodeCmd = &cobra.Command{
	Use:   "decode raw",
	Short: "Decode a captured misa value",
	Long: `Decodes a misa value read from a hart, given as a decimal, hexadecimal (0x),
octal (0o) or binary (0b) integer. A value of zero means misa is not implemented.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseTarget(viper.GetString("xlen"))
		if err != nil {
			return err
		}

		value, err := t.parseValue(args[0])
		if err != nil {
			return err
		}

		slog.Debug("decoding misa", "raw", value, "target", t.Bits())

		report, err := makeReport(args[0], t, t.decode(value))
		if err != nil {
			return err
		}

		return writeReport(cmd.OutOrStdout(), viper.GetString("format"), report)
	},
}
