package csr

import (
	"io"

	"github.com/MuoDoo/riscv/pkg/hw/csr/misa"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var extensionsCmd = &cobra.Command{
	Use:   "extensions",
	Short: "List the misa extension bits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exts := makeExtensionReports(misa.AllExtensions())

		return writeFormatted(cmd.OutOrStdout(), viper.GetString("format"), exts, func(w io.Writer) {
			writeExtensionsText(w, exts)
		})
	},
}
