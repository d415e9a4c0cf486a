package csr

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CsrCmd represents the csr command
var CsrCmd = &cobra.Command{
	Use:   "csr",
	Short: "Decode RISC-V control and status registers",
	Long: `Decodes the machine ISA register (misa), which reports the base integer width of a
hart and the single letter extensions it implements.

The decode target width selects where the MXL field is read from:

  32      bits 31:30
  64      bits 63:62
  128     bits 127:126
  native  the pointer width of the platform running this tool`,
}

func init() {
	CsrCmd.AddCommand(decodeCmd, probeCmd, extensionsCmd, layoutCmd)

	CsrCmd.PersistentFlags().StringP("xlen", "x", "native", "Decode target width (32, 64, 128 or native)")
	CsrCmd.PersistentFlags().StringP("format", "f", "text", "Output format (text or yaml)")

	cobra.CheckErr(viper.BindPFlag("xlen", CsrCmd.PersistentFlags().Lookup("xlen")))
	cobra.CheckErr(viper.BindPFlag("format", CsrCmd.PersistentFlags().Lookup("format")))
}
