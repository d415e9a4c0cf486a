package csr

import (
	"fmt"

	"github.com/MuoDoo/riscv/pkg/hw/csr/misa"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Draw the misa fields for the decode target",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseTarget(viper.GetString("xlen"))
		if err != nil {
			return err
		}

		layout, err := misa.DrawLayout(t.Bits())
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), layout)
		return err
	},
}
