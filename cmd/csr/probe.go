package csr

import (
	"fmt"
	"log/slog"

	"github.com/MuoDoo/riscv/pkg/hw/csr/cpuinfo"
	"github.com/MuoDoo/riscv/pkg/hw/csr/misa"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Filesystem the cpuinfo file is read from
var fs = afero.NewOsFs()

// Synthesizes misa for the target from what the kernel reports. Returns the view, or nil
// if the synthesized register is not implemented, and the synthesized raw bits.
func probe(r *cpuinfo.Reader, t target) (misa.View, string, error) {
	switch t {
	case target_32:
		raw, err := cpuinfo.Read[uint32](r)
		if err != nil {
			return nil, "", err
		}

		m, ok := misa.New(raw)
		return present(m, ok), m.Hex(), nil
	case target_64:
		raw, err := cpuinfo.Read[uint64](r)
		if err != nil {
			return nil, "", err
		}

		m, ok := misa.New(raw)
		return present(m, ok), m.Hex(), nil
	case target_128:
		isa, err := r.ISA()
		if err != nil {
			return nil, "", err
		}

		raw, err := misa.Encode128(isa.XLEN, isa.Extensions...)
		if err != nil {
			return nil, "", err
		}

		m, ok := misa.New128(raw)
		return present(m, ok), m.Hex(), nil
	case target_Native:
		read, err := cpuinfo.ReadFunc[uint](r)
		if err != nil {
			return nil, "", err
		}

		misa.SetNativeReader(read)

		m, ok, err := misa.ReadNative()
		if err != nil {
			return nil, "", err
		}

		return present(m, ok), m.Hex(), nil
	}

	panic("unreachable")
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Synthesize and decode misa for the running platform",
	Long: `User space cannot read misa, so probe synthesizes the value a hart would report from
the ISA strings the kernel lists in the cpuinfo file, keeping the extensions common to
every hart.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseTarget(viper.GetString("xlen"))
		if err != nil {
			return err
		}

		r := &cpuinfo.Reader{
			Fs:   fs,
			Path: viper.GetString("cpuinfo"),
		}

		slog.Debug("probing misa", "cpuinfo", r.Path, "target", t.Bits())

		view, raw, err := probe(r, t)
		if err != nil {
			return fmt.Errorf("probing %v: %w", r.Path, err)
		}

		report, err := makeReport(raw, t, view)
		if err != nil {
			return err
		}

		return writeReport(cmd.OutOrStdout(), viper.GetString("format"), report)
	},
}

func init() {
	probeCmd.Flags().String("cpuinfo", cpuinfo.DefaultPath, "cpuinfo file listing the ISA of each hart")
	cobra.CheckErr(viper.BindPFlag("cpuinfo", probeCmd.Flags().Lookup("cpuinfo")))
}
