package csr

import (
	"errors"
	"fmt"
	"io"

	"github.com/MuoDoo/riscv/pkg/hw/csr/misa"
	"github.com/MuoDoo/riscv/pkg/utils"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var ErrInvalidFormat = errors.New("invalid output format")

type ExtensionReport struct {
	Letter string `yaml:"letter"`
	Bit    int    `yaml:"bit"`
	Name   string `yaml:"name"`
}

// Decoded misa, as printed by the csr commands
type Report struct {
	Raw        string            `yaml:"raw"`
	Target     int               `yaml:"target"`
	Present    bool              `yaml:"present"`
	XLEN       int               `yaml:"xlen,omitempty"`
	ISA        string            `yaml:"isa,omitempty"`
	Extensions []ExtensionReport `yaml:"extensions,omitempty"`
}

func makeExtensionReports(exts []misa.Extension) []ExtensionReport {
	return utils.Map(exts, func(ext misa.Extension) ExtensionReport {
		return ExtensionReport{
			Letter: ext.String(),
			Bit:    ext.Bit(),
			Name:   ext.Name(),
		}
	})
}

// Builds the report of a decoded value. A nil view reports an unimplemented register.
func makeReport(raw string, t target, view misa.View) (Report, error) {
	report := Report{
		Raw:    raw,
		Target: t.Bits(),
	}

	if view == nil {
		return report, nil
	}

	xlen, err := view.DecodeMXL()
	if err != nil {
		return Report{}, fmt.Errorf("%v does not match a %v bit decode target: %w", view.Hex(), t.Bits(), err)
	}

	report.Raw = view.Hex()
	report.Present = true
	report.XLEN = xlen.Bits()
	report.ISA = view.ISAString()
	report.Extensions = makeExtensionReports(view.Extensions())

	return report, nil
}

func (r Report) writeText(w io.Writer) {
	fmt.Fprintf(w, "raw:        %v (%v bit target)\n", r.Raw, r.Target)

	if !r.Present {
		fmt.Fprintln(w, "misa not implemented (reads as zero)")
		return
	}

	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "xlen:       %v\n", bold(r.XLEN))
	fmt.Fprintf(w, "isa:        %v\n", bold(r.ISA))
	fmt.Fprintln(w, "extensions:")
	writeExtensionsText(w, r.Extensions)
}

func writeExtensionsText(w io.Writer, exts []ExtensionReport) {
	letter := color.New(color.FgGreen, color.Bold).SprintFunc()

	for _, ext := range exts {
		fmt.Fprintf(w, "  %v  %2d  %v\n", letter(ext.Letter), ext.Bit, ext.Name)
	}
}

// Writes value in the given format. Text is written by the text function.
func writeFormatted(w io.Writer, format string, value any, text func(io.Writer)) error {
	switch format {
	case "text":
		text(w)
		return nil
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(value); err != nil {
			return err
		}

		return encoder.Close()
	}

	return utils.MakeError(ErrInvalidFormat, "'%v', expected text or yaml", format)
}

func writeReport(w io.Writer, format string, r Report) error {
	return writeFormatted(w, format, r, r.writeText)
}
