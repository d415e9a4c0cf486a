package csr

import (
	"bytes"
	"testing"

	"github.com/MuoDoo/riscv/pkg/hw/csr/cpuinfo"
	"github.com/MuoDoo/riscv/pkg/hw/csr/misa"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	color.NoColor = true

	var out bytes.Buffer
	CsrCmd.SetOut(&out)
	CsrCmd.SetErr(&bytes.Buffer{})
	CsrCmd.SetArgs(args)

	err := CsrCmd.Execute()
	return out.String(), err
}

func TestDecode_Text(t *testing.T) {
	out, err := run(t, "decode", "0x800000000000112d", "--xlen", "64", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "raw:        0x800000000000112d (64 bit target)\n")
	assert.Contains(t, out, "xlen:       64\n")
	assert.Contains(t, out, "isa:        rv64imafdc\n")
	assert.Contains(t, out, "  A   0  Atomic\n")
	assert.Contains(t, out, "  M  12  Integer Multiply/Divide\n")
	assert.NotContains(t, out, "Vector")
}

func TestDecode_NotImplemented(t *testing.T) {
	out, err := run(t, "decode", "0", "--xlen", "32", "--format", "text")
	require.NoError(t, err)

	assert.Equal(t, "raw:        0 (32 bit target)\nmisa not implemented (reads as zero)\n", out)
}

func TestDecode_Yaml(t *testing.T) {
	out, err := run(t, "decode", "0x4000_1105", "--xlen", "32", "--format", "yaml")
	require.NoError(t, err)

	var report Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))

	assert.Equal(t, Report{
		Raw:     "0x40001105",
		Target:  32,
		Present: true,
		XLEN:    32,
		ISA:     "rv32imac",
		Extensions: []ExtensionReport{
			{Letter: "A", Bit: 0, Name: "Atomic"},
			{Letter: "C", Bit: 2, Name: "Compressed"},
			{Letter: "I", Bit: 8, Name: "RV32I/64I/128I base ISA"},
			{Letter: "M", Bit: 12, Name: "Integer Multiply/Divide"},
		},
	}, report)
}

func TestDecode_128BitTarget(t *testing.T) {
	out, err := run(t, "decode", "0xc0000000000000000000000000001100", "--xlen", "128", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "xlen:       128\n")
	assert.Contains(t, out, "isa:        rv128im\n")
}

func TestDecode_Errors(t *testing.T) {
	// MXL field of a 64 bit target is empty
	_, err := run(t, "decode", "0x80000001", "--xlen", "64", "--format", "text")
	assert.ErrorIs(t, err, misa.ErrInvalidMXL)

	_, err = run(t, "decode", "0x1_0000_0000", "--xlen", "32", "--format", "text")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = run(t, "decode", "misa", "--xlen", "32", "--format", "text")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = run(t, "decode", "1", "--xlen", "16", "--format", "text")
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = run(t, "decode", "0x40000100", "--xlen", "32", "--format", "json")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestTarget_ParseValue(t *testing.T) {
	value, err := target_32.parseValue("0b1010_0000")
	require.NoError(t, err)
	assert.Equal(t, int64(0xA0), value.Int64())

	value, err = target_64.parseValue("1_000")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), value.Int64())

	_, err = target_64.parseValue("-1")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = target_128.parseValue("0x1_0000_0000_0000_0000_0000_0000_0000_0000")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestProbe(t *testing.T) {
	previous := fs
	t.Cleanup(func() {
		fs = previous
		misa.SetNativeReader(nil)
	})

	fs = afero.NewMemMapFs()
	contents := "processor : 0\nisa : rv64imafdc_zicsr\n\nprocessor : 1\nisa : rv64imafdcv_zicsr\n"
	require.NoError(t, afero.WriteFile(fs, cpuinfo.DefaultPath, []byte(contents), 0o444))

	for _, xlen := range []string{"32", "64", "128", "native"} {
		out, err := run(t, "probe", "--cpuinfo", cpuinfo.DefaultPath, "--xlen", xlen, "--format", "text")
		require.NoError(t, err, "xlen %v", xlen)

		assert.Contains(t, out, "xlen:       64\n", "xlen %v", xlen)
		assert.Contains(t, out, "isa:        rv64imafdc\n", "xlen %v", xlen)
	}
}

func TestProbe_MissingFile(t *testing.T) {
	previous := fs
	t.Cleanup(func() { fs = previous })

	fs = afero.NewMemMapFs()

	_, err := run(t, "probe", "--cpuinfo", "/proc/cpuinfo", "--xlen", "64", "--format", "text")
	assert.Error(t, err)
}

func TestExtensions_Yaml(t *testing.T) {
	out, err := run(t, "extensions", "--format", "yaml", "--xlen", "native")
	require.NoError(t, err)

	var exts []ExtensionReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &exts))

	require.Len(t, exts, 26)
	assert.Equal(t, ExtensionReport{Letter: "A", Bit: 0, Name: "Atomic"}, exts[0])
	assert.Equal(t, ExtensionReport{Letter: "Z", Bit: 25, Name: "Reserved"}, exts[25])
}

func TestLayout(t *testing.T) {
	out, err := run(t, "layout", "--xlen", "32", "--format", "text")
	require.NoError(t, err)

	assert.Equal(t, ""+
		`31 30 29 26 25         0
+-----+-----+------------+
| MXL |  0  | Extensions |
+-----+-----+------------+
`,
		out)
}

func TestProbe_ReportsSynthesizedRaw(t *testing.T) {
	previous := fs
	t.Cleanup(func() { fs = previous })

	fs = afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, cpuinfo.DefaultPath, []byte("isa : rv64imafdc\n"), 0o444))

	cases := map[string]string{
		"32":  "0x8000112d",
		"64":  "0x800000000000112d",
		"128": "0x8000000000000000000000000000112d",
	}

	for xlen, raw := range cases {
		out, err := run(t, "probe", "--cpuinfo", cpuinfo.DefaultPath, "--xlen", xlen, "--format", "yaml")
		require.NoError(t, err, "xlen %v", xlen)

		var report Report
		require.NoError(t, yaml.Unmarshal([]byte(out), &report))
		assert.Equal(t, raw, report.Raw, "xlen %v", xlen)
		assert.True(t, report.Present)
	}
}

func TestMakeReport_AbsentKeepsRaw(t *testing.T) {
	m, ok := misa.New[uint32](0)
	require.False(t, ok)

	report, err := makeReport(m.Hex(), target_32, present(m, ok))
	require.NoError(t, err)

	assert.Equal(t, Report{Raw: "0x00000000", Target: 32}, report)
}
