// Package cpuinfo synthesizes misa from the ISA strings Linux reports in /proc/cpuinfo.
//
// Reading misa needs machine mode, so user space cannot execute the CSR read. The kernel
// exposes the same information per hart as an "isa" line (e.g. "rv64imafdc_zicsr"), which
// this package encodes back into a raw misa value.
package cpuinfo

import (
	"bufio"
	"errors"
	"log/slog"
	"strings"

	"github.com/MuoDoo/riscv/pkg/hw/csr/misa"
	"github.com/MuoDoo/riscv/pkg/utils"
	"github.com/spf13/afero"
)

const DefaultPath = "/proc/cpuinfo"

var (
	ErrNoISA        = errors.New("no isa line found")
	ErrMalformedISA = errors.New("malformed isa string")
)

// Single letter extensions implied by the G shorthand
var generalExtensions = []misa.Extension{
	misa.Extension_Integer,
	misa.Extension_MulDiv,
	misa.Extension_Atomic,
	misa.Extension_Single,
	misa.Extension_Double,
}

// ISA reported by a hart
type ISA struct {
	XLEN       misa.XLEN
	Extensions []misa.Extension
}

// Parses an ISA string such as "rv64imafdc_zicsr_zifencei". Only the single letter
// extensions before the first multi-letter extension are kept, since misa has no bits for
// the rest.
func ParseISA(isa string) (ISA, error) {
	isa = strings.ToLower(strings.TrimSpace(isa))

	if !strings.HasPrefix(isa, "rv") {
		return ISA{}, utils.MakeError(ErrMalformedISA, "'%v' does not start with rv", isa)
	}

	rest := isa[len("rv"):]
	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}

	var result ISA

	switch rest[:digits] {
	case "32":
		result.XLEN = misa.XLEN_32
	case "64":
		result.XLEN = misa.XLEN_64
	case "128":
		result.XLEN = misa.XLEN_128
	default:
		return ISA{}, utils.MakeError(ErrMalformedISA, "'%v' has unknown base width '%v'", isa, rest[:digits])
	}

	letters := singleLetterExtensions(rest[digits:])
	seen := make(map[misa.Extension]bool, len(letters))

	for _, letter := range letters {
		ext, err := misa.ParseExtension(letter)
		if err != nil {
			return ISA{}, utils.MakeError(ErrMalformedISA, "'%v': %v", isa, err)
		}

		implied := []misa.Extension{ext}
		if ext == 'G' {
			implied = generalExtensions
		}

		for _, e := range implied {
			if !seen[e] {
				seen[e] = true
				result.Extensions = append(result.Extensions, e)
			}
		}
	}

	return result, nil
}

// Returns the leading single letter extensions of an ISA string suffix. Multi-letter
// extensions start after an underscore or, when written inline, with a z, s or x prefix.
func singleLetterExtensions(extensions string) string {
	if end := strings.IndexAny(extensions, "_zsx"); end >= 0 {
		return extensions[:end]
	}

	return extensions
}

// Synthesizes misa from a cpuinfo file
type Reader struct {
	Fs   afero.Fs
	Path string
}

// Returns a reader over the host /proc/cpuinfo
func NewReader() *Reader {
	return &Reader{
		Fs:   afero.NewOsFs(),
		Path: DefaultPath,
	}
}

// Returns the ISA of every hart listed in the cpuinfo file, in file order
func (r *Reader) Harts() ([]ISA, error) {
	file, err := r.Fs.Open(r.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var harts []ISA
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), ":")
		if !found || strings.TrimSpace(key) != "isa" {
			continue
		}

		isa, err := ParseISA(value)
		if err != nil {
			return nil, err
		}

		harts = append(harts, isa)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(harts) == 0 {
		return nil, utils.MakeError(ErrNoISA, "in %v", r.Path)
	}

	return harts, nil
}

// Returns the ISA common to every hart: the XLEN of the first hart and the extensions all
// harts implement
func (r *Reader) ISA() (ISA, error) {
	harts, err := r.Harts()
	if err != nil {
		return ISA{}, err
	}

	common := harts[0]

	for i, hart := range harts[1:] {
		if hart.XLEN != common.XLEN {
			slog.Warn("harts report different XLEN", "hart", i+1, "xlen", hart.XLEN, "first", common.XLEN)
		}

		common.Extensions = intersect(common.Extensions, hart.Extensions)
	}

	slog.Debug("parsed cpuinfo", "path", r.Path, "harts", len(harts), "xlen", common.XLEN, "extensions", len(common.Extensions))

	return common, nil
}

func intersect(a, b []misa.Extension) []misa.Extension {
	inB := make(map[misa.Extension]bool, len(b))
	for _, ext := range b {
		inB[ext] = true
	}

	result := make([]misa.Extension, 0, len(a))
	for _, ext := range a {
		if inB[ext] {
			result = append(result, ext)
		}
	}

	return result
}

// Reads the raw misa value a T sized hart implementing the common ISA would report
func Read[T misa.Word](r *Reader) (T, error) {
	isa, err := r.ISA()
	if err != nil {
		return 0, err
	}

	return misa.Encode[T](isa.XLEN, isa.Extensions...)
}

// Captures misa from the cpuinfo file and returns it as a read function
func ReadFunc[T misa.Word](r *Reader) (misa.ReadFunc[T], error) {
	raw, err := Read[T](r)
	if err != nil {
		return nil, err
	}

	return misa.Captured(raw), nil
}
