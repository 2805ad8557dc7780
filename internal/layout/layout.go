// Package layout resolves the memory layout for loading one of the two
// executable images embedded in a ROM.
package layout

import (
	"errors"
	"fmt"

	"github.com/patois/NDSLdr/internal/nds"
)

// Variant selects which of the two embedded executable images to load.
// The choice is supplied by the user, it can not be derived from the file.
type Variant int

const (
	// ARM9 selects the first core image.
	ARM9 Variant = iota
	// ARM7 selects the second core image.
	ARM7
)

// String returns the processor tag of the variant.
func (v Variant) String() string {
	if v == ARM7 {
		return "ARM7"
	}
	return "ARM9"
}

// Processor returns the processor type name downstream tooling should
// decode instructions with.
func (v Variant) Processor() string {
	if v == ARM7 {
		return "ARM710A"
	}
	return "ARM"
}

// Region is an address range the loader considers a legal placement target.
type Region struct {
	Start uint32
	End   uint32
}

// Regions is the ordered table of legal placement windows. It is fixed at
// process start and read-only, all validations share it.
var Regions = []Region{
	{Start: 0x02000000, End: 0x023FFFFF}, // main memory
	{Start: 0x037F8000, End: 0x037FFFFF}, // shared WRAM
	{Start: 0x03800000, End: 0x0380FFFF}, // ARM7 WRAM
}

var (
	// ErrImageTruncated is returned if the selected image's source range
	// extends past the end of the file.
	ErrImageTruncated = errors.New("image exceeds file size")
	// ErrIllegalMemoryWindow is returned if the destination window fails the
	// region table check.
	ErrIllegalMemoryWindow = errors.New("destination window outside legal memory regions")
)

// Plan describes where the selected image's bytes come from and where they
// are placed. It is derived once per load attempt and owned by the caller.
type Plan struct {
	Variant   Variant
	Start     uint32 // destination window start
	End       uint32 // destination window end, exclusive
	ROMOffset uint32 // source offset within the file
	Entry     uint32 // initial program counter, taken verbatim from the header
}

// Resolve computes the load plan for the image selected by variant.
// The entry address is informational and intentionally not validated
// against the destination window, it may point outside of it.
func Resolve(hdr *nds.Header, variant Variant, fileLength int64) (Plan, error) {
	img := hdr.ARM9
	if variant == ARM7 {
		img = hdr.ARM7
	}

	if int64(img.ROMOffset)+int64(img.Size) > fileLength {
		return Plan{}, fmt.Errorf("%s image at 0x%X with 0x%X bytes in a %d byte file: %w",
			variant, img.ROMOffset, img.Size, fileLength, ErrImageTruncated)
	}

	start := img.RAMAddress
	end := img.RAMAddress + img.Size

	if !windowAllowed(start, end) {
		return Plan{}, fmt.Errorf("window 0x%08X-0x%08X: %w", start, end, ErrIllegalMemoryWindow)
	}

	return Plan{
		Variant:   variant,
		Start:     start,
		End:       end,
		ROMOffset: img.ROMOffset,
		Entry:     img.Entry,
	}, nil
}

// windowAllowed scans the region table in order. A window passes if any
// region starts at or below the window start or ends at or above the window
// end. Note the OR: a window starting inside the address range covered by
// the table is accepted no matter where it ends.
func windowAllowed(start, end uint32) bool {
	for _, r := range Regions {
		if start >= r.Start || end <= r.End {
			return true
		}
	}
	return false
}
