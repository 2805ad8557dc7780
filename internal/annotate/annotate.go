// Package annotate writes human readable metadata about a loaded ROM image.
package annotate

import (
	"fmt"
	"io"

	"github.com/patois/NDSLdr/internal/layout"
	"github.com/patois/NDSLdr/internal/nds"
)

// Write emits the ROM description lines for a resolved load plan. The lines
// are comment prefixed so they can be pasted into a disassembly listing.
func Write(w io.Writer, hdr *nds.Header, plan layout.Plan) error {
	lines := []string{
		fmt.Sprintf(";   Game Title:         %s", hdr.Title),
		fmt.Sprintf(";   Game Code:          %s", hdr.GameCode),
		fmt.Sprintf(";   Maker Code:         %s", hdr.MakerCode),
		fmt.Sprintf(";   ROM Version:        %d", hdr.ROMVersion),
		fmt.Sprintf(";   Processor:          %s", plan.Variant),
		fmt.Sprintf(";   ROM Header size:    0x%08X", hdr.HeaderSize),
		fmt.Sprintf(";   Header CRC:         0x%04X", hdr.HeaderCRC16),
		fmt.Sprintf(";   Offset in ROM:      0x%08X", plan.ROMOffset),
		fmt.Sprintf(";   Array:              0x%08X - 0x%08X (%d bytes)",
			plan.Start, plan.End, plan.End-plan.Start),
		fmt.Sprintf(";   Entry point:        0x%08X", plan.Entry),
		"",
		fmt.Sprintf(";   0x%08X  --- Beginning of ROM content ---", plan.Start),
	}

	if plan.Entry != plan.Start {
		lines = append(lines,
			fmt.Sprintf(";   0x%08X  --- Entry point ---", plan.Entry))
	}
	lines = append(lines,
		fmt.Sprintf(";   0x%08X  --- End of ROM content ---", plan.End))

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing annotation: %w", err)
		}
	}
	return nil
}
