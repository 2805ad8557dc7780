package layout

import (
	"errors"
	"testing"

	"github.com/patois/NDSLdr/internal/nds"
	"github.com/retroenv/retrogolib/assert"
)

func testHeader() *nds.Header {
	return &nds.Header{
		ARM9: nds.Image{
			ROMOffset:  0x4000,
			Entry:      0x02004000,
			RAMAddress: 0x02000000,
			Size:       0x1000,
		},
		ARM7: nds.Image{
			ROMOffset:  0x5000,
			Entry:      0x037F8000,
			RAMAddress: 0x037F8000,
			Size:       0x800,
		},
	}
}

func TestResolveARM9(t *testing.T) {
	plan, err := Resolve(testHeader(), ARM9, 0x6000)
	assert.NoError(t, err)

	assert.Equal(t, ARM9, plan.Variant)
	assert.Equal(t, uint32(0x02000000), plan.Start)
	assert.Equal(t, uint32(0x02001000), plan.End)
	assert.Equal(t, uint32(0x4000), plan.ROMOffset)
	// the entry lies outside the destination window and is kept as is
	assert.Equal(t, uint32(0x02004000), plan.Entry)
}

func TestResolveARM7(t *testing.T) {
	plan, err := Resolve(testHeader(), ARM7, 0x6000)
	assert.NoError(t, err)

	assert.Equal(t, ARM7, plan.Variant)
	assert.Equal(t, uint32(0x037F8000), plan.Start)
	assert.Equal(t, uint32(0x037F8800), plan.End)
	assert.Equal(t, uint32(0x5000), plan.ROMOffset)
	assert.Equal(t, uint32(0x037F8000), plan.Entry)
}

func TestResolveTruncatedFile(t *testing.T) {
	_, err := Resolve(testHeader(), ARM9, 0x3000)
	assert.True(t, errors.Is(err, ErrImageTruncated))

	// source range ending exactly at the file end is fine
	_, err = Resolve(testHeader(), ARM9, 0x5000)
	assert.NoError(t, err)
}

//nolint:funlen // table driven
func TestResolveWindowLegality(t *testing.T) {
	tests := []struct {
		name    string
		ram     uint32
		size    uint32
		allowed bool
	}{
		{
			name:    "window inside a region",
			ram:     0x02000000,
			size:    0x1000,
			allowed: true,
		},
		{
			name: "start above a region start is enough",
			ram:  0x02300000,
			// extends far past the main memory region end
			size:    0x02000000,
			allowed: true,
		},
		{
			name:    "end below a region end is enough",
			ram:     0x01000000,
			size:    0x100,
			allowed: true,
		},
		{
			name:    "start above the highest region is still accepted",
			ram:     0x0A000000,
			size:    0x1000,
			allowed: true,
		},
		{
			name:    "below all regions and ending above all regions",
			ram:     0x01000000,
			size:    0x03000000,
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr := &nds.Header{
				ARM9: nds.Image{
					RAMAddress: tt.ram,
					Size:       tt.size,
					ROMOffset:  0,
					Entry:      tt.ram,
				},
			}

			_, err := Resolve(hdr, ARM9, 0x10000000)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrIllegalMemoryWindow))
			}
		})
	}
}

func TestVariantNames(t *testing.T) {
	assert.Equal(t, "ARM9", ARM9.String())
	assert.Equal(t, "ARM7", ARM7.String())
	assert.Equal(t, "ARM", ARM9.Processor())
	assert.Equal(t, "ARM710A", ARM7.Processor())
}
