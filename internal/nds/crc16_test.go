package nds

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestChecksumVectors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{
			name: "standard check value",
			data: []byte("123456789"),
			want: 0x4B37,
		},
		{
			name: "empty buffer",
			data: nil,
			want: 0xFFFF,
		},
		{
			name: "all zero bytes",
			data: make([]byte, ChecksumLength),
			want: 0x1BCC,
		},
		{
			name: "all 0xFF bytes",
			data: bytes350(0xFF),
			want: 0x790B,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Checksum(tt.data))
		})
	}
}

func TestChecksumCoversFirst350BytesOnly(t *testing.T) {
	data := make([]byte, HeaderLength)
	want := Checksum(data)

	// bytes past the checksummed range must not influence the result
	data[ChecksumLength] = 0xAA
	data[HeaderLength-1] = 0xBB
	assert.Equal(t, want, Checksum(data))
}

func TestChecksumBitFlipSensitivity(t *testing.T) {
	data := make([]byte, ChecksumLength)
	for i := range data {
		data[i] = byte(i)
	}
	base := Checksum(data)

	for i := range data {
		for bit := 0; bit < 8; bit++ {
			data[i] ^= 1 << bit
			if Checksum(data) == base {
				t.Fatalf("flipping bit %d of byte %d did not change the checksum", bit, i)
			}
			data[i] ^= 1 << bit
		}
	}
}

func TestChecksumTable(t *testing.T) {
	// spot check the generated lookup table against the reference table values
	assert.Equal(t, uint16(0x0000), crc16Table[0x00])
	assert.Equal(t, uint16(0xC0C1), crc16Table[0x01])
	assert.Equal(t, uint16(0xC181), crc16Table[0x02])
	assert.Equal(t, uint16(0x0140), crc16Table[0x03])
	assert.Equal(t, uint16(0x4040), crc16Table[0xFF])
}

func bytes350(b byte) []byte {
	data := make([]byte, ChecksumLength)
	for i := range data {
		data[i] = b
	}
	return data
}
