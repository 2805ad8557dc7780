// Package nds implements decoding and validation of the Nintendo DS
// cartridge ROM header.
package nds

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// HeaderLength is the fixed size of the ROM header in bytes.
const HeaderLength = 0x160

var (
	// ErrHeaderTruncated is returned if a buffer is too small to contain a ROM header.
	ErrHeaderTruncated = errors.New("buffer is smaller than the ROM header")
	// ErrChecksumMismatch is returned if the stored header checksum does not
	// match the checksum computed over the raw header bytes.
	ErrChecksumMismatch = errors.New("header checksum mismatch")
)

// Image describes one of the two executable images embedded in a ROM,
// one per processor core.
type Image struct {
	ROMOffset  uint32 // offset of the image bytes within the file
	Entry      uint32 // address execution begins at after loading
	RAMAddress uint32 // destination base address
	Size       uint32 // image length in bytes
}

// Header is the decoded fixed-layout ROM header. It is a value decoded from
// a byte buffer and carries no reference to it, every decode call returns an
// independent header.
type Header struct {
	Title     string // game title, trailing zero padding stripped
	GameCode  string
	MakerCode string

	UnitCode       byte
	DeviceType     byte
	DeviceCapacity byte
	ROMVersion     byte

	ARM9 Image // first core image
	ARM7 Image // second core image

	FNTOffset uint32 // file name table
	FNTSize   uint32
	FATOffset uint32 // file allocation table
	FATSize   uint32

	BannerOffset   uint32
	SecureAreaCRC  uint16
	ApplicationEnd uint32 // end of the used ROM area
	HeaderSize     uint32 // declared size of the header region

	HeaderCRC16 uint16 // stored checksum over the first ChecksumLength bytes
}

// Decode decodes the fixed-layout ROM header from the start of data.
// The layout is rigid, there is no version negotiation. The stored checksum
// is decoded but not verified, use Valid or DecodeValid for that.
func Decode(data []byte) (*Header, error) {
	if len(data) < HeaderLength {
		return nil, ErrHeaderTruncated
	}

	hdr := &Header{
		Title:     decodeText(data[0x000:0x00C]),
		GameCode:  decodeText(data[0x00C:0x010]),
		MakerCode: decodeText(data[0x010:0x012]),

		UnitCode:       data[0x012],
		DeviceType:     data[0x013],
		DeviceCapacity: data[0x014],
		ROMVersion:     data[0x01E],

		ARM9: decodeImage(data[0x020:0x030]),
		ARM7: decodeImage(data[0x030:0x040]),

		FNTOffset: binary.LittleEndian.Uint32(data[0x040:]),
		FNTSize:   binary.LittleEndian.Uint32(data[0x044:]),
		FATOffset: binary.LittleEndian.Uint32(data[0x048:]),
		FATSize:   binary.LittleEndian.Uint32(data[0x04C:]),

		BannerOffset:   binary.LittleEndian.Uint32(data[0x068:]),
		SecureAreaCRC:  binary.LittleEndian.Uint16(data[0x06C:]),
		ApplicationEnd: binary.LittleEndian.Uint32(data[0x080:]),
		HeaderSize:     binary.LittleEndian.Uint32(data[0x084:]),

		HeaderCRC16: binary.LittleEndian.Uint16(data[0x15E:]),
	}
	return hdr, nil
}

// DecodeValid decodes the header and verifies its stored checksum.
func DecodeValid(data []byte) (*Header, error) {
	hdr, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if !hdr.Valid(data) {
		return nil, ErrChecksumMismatch
	}
	return hdr, nil
}

// Valid reports whether the stored header checksum matches the checksum
// computed over the raw header bytes. This is the sole acceptance criterion
// for recognizing the format, the header carries no magic number.
func (h *Header) Valid(raw []byte) bool {
	return Checksum(raw) == h.HeaderCRC16
}

func decodeImage(data []byte) Image {
	return Image{
		ROMOffset:  binary.LittleEndian.Uint32(data[0:]),
		Entry:      binary.LittleEndian.Uint32(data[4:]),
		RAMAddress: binary.LittleEndian.Uint32(data[8:]),
		Size:       binary.LittleEndian.Uint32(data[12:]),
	}
}

// decodeText converts a fixed-length character block that may be
// unterminated and zero padded.
func decodeText(data []byte) string {
	return string(bytes.TrimRight(data, "\x00"))
}
