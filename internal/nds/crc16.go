package nds

// ChecksumLength is the number of header bytes covered by the header checksum.
const ChecksumLength = 350

// crc16Poly is the reflected polynomial of the header checksum,
// the same table-driven CRC16 the console firmware uses to verify a cartridge.
const crc16Poly = 0xA001

var crc16Table = makeCRC16Table()

func makeCRC16Table() [256]uint16 {
	var table [256]uint16
	for i := range table {
		crc := uint16(i)
		for bit := 0; bit < 8; bit++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ crc16Poly
			} else {
				crc >>= 1
			}
		}
		table[i] = crc
	}
	return table
}

// Checksum computes the CRC16 over the first ChecksumLength bytes of the raw
// header buffer. Shorter buffers are summed in full. The register starts at
// 0xFFFF and every byte is folded through the lookup table.
func Checksum(data []byte) uint16 {
	if len(data) > ChecksumLength {
		data = data[:ChecksumLength]
	}

	crc := uint16(0xFFFF)
	for _, b := range data {
		crc = (crc >> 8) ^ crc16Table[(crc^uint16(b))&0xFF]
	}
	return crc
}
