package replay

import "hash/crc32"

func crc32Of(payload []byte) uint32 {
	return crc32.ChecksumIEEE(payload)
}
