package util

// Append-style byte writers, shared by the checksum stream and the
// demo driver's key encoding.

func WriteByte(buf []byte, b byte) []byte {
	return append(buf, b)
}

func WriteBytes(buf []byte, from []byte) []byte {
	return append(buf, from...)
}

func WriteUB2(buf []byte, i uint16) []byte {
	buf = append(buf, byte(i&0xFF))
	buf = append(buf, byte((i>>8)&0xFF))
	return buf
}

func WriteUB4(buf []byte, i uint32) []byte {
	buf = append(buf, byte(i&0xFF))
	buf = append(buf, byte((i>>8)&0xFF))
	buf = append(buf, byte((i>>16)&0xFF))
	buf = append(buf, byte((i>>24)&0xFF))
	return buf
}

func ConvertUInt4Bytes(i uint32) []byte {
	return WriteUB4(make([]byte, 0, 4), i)
}

func ReadUB4Byte2UInt32(buff []byte) uint32 {
	var rs uint32
	for i := 0; i < 4 && i < len(buff); i++ {
		rs |= uint32(buff[i]) << (8 * i)
	}
	return rs
}

// ConvertULong8BytesBE encodes i big-endian, so byte order matches
// numeric order. Keys built with it sort correctly under bytes.Compare.
func ConvertULong8BytesBE(i uint64) []byte {
	buf := make([]byte, 8)
	for p := 7; p >= 0; p-- {
		buf[p] = byte(i & 0xFF)
		i >>= 8
	}
	return buf
}

// ReadUB8BEBytes2ULong decodes a key produced by ConvertULong8BytesBE.
func ReadUB8BEBytes2ULong(buff []byte) uint64 {
	var rs uint64
	for _, b := range buff {
		rs = rs<<8 | uint64(b)
	}
	return rs
}
