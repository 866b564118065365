package node

import (
	"github.com/zhukovaskychina/xbtree-engine/engine/basic"
	"github.com/zhukovaskychina/xbtree-engine/engine/slots"
	"github.com/zhukovaskychina/xbtree-engine/util"
)

// slot tags for the checksum stream, so a key and a value with the
// same bytes digest differently
const (
	tagKey   byte = 0x01
	tagPage  byte = 0x02
	tagValue byte = 0x03
)

// Checksum digests the page kind and its full slot sequence. The
// store layer compares digests across write/read round-trips to catch
// torn or stale pages; the engine itself never checks it.
func (n Node) Checksum() uint64 {
	buf := make([]byte, 0, 64)
	if n.leaf {
		buf = util.WriteByte(buf, 0x01)
	} else {
		buf = util.WriteByte(buf, 0x00)
	}
	for _, item := range n.entries.Items() {
		switch it := item.(type) {
		case slots.Key:
			buf = util.WriteByte(buf, tagKey)
			buf = util.WriteUB4(buf, uint32(len(it)))
			buf = util.WriteBytes(buf, it)
		case basic.PageNo:
			buf = util.WriteByte(buf, tagPage)
			buf = util.WriteUB4(buf, uint32(it))
		case []byte:
			buf = util.WriteByte(buf, tagValue)
			buf = util.WriteUB4(buf, uint32(len(it)))
			buf = util.WriteBytes(buf, it)
		}
	}
	return util.HashCode(buf)
}
