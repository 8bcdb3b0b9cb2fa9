package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint32(nil, 0xFD2FB528)
	require.Equal(t, []byte{0x28, 0xB5, 0x2F, 0xFD}, buf)
	require.Equal(t, uint32(0xFD2FB528), engine.Uint32(buf))

	buf = engine.AppendUint64(nil, 0x0102030405060708)
	require.Equal(t, uint64(0x0102030405060708), engine.Uint64(buf))
	require.Equal(t, byte(0x08), buf[0])
}

func TestBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()
	require.Equal(t, binary.BigEndian.Uint16([]byte{0x12, 0x34}), engine.Uint16([]byte{0x12, 0x34}))

	buf := engine.AppendUint16(nil, 0x1234)
	require.Equal(t, []byte{0x12, 0x34}, buf)
}
