package etherbone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequestEncode(t *testing.T) {
	data := NewReadRequest(0x82000004).Encode()
	require.Len(t, data, PacketSize)

	want := []byte{
		0x4E, 0x6F, // magic
		0x10,                   // version 1
		0x44,                   // 32-bit addresses and ports
		0x00, 0x00, 0x00, 0x00, // padding
		0x00,                   // record flags
		0x0F,                   // byte enable
		0x00,                   // wcount
		0x01,                   // rcount
		0x00, 0x00, 0x00, 0x00, // base (return address)
		0x82, 0x00, 0x00, 0x04, // address to read
	}
	assert.Equal(t, want, data)
}

func TestWriteRequestEncode(t *testing.T) {
	data := NewWriteRequest(0x82000004, 0xdeadbeef).Encode()
	require.Len(t, data, PacketSize)

	want := []byte{
		0x4E, 0x6F,
		0x10,
		0x44,
		0x00, 0x00, 0x00, 0x00,
		0x00,
		0x0F,
		0x01, // wcount
		0x00, // rcount
		0x82, 0x00, 0x00, 0x04, // base address
		0xde, 0xad, 0xbe, 0xef, // value
	}
	assert.Equal(t, want, data)
}

func TestDecodeRoundTrip(t *testing.T) {
	packets := []Packet{
		NewReadRequest(0x0),
		NewReadRequest(0xffffffff),
		NewWriteRequest(0x82000004, 0x12345678),
		NewReadReply(0xcafebabe),
	}
	for _, p := range packets {
		got, err := Decode(p.Encode())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := NewReadReply(0x1234).Encode()

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{
			name:   "short packet",
			mutate: func(b []byte) []byte { return b[:PacketSize-1] },
		},
		{
			name:   "empty",
			mutate: func(b []byte) []byte { return nil },
		},
		{
			name: "bad magic",
			mutate: func(b []byte) []byte {
				b[0] = 0xAA
				return b
			},
		},
		{
			name: "wrong version",
			mutate: func(b []byte) []byte {
				b[2] = 0x20
				return b
			},
		},
		{
			name: "wrong address width",
			mutate: func(b []byte) []byte {
				b[3] = 0x84
				return b
			},
		},
		{
			name: "wrong port width",
			mutate: func(b []byte) []byte {
				b[3] = 0x48
				return b
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(append([]byte(nil), valid...))
			_, err := Decode(data)
			assert.ErrorIs(t, err, ErrProtocol)
		})
	}
}

func TestReadReplyValue(t *testing.T) {
	v, err := ReadReplyValue(NewReadReply(0xdeadbeef))
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), v)

	// A read request is not a reply.
	_, err = ReadReplyValue(NewReadRequest(0x4))
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		target  string
		want    string
		wantErr bool
	}{
		{target: "192.168.1.50", want: "192.168.1.50:1234"},
		{target: "192.168.1.50:2345", want: "192.168.1.50:2345"},
		{target: "fpga.lab", want: "fpga.lab:1234"},
		{target: "", wantErr: true},
		{target: "host:notaport", wantErr: true},
		{target: "host:99999", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got, err := ParseTarget(tt.target)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
