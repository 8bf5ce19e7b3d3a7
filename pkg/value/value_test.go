package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		want    uint32
		wantErr bool
	}{
		{name: "hex lowercase", literal: "0xdeadbeef", want: 0xdeadbeef},
		{name: "hex uppercase", literal: "0xDEADBEEF", want: 0xdeadbeef},
		{name: "hex mixed case", literal: "0xDeadBeef", want: 0xdeadbeef},
		{name: "hex short", literal: "0x4", want: 4},
		{name: "decimal", literal: "42", want: 42},
		{name: "decimal zero", literal: "0", want: 0},
		{name: "decimal max", literal: "4294967295", want: 0xffffffff},
		{name: "dotted quad", literal: "192.168.1.100", want: 0xC0A80164},
		{name: "dotted quad zeros", literal: "0.0.0.0", want: 0},
		{name: "dotted quad broadcast", literal: "255.255.255.255", want: 0xffffffff},
		{name: "octet out of range", literal: "300.1.2.3", wantErr: true},
		{name: "too many octets", literal: "1.2.3.4.5", wantErr: true},
		{name: "too few octets", literal: "1.2.3", wantErr: true},
		{name: "empty octet", literal: "1..2.3", wantErr: true},
		{name: "hex overflow", literal: "0x1ffffffff", wantErr: true},
		{name: "decimal overflow", literal: "4294967296", wantErr: true},
		{name: "garbage", literal: "bogus", wantErr: true},
		{name: "empty", literal: "", wantErr: true},
		{name: "bare hex not accepted as value", literal: "beef", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.literal)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatWord(t *testing.T) {
	assert.Equal(t, "0x00000000", FormatWord(0))
	assert.Equal(t, "0x00000004", FormatWord(4))
	assert.Equal(t, "0xdeadbeef", FormatWord(0xdeadbeef))
	assert.Equal(t, "0xffffffff", FormatWord(0xffffffff))
}

func TestFormatIP(t *testing.T) {
	assert.Equal(t, "192.168.1.100", FormatIP(0xC0A80164))
	assert.Equal(t, "0.0.0.0", FormatIP(0))
	assert.Equal(t, "255.255.255.255", FormatIP(0xffffffff))
	assert.Equal(t, "10.0.0.1", FormatIP(0x0A000001))
}

// Every word must survive the dotted-quad round trip, and every
// canonical dotted quad must survive the inverse trip.
func TestDottedQuadRoundTrip(t *testing.T) {
	words := []uint32{0, 1, 0xC0A80164, 0x0A000001, 0x7F000001, 0xffffffff, 0x00010203}
	for _, w := range words {
		got, err := Parse(FormatIP(w))
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	quads := []string{"192.168.1.100", "10.0.0.1", "255.0.255.0", "1.2.3.4"}
	for _, q := range quads {
		w, err := Parse(q)
		require.NoError(t, err)
		assert.Equal(t, q, FormatIP(w))
	}
}

func TestIsIPLike(t *testing.T) {
	assert.True(t, IsIPLike("eth_rx_streamer_ip_address"))
	assert.True(t, IsIPLike("ip_address"))
	assert.False(t, IsIPLike("ctrl_scratch"))
	assert.False(t, IsIPLike(""))
	assert.False(t, IsIPLike("ip_addr"))
}
