package ipclass

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		want bool
	}{
		{name: "empty", ip: "", want: true},
		{name: "unspecified", ip: "0.0.0.0", want: true},
		{name: "ipv6 loopback", ip: "::1", want: true},
		{name: "loopback", ip: "127.0.0.1", want: true},
		{name: "loopback other", ip: "127.8.9.10", want: true},
		{name: "class A private", ip: "10.1.2.3", want: true},
		{name: "class C private", ip: "192.168.0.10", want: true},
		{name: "172.16 lower bound", ip: "172.16.0.1", want: true},
		{name: "172.31 upper bound", ip: "172.31.255.254", want: true},
		{name: "172.15 outside range", ip: "172.15.0.1", want: false},
		{name: "172.32 outside range", ip: "172.32.0.1", want: false},
		{name: "malformed 172 octet", ip: "172.999.0.1", want: false},
		{name: "public v4", ip: "8.8.8.8", want: false},
		{name: "public v6", ip: "2001:4860:4860::8888", want: false},
		{name: "192.169 is public", ip: "192.169.1.1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPrivateIP(tt.ip))
		})
	}
}

func TestIsPrivateIP_All172Blocks(t *testing.T) {
	for octet := 16; octet <= 31; octet++ {
		ip := fmt.Sprintf("172.%d.4.5", octet)
		assert.True(t, IsPrivateIP(ip), ip)
	}
}

func TestIsValidIP(t *testing.T) {
	assert.False(t, IsValidIP(""))
	assert.False(t, IsValidIP("0.0.0.0"))
	assert.False(t, IsValidIP("::1"))
	assert.False(t, IsValidIP("10.0.0.1"))
	assert.False(t, IsValidIP("192.168.1.1"))
	assert.False(t, IsValidIP("127.0.0.1"))
	// the geolocation check rejects every 172. address, not only 172.16/12
	assert.False(t, IsValidIP("172.64.0.1"))
	assert.True(t, IsValidIP("1.1.1.1"))
	assert.True(t, IsValidIP("2606:4700::1111"))
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "IPv4", Version("8.8.8.8"))
	assert.Equal(t, "IPv6", Version("2001:db8::1"))
	assert.Equal(t, "IPv6", Version("::1"))
}
