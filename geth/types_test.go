package geth

import (
	"testing"

	"github.com/merkledrop/merkledrop/core/types"
)

func TestAddressRoundTrip(t *testing.T) {
	a := types.HexToAddress("0x00000000000000000000000000000000000000ff")
	if FromGethAddress(ToGethAddress(a)) != a {
		t.Fatal("address round trip changed the value")
	}
}

func TestHashRoundTrip(t *testing.T) {
	h := types.HexToHash("0xdeadbeef")
	if FromGethHash(ToGethHash(h)) != h {
		t.Fatal("hash round trip changed the value")
	}
}

func TestParseAddress(t *testing.T) {
	a, err := ParseAddress("0x1111111111111111111111111111111111111111")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	if a != types.HexToAddress("0x1111111111111111111111111111111111111111") {
		t.Fatal("parsed address mismatch")
	}

	for _, bad := range []string{"", "0x12", "1111", "0xzz11111111111111111111111111111111111111"} {
		if _, err := ParseAddress(bad); err == nil {
			t.Fatalf("ParseAddress(%q) should fail", bad)
		}
	}
}

func TestParseAmount(t *testing.T) {
	dec, err := ParseAmount("100")
	if err != nil {
		t.Fatalf("decimal: %v", err)
	}
	hex, err := ParseAmount("0x64")
	if err != nil {
		t.Fatalf("hex: %v", err)
	}
	if !dec.Eq(hex) {
		t.Fatal("decimal 100 and hex 0x64 should parse equal")
	}

	for _, bad := range []string{"", "abc", "-5", "0x"} {
		if _, err := ParseAmount(bad); err == nil {
			t.Fatalf("ParseAmount(%q) should fail", bad)
		}
	}
}
