package types

import "testing"

func TestBytesToHashPadding(t *testing.T) {
	h := BytesToHash([]byte{0x01, 0x02})
	if h[31] != 0x02 || h[30] != 0x01 {
		t.Fatalf("expected right-aligned bytes, got %s", h.Hex())
	}
	for i := 0; i < 30; i++ {
		if h[i] != 0 {
			t.Fatalf("byte %d should be zero padding", i)
		}
	}
}

func TestBytesToHashTruncation(t *testing.T) {
	long := make([]byte, 40)
	for i := range long {
		long[i] = byte(i)
	}
	h := BytesToHash(long)
	// Only the last 32 bytes survive.
	if h[0] != 8 || h[31] != 39 {
		t.Fatalf("expected last 32 bytes, got %s", h.Hex())
	}
}

func TestHexToHashRoundTrip(t *testing.T) {
	s := "0x00000000000000000000000000000000000000000000000000000000deadbeef"
	h := HexToHash(s)
	if h.Hex() != s {
		t.Fatalf("round trip mismatch: %s != %s", h.Hex(), s)
	}
}

func TestHexToAddressWithAndWithoutPrefix(t *testing.T) {
	a := HexToAddress("0x00000000000000000000000000000000000000aa")
	b := HexToAddress("00000000000000000000000000000000000000aa")
	if a != b {
		t.Fatal("0x prefix should not change the parsed address")
	}
	if a[19] != 0xaa {
		t.Fatalf("expected last byte 0xaa, got %#x", a[19])
	}
}

func TestIsZero(t *testing.T) {
	if !(Hash{}).IsZero() {
		t.Fatal("zero hash should report IsZero")
	}
	if !(Address{}).IsZero() {
		t.Fatal("zero address should report IsZero")
	}
	if HexToHash("0x01").IsZero() {
		t.Fatal("non-zero hash reported IsZero")
	}
	if HexToAddress("0x01").IsZero() {
		t.Fatal("non-zero address reported IsZero")
	}
}

func TestProofClone(t *testing.T) {
	p := Proof{HexToHash("0x01"), HexToHash("0x02")}
	c := p.Clone()
	c[0] = HexToHash("0xff")
	if p[0] != HexToHash("0x01") {
		t.Fatal("mutating the clone changed the original")
	}
	if (Proof)(nil).Clone() != nil {
		t.Fatal("cloning a nil proof should return nil")
	}
}
