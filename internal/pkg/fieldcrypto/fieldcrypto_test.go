package fieldcrypto

import (
	"strings"
	"testing"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := NewCipher(testKey)
	if err != nil {
		t.Fatalf("failed to create cipher: %v", err)
	}
	return c
}

func TestNewCipherKeyLength(t *testing.T) {
	cases := []struct {
		name    string
		key     []byte
		wantErr bool
	}{
		{"valid 32 byte key", testKey, false},
		{"short key", []byte("too-short"), true},
		{"long key", append(testKey, 'x'), true},
		{"empty key", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCipher(tc.key)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for key of length %d", len(tc.key))
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewCipherFromHex(t *testing.T) {
	if _, err := NewCipherFromHex(strings.Repeat("ab", 32)); err != nil {
		t.Fatalf("unexpected error for valid hex key: %v", err)
	}
	if _, err := NewCipherFromHex("not-hex"); err == nil {
		t.Fatal("expected error for non-hex key")
	}
	if _, err := NewCipherFromHex(strings.Repeat("ab", 16)); err == nil {
		t.Fatal("expected error for 16-byte key")
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := newTestCipher(t)

	inputs := []string{
		"Kim",
		"010-1234-5678",
		"a",
		strings.Repeat("block-aligned-16", 4),
		"서울특별시 강남구",
		"multi\nline\nvalue",
	}
	for _, in := range inputs {
		enc, err := c.Encrypt(in)
		if err != nil {
			t.Fatalf("encrypt %q: %v", in, err)
		}
		if !strings.Contains(enc, ":") {
			t.Fatalf("encrypted value %q missing separator", enc)
		}
		dec, err := c.Decrypt(enc)
		if err != nil {
			t.Fatalf("decrypt %q: %v", enc, err)
		}
		if dec != in {
			t.Fatalf("round trip mismatch: got %q, want %q", dec, in)
		}
	}
}

func TestEncryptEmptyPassesThrough(t *testing.T) {
	c := newTestCipher(t)
	enc, err := c.Encrypt("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc != "" {
		t.Fatalf("expected empty output, got %q", enc)
	}
	dec, err := c.Decrypt("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec != "" {
		t.Fatalf("expected empty output, got %q", dec)
	}
}

func TestDecryptLegacyPlaintextPassesThrough(t *testing.T) {
	c := newTestCipher(t)
	// Rows written before encryption was introduced hold raw plaintext with
	// no separator.
	for _, legacy := range []string{"Kim", "plain name", "01012345678"} {
		dec, err := c.Decrypt(legacy)
		if err != nil {
			t.Fatalf("unexpected error for legacy value %q: %v", legacy, err)
		}
		if dec != legacy {
			t.Fatalf("legacy value changed: got %q, want %q", dec, legacy)
		}
	}
}

func TestDecryptMalformedValues(t *testing.T) {
	c := newTestCipher(t)
	cases := []string{
		"zz:zz",
		"00ff:not-hex",
		"00112233445566778899aabbccddeeff:abcd", // ciphertext not block aligned
		"00ff:00112233445566778899aabbccddeeff", // IV too short
	}
	for _, in := range cases {
		if _, err := c.Decrypt(in); err == nil {
			t.Fatalf("expected error for malformed value %q", in)
		}
	}
}

func TestEncryptGeneratesFreshIV(t *testing.T) {
	c := newTestCipher(t)
	first, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatal("two encryptions of the same plaintext produced identical output; IV reuse")
	}
}

func TestEncryptDecryptFields(t *testing.T) {
	c := newTestCipher(t)
	record := map[string]string{
		"name":    "Kim",
		"phone":   "010-1234-5678",
		"address": "",
		"tag":     "1234",
	}

	if err := c.EncryptFields(record, "name", "phone", "address"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record["name"] == "Kim" {
		t.Fatal("name was not encrypted")
	}
	if record["address"] != "" {
		t.Fatal("empty field should be skipped")
	}
	if record["tag"] != "1234" {
		t.Fatal("unlisted field should be untouched")
	}

	if err := c.DecryptFields(record, "name", "phone", "address"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record["name"] != "Kim" || record["phone"] != "010-1234-5678" {
		t.Fatalf("fields did not round trip: %+v", record)
	}
}
