package password

import (
	"strings"
	"testing"
)

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	hashed, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashed == "secret123" {
		t.Fatal("hash must not equal plaintext")
	}
	if !strings.HasPrefix(hashed, "$2") {
		t.Errorf("expected bcrypt hash, got %q", hashed)
	}

	if !h.Verify("secret123", hashed) {
		t.Error("expected matching password to verify")
	}
	if h.Verify("wrong-password", hashed) {
		t.Error("expected mismatched password to fail verification")
	}
}

// TestHasher_Verify_MalformedHash は不正なハッシュ文字列に対してパニックやエラーではなくfalseを返すことを検証します。
func TestHasher_Verify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	tests := []struct {
		name   string
		hashed string
	}{
		{"empty hash", ""},
		{"plaintext stored", "not-a-bcrypt-hash"},
		{"truncated hash", "$2a$12$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if h.Verify("anything", tt.hashed) {
				t.Error("expected verification to fail")
			}
		})
	}
}

// TestHasher_Hash_DistinctSalts は同一パスワードでもソルトにより異なるハッシュが生成されることを検証します。
func TestHasher_Hash_DistinctSalts(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	hash1, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hash2, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("expected different hashes for the same password")
	}
	if !h.Verify("secret123", hash1) || !h.Verify("secret123", hash2) {
		t.Error("expected both hashes to verify")
	}
}
