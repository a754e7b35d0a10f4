package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"novel/internal/diag"
	"novel/internal/lexer"
)

// Digest is a cache key.
type Digest [32]byte

// combineDigest: H(content || parts...). parts уже в детерминированном порядке.
func combineDigest(content [32]byte, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// CacheKey identifies the token dump of a unit: its content hash mixed with
// everything that changes what the tokenizer emits for the same bytes and
// the policy bits that decide which diagnostics a clean run could have hidden.
func CacheKey(content [32]byte, opts lexer.Options, policy diag.Policy) Digest {
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], tokenCacheSchemaVersion)
	return combineDigest(content, schema[:], []byte{byte(opts.Directives), policyBits(policy)})
}

func policyBits(p diag.Policy) byte {
	var b byte
	if p.SuppressNotes {
		b |= 1 << 0
	}
	if p.SuppressWarnings {
		b |= 1 << 1
	}
	if p.WarningsAsErrors {
		b |= 1 << 2
	}
	return b
}
