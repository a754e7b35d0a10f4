package driver_test

import (
	"crypto/sha256"
	"testing"

	"novel/internal/diag"
	"novel/internal/driver"
	"novel/internal/lexer"
)

func TestCacheKeyDeterministic(t *testing.T) {
	h := sha256.Sum256([]byte("scene"))
	a := driver.CacheKey(h, lexer.Options{}, diag.Policy{})
	b := driver.CacheKey(h, lexer.Options{}, diag.Policy{})
	if a != b {
		t.Fatal("same input must give the same key")
	}
	if a == driver.Digest(h) {
		t.Fatal("key must differ from the raw content hash")
	}
}

func TestCacheKeyVariesWithInputs(t *testing.T) {
	h1 := sha256.Sum256([]byte("scene"))
	h2 := sha256.Sum256([]byte("scene2"))
	base := driver.CacheKey(h1, lexer.Options{}, diag.Policy{})
	if base == driver.CacheKey(h2, lexer.Options{}, diag.Policy{}) {
		t.Error("content change must change the key")
	}
	if base == driver.CacheKey(h1, lexer.Options{Directives: lexer.DirectivesEmit}, diag.Policy{}) {
		t.Error("directive mode must change the key")
	}
	for _, p := range []diag.Policy{{SuppressWarnings: true}, {SuppressNotes: true}, {WarningsAsErrors: true}} {
		if base == driver.CacheKey(h1, lexer.Options{}, p) {
			t.Errorf("policy %+v must change the key", p)
		}
	}
	if base != driver.CacheKey(h1, lexer.Options{}, diag.Policy{MaxErrors: 3}) {
		t.Error("error cutoff must not change the key")
	}
}
