package util

import "testing"

func TestContentDigest(t *testing.T) {
	got := ContentDigest([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if ContentDigest(nil) == ContentDigest([]byte("a")) {
		t.Fatalf("different content must not share a digest")
	}
}
