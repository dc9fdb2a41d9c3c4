package models

import "testing"

func TestBlob_Empty(t *testing.T) {
	if !Blob("").Empty() {
		t.Fatalf("zero blob must be empty")
	}
	if Blob("1AQAOMTQ5").Empty() {
		t.Fatalf("non-zero blob must not be empty")
	}
}
