package utils

import (
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestNewBookingRefShape(t *testing.T) {
    for i := 0; i < 1000; i++ {
        ref := NewBookingRef()
        assert.Len(t, ref, 8)
        for _, ch := range ref {
            assert.True(t, strings.ContainsRune(refAlphabet, ch),
                "unexpected character %q in reference %q", ch, ref)
        }
    }
}
