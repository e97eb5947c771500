// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash returns the 32-byte BLAKE3 digest of data.
func Hash(data []byte) []byte {
	sum := blake3.Sum256(data)
	return sum[:]
}

// HashString returns the hex encoded BLAKE3 digest of s. The photo cache
// uses it to derive file names from asset URLs.
func HashString(s string) string {
	return hex.EncodeToString(Hash([]byte(s)))
}
