// Copyright 2026 The Greentic Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
)

// Digest is a 128-bit content digest: the first 16 bytes of the
// unkeyed BLAKE3 hash. Content-derived identifiers are built from it,
// so the digest function and truncation are fixed for good.
type Digest [16]byte

// Digest128 returns the truncated BLAKE3 digest of data.
func Digest128(data []byte) Digest {
	sum := blake3.Sum256(data)
	var digest Digest
	copy(digest[:], sum[:16])
	return digest
}

// String returns the Crockford base32 form of the digest.
func (d Digest) String() string {
	return EncodeBase32(d[:])
}

// crockfordAlphabet omits I, L, O and U.
const crockfordAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var crockford = base32.NewEncoding(crockfordAlphabet).WithPadding(base32.NoPadding)

// EncodeBase32 returns the unpadded, upper-case Crockford base32
// encoding of data.
func EncodeBase32(data []byte) string {
	return crockford.EncodeToString(data)
}

// DecodeBase32 decodes unpadded Crockford base32. Lower-case input is
// accepted.
func DecodeBase32(text string) ([]byte, error) {
	decoded, err := crockford.DecodeString(strings.ToUpper(text))
	if err != nil {
		return nil, fmt.Errorf("codec: invalid base32 %q: %w", text, err)
	}
	return decoded, nil
}
