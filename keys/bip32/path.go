package bip32

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// HardenedIndexStart is the first child number of a hardened derivation.
const HardenedIndexStart = 0x80000000

// IsHardened returns whether child number i is a hardened derivation.
func IsHardened(i uint32) bool {
	return i >= HardenedIndexStart
}

// DerivationPath lists the child numbers leading from a master key to a
// descendant.
type DerivationPath []uint32

// ParsePath parses a path in the "m/0'/1/2h" notation. Both ' and h mark a
// hardened child.
func ParsePath(pathString string) (DerivationPath, error) {
	parts := strings.Split(pathString, "/")
	if parts[0] != "m" {
		return nil, errors.Errorf("path %q must start with m", pathString)
	}

	path := make(DerivationPath, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid child number in path %q", pathString)
		}
		if index >= HardenedIndexStart {
			return nil, errors.Errorf("child number %d in path %q is out of range",
				index, pathString)
		}
		if hardened {
			index += HardenedIndexStart
		}
		path = append(path, uint32(index))
	}

	return path, nil
}

// String returns the path in "m/0'/1" notation.
func (path DerivationPath) String() string {
	var builder strings.Builder
	builder.WriteString("m")
	for _, index := range path {
		if IsHardened(index) {
			fmt.Fprintf(&builder, "/%d'", index-HardenedIndexStart)
		} else {
			fmt.Fprintf(&builder, "/%d", index)
		}
	}
	return builder.String()
}

// KeySource identifies a key by the fingerprint of its master key and the
// path from that master key.
type KeySource struct {
	Fingerprint Fingerprint
	Path        DerivationPath
}

// String returns the source as "[fingerprint/path]" like output descriptors
// print it.
func (source KeySource) String() string {
	return fmt.Sprintf("[%x%s]", source.Fingerprint[:],
		strings.TrimPrefix(source.Path.String(), "m"))
}
