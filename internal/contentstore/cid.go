package contentstore

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ComputeCID returns a CIDv1 string using the "raw" multicodec and a
// sha2-256 multihash. This is the identifier contract every Store backend
// follows, so identifiers computed offline match what a gateway would assign
// to the same bytes.
func ComputeCID(data []byte) (string, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", err
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

// ValidCID reports whether value parses as a content identifier.
func ValidCID(value string) bool {
	_, err := cid.Decode(value)
	return err == nil
}
