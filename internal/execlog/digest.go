package execlog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Digest is a content fingerprint for one file: hash algorithm name,
// lowercase hex hash, and byte size. Value type, immutable once parsed.
type Digest struct {
	HashFunctionName string
	Hash             string
	SizeBytes        uint64
}

// Equal reports exact field-wise equality. Differing size, hash, or
// algorithm all make two digests unequal.
func (d Digest) Equal(o Digest) bool {
	return d.HashFunctionName == o.HashFunctionName &&
		d.Hash == o.Hash &&
		d.SizeBytes == o.SizeBytes
}

// String renders the digest in the report form used by view/cmp output.
func (d Digest) String() string {
	return fmt.Sprintf("{Bytes: %d, %s: %s}", d.SizeBytes, d.HashFunctionName, d.Hash)
}

type wireDigest struct {
	Hash             string      `json:"hash"`
	SizeBytes        flexibleInt `json:"sizeBytes"`
	HashFunctionName string      `json:"hashFunctionName"`
}

// flexibleInt accepts a JSON number or a quoted decimal string. Bazel
// emits int64 fields as strings in its JSON execution log.
type flexibleInt uint64

func (f *flexibleInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", string(b))
	}
	*f = flexibleInt(n)
	return nil
}

var _ json.Unmarshaler = (*flexibleInt)(nil)
