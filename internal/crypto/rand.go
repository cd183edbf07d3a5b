package crypto

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"
)

func RandomBytes(size int) ([]byte, error) {
	data := make([]byte, size)

	read, err := rand.Read(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if read != size {
		return nil, errors.New("unexpected number of read bytes")
	}

	return data, nil
}

// RandomHex returns size cryptographically strong random bytes rendered as
// a fixed-width lowercase hexadecimal string of 2*size characters.
func RandomHex(size int) (string, error) {
	data, err := RandomBytes(size)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return hex.EncodeToString(data), nil
}
