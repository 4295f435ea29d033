package facts

import (
	"fmt"
	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns the 64-bit HighwayHash of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint returns hex encoded Hash of data
func Fingerprint(data []byte) (string, error) {
	sum, err := Hash(data)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", sum), nil
}
