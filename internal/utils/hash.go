package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashJSON returns the hex HMAC-SHA256 of the JSON encoding of v. The server
// and the client both hash the decoded operations slice, so the field order
// of the original request body does not matter.
func HashJSON(v any, hashKey string) (string, error) {
	sum, err := sumJSON(v, hashKey)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}

// VerifyJSON reports whether hexSum is the HashJSON of v. The comparison is
// constant time; a sum that is not valid hex never matches.
func VerifyJSON(v any, hashKey, hexSum string) (bool, error) {
	want, err := hex.DecodeString(hexSum)
	if err != nil {
		return false, nil
	}
	got, err := sumJSON(v, hashKey)
	if err != nil {
		return false, err
	}
	return hmac.Equal(got, want), nil
}

func sumJSON(v any, hashKey string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value for hashing: %w", err)
	}
	mac := hmac.New(sha256.New, []byte(hashKey))
	mac.Write(data)
	return mac.Sum(nil), nil
}
