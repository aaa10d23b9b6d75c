// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "test-secret-key"

func TestHashJSON_IsHexHMACOfEncoding(t *testing.T) {
	ops := []models.SyncOperation{
		{ID: "op-1", Kind: models.OperationUpdate, EntityType: "scene", EntityID: "s1", Payload: json.RawMessage(`{"title":"A"}`)},
	}

	got, err := HashJSON(ops, testHashKey)
	require.NoError(t, err)

	encoded, err := json.Marshal(ops)
	require.NoError(t, err)
	mac := hmac.New(sha256.New, []byte(testHashKey))
	mac.Write(encoded)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), got)
}

// Two bodies with the same values in a different field order hash the same
// once decoded into the operation type and encoded again.
func TestHashJSON_FieldOrderOfBodyDoesNotMatter(t *testing.T) {
	body1 := []byte(`[{"id":"op-1","kind":"update","entity_type":"scene","entity_id":"s1"}]`)
	body2 := []byte(`[{"entity_id":"s1","entity_type":"scene","kind":"update","id":"op-1"}]`)

	var ops1, ops2 []models.SyncOperation
	require.NoError(t, json.Unmarshal(body1, &ops1))
	require.NoError(t, json.Unmarshal(body2, &ops2))

	h1, err := HashJSON(ops1, testHashKey)
	require.NoError(t, err)
	h2, err := HashJSON(ops2, testHashKey)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
}

func TestHashJSON_UnsupportedValue(t *testing.T) {
	_, err := HashJSON(make(chan int), testHashKey)
	require.Error(t, err)

	_, err = VerifyJSON(make(chan int), testHashKey, "00")
	require.Error(t, err)
}

func TestVerifyJSON(t *testing.T) {
	ops := []models.SyncOperation{{ID: "op-1", EntityType: "scene", EntityID: "s1"}}
	sum, err := HashJSON(ops, testHashKey)
	require.NoError(t, err)

	tests := []struct {
		name string
		key  string
		sum  string
		want bool
	}{
		{name: "matching", key: testHashKey, sum: sum, want: true},
		{name: "other key", key: "other", sum: sum},
		{name: "not hex", key: testHashKey, sum: "zz"},
		{name: "empty", key: testHashKey, sum: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := VerifyJSON(ops, tt.key, tt.sum)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
