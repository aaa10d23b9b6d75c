// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildChangesSinceQuery_SQLContainsParts(t *testing.T) {
	query, args, err := buildChangesSinceQuery(42, "device-1", 1337, 500)
	require.NoError(t, err)

	q := strings.ToLower(query)

	require.Contains(t, q, "from entity_changes c")
	require.Contains(t, q, "join project_members m on m.project_id = c.project_id")
	require.Contains(t, q, "m.user_id = $1")
	require.Contains(t, q, "c.change_id > $2")
	require.NotContains(t, q, "changed_at >")
	require.Contains(t, q, "c.device_id <> $3")
	require.Contains(t, q, "order by c.change_id asc")
	require.Contains(t, q, "limit 500")

	require.Len(t, args, 3)
	assert.Equal(t, int64(42), args[0])
	assert.Equal(t, int64(1337), args[1])
	assert.Equal(t, "device-1", args[2])
}

func Test_buildChangesSinceQuery(t *testing.T) {
	tests := []struct {
		name         string
		deviceID     string
		limit        uint64
		wantArgs     int
		wantDevice   bool
		wantLimitSQL bool
	}{
		{name: "with device and limit", deviceID: "d", limit: 10, wantArgs: 3, wantDevice: true, wantLimitSQL: true},
		{name: "without device", deviceID: "", limit: 10, wantArgs: 2, wantDevice: false, wantLimitSQL: true},
		{name: "without limit", deviceID: "d", limit: 0, wantArgs: 3, wantDevice: true, wantLimitSQL: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildChangesSinceQuery(1, tt.deviceID, 0, tt.limit)
			require.NoError(t, err)

			q := strings.ToLower(query)
			assert.Len(t, args, tt.wantArgs)
			assert.Equal(t, tt.wantDevice, strings.Contains(q, "c.device_id <>"))
			assert.Equal(t, tt.wantLimitSQL, strings.Contains(q, "limit"))
		})
	}
}

func Test_buildListProjectsQuery(t *testing.T) {
	query, args, err := buildListProjectsQuery(7)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "select p.project_id, p.name, m.role, p.created_at")
	require.Contains(t, q, "from projects p")
	require.Contains(t, q, "m.user_id = $1")
	require.Equal(t, []any{int64(7)}, args)
}

func Test_nullableJSON(t *testing.T) {
	assert.Nil(t, nullableJSON(nil))
	assert.Nil(t, nullableJSON([]byte{}))
	assert.Equal(t, []byte(`{"a":1}`), nullableJSON([]byte(`{"a":1}`)))
}

func Test_buildFindUserQuery(t *testing.T) {
	query, args, err := buildFindUserQuery("login", "ada")
	require.NoError(t, err)

	assert.Equal(t, "SELECT user_id, login, password_hash, name, created_at FROM users WHERE login = $1", query)
	assert.Equal(t, []any{"ada"}, args)
}
