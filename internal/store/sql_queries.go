package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (login, password_hash, name)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, password_hash, name, created_at;`

	createProject = `INSERT INTO projects (name)
    VALUES ($1)
    RETURNING project_id, name, created_at;`

	addProjectMember = `INSERT INTO project_members (project_id, user_id, role)
    VALUES ($1, $2, $3)
    ON CONFLICT (project_id, user_id) DO UPDATE SET role = EXCLUDED.role;`

	hasProjectAccess = `SELECT EXISTS (
        SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2
    );`

	upsertDevice = `INSERT INTO devices (device_id, user_id, name, platform, protocol_version, last_seen)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (device_id) DO UPDATE SET
        name = EXCLUDED.name,
        platform = EXCLUDED.platform,
        protocol_version = EXCLUDED.protocol_version,
        last_seen = EXCLUDED.last_seen;`

	findAppliedOperation = `SELECT version FROM applied_operations WHERE operation_id = $1;`

	lockEntity = `SELECT payload, version, deleted, device_id
    FROM entities
    WHERE project_id = $1 AND entity_type = $2 AND entity_id = $3
    FOR UPDATE;`

	upsertEntity = `INSERT INTO entities (project_id, entity_type, entity_id, payload, version, deleted, device_id, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
    ON CONFLICT (project_id, entity_type, entity_id) DO UPDATE SET
        payload = EXCLUDED.payload,
        version = EXCLUDED.version,
        deleted = EXCLUDED.deleted,
        device_id = EXCLUDED.device_id,
        updated_at = NOW();`

	insertEntityChange = `INSERT INTO entity_changes (project_id, entity_type, entity_id, kind, payload, version, device_id, user_id)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	insertAppliedOperation = `INSERT INTO applied_operations (operation_id, user_id, device_id, version)
    VALUES ($1, $2, $3, $4);`

	// lockChangeFeed serializes change id allocation with commit order, so a
	// reader never sees a change id before every smaller one is committed.
	lockChangeFeed = `SELECT pg_advisory_xact_lock(7316001);`

	getDocument = `SELECT document_id, project_id, kind, content, version, updated_at
    FROM documents
    WHERE document_id = $1;`

	saveDocument = `INSERT INTO documents (document_id, project_id, kind, content, version, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (document_id) DO UPDATE SET
        content = EXCLUDED.content,
        version = EXCLUDED.version,
        updated_at = EXCLUDED.updated_at
    WHERE documents.version <= EXCLUDED.version;`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildChangesSinceQuery selects the change feed of every project userID is
// a member of after the change id cursor, skipping the changes made by the
// requesting device.
func buildChangesSinceQuery(userID int64, excludeDeviceID string, after int64, limit uint64) (string, []any, error) {
	q := psql.
		Select(
			"c.change_id",
			"c.project_id",
			"c.entity_type",
			"c.entity_id",
			"c.kind",
			"c.payload",
			"c.version",
			"c.device_id",
			"c.changed_at",
		).
		From("entity_changes c").
		Join("project_members m ON m.project_id = c.project_id").
		Where(sq.Eq{"m.user_id": userID}).
		Where(sq.Gt{"c.change_id": after})

	if excludeDeviceID != "" {
		q = q.Where(sq.NotEq{"c.device_id": excludeDeviceID})
	}

	q = q.OrderBy("c.change_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	return q.ToSql()
}

// buildFindUserQuery selects the user whose column equals value.
func buildFindUserQuery(column string, value any) (string, []any, error) {
	return psql.
		Select("user_id", "login", "password_hash", "name", "created_at").
		From("users").
		Where(sq.Eq{column: value}).
		ToSql()
}

// buildListProjectsQuery selects the projects userID is a member of.
func buildListProjectsQuery(userID int64) (string, []any, error) {
	return psql.
		Select("p.project_id", "p.name", "m.role", "p.created_at").
		From("projects p").
		Join("project_members m ON m.project_id = p.project_id").
		Where(sq.Eq{"m.user_id": userID}).
		OrderBy("p.project_id ASC").
		ToSql()
}

// nullableJSON maps an empty payload to SQL NULL.
func nullableJSON(payload []byte) any {
	if len(payload) == 0 {
		return nil
	}
	return payload
}
