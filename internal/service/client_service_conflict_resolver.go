package service

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

// Reasons recorded on resolutions.
const (
	ReasonRemoteNewer      = "Remote version is newer"
	ReasonLocalNewer       = "Local version is newer"
	ReasonIdentical        = "Contents are identical"
	ReasonLocalSuperset    = "Local content includes remote content"
	ReasonRemoteSuperset   = "Remote content includes local content"
	ReasonMergedWithMarker = "Contents diverged, merged with conflict markers"
	ReasonManual           = "No automatic rule applies, keeping local version until reviewed"
)

const (
	markerLocal  = "<<<<<<< LOCAL"
	markerSplit  = "======="
	markerRemote = ">>>>>>> REMOTE"
)

// timestampField is the payload field carrying the last modification time,
// either an RFC 3339 string or epoch milliseconds.
const timestampField = "updatedAt"

// freeTextFields are the payload fields eligible for a textual merge, in the
// order they are tried.
var freeTextFields = []string{"content", "text", "body", "notes", "description", "summary"}

type conflictResolver struct{}

// NewConflictResolver returns the resolver applying, in order: timestamp
// precedence, content merge of free-text fields, manual deferral.
func NewConflictResolver() ConflictResolver {
	return &conflictResolver{}
}

// Resolve implements [ConflictResolver].
func (r *conflictResolver) Resolve(local, remote models.EntityVersion) models.Resolution {
	localFields := decodeFields(local.Payload)
	remoteFields := decodeFields(remote.Payload)

	if res, ok := byTimestamp(localFields, remoteFields); ok {
		return res
	}
	if res, ok := byContent(local.Payload, localFields, remoteFields); ok {
		return res
	}

	return models.Resolution{
		Strategy:       models.StrategyManual,
		Winner:         models.SideLocal,
		Reason:         ReasonManual,
		RequiresReview: true,
	}
}

func byTimestamp(local, remote map[string]json.RawMessage) (models.Resolution, bool) {
	lt, lok := parseTimestamp(local[timestampField])
	rt, rok := parseTimestamp(remote[timestampField])
	if !lok || !rok || lt.Equal(rt) {
		return models.Resolution{}, false
	}

	if rt.After(lt) {
		return models.Resolution{Strategy: models.StrategyOverwrite, Winner: models.SideRemote, Reason: ReasonRemoteNewer}, true
	}
	return models.Resolution{Strategy: models.StrategyOverwrite, Winner: models.SideLocal, Reason: ReasonLocalNewer}, true
}

func byContent(localPayload json.RawMessage, local, remote map[string]json.RawMessage) (models.Resolution, bool) {
	for _, field := range freeTextFields {
		ls, lok := stringField(local, field)
		rs, rok := stringField(remote, field)
		if !lok || !rok {
			continue
		}

		switch {
		case ls == rs:
			return models.Resolution{Strategy: models.StrategyMerge, Winner: models.SideLocal, Reason: ReasonIdentical}, true
		case strings.Contains(ls, rs):
			return models.Resolution{Strategy: models.StrategyMerge, Winner: models.SideLocal, Reason: ReasonLocalSuperset}, true
		case strings.Contains(rs, ls):
			return models.Resolution{Strategy: models.StrategyMerge, Winner: models.SideRemote, Reason: ReasonRemoteSuperset}, true
		}

		merged, err := withField(localPayload, field, mergeWithMarkers(ls, rs))
		if err != nil {
			return models.Resolution{}, false
		}
		return models.Resolution{
			Strategy:       models.StrategyMerge,
			Winner:         models.SideMerged,
			MergedPayload:  merged,
			Reason:         ReasonMergedWithMarker,
			RequiresReview: true,
		}, true
	}

	return models.Resolution{}, false
}

func mergeWithMarkers(local, remote string) string {
	var b strings.Builder
	b.WriteString(markerLocal)
	b.WriteByte('\n')
	b.WriteString(local)
	b.WriteByte('\n')
	b.WriteString(markerSplit)
	b.WriteByte('\n')
	b.WriteString(remote)
	b.WriteByte('\n')
	b.WriteString(markerRemote)
	return b.String()
}

func decodeFields(payload json.RawMessage) map[string]json.RawMessage {
	if len(payload) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil
	}
	return fields
}

func stringField(fields map[string]json.RawMessage, name string) (string, bool) {
	raw, ok := fields[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func parseTimestamp(raw json.RawMessage) (time.Time, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t, true
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms), true
		}
		return time.Time{}, false
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if ms, err := n.Int64(); err == nil {
			return time.UnixMilli(ms), true
		}
		if f, err := n.Float64(); err == nil {
			return time.UnixMilli(int64(f)), true
		}
	}
	return time.Time{}, false
}

// withField returns payload with field set to value, keeping the other
// fields as they are.
func withField(payload json.RawMessage, field, value string) (json.RawMessage, error) {
	fields := decodeFields(payload)
	if fields == nil {
		fields = make(map[string]json.RawMessage, 1)
	}
	encoded, err := encodeVerbatim(value)
	if err != nil {
		return nil, err
	}
	fields[field] = encoded
	return encodeVerbatim(fields)
}

// encodeVerbatim is json.Marshal without HTML escaping, so conflict markers
// stay readable in the stored payload.
func encodeVerbatim(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
