package models

// SyncConflict describes a detected version divergence between the local and
// server copies of one entity. The pull synchronizer constructs conflicts;
// the resolver consumes them. A conflict is not an error: local state is left
// untouched until resolution.
type SyncConflict struct {
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`

	// LocalVersion and ServerVersion are the diverged version counters.
	LocalVersion  int64 `json:"local_version"`
	ServerVersion int64 `json:"server_version"`

	// LocalData and ServerData are the full envelopes of both copies at
	// detection time.
	LocalData  Entity `json:"local_data"`
	ServerData Entity `json:"server_data"`

	// ConflictedFields names exactly the payload fields whose values differ
	// between LocalData and ServerData, sorted.
	ConflictedFields []string `json:"conflicted_fields"`
}

// RemoteConflict is the wire form of a conflict reported by the server in a
// push response. The server only knows its own copy; the client joins it with
// local state to build a full SyncConflict.
type RemoteConflict struct {
	EntityID      string `json:"entity_id"`
	ServerVersion int64  `json:"server_version"`
	ServerData    Entity `json:"server_data"`
}
