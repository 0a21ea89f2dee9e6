package database

import (
	"bytes"
	"encoding/gob"
	"time"
)

// gobRootEntry and gobDatabase mirror rootEntry/Database with exported
// fields, since encoding/gob cannot see across a package boundary's
// unexported fields — including, importantly, Database's own when it is
// encoded by a caller in another package (internal/persist). Database
// implements gob.GobEncoder/GobDecoder itself so that round trip happens
// entirely inside this package, where the private fields are visible.
type gobRootEntry struct {
	ID   EntryID
	Path string
}

type gobDatabase struct {
	NameArena []byte
	Nodes     []EntryNode
	Roots     []gobRootEntry

	IndexFlags StatusFlags

	Size     []uint64
	Mode     []uint32
	Created  []time.Duration
	Modified []time.Duration
	Accessed []time.Duration

	SortedIDs [numStatusKinds][]EntryID
}

// GobEncode implements gob.GobEncoder.
func (db *Database) GobEncode() ([]byte, error) {
	mirror := gobDatabase{
		NameArena:  db.nameArena,
		Nodes:      db.nodes,
		IndexFlags: db.indexFlags,
		Size:       db.size,
		Mode:       db.mode,
		Created:    db.created,
		Modified:   db.modified,
		Accessed:   db.accessed,
		SortedIDs:  db.sortedIDs,
	}
	mirror.Roots = make([]gobRootEntry, len(db.roots))
	for i, r := range db.roots {
		mirror.Roots[i] = gobRootEntry{ID: r.id, Path: r.path}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&mirror); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (db *Database) GobDecode(data []byte) error {
	var mirror gobDatabase
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&mirror); err != nil {
		return err
	}

	db.nameArena = mirror.NameArena
	db.nodes = mirror.Nodes
	db.indexFlags = mirror.IndexFlags
	db.size = mirror.Size
	db.mode = mirror.Mode
	db.created = mirror.Created
	db.modified = mirror.Modified
	db.accessed = mirror.Accessed
	db.sortedIDs = mirror.SortedIDs

	db.roots = make([]rootEntry, len(mirror.Roots))
	for i, r := range mirror.Roots {
		db.roots[i] = rootEntry{id: r.ID, path: r.Path}
	}
	return nil
}
