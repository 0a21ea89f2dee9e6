// Package persist saves and loads a database.Database to and from disk.
// Spec.md §6.4/§9 leaves the on-disk format as an open question beyond "some
// serialization plus versioning to detect a stale/incompatible file"; this
// package resolves that by always writing a version tag and rejecting
// anything else outright (SPEC_FULL.md §6.4), rather than attempting any
// migration.
package persist

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/example/ixsearch/internal/database"
	"github.com/example/ixsearch/internal/ixerr"
)

var magic = [4]byte{'i', 'x', 'd', 'b'}

const formatVersion uint32 = 1

// header is the fixed-size preamble written ahead of the compressed,
// gob-encoded Database body. buildID has no semantic meaning to this
// package; it exists so a caller (e.g. a daemon watching for external
// rebuilds) can detect that a file was rewritten without comparing its
// whole contents.
type header struct {
	Magic   [4]byte
	Version uint32
	BuildID [16]byte
}

// Save writes db to path: header, then the gob-encoded body, the whole
// stream wrapped by a zstd writer. buildID is stamped into the header and
// also returned, so a caller can record it for change detection.
func Save(path string, db *database.Database) (buildID uuid.UUID, err error) {
	buildID = uuid.New()

	f, err := os.Create(path)
	if err != nil {
		return uuid.UUID{}, ixerr.NewIO(path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)

	h := header{Magic: magic, Version: formatVersion, BuildID: buildID}
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return uuid.UUID{}, ixerr.NewIO(path, err)
	}

	zw, err := zstd.NewWriter(bw)
	if err != nil {
		return uuid.UUID{}, ixerr.NewIO(path, err)
	}
	if err := gob.NewEncoder(zw).Encode(db); err != nil {
		zw.Close()
		return uuid.UUID{}, ixerr.NewIO(path, err)
	}
	if err := zw.Close(); err != nil {
		return uuid.UUID{}, ixerr.NewIO(path, err)
	}
	if err := bw.Flush(); err != nil {
		return uuid.UUID{}, ixerr.NewIO(path, err)
	}
	return buildID, nil
}

// Load reads a database previously written by Save. A magic or version
// mismatch returns ixerr.ErrLoadFormat rather than attempting to interpret
// the body.
func Load(path string) (*database.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ixerr.NewIO(path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)

	var h header
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ixerr.ErrLoadFormat
		}
		return nil, ixerr.NewIO(path, err)
	}
	if !bytes.Equal(h.Magic[:], magic[:]) || h.Version != formatVersion {
		return nil, ixerr.ErrLoadFormat
	}

	zr, err := zstd.NewReader(br)
	if err != nil {
		return nil, ixerr.ErrLoadFormat
	}
	defer zr.Close()

	var db database.Database
	if err := gob.NewDecoder(zr).Decode(&db); err != nil {
		return nil, ixerr.ErrLoadFormat
	}
	return &db, nil
}
