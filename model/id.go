package model

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// NewID returns a 24-character hex identifier: a 4-byte unix timestamp
// followed by 8 random bytes. Records imported from the previous CMS keep
// their original ids, which share the same format.
func NewID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(b[4:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to
		// a nanosecond fill so create paths stay total.
		binary.BigEndian.PutUint64(b[4:], uint64(time.Now().UnixNano()))
	}
	return hex.EncodeToString(b[:])
}
