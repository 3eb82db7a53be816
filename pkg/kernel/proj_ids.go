package kernel

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// JobID is the posting identifier supplied by the upstream job feed
type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (r JobID) String() string { return string(r) }
func (r JobID) IsEmpty() bool  { return string(r) == "" }

// PointID addresses a point inside a vector index collection
type PointID uint64

// StablePointID derives a point id from a string key: the first 15 hex
// digits of its SHA-256, read as an unsigned integer. The result is always
// positive and below 2^60, so it also fits a signed BIGINT column.
func StablePointID(key string) PointID {
	sum := sha256.Sum256([]byte(key))
	digest := hex.EncodeToString(sum[:])

	n, err := strconv.ParseUint(digest[:15], 16, 64)
	if err != nil {
		// 15 hex digits always parse into 60 bits
		panic(err)
	}
	return PointID(n)
}

func (p PointID) Uint64() uint64 { return uint64(p) }
func (p PointID) Int64() int64   { return int64(p) }
