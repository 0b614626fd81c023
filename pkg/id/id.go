package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// Seed a PRNG from crypto/rand so ULID entropy is unpredictable.
	// ulid.Monotonic keeps IDs generated within the same millisecond
	// lexicographically increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string (time-sortable identifier).
//
// Audit decisions are written append-only and listed by recency, so a
// time-ordered primary key keeps the sqlite index cheap.
func New() string {
	return NewAt(time.Now().UTC())
}

// NewAt returns a ULID for an explicit timestamp. Tests use it to build
// records with deterministic ordering.
func NewAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	uid, err := ulid.New(ulid.Timestamp(t), mono)
	if err != nil {
		// Only possible if time goes backwards past the epoch or the
		// entropy source fails.
		panic(err)
	}
	return uid.String()
}
