package payment

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
	"time"

	domledger "github.com/Zhima-Mochi/streetsmart/internal/domain/ledger"
)

// Clock drives the simulated processing wait and the auto-reset.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

// RandomSource returns values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// TransactionRecorder stores a completed payment in the ledger.
type TransactionRecorder interface {
	RecordPayment(ctx context.Context, description string, amount float64) (*domledger.Transaction, error)
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock uses the runtime timers.
func RealClock() Clock { return realClock{} }

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewRandomSource returns a goroutine-safe generator seeded from crypto/rand.
func NewRandomSource() RandomSource {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		binary.LittleEndian.PutUint64(seed[:], uint64(time.Now().UnixNano()))
	}
	return &lockedRand{r: rand.New(rand.NewChaCha8(seed))}
}
