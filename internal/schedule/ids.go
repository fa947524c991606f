package schedule

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGen produces unique ids for slots and tasks. Injected so tests can run
// with a deterministic sequence.
type IDGen interface {
	NextID(prefix string) string
}

type randomIDGen struct{}

// NewRandomIDGen returns the production generator: prefix plus a short
// random suffix, e.g. "task-1f2a9c3b".
func NewRandomIDGen() IDGen {
	return randomIDGen{}
}

func (randomIDGen) NextID(prefix string) string {
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "-" + short
}

// SequenceIDGen numbers ids from 1 in call order.
type SequenceIDGen struct {
	n atomic.Int64
}

func (g *SequenceIDGen) NextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, g.n.Add(1))
}
