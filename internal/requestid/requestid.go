package requestid

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/sqids/sqids-go"
)

const minLength = 10

// Generator produces short opaque request IDs from the process start second
// and a sequence number, so IDs do not repeat across restarts.
type Generator struct {
	sqids *sqids.Sqids
	epoch uint64
	seq   atomic.Uint64
}

func New(start time.Time) (*Generator, error) {
	s, err := sqids.New(sqids.Options{
		MinLength: minLength,
	})
	if err != nil {
		return nil, err
	}
	return &Generator{sqids: s, epoch: uint64(start.Unix())}, nil
}

func (g *Generator) Next() string {
	n := g.seq.Add(1)
	id, err := g.sqids.Encode([]uint64{g.epoch, n})
	if err != nil {
		return strconv.FormatUint(g.epoch, 36) + "-" + strconv.FormatUint(n, 36)
	}
	return id
}

// Decode returns the start second and sequence number behind id.
func (g *Generator) Decode(id string) (epoch, seq uint64, ok bool) {
	parts := g.sqids.Decode(id)
	if len(parts) != 2 {
		return 0, 0, false
	}
	return parts[0], parts[1], true
}
