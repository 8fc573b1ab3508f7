package idforge

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	snowflakeTimestampBits = 41
	snowflakeNodeBits      = 10
	snowflakeSequenceBits  = 12

	snowflakeMaxNode     = (1 << snowflakeNodeBits) - 1     // 1023
	snowflakeMaxSequence = (1 << snowflakeSequenceBits) - 1 // 4095

	snowflakeNodeShift      = snowflakeSequenceBits
	snowflakeTimestampShift = snowflakeSequenceBits + snowflakeNodeBits

	// DefaultSnowflakeEpoch is 2024-01-01T00:00:00Z in unix milliseconds.
	DefaultSnowflakeEpoch = int64(1704067200000)
)

// SnowflakeGenerator produces 64-bit snowflake ids:
// 1 zero sign bit, 41 timestamp bits (ms since the custom epoch), 10 node
// bits and 12 sequence bits. The string form is the decimal int64.
type SnowflakeGenerator struct {
	now func() int64 // unix ms, swappable in tests

	mu       sync.Mutex
	epoch    int64
	nodeID   int64
	sequence int64
	lastTime int64
}

// NewSnowflake validates cfg and returns a snowflake generator. NodeID must
// be in [0, 1023]; a zero Epoch selects DefaultSnowflakeEpoch.
func NewSnowflake(cfg SnowflakeConfig) (*SnowflakeGenerator, error) {
	if cfg.NodeID < 0 || cfg.NodeID > snowflakeMaxNode {
		return nil, fmt.Errorf("%w: snowflake node id must be between 0 and %d, got %d", ErrConfig, snowflakeMaxNode, cfg.NodeID)
	}
	epoch := cfg.Epoch
	if epoch == 0 {
		epoch = DefaultSnowflakeEpoch
	}
	if epoch < 0 {
		return nil, fmt.Errorf("%w: snowflake epoch must not be negative", ErrConfig)
	}
	return &SnowflakeGenerator{
		now:    func() int64 { return time.Now().UnixMilli() },
		epoch:  epoch,
		nodeID: cfg.NodeID,
	}, nil
}

func (g *SnowflakeGenerator) Name() string { return string(KindSnowflake) }

func (g *SnowflakeGenerator) Generate() (ID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generateLocked()
}

func (g *SnowflakeGenerator) GenerateBatch(count int) ([]ID, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: batch count must not be negative, got %d", ErrConfig, count)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	ids := make([]ID, 0, count)
	for i := 0; i < count; i++ {
		id, err := g.generateLocked()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// generateLocked must be called with g.mu held.
func (g *SnowflakeGenerator) generateLocked() (ID, error) {
	now := g.now()
	if now-g.epoch < 0 {
		return ID{}, fmt.Errorf("%w: current time is before the snowflake epoch", ErrConfig)
	}
	if now < g.lastTime {
		return ID{}, fmt.Errorf("%w: current=%d last=%d", ErrClockBackwards, now, g.lastTime)
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) & snowflakeMaxSequence
		if g.sequence == 0 {
			// Sequence exhausted; spin until the clock advances.
			for now <= g.lastTime {
				now = g.now()
			}
		}
	} else {
		g.sequence = 0
	}
	g.lastTime = now

	n := (now-g.epoch)<<snowflakeTimestampShift | g.nodeID<<snowflakeNodeShift | g.sequence
	return g.snowflakeID(n), nil
}

// Parse accepts the decimal string form of a non-negative int64.
func (g *SnowflakeGenerator) Parse(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("%w: snowflake is not a decimal int64: %v", ErrFormat, err)
	}
	if n < 0 {
		return ID{}, fmt.Errorf("%w: snowflake must not be negative", ErrFormat)
	}
	return g.snowflakeID(n), nil
}

func (g *SnowflakeGenerator) IsValid(s string) bool {
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && n >= 0
}

func (g *SnowflakeGenerator) snowflakeID(n int64) ID {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(n))
	return ID{
		kind:     KindSnowflake,
		str:      strconv.FormatInt(n, 10),
		raw:      raw,
		ts:       (n >> snowflakeTimestampShift) + g.epoch,
		sortable: false, // decimal strings of differing length do not sort lexicographically
	}
}
