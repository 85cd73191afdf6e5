package equihash

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dchest/blake2b"

	"github.com/zcash-collective/go-equihash/log"
)

// ErrInvalidParams is returned by New when (n, k) violate the parameter
// invariants: n > k, n = 0 mod 8, n/(k+1) = 0 mod 8, and n/(k+1)+1 below the
// 32-bit index width.
var ErrInvalidParams = errors.New("invalid equihash parameters")

// Mode defines the type and amount of PoW verification an equihash engine makes.
type Mode uint

const (
	ModeNormal Mode = iota
	ModeTest
	ModeFake
	ModeFullFake
)

// Config are the configuration parameters of the equihash engine.
type Config struct {
	// N is the bit width of the generalised-birthday hash outputs.
	N uint32 `toml:"n"`
	// K sets the number of collision rounds; solutions carry 2^K indices.
	K uint32 `toml:"k"`

	PowMode Mode

	Log log.Logger `toml:"-"`
}

// Equihash is the solver and verifier for the Equihash proof-of-work as used
// by the Zcash chain. Instances are safe for concurrent use: all mutable
// state lives in the per-call work lists.
type Equihash struct {
	config Config
}

// New creates an equihash engine for the given parameters.
func New(config Config) (*Equihash, error) {
	if err := validateParams(config.N, config.K); err != nil {
		return nil, err
	}
	if config.Log == nil {
		config.Log = log.Global
	}
	return &Equihash{config: config}, nil
}

// NewTester creates a small-parameter engine useful only for testing purposes.
func NewTester() *Equihash {
	equihash, err := New(Config{N: 48, K: 5, PowMode: ModeTest, Log: log.New(log.WithNullLogger())})
	if err != nil {
		panic(err)
	}
	return equihash
}

// NewFaker creates an equihash engine with a fake PoW scheme that accepts any
// solution of the right shape without hashing.
func NewFaker() *Equihash {
	equihash, err := New(Config{N: 48, K: 5, PowMode: ModeFake, Log: log.New(log.WithNullLogger())})
	if err != nil {
		panic(err)
	}
	return equihash
}

// NewFullFaker creates an equihash engine that accepts all solutions as valid,
// without checking any structure whatsoever.
func NewFullFaker() *Equihash {
	equihash, err := New(Config{N: 48, K: 5, PowMode: ModeFullFake, Log: log.New(log.WithNullLogger())})
	if err != nil {
		panic(err)
	}
	return equihash
}

func validateParams(n, k uint32) error {
	if k >= n {
		return fmt.Errorf("%w: n must be larger than k", ErrInvalidParams)
	}
	if n%8 != 0 {
		return fmt.Errorf("%w: parameters must satisfy n = 0 mod 8", ErrInvalidParams)
	}
	if (n/(k+1))%8 != 0 {
		return fmt.Errorf("%w: parameters must satisfy n/(k+1) = 0 mod 8", ErrInvalidParams)
	}
	// Indices are fixed at 32 bits; this is an implementation restriction,
	// not a protocol one.
	if n/(k+1)+1 >= 32 {
		return fmt.Errorf("%w: n/(k+1)+1 must fit a 32-bit index", ErrInvalidParams)
	}
	return nil
}

// CollisionBitLength is the number of hash prefix bits on which sibling rows
// must agree at each round.
func (equihash *Equihash) CollisionBitLength() uint32 {
	return equihash.config.N / (equihash.config.K + 1)
}

// CollisionByteLength is CollisionBitLength expressed in bytes.
func (equihash *Equihash) CollisionByteLength() uint32 {
	return equihash.CollisionBitLength() / 8
}

// SolutionWidth is the number of leaf indices in a solution, 2^k.
func (equihash *Equihash) SolutionWidth() uint32 {
	return 1 << equihash.config.K
}

func (equihash *Equihash) initialListSize() uint32 {
	return 1 << (equihash.CollisionBitLength() + 1)
}

// personal lays out the 16-byte BLAKE2b personalisation:
// "ZcashPOW" || le32(n) || le32(k).
func personal(n, k uint32) []byte {
	person := make([]byte, 0, blake2b.PersonSize)
	person = append(person, "ZcashPOW"...)
	person = binary.LittleEndian.AppendUint32(person, n)
	person = binary.LittleEndian.AppendUint32(person, k)
	return person
}

// HashState is the personalised BLAKE2b state seeded once per block-header
// pre-image. It is owned exclusively by the calls it is passed to.
type HashState struct {
	config   *blake2b.Config
	preimage []byte
}

// InitialiseState constructs the hash state for the given pre-image bytes.
// The pre-image is everything absorbed before the trailing leaf index; it is
// supplied by the block-header serializer.
func (equihash *Equihash) InitialiseState(preimage []byte) *HashState {
	return &HashState{
		config: &blake2b.Config{
			Size:   uint8(equihash.config.N / 8),
			Person: personal(equihash.config.N, equihash.config.K),
		},
		preimage: append([]byte(nil), preimage...),
	}
}

// hashLeaf finalises the indexed hash for leaf i: preimage || le32(i),
// producing exactly n/8 bytes.
func (state *HashState) hashLeaf(i uint32) []byte {
	h, err := blake2b.New(state.config)
	if err != nil {
		panic("equihash: bad hash configuration: " + err.Error())
	}
	h.Write(state.preimage)
	var index [4]byte
	binary.LittleEndian.PutUint32(index[:], i)
	h.Write(index[:])
	return h.Sum(nil)
}
