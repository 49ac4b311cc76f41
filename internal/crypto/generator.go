package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	specialChars   = "!@#$%^&*()_+[]{}|;:,.<>?"

	DefaultMaxLength = 50
)

var (
	ErrInvalidLength            = errors.New("invalid password length")
	ErrNoCharacterClassSelected = errors.New("at least one character class must be selected")
	ErrEntropyUnavailable       = errors.New("random source unavailable")
)

// CharacterClass names one of the fixed alphabets a password may draw from.
type CharacterClass struct {
	Name     string
	Alphabet string
}

// Classes lists every character class in alphabet concatenation order.
func Classes() []CharacterClass {
	return []CharacterClass{
		{Name: "lowercase", Alphabet: lowercaseChars},
		{Name: "uppercase", Alphabet: uppercaseChars},
		{Name: "digits", Alphabet: digitChars},
		{Name: "specials", Alphabet: specialChars},
	}
}

// ClassSet selects which character classes are enabled.
type ClassSet struct {
	Lowercase bool
	Uppercase bool
	Digits    bool
	Specials  bool
}

func (c ClassSet) enabled() []bool {
	return []bool{c.Lowercase, c.Uppercase, c.Digits, c.Specials}
}

// Alphabet concatenates the alphabets of the enabled classes.
func (c ClassSet) Alphabet() string {
	on := c.enabled()
	var sb strings.Builder
	for i, class := range Classes() {
		if on[i] {
			sb.WriteString(class.Alphabet)
		}
	}
	return sb.String()
}

// Names returns the names of the enabled classes.
func (c ClassSet) Names() []string {
	on := c.enabled()
	names := make([]string, 0, len(on))
	for i, class := range Classes() {
		if on[i] {
			names = append(names, class.Name)
		}
	}
	return names
}

// Empty reports whether no class is enabled.
func (c ClassSet) Empty() bool {
	return !c.Lowercase && !c.Uppercase && !c.Digits && !c.Specials
}

// EntropyBits returns the entropy of a password of the given length drawn
// uniformly from the enabled alphabet.
func (c ClassSet) EntropyBits(length int) float64 {
	n := len(c.Alphabet())
	if n == 0 || length <= 0 {
		return 0
	}
	return float64(length) * math.Log2(float64(n))
}

// Request describes a single password to generate.
type Request struct {
	Length  int
	Classes ClassSet
}

// Generator draws passwords from a random source. It is safe for concurrent use.
type Generator struct {
	source    io.Reader
	mu        *sync.Mutex // nil when source is crypto/rand
	maxLength int
}

// NewGenerator returns a generator reading from crypto/rand.
// A non-positive maxLength selects DefaultMaxLength.
func NewGenerator(maxLength int) *Generator {
	return &Generator{source: rand.Reader, maxLength: normalizeMax(maxLength)}
}

// NewGeneratorWithSource returns a generator over an arbitrary source.
// Each draw holds a lock, so the source need not be safe for concurrent use.
func NewGeneratorWithSource(source io.Reader, maxLength int) *Generator {
	return &Generator{
		source:    source,
		mu:        &sync.Mutex{},
		maxLength: normalizeMax(maxLength),
	}
}

func normalizeMax(n int) int {
	if n <= 0 {
		return DefaultMaxLength
	}
	return n
}

// MaxLength returns the longest password this generator will produce.
func (g *Generator) MaxLength() int {
	return g.maxLength
}

// Generate creates a password of req.Length characters, each drawn
// independently and uniformly from the enabled alphabets.
func (g *Generator) Generate(req Request) (string, error) {
	if req.Classes.Empty() {
		return "", ErrNoCharacterClassSelected
	}
	alphabet := req.Classes.Alphabet()
	if req.Length < 1 || req.Length > g.maxLength {
		return "", fmt.Errorf("%w: %d is outside [1, %d]", ErrInvalidLength, req.Length, g.maxLength)
	}

	result := make([]byte, req.Length)
	for i := range result {
		idx, err := g.draw(len(alphabet))
		if err != nil {
			return "", err
		}
		result[i] = alphabet[idx]
	}

	return string(result), nil
}

var defaultGenerator = NewGenerator(DefaultMaxLength)

// Generate creates a password using crypto/rand and DefaultMaxLength.
func Generate(req Request) (string, error) {
	return defaultGenerator.Generate(req)
}

// uniformIndex returns an integer uniformly distributed in [0, n).
// Draws at or above the largest multiple of n below 2^32 are rejected.
func uniformIndex(r io.Reader, n int) (int, error) {
	bound := uint64(n)
	limit := (1 << 32) - (1<<32)%bound

	var buf [4]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
		}
		v := uint64(binary.BigEndian.Uint32(buf[:]))
		if v < limit {
			return int(v % bound), nil
		}
	}
}

func (g *Generator) draw(n int) (int, error) {
	if g.mu != nil {
		g.mu.Lock()
		defer g.mu.Unlock()
	}
	return uniformIndex(g.source, n)
}
