package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Ceilings on the parameters an encoded hash may carry. They bound the
// memory and CPU of a single VerifySecret call.
const (
	maxVerifyMemory      = 64 * 1024
	maxVerifyIterations  = 10
	maxVerifyParallelism = 16
	maxVerifyBytes       = 64
)

var (
	ErrInvalidHashFormat   = errors.New("invalid encoded hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
	ErrHashParamsTooLarge  = fmt.Errorf("%w: argon2 parameters exceed limits", ErrInvalidHashFormat)
)

// HashParams configures Argon2id hashing of generated secrets.
type HashParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultHashParams returns the Argon2id parameters used for generated secrets.
func DefaultHashParams() HashParams {
	return HashParams{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hash derives an Argon2id hash of secret and encodes it in PHC string format:
// $argon2id$v=19$m=65536,t=3,p=2$<base64-salt>$<base64-hash>
// Params above the verify ceilings fail with ErrHashParamsTooLarge.
func (p HashParams) Hash(secret string) (string, error) {
	if err := p.checkLimits(); err != nil {
		return "", err
	}

	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(secret), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.Memory,
		p.Iterations,
		p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// HashSecret hashes secret with DefaultHashParams.
func HashSecret(secret string) (string, error) {
	return DefaultHashParams().Hash(secret)
}

// VerifySecret reports whether secret matches the PHC-encoded Argon2id hash.
// The parameters embedded in the hash are used, so hashes made with
// non-default params still verify, as long as they stay within the verify
// ceilings (m=65536, t=10, p=16, salt and key at most 64 bytes). Anything
// larger fails with ErrHashParamsTooLarge before argon2 runs.
func VerifySecret(secret, encodedHash string) (bool, error) {
	params, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(secret), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeHash(encodedHash string) (HashParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}
	if version != argon2.Version {
		return HashParams{}, nil, nil, fmt.Errorf("%w: v=%d", ErrIncompatibleVersion, version)
	}

	var params HashParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}
	if params.Memory == 0 || params.Iterations == 0 || params.Parallelism == 0 {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}
	if err := params.checkLimits(); err != nil {
		return HashParams{}, nil, nil, err
	}

	// Encoded length is checked first so an oversized field is never decoded.
	if base64.RawStdEncoding.DecodedLen(len(parts[4])) > maxVerifyBytes ||
		base64.RawStdEncoding.DecodedLen(len(parts[5])) > maxVerifyBytes {
		return HashParams{}, nil, nil, ErrHashParamsTooLarge
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}
	params.SaltLength = uint32(len(salt))

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return HashParams{}, nil, nil, ErrInvalidHashFormat
	}
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}

func (p HashParams) checkLimits() error {
	if p.Memory > maxVerifyMemory || p.Iterations > maxVerifyIterations ||
		p.Parallelism > maxVerifyParallelism ||
		p.SaltLength > maxVerifyBytes || p.KeyLength > maxVerifyBytes {
		return fmt.Errorf("%w: m=%d,t=%d,p=%d", ErrHashParamsTooLarge, p.Memory, p.Iterations, p.Parallelism)
	}
	return nil
}
