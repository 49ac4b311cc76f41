package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

const (
	DefaultLength   = 12
	DefaultMaxBatch = 100

	// MaxHashedBatch caps batches that ask for a hash per password; each
	// Argon2id hash costs 64 MiB and three passes.
	MaxHashedBatch = 10
)

var ErrInvalidCount = errors.New("invalid password count")

// EventRecorder stores audit events for generate calls.
type EventRecorder interface {
	Record(ctx context.Context, event *model.GenerationEvent) error
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen      *crypto.Generator
	hasher   crypto.HashParams
	maxBatch int
	events   EventRecorder
}

// NewGeneratorService creates a new GeneratorService. events may be nil, in
// which case calls are not audited.
func NewGeneratorService(gen *crypto.Generator, maxBatch int, events EventRecorder) *GeneratorService {
	if maxBatch < 1 {
		maxBatch = DefaultMaxBatch
	}
	return &GeneratorService{
		gen:      gen,
		hasher:   crypto.DefaultHashParams(),
		maxBatch: maxBatch,
		events:   events,
	}
}

// WithHashParams overrides the Argon2id parameters used when hashing is requested.
func (s *GeneratorService) WithHashParams(p crypto.HashParams) *GeneratorService {
	s.hasher = p
	return s
}

// Generate produces a single password for client.
func (s *GeneratorService) Generate(ctx context.Context, client string, req model.GenerateRequest) (model.GenerateResponse, error) {
	genReq := toRequest(req)

	resp, err := s.generateOne(genReq, req.Hash)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	s.record(ctx, client, genReq, 1, req.Hash)
	return resp, nil
}

// GenerateBatch produces req.Count passwords sharing the same options.
func (s *GeneratorService) GenerateBatch(ctx context.Context, client string, req model.BatchRequest) (model.BatchResponse, error) {
	count := req.Count
	if count == 0 {
		count = 1
	}
	limit := s.maxBatch
	if req.Hash && limit > MaxHashedBatch {
		limit = MaxHashedBatch
	}
	if count < 1 || count > limit {
		return model.BatchResponse{}, fmt.Errorf("%w: %d is outside [1, %d]", ErrInvalidCount, req.Count, limit)
	}

	genReq := toRequest(req.GenerateRequest)

	passwords := make([]model.GenerateResponse, 0, count)
	for i := 0; i < count; i++ {
		resp, err := s.generateOne(genReq, req.Hash)
		if err != nil {
			return model.BatchResponse{}, err
		}
		passwords = append(passwords, resp)
	}

	s.record(ctx, client, genReq, count, req.Hash)
	return model.BatchResponse{Passwords: passwords}, nil
}

// Verify checks a password against an Argon2id hash.
func (s *GeneratorService) Verify(req model.VerifyRequest) (model.VerifyResponse, error) {
	match, err := crypto.VerifySecret(req.Password, req.Hash)
	if err != nil {
		return model.VerifyResponse{}, err
	}
	return model.VerifyResponse{Match: match}, nil
}

// Classes lists the available character classes.
func (s *GeneratorService) Classes() []model.ClassResponse {
	classes := crypto.Classes()
	result := make([]model.ClassResponse, len(classes))
	for i, c := range classes {
		result[i] = model.ClassResponse{Name: c.Name, Alphabet: c.Alphabet, Size: len(c.Alphabet)}
	}
	return result
}

// MaxBatch returns the largest accepted batch size.
func (s *GeneratorService) MaxBatch() int {
	return s.maxBatch
}

func (s *GeneratorService) generateOne(req crypto.Request, hash bool) (model.GenerateResponse, error) {
	password, err := s.gen.Generate(req)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	resp := model.GenerateResponse{
		Password:    password,
		Length:      len(password),
		EntropyBits: req.Classes.EntropyBits(len(password)),
		Classes:     req.Classes.Names(),
	}

	if hash {
		resp.Hash, err = s.hasher.Hash(password)
		if err != nil {
			return model.GenerateResponse{}, fmt.Errorf("hashing password: %w", err)
		}
	}

	return resp, nil
}

func (s *GeneratorService) record(ctx context.Context, client string, req crypto.Request, count int, hashed bool) {
	if s.events == nil {
		return
	}

	event := &model.GenerationEvent{
		Client:      client,
		Length:      req.Length,
		Classes:     strings.Join(req.Classes.Names(), ","),
		Count:       count,
		EntropyBits: req.Classes.EntropyBits(req.Length),
		Hashed:      hashed,
	}
	if err := s.events.Record(ctx, event); err != nil {
		slog.Warn("failed to record generation event", "client", client, "error", err)
	}
}

// toRequest applies the defaults: length 12, letters and numbers on, specials off.
// An explicit length, zero included, is passed through to the generator.
func toRequest(req model.GenerateRequest) crypto.Request {
	return crypto.Request{
		Length: intOrDefault(req.Length, DefaultLength),
		Classes: crypto.ClassSet{
			Lowercase: boolOrDefault(req.Lowercase, true),
			Uppercase: boolOrDefault(req.Uppercase, true),
			Digits:    boolOrDefault(req.Numbers, true),
			Specials:  boolOrDefault(req.Specials, false),
		},
	}
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

func intOrDefault(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

// IsValidationError reports whether err was caused by the caller's input.
func IsValidationError(err error) bool {
	return errors.Is(err, crypto.ErrInvalidLength) ||
		errors.Is(err, crypto.ErrNoCharacterClassSelected) ||
		errors.Is(err, ErrInvalidCount) ||
		errors.Is(err, crypto.ErrInvalidHashFormat) ||
		errors.Is(err, crypto.ErrIncompatibleVersion)
}
