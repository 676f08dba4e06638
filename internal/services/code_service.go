// Package services – CodeService
//
// This file implements the CodeService, which manages the lifecycle of
// response codes on top of the in-memory registry. The registry stays the
// single source of truth for lookups; when a database is configured the
// service mirrors runtime registrations into it so they survive a restart,
// and rebuilds the registry from it at boot (Restore).
//
// Ordering rules:
//   - Register writes the registry first and the store second. A store
//     failure rolls the registry entry back so both sides agree.
//   - Remove deletes from the registry first and the store second. A store
//     failure re-registers the removed descriptor.
//   - Built-in, host and seed-file codes are never persisted; they are
//     re-created on every boot.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/go-response-codes/internal/observability"
	"github.com/tbourn/go-response-codes/internal/repo"
	"github.com/tbourn/go-response-codes/internal/responses"
	"github.com/tbourn/go-response-codes/internal/search"
	"github.com/tbourn/go-response-codes/internal/seed"
	"github.com/tbourn/go-response-codes/internal/utils"
)

// identRE restricts category and code names so the dotted key form
// ("clientError.notFound") and URL path segments stay unambiguous.
var identRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

// RegisterInput carries a new code. An empty Message is replaced by
// DefaultMessage.
type RegisterInput struct {
	Category string
	Code     string
	Status   int
	Message  string
	Data     any
}

// CodeService coordinates the registry with optional persistence.
type CodeService struct {
	// Registry is the live code table.
	Registry *responses.Registry
	// DB persists runtime registrations; nil disables persistence.
	DB *gorm.DB
	// Log receives lifecycle events.
	Log zerolog.Logger
	// Locale drives title casing of generated default messages.
	Locale language.Tag

	searchMu sync.Mutex
	searchAt uint64
	searchIx search.Index
	searchBy map[string]responses.Entry
}

// SearchHit is one ranked search result.
type SearchHit struct {
	Entry responses.Entry
	Score float64
}

// NewCodeService constructs a CodeService. db may be nil.
func NewCodeService(reg *responses.Registry, db *gorm.DB, log zerolog.Logger) *CodeService {
	return &CodeService{
		Registry: reg,
		DB:       db,
		Log:      log,
		Locale:   language.English,
	}
}

func (s *CodeService) tracer() trace.Tracer {
	return observability.Tracer("services/CodeService")
}

// Register validates and adds a code, persisting it when a DB is configured.
func (s *CodeService) Register(ctx context.Context, in RegisterInput) (responses.Entry, error) {
	ctx, span := s.tracer().Start(ctx, "Register",
		trace.WithAttributes(observability.CodeAttrs(in.Category, in.Code)...),
		trace.WithAttributes(observability.AttrStatus.Int(in.Status)),
	)
	defer span.End()

	in.Category = strings.TrimSpace(in.Category)
	in.Code = strings.TrimSpace(in.Code)
	in.Message = strings.TrimSpace(in.Message)
	if err := checkIdent(in.Category, in.Code); err != nil {
		return responses.Entry{}, err
	}
	if in.Message == "" {
		in.Message = DefaultMessage(in.Status, in.Code, s.Locale)
	}

	var encoded string
	if s.DB != nil {
		b, err := json.Marshal(in.Data)
		if err != nil {
			return responses.Entry{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		encoded = string(b)
	}

	if err := s.Registry.Register(in.Category, in.Code, in.Status, in.Message, in.Data); err != nil {
		if errors.Is(err, responses.ErrInvalidDescriptor) {
			return responses.Entry{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
		}
		return responses.Entry{}, err
	}

	if s.DB != nil {
		if _, err := repo.CreateCustomCode(ctx, s.DB, in.Category, in.Code, in.Status, in.Message, encoded); err != nil {
			// keep memory and store in agreement
			_ = s.Registry.Remove(in.Category, in.Code)
			span.RecordError(err)
			span.SetStatus(codes.Error, "persist")
			if errors.Is(err, repo.ErrDuplicate) {
				return responses.Entry{}, &responses.CodeAlreadyExistsError{Category: in.Category, Code: in.Code}
			}
			s.Log.Error().Err(err).
				Str("category", in.Category).
				Str("code", in.Code).
				Msg("persist code failed")
			return responses.Entry{}, err
		}
	}

	s.Log.Info().
		Str("category", in.Category).
		Str("code", in.Code).
		Int("status", in.Status).
		Bool("persisted", s.DB != nil).
		Msg("code registered")

	return responses.Entry{
		Category:   in.Category,
		Code:       in.Code,
		Descriptor: responses.Descriptor{Status: in.Status, Message: in.Message, Data: in.Data},
	}, nil
}

// Remove deletes a code from the registry and from the store. A store miss
// is not an error: built-in, host and seed-file codes only live in memory,
// but a built-in can still be shadowed by a stored override.
func (s *CodeService) Remove(ctx context.Context, category, code string) error {
	ctx, span := s.tracer().Start(ctx, "Remove",
		trace.WithAttributes(observability.CodeAttrs(category, code)...),
	)
	defer span.End()

	d, err := s.Registry.Describe(category, code)
	if err != nil {
		return err
	}
	builtin := s.Registry.IsBuiltin(category, code)
	if err := s.Registry.Remove(category, code); err != nil {
		return err
	}

	if s.DB != nil {
		if err := repo.DeleteCustomCode(ctx, s.DB, category, code); err != nil && !errors.Is(err, repo.ErrNotFound) {
			_ = s.Registry.Register(category, code, d.Status, d.Message, d.Data)
			span.RecordError(err)
			span.SetStatus(codes.Error, "delete")
			s.Log.Error().Err(err).
				Str("category", category).
				Str("code", code).
				Msg("delete persisted code failed")
			return err
		}
	}

	s.Log.Info().
		Str("category", category).
		Str("code", code).
		Bool("builtin", builtin).
		Msg("code removed")
	return nil
}

// Restore loads persisted codes into the registry. A stored row replaces
// the built-in it collides with, since it was registered after that
// built-in was removed. Rows that cannot be restored are dropped from the
// store with a warning so the store never holds a pair the registry lacks.
// It returns how many codes were restored.
func (s *CodeService) Restore(ctx context.Context) (int, error) {
	if s.DB == nil {
		return 0, nil
	}
	ctx, span := s.tracer().Start(ctx, "Restore")
	defer span.End()

	rows, err := repo.ListCustomCodes(ctx, s.DB)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	n := 0
	for _, row := range rows {
		if err := s.restoreRow(row.Category, row.Code, row.Status, row.Message, row.Data); err != nil {
			s.Log.Warn().Err(err).
				Str("category", row.Category).
				Str("code", row.Code).
				Msg("drop persisted code")
			if err := repo.DeleteCustomCode(ctx, s.DB, row.Category, row.Code); err != nil && !errors.Is(err, repo.ErrNotFound) {
				span.RecordError(err)
				return n, err
			}
			continue
		}
		n++
	}

	span.SetAttributes(attribute.Int("codes.restored", n))
	s.Log.Info().Int("restored", n).Int("stored", len(rows)).Msg("codes restored")
	return n, nil
}

func (s *CodeService) restoreRow(category, code string, status int, message, raw string) error {
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	err := s.Registry.Register(category, code, status, message, data)
	if errors.Is(err, responses.ErrCodeAlreadyExists) && s.Registry.IsBuiltin(category, code) {
		if err := s.Registry.Remove(category, code); err != nil {
			return err
		}
		err = s.Registry.Register(category, code, status, message, data)
	}
	return err
}

// Seed registers codes loaded from a seed file, in memory only. Invalid or
// colliding entries are skipped with a warning. It returns how many codes
// were registered.
func (s *CodeService) Seed(ctx context.Context, in []seed.Code) int {
	_, span := s.tracer().Start(ctx, "Seed")
	defer span.End()

	n := 0
	for _, c := range in {
		msg := strings.TrimSpace(c.Message)
		if msg == "" {
			msg = DefaultMessage(c.Status, c.Name, s.Locale)
		}
		err := checkIdent(c.Category, c.Name)
		if err == nil {
			err = s.Registry.Register(c.Category, c.Name, c.Status, msg, c.Data)
		}
		if err != nil {
			s.Log.Warn().Err(err).
				Str("category", c.Category).
				Str("code", c.Name).
				Msg("skip seed code")
			continue
		}
		n++
	}

	span.SetAttributes(attribute.Int("codes.seeded", n))
	s.Log.Info().Int("seeded", n).Int("declared", len(in)).Msg("codes seeded")
	return n
}

// List returns one page of the registry snapshot (ordered by category, then
// code) and the total number of codes.
func (s *CodeService) List(ctx context.Context, page, pageSize int) ([]responses.Entry, int) {
	_, span := s.tracer().Start(ctx, "List",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	all := s.Registry.Entries()
	return utils.Paginate(all, page, pageSize), len(all)
}

// Describe returns the registry entry for (category, code).
func (s *CodeService) Describe(category, code string) (responses.Entry, error) {
	d, err := s.Registry.Describe(category, code)
	if err != nil {
		return responses.Entry{}, err
	}
	return responses.Entry{
		Category:   category,
		Code:       code,
		Descriptor: d,
		Builtin:    s.Registry.IsBuiltin(category, code),
	}, nil
}

// Respond writes the response for (category, code) into w.
func (s *CodeService) Respond(ctx context.Context, w responses.Writer, category, code string, fns ...responses.Fn) error {
	_, span := s.tracer().Start(ctx, "Respond",
		trace.WithAttributes(observability.CodeAttrs(category, code)...),
	)
	defer span.End()

	_, err := s.Registry.Invoke(w, category, code, fns...)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// Search ranks registered codes against a free-text query and returns at
// most k hits. The index is rebuilt lazily whenever the registry version
// moves.
func (s *CodeService) Search(ctx context.Context, query string, k int) []SearchHit {
	_, span := s.tracer().Start(ctx, "Search",
		trace.WithAttributes(attribute.Int("k", k)),
	)
	defer span.End()

	idx, byKey := s.searchIndex()
	results := idx.TopK(query, k)
	hits := make([]SearchHit, 0, len(results))
	for _, r := range results {
		if e, ok := byKey[r.Key]; ok {
			hits = append(hits, SearchHit{Entry: e, Score: r.Score})
		}
	}
	span.SetAttributes(attribute.Int("hits", len(hits)))
	return hits
}

func (s *CodeService) searchIndex() (search.Index, map[string]responses.Entry) {
	s.searchMu.Lock()
	defer s.searchMu.Unlock()

	v := s.Registry.Version()
	if s.searchIx != nil && s.searchAt == v {
		return s.searchIx, s.searchBy
	}

	entries := s.Registry.Entries()
	docs := make([]search.Document, 0, len(entries))
	byKey := make(map[string]responses.Entry, len(entries))
	for _, e := range entries {
		key := e.Key()
		byKey[key] = e
		docs = append(docs, search.Document{
			Key:  key,
			Text: strings.Join([]string{e.Category, e.Code, e.Message, strconv.Itoa(e.Status)}, " "),
		})
	}
	s.searchIx = search.New(docs)
	s.searchBy = byKey
	s.searchAt = v
	return s.searchIx, s.searchBy
}

// Categories returns every category name, including emptied ones.
func (s *CodeService) Categories() []string { return s.Registry.Categories() }

// Version reports the registry mutation counter.
func (s *CodeService) Version() uint64 { return s.Registry.Version() }

// PersistedStats reports how many codes are stored and when the newest was
// written. Without a DB it returns zero values.
func (s *CodeService) PersistedStats(ctx context.Context) (int64, *time.Time, error) {
	if s.DB == nil {
		return 0, nil, nil
	}
	return repo.CustomCodesStats(ctx, s.DB)
}

func checkIdent(category, code string) error {
	if !identRE.MatchString(category) {
		return fmt.Errorf("%w: category %q", ErrInvalidCode, category)
	}
	if !identRE.MatchString(code) {
		return fmt.Errorf("%w: code %q", ErrInvalidCode, code)
	}
	return nil
}
