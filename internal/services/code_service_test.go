package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-response-codes/internal/domain"
	"github.com/tbourn/go-response-codes/internal/repo"
	"github.com/tbourn/go-response-codes/internal/responses"
	"github.com/tbourn/go-response-codes/internal/seed"
)

// ---------- test helpers ----------

func newCodesDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:codesvc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func newSvc(t *testing.T, db *gorm.DB) (*CodeService, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewCodeService(responses.New(), db, zerolog.New(&buf)), &buf
}

type recorder struct {
	code int
	obj  any
}

func (r *recorder) JSON(code int, obj any) { r.code, r.obj = code, obj }

// ---------- Register ----------

func TestCodeService_Register_PersistsAndInvokes(t *testing.T) {
	db := newCodesDB(t, &domain.CustomCode{})
	svc, logs := newSvc(t, db)
	ctx := context.Background()

	e, err := svc.Register(ctx, RegisterInput{
		Category: " custom ",
		Code:     "weird",
		Status:   299,
		Message:  "Weird",
		Data:     map[string]any{"flag": true},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if e.Category != "custom" || e.Code != "weird" || e.Status != 299 || e.Message != "Weird" {
		t.Fatalf("unexpected entry: %+v", e)
	}

	row, err := repo.GetCustomCode(ctx, db, "custom", "weird")
	if err != nil {
		t.Fatalf("expected persisted row: %v", err)
	}
	if row.Status != 299 || row.Data != `{"flag":true}` {
		t.Fatalf("unexpected row: %+v", row)
	}

	w := &recorder{}
	if err := svc.Respond(ctx, w, "custom", "weird"); err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if w.code != 299 {
		t.Fatalf("status = %d; want 299", w.code)
	}
	if !strings.Contains(logs.String(), `"message":"code registered"`) {
		t.Fatalf("expected register log line, got %q", logs.String())
	}
}

func TestCodeService_Register_DefaultMessage(t *testing.T) {
	svc, _ := newSvc(t, nil)

	e, err := svc.Register(context.Background(), RegisterInput{Category: "clientError", Code: "conflict", Status: 409})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if e.Message != "Conflict" {
		t.Fatalf("message = %q; want %q", e.Message, "Conflict")
	}

	e, err = svc.Register(context.Background(), RegisterInput{Category: "custom", Code: "almostFine", Status: 299})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if e.Message != "Almost Fine" {
		t.Fatalf("message = %q; want %q", e.Message, "Almost Fine")
	}
}

func TestCodeService_Register_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"Existing-Builtin", RegisterInput{Category: "success", Code: "ok", Status: 200, Message: "OK"}, ErrCodeExists},
		{"Dotted-Category", RegisterInput{Category: "a.b", Code: "x", Status: 200, Message: "X"}, ErrInvalidCode},
		{"Empty-Code", RegisterInput{Category: "custom", Code: " ", Status: 200, Message: "X"}, ErrInvalidCode},
		{"Status-Out-Of-Range", RegisterInput{Category: "custom", Code: "x", Status: 700, Message: "X"}, ErrInvalidCode},
		{"Unencodable-Data", RegisterInput{Category: "custom", Code: "fn", Status: 200, Message: "X", Data: func() {}}, ErrInvalidData},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newSvc(t, newCodesDB(t, &domain.CustomCode{}))
			_, err := svc.Register(context.Background(), tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v; want %v", err, tc.want)
			}
		})
	}
}

func TestCodeService_Register_StoreFailureRollsBack(t *testing.T) {
	db := newCodesDB(t) // no custom_codes table
	svc, logs := newSvc(t, db)

	_, err := svc.Register(context.Background(), RegisterInput{Category: "custom", Code: "weird", Status: 299, Message: "Weird"})
	if err == nil {
		t.Fatalf("expected store error")
	}
	if _, ok := svc.Registry.Lookup("custom", "weird"); ok {
		t.Fatalf("expected registry rollback after store failure")
	}
	if !strings.Contains(logs.String(), "persist code failed") {
		t.Fatalf("expected error log, got %q", logs.String())
	}
}

func TestCodeService_Register_StoreDuplicateIsConflict(t *testing.T) {
	db := newCodesDB(t, &domain.CustomCode{})
	if _, err := repo.CreateCustomCode(context.Background(), db, "custom", "weird", 299, "Weird", ""); err != nil {
		t.Fatalf("seed row: %v", err)
	}
	svc, _ := newSvc(t, db) // registry does not know the row yet

	_, err := svc.Register(context.Background(), RegisterInput{Category: "custom", Code: "weird", Status: 299, Message: "Weird"})
	if !errors.Is(err, ErrCodeExists) {
		t.Fatalf("err = %v; want ErrCodeExists", err)
	}
	if _, ok := svc.Registry.Lookup("custom", "weird"); ok {
		t.Fatalf("expected registry rollback")
	}
}

// ---------- Remove ----------

func TestCodeService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("Persisted", func(t *testing.T) {
		db := newCodesDB(t, &domain.CustomCode{})
		svc, _ := newSvc(t, db)
		if _, err := svc.Register(ctx, RegisterInput{Category: "custom", Code: "gone", Status: 410, Message: "Gone"}); err != nil {
			t.Fatalf("Register: %v", err)
		}
		if err := svc.Remove(ctx, "custom", "gone"); err != nil {
			t.Fatalf("Remove: %v", err)
		}
		if _, err := repo.GetCustomCode(ctx, db, "custom", "gone"); !errors.Is(err, repo.ErrNotFound) {
			t.Fatalf("expected row removed, got %v", err)
		}
	})

	t.Run("Builtin", func(t *testing.T) {
		svc, _ := newSvc(t, newCodesDB(t, &domain.CustomCode{}))
		if err := svc.Remove(ctx, "clientError", "forbidden"); err != nil {
			t.Fatalf("Remove builtin: %v", err)
		}
		if _, ok := svc.Registry.Lookup("clientError", "forbidden"); ok {
			t.Fatalf("expected builtin gone from registry")
		}
	})

	t.Run("BuiltinStillClearsStore", func(t *testing.T) {
		db := newCodesDB(t, &domain.CustomCode{})
		svc, _ := newSvc(t, db)
		// a row left behind for a builtin pair
		if _, err := repo.CreateCustomCode(ctx, db, "clientError", "forbidden", 403, "Nope", "null"); err != nil {
			t.Fatalf("create row: %v", err)
		}
		if err := svc.Remove(ctx, "clientError", "forbidden"); err != nil {
			t.Fatalf("Remove builtin: %v", err)
		}
		if _, err := repo.GetCustomCode(ctx, db, "clientError", "forbidden"); !errors.Is(err, repo.ErrNotFound) {
			t.Fatalf("expected row removed, got %v", err)
		}
		if _, err := svc.Register(ctx, RegisterInput{Category: "clientError", Code: "forbidden", Status: 403}); err != nil {
			t.Fatalf("re-register: %v", err)
		}
	})

	t.Run("MemoryOnlyCodeIgnoresStoreMiss", func(t *testing.T) {
		svc, _ := newSvc(t, newCodesDB(t, &domain.CustomCode{}))
		svc.Registry.MustRegister("clientError", "conflict", 409, "Conflict", nil)
		if err := svc.Remove(ctx, "clientError", "conflict"); err != nil {
			t.Fatalf("Remove: %v", err)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		svc, _ := newSvc(t, nil)
		err := svc.Remove(ctx, "custom", "missing")
		if !errors.Is(err, ErrCodeNotFound) {
			t.Fatalf("err = %v; want ErrCodeNotFound", err)
		}
	})

	t.Run("StoreFailureRestores", func(t *testing.T) {
		db := newCodesDB(t, &domain.CustomCode{})
		svc, _ := newSvc(t, db)
		if _, err := svc.Register(ctx, RegisterInput{Category: "custom", Code: "sticky", Status: 200, Message: "Sticky", Data: "d"}); err != nil {
			t.Fatalf("Register: %v", err)
		}
		if err := db.Migrator().DropTable(&domain.CustomCode{}); err != nil {
			t.Fatalf("drop table: %v", err)
		}

		if err := svc.Remove(ctx, "custom", "sticky"); err == nil {
			t.Fatalf("expected store error")
		}
		d, err := svc.Registry.Describe("custom", "sticky")
		if err != nil {
			t.Fatalf("expected code restored in registry: %v", err)
		}
		if d.Status != 200 || d.Message != "Sticky" || d.Data != "d" {
			t.Fatalf("unexpected restored descriptor: %+v", d)
		}
	})
}

// ---------- Restore / Seed ----------

func TestCodeService_Restore(t *testing.T) {
	db := newCodesDB(t, &domain.CustomCode{})
	ctx := context.Background()

	for _, r := range []struct {
		category, code, data string
	}{
		{"custom", "weird", `{"flag":true}`},
		{"success", "ok", "null"},     // overrides a builtin
		{"custom", "broken", "{nope"}, // unreadable data
	} {
		if _, err := repo.CreateCustomCode(ctx, db, r.category, r.code, 299, "X", r.data); err != nil {
			t.Fatalf("seed row %s.%s: %v", r.category, r.code, err)
		}
	}

	svc, logs := newSvc(t, db)
	n, err := svc.Restore(ctx)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if n != 2 {
		t.Fatalf("restored = %d; want 2", n)
	}

	d, err := svc.Registry.Describe("custom", "weird")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	data, ok := d.Data.(map[string]any)
	if !ok || data["flag"] != true {
		t.Fatalf("unexpected restored data: %#v", d.Data)
	}

	over, err := svc.Describe("success", "ok")
	if err != nil || over.Status != 299 || over.Message != "X" || over.Builtin {
		t.Fatalf("stored row must replace the builtin, got %+v (%v)", over, err)
	}

	// the unreadable row is dropped so the pair can be registered again
	if _, err := repo.GetCustomCode(ctx, db, "custom", "broken"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected unreadable row dropped, got %v", err)
	}
	if !strings.Contains(logs.String(), "drop persisted code") {
		t.Fatalf("expected drop warning, got %q", logs.String())
	}
	if _, err := svc.Register(ctx, RegisterInput{Category: "custom", Code: "broken", Status: 200, Message: "Fixed"}); err != nil {
		t.Fatalf("re-register dropped pair: %v", err)
	}
}

func TestCodeService_BuiltinOverride_SurvivesRestartAndRemove(t *testing.T) {
	db := newCodesDB(t, &domain.CustomCode{})
	ctx := context.Background()

	svc, _ := newSvc(t, db)
	if err := svc.Remove(ctx, "success", "ok"); err != nil {
		t.Fatalf("Remove builtin: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Category: "success", Code: "ok", Status: 299, Message: "Mine"}); err != nil {
		t.Fatalf("Register override: %v", err)
	}

	// restart over the same store
	restarted, _ := newSvc(t, db)
	if n, err := restarted.Restore(ctx); err != nil || n != 1 {
		t.Fatalf("Restore = (%d, %v); want (1, nil)", n, err)
	}
	e, err := restarted.Describe("success", "ok")
	if err != nil || e.Status != 299 || e.Message != "Mine" {
		t.Fatalf("override lost on restart: %+v (%v)", e, err)
	}

	if err := restarted.Remove(ctx, "success", "ok"); err != nil {
		t.Fatalf("Remove override: %v", err)
	}
	if _, err := repo.GetCustomCode(ctx, db, "success", "ok"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("expected stored override deleted, got %v", err)
	}
	if _, err := restarted.Register(ctx, RegisterInput{Category: "success", Code: "ok", Status: 200, Message: "Again"}); err != nil {
		t.Fatalf("re-register after remove: %v", err)
	}
	if _, err := restarted.Describe("success", "ok"); err != nil {
		t.Fatalf("Describe after re-register: %v", err)
	}
}

func TestCodeService_Restore_NoDB(t *testing.T) {
	svc, _ := newSvc(t, nil)
	n, err := svc.Restore(context.Background())
	if n != 0 || err != nil {
		t.Fatalf("Restore without DB = (%d, %v); want (0, nil)", n, err)
	}
}

func TestCodeService_Seed(t *testing.T) {
	db := newCodesDB(t, &domain.CustomCode{})
	svc, _ := newSvc(t, db)

	n := svc.Seed(context.Background(), []seed.Code{
		{Category: "custom", Name: "weird", Status: 299, Message: "Weird", Data: map[string]any{"flag": true}},
		{Category: "custom", Name: "quiet", Status: 299},
		{Category: "success", Name: "ok", Status: 200, Message: "dup"},
		{Category: "bad.cat", Name: "x", Status: 200, Message: "X"},
		{Category: "custom", Name: "range", Status: 42, Message: "X"},
	})
	if n != 2 {
		t.Fatalf("seeded = %d; want 2", n)
	}

	d, err := svc.Registry.Describe("custom", "quiet")
	if err != nil || d.Message != "Quiet" {
		t.Fatalf("expected humanized default message, got %+v (%v)", d, err)
	}

	// seed codes live in memory only
	count, _, err := svc.PersistedStats(context.Background())
	if err != nil || count != 0 {
		t.Fatalf("PersistedStats = (%d, %v); want (0, nil)", count, err)
	}
}

// ---------- List / Describe / Version ----------

func TestCodeService_List_Paginates(t *testing.T) {
	svc, _ := newSvc(t, nil)

	items, total := svc.List(context.Background(), 2, 3)
	if total != 8 {
		t.Fatalf("total = %d; want 8", total)
	}
	var keys []string
	for _, e := range items {
		keys = append(keys, e.Key())
	}
	want := "clientError.unauthorized,serverError.internalServerError,success.accepted"
	if strings.Join(keys, ",") != want {
		t.Fatalf("page 2 = %v; want %s", keys, want)
	}

	items, _ = svc.List(context.Background(), 9, 3)
	if len(items) != 0 {
		t.Fatalf("expected empty page past the end, got %v", items)
	}
}

func TestCodeService_Describe_And_Version(t *testing.T) {
	svc, _ := newSvc(t, nil)
	v0 := svc.Version()

	e, err := svc.Describe("clientError", "notFound")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if !e.Builtin || e.Status != 404 || e.Message != "Not Found" {
		t.Fatalf("unexpected entry: %+v", e)
	}

	if _, err := svc.Describe("clientError", "teapot"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("err = %v; want ErrCodeNotFound", err)
	}

	if _, err := svc.Register(context.Background(), RegisterInput{Category: "custom", Code: "v", Status: 200, Message: "V"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if svc.Version() <= v0 {
		t.Fatalf("version did not advance: %d -> %d", v0, svc.Version())
	}
}

func TestCodeService_Respond_Missing(t *testing.T) {
	svc, _ := newSvc(t, nil)
	w := &recorder{}

	err := svc.Respond(context.Background(), w, "redirect", "found", responses.Message("x"))
	if !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("err = %v; want ErrCodeNotFound", err)
	}
	if w.obj != nil {
		t.Fatalf("expected nothing written, got %#v", w.obj)
	}
}

// ---------- Search ----------

func TestCodeService_Search_TracksRegistryChanges(t *testing.T) {
	svc, _ := newSvc(t, nil)
	ctx := context.Background()

	hits := svc.Search(ctx, "not found", 3)
	if len(hits) == 0 || hits[0].Entry.Key() != "clientError.notFound" {
		t.Fatalf("unexpected hits: %+v", hits)
	}
	if hits[0].Score <= 0 || hits[0].Entry.Status != 404 {
		t.Fatalf("unexpected top hit: %+v", hits[0])
	}

	if got := svc.Search(ctx, "teapot", 3); len(got) != 0 {
		t.Fatalf("expected no hits before register, got %+v", got)
	}
	if _, err := svc.Register(ctx, RegisterInput{Category: "custom", Code: "teapot", Status: 418, Message: "I'm a teapot"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got := svc.Search(ctx, "teapot", 3)
	if len(got) != 1 || got[0].Entry.Key() != "custom.teapot" {
		t.Fatalf("index not rebuilt after register: %+v", got)
	}

	if err := svc.Remove(ctx, "custom", "teapot"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := svc.Search(ctx, "teapot", 3); len(got) != 0 {
		t.Fatalf("index not rebuilt after remove: %+v", got)
	}
}

func TestCodeService_Search_BlankQuery(t *testing.T) {
	svc, _ := newSvc(t, nil)
	if got := svc.Search(context.Background(), "  ", 5); len(got) != 0 {
		t.Fatalf("blank query should yield nothing, got %+v", got)
	}
}
