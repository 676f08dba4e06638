// Response code HTTP handlers.
//
// This file exposes REST endpoints over the response code registry:
//   - GET    /health                      (liveness + registry stats)
//   - GET    /categories                  (category names)
//   - GET    /codes                       (list, paginated, ETag support)
//   - GET    /codes/{category}/{code}     (describe)
//   - GET    /search?q=                   (free-text code search)
//   - POST   /codes                       (register, Idempotency-Key aware)
//   - DELETE /codes/{category}/{code}     (remove)
//   - GET    /respond/{category}/{code}   (invoke)
//   - POST   /respond/{category}/{code}   (invoke with a data override)
//
// Handlers are transport-thin: they validate input, call the code service
// and translate results into registry envelopes.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-response-codes/internal/http/middleware"
	"github.com/tbourn/go-response-codes/internal/repo"
	"github.com/tbourn/go-response-codes/internal/responses"
	"github.com/tbourn/go-response-codes/internal/search"
	"github.com/tbourn/go-response-codes/internal/services"
	"github.com/tbourn/go-response-codes/internal/utils"
)

// HeaderIdempotencyReplayed marks a POST answered from a stored result.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

//
// Service contract
//

// CodeService defines the registry operations consumed by HTTP handlers.
// Implementations must be safe for concurrent use.
type CodeService interface {
	Register(ctx context.Context, in services.RegisterInput) (responses.Entry, error)
	Remove(ctx context.Context, category, code string) error
	List(ctx context.Context, page, pageSize int) ([]responses.Entry, int)
	Describe(category, code string) (responses.Entry, error)
	Respond(ctx context.Context, w responses.Writer, category, code string, fns ...responses.Fn) error
	Search(ctx context.Context, query string, k int) []services.SearchHit
	Categories() []string
	Version() uint64
	PersistedStats(ctx context.Context) (int64, *time.Time, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the service.
type Handlers struct {
	svc     CodeService
	reg     *responses.Registry
	db      *gorm.DB
	idemTTL time.Duration
}

// New binds handlers to svc. reg writes envelopes; db stores idempotency
// records and may be nil, which disables replays.
func New(svc CodeService, reg *responses.Registry, db *gorm.DB, idemTTL time.Duration) *Handlers {
	return &Handlers{svc: svc, reg: reg, db: db, idemTTL: idemTTL}
}

//
// DTOs
//

// RegisterCodeRequest is the JSON payload for registering a code.
type RegisterCodeRequest struct {
	Category string `json:"category" binding:"required" example:"custom"`
	Code     string `json:"code" binding:"required" example:"weird"`
	Status   int    `json:"status" binding:"required,min=100,max=599" example:"299"`
	// Message defaults to the status text, or a humanized code name.
	Message string `json:"message" example:"Weird"`
	// Data is the default payload, any JSON value.
	Data any `json:"data" swaggertype:"object"`
}

// CodeResponse describes one registered code.
type CodeResponse struct {
	Category string `json:"category" example:"clientError"`
	Code     string `json:"code" example:"notFound"`
	Status   int    `json:"status" example:"404"`
	Message  string `json:"message" example:"Not Found"`
	Data     any    `json:"data" swaggertype:"object"`
	Builtin  bool   `json:"builtin"`
}

// CodeRef names a code without its descriptor.
type CodeRef struct {
	Category string `json:"category" example:"custom"`
	Code     string `json:"code" example:"weird"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// ListCodesResponse wraps a page of codes and pagination information.
type ListCodesResponse struct {
	Codes      []CodeResponse `json:"codes"`
	Pagination Pagination     `json:"pagination"`
}

// SearchHitResponse is one ranked search result.
type SearchHitResponse struct {
	CodeResponse
	Score float64 `json:"score" example:"0.4"`
}

// SearchCodesResponse wraps ranked results for a query.
type SearchCodesResponse struct {
	Query   string              `json:"query" example:"not found"`
	Results []SearchHitResponse `json:"results"`
}

// HealthResponse reports liveness and registry statistics.
type HealthResponse struct {
	Status          string     `json:"status" example:"ok"`
	Codes           int        `json:"codes" example:"12"`
	Version         uint64     `json:"version" example:"14"`
	Persisted       int64      `json:"persisted" example:"2"`
	LastPersistedAt *time.Time `json:"last_persisted_at,omitempty"`
}

func toCodeResponse(e responses.Entry) CodeResponse {
	return CodeResponse{
		Category: e.Category,
		Code:     e.Code,
		Status:   e.Status,
		Message:  e.Message,
		Data:     e.Data,
		Builtin:  e.Builtin,
	}
}

//
// Helpers
//

// clampPagination parses page and page_size, bounded by utils.NormalizePage.
func clampPagination(c *gin.Context) (page, pageSize int) {
	return utils.NormalizePage(
		utils.AtoiDefault(c.Query("page"), 1),
		utils.AtoiDefault(c.Query("page_size"), utils.DefaultPageSize),
	)
}

func pathCode(c *gin.Context) (string, string) {
	return c.Param("category"), c.Param("code")
}

//
// Handlers
//

// Health godoc
// @ID          health
// @Summary     Liveness and registry statistics
// @Tags        System
// @Produce     json
// @Success     200  {object}  responses.Body{data=handlers.HealthResponse}
// @Failure     500  {object}  handlers.ErrorResponse  "Store unavailable"
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ctx := c.Request.Context()
	persisted, last, err := h.svc.PersistedStats(ctx)
	if err != nil {
		fail(c, h.reg, ErrCodeStoreFailed, "store unavailable")
		return
	}
	_, total := h.svc.List(ctx, 1, 1)
	ok(c, h.reg, responses.CodeOK, http.StatusOK, HealthResponse{
		Status:          "ok",
		Codes:           total,
		Version:         h.svc.Version(),
		Persisted:       persisted,
		LastPersistedAt: last,
	})
}

// ListCategories godoc
// @ID          listCategories
// @Summary     List categories
// @Description Returns every category name, including categories whose codes were all removed.
// @Tags        Codes
// @Produce     json
// @Success     200  {object}  responses.Body{data=[]string}
// @Router      /categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	ok(c, h.reg, responses.CodeOK, http.StatusOK, h.svc.Categories())
}

// ListCodes godoc
// @ID          listCodes
// @Summary     List codes (paginated)
// @Description Returns a page of codes ordered by category, then code. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Codes
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"codes:14:1:20\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} responses.Body{data=handlers.ListCodesResponse}
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Router      /codes [get]
func (h *Handlers) ListCodes(c *gin.Context) {
	page, pageSize := clampPagination(c)

	// the version moves on every mutation, so it covers the whole page
	etag := fmt.Sprintf(`W/"codes:%d:%d:%d"`, h.svc.Version(), page, pageSize)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return
	}

	items, total := h.svc.List(c.Request.Context(), page, pageSize)
	out := make([]CodeResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toCodeResponse(e))
	}

	totalPages := (total + pageSize - 1) / pageSize
	ok(c, h.reg, responses.CodeOK, http.StatusOK, ListCodesResponse{
		Codes: out,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// DescribeCode godoc
// @ID          describeCode
// @Summary     Describe a code
// @Tags        Codes
// @Produce     json
// @Param       category  path  string  true  "Category"  example(clientError)
// @Param       code      path  string  true  "Code"      example(notFound)
// @Success     200  {object} responses.Body{data=handlers.CodeResponse}
// @Failure     404  {object} handlers.ErrorResponse "Code not found"
// @Router      /codes/{category}/{code} [get]
func (h *Handlers) DescribeCode(c *gin.Context) {
	category, code := pathCode(c)
	e, err := h.svc.Describe(category, code)
	if err != nil {
		fail(c, h.reg, ErrCodeNotFound, "response code not found")
		return
	}
	ok(c, h.reg, responses.CodeOK, http.StatusOK, toCodeResponse(e))
}

// maxSearchLimit bounds the limit query parameter of SearchCodes.
const maxSearchLimit = 50

// SearchCodes godoc
// @ID          searchCodes
// @Summary     Search codes
// @Description Ranks codes by word overlap between the query and each code's category, name, message and status. camelCase names match their words ("not found" finds notFound).
// @Tags        Codes
// @Produce     json
// @Param       q      query  string  true   "Search text"         example(not found)
// @Param       limit  query  int     false  "Maximum results"     minimum(1) maximum(50) default(10)
// @Success     200  {object} responses.Body{data=handlers.SearchCodesResponse}
// @Failure     400  {object} handlers.ErrorResponse "Missing query"
// @Router      /search [get]
func (h *Handlers) SearchCodes(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		fail(c, h.reg, ErrCodeBadRequest, "query parameter q is required")
		return
	}
	limit := utils.AtoiDefault(c.Query("limit"), search.DefaultK)
	if limit < 1 {
		limit = 1
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	hits := h.svc.Search(c.Request.Context(), q, limit)
	out := make([]SearchHitResponse, 0, len(hits))
	for _, hit := range hits {
		out = append(out, SearchHitResponse{CodeResponse: toCodeResponse(hit.Entry), Score: hit.Score})
	}
	ok(c, h.reg, responses.CodeOK, http.StatusOK, SearchCodesResponse{Query: q, Results: out})
}

// RegisterCode godoc
// @ID          registerCode
// @Summary     Register a code
// @Description Adds a code to the registry and persists it when storage is enabled. Supports idempotency via the Idempotency-Key header (same key, same result).
// @Tags        Codes
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.RegisterCodeRequest  true  "Code to register"
//
// @Success     201  {object} responses.Body{data=handlers.CodeResponse}
// @Header      201  {string} Idempotency-Replayed "true when served from a stored result"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     409  {object} handlers.ErrorResponse "Code already exists"
// @Failure     413  {object} handlers.ErrorResponse "Body too large"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /codes [post]
func (h *Handlers) RegisterCode(c *gin.Context) {
	ctx := c.Request.Context()

	var req RegisterCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		code, msg := bindFailure(err)
		if code == ErrCodeBadRequest {
			msg = "category, code and status (100-599) are required"
		}
		fail(c, h.reg, code, msg)
		return
	}

	idemKey, hasKey := middleware.GetIdempotencyKey(c)
	scope := middleware.IdempotencyScope(c)
	// only the middleware decides what counts as a replay
	if middleware.IsReplay(c) && h.db != nil {
		if rec, err := repo.GetIdempotency(ctx, h.db, scope, idemKey, time.Now().UTC()); err == nil {
			if prev, err := h.svc.Describe(rec.Category, rec.Code); err == nil {
				c.Header(HeaderIdempotencyReplayed, "true")
				ok(c, h.reg, responses.CodeCreated, http.StatusCreated, toCodeResponse(prev))
				return
			}
		}
	}

	e, err := h.svc.Register(ctx, services.RegisterInput{
		Category: req.Category,
		Code:     req.Code,
		Status:   req.Status,
		Message:  req.Message,
		Data:     req.Data,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCode):
			fail(c, h.reg, ErrCodeInvalidCode, err.Error())
		case errors.Is(err, services.ErrInvalidData):
			fail(c, h.reg, ErrCodeInvalidData, err.Error())
		case errors.Is(err, services.ErrCodeExists):
			fail(c, h.reg, ErrCodeConflict, err.Error())
		default:
			fail(c, h.reg, ErrCodeRegisterFailed, "could not register code")
		}
		return
	}

	// best effort: a lost record only costs a 409 on retry
	if hasKey && h.db != nil {
		if _, err := repo.CreateIdempotency(ctx, h.db, scope, idemKey, e.Category, e.Code, http.StatusCreated, h.idemTTL); err != nil {
			lg := middleware.LoggerFrom(c)
			lg.Warn().Err(err).Str("idempotency_key", idemKey).Msg("store idempotency record failed")
		}
	}

	ok(c, h.reg, responses.CodeCreated, http.StatusCreated, toCodeResponse(e))
}

// RemoveCode godoc
// @ID          removeCode
// @Summary     Remove a code
// @Description Removes a code from the registry and from storage. Built-in codes can be removed until the next restart.
// @Tags        Codes
// @Produce     json
// @Param       category  path  string  true  "Category"  example(custom)
// @Param       code      path  string  true  "Code"      example(weird)
// @Success     200  {object} responses.Body{data=handlers.CodeRef}
// @Failure     404  {object} handlers.ErrorResponse "Code not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /codes/{category}/{code} [delete]
func (h *Handlers) RemoveCode(c *gin.Context) {
	category, code := pathCode(c)
	if err := h.svc.Remove(c.Request.Context(), category, code); err != nil {
		if errors.Is(err, services.ErrCodeNotFound) {
			fail(c, h.reg, ErrCodeNotFound, "response code not found")
			return
		}
		fail(c, h.reg, ErrCodeRemoveFailed, "could not remove code")
		return
	}
	ok(c, h.reg, responses.CodeOK, http.StatusOK, CodeRef{Category: category, Code: code})
}

// Respond godoc
// @ID          respond
// @Summary     Invoke a code
// @Description Writes the response registered under the code. The message query parameter overrides the message; on POST a JSON body overrides the data (send null for an explicit null).
// @Tags        Respond
// @Accept      json
// @Produce     json
// @Param       category  path   string  true   "Category"          example(clientError)
// @Param       code      path   string  true   "Code"              example(notFound)
// @Param       message   query  string  false  "Message override"  example(user not found)
// @Success     200  {object} responses.Body "Status and body of the invoked code"
// @Failure     400  {object} handlers.ErrorResponse "Invalid JSON body"
// @Failure     404  {object} handlers.ErrorResponse "Code not found"
// @Failure     413  {object} handlers.ErrorResponse "Body too large"
// @Router      /respond/{category}/{code} [get]
// @Router      /respond/{category}/{code} [post]
func (h *Handlers) Respond(c *gin.Context) {
	category, code := pathCode(c)

	var fns []responses.Fn
	if msg := strings.TrimSpace(c.Query("message")); msg != "" {
		fns = append(fns, responses.Message(msg))
	}
	if c.Request.Method == http.MethodPost && c.Request.ContentLength != 0 {
		var data any
		if err := c.ShouldBindJSON(&data); err != nil {
			errCode, msg := bindFailure(err)
			fail(c, h.reg, errCode, msg)
			return
		}
		fns = append(fns, responses.Data(data))
	}

	if err := h.svc.Respond(c.Request.Context(), c, category, code, fns...); err != nil {
		fail(c, h.reg, ErrCodeNotFound, "response code not found")
		return
	}
	middleware.SetResponseCode(c, category, code)
}
