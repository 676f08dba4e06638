// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
//
// Example:
//
//	n := utils.AtoiDefault("42", 0) // returns 42
//	n = utils.AtoiDefault("", 10)   // returns 10
//	n = utils.AtoiDefault("x", 5)   // returns 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// Default and maximum page sizes applied by NormalizePage.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage clamps page to >= 1 and pageSize to [1, MaxPageSize],
// substituting DefaultPageSize for non-positive sizes.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Paginate returns the page-th window of size pageSize from items, after
// NormalizePage. A page past the end yields an empty, non-nil slice.
//
// Example:
//
//	utils.Paginate([]int{1, 2, 3, 4, 5}, 2, 2) // returns [3 4]
func Paginate[T any](items []T, page, pageSize int) []T {
	page, pageSize = NormalizePage(page, pageSize)
	// compare before multiplying so huge pages cannot overflow
	if page-1 >= (len(items)+pageSize-1)/pageSize {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
