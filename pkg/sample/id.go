package sample

import (
	"context"
	"math"
	"strconv"
	"strings"
)

// IDSource provides identifiers of stored records.
type IDSource interface {
	SampleIDs(ctx context.Context) ([]string, error)
}

// Allocator computes the next sample ID from the current maximum.
// It does not reserve the ID, two writers reading the same maximum get
// the same value.
type Allocator struct {
	src IDSource
}

// NewAllocator creates Allocator reading identifiers from src.
func NewAllocator(src IDSource) *Allocator {
	return &Allocator{src: src}
}

// Next scans stored identifiers and returns max+1, or 1 for an empty
// store.
func (a *Allocator) Next(ctx context.Context) (int64, error) {
	ids, err := a.src.SampleIDs(ctx)
	if err != nil {
		return 0, err
	}
	return NextID(ids), nil
}

// NextID returns the largest integer among ids plus one. Identifiers that
// are not integral numbers are skipped, as is math.MaxInt64 which has no
// successor. The result is never less than 1.
func NextID(ids []string) int64 {
	var max int64
	var found bool
	for _, v := range ids {
		id, ok := parseID(v)
		if !ok || id == math.MaxInt64 {
			continue
		}
		if !found || id > max {
			max = id
			found = true
		}
	}
	if !found || max < 1 {
		return 1
	}
	return max + 1
}

func parseID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, true
	}

	// numeric attributes may come back as "7.0" or "7E+0"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) >= 1<<53 {
		return 0, false
	}
	return int64(f), true
}
