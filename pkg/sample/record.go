// Package sample holds the persisted sample record, the record builder
// and the sample identifier allocator.
package sample

import (
	"context"
	"errors"
)

const (
	// Volume is the sampled water volume in milliliters. Density is the
	// number of detected particles per milliliter.
	Volume = 70.0

	// DatetimeLayout is the local-time format of Record.Datetime.
	DatetimeLayout = "2006-01-02 15:04:05"
)

// ErrIDTaken is returned by Store.PutIfAbsent when a record with the same
// sample ID exists already.
var ErrIDTaken = errors.New("sample ID is taken")

// LocationSource tells where record coordinates came from.
type LocationSource string

const (
	LocationGPS      LocationSource = "gps"
	LocationFallback LocationSource = "fallback"
)

// Record is one persisted sample. Attribute names are shared with the
// reporting layer and must not change. Optional attributes are nil when
// absent and are not written to the store.
type Record struct {
	SampleID          int64    `json:"sampleID"                    dynamodbav:"sampleID"`
	ImageURL          string   `json:"imageURL"                    dynamodbav:"imageURL"`
	AnnotatedImageURL *string  `json:"annotatedImageURL,omitempty" dynamodbav:"annotatedImageURL,omitempty"`
	Datetime          string   `json:"datetime"                    dynamodbav:"datetime"`
	Latitude          float64  `json:"latitude"                    dynamodbav:"latitude"`
	Longitude         float64  `json:"longitude"                   dynamodbav:"longitude"`
	BoxCount          *int     `json:"boxCount,omitempty"          dynamodbav:"boxCount,omitempty"`
	Density           *float64 `json:"density,omitempty"           dynamodbav:"density,omitempty"`
	PercentPS         *float64 `json:"percent_PS,omitempty"        dynamodbav:"percent_PS,omitempty"`
	PercentPP         *float64 `json:"percent_PP,omitempty"        dynamodbav:"percent_PP,omitempty"`
	PercentPE         *float64 `json:"percent_PE,omitempty"        dynamodbav:"percent_PE,omitempty"`

	// LocationSource is kept in memory for logs and outcomes only.
	LocationSource LocationSource `json:"-" dynamodbav:"-"`
}

// Store is a durable keyed collection of sample records.
type Store interface {
	// SampleIDs returns the sampleID attribute of every stored record as
	// text, the way the store holds it.
	SampleIDs(ctx context.Context) ([]string, error)

	// Put writes the record, replacing a record with the same sample ID.
	Put(ctx context.Context, rec Record) error

	// PutIfAbsent writes the record only if its sample ID is free,
	// otherwise it returns ErrIDTaken.
	PutIfAbsent(ctx context.Context, rec Record) error

	// Close releases the store resources.
	Close() error
}
