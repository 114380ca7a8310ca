// Package schema provides the SQL model of sample records shared by the
// PostgreSQL and SQLite stores.
package schema

import (
	"github.com/mpsense/sampler/pkg/sample"
)

// DDLGenerator defines how Go models generate SQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the SQL table name for this model.
	TableName() string
}

// Sample is one row of the samples table. Nullable columns hold
// attributes that are absent from a record.
type Sample struct {
	// SampleID is the allocated sample identifier.
	SampleID int64 `db:"sample_id" ddl:"BIGINT PRIMARY KEY" gorm:"column:sample_id;primaryKey;autoIncrement:false"`

	// ImageURL locates the raw image.
	ImageURL string `db:"image_url" ddl:"TEXT NOT NULL" gorm:"column:image_url;type:text;not null"`

	// AnnotatedImageURL locates the image with detection boxes.
	AnnotatedImageURL *string `db:"annotated_image_url" ddl:"TEXT" gorm:"column:annotated_image_url;type:text"`

	// Datetime is the local capture time, YYYY-MM-DD HH:MM:SS.
	Datetime string `db:"datetime" ddl:"VARCHAR(19) NOT NULL" gorm:"column:datetime;type:varchar(19);not null"`

	Latitude  float64 `db:"latitude"  ddl:"DOUBLE PRECISION NOT NULL" gorm:"column:latitude;not null"`
	Longitude float64 `db:"longitude" ddl:"DOUBLE PRECISION NOT NULL" gorm:"column:longitude;not null"`

	// BoxCount is the number of detected particles.
	BoxCount *int `db:"box_count" ddl:"INTEGER" gorm:"column:box_count"`

	// Density is particles per milliliter.
	Density *float64 `db:"density" ddl:"DOUBLE PRECISION" gorm:"column:density"`

	PercentPS *float64 `db:"percent_ps" ddl:"DOUBLE PRECISION" gorm:"column:percent_ps"`
	PercentPP *float64 `db:"percent_pp" ddl:"DOUBLE PRECISION" gorm:"column:percent_pp"`
	PercentPE *float64 `db:"percent_pe" ddl:"DOUBLE PRECISION" gorm:"column:percent_pe"`
}

// FromRecord converts a record to a row.
func FromRecord(r sample.Record) Sample {
	return Sample{
		SampleID:          r.SampleID,
		ImageURL:          r.ImageURL,
		AnnotatedImageURL: r.AnnotatedImageURL,
		Datetime:          r.Datetime,
		Latitude:          r.Latitude,
		Longitude:         r.Longitude,
		BoxCount:          r.BoxCount,
		Density:           r.Density,
		PercentPS:         r.PercentPS,
		PercentPP:         r.PercentPP,
		PercentPE:         r.PercentPE,
	}
}

// Record converts a row back to a record.
func (s Sample) Record() sample.Record {
	return sample.Record{
		SampleID:          s.SampleID,
		ImageURL:          s.ImageURL,
		AnnotatedImageURL: s.AnnotatedImageURL,
		Datetime:          s.Datetime,
		Latitude:          s.Latitude,
		Longitude:         s.Longitude,
		BoxCount:          s.BoxCount,
		Density:           s.Density,
		PercentPS:         s.PercentPS,
		PercentPP:         s.PercentPP,
		PercentPE:         s.PercentPE,
	}
}

// Values returns column values in Columns order.
func (s Sample) Values() []any {
	return []any{
		s.SampleID, s.ImageURL, s.AnnotatedImageURL, s.Datetime,
		s.Latitude, s.Longitude, s.BoxCount, s.Density,
		s.PercentPS, s.PercentPP, s.PercentPE,
	}
}
