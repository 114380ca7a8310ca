// Package nmea decodes position fixes from NMEA 0183 sentences emitted by
// serial GPS receivers. Only RMC and GGA sentences are understood, checksums
// are not verified.
package nmea

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var errNotFinite = errors.New("coordinate is not a finite number")

// Kind tells which sentence produced a Fix.
type Kind string

const (
	RMC Kind = "RMC"
	GGA Kind = "GGA"
)

// Minimal number of comma-separated fields for a sentence to be considered.
const (
	MinFieldsRMC = 12
	MinFieldsGGA = 15
)

// Fix is a decoded position in signed decimal degrees.
type Fix struct {
	Latitude  float64
	Longitude float64
	Kind      Kind
}

var talkers = map[string]Kind{
	"$GPRMC": RMC,
	"$GNRMC": RMC,
	"$GPGGA": GGA,
	"$GNGGA": GGA,
}

// Recognized returns the sentence kind of a line, or false if the line
// is not a sentence the decoder understands.
func Recognized(line string) (Kind, bool) {
	head, _, _ := strings.Cut(line, ",")
	k, ok := talkers[head]
	return k, ok
}

// Parse decodes a single line. It returns false for unrecognized,
// invalid, short or malformed sentences.
func Parse(line string) (Fix, bool) {
	line = strings.TrimSpace(line)
	kind, ok := Recognized(line)
	if !ok {
		return Fix{}, false
	}
	fields := strings.Split(line, ",")
	switch kind {
	case RMC:
		return ParseRMC(fields)
	default:
		return ParseGGA(fields)
	}
}

// ParseRMC decodes the fields of a Recommended Minimum sentence.
// A fix requires status 'A' in field 2.
func ParseRMC(fields []string) (Fix, bool) {
	if len(fields) < MinFieldsRMC || fields[2] != "A" {
		return Fix{}, false
	}
	return decode(fields[3], fields[4], fields[5], fields[6], RMC)
}

// ParseGGA decodes the fields of a Fix Data sentence.
// Quality indicator '0' in field 6 means there is no fix.
func ParseGGA(fields []string) (Fix, bool) {
	if len(fields) < MinFieldsGGA || fields[6] == "0" {
		return Fix{}, false
	}
	return decode(fields[2], fields[3], fields[4], fields[5], GGA)
}

func decode(lat, latHemi, lon, lonHemi string, kind Kind) (Fix, bool) {
	la, err := DecodeCoordinate(lat, latHemi)
	if err != nil {
		return Fix{}, false
	}
	lo, err := DecodeCoordinate(lon, lonHemi)
	if err != nil {
		return Fix{}, false
	}
	if math.Abs(la) > 90 || math.Abs(lo) > 180 {
		return Fix{}, false
	}
	return Fix{Latitude: la, Longitude: lo, Kind: kind}, true
}

// DecodeCoordinate converts a (d)ddmm.mmmm value to decimal degrees.
// Southern and western hemispheres give negative values.
func DecodeCoordinate(raw, hemisphere string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	deg := float64(int(v / 100))
	min := v - deg*100
	res := deg + min/60

	if hemisphere == "S" || hemisphere == "W" {
		res = -res
	}
	return res, nil
}
