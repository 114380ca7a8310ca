package nmea_test

import (
	"strings"
	"testing"

	"github.com/mpsense/sampler/pkg/nmea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rmcValid = "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"
	ggaValid = "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"
)

func TestDecodeCoordinate(t *testing.T) {
	tests := []struct {
		msg  string
		raw  string
		hemi string
		res  float64
	}{
		{"north", "4807.038", "N", 48.1173},
		{"east", "01131.000", "E", 11.516666666666667},
		{"south", "1424.000", "S", -14.4},
		{"west", "12115.000", "W", -121.25},
		{"laguna de bay", "1424.000", "N", 14.4},
		{"zero", "0000.000", "N", 0},
	}

	for _, v := range tests {
		res, err := nmea.DecodeCoordinate(v.raw, v.hemi)
		require.NoError(t, err, v.msg)
		assert.InDelta(t, v.res, res, 1e-9, v.msg)
	}

	_, err := nmea.DecodeCoordinate("", "N")
	assert.Error(t, err)
	_, err = nmea.DecodeCoordinate("48O7.038", "N")
	assert.Error(t, err)
	_, err = nmea.DecodeCoordinate("NaN", "N")
	assert.Error(t, err)
	_, err = nmea.DecodeCoordinate("Inf", "E")
	assert.Error(t, err)
}

func TestParseGarbledCoordinates(t *testing.T) {
	tests := []struct {
		msg  string
		line string
	}{
		{"nan and inf",
			"$GPRMC,123519,A,NaN,N,Inf,E,022.4,084.4,230394,003.1,W*6A"},
		{"latitude above 90",
			"$GPRMC,123519,A,9507.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"},
		{"longitude above 180",
			"$GPGGA,123519,4807.038,N,19131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"},
	}

	for _, v := range tests {
		_, ok := nmea.Parse(v.line)
		assert.False(t, ok, v.msg)
	}
}

func TestParseRMC(t *testing.T) {
	fix, ok := nmea.Parse(rmcValid)
	require.True(t, ok)
	assert.Equal(t, nmea.RMC, fix.Kind)
	assert.InDelta(t, 48.1173, fix.Latitude, 1e-9)
	assert.InDelta(t, 11.516666666666667, fix.Longitude, 1e-9)

	tests := []struct {
		msg  string
		line string
	}{
		{"void status", strings.Replace(rmcValid, ",A,", ",V,", 1)},
		{"too few fields", "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1"},
		{"empty latitude", "$GPRMC,123519,A,,N,01131.000,E,022.4,084.4,230394,003.1,W*6A"},
		{"garbage longitude", "$GPRMC,123519,A,4807.038,N,abc,E,022.4,084.4,230394,003.1,W*6A"},
	}
	for _, v := range tests {
		_, ok := nmea.Parse(v.line)
		assert.False(t, ok, v.msg)
	}
}

func TestParseGGA(t *testing.T) {
	fix, ok := nmea.Parse(ggaValid)
	require.True(t, ok)
	assert.Equal(t, nmea.GGA, fix.Kind)
	assert.InDelta(t, 48.1173, fix.Latitude, 1e-9)
	assert.InDelta(t, 11.516666666666667, fix.Longitude, 1e-9)

	tests := []struct {
		msg  string
		line string
	}{
		{"no fix quality", "$GPGGA,123519,4807.038,N,01131.000,E,0,08,0.9,545.4,M,46.9,M,,*47"},
		{"too few fields", "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M*47"},
		{"no position", "$GPGGA,123519,,,,,1,08,0.9,545.4,M,46.9,M,,*47"},
	}
	for _, v := range tests {
		_, ok := nmea.Parse(v.line)
		assert.False(t, ok, v.msg)
	}
}

func TestParseTalkers(t *testing.T) {
	tests := []struct {
		msg  string
		line string
		ok   bool
		kind nmea.Kind
	}{
		{"gps rmc", rmcValid, true, nmea.RMC},
		{"gnss rmc", strings.Replace(rmcValid, "$GPRMC", "$GNRMC", 1), true, nmea.RMC},
		{"gnss gga", strings.Replace(ggaValid, "$GPGGA", "$GNGGA", 1), true, nmea.GGA},
		{"trailing crlf", rmcValid + "\r\n", true, nmea.RMC},
		{"satellites in view", "$GPGSV,3,1,11,03,03,111,00,04,15,270,00,06,01,010,00,13,06,292,00*74", false, ""},
		{"no dollar", "GPRMC,123519,A,4807.038,N", false, ""},
		{"empty", "", false, ""},
	}

	for _, v := range tests {
		fix, ok := nmea.Parse(v.line)
		assert.Equal(t, v.ok, ok, v.msg)
		assert.Equal(t, v.kind, fix.Kind, v.msg)
	}
}
