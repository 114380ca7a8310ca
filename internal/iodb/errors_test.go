package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("root cause")

	tests := []struct {
		name  string
		err   error
		code  gn.ErrorCode
		nVars int
	}{
		{"connection", ConnectionError("h", 5432, "db", "u", cause),
			errcode.DBConnectionError, 4},
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError, 0},
		{"table check", TableExistsCheckError("samples", cause),
			errcode.DBTableExistsCheckError, 1},
		{"query", QueryError("list tables", cause), errcode.DBQueryError, 1},
		{"insert", InsertError(7, cause), errcode.DBInsertError, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.Len(t, gnErr.Vars, tt.nVars)
			if tt.nVars > 0 {
				assert.ErrorIs(t, gnErr.Err, cause)
			}
		})
	}
}
