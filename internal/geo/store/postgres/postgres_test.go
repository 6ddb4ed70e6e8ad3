package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"angodata/pkg/platform/sentinel"
)

func TestTranslateErr(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "no rows", in: sql.ErrNoRows, want: sentinel.ErrNotFound},
		{name: "unique violation", in: &pq.Error{Code: "23505", Message: "duplicate key"}, want: sentinel.ErrConflict},
		{name: "fk violation", in: &pq.Error{Code: "23503", Message: "violates foreign key"}, want: sentinel.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateErr(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslateErr_PassesThroughUnknown(t *testing.T) {
	in := errors.New("connection reset")
	assert.Equal(t, in, translateErr(in))
}
