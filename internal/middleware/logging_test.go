package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantCode  string
	}{
		{"success", nil, "level=INFO", ""},
		{"client error", connect.NewError(connect.CodeNotFound, errors.New("group g1: not found")), "level=WARN", "code=not_found"},
		{"server error", connect.NewError(connect.CodeInternal, errors.New("disk full")), "level=ERROR", "code=internal"},
		{"plain error", errors.New("boom"), "level=ERROR", "code=unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			next := connect.UnaryFunc(func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return connect.NewResponse(&struct{}{}), nil
			})

			_, err := LoggingInterceptor(logger)(next)(context.Background(), connect.NewRequest(&struct{}{}))
			require.Equal(t, tt.err, err)

			out := buf.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, "duration_ms=")
			if tt.wantCode != "" {
				assert.Contains(t, out, tt.wantCode)
			}
		})
	}
}
