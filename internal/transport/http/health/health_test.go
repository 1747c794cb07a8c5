package health

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevrnd/car-garage/internal/metrics"
)

func TestRouter(t *testing.T) {
	t.Parallel()

	metrics.ChangeEventsConsumedTotal.WithLabelValues("repair", "created").Inc()

	srv := httptest.NewServer(NewRouter())
	t.Cleanup(srv.Close)

	tests := []struct {
		path     string
		contains string
	}{
		{path: "/health", contains: "SERVING"},
		{path: "/metrics", contains: "garage_change_events_consumed_total"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			buf := new(strings.Builder)
			_, err = io.Copy(buf, resp.Body)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}
