package garageclient

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevrnd/car-garage/internal/model"
)

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	const jsonType = "application/json"

	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMsg     string
		wantErr     error
		wantFields  int
	}{
		{
			name:        "detail wins over error",
			status:      http.StatusInternalServerError,
			contentType: jsonType,
			body:        `{"error":"boom","detail":"server down","traceback":"..."}`,
			wantMsg:     "server down",
			wantErr:     model.ErrBadGateway,
			wantFields:  1,
		},
		{
			name:        "error text",
			status:      http.StatusNotFound,
			contentType: jsonType,
			body:        `{"error":"Автомобиль не найден"}`,
			wantMsg:     "Автомобиль не найден",
			wantErr:     model.ErrNotFound,
		},
		{
			name:        "field map keeps body order",
			status:      http.StatusBadRequest,
			contentType: "application/json; charset=utf-8",
			body:        `{"work_cost":["Стоимость работ не может быть отрицательной"],"date":["a","b"],"mileage":"bad"}`,
			wantMsg:     "work_cost: Стоимость работ не может быть отрицательной\ndate: a, b\nmileage: bad",
			wantErr:     model.ErrValidation,
			wantFields:  3,
		},
		{
			name:        "non field error list",
			status:      http.StatusBadRequest,
			contentType: jsonType,
			body:        `["first","second"]`,
			wantMsg:     "first\nsecond",
			wantErr:     model.ErrValidation,
		},
		{
			name:        "html body falls back to status text",
			status:      http.StatusForbidden,
			contentType: "text/html",
			body:        "<h1>CSRF verification failed</h1>",
			wantMsg:     "HTTP 403: Forbidden",
			wantErr:     model.ErrForbidden,
		},
		{
			name:        "broken json falls back to status text",
			status:      http.StatusBadGateway,
			contentType: jsonType,
			body:        `{"detail":`,
			wantMsg:     "HTTP 502: Bad Gateway",
			wantErr:     model.ErrBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := parseAPIError(tt.status, tt.contentType, []byte(tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, err.Fields, tt.wantFields)
		})
	}
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Options{BaseURL: "localhost:8000"})
	require.ErrorIs(t, err, model.ErrInvalidArgument)

	c, err := NewClient(Options{BaseURL: "http://localhost:8000/garage", SessionID: "s", CSRFToken: "t"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/garage/api/cars/1/stock/", c.resolve(stockPath(1)))
	assert.Equal(t, "s", c.SessionID())
	assert.Equal(t, "t", c.CSRFToken())
}

func TestExportFilename(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "report_Lada_Vesta_20240101_20241231.xlsx",
		exportFilename(`attachment; filename="report_Lada_Vesta_20240101_20241231.xlsx"`, 3, from, to))
	assert.Equal(t, "report_3_20240101_20241231.xlsx", exportFilename("", 3, from, to))
}

func TestReadLimited(t *testing.T) {
	t.Parallel()

	data, err := readLimited(strings.NewReader("12345678"), 8)
	require.NoError(t, err)
	assert.Equal(t, "12345678", string(data))

	_, err = readLimited(strings.NewReader("123456789"), 8)
	require.ErrorIs(t, err, model.ErrTransport)
	assert.ErrorContains(t, err, "export exceeds 8 bytes")
}
