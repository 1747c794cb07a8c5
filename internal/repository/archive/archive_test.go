package archive

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevrnd/car-garage/internal/model"
)

type recordedPut struct {
	method      string
	path        string
	contentType string
	carID       string
}

type fakeS3 struct {
	mu     sync.Mutex
	puts   []recordedPut
	status int
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
		_ = req.Body.Close()
	}

	f.mu.Lock()
	f.puts = append(f.puts, recordedPut{
		method:      req.Method,
		path:        req.URL.Path,
		contentType: req.Header.Get("Content-Type"),
		carID:       req.Header.Get("X-Amz-Meta-Car-Id"),
	})
	status := f.status
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Etag": {`"etag"`}},
		Body:       io.NopCloser(bytes.NewReader(nil)),
		Request:    req,
	}, nil
}

func newTestRepository(t *testing.T, rt http.RoundTripper) *repository {
	t.Helper()

	cfg := Config{
		Bucket:          "reports",
		Region:          "us-east-1",
		Endpoint:        "http://s3.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		Prefix:          "/garage/",
	}
	client, err := NewClient(context.Background(), cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
	})
	require.NoError(t, err)

	repo := NewRepository(client, cfg)
	repo.now = func() time.Time { return time.Date(2024, 7, 1, 10, 20, 30, 0, time.UTC) }
	return repo
}

func TestSaveReport(t *testing.T) {
	t.Parallel()

	rt := &fakeS3{}
	repo := newTestRepository(t, rt)

	key, err := repo.SaveReport(context.Background(), 12, model.ExportedReport{
		Filename:    "../report_Lada_Vesta_20240101_20240331.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("xlsx"),
	})
	require.NoError(t, err)
	assert.Equal(t, "garage/cars/12/reports/20240701T102030Z_report_Lada_Vesta_20240101_20240331.xlsx", key)

	require.Len(t, rt.puts, 1)
	put := rt.puts[0]
	assert.Equal(t, http.MethodPut, put.method)
	assert.Equal(t, "/reports/"+key, put.path)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", put.contentType)
	assert.Equal(t, "12", put.carID)
}

func TestSaveReportFailures(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, &fakeS3{status: http.StatusForbidden})
	_, err := repo.SaveReport(context.Background(), 1, model.ExportedReport{Filename: "r.xlsx"})
	require.Error(t, err)

	repo.bucket = ""
	_, err = repo.SaveReport(context.Background(), 1, model.ExportedReport{Filename: "r.xlsx"})
	require.ErrorIs(t, err, model.ErrInvalidArgument)
}
