package garageclient

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/Kevrnd/car-garage/internal/client/converter"
	"github.com/Kevrnd/car-garage/internal/model"
)

const maxExportSize = 32 << 20

// ExportReport downloads the spreadsheet the backend renders for repairs dated within [from, to].
func (c *client) ExportReport(ctx context.Context, carID int64, from, to time.Time) (model.ExportedReport, error) {
	req, err := c.newRequest(ctx, http.MethodGet, carPath(carID)+"export-report/", nil)
	if err != nil {
		return model.ExportedReport{}, err
	}
	req.URL.RawQuery = url.Values{
		"date_from": {converter.FormatDate(from)},
		"date_to":   {converter.FormatDate(to)},
	}.Encode()

	resp, err := c.send(req, resourceExport)
	if err != nil {
		return model.ExportedReport{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.ExportedReport{}, readAPIError(resp)
	}

	data, err := readLimited(resp.Body, maxExportSize)
	if err != nil {
		return model.ExportedReport{}, err
	}

	return model.ExportedReport{
		Filename:    exportFilename(resp.Header.Get("Content-Disposition"), carID, from, to),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// readLimited reads r whole and fails instead of truncating when it holds more than limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read export: %v", model.ErrTransport, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: export exceeds %d bytes", model.ErrTransport, limit)
	}
	return data, nil
}

func exportFilename(disposition string, carID int64, from, to time.Time) string {
	if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
		return params["filename"]
	}

	return fmt.Sprintf("report_%d_%s_%s.xlsx", carID, from.Format("20060102"), to.Format("20060102"))
}
