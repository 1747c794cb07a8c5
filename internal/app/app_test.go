package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Kevrnd/car-garage/internal/client/http/garage/fake"
	garageclient "github.com/Kevrnd/car-garage/internal/client/http/garage/v1"
	"github.com/Kevrnd/car-garage/internal/model"
	"github.com/Kevrnd/car-garage/internal/service/garage"
	chgproducer "github.com/Kevrnd/car-garage/internal/service/producer/change"
)

type env struct {
	app      *app
	out      *bytes.Buffer
	backend  *fake.Server
	url      string
	username string
	password string
	carID    int64
}

type archiveFunc func(ctx context.Context, carID int64, rep model.ExportedReport) (string, error)

func (f archiveFunc) SaveReport(ctx context.Context, carID int64, rep model.ExportedReport) (string, error) {
	return f(ctx, carID, rep)
}

func newEnv(t *testing.T) env {
	t.Helper()

	backend := fake.New()
	backend.RequireAuth(true)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	username := gofakeit.Username()
	password := gofakeit.Password(true, true, true, false, false, 12)
	backend.AddUser(username, password)
	carID := backend.AddCar("Lada", "Vesta", "XTA00000000000001")

	c, err := garageclient.NewClient(garageclient.Options{BaseURL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, c.Login(context.Background(), username, password))

	out := &bytes.Buffer{}
	return env{
		app: &app{
			di: &di{
				garageClient: c,
				store:        garage.NewStore(carID, c, chgproducer.NewNopPublisher()),
			},
			out: out,
		},
		out:      out,
		backend:  backend,
		url:      srv.URL,
		username: username,
		password: password,
		carID:    carID,
	}
}

func TestRunUnknownCommand(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	err := e.app.run(context.Background(), []string{"fly"})
	assert.ErrorIs(t, err, errUsage)
	assert.True(t, IsUsage(err))
	assert.Contains(t, e.out.String(), "usage: garage <command>")
	assert.Contains(t, e.out.String(), "convert")

	assert.ErrorIs(t, e.app.run(context.Background(), nil), errUsage)
}

func TestRunCars(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	require.NoError(t, e.app.run(context.Background(), []string{"cars"}))
	assert.Contains(t, e.out.String(), "Lada Vesta")
	assert.Contains(t, e.out.String(), "XTA00000000000001")
}

func TestRunSummary(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	repairID := e.backend.AddRepair(e.carID, "2024-02-10", 120000, "Замена: масло 5W-30", "1000")
	e.backend.AddPart(repairID, "Фильтр", "F-1", 2, "150")
	e.backend.AddStockPart(e.carID, "Свеча", "S-1", 4, "100")
	e.backend.AddStockPart(e.carID, "Щетки", "W-1", 1, "")

	require.NoError(t, e.app.run(context.Background(), []string{"summary"}))

	out := e.out.String()
	assert.Contains(t, out, "[oil] Замена: масло 5W-30")
	assert.Contains(t, out, "1300.00")
	assert.Contains(t, out, "Свеча")
	// parts total mixes installed (300) and stocked (400) parts
	assert.Contains(t, out, "700.00")
	assert.Contains(t, out, "1700.00")
}

func TestRunConvert(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	repairID := e.backend.AddRepair(e.carID, "2024-02-10", 120000, "ТО", "0")
	a := e.backend.AddStockPart(e.carID, "Фильтр", "F-1", 1, "200")
	b := e.backend.AddStockPart(e.carID, "Масло", "M-1", 1, "200")

	args := []string{"convert", "-repair", itoa(repairID), "-stock", itoa(a) + ", " + itoa(b)}
	require.NoError(t, e.app.run(context.Background(), args))

	assert.Equal(t, 0, e.backend.StockCount(e.carID))
	assert.Equal(t, 2, e.backend.PartCount(repairID))
	assert.Equal(t, 2, bytes.Count(e.out.Bytes(), []byte(string(model.OutcomeConverted))))
	assert.Zero(t, e.app.di.store.AddToRepairSelection().Len())
}

func TestRunConvertAborts(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	repairID := e.backend.AddRepair(e.carID, "2024-02-10", 120000, "ТО", "0")
	a := e.backend.AddStockPart(e.carID, "Фильтр", "F-1", 1, "200")
	b := e.backend.AddStockPart(e.carID, "Масло", "M-1", 1, "200")
	e.backend.FailOnce("POST", partsURL(e.carID, repairID), 500, `{"detail":"boom"}`)

	args := []string{"convert", "-repair", itoa(repairID), "-stock", itoa(a) + "," + itoa(b)}
	err := e.app.run(context.Background(), args)
	require.ErrorIs(t, err, model.ErrConversionAborted)
	assert.Contains(t, e.out.String(), string(model.OutcomeFailed))
	assert.Equal(t, 2, e.backend.StockCount(e.carID))
	assert.Equal(t, []int64{a, b}, e.app.di.store.AddToRepairSelection().IDs())
}

func TestRunReport(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	repairID := e.backend.AddRepair(e.carID, "2024-02-10", 120000, "Замена масла", "1000")
	e.backend.AddPart(repairID, "Фильтр", "F-1", 2, "150")
	e.backend.AddRepair(e.carID, "2023-12-31", 110000, "Шиномонтаж", "500")

	dir := t.TempDir()
	var archived model.ExportedReport
	e.app.di.archive = archiveFunc(func(_ context.Context, carID int64, rep model.ExportedReport) (string, error) {
		assert.Equal(t, e.carID, carID)
		archived = rep
		return "garage/cars/1/reports/x.xlsx", nil
	})

	args := []string{"report", "-from", "2024-01-01", "-to", "2024-03-31", "-out", dir, "-archive"}
	require.NoError(t, e.app.run(context.Background(), args))

	out := e.out.String()
	assert.Contains(t, out, "1 records")
	assert.Contains(t, out, "Фильтр (F-1) x2")
	assert.NotContains(t, out, "Шиномонтаж")
	assert.Contains(t, out, "archived garage/cars/1/reports/x.xlsx")

	path := filepath.Join(dir, "report_Lada_Vesta_20240101_20240331.xlsx")
	assert.Contains(t, out, "saved "+path)
	assert.Equal(t, filepath.Base(path), archived.Filename)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	v, err := f.GetCellValue(f.GetSheetName(0), "C6")
	require.NoError(t, err)
	assert.Equal(t, "Замена масла", v)
}

func TestRunReportFromServer(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.backend.AddRepair(e.carID, "2024-02-10", 120000, "Замена масла", "1000")
	dir := t.TempDir()

	args := []string{"report", "-server", "-from", "2024-01-01", "-to", "2024-03-31", "-out", dir}
	require.NoError(t, e.app.run(context.Background(), args))

	_, err := os.Stat(filepath.Join(dir, "report_Lada_Vesta_20240101_20240331.xlsx"))
	assert.NoError(t, err)
}

func TestRunRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "report without dates", args: []string{"report"}},
		{name: "report reversed", args: []string{"report", "-from", "2024-03-01", "-to", "2024-01-01"}},
		{name: "convert without ids", args: []string{"convert", "-repair", "1", "-stock", " , "}},
		{name: "convert bad id", args: []string{"convert", "-repair", "1", "-stock", "1,x"}},
		{name: "stock bad cost", args: []string{"stock-add", "-name", "A", "-code", "B", "-manufacturer", "C", "-cost", "ten"}},
		{name: "repair bad date", args: []string{"repair-add", "-date", "10.02.2024"}},
		{name: "delete unknown entity", args: []string{"delete", "-entity", "boat", "-id", "1"}},
		{name: "delete car without id", args: []string{"delete", "-entity", "car"}},
		{name: "car without vin", args: []string{"car-add", "-brand", "Kia", "-model", "Rio"}},
		{name: "car bad year", args: []string{"car-add", "-brand", "Kia", "-model", "Rio", "-vin", "V", "-year", "new"}},
		{name: "car update without id", args: []string{"car-update", "-brand", "Kia", "-model", "Rio", "-vin", "V"}},
		{name: "delete zero id", args: []string{"delete", "-entity", "stock", "-id", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newEnv(t)
			err := e.app.run(context.Background(), tt.args)
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
			assert.True(t, IsUsage(err))
		})
	}
}

func TestRunMutations(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	ctx := context.Background()
	stockID := e.backend.AddStockPart(e.carID, "Колодки", "B-1", 1, "2500")

	require.NoError(t, e.app.run(ctx, []string{
		"repair-add", "-date", "2024-05-01", "-mileage", "125000",
		"-desc", "Замена колодок", "-work-cost", "1500", "-stock", itoa(stockID),
	}))
	assert.Contains(t, e.out.String(), "created, total 4000.00")
	assert.Equal(t, 0, e.backend.StockCount(e.carID))

	repairs := e.app.di.store.Repairs()
	require.Len(t, repairs, 1)
	repairID := repairs[0].ID

	require.NoError(t, e.app.run(ctx, []string{
		"part-add", "-repair", itoa(repairID), "-name", "Датчик", "-code", "D-1",
		"-manufacturer", "Bosch", "-qty", "0", "-cost", "800",
	}))
	assert.Equal(t, 2, e.backend.PartCount(repairID))

	require.NoError(t, e.app.run(ctx, []string{
		"stock-add", "-name", "Лампа", "-code", "H7", "-manufacturer", "Osram", "-qty", "2",
	}))
	assert.Equal(t, 1, e.backend.StockCount(e.carID))

	require.NoError(t, e.app.run(ctx, []string{"delete", "-entity", "repair", "-id", itoa(repairID)}))
	assert.Contains(t, e.out.String(), "repair "+itoa(repairID)+" deleted")
	assert.Empty(t, e.app.di.store.Repairs())
}

func TestRunCarMutations(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.app.run(ctx, []string{
		"car-add", "-brand", "Kia", "-model", "Rio", "-vin", "Z94CB41AAGR000001", "-year", "2016", "-power", "106",
	}))
	assert.Contains(t, e.out.String(), "created: Kia Rio")
	assert.Equal(t, 2, e.backend.CarCount())

	cars, err := e.app.di.garageClient.ListCars(ctx)
	require.NoError(t, err)
	var newID int64
	for _, c := range cars {
		if c.ID != e.carID {
			newID = c.ID
		}
	}
	require.NotZero(t, newID)

	require.NoError(t, e.app.run(ctx, []string{
		"car-update", "-id", itoa(newID), "-brand", "Kia", "-model", "Rio X", "-vin", "Z94CB41AAGR000001",
	}))
	assert.Contains(t, e.out.String(), "updated: Kia Rio X")

	err = e.app.run(ctx, []string{
		"car-add", "-brand", "Kia", "-model", "Rio", "-vin", "Z94CB41AAGR000002", "-power", "-5",
	})
	require.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, 2, e.backend.CarCount())

	require.NoError(t, e.app.run(ctx, []string{"delete", "-entity", "car", "-id", itoa(newID)}))
	assert.Contains(t, e.out.String(), "car "+itoa(newID)+" deleted")
	assert.Equal(t, 1, e.backend.CarCount())
}

func TestRunLoginPrintsSession(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	c, err := garageclient.NewClient(garageclient.Options{BaseURL: e.url})
	require.NoError(t, err)
	e.app.di = &di{garageClient: c}

	err = e.app.run(context.Background(), []string{"login", "-username", e.username, "-password", "wrong"})
	require.ErrorIs(t, err, model.ErrLoginFailed)

	require.NoError(t, e.app.run(context.Background(), []string{
		"login", "-username", e.username, "-password", e.password,
	}))
	out := e.out.String()
	assert.Contains(t, out, "GARAGE_SESSION_ID="+c.SessionID())
	assert.Contains(t, out, "GARAGE_CSRF_TOKEN="+c.CSRFToken())
	assert.NotEmpty(t, c.SessionID())

	require.NoError(t, e.app.run(context.Background(), []string{"cars"}))
	assert.Contains(t, e.out.String(), "Lada Vesta")
}

func TestRunReportsExpiredSession(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	c, err := garageclient.NewClient(garageclient.Options{BaseURL: e.url, SessionID: "stale", CSRFToken: "stale"})
	require.NoError(t, err)
	e.app.di = &di{
		garageClient: c,
		store:        garage.NewStore(e.carID, c, chgproducer.NewNopPublisher()),
	}

	for _, args := range [][]string{{"cars"}, {"summary"}, {"delete", "-entity", "car", "-id", itoa(e.carID)}} {
		err := e.app.run(context.Background(), args)
		require.Error(t, err, args[0])
		assert.True(t, IsSessionExpired(err), args[0])
		assert.ErrorIs(t, err, model.ErrUnauthorized, args[0])
		assert.False(t, IsUsage(err), args[0])
	}
	assert.Equal(t, 1, e.backend.CarCount())

	err = e.app.run(context.Background(), []string{"fly"})
	assert.False(t, IsSessionExpired(err))
}

func TestParseIDs(t *testing.T) {
	t.Parallel()

	ids, err := parseIDs(" 3, 1,,2 ")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids)

	_, err = parseIDs("-1")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func partsURL(carID, repairID int64) string {
	return fmt.Sprintf("/api/cars/%d/repairs/%d/parts/", carID, repairID)
}
