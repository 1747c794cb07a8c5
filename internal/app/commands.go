package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Kevrnd/car-garage/internal/config"
	"github.com/Kevrnd/car-garage/internal/model"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// login prints the fresh session as .env lines so later runs can reuse it via
// GARAGE_SESSION_ID and GARAGE_CSRF_TOKEN.
func (a *app) login(ctx context.Context, args []string) error {
	const op = "app.login"

	fs := a.flags("login")
	var (
		username = fs.String("username", "", "backend user, defaults to GARAGE_USERNAME")
		password = fs.String("password", "", "backend password, defaults to GARAGE_PASSWORD")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		*username = config.C().Backend.Username()
	}
	if *password == "" {
		*password = config.C().Backend.Password()
	}

	client, err := a.di.GarageClient(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Login(ctx, *username, *password); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	fmt.Fprintf(a.out, "GARAGE_SESSION_ID=%s\nGARAGE_CSRF_TOKEN=%s\n", client.SessionID(), client.CSRFToken())
	return nil
}

func (a *app) cars(ctx context.Context, args []string) error {
	const op = "app.cars"

	if err := a.flags("cars").Parse(args); err != nil {
		return err
	}

	client, err := a.di.GarageClient(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cars, err := client.ListCars(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return printCars(a.out, cars)
}

func (a *app) summary(ctx context.Context, args []string) error {
	const op = "app.summary"

	if err := a.flags("summary").Parse(args); err != nil {
		return err
	}

	store, err := a.di.Store(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := store.Refresh(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return printSummary(a.out, store.Repairs(), store.StockParts(), store.Aggregates())
}

type carFlags struct {
	brand, model, vin   *string
	year, power         *string
	tireFront, tireRear *string
	wipers, notes       *string
}

func bindCarFlags(fs *flag.FlagSet) carFlags {
	return carFlags{
		brand:     fs.String("brand", "", "make, required"),
		model:     fs.String("model", "", "model, required"),
		vin:       fs.String("vin", "", "VIN, required"),
		year:      fs.String("year", "", "model year"),
		power:     fs.String("power", "", "engine power, hp"),
		tireFront: fs.String("tire-front", "", "front tyre size"),
		tireRear:  fs.String("tire-rear", "", "rear tyre size"),
		wipers:    fs.String("wipers", "", "wiper blade sizes"),
		notes:     fs.String("notes", "", "free text"),
	}
}

func (f carFlags) input() (model.CarInput, error) {
	year, err := parseOptInt("year", *f.year)
	if err != nil {
		return model.CarInput{}, err
	}
	power, err := parseOptInt("power", *f.power)
	if err != nil {
		return model.CarInput{}, err
	}

	in := model.CarInput{
		Brand:     *f.brand,
		Model:     *f.model,
		VIN:       *f.vin,
		Year:      year,
		Power:     power,
		TireFront: f.tireFront,
		TireRear:  f.tireRear,
		Wipers:    f.wipers,
		Notes:     f.notes,
	}
	for _, req := range []struct{ name, v string }{{"brand", in.Brand}, {"model", in.Model}, {"vin", in.VIN}} {
		if strings.TrimSpace(req.v) == "" {
			return model.CarInput{}, fmt.Errorf("%w: -%s is required", model.ErrInvalidArgument, req.name)
		}
	}
	return in, nil
}

func (a *app) carAdd(ctx context.Context, args []string) error {
	const op = "app.carAdd"

	fs := a.flags("car-add")
	cf := bindCarFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in, err := cf.input()
	if err != nil {
		return err
	}

	client, err := a.di.GarageClient(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	created, err := client.CreateCar(ctx, in)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	fmt.Fprintf(a.out, "car %d created: %s\n", created.ID, created.Title())
	return nil
}

func (a *app) carUpdate(ctx context.Context, args []string) error {
	const op = "app.carUpdate"

	fs := a.flags("car-update")
	id := fs.Int64("id", 0, "car to replace")
	cf := bindCarFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id <= 0 {
		return fmt.Errorf("%s: %w: -id must be positive", op, model.ErrInvalidArgument)
	}
	in, err := cf.input()
	if err != nil {
		return err
	}

	client, err := a.di.GarageClient(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	updated, err := client.UpdateCar(ctx, *id, in)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	fmt.Fprintf(a.out, "car %d updated: %s\n", updated.ID, updated.Title())
	return nil
}

func (a *app) report(ctx context.Context, args []string) error {
	const op = "app.report"

	fs := a.flags("report")
	var (
		fromF   = fs.String("from", "", "first day, YYYY-MM-DD")
		toF     = fs.String("to", "", "last day, YYYY-MM-DD")
		out     = fs.String("out", "", "write the spreadsheet to this file or directory")
		server  = fs.Bool("server", false, "download the spreadsheet built by the backend")
		archive = fs.Bool("archive", false, "upload the spreadsheet to the report archive")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	from, err := parseDay("from", *fromF)
	if err != nil {
		return err
	}
	to, err := parseDay("to", *toF)
	if err != nil {
		return err
	}

	store, err := a.di.Store(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	client, err := a.di.GarageClient(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var exported model.ExportedReport
	if *server {
		if to.Before(from) {
			return fmt.Errorf("%s: %w: -to is before -from", op, model.ErrInvalidArgument)
		}
		exported, err = client.ExportReport(ctx, store.CarID(), from, to)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if *out == "" && !*archive {
			*out = "."
		}
	} else {
		if err := store.LoadRepairs(ctx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		rep, err := store.GenerateReport(from, to)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := printReport(a.out, rep); err != nil {
			return err
		}

		if *out == "" && !*archive {
			return nil
		}

		car, err := client.Car(ctx, store.CarID())
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		renderer := a.di.ReportRenderer(ctx)
		data, err := renderer.Render(car, rep)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		exported = model.ExportedReport{
			Filename:    renderer.Filename(car, rep),
			ContentType: xlsxContentType,
			Data:        data,
		}
	}

	if *out != "" {
		path, err := writeReport(*out, exported)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		fmt.Fprintf(a.out, "saved %s\n", path)
	}

	if *archive {
		arch, err := a.di.ReportArchive(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		key, err := arch.SaveReport(ctx, store.CarID(), exported)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		fmt.Fprintf(a.out, "archived %s\n", key)
	}

	return nil
}

func (a *app) convert(ctx context.Context, args []string) error {
	const op = "app.convert"

	fs := a.flags("convert")
	var (
		repairID = fs.Int64("repair", 0, "repair receiving the parts")
		stockF   = fs.String("stock", "", "comma separated stock part ids, converted in this order")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ids, err := parseIDs(*stockF)
	if err != nil {
		return err
	}

	store, err := a.di.Store(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := store.Refresh(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sel := store.AddToRepairSelection()
	sel.Clear()
	sel.Add(ids...)

	result, convErr := store.ConvertStockPartsToRepairParts(ctx, *repairID, sel.IDs())
	if err := printConversion(a.out, result, store.Aggregates()); err != nil {
		return err
	}
	if convErr != nil {
		return fmt.Errorf("%s: %w", op, convErr)
	}

	return nil
}

func (a *app) repairAdd(ctx context.Context, args []string) error {
	const op = "app.repairAdd"

	fs := a.flags("repair-add")
	var (
		dateF    = fs.String("date", "", "day of the work, YYYY-MM-DD")
		mileage  = fs.Int64("mileage", 0, "odometer reading, km")
		desc     = fs.String("desc", "", "work performed")
		workCost = fs.String("work-cost", "0", "labour cost")
		stockF   = fs.String("stock", "", "comma separated stock part ids moved into the repair")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	date, err := parseDay("date", *dateF)
	if err != nil {
		return err
	}
	cost, err := parseMoney("work-cost", *workCost)
	if err != nil {
		return err
	}
	var ids []int64
	if *stockF != "" {
		if ids, err = parseIDs(*stockF); err != nil {
			return err
		}
	}

	store, err := a.di.Store(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	created, err := store.CreateRepair(ctx, model.RepairInput{
		Date:            date,
		Mileage:         *mileage,
		WorkDescription: *desc,
		WorkCost:        cost,
		StockPartIDs:    ids,
	})
	if created.ID != 0 {
		fmt.Fprintf(a.out, "repair %d created, total %s\n", created.ID, created.TotalCost().StringFixed(2))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *app) partAdd(ctx context.Context, args []string) error {
	const op = "app.partAdd"

	fs := a.flags("part-add")
	var (
		repairID     = fs.Int64("repair", 0, "repair receiving the part")
		name         = fs.String("name", "", "part name")
		code         = fs.String("code", "", "part number")
		manufacturer = fs.String("manufacturer", "", "manufacturer")
		qty          = fs.Int("qty", 1, "quantity")
		costF        = fs.String("cost", "0", "unit cost")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cost, err := parseMoney("cost", *costF)
	if err != nil {
		return err
	}

	store, err := a.di.Store(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	created, err := store.CreatePart(ctx, *repairID, model.PartInput{
		Name:         *name,
		PartCode:     *code,
		Manufacturer: *manufacturer,
		Quantity:     *qty,
		Cost:         cost,
	})
	if created.ID != 0 {
		fmt.Fprintf(a.out, "part %d added to repair %d\n", created.ID, *repairID)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *app) stockAdd(ctx context.Context, args []string) error {
	const op = "app.stockAdd"

	fs := a.flags("stock-add")
	var (
		name         = fs.String("name", "", "part name")
		code         = fs.String("code", "", "part number")
		manufacturer = fs.String("manufacturer", "", "manufacturer")
		qty          = fs.Int("qty", 1, "quantity")
		costF        = fs.String("cost", "", "unit cost, empty when unknown")
		purchaseF    = fs.String("purchase-date", "", "purchase day, YYYY-MM-DD")
		notesF       = fs.String("notes", "", "free text")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := model.StockPartInput{
		Name:         *name,
		PartCode:     *code,
		Manufacturer: *manufacturer,
		Quantity:     *qty,
	}
	if *costF != "" {
		cost, err := parseMoney("cost", *costF)
		if err != nil {
			return err
		}
		in.Cost = &cost
	}
	if *purchaseF != "" {
		d, err := parseDay("purchase-date", *purchaseF)
		if err != nil {
			return err
		}
		in.PurchaseDate = &d
	}
	if *notesF != "" {
		in.Notes = notesF
	}

	store, err := a.di.Store(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	created, err := store.CreateStockPart(ctx, in)
	if created.ID != 0 {
		fmt.Fprintf(a.out, "stock part %d created\n", created.ID)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	const op = "app.delete"

	fs := a.flags("delete")
	var (
		entity   = fs.String("entity", "", "car, repair, part or stock")
		id       = fs.Int64("id", 0, "id to delete")
		repairID = fs.Int64("repair", 0, "repair owning the part")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *entity == "car" {
		if *id <= 0 {
			return fmt.Errorf("%s: %w: -id must be positive", op, model.ErrInvalidArgument)
		}
		client, err := a.di.GarageClient(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := client.DeleteCar(ctx, *id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		fmt.Fprintf(a.out, "car %d deleted\n", *id)
		return nil
	}

	store, err := a.di.Store(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch *entity {
	case "repair":
		err = store.DeleteRepair(ctx, *id)
	case "part":
		err = store.DeletePart(ctx, *repairID, *id)
	case "stock":
		err = store.DeleteStockPart(ctx, *id)
	default:
		return fmt.Errorf("%s: %w: -entity must be car, repair, part or stock", op, model.ErrInvalidArgument)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	fmt.Fprintf(a.out, "%s %d deleted\n", *entity, *id)
	return nil
}

func parseDay(name, v string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: -%s %q is not YYYY-MM-DD", model.ErrInvalidArgument, name, v)
	}
	return t, nil
}

func parseOptInt(name, v string) (*int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: -%s %q is not an integer", model.ErrInvalidArgument, name, v)
	}
	return &n, nil
}

func parseMoney(name, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: -%s %q is not a number", model.ErrInvalidArgument, name, v)
	}
	return d, nil
}

func parseIDs(v string) ([]int64, error) {
	fields := lo.Compact(lo.Map(strings.Split(v, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no ids given", model.ErrInvalidArgument)
	}

	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: bad id %q", model.ErrInvalidArgument, f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// writeReport writes into dest, or into dest/<filename> when dest is a directory.
func writeReport(dest string, rep model.ExportedReport) (string, error) {
	path := dest
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		path = filepath.Join(dest, filepath.Base(rep.Filename))
	}

	if err := os.WriteFile(path, rep.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
