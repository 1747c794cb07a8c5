package fake

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type fieldErrors map[string][]string

func (fe fieldErrors) add(field, msg string) { fe[field] = append(fe[field], msg) }

type payload map[string]json.RawMessage

func decodePayload(r *http.Request) (payload, error) {
	var p payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return nil, err
	}
	return p, nil
}

func (p payload) has(key string) bool {
	raw, ok := p[key]
	return ok && string(raw) != "null"
}

func (p payload) str(key string) string {
	var s string
	_ = json.Unmarshal(p[key], &s)
	return strings.TrimSpace(s)
}

func (p payload) optStr(key string) *string {
	if !p.has(key) {
		return nil
	}
	s := p.str(key)
	return &s
}

func (p payload) requiredStr(key string, fe fieldErrors) string {
	if !p.has(key) {
		fe.add(key, "This field is required.")
		return ""
	}
	s := p.str(key)
	if s == "" {
		fe.add(key, "This field may not be blank.")
	}
	return s
}

func (p payload) dec(key string, fe fieldErrors, nullable bool) *decimal.Decimal {
	if !p.has(key) {
		if !nullable {
			fe.add(key, "This field is required.")
		}
		return nil
	}
	raw := strings.Trim(string(p[key]), `"`)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		fe.add(key, "A valid number is required.")
		return nil
	}
	if d.IsNegative() {
		fe.add(key, "Стоимость не может быть отрицательной")
		return nil
	}
	return &d
}

func (p payload) quantity(fe fieldErrors) int {
	if !p.has("quantity") {
		return 1
	}
	q, err := strconv.Atoi(strings.Trim(string(p["quantity"]), `"`))
	if err != nil {
		fe.add("quantity", "A valid integer is required.")
		return 0
	}
	if q < 1 {
		fe.add("quantity", "Количество должно быть не менее 1")
	}
	return q
}

func (p payload) optInt(key string, fe fieldErrors) *int {
	if !p.has(key) {
		return nil
	}
	v, err := strconv.Atoi(strings.Trim(string(p[key]), `"`))
	if err != nil {
		fe.add(key, "A valid integer is required.")
		return nil
	}
	return &v
}

func maxLen(fe fieldErrors, key, v string, n int) {
	if len([]rune(v)) > n {
		fe.add(key, fmt.Sprintf("Ensure this field has no more than %d characters.", n))
	}
}

func (p payload) ids(key string) []int64 {
	var ids []int64
	if err := json.Unmarshal(p[key], &ids); err != nil {
		return nil
	}
	return ids
}

func pathID(r *http.Request, key string) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	return id
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func (s *Server) carFor(w http.ResponseWriter, r *http.Request) (*car, bool) {
	c, ok := s.cars[pathID(r, "carID")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Автомобиль не найден"})
	}
	return c, ok
}

func (s *Server) repairFor(w http.ResponseWriter, r *http.Request, c *car) (*repair, bool) {
	rec, ok := s.repairs[pathID(r, "repairID")]
	if !ok || rec.carID != c.id {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Запись о ремонте не найдена"})
		return nil, false
	}
	return rec, true
}

func renderCar(c *car) map[string]any {
	return map[string]any{
		"id":         c.id,
		"brand":      c.brand,
		"model":      c.model,
		"vin":        c.vin,
		"year":       c.year,
		"power":      c.power,
		"tire_front": c.tireFront,
		"tire_rear":  c.tireRear,
		"wipers":     c.wipers,
		"notes":      c.notes,
	}
}

func renderPart(p *part) map[string]any {
	return map[string]any{
		"id":           p.id,
		"name":         p.name,
		"part_code":    p.code,
		"manufacturer": p.manufacturer,
		"quantity":     p.quantity,
		"cost":         money(p.cost),
	}
}

func (s *Server) renderRepair(rec *repair) map[string]any {
	parts := make([]map[string]any, 0)
	for _, p := range s.partsOf(rec.id) {
		parts = append(parts, renderPart(p))
	}
	return map[string]any{
		"id":               rec.id,
		"date":             rec.date,
		"mileage":          rec.mileage,
		"work_description": rec.description,
		"work_cost":        money(rec.workCost),
		"parts":            parts,
	}
}

func renderStock(sp *stockPart) map[string]any {
	var cost any
	if sp.cost != nil {
		cost = money(*sp.cost)
	}
	return map[string]any{
		"id":            sp.id,
		"name":          sp.name,
		"part_code":     sp.code,
		"manufacturer":  sp.manufacturer,
		"quantity":      sp.quantity,
		"cost":          cost,
		"purchase_date": sp.purchaseDate,
		"notes":         sp.notes,
	}
}

func (s *Server) listCars(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string]any, 0, len(s.cars))
	for _, c := range s.cars {
		out = append(out, renderCar(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i]["id"].(int64) > out[j]["id"].(int64) })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCar(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, renderCar(c))
}

func (s *Server) sortedRepairs(carID int64) []*repair {
	var out []*repair
	for _, rec := range s.repairs {
		if rec.carID == carID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].date != out[j].date {
			return out[i].date > out[j].date
		}
		return out[i].id > out[j].id
	})
	return out
}

func (s *Server) listRepairs(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carFor(w, r)
	if !ok {
		return
	}
	out := make([]map[string]any, 0)
	for _, rec := range s.sortedRepairs(c.id) {
		out = append(out, s.renderRepair(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) bindRepair(p payload, rec *repair) fieldErrors {
	fe := fieldErrors{}

	date := p.requiredStr("date", fe)
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			fe.add("date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		}
	}
	var mileage int64
	if !p.has("mileage") {
		fe.add("mileage", "This field is required.")
	} else if err := json.Unmarshal(p["mileage"], &mileage); err != nil {
		fe.add("mileage", "A valid integer is required.")
	} else if mileage < 0 {
		fe.add("mileage", "Пробег не может быть отрицательным")
	}
	desc := p.requiredStr("work_description", fe)
	cost := p.dec("work_cost", fe, false)

	if len(fe) > 0 {
		return fe
	}
	rec.date, rec.mileage, rec.description, rec.workCost = date, mileage, desc, *cost
	return nil
}

// moveStock converts stock parts into parts of rec, the way repair create and update do.
func (s *Server) moveStock(rec *repair, ids []int64) {
	for _, id := range ids {
		sp, ok := s.stock[id]
		if !ok || sp.carID != rec.carID {
			continue
		}
		p := &part{
			id:           s.nextID(),
			repairID:     rec.id,
			name:         sp.name,
			code:         sp.code,
			manufacturer: sp.manufacturer,
			quantity:     sp.quantity,
		}
		if sp.cost != nil {
			p.cost = *sp.cost
		}
		s.parts[p.id] = p
		delete(s.stock, id)
	}
}

func bindCar(p payload, dst *car) fieldErrors {
	fe := fieldErrors{}
	brand := p.requiredStr("brand", fe)
	mdl := p.requiredStr("model", fe)
	vin := p.requiredStr("vin", fe)
	maxLen(fe, "brand", brand, 100)
	maxLen(fe, "model", mdl, 100)
	maxLen(fe, "vin", vin, 17)
	year := p.optInt("year", fe)
	if year != nil && (*year < 1900 || *year > 2100) {
		fe.add("year", "Год выпуска должен быть между 1900 и 2100")
	}
	power := p.optInt("power", fe)
	if power != nil && *power < 0 {
		fe.add("power", "Мощность не может быть отрицательной")
	}
	if len(fe) > 0 {
		return fe
	}
	dst.brand, dst.model, dst.vin, dst.year, dst.power = brand, mdl, vin, year, power
	dst.tireFront, dst.tireRear = p.optStr("tire_front"), p.optStr("tire_rear")
	dst.wipers, dst.notes = p.optStr("wipers"), p.optStr("notes")
	return nil
}

func (s *Server) createCar(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := decodePayload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error"})
		return
	}

	c := &car{}
	if fe := bindCar(p, c); fe != nil {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	c.id = s.nextID()
	s.cars[c.id] = c

	writeJSON(w, http.StatusCreated, renderCar(c))
}

func (s *Server) updateCar(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carFor(w, r)
	if !ok {
		return
	}
	p, err := decodePayload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error"})
		return
	}

	next := *c
	if fe := bindCar(p, &next); fe != nil {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	*c = next

	writeJSON(w, http.StatusOK, renderCar(c))
}

// deleteCar cascades to the car's repairs, their parts and its stock.
func (s *Server) deleteCar(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carFor(w, r)
	if !ok {
		return
	}
	for id, rec := range s.repairs {
		if rec.carID != c.id {
			continue
		}
		for _, p := range s.partsOf(id) {
			delete(s.parts, p.id)
		}
		delete(s.repairs, id)
	}
	for id, sp := range s.stock {
		if sp.carID == c.id {
			delete(s.stock, id)
		}
	}
	delete(s.cars, c.id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createRepair(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carFor(w, r)
	if !ok {
		return
	}
	p, err := decodePayload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error"})
		return
	}

	rec := &repair{carID: c.id}
	if fe := s.bindRepair(p, rec); fe != nil {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	rec.id = s.nextID()
	s.repairs[rec.id] = rec
	s.moveStock(rec, p.ids("stock_part_ids"))

	writeJSON(w, http.StatusCreated, s.renderRepair(rec))
}

func (s *Server) updateRepair(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carFor(w, r)
	if !ok {
		return
	}
	rec, ok := s.repairFor(w, r, c)
	if !ok {
		return
	}
	p, err := decodePayload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error"})
		return
	}

	next := *rec
	if fe := s.bindRepair(p, &next); fe != nil {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	*rec = next
	s.moveStock(rec, p.ids("stock_part_ids"))

	writeJSON(w, http.StatusOK, s.renderRepair(rec))
}

func (s *Server) deleteRepair(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carFor(w, r)
	if !ok {
		return
	}
	rec, ok := s.repairFor(w, r, c)
	if !ok {
		return
	}
	for _, p := range s.partsOf(rec.id) {
		delete(s.parts, p.id)
	}
	delete(s.repairs, rec.id)
	w.WriteHeader(http.StatusNoContent)
}

func bindPart(p payload, dst *part) fieldErrors {
	fe := fieldErrors{}
	name := p.requiredStr("name", fe)
	code := p.requiredStr("part_code", fe)
	manufacturer := p.requiredStr("manufacturer", fe)
	quantity := p.quantity(fe)
	cost := p.dec("cost", fe, false)
	if len(fe) > 0 {
		return fe
	}
	dst.name, dst.code, dst.manufacturer, dst.quantity, dst.cost = name, code, manufacturer, quantity, *cost
	return nil
}

func (s *Server) createPart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carFor(w, r)
	if !ok {
		return
	}
	rec, ok := s.repairFor(w, r, c)
	if !ok {
		return
	}
	p, err := decodePayload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error"})
		return
	}

	np := &part{repairID: rec.id}
	if fe := bindPart(p, np); fe != nil {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	np.id = s.nextID()
	s.parts[np.id] = np
	writeJSON(w, http.StatusCreated, renderPart(np))
}

func (s *Server) partFor(w http.ResponseWriter, r *http.Request) (*part, bool) {
	c, ok := s.carFor(w, r)
	if !ok {
		return nil, false
	}
	rec, ok := s.repairFor(w, r, c)
	if !ok {
		return nil, false
	}
	p, ok := s.parts[pathID(r, "partID")]
	if !ok || p.repairID != rec.id {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Не найдено"})
		return nil, false
	}
	return p, true
}

func (s *Server) updatePart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.partFor(w, r)
	if !ok {
		return
	}
	p, err := decodePayload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error"})
		return
	}

	next := *existing
	if fe := bindPart(p, &next); fe != nil {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	*existing = next
	writeJSON(w, http.StatusOK, renderPart(existing))
}

func (s *Server) deletePart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.partFor(w, r)
	if !ok {
		return
	}
	delete(s.parts, p.id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listStock(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carFor(w, r)
	if !ok {
		return
	}
	var items []*stockPart
	for _, sp := range s.stock {
		if sp.carID == c.id {
			items = append(items, sp)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].id > items[j].id })

	out := make([]map[string]any, 0, len(items))
	for _, sp := range items {
		out = append(out, renderStock(sp))
	}
	writeJSON(w, http.StatusOK, out)
}

func bindStock(p payload, dst *stockPart) fieldErrors {
	fe := fieldErrors{}
	name := p.requiredStr("name", fe)
	code := p.requiredStr("part_code", fe)
	manufacturer := p.requiredStr("manufacturer", fe)
	quantity := p.quantity(fe)
	cost := p.dec("cost", fe, true)
	if len(fe) > 0 {
		return fe
	}
	dst.name, dst.code, dst.manufacturer, dst.quantity, dst.cost = name, code, manufacturer, quantity, cost
	dst.purchaseDate, dst.notes = p.optStr("purchase_date"), p.optStr("notes")
	return nil
}

func (s *Server) createStock(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carFor(w, r)
	if !ok {
		return
	}
	p, err := decodePayload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error"})
		return
	}

	sp := &stockPart{carID: c.id}
	if fe := bindStock(p, sp); fe != nil {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	sp.id = s.nextID()
	s.stock[sp.id] = sp
	writeJSON(w, http.StatusCreated, renderStock(sp))
}

func (s *Server) stockFor(w http.ResponseWriter, r *http.Request) (*stockPart, bool) {
	c, ok := s.carFor(w, r)
	if !ok {
		return nil, false
	}
	sp, ok := s.stock[pathID(r, "stockID")]
	if !ok || sp.carID != c.id {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Запчасть на складе не найдена"})
		return nil, false
	}
	return sp, true
}

func (s *Server) updateStock(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.stockFor(w, r)
	if !ok {
		return
	}
	p, err := decodePayload(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error"})
		return
	}

	next := *sp
	if fe := bindStock(p, &next); fe != nil {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	*sp = next
	writeJSON(w, http.StatusOK, renderStock(sp))
}

func (s *Server) deleteStock(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.stockFor(w, r)
	if !ok {
		return
	}
	delete(s.stock, sp.id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carFor(w, r)
	if !ok {
		return
	}
	from, to := r.URL.Query().Get("date_from"), r.URL.Query().Get("date_to")
	if from == "" || to == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Необходимо указать даты начала и окончания периода",
		})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	row := 1
	repairs := s.sortedRepairs(c.id)
	sort.Slice(repairs, func(i, j int) bool { return repairs[i].date < repairs[j].date })
	for _, rec := range repairs {
		if rec.date < from || rec.date > to {
			continue
		}
		_ = f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &[]any{rec.date, rec.mileage, rec.description})
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	name := fmt.Sprintf("report_%s_%s_%s_%s.xlsx", c.brand, c.model,
		strings.ReplaceAll(from, "-", ""), strings.ReplaceAll(to, "-", ""))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	_, _ = w.Write(buf.Bytes())
}
