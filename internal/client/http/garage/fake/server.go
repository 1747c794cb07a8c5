// Package fake is an in-memory garage backend for tests. It mimics the REST API closely
// enough for the client: DRF style decimal strings, session and CSRF cookies, Django error
// bodies and server side stock conversion.
package fake

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	csrfCookie    = "csrftoken"
	sessionCookie = "sessionid"
)

type RecordedRequest struct {
	Method    string
	Path      string
	Query     string
	CSRF      string
	RequestID string
}

type fault struct {
	method string
	path   string
	status int
	body   string
}

type car struct {
	id        int64
	brand     string
	model     string
	vin       string
	year      *int
	power     *int
	tireFront *string
	tireRear  *string
	wipers    *string
	notes     *string
}

type part struct {
	id           int64
	repairID     int64
	name         string
	code         string
	manufacturer string
	quantity     int
	cost         decimal.Decimal
}

type repair struct {
	id          int64
	carID       int64
	date        string
	mileage     int64
	description string
	workCost    decimal.Decimal
}

type stockPart struct {
	id           int64
	carID        int64
	name         string
	code         string
	manufacturer string
	quantity     int
	cost         *decimal.Decimal
	purchaseDate *string
	notes        *string
}

type Server struct {
	mu          sync.Mutex
	seq         int64
	requireAuth bool
	users       map[string]string
	sessions    map[string]string
	cars        map[int64]*car
	repairs     map[int64]*repair
	parts       map[int64]*part
	stock       map[int64]*stockPart
	faults      []fault
	requests    []RecordedRequest
	router      chi.Router
}

func New() *Server {
	s := &Server{
		users:    make(map[string]string),
		sessions: make(map[string]string),
		cars:     make(map[int64]*car),
		repairs:  make(map[int64]*repair),
		parts:    make(map[int64]*part),
		stock:    make(map[int64]*stockPart),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Get("/login/", s.loginPage)
	r.Post("/login/", s.loginSubmit)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api/cars", func(r chi.Router) {
		r.Use(s.auth)
		r.Use(s.csrf)
		r.Use(s.inject)

		r.Get("/", s.listCars)
		r.Post("/", s.createCar)
		r.Route("/{carID}", func(r chi.Router) {
			r.Get("/", s.getCar)
			r.Put("/", s.updateCar)
			r.Delete("/", s.deleteCar)
			r.Get("/repairs/", s.listRepairs)
			r.Post("/repairs/", s.createRepair)
			r.Put("/repairs/{repairID}/", s.updateRepair)
			r.Delete("/repairs/{repairID}/", s.deleteRepair)
			r.Post("/repairs/{repairID}/parts/", s.createPart)
			r.Put("/repairs/{repairID}/parts/{partID}/", s.updatePart)
			r.Delete("/repairs/{repairID}/parts/{partID}/", s.deletePart)
			r.Get("/stock/", s.listStock)
			r.Post("/stock/", s.createStock)
			r.Put("/stock/{stockID}/", s.updateStock)
			r.Delete("/stock/{stockID}/", s.deleteStock)
			r.Get("/export-report/", s.exportReport)
		})
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// RequireAuth makes every API call without a valid session answer 401.
func (s *Server) RequireAuth(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requireAuth = on
}

func (s *Server) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
}

// FailOnce makes the next request matching method and path answer with status and body.
// body is sent as application/json when it starts with '{' or '['.
func (s *Server) FailOnce(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{method: method, path: path, status: status, body: body})
}

func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

func (s *Server) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Server) AddCar(brand, model, vin string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &car{id: s.nextID(), brand: brand, model: model, vin: vin}
	s.cars[c.id] = c
	return c.id
}

func (s *Server) CarCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cars)
}

func (s *Server) AddRepair(carID int64, date string, mileage int64, description, workCost string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &repair{
		id:          s.nextID(),
		carID:       carID,
		date:        date,
		mileage:     mileage,
		description: description,
		workCost:    decimal.RequireFromString(workCost),
	}
	s.repairs[r.id] = r
	return r.id
}

func (s *Server) AddPart(repairID int64, name, code string, quantity int, cost string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &part{
		id:       s.nextID(),
		repairID: repairID,
		name:     name,
		code:     code,
		quantity: quantity,
		cost:     decimal.RequireFromString(cost),
	}
	s.parts[p.id] = p
	return p.id
}

// AddStockPart stores a stock part made by "OEM"; an empty cost is stored as null.
func (s *Server) AddStockPart(carID int64, name, code string, quantity int, cost string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp := &stockPart{id: s.nextID(), carID: carID, name: name, code: code, manufacturer: "OEM", quantity: quantity}
	if cost != "" {
		d := decimal.RequireFromString(cost)
		sp.cost = &d
	}
	s.stock[sp.id] = sp
	return sp.id
}

func (s *Server) StockCount(carID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sp := range s.stock {
		if sp.carID == carID {
			n++
		}
	}
	return n
}

func (s *Server) PartCount(repairID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.partsOf(repairID))
}

func (s *Server) partsOf(repairID int64) []*part {
	var out []*part
	for _, p := range s.parts {
		if p.repairID == repairID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id > out[j].id })
	return out
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			CSRF:      r.Header.Get("X-CSRFToken"),
			RequestID: r.Header.Get("X-Request-ID"),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		required := s.requireAuth
		var ok bool
		if ck, err := r.Cookie(sessionCookie); err == nil {
			_, ok = s.sessions[ck.Value]
		}
		s.mu.Unlock()

		if required && !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"detail": "Authentication credentials were not provided.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) csrf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			ck, err := r.Cookie(csrfCookie)
			if err != nil || ck.Value == "" || ck.Value != r.Header.Get("X-CSRFToken") {
				writeJSON(w, http.StatusForbidden, map[string]string{
					"detail": "CSRF Failed: CSRF token missing or incorrect.",
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		var hit *fault
		for i, f := range s.faults {
			if f.method == r.Method && f.path == r.URL.Path {
				hit = &f
				s.faults = append(s.faults[:i], s.faults[i+1:]...)
				break
			}
		}
		s.mu.Unlock()

		if hit == nil {
			next.ServeHTTP(w, r)
			return
		}

		body := strings.TrimSpace(hit.body)
		if strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[") {
			w.Header().Set("Content-Type", "application/json")
		} else {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
		}
		w.WriteHeader(hit.status)
		_, _ = w.Write([]byte(hit.body))
	})
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(csrfCookie); err != nil {
		http.SetCookie(w, &http.Cookie{Name: csrfCookie, Value: uuid.NewString(), Path: "/"})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<form method=post></form>"))
}

func (s *Server) loginSubmit(w http.ResponseWriter, r *http.Request) {
	ck, err := r.Cookie(csrfCookie)
	if err != nil || r.PostFormValue("csrfmiddlewaretoken") != ck.Value {
		http.Error(w, "CSRF verification failed", http.StatusForbidden)
		return
	}

	s.mu.Lock()
	want, ok := s.users[r.PostFormValue("username")]
	ok = ok && want == r.PostFormValue("password")
	var session string
	if ok {
		session = uuid.NewString()
		s.sessions[session] = r.PostFormValue("username")
	}
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("invalid credentials"))
		return
	}

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: session, Path: "/", HttpOnly: true})
	http.Redirect(w, r, "/", http.StatusFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
