// internal/inquiry/handler.go
package inquiry

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/AlHayahDevelopments/property-inquiry/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	SessionName = "inquiry"

	sessionSubmitted = "submitted"
	sessionRecord    = "record"
)

// Handler expõe o formulário. Cada sessão do navegador tem seu próprio
// Controller, reconstruído a partir do cookie a cada requisição.
type Handler struct {
	Repository  Repository
	Notifier    Notifier
	Store       sessions.Store
	Logger      *zap.Logger
	Brand       string
	ContactLine string

	now  func() time.Time
	tmpl *template.Template
}

func NewHandler(repo Repository, notifier Notifier, store sessions.Store, logger *zap.Logger, brand, contactLine string) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Repository:  repo,
		Notifier:    notifier,
		Store:       store,
		Logger:      logger,
		Brand:       brand,
		ContactLine: contactLine,
		now:         time.Now,
		tmpl:        template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// WithClock troca o relógio (testes).
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/", h.Page).Methods("GET")
	r.HandleFunc("/submit", h.Submit).Methods("POST")
	r.HandleFunc("/reset", h.Reset).Methods("POST")
}

type pageData struct {
	Brand       string
	ContactLine string
	Year        int
	Today       string

	Submitted bool
	Message   string
	Error     string
	Fields    []Field
	Draft     Draft

	UnitTypes      []UnitType
	FloorTypes     []FloorType
	FinishingTypes []FinishingType
	Locations      []Location
	PaymentMethods []PaymentMethod
}

func (h *Handler) requestLogger(r *http.Request) *zap.Logger {
	return h.Logger.With(zap.String("request_id", middleware.RequestIDFrom(r.Context())))
}

// controllerFor monta o Controller da sessão atual.
func (h *Handler) controllerFor(r *http.Request, session *sessions.Session) *Controller {
	log := h.requestLogger(r)
	ctrl := NewController(h.Repository, h.Notifier, log).WithClock(h.now)

	if submitted, _ := session.Values[sessionSubmitted].(bool); !submitted {
		return ctrl
	}
	raw, _ := session.Values[sessionRecord].(string)
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		log.Warn("discarding unreadable session record", zap.Error(err))
		return ctrl
	}
	ctrl.Restore(rec)
	return ctrl
}

func (h *Handler) session(r *http.Request) *sessions.Session {
	session, err := h.Store.Get(r, SessionName)
	if err != nil {
		// cookie inválido ou de outra chave: segue com sessão nova
		h.requestLogger(r).Debug("starting fresh session", zap.Error(err))
	}
	return session
}

// GET /
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	ctrl := h.controllerFor(r, session)

	data := h.basePage()
	if rec, ok := ctrl.Held(); ok {
		data.Submitted = true
		data.Message = MsgSuccess
		data.Fields = rec.Fields()
	}
	h.render(w, r, http.StatusOK, data)
}

// POST /submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return
	}

	session := h.session(r)
	ctrl := h.controllerFor(r, session)
	outcome := ctrl.Submit(r.Context(), draftFromRequest(r))

	if outcome.Err != nil {
		data := h.basePage()
		data.Error = outcome.Message
		data.Draft = draftFromRequest(r)
		h.render(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	raw, err := json.Marshal(outcome.Record)
	if err == nil {
		session.Values[sessionSubmitted] = true
		session.Values[sessionRecord] = string(raw)
		err = session.Save(r, w)
	}
	if err != nil {
		// sem sessão não há redirect possível; mostra a confirmação direto
		h.requestLogger(r).Warn("failed to save session", zap.Error(err))
		data := h.basePage()
		data.Submitted = true
		data.Message = outcome.Message
		data.Fields = outcome.Record.Fields()
		h.render(w, r, http.StatusOK, data)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// POST /reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	session := h.session(r)
	ctrl := h.controllerFor(r, session)
	ctrl.Reset()

	delete(session.Values, sessionSubmitted)
	delete(session.Values, sessionRecord)
	if err := session.Save(r, w); err != nil {
		h.requestLogger(r).Warn("failed to save session", zap.Error(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) basePage() pageData {
	now := h.now()
	return pageData{
		Brand:          h.Brand,
		ContactLine:    h.ContactLine,
		Year:           now.Year(),
		Today:          now.Format(DateLayout),
		Draft:          DefaultDraft(now),
		UnitTypes:      UnitTypes,
		FloorTypes:     FloorTypes,
		FinishingTypes: FinishingTypes,
		Locations:      Locations,
		PaymentMethods: PaymentMethods,
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "form.html", data); err != nil {
		h.requestLogger(r).Error("failed to render page", zap.Error(err))
		http.Error(w, "erro ao renderizar página", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func draftFromRequest(r *http.Request) Draft {
	return Draft{
		ReportDate:    r.PostFormValue("report_date"),
		ClientName:    r.PostFormValue("client_name"),
		ClientPhone:   r.PostFormValue("client_phone"),
		UnitType:      r.PostFormValue("unit_type"),
		FloorType:     r.PostFormValue("floor_type"),
		MinUnitArea:   r.PostFormValue("min_unit_area"),
		MaxUnitArea:   r.PostFormValue("max_unit_area"),
		Rooms:         r.PostFormValue("rooms"),
		Bathrooms:     r.PostFormValue("bathrooms"),
		FinishingType: r.PostFormValue("finishing_type"),
		Area:          r.PostFormValue("area"),
		Budget:        r.PostFormValue("budget"),
		PaymentMethod: r.PostFormValue("payment_method"),
		DeliveryDate:  r.PostFormValue("delivery_date"),
	}
}
