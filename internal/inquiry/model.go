// internal/inquiry/model.go
package inquiry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/AlHayahDevelopments/property-inquiry/internal/utils"
)

const DateLayout = "2006-01-02"

// Option é um valor de lista fechada (selectbox do formulário).
type Option string

type UnitType = Option
type FloorType = Option
type FinishingType = Option
type Location = Option
type PaymentMethod = Option

var (
	UnitTypes = []UnitType{
		"Studio", "Apartment", "Duplex", "Penthouse",
		"Town House", "Twin House", "Villa", "Chalet",
		"Commercial Space", "Administrative Space",
	}

	FloorTypes = []FloorType{
		"Ground Floor", "Ground Floor with Garden",
		"Typical Floor", "Last Floor",
		"Last Floor with Roof",
	}

	FinishingTypes = []FinishingType{"Fully Finished", "Semi-Finished", "Core & Shell"}

	Locations = []Location{
		"Sheikh Zayed", "October", "October Gardens",
		"Green Belt", "Green Revolution", "New Cairo",
		"6th Settlement", "Future City", "El Shorouk",
		"New Administrative Capital", "Ain Sokhna",
		"Red Sea", "North Coast",
	}

	PaymentMethods = []PaymentMethod{"Cash", "Installments"}
)

// pickOption devolve o valor se ele pertence à lista, senão o primeiro item.
func pickOption(value string, options []Option) Option {
	v := strings.TrimSpace(value)
	for _, o := range options {
		if string(o) == v {
			return o
		}
	}
	return options[0]
}

// Labels dos campos, na ordem em que aparecem no registro, no email e na tela.
const (
	LabelReportDate    = "Report Date"
	LabelClientName    = "Client Name"
	LabelClientPhone   = "Client Phone"
	LabelUnitType      = "Unit Type"
	LabelFloorType     = "Floor Type"
	LabelUnitArea      = "Unit Area"
	LabelRooms         = "Number of Rooms"
	LabelBathrooms     = "Number of Bathrooms"
	LabelFinishingType = "Finishing Type"
	LabelArea          = "Area"
	LabelBudget        = "Budget"
	LabelPaymentMethod = "Payment Method"
	LabelDeliveryDate  = "Delivery Date"
)

// Submission é uma consulta de imóvel aceita.
type Submission struct {
	ReportDate    time.Time
	ClientName    string
	ClientPhone   string
	UnitType      UnitType
	FloorType     FloorType
	MinUnitArea   int
	MaxUnitArea   int
	Rooms         int
	Bathrooms     int
	FinishingType FinishingType
	Area          Location
	Budget        int64
	PaymentMethod PaymentMethod
	DeliveryDate  time.Time
}

// Draft guarda os valores do formulário exatamente como digitados.
type Draft struct {
	ReportDate    string `json:"report_date"`
	ClientName    string `json:"client_name"`
	ClientPhone   string `json:"client_phone"`
	UnitType      string `json:"unit_type"`
	FloorType     string `json:"floor_type"`
	MinUnitArea   string `json:"min_unit_area"`
	MaxUnitArea   string `json:"max_unit_area"`
	Rooms         string `json:"rooms"`
	Bathrooms     string `json:"bathrooms"`
	FinishingType string `json:"finishing_type"`
	Area          string `json:"area"`
	Budget        string `json:"budget"`
	PaymentMethod string `json:"payment_method"`
	DeliveryDate  string `json:"delivery_date"`
}

// Submission converte o rascunho aplicando os defaults do formulário.
// Números inválidos ou negativos viram 0, enums desconhecidos viram a primeira
// opção, datas vazias viram hoje e a entrega nunca fica antes de hoje.
func (d Draft) Submission(today time.Time) Submission {
	today = truncateDay(today)

	delivery := parseDate(d.DeliveryDate, today)
	if delivery.Before(today) {
		delivery = today
	}

	return Submission{
		ReportDate:    parseDate(d.ReportDate, today),
		ClientName:    strings.TrimSpace(d.ClientName),
		ClientPhone:   strings.TrimSpace(d.ClientPhone),
		UnitType:      pickOption(d.UnitType, UnitTypes),
		FloorType:     pickOption(d.FloorType, FloorTypes),
		MinUnitArea:   parseCount(d.MinUnitArea),
		MaxUnitArea:   parseCount(d.MaxUnitArea),
		Rooms:         parseCount(d.Rooms),
		Bathrooms:     parseCount(d.Bathrooms),
		FinishingType: pickOption(d.FinishingType, FinishingTypes),
		Area:          pickOption(d.Area, Locations),
		Budget:        parseNonNegative(d.Budget),
		PaymentMethod: pickOption(d.PaymentMethod, PaymentMethods),
		DeliveryDate:  delivery,
	}
}

// DefaultDraft é o formulário limpo (estado inicial e depois do reset).
func DefaultDraft(today time.Time) Draft {
	day := today.Format(DateLayout)
	return Draft{
		ReportDate:    day,
		UnitType:      string(UnitTypes[0]),
		FloorType:     string(FloorTypes[0]),
		MinUnitArea:   "0",
		MaxUnitArea:   "0",
		Rooms:         "0",
		Bathrooms:     "0",
		FinishingType: string(FinishingTypes[0]),
		Area:          string(Locations[0]),
		Budget:        "0",
		PaymentMethod: string(PaymentMethods[0]),
		DeliveryDate:  day,
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func parseDate(s string, def time.Time) time.Time {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), def.Location())
	if err != nil {
		return def
	}
	return t
}

func parseNonNegative(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.ParseInt(s, 10, 64)
	switch {
	case err == nil:
		return max(n, 0)
	case errors.Is(err, strconv.ErrRange):
		if strings.HasPrefix(s, "-") {
			return 0
		}
		return math.MaxInt64
	}

	// "12.7", "1e3": trunca. NaN e Inf viram 0; finito grande demais satura.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	switch {
	case math.IsNaN(f), math.IsInf(f, 0) && err == nil, f <= 0:
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	}
	return int64(f)
}

// parseCount é parseNonNegative limitado a int.
func parseCount(s string) int {
	return int(min(parseNonNegative(s), math.MaxInt))
}

// Record é a representação plana (label -> texto) de uma Submission.
// A ordem dos campos define a ordem das chaves no JSON.
type Record struct {
	ReportDate    string `json:"Report Date"`
	ClientName    string `json:"Client Name"`
	ClientPhone   string `json:"Client Phone"`
	UnitType      string `json:"Unit Type"`
	FloorType     string `json:"Floor Type"`
	UnitArea      string `json:"Unit Area"`
	Rooms         string `json:"Number of Rooms"`
	Bathrooms     string `json:"Number of Bathrooms"`
	FinishingType string `json:"Finishing Type"`
	Area          string `json:"Area"`
	Budget        string `json:"Budget"`
	PaymentMethod string `json:"Payment Method"`
	DeliveryDate  string `json:"Delivery Date"`
}

// Field é um par label/valor já formatado.
type Field struct {
	Label string
	Value string
}

func FormatArea(min, max int) string {
	return fmt.Sprintf("%d - %d m²", min, max)
}

func FormatBudget(budget int64) string {
	return utils.FormatThousands(budget) + " EGP"
}

// Record monta a versão textual usada no arquivo, no email e na confirmação.
func (s Submission) Record() Record {
	return Record{
		ReportDate:    s.ReportDate.Format(DateLayout),
		ClientName:    s.ClientName,
		ClientPhone:   s.ClientPhone,
		UnitType:      string(s.UnitType),
		FloorType:     string(s.FloorType),
		UnitArea:      FormatArea(s.MinUnitArea, s.MaxUnitArea),
		Rooms:         strconv.Itoa(s.Rooms),
		Bathrooms:     strconv.Itoa(s.Bathrooms),
		FinishingType: string(s.FinishingType),
		Area:          string(s.Area),
		Budget:        FormatBudget(s.Budget),
		PaymentMethod: string(s.PaymentMethod),
		DeliveryDate:  s.DeliveryDate.Format(DateLayout),
	}
}

// Fields lista os 13 campos na ordem fixa.
func (r Record) Fields() []Field {
	return []Field{
		{LabelReportDate, r.ReportDate},
		{LabelClientName, r.ClientName},
		{LabelClientPhone, r.ClientPhone},
		{LabelUnitType, r.UnitType},
		{LabelFloorType, r.FloorType},
		{LabelUnitArea, r.UnitArea},
		{LabelRooms, r.Rooms},
		{LabelBathrooms, r.Bathrooms},
		{LabelFinishingType, r.FinishingType},
		{LabelArea, r.Area},
		{LabelBudget, r.Budget},
		{LabelPaymentMethod, r.PaymentMethod},
		{LabelDeliveryDate, r.DeliveryDate},
	}
}
