package entities

import "time"

// Locale carries every user-facing string that depends on language.
type Locale struct {
	Code string
	// Weekdays is indexed by ISO weekday with Monday at 0.
	Weekdays     [7]string
	LevelLabels  map[SatisfactionLevel]string
	Confirmation string
	Report       ReportStrings
}

// ReportStrings are the column and section captions used by exports.
type ReportStrings struct {
	Title         string
	IDHeader      string
	LevelHeader   string
	DateHeader    string
	TimeHeader    string
	WeekdayHeader string
	TotalRecords  string
	GeneratedAt   string
	SheetName     string
}

var (
	// LocaleEN is the default locale.
	LocaleEN = Locale{
		Code:     "en",
		Weekdays: [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		LevelLabels: map[SatisfactionLevel]string{
			SatisfactionVerySatisfied: "Very Satisfied",
			SatisfactionSatisfied:     "Satisfied",
			SatisfactionDissatisfied:  "Dissatisfied",
		},
		Confirmation: "Thank you for your feedback!",
		Report: ReportStrings{
			Title:         "SATISFACTION FEEDBACK REPORT",
			IDHeader:      "ID",
			LevelHeader:   "Satisfaction Level",
			DateHeader:    "Date",
			TimeHeader:    "Time",
			WeekdayHeader: "Weekday",
			TotalRecords:  "Total records",
			GeneratedAt:   "Generated at",
			SheetName:     "Feedback",
		},
	}

	// LocalePT is the Portuguese locale.
	LocalePT = Locale{
		Code:     "pt",
		Weekdays: [7]string{"Segunda-feira", "Terça-feira", "Quarta-feira", "Quinta-feira", "Sexta-feira", "Sábado", "Domingo"},
		LevelLabels: map[SatisfactionLevel]string{
			SatisfactionVerySatisfied: "Muito Satisfeito",
			SatisfactionSatisfied:     "Satisfeito",
			SatisfactionDissatisfied:  "Insatisfeito",
		},
		Confirmation: "Obrigado pelo seu feedback!",
		Report: ReportStrings{
			Title:         "RELATÓRIO DE FEEDBACK DE SATISFAÇÃO",
			IDHeader:      "ID",
			LevelHeader:   "Grau de Satisfação",
			DateHeader:    "Data",
			TimeHeader:    "Hora",
			WeekdayHeader: "Dia da Semana",
			TotalRecords:  "Total de registros",
			GeneratedAt:   "Gerado em",
			SheetName:     "Feedback",
		},
	}
)

// LocaleFor returns the locale for a language code, falling back to English.
func LocaleFor(code string) Locale {
	if code == LocalePT.Code {
		return LocalePT
	}
	return LocaleEN
}

// WeekdayName returns the localized weekday for t.
func (l Locale) WeekdayName(t time.Time) string {
	// time.Weekday starts at Sunday=0
	return l.Weekdays[(int(t.Weekday())+6)%7]
}

// Label renders a level code for humans. Unknown codes pass through verbatim.
func (l Locale) Label(level SatisfactionLevel) string {
	if label, ok := l.LevelLabels[level]; ok {
		return label
	}
	return string(level)
}
