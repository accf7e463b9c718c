package models

// SessionKind says whether a charge went to 100% or stopped short.
// It is derived from the fraction, never set independently.
type SessionKind string

const (
	KindFull    SessionKind = "full"
	KindPartial SessionKind = "partial"
)

// KindForFraction derives the session kind: a fraction of 1.0 or more
// counts as a full charge.
func KindForFraction(fraction float64) SessionKind {
	if fraction >= 1 {
		return KindFull
	}
	return KindPartial
}

// SessionSource records where a session came from. Display-only; it never
// affects any computation after creation.
type SessionSource string

const (
	SourceManual   SessionSource = "manual"
	SourceImported SessionSource = "imported"
)

// Session is a single charge event. Immutable once created; deleted only as
// a whole. Date is a plain calendar date (YYYY-MM-DD), no time component.
type Session struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Kind         SessionKind   `json:"kind"`
	Fraction     float64       `json:"fraction"`
	EnergyKWh    float64       `json:"energy_kwh"`
	TariffPerKWh float64       `json:"tariff_per_kwh"`
	Amount       float64       `json:"amount"`
	Source       SessionSource `json:"source"`
}

// Settings holds the user-configured tariff and reference battery capacity.
// Both numeric fields must be strictly positive. Changes apply to future
// manual sessions only; past sessions keep the tariff snapshot they were
// created with.
type Settings struct {
	TariffPerKWh         float64 `json:"tariff_per_kwh"`
	ReferenceCapacityKWh float64 `json:"reference_capacity_kwh"`
	Currency             string  `json:"currency"`
}

const (
	DefaultTariffPerKWh         = 0.28
	DefaultReferenceCapacityKWh = 18.0
	DefaultCurrency             = "EUR"
)

func DefaultSettings() Settings {
	return Settings{
		TariffPerKWh:         DefaultTariffPerKWh,
		ReferenceCapacityKWh: DefaultReferenceCapacityKWh,
		Currency:             DefaultCurrency,
	}
}

// QuarterSummary is a transient view over the session collection, recomputed
// on every read and never persisted.
type QuarterSummary struct {
	Year           int     `json:"year"`
	Quarter        int     `json:"quarter"`
	Label          string  `json:"label"`
	SessionCount   int     `json:"session_count"`
	TotalEnergyKWh float64 `json:"total_energy_kwh"`
	TotalAmount    float64 `json:"total_amount"`
	Current        bool    `json:"current"`
}
