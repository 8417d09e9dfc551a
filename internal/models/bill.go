package models

// Bill statuses as recorded by the document store. The display labels for
// these live in the format package; unrecognized statuses pass through to the
// UI unchanged.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRefused  = "refused"
)

// ExpenseTypes is the fixed set of expense categories the new-bill form
// offers. The store records the category verbatim.
var ExpenseTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}

// Bill is one expense-report record.
//
// Date is an ISO-8601 string on the wire. It is kept untouched in the record;
// list rendering sorts on the raw value and only then swaps in a display
// string. FileURL and FileName stay empty until the receipt upload has
// completed: a bill only becomes visible in the employee list once both the
// upload and the finalize phase have succeeded.
type Bill struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	VAT        string  `json:"vat"`
	Pct        string  `json:"pct"`
	Commentary string  `json:"commentary"`
	FileURL    string  `json:"fileUrl"`
	FileName   string  `json:"fileName"`
	Status     string  `json:"status"`
}
