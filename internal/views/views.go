// Package views renders page content as HTML strings. The markup is
// deliberately minimal: these are the narrow rendering collaborators of the
// router, not a styling layer.
package views

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/billed-app/billed/internal/models"
)

var funcs = template.FuncMap{
	"money": func(amount float64) string {
		return strconv.FormatFloat(amount, 'f', -1, 64) + " €"
	},
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

func render(tpl *template.Template, data any) string {
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		// Templates are static and data is plain structs; an execute error
		// is a programming error.
		panic(err)
	}
	return sb.String()
}

var loginTpl = mustParse("login", `<div class="page" id="login-page">
  <h1>Billed</h1>
  <form data-testid="form-employee">
    <h2>Employé</h2>
    <input data-testid="employee-email-input" type="email" />
    <input data-testid="employee-password-input" type="password" />
    <button data-testid="employee-login-button" type="submit">Se connecter</button>
  </form>
  <form data-testid="form-admin">
    <h2>Administration</h2>
    <input data-testid="admin-email-input" type="email" />
    <input data-testid="admin-password-input" type="password" />
    <button data-testid="admin-login-button" type="submit">Se connecter</button>
  </form>
</div>`)

// Login renders the login page with its employee and admin forms.
func Login() string {
	return render(loginTpl, nil)
}

var billsTpl = mustParse("bills", `<div class="page" id="bills-page">
  <h1>Mes notes de frais</h1>
  <button data-testid="btn-new-bill" type="button">Nouvelle note de frais</button>
  <table data-testid="tbody">
    <tbody>{{range .}}
      <tr>
        <td>{{.Type}}</td>
        <td data-testid="bill-name">{{.Name}}</td>
        <td data-testid="bill-date">{{.Date}}</td>
        <td>{{money .Amount}}</td>
        <td data-testid="bill-status">{{.Status}}</td>
        <td><div data-testid="icon-eye" data-bill-url="{{.FileURL}}"></div></td>
      </tr>{{end}}
    </tbody>
  </table>
  <div id="modaleFile"><div class="modal-body"></div></div>
</div>`)

// Bills renders the employee bill list. Bills are shown in the order given;
// an empty list renders an empty table, not an error.
func Bills(bills []models.Bill) string {
	return render(billsTpl, bills)
}

var newBillTpl = mustParse("newbill", `<div class="page" id="newbill-page">
  <h1>Envoyer une note de frais</h1>
  <form data-testid="form-new-bill">
    <select data-testid="expense-type">{{range .}}
      <option>{{.}}</option>{{end}}
    </select>
    <input data-testid="expense-name" type="text" />
    <input data-testid="datepicker" type="date" />
    <input data-testid="amount" type="number" />
    <input data-testid="vat" type="number" />
    <input data-testid="pct" type="number" />
    <textarea data-testid="commentary"></textarea>
    <input data-testid="file" type="file" />
    <button id="btn-send-bill" type="submit">Envoyer</button>
  </form>
</div>`)

// NewBill renders the new-bill form.
func NewBill() string {
	return render(newBillTpl, models.ExpenseTypes)
}

// DashboardGroup is one status bucket of the admin dashboard.
type DashboardGroup struct {
	Label string
	Count int
	Total float64
	Bills []models.Bill
}

var dashboardTpl = mustParse("dashboard", `<div class="page" id="dashboard-page">
  <h1>Validations</h1>{{range .}}
  <section data-status="{{.Label}}">
    <h2>{{.Label}} ({{.Count}}) — {{money .Total}}</h2>
    <ul>{{range .Bills}}
      <li data-bill-id="{{.ID}}">{{.Name}} — {{.Email}} — {{money .Amount}}</li>{{end}}
    </ul>
  </section>{{end}}
</div>`)

// Dashboard renders the admin view: bills grouped by status with count and
// amount totals.
func Dashboard(groups []DashboardGroup) string {
	return render(dashboardTpl, groups)
}

var errorTpl = mustParse("error", `<div class="page" id="error-page">
  <h1>Erreur</h1>
  <p data-testid="error-message">{{.}}</p>
</div>`)

// Error renders the page-level error banner with the failure message
// verbatim.
func Error(message string) string {
	return render(errorTpl, message)
}

// Loading renders the transient page shown while a fetch is in flight.
func Loading() string {
	return `<div class="page" id="loading-page"><p>Chargement...</p></div>`
}
