package domain

import "github.com/shopspring/decimal"

// Stats is the dashboard summary of one business.
type Stats struct {
	Clients             ClientCounts    `db:"clients" json:"clients"`
	VisitsToday         int             `db:"visits_today" json:"visits_today"`
	VisitsNext7Days     int             `db:"visits_next_7_days" json:"visits_next_7_days"`
	UninvoicedVisits    int             `db:"uninvoiced_visits" json:"uninvoiced_visits"`
	OutstandingInvoices int             `db:"outstanding_invoices" json:"outstanding_invoices"`
	OutstandingTotal    decimal.Decimal `db:"outstanding_total" json:"outstanding_total"`
	PaidThisMonth       decimal.Decimal `db:"paid_this_month" json:"paid_this_month"`
}
