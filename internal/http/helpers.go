package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"networth/internal/core"
	"networth/internal/forms"
	applog "networth/internal/log"
)

var (
	emptyAddForm    = forms.AddForm{}
	emptyDeleteForm = forms.DeleteForm{}
)

type pageView struct {
	Title      string
	Summary    summaryView
	AddForm    addFormView
	History    historyView
	DeleteForm forms.DeleteForm
}

type summaryCard struct {
	Label  string
	Amount string
	Class  string
}

type summaryView struct {
	Error string
	Cards []summaryCard
}

type historyView struct {
	Error   string
	Columns []string
	Rows    []core.HistoryRow
}

type addFormView struct {
	forms.AddForm
	Categories []string
}

func newSummaryView(deals []core.Deal, listErr error) summaryView {
	if listErr != nil {
		return summaryView{Error: "Totals are unavailable right now."}
	}
	sum := core.Summarize(deals)
	netClass := "text-primary"
	if sum.NetNegative() {
		netClass = "text-warning"
	}
	return summaryView{
		Cards: []summaryCard{
			{Label: "Assets", Amount: core.FormatAmount(sum.Assets), Class: "text-success"},
			{Label: "Liabilities", Amount: core.FormatAmount(sum.Liabilities), Class: "text-danger"},
			{Label: "Net Worth", Amount: core.FormatAmount(sum.Net), Class: netClass},
		},
	}
}

func newHistoryView(deals []core.Deal, listErr error) historyView {
	v := historyView{Columns: core.HistoryColumns}
	if listErr != nil {
		v.Error = "History is unavailable right now."
		return v
	}
	v.Rows = core.History(deals)
	return v
}

func newAddFormView(f forms.AddForm) addFormView {
	return addFormView{AddForm: f, Categories: core.Categories}
}

// render executes a named template into a buffer so a failed render never
// leaves a half-written response.
func (s *Server) render(name string, data any) ([]byte, error) {
	if s.templates == nil {
		return nil, errors.New("templates not loaded")
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (s *Server) writePartial(w http.ResponseWriter, r *http.Request, name string, data any) {
	body, err := s.render(name, data)
	if err != nil {
		s.logRenderError(r.Context(), name, err)
		InternalServerError("Error rendering " + name).Write(w)
		return
	}
	NewHTMXResponse().BodyRendered(body).Write(w)
}

func (s *Server) logRenderError(ctx context.Context, name string, err error) {
	applog.FromContext(ctx).WithComponent(applog.ComponentTemplate).ErrorContext(ctx, "Template execution failed",
		applog.FieldError, err,
		applog.FieldErrorType, applog.ErrorTypeInternal,
		applog.FieldOperation, applog.OpRender,
		"template", name)
}
