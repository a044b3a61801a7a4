package http

import (
	"fmt"
	"net/http"

	"networth/internal/core"
	"networth/internal/forms"
	applog "networth/internal/log"
)

// handleCreateDeal applies the add form. The response body is always the
// next add form; triggers tell the page whether totals and history changed.
func (s *Server) handleCreateDeal(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		s.logger.WarnContext(r.Context(), "Unreadable add form body", applog.FieldError, err)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	ctx := r.Context()
	sl := applog.NewStructuredLogger(applog.FromContext(ctx))

	draft := forms.AddFormFromValues(parser.Values())
	next, saved, outcome, err := draft.Submit(ctx, s.store)

	resp := NewHTMXResponse()
	switch outcome {
	case forms.Saved:
		s.appMetrics.dealsAdded.Add(1)
		sl.LogDealAdded(ctx, saved.ID, saved.Date, saved.Value.String(), saved.Category)
		resp.TriggerDealsChanged(saved.ID, applog.OpCreate).
			TriggerFormReset().
			TriggerSuccessNotification(fmt.Sprintf("Deal %d saved: %s %s.", saved.ID, core.FormatAmount(saved.Value), saved.Category))
	case forms.Rejected:
		s.appMetrics.rejected.Add(1)
		sl.LogRejected(ctx, applog.OpCreate, err)
		resp = UnprocessableEntityError(next.Error)
	case forms.Failed:
		s.appMetrics.failed.Add(1)
		sl.LogError(ctx, "Failed to save deal", err, applog.ComponentDeals, applog.OpCreate,
			applog.NewFields().WithErrorType(applog.ErrorTypeDatabase))
		resp = InternalServerError(next.Error).
			TriggerErrorNotification(next.Error)
	}

	s.writeForm(w, r, resp, "add_form", newAddFormView(next))
}

// handleDeleteDeal applies the delete-by-id form with the same response
// scheme as handleCreateDeal.
func (s *Server) handleDeleteDeal(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		s.logger.WarnContext(r.Context(), "Unreadable delete form body", applog.FieldError, err)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	ctx := r.Context()
	sl := applog.NewStructuredLogger(applog.FromContext(ctx))

	draft := forms.DeleteFormFromValues(parser.Values())
	next, id, outcome, err := draft.Submit(ctx, s.store)

	resp := NewHTMXResponse()
	switch outcome {
	case forms.Saved:
		s.appMetrics.dealsDeleted.Add(1)
		sl.LogDealDeleted(ctx, id)
		resp.TriggerDealsChanged(id, applog.OpDelete).
			TriggerSuccessNotification(fmt.Sprintf("Deal %d deleted.", id))
	case forms.Rejected:
		s.appMetrics.rejected.Add(1)
		sl.LogRejected(ctx, applog.OpDelete, err)
		resp = UnprocessableEntityError(next.Error)
	case forms.Failed:
		s.appMetrics.failed.Add(1)
		fields := applog.NewFields().WithErrorType(applog.ErrorTypeDatabase)
		fields[applog.FieldDealID] = id
		sl.LogError(ctx, "Failed to delete deal", err, applog.ComponentDeals, applog.OpDelete, fields)
		resp = InternalServerError(next.Error).
			TriggerErrorNotification(next.Error)
	}

	s.writeForm(w, r, resp, "delete_form", next)
}

func (s *Server) writeForm(w http.ResponseWriter, r *http.Request, resp *HTMXResponseBuilder, name string, data any) {
	body, err := s.render(name, data)
	if err != nil {
		s.logRenderError(r.Context(), name, err)
		InternalServerError("Error rendering form").Write(w)
		return
	}
	resp.BodyRendered(body).Write(w)
}
