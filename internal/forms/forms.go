// Package forms holds the add and delete form drafts and the transition a
// submit applies to them. Drafts live in the browser between requests.
package forms

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"networth/internal/core"
	"networth/internal/ledger"
)

// Outcome of a submit.
type Outcome int

const (
	// Ignored: nothing to do, draft unchanged, no store call.
	Ignored Outcome = iota
	// Rejected: validation failed, draft kept with an error, no store call.
	Rejected
	// Saved: the store call succeeded and the draft was cleared.
	Saved
	// Failed: the store call failed, draft kept with an error.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Rejected:
		return "rejected"
	case Saved:
		return "saved"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// AddForm is the add-deal draft.
type AddForm struct {
	Date     string
	Amount   string
	Category string
	Comment  string
	Error    string
}

// AddFormFromValues reads a draft from submitted form values.
func AddFormFromValues(v url.Values) AddForm {
	return AddForm{
		Date:     strings.TrimSpace(v.Get("date")),
		Amount:   strings.TrimSpace(v.Get("amount")),
		Category: strings.TrimSpace(v.Get("category")),
		Comment:  v.Get("comment"),
	}
}

// Submit applies the draft. A blank amount is ignored, malformed input is
// rejected, anything else is written with exactly one Add call.
func (f AddForm) Submit(ctx context.Context, w ledger.DealWriter) (next AddForm, saved core.Deal, outcome Outcome, err error) {
	f.Error = ""

	value, err := core.ParseAmount(f.Amount)
	if errors.Is(err, core.ErrEmptyAmount) {
		return f, core.Deal{}, Ignored, nil
	}
	if err != nil {
		f.Error = fmt.Sprintf("%q is not a valid amount.", f.Amount)
		return f, core.Deal{}, Rejected, err
	}

	d := core.Deal{
		Date:     f.Date,
		Value:    value,
		Category: f.Category,
		Comment:  f.Comment,
	}
	if err := d.Validate(); err != nil {
		if f.Category == "" {
			f.Error = "Choose a category."
		} else {
			f.Error = fmt.Sprintf("%q is not a known category.", f.Category)
		}
		return f, core.Deal{}, Rejected, err
	}

	saved, err = w.Add(ctx, d)
	if err != nil {
		f.Error = "The deal could not be saved. Please try again."
		return f, core.Deal{}, Failed, err
	}

	return AddForm{}, saved, Saved, nil
}

// DeleteForm is the delete-by-id draft.
type DeleteForm struct {
	ID    string
	Error string
}

// DeleteFormFromValues reads a draft from submitted form values.
func DeleteFormFromValues(v url.Values) DeleteForm {
	return DeleteForm{ID: strings.TrimSpace(v.Get("id"))}
}

// Submit deletes the deal named by the draft. A non-integer id is rejected;
// an id that matches nothing still counts as Saved.
func (f DeleteForm) Submit(ctx context.Context, d ledger.DealDeleter) (next DeleteForm, id int64, outcome Outcome, err error) {
	f.Error = ""

	id, err = ParseID(f.ID)
	if err != nil {
		f.Error = "Enter the numeric id of the deal to delete."
		return f, 0, Rejected, err
	}

	if err := d.DeleteByID(ctx, id); err != nil {
		f.Error = fmt.Sprintf("Deal %d could not be deleted. Please try again.", id)
		return f, id, Failed, err
	}

	return DeleteForm{}, id, Saved, nil
}

// ParseID parses a deal id typed by the user.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, core.ErrInvalidID
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidID, s)
	}
	return id, nil
}
