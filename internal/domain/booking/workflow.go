package booking

import (
	"context"
	"strings"

	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/models"
	"github.com/chentesbarber/booking-api/internal/validators"
)

// ===============================
// Workflow states
// ===============================

type State string

const (
	StateSelectingDate   State = "selecting_date"
	StateSelectingBarber State = "selecting_barber"
	StateSelectingTime   State = "selecting_time"
	StateEnteringDetails State = "entering_details"
	StateConfirming      State = "confirming"
	StateCompleted       State = "completed"
)

// ===============================
// Dependencies
// ===============================

// Gateway is what the workflow needs from the rest of the system:
// the slot resolver, catalog membership and the ledger write.
type Gateway interface {
	AvailableTimes(ctx context.Context, barberID uint, date string) ([]string, error)
	BarberByName(ctx context.Context, name string) (*models.Barber, error)
	Book(ctx context.Context, req BookingRequest) (*models.Appointment, error)
}

type BookingRequest struct {
	BarberID uint
	Date     string
	Time     string
	Service  string
	Name     string
	LastName string
	Phone    string
	Code     string
}

type FormData struct {
	Name     string
	LastName string
	Phone    string
	Service  string
}

// ===============================
// Workflow
// ===============================

// Workflow tracks a single in-progress booking attempt. Slot selection
// and slot reservation are deliberately decoupled in time, so Confirm
// re-validates availability instead of trusting the snapshot the client
// saw when picking the time. Not safe for concurrent use; the session
// store serializes access.
type Workflow struct {
	gw Gateway

	state     State
	date      string
	barber    *models.Barber
	timeOfDay string
	form      FormData
	code      string
}

func NewWorkflow(gw Gateway) *Workflow {
	return &Workflow{
		gw:    gw,
		state: StateSelectingDate,
	}
}

func (w *Workflow) State() State { return w.state }
func (w *Workflow) Date() string { return w.date }
func (w *Workflow) TimeOfDay() string { return w.timeOfDay }
func (w *Workflow) Form() FormData { return w.form }

// PendingCode is the booking code staged for the confirmation dialog.
func (w *Workflow) PendingCode() string { return w.code }

func (w *Workflow) BarberID() uint {
	if w.barber == nil {
		return 0
	}
	return w.barber.ID
}

func (w *Workflow) BarberName() string {
	if w.barber == nil {
		return ""
	}
	return w.barber.Name
}

// SelectDate is valid from any state, completion included: picking a
// new date starts the next booking in the same session. Changing the
// date invalidates every downstream choice.
func (w *Workflow) SelectDate(date string) error {
	normalized, ok := validators.NormalizeDate(date)
	if !ok {
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid date")
	}

	w.date = normalized
	w.barber = nil
	w.timeOfDay = ""
	w.form = FormData{}
	w.code = ""
	w.state = StateSelectingBarber
	return nil
}

// SelectBarber requires a barber that exists in the catalog and resets
// any previously selected time.
func (w *Workflow) SelectBarber(ctx context.Context, name string) error {
	if w.state == StateSelectingDate || w.state == StateCompleted {
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "select a date first")
	}

	barber, err := w.gw.BarberByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return err
	}

	w.barber = barber
	w.timeOfDay = ""
	w.form = FormData{}
	w.code = ""
	w.state = StateSelectingTime
	return nil
}

// SelectTime requires the time to be currently bookable for the chosen
// barber and date.
func (w *Workflow) SelectTime(ctx context.Context, timeOfDay string) error {
	if w.barber == nil || w.state == StateSelectingDate || w.state == StateSelectingBarber || w.state == StateCompleted {
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "select a barber first")
	}

	normalized, ok := validators.NormalizeTimeOfDay(timeOfDay)
	if !ok {
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid time")
	}

	times, err := w.gw.AvailableTimes(ctx, w.barber.ID, w.date)
	if err != nil {
		return err
	}
	if !contains(times, normalized) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	w.timeOfDay = normalized
	w.state = StateEnteringDetails
	return nil
}

// Prepare validates and stages the contact form and moves to the
// confirmation review. The booking code is generated here so the dialog
// can display it before the appointment exists.
func (w *Workflow) Prepare(form FormData) error {
	if w.state != StateEnteringDetails && w.state != StateConfirming {
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "select a time first")
	}

	form.Name = strings.TrimSpace(form.Name)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Service = strings.TrimSpace(form.Service)

	if form.Name == "" || form.Phone == "" || form.Service == "" {
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "name, phone and service are required")
	}

	w.form = form
	if w.code == "" {
		w.code = NewBookingCode()
	}
	w.state = StateConfirming
	return nil
}

// Confirm re-validates the slot and writes to the ledger. If another
// client won the slot while this one was reviewing the dialog, the
// workflow falls back to time selection and returns the refreshed
// available times so the client can pick again.
func (w *Workflow) Confirm(ctx context.Context) (*models.Appointment, []string, error) {
	if w.state != StateConfirming {
		return nil, nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "nothing staged to confirm")
	}

	times, err := w.gw.AvailableTimes(ctx, w.barber.ID, w.date)
	if err != nil {
		return nil, nil, err
	}
	if !contains(times, w.timeOfDay) {
		return nil, w.loseSlot(times), httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	ap, err := w.gw.Book(ctx, BookingRequest{
		BarberID: w.barber.ID,
		Date:     w.date,
		Time:     w.timeOfDay,
		Service:  w.form.Service,
		Name:     w.form.Name,
		LastName: w.form.LastName,
		Phone:    w.form.Phone,
		Code:     w.code,
	})
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
			fresh, ferr := w.gw.AvailableTimes(ctx, w.barber.ID, w.date)
			if ferr != nil {
				fresh = nil
			}
			return nil, w.loseSlot(fresh), err
		}
		return nil, nil, err
	}

	w.state = StateCompleted
	return ap, nil, nil
}

// CancelConfirmation discards the staged form data and returns to slot
// selection without losing the chosen date and barber.
func (w *Workflow) CancelConfirmation() error {
	if w.state != StateConfirming {
		return httperr.ErrBusinessMsg(httperr.CodeValidation, "nothing staged to cancel")
	}

	w.form = FormData{}
	w.code = ""
	w.timeOfDay = ""
	w.state = StateSelectingTime
	return nil
}

func (w *Workflow) loseSlot(fresh []string) []string {
	w.timeOfDay = ""
	w.code = ""
	w.state = StateSelectingTime
	if fresh == nil {
		fresh = []string{}
	}
	return fresh
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
