package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lhomangroup/voyageur-malin/internal/usecase"
)

type Mode string

const (
	// ModeInline shows a success panel in place.
	ModeInline Mode = "inline"
	// ModeRedirect always reports success and then opens the booking page.
	ModeRedirect Mode = "redirect"
)

const (
	MsgFieldsRequired = "Veuillez remplir tous les champs obligatoires."
	MsgInvalidEmail   = "Veuillez entrer une adresse email valide."
	MsgConsentMissing = "Vous devez accepter la politique de confidentialité pour continuer."
	MsgDefaultSuccess = "Checklist envoyée avec succès ! Vérifiez votre boîte email."
	MsgGenericError   = "Une erreur est survenue. Veuillez réessayer."
	MsgRedirecting    = "Merci ! Vous allez être redirigé vers notre page de réservation..."
)

var (
	ErrUnknownMode = errors.New("unknown submission mode")
	ErrNoNavigator = errors.New("redirect mode needs a navigator")
	ErrNoRedirect  = errors.New("outcome has no pending redirect")
)

// Form mirrors the four controlled inputs of the lead form.
type Form struct {
	FirstName   string
	LastName    string
	Email       string
	GDPRConsent bool
}

func (f Form) input() usecase.SendChecklistInput {
	return usecase.SendChecklistInput{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Email:       f.Email,
		GDPRConsent: f.GDPRConsent,
	}
}

type Submitter interface {
	SubmitChecklist(ctx context.Context, input usecase.SendChecklistInput) (*Response, error)
}

// Navigator opens url once delay has elapsed.
type Navigator interface {
	Open(ctx context.Context, url string, delay time.Duration) error
}

// Outcome is what the visitor sees after a submit.
type Outcome struct {
	Success bool
	Message string
	// Panel is set when the inline success panel replaces the form.
	Panel bool
	// RedirectURL is set when Redirect should follow once Message is shown.
	RedirectURL string
	Delay       time.Duration
	Fallback    bool
	// Busy is set when a submit was refused because another one is in flight.
	Busy bool
	// MaskedError is a remote failure hidden from the visitor in redirect mode.
	MaskedError error
}

type FlowConfig struct {
	Mode          Mode
	BookingURL    string
	RedirectDelay time.Duration
	FallbackDelay time.Duration
}

// Flow drives one lead form. It allows a single submission in flight.
type Flow struct {
	cfg       FlowConfig
	submitter Submitter
	navigator Navigator
	logger    *slog.Logger

	mu      sync.Mutex
	form    Form
	loading bool
}

func NewFlow(cfg FlowConfig, submitter Submitter, navigator Navigator, logger *slog.Logger) (*Flow, error) {
	switch cfg.Mode {
	case ModeInline, ModeRedirect:
	case "":
		cfg.Mode = ModeInline
	default:
		return nil, ErrUnknownMode
	}
	if cfg.Mode == ModeRedirect && navigator == nil {
		return nil, ErrNoNavigator
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{cfg: cfg, submitter: submitter, navigator: navigator, logger: logger}, nil
}

// SetForm replaces the form content. Inputs are disabled while loading.
func (f *Flow) SetForm(form Form) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loading {
		return false
	}
	f.form = form
	return true
}

func (f *Flow) Form() Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

func (f *Flow) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Submit validates the form locally, calls the backend and resolves the
// outcome for the configured mode. It never navigates: in redirect mode the
// caller shows Message and then calls Redirect.
func (f *Flow) Submit(ctx context.Context) Outcome {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return Outcome{Busy: true}
	}
	form := f.form
	if msg := localValidationMessage(form); msg != "" {
		f.mu.Unlock()
		return Outcome{Message: msg}
	}
	f.loading = true
	f.mu.Unlock()

	resp, err := f.submitter.SubmitChecklist(ctx, form.input())

	f.mu.Lock()
	f.form = Form{}
	f.loading = false
	f.mu.Unlock()

	if f.cfg.Mode == ModeRedirect {
		return f.redirectOutcome(resp, err)
	}
	return inline(resp, err)
}

func inline(resp *Response, err error) Outcome {
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return Outcome{Message: apiErr.Message}
		}
		return Outcome{Message: MsgGenericError}
	}

	msg := resp.Message
	if msg == "" {
		msg = MsgDefaultSuccess
	}
	return Outcome{Success: true, Message: msg, Panel: true, Fallback: resp.Fallback}
}

func (f *Flow) redirectOutcome(resp *Response, err error) Outcome {
	out := Outcome{
		Success:     true,
		Message:     MsgRedirecting,
		RedirectURL: f.cfg.BookingURL,
		Delay:       f.cfg.FallbackDelay,
	}

	switch {
	case err != nil:
		f.logger.Warn("submission failed, redirecting anyway", "error", err)
		out.MaskedError = err
		out.Fallback = true
	case resp.Fallback:
		out.Fallback = true
	default:
		out.Delay = f.cfg.RedirectDelay
	}
	return out
}

// Redirect opens the booking page of a redirect outcome after its delay.
func (f *Flow) Redirect(ctx context.Context, out Outcome) error {
	if out.RedirectURL == "" {
		return ErrNoRedirect
	}
	if err := f.navigator.Open(ctx, out.RedirectURL, out.Delay); err != nil {
		f.logger.Error("could not open booking page", "url", out.RedirectURL, "error", err)
		return err
	}
	return nil
}

func localValidationMessage(form Form) string {
	errs := usecase.ValidateSubmission(form.input())
	if len(errs) == 0 {
		return ""
	}
	switch errs[0].Rule {
	case usecase.RuleEmailFormat:
		return MsgInvalidEmail
	case usecase.RuleConsent:
		return MsgConsentMissing
	default:
		return MsgFieldsRequired
	}
}
