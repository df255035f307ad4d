package wizard

import (
	"fmt"
	"strings"

	"cellar-transfer-tui/indexer"

	"github.com/google/uuid"
)

// Step is a position in the transfer wizard, always within [StepIdentity, StepConfirmation]
type Step int

const (
	StepIdentity Step = iota + 1
	StepSelectTokens
	StepDestination
	StepConfirmation
)

// Title is the step heading
func (s Step) Title() string {
	switch s {
	case StepIdentity:
		return "Connect your Wine Bottle Club Wallet"
	case StepSelectTokens:
		return "Select your Wine Bottle Club Bottle(s)"
	case StepDestination:
		return "Connect your Polygon Wallet Address"
	case StepConfirmation:
		return "Your transfer request has been successfully recorded."
	}
	return ""
}

// Description is the line shown under the heading
func (s Step) Description() string {
	switch s {
	case StepIdentity:
		return "Please connect your Ethereum wallet to access and manage your bottle(s)"
	case StepSelectTokens:
		return "Please select the wine bottle(s) you wish to transfer"
	case StepDestination:
		return "Please enter your Polygon wallet address to link your account for seamless transactions and interactions."
	case StepConfirmation:
		return "Thank you for submitting your request. We will process it promptly."
	}
	return ""
}

// Field identifies a form input
type Field int

const (
	FieldFirstName Field = iota
	FieldLastName
	FieldEthereumWallet
	FieldPolygonWallet
)

func (f Field) Label() string {
	switch f {
	case FieldFirstName:
		return "First name"
	case FieldLastName:
		return "Last name"
	case FieldEthereumWallet:
		return "Wallet ETH"
	case FieldPolygonWallet:
		return "Polygon Wallet address (from InterCellar)"
	}
	return ""
}

func (f Field) Placeholder() string {
	switch f {
	case FieldFirstName:
		return "Lucas"
	case FieldLastName:
		return "InterCellar"
	case FieldEthereumWallet:
		return "0x… or name.eth"
	case FieldPolygonWallet:
		return "0x…"
	}
	return ""
}

// Form holds the user's raw input
type Form struct {
	FirstName      string
	LastName       string
	EthereumWallet string
	PolygonWallet  string
}

func (f *Form) get(field Field) string {
	switch field {
	case FieldFirstName:
		return f.FirstName
	case FieldLastName:
		return f.LastName
	case FieldEthereumWallet:
		return f.EthereumWallet
	case FieldPolygonWallet:
		return f.PolygonWallet
	}
	return ""
}

func (f *Form) set(field Field, v string) {
	switch field {
	case FieldFirstName:
		f.FirstName = v
	case FieldLastName:
		f.LastName = v
	case FieldEthereumWallet:
		f.EthereumWallet = v
	case FieldPolygonWallet:
		f.PolygonWallet = v
	}
}

// FetchRequest asks the caller to load the owner's tokens and report back
// with the same Generation.
type FetchRequest struct {
	Owner      string
	Generation uint64
}

// Wizard is the four-step transfer request state machine
type Wizard struct {
	step        Step
	form        Form
	tokens      []indexer.OwnedToken
	loading     bool
	fieldErrors map[Field]string
	requestID   string
	generation  uint64
	strict      bool
	newID       func() string
}

// New returns a wizard at step 1. strict enables EIP-55 checksum verification
// of the destination address.
func New(strict bool) *Wizard {
	return &Wizard{
		step:        StepIdentity,
		fieldErrors: map[Field]string{},
		strict:      strict,
		newID:       uuid.NewString,
	}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Form() Form { return w.form }

// Loading reports whether a step 1 fetch is outstanding
func (w *Wizard) Loading() bool { return w.loading }

// RequestID is the reference generated on reaching the confirmation step
func (w *Wizard) RequestID() string { return w.requestID }

// Generation changes every time the wizard is reset
func (w *Wizard) Generation() uint64 { return w.generation }

// Tokens returns the fetched tokens in display order
func (w *Wizard) Tokens() []indexer.OwnedToken {
	out := make([]indexer.OwnedToken, len(w.tokens))
	copy(out, w.tokens)
	return out
}

func (w *Wizard) Field(f Field) string { return w.form.get(f) }

// FieldError returns the inline message for f, if any
func (w *Wizard) FieldError(f Field) string { return w.fieldErrors[f] }

// SetField stores input for f and clears its error
func (w *Wizard) SetField(f Field, v string) {
	w.form.set(f, v)
	delete(w.fieldErrors, f)
}

// CanContinue reports whether the Continue control is enabled
func (w *Wizard) CanContinue() bool {
	switch w.step {
	case StepIdentity:
		return !w.loading
	case StepSelectTokens:
		return len(w.tokens) > 0
	case StepDestination:
		return true
	}
	return false
}

// CanGoBack reports whether Previous is offered
func (w *Wizard) CanGoBack() bool {
	return w.step == StepSelectTokens || w.step == StepDestination
}

// Continue attempts to leave the current step. On step 1 a successful call
// returns the fetch the caller must run; the step advances once
// FetchSucceeded reports the result.
func (w *Wizard) Continue() (*FetchRequest, error) {
	switch w.step {
	case StepIdentity:
		if w.loading {
			return nil, ErrBusy
		}
		errs := map[Field]string{}
		for _, f := range []Field{FieldFirstName, FieldLastName, FieldEthereumWallet} {
			if !required(w.form.get(f)) {
				errs[f] = f.Label() + " is required"
			}
		}
		if len(errs) > 0 {
			w.fieldErrors = errs
			return nil, &ValidationError{Fields: errs}
		}
		w.fieldErrors = map[Field]string{}
		w.loading = true
		return &FetchRequest{
			Owner:      strings.TrimSpace(w.form.EthereumWallet),
			Generation: w.generation,
		}, nil

	case StepSelectTokens:
		if len(w.tokens) == 0 {
			return nil, ErrNoTokens
		}
		w.step = StepDestination
		return nil, nil

	case StepDestination:
		if err := ValidateAddress(w.form.PolygonWallet, w.strict); err != nil {
			errs := map[Field]string{FieldPolygonWallet: err.Error()}
			w.fieldErrors = errs
			return nil, &ValidationError{Fields: errs}
		}
		w.fieldErrors = map[Field]string{}
		w.form.PolygonWallet = strings.TrimSpace(w.form.PolygonWallet)
		w.requestID = w.newID()
		w.step = StepConfirmation
		return nil, nil
	}
	return nil, nil
}

// FetchSucceeded applies a token fetch result. Results for an older
// generation, or with no fetch outstanding, are dropped and false is returned.
func (w *Wizard) FetchSucceeded(gen uint64, tokens []indexer.OwnedToken) bool {
	if gen != w.generation || !w.loading {
		return false
	}
	w.loading = false
	w.tokens = indexer.SortForDisplay(tokens)
	if w.step == StepIdentity {
		w.step = StepSelectTokens
	}
	return true
}

// FetchFailed clears the loading state; the step does not change
func (w *Wizard) FetchFailed(gen uint64) bool {
	if gen != w.generation || !w.loading {
		return false
	}
	w.loading = false
	return true
}

// Previous goes back one step from steps 2 and 3
func (w *Wizard) Previous() bool {
	if !w.CanGoBack() {
		return false
	}
	w.step--
	w.fieldErrors = map[Field]string{}
	return true
}

// Reset discards all state and returns to step 1
func (w *Wizard) Reset() {
	w.step = StepIdentity
	w.form = Form{}
	w.tokens = nil
	w.loading = false
	w.fieldErrors = map[Field]string{}
	w.requestID = ""
	w.generation++
}

// SelectLabel sets the wine label of a token that needs one. An empty label clears it.
func (w *Wizard) SelectLabel(tokenID, label string) error {
	if label != "" && !indexer.IsWineLabel(label) {
		return fmt.Errorf("unknown wine label %q", label)
	}
	for i := range w.tokens {
		if w.tokens[i].TokenID != tokenID {
			continue
		}
		if !w.tokens[i].NeedsLabel {
			return fmt.Errorf("token %s does not take a label", tokenID)
		}
		w.tokens[i].SelectedLabel = label
		return nil
	}
	return fmt.Errorf("token %s not found", tokenID)
}

// SyncWallet prefills the Ethereum wallet from a newly connected account while
// the user is still on step 1 and has not typed one.
func (w *Wizard) SyncWallet(addr string) bool {
	if w.step != StepIdentity || strings.TrimSpace(w.form.EthereumWallet) != "" || addr == "" {
		return false
	}
	w.form.EthereumWallet = addr
	delete(w.fieldErrors, FieldEthereumWallet)
	return true
}
