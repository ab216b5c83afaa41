// mode.go - Analysis mode resolution

package analysis

import "fmt"

// Mode selects which analysis path a scan runs through. It also determines
// which annotation feature is requested from the provider upstream, so the
// payload handed to Extract must match the kind implied by the mode.
type Mode string

const (
	// ModeFood runs label detection and ranks the detected food labels.
	ModeFood Mode = "food"
	// ModeInvoice runs text detection and parses the OCR text as a receipt.
	ModeInvoice Mode = "invoice"
)

// InvalidModeError is returned when a caller declares a mode that is neither
// "food" nor "invoice". This is a client contract violation and the whole
// request must be rejected before any extraction runs.
type InvalidModeError struct {
	Value string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid analysis mode %q (expected \"food\" or \"invoice\")", e.Value)
}

// ResolveMode maps the caller-declared mode string to a Mode. Matching is
// exact: empty strings, unknown values and case variants are all rejected.
// There is deliberately no fallback mode.
func ResolveMode(raw string) (Mode, error) {
	switch raw {
	case string(ModeFood):
		return ModeFood, nil
	case string(ModeInvoice):
		return ModeInvoice, nil
	default:
		return "", &InvalidModeError{Value: raw}
	}
}

// Feature returns the annotation feature type the provider must run for this
// mode, using Google Vision feature naming.
func (m Mode) Feature() string {
	if m == ModeInvoice {
		return "TEXT_DETECTION"
	}
	return "LABEL_DETECTION"
}
