package trust

import (
	"errors"
	"fmt"
)

// ErrIncompleteRule is returned by the rule builder when it is finalized before
// an attribute and at least one match were registered.
var ErrIncompleteRule = errors.New("incomplete rule: no attribute or match registered")

// InvalidAttributeError reports a rule referencing an attribute outside the
// schema. It is raised at build or load time, never at scoring time.
type InvalidAttributeError struct {
	Name string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid attribute %q: not in the attribute schema", e.Name)
}

// MalformedRuleDocumentError reports a rule document that failed structural or
// schema validation on load. Loading fails atomically; no partial rule set is
// ever installed.
type MalformedRuleDocumentError struct {
	Reason string
	Err    error
}

func (e *MalformedRuleDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed rule document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed rule document: %s", e.Reason)
}

func (e *MalformedRuleDocumentError) Unwrap() error { return e.Err }

// ResolutionKind classifies resolver failures.
type ResolutionKind int

const (
	// ResolutionUnavailable covers network failures, rate limiting and
	// malformed responses.
	ResolutionUnavailable ResolutionKind = iota
	// ResolutionNoData means the lookup itself worked but the service has no
	// data for the IP.
	ResolutionNoData
)

func (k ResolutionKind) String() string {
	if k == ResolutionNoData {
		return "no data"
	}
	return "unavailable"
}

// ResolutionError reports that a GeoResolver could not produce an attribute bag.
type ResolutionError struct {
	IP   string
	Kind ResolutionKind
	Err  error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation resolution failed for %s (%s): %v", e.IP, e.Kind, e.Err)
	}
	return fmt.Sprintf("geolocation resolution failed for %s (%s)", e.IP, e.Kind)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ReputationUnavailableError means a score could not be computed because
// resolution failed. The engine surfaces this instead of guessing a default
// score; a neutral fallback is an explicit configuration choice.
type ReputationUnavailableError struct {
	IP  string
	Err error
}

func (e *ReputationUnavailableError) Error() string {
	return fmt.Sprintf("reputation unavailable for %s: %v", e.IP, e.Err)
}

func (e *ReputationUnavailableError) Unwrap() error { return e.Err }
