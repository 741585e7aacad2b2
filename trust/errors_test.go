package trust

import (
	"errors"
	"testing"
)

func TestResolutionErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ResolutionError{IP: "1.2.3.4", Kind: ResolutionUnavailable, Err: cause}

	if !errors.Is(err, cause) {
		t.Fatalf("ResolutionError did not unwrap to its cause")
	}
}

func TestReputationUnavailableErrorWrapsResolution(t *testing.T) {
	resErr := &ResolutionError{IP: "1.2.3.4", Kind: ResolutionNoData, Err: errors.New("no data")}
	err := error(&ReputationUnavailableError{IP: "1.2.3.4", Err: resErr})

	var unwrapped *ResolutionError
	if !errors.As(err, &unwrapped) {
		t.Fatalf("ReputationUnavailableError did not expose the underlying ResolutionError")
	}
	if unwrapped.Kind != ResolutionNoData {
		t.Fatalf("unexpected resolution kind: %v", unwrapped.Kind)
	}
}

func TestResolutionKindString(t *testing.T) {
	if ResolutionUnavailable.String() != "unavailable" || ResolutionNoData.String() != "no data" {
		t.Fatalf("unexpected ResolutionKind strings: %v, %v", ResolutionUnavailable, ResolutionNoData)
	}
}
