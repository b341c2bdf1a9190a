package inventory

import (
	"regexp"
	"strings"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/apperrors"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// ResolveBinKey normalizes an externally supplied bin identifier into its
// canonical numeric form. Bare ordinals pass through unchanged; codes that
// embed an ordinal inside a letter prefix ("B3") resolve to the first
// contiguous digit run.
//
// The canonical form is only for validation and display. Storage lookups and
// mutations must keep using the identifier exactly as supplied: historical
// bin rows were written with string keys, and rewriting the key on the way in
// would split one bin's stock across two unreconciled rows.
func ResolveBinKey(external string) (string, error) {
	trimmed := strings.TrimSpace(external)
	if trimmed == "" {
		return "", apperrors.New(apperrors.KindInvalidBinIdentifier, "bin identifier is empty")
	}

	if isAllDigits(trimmed) {
		return trimmed, nil
	}

	run := digitRun.FindString(trimmed)
	if run == "" {
		return "", apperrors.Newf(apperrors.KindInvalidBinIdentifier,
			"bin identifier %q contains no numeric ordinal", external)
	}
	return run, nil
}

// FormatBinCode renders the canonical ordinal in the letter-prefixed form the
// warehouse screens display.
func FormatBinCode(canonical string) string {
	return "B" + canonical
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
