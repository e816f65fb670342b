package images

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/RayyanKhan4004/PEMPAK-api/apperror"
)

var dataURIPattern = regexp.MustCompile(`^data:image/(png|jpeg|jpg|gif);base64,`)

// IsDataURI reports whether s carries an inline base64 image prefix.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ValidateDataURI checks that s is a well-formed base64 image. The payload
// after the comma must survive a decode/re-encode round trip unchanged, which
// catches truncated or corrupted base64.
func ValidateDataURI(s string) error {
	loc := dataURIPattern.FindStringIndex(s)
	if loc == nil {
		return apperror.New(apperror.Validation, "images must be base64 strings with a data:image/{png|jpeg|jpg|gif};base64, prefix")
	}
	payload := s[loc[1]:]
	if payload == "" {
		return apperror.New(apperror.Validation, "images base64 payload is empty")
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return apperror.Wrap(apperror.Validation, "images base64 payload is malformed", err)
	}
	if base64.StdEncoding.EncodeToString(decoded) != payload {
		return apperror.New(apperror.Validation, "images base64 payload is malformed")
	}
	return nil
}

// ValidateBatch validates every data-URI independently and stops at the first
// failure, naming its index. All-or-nothing: one bad entry rejects the batch.
func ValidateBatch(batch []string) error {
	for i, s := range batch {
		if err := ValidateDataURI(s); err != nil {
			return apperror.Newf(apperror.Validation, "images[%d]: %s", i, apperror.Message(err))
		}
	}
	return nil
}
