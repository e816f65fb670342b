// Package images turns the image input a client may send in any of several
// shapes into the single descriptor form that gets persisted.
package images

import (
	"encoding/json"
	"strings"

	"github.com/RayyanKhan4004/PEMPAK-api/apperror"
)

// Ref is the canonical stored form of an image: a stable URL plus the opaque
// id the remote store hands back for deletion. Images referenced only by URL
// carry an empty PublicID.
type Ref struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"public_id,omitempty" bson:"public_id,omitempty"`
}

// Entry is one raw image value from a request: either a string (URL or
// base64 data-URI) or an already-uploaded descriptor.
type Entry struct {
	Raw string
	Ref *Ref
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Raw = s
		e.Ref = nil
		return nil
	}
	var ref Ref
	if err := json.Unmarshal(data, &ref); err == nil {
		e.Raw = ""
		e.Ref = &ref
		return nil
	}
	return apperror.New(apperror.Validation, "images must contain only strings or {url, public_id} objects")
}

// Field is a flexible image field: JSON null, a single value, or an array of
// values all decode into it. Order is preserved, the first image is commonly
// used as the cover.
type Field []Entry

func (f *Field) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return err
		}
		*f = entries
		return nil
	}
	var entry Entry
	if err := entry.UnmarshalJSON(data); err != nil {
		return err
	}
	*f = Field{entry}
	return nil
}

// Policy is the cardinality rule for one entity field. Max <= 0 means
// unbounded.
type Policy struct {
	Field string
	Min   int
	Max   int
}

// Normalize trims string entries, drops blanks, and enforces the policy on
// what remains.
func Normalize(f Field, p Policy) ([]Entry, error) {
	out := make([]Entry, 0, len(f))
	for _, e := range f {
		if e.Ref != nil {
			if strings.TrimSpace(e.Ref.URL) == "" {
				continue
			}
			out = append(out, e)
			continue
		}
		raw := strings.TrimSpace(e.Raw)
		if raw == "" {
			continue
		}
		out = append(out, Entry{Raw: raw})
	}

	if len(out) < p.Min {
		return nil, apperror.Newf(apperror.Validation, "%s must contain at least %d items", p.Field, p.Min)
	}
	if p.Max > 0 && len(out) > p.Max {
		return nil, apperror.Newf(apperror.Validation, "%s must contain at most %d items", p.Field, p.Max)
	}
	return out, nil
}
