package images

import (
	"encoding/json"
	"testing"
)

func TestFieldUnmarshalShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"null", `null`, 0},
		{"single string", `"a.png"`, 1},
		{"string array", `["a.png","b.png"]`, 2},
		{"descriptor", `{"url":"https://cdn/x.png","public_id":"x"}`, 1},
		{"descriptor array", `[{"url":"https://cdn/x.png","public_id":"x"},{"url":"https://cdn/y.png","public_id":"y"}]`, 2},
		{"mixed array", `["a.png",{"url":"https://cdn/x.png","public_id":"x"}]`, 2},
		{"empty array", `[]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Field
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if len(f) != tt.want {
				t.Errorf("len = %d, want %d", len(f), tt.want)
			}
		})
	}
}

func TestFieldUnmarshalRejectsNumbers(t *testing.T) {
	var f Field
	if err := json.Unmarshal([]byte(`[1,2]`), &f); err == nil {
		t.Fatal("expected error for numeric entries")
	}
}

func TestNormalizeTrimsAndFiltersBlanks(t *testing.T) {
	var f Field
	if err := json.Unmarshal([]byte(`["  a.png  ","","   ","b.png"]`), &f); err != nil {
		t.Fatal(err)
	}
	out, err := Normalize(f, Policy{Field: "images"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Raw != "a.png" || out[1].Raw != "b.png" {
		t.Errorf("entries = %q, %q; want trimmed a.png, b.png in order", out[0].Raw, out[1].Raw)
	}
}

func TestNormalizePreservesOrder(t *testing.T) {
	var f Field
	if err := json.Unmarshal([]byte(`["c.png","a.png","b.png"]`), &f); err != nil {
		t.Fatal(err)
	}
	out, err := Normalize(f, Policy{Field: "images"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"c.png", "a.png", "b.png"}
	for i, w := range want {
		if out[i].Raw != w {
			t.Errorf("out[%d] = %q, want %q", i, out[i].Raw, w)
		}
	}
}

func TestNormalizeCardinality(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		policy  Policy
		wantErr string
	}{
		{"below min", `[]`, Policy{Field: "images", Min: 1}, "images must contain at least 1 items"},
		{"at min", `["a.png"]`, Policy{Field: "images", Min: 1}, ""},
		{"at max", `["a","b","c","d","e"]`, Policy{Field: "images", Max: 5}, ""},
		{"over max", `["a","b","c","d","e","f"]`, Policy{Field: "images", Max: 5}, "images must contain at most 5 items"},
		{"blanks do not count toward min", `["   "]`, Policy{Field: "images", Min: 1}, "images must contain at least 1 items"},
		{"unbounded", `["a","b","c","d","e","f","g"]`, Policy{Field: "images"}, ""},
		{"named field in error", `[]`, Policy{Field: "additionalImages", Min: 1, Max: 4}, "additionalImages must contain at least 1 items"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Field
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatal(err)
			}
			_, err := Normalize(f, tt.policy)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNormalizeDropsBlankDescriptors(t *testing.T) {
	var f Field
	if err := json.Unmarshal([]byte(`[{"url":"  ","public_id":"x"},{"url":"https://cdn/y.png","public_id":"y"}]`), &f); err != nil {
		t.Fatal(err)
	}
	out, err := Normalize(f, Policy{Field: "images"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Ref.PublicID != "y" {
		t.Errorf("expected only the non-blank descriptor, got %+v", out)
	}
}
