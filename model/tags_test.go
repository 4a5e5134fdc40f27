package model

import (
	"reflect"
	"testing"
)

func TestSplitMoodTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StringList
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"single", "chill", StringList{"chill"}},
		{"trimmed", " chill , upbeat ", StringList{"chill", "upbeat"}},
		{"drops empty segments", "chill,,upbeat,", StringList{"chill", "upbeat"}},
		{"all empty segments", ",, ,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitMoodTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitMoodTags(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStringListScan(t *testing.T) {
	var s StringList
	if err := s.Scan([]byte(`["a","b"]`)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(s, StringList{"a", "b"}) {
		t.Errorf("Scan = %v, want [a b]", s)
	}

	if err := s.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if s != nil {
		t.Errorf("Scan(nil) = %v, want nil", s)
	}

	if err := s.Scan("null"); err != nil {
		t.Fatalf("Scan(null): %v", err)
	}
	if s != nil {
		t.Errorf("Scan(null) = %v, want nil", s)
	}
}

func TestIntListRoundTrip(t *testing.T) {
	l := IntList{1, 3, 5}
	v, err := l.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var got IntList
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("round trip = %v, want %v", got, l)
	}

	var nilList IntList
	v, err = nilList.Value()
	if err != nil {
		t.Fatalf("Value(nil): %v", err)
	}
	if v != nil {
		t.Errorf("nil list Value = %v, want nil", v)
	}
}

func TestJSONMapRoundTrip(t *testing.T) {
	m := JSONMap{"voice": "nova", "duration_sec": 42.0}

	v, err := m.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var got JSONMap
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("round trip = %v, want %v", got, m)
	}

	var empty JSONMap
	if err := empty.Scan([]byte("null")); err != nil {
		t.Fatalf("Scan(null): %v", err)
	}
	if empty != nil {
		t.Errorf("Scan(null) = %v, want nil", empty)
	}
}
