package utils

import "testing"

func TestCalculateTotalPages(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 0},
	}

	for _, tc := range cases {
		if got := CalculateTotalPages(tc.total, tc.perPage); got != tc.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tc.total, tc.perPage, got, tc.want)
		}
	}
}

func TestCalculateOffset(t *testing.T) {
	cases := []struct {
		page    int
		perPage int
		want    int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 25, 50},
		{0, 10, 0},
	}

	for _, tc := range cases {
		if got := CalculateOffset(tc.page, tc.perPage); got != tc.want {
			t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tc.page, tc.perPage, got, tc.want)
		}
	}
}

func TestParseInt(t *testing.T) {
	cases := []struct {
		value string
		def   int
		want  int
	}{
		{"", 5, 5},
		{"abc", 5, 5},
		{"0", 5, 5},
		{"-3", 5, 5},
		{"12", 5, 12},
	}

	for _, tc := range cases {
		if got := ParseInt(tc.value, tc.def); got != tc.want {
			t.Errorf("ParseInt(%q, %d) = %d, want %d", tc.value, tc.def, got, tc.want)
		}
	}
}
