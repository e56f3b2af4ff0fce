package app

import (
	"strings"
	"testing"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses whitespace",
			in:   " SELECT   *\nFROM clubs \t WHERE legacy_club_id = $1 ",
			want: "SELECT * FROM clubs WHERE legacy_club_id = $1",
		},
		{
			name: "drops comments",
			in:   "-- claim oldest\nUPDATE matches SET status = 'PROCESSING' -- worker\nWHERE id = $1",
			want: "UPDATE matches SET status = 'PROCESSING' WHERE id = $1",
		},
		{name: "empty", in: "  \n ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDBQueryForTrace(tt.in); got != tt.want {
				t.Fatalf("formatDBQueryForTrace()=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestFormatDBQueryForTrace_Truncates(t *testing.T) {
	got := formatDBQueryForTrace("SELECT " + strings.Repeat("x", 2*maxTracedQueryLength))
	if len(got) != maxTracedQueryLength+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected truncation, len=%d", len(got))
	}
}
