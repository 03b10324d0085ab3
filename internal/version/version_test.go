package version

import (
	"strings"
	"testing"
)

func TestBuildNumber(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{
			name:     "epoch date",
			date:     "2025-12-04",
			expected: 0,
		},
		{
			name:     "next day after epoch",
			date:     "2025-12-05",
			expected: 1,
		},
		{
			name:     "one year later",
			date:     "2026-12-04",
			expected: 365,
		},
		{
			name:     "date with leap years included",
			date:     "2032-12-04",
			expected: 2557,
		},
		{
			name:      "invalid format",
			date:      "invalid",
			wantError: true,
		},
		{
			name:      "empty date",
			date:      "",
			wantError: true,
		},
		{
			name:      "before epoch",
			date:      "2025-12-03",
			wantError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			// Без t.Parallel: сабтесты мутируют общий BuildDate.
			old := BuildDate
			defer func() { BuildDate = old }()

			BuildDate = tt.date

			got, err := BuildNumber()

			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil (number=%d)", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("BuildNumber() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	oldDate, oldCommit, oldBranch := BuildDate, BuildCommit, BuildBranch
	defer func() { BuildDate, BuildCommit, BuildBranch = oldDate, oldCommit, oldBranch }()

	BuildDate, BuildCommit, BuildBranch = "", "", ""
	if got := String(); got != "DUUM dev build" {
		t.Errorf("dev String() = %q", got)
	}
	if info := Info(); !info.Dev {
		t.Error("Info() without BuildDate must be dev")
	}

	BuildDate, BuildCommit, BuildBranch = "2025-12-05", "abc1234", "main"
	got := String()
	if !strings.HasPrefix(got, "DUUM build 1 (2025-12-05)") {
		t.Errorf("String() = %q", got)
	}
	if !strings.Contains(got, "main@abc1234") {
		t.Errorf("String() = %q, want branch@commit", got)
	}
}
