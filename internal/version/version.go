// Package version нумерует сборки днями от эпохи движка.
// Метаданные вшивает линкер: -ldflags "-X .../internal/version.BuildDate=...".
package version

import (
	"fmt"
	"time"
)

var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

// Эпоха - день первой собранной версии движка.
var epoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// Build - метаданные сборки. Отдается как есть эндпоинтом /version.
type Build struct {
	Number int    `json:"number"`
	Date   string `json:"date,omitempty"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
	// Dev - сборка без вшитой даты (go run, локальный go build).
	Dev bool `json:"dev"`
}

// BuildNumber возвращает номер сборки: число дней от эпохи до BuildDate.
func BuildNumber() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", BuildDate, err)
	}
	if t.Before(epoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", BuildDate)
	}

	// Часы вместо суток: обе точки в UTC, переводы часов не мешают.
	return int(t.Sub(epoch).Hours() / 24), nil
}

// Info собирает метаданные сборки. Безопасно в любой момент:
// сборка без даты помечается dev, а не ошибкой.
func Info() Build {
	n, err := BuildNumber()
	if err != nil {
		return Build{Dev: true, Commit: BuildCommit, Branch: BuildBranch}
	}
	return Build{
		Number: n,
		Date:   BuildDate,
		Commit: BuildCommit,
		Branch: BuildBranch,
	}
}

// String - строка для стартового баннера.
func String() string {
	b := Info()
	if b.Dev {
		return "DUUM dev build"
	}
	s := fmt.Sprintf("DUUM build %d (%s)", b.Number, b.Date)
	if b.Commit != "" {
		branch := b.Branch
		if branch == "" {
			branch = "unknown"
		}
		s += fmt.Sprintf(" %s@%s", branch, b.Commit)
	}
	return s
}
