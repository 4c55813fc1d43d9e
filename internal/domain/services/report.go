// Package services holds the domain logic for judging detected versions.
package services

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ochairo/stackcheck/internal/domain/entities"
)

// Status is the verdict for one piece of software
type Status string

// Verdicts
const (
	StatusNotDisclosed    Status = "not_disclosed"
	StatusUpdateAvailable Status = "update_available"
	StatusUpToDate        Status = "up_to_date"
	StatusLatestUnknown   Status = "latest_unknown"
)

// unknownVersion is printed in place of an absent latest version
const unknownVersion = "unknown"

// Assessment is the outcome of comparing a detected version with upstream
type Assessment struct {
	Name         string
	Detected     string
	Latest       string
	LatestBranch string
	Status       Status
}

// Assess compares detected against latest. Empty strings are absent values.
// An unparseable version is an error.
func Assess(name, detected, latest, latestBranch string) (Assessment, error) {
	a := Assessment{
		Name:         name,
		Detected:     detected,
		Latest:       latest,
		LatestBranch: latestBranch,
	}

	switch {
	case detected == "":
		a.Status = StatusNotDisclosed
		return a, nil
	case latest == "":
		if _, err := entities.ParseVersion(detected); err != nil {
			return Assessment{}, fmt.Errorf("%s detected version: %w", name, err)
		}
		a.Status = StatusLatestUnknown
		return a, nil
	}

	cmp, err := entities.CompareVersions(detected, latest)
	if err != nil {
		return Assessment{}, fmt.Errorf("%s version comparison: %w", name, err)
	}

	if cmp < 0 {
		a.Status = StatusUpdateAvailable
	} else {
		a.Status = StatusUpToDate
	}
	return a, nil
}

// Reporter writes human-readable verdicts
type Reporter struct {
	out  io.Writer
	info *color.Color
	ok   *color.Color
	warn *color.Color
}

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer, noColor bool) *Reporter {
	r := &Reporter{
		out:  out,
		info: color.New(color.FgCyan),
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow, color.Bold),
	}

	if noColor {
		r.info.DisableColor()
		r.ok.DisableColor()
		r.warn.DisableColor()
	}

	return r
}

// Report assesses one piece of software and prints the verdict
func (r *Reporter) Report(name, detected, latest, latestBranch string) error {
	a, err := Assess(name, detected, latest, latestBranch)
	if err != nil {
		return err
	}
	return r.Write(a)
}

// Write prints an assessment
func (r *Reporter) Write(a Assessment) error {
	if a.Status == StatusNotDisclosed {
		_, err := r.info.Fprintf(r.out, "[i] %s: Version not disclosed\n", a.Name)
		return err
	}

	latest := a.Latest
	if latest == "" {
		latest = unknownVersion
	}

	lines := []string{fmt.Sprintf("[+] %s Detected Version: %s\n", a.Name, a.Detected)}
	if a.LatestBranch != "" {
		lines = append(lines, fmt.Sprintf("[+] %s Latest Branch Version: %s\n", a.Name, a.LatestBranch))
	}
	lines = append(lines, fmt.Sprintf("[+] %s Latest Version:   %s\n", a.Name, latest))

	for _, line := range lines {
		if _, err := r.info.Fprint(r.out, line); err != nil {
			return err
		}
	}

	var err error
	switch a.Status {
	case StatusUpdateAvailable:
		_, err = r.warn.Fprintf(r.out, "[!] %s UPDATE AVAILABLE\n\n", a.Name)
	case StatusUpToDate:
		_, err = r.ok.Fprintf(r.out, "[✓] %s is up to date\n\n", a.Name)
	case StatusLatestUnknown:
		_, err = r.warn.Fprintf(r.out, "[?] %s latest version unknown, comparison skipped\n\n", a.Name)
	default:
		err = fmt.Errorf("unknown status %q", a.Status)
	}
	return err
}
