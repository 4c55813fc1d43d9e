package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ochairo/stackcheck/internal/domain/entities"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name       string
		detected   string
		latest     string
		wantStatus Status
		wantErr    bool
	}{
		{name: "older detected", detected: "2.4.9", latest: "2.4.58", wantStatus: StatusUpdateAvailable},
		{name: "same version", detected: "2.4.58", latest: "2.4.58", wantStatus: StatusUpToDate},
		{name: "newer than latest", detected: "2.4.59", latest: "2.4.58", wantStatus: StatusUpToDate},
		{name: "padded equal", detected: "8.1", latest: "8.1.0", wantStatus: StatusUpToDate},
		{name: "not disclosed", detected: "", latest: "2.4.58", wantStatus: StatusNotDisclosed},
		{name: "not disclosed skips parsing latest", detected: "", latest: "garbage", wantStatus: StatusNotDisclosed},
		{name: "latest unknown", detected: "2.4.9", latest: "", wantStatus: StatusLatestUnknown},
		{name: "unparseable detected", detected: "2.4.", latest: "2.4.58", wantErr: true},
		{name: "unparseable latest", detected: "2.4.9", latest: "two", wantErr: true},
		{name: "unparseable detected, latest unknown", detected: "x", latest: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Assess("Apache", tt.detected, tt.latest, "")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Assess() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, entities.ErrInvalidVersion) {
					t.Errorf("Assess() error = %v, want ErrInvalidVersion", err)
				}
				return
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestReporter_Report(t *testing.T) {
	tests := []struct {
		name         string
		software     string
		detected     string
		latest       string
		latestBranch string
		want         string
	}{
		{
			name:     "update available",
			software: "Apache",
			detected: "2.4.9",
			latest:   "2.4.58",
			want: "[+] Apache Detected Version: 2.4.9\n" +
				"[+] Apache Latest Version:   2.4.58\n" +
				"[!] Apache UPDATE AVAILABLE\n\n",
		},
		{
			name:     "up to date",
			software: "Apache",
			detected: "2.4.58",
			latest:   "2.4.58",
			want: "[+] Apache Detected Version: 2.4.58\n" +
				"[+] Apache Latest Version:   2.4.58\n" +
				"[✓] Apache is up to date\n\n",
		},
		{
			name:     "not disclosed",
			software: "PHP",
			latest:   "8.4.1",
			want:     "[i] PHP: Version not disclosed\n",
		},
		{
			name:         "branch latest shown",
			software:     "PHP",
			detected:     "8.1.27",
			latest:       "8.4.1",
			latestBranch: "8.1.30",
			want: "[+] PHP Detected Version: 8.1.27\n" +
				"[+] PHP Latest Branch Version: 8.1.30\n" +
				"[+] PHP Latest Version:   8.4.1\n" +
				"[!] PHP UPDATE AVAILABLE\n\n",
		},
		{
			name:     "latest unknown",
			software: "Apache",
			detected: "2.4.58",
			want: "[+] Apache Detected Version: 2.4.58\n" +
				"[+] Apache Latest Version:   unknown\n" +
				"[?] Apache latest version unknown, comparison skipped\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewReporter(&buf, true)

			if err := r.Report(tt.software, tt.detected, tt.latest, tt.latestBranch); err != nil {
				t.Fatalf("Report failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output =\n%q\nwant\n%q", buf.String(), tt.want)
			}
		})
	}
}

func TestReporter_Report_Idempotent(t *testing.T) {
	var first, second bytes.Buffer
	r1 := NewReporter(&first, true)
	r2 := NewReporter(&second, true)

	for i := 0; i < 2; i++ {
		if err := r1.Report("PHP", "8.1.27", "8.4.1", "8.1.30"); err != nil {
			t.Fatalf("Report failed: %v", err)
		}
	}
	if err := r2.Report("PHP", "8.1.27", "8.4.1", "8.1.30"); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	want := second.String() + second.String()
	if first.String() != want {
		t.Errorf("repeated output differs:\n%q\nwant\n%q", first.String(), want)
	}
}

func TestReporter_Report_InvalidVersionWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, true)

	if err := r.Report("Apache", "2.4.9", "latest", ""); err == nil {
		t.Fatal("Expected error for unparseable latest, got nil")
	}
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
}
