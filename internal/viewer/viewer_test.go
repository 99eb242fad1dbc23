// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viewer

import (
	"errors"
	"strings"
	"testing"
)

// mockExecutor records started commands.
type mockExecutor struct {
	availableBins map[string]bool
	startErr      error
	started       []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Start(name string, args ...string) error {
	m.started = append(m.started, name+" "+strings.Join(args, " "))
	return m.startErr
}

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		name   string
		reader string
		goos   string
		want   string
	}{
		{"linux system", "", "linux", "xdg-open /c/Smith23.pdf"},
		{"linux zathura", "zathura", "linux", "zathura /c/Smith23.pdf"},
		{"linux custom program", "mupdf", "linux", "mupdf /c/Smith23.pdf"},
		{"darwin system", "system", "darwin", "open /c/Smith23.pdf"},
		{"darwin skim", "skim", "darwin", "open -a Skim /c/Smith23.pdf"},
		{"darwin preview", "preview", "darwin", "open -a Preview /c/Smith23.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin := strings.Fields(tt.want)[0]
			m := &mockExecutor{availableBins: map[string]bool{bin: true}}
			o := newOpener(tt.reader, tt.goos, m)

			if err := o.Open("/c/Smith23.pdf"); err != nil {
				t.Fatalf("Open: %v", err)
			}
			if len(m.started) != 1 || m.started[0] != tt.want {
				t.Errorf("started = %v, want [%s]", m.started, tt.want)
			}
		})
	}
}

func TestOpenMissingViewer(t *testing.T) {
	m := &mockExecutor{}
	o := newOpener("zathura", "linux", m)

	err := o.Open("/c/Smith23.pdf")
	if err == nil || !strings.Contains(err.Error(), "viewer zathura not found") {
		t.Errorf("err = %v, want viewer-not-found error", err)
	}
	if len(m.started) != 0 {
		t.Errorf("nothing should start, got %v", m.started)
	}
}

func TestOpenStartFailure(t *testing.T) {
	m := &mockExecutor{
		availableBins: map[string]bool{"xdg-open": true},
		startErr:      errors.New("exec format error"),
	}
	err := newOpener("", "linux", m).Open("/c/x.pdf")
	if err == nil || !strings.Contains(err.Error(), "starting xdg-open") {
		t.Errorf("err = %v, want start error", err)
	}
}

func TestOpenUnsupportedPlatform(t *testing.T) {
	err := newOpener("", "plan9", &mockExecutor{}).Open("/c/x.pdf")
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("err = %v, want ErrUnsupportedPlatform", err)
	}
}
