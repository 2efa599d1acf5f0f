package github

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/dnaeon/go-vcr.v2/cassette"
	vcr "gopkg.in/dnaeon/go-vcr.v2/recorder"
)

// vcrModeEnv switches the recorder to recording when set to "record".
const vcrModeEnv = "GITFLOW_VCR_MODE"

// newRecorder creates a VCR recorder for GitHub API interactions.
//
// In replay mode (default) it serves testdata/fixtures/<name>.yaml. With
// GITFLOW_VCR_MODE=record it records real traffic, which requires a real
// token:
//
//	GITFLOW_VCR_MODE=record GITHUB_TOKEN=your_token go test ./pkg/github/...
func newRecorder(t *testing.T, name string) *Recorder {
	t.Helper()

	mode := vcr.ModeReplaying
	if os.Getenv(vcrModeEnv) == "record" {
		mode = vcr.ModeRecording
	}

	// go-vcr adds the ".yaml" extension itself.
	fixturePath := filepath.Join("testdata", "fixtures", name)

	r, err := vcr.NewAsMode(fixturePath, mode, nil)
	if err != nil {
		if errors.Is(err, cassette.ErrCassetteNotFound) {
			t.Skipf("fixture %q not found. To record it, run: %s=record GITHUB_TOKEN=your_token go test -v ./pkg/github/ -run %s", fixturePath, vcrModeEnv, t.Name())
		}
		t.Fatalf("failed to create recorder: %v", err)
	}

	// Never persist credentials
	r.AddSaveFilter(func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "Authorization")
		return nil
	})

	rec := &Recorder{recorder: r, mode: mode}
	t.Cleanup(func() {
		if err := rec.Stop(); err != nil {
			t.Errorf("stop recorder: %v", err)
		}
	})
	return rec
}

// Recorder wraps a go-vcr recorder.
type Recorder struct {
	recorder *vcr.Recorder
	mode     vcr.Mode
}

// Stop stops the recorder
func (r *Recorder) Stop() error {
	if err := r.recorder.Stop(); err != nil {
		return fmt.Errorf("failed to stop recorder: %w", err)
	}
	return nil
}

// IsRecording returns true if we're in record mode
func (r *Recorder) IsRecording() bool {
	return r.mode == vcr.ModeRecording
}

// HTTPClient returns an HTTP client configured to use the recorder
func (r *Recorder) HTTPClient() *http.Client {
	return &http.Client{Transport: r.recorder}
}

// recordedClient builds a Client whose traffic goes through a recorder.
func recordedClient(t *testing.T, fixture string) *Client {
	t.Helper()

	rec := newRecorder(t, fixture)

	token := "test-token"
	if rec.IsRecording() {
		token = os.Getenv("GITHUB_TOKEN")
		if token == "" {
			t.Fatal("GITHUB_TOKEN environment variable must be set when recording fixtures")
		}
	}

	return NewClient(token, WithHTTPClient(rec.HTTPClient()))
}
