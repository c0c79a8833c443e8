/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"

	"github.com/toothbrush/readme-migrate/migrate"
	"github.com/toothbrush/readme-migrate/readme"
)

// session is everything a command needs to talk to ReadMe, plus what has to be flushed when the
// command is done.
type session struct {
	Migrator *migrate.Migrator
	Registry *prometheus.Registry

	recorder    *recorder.Recorder
	metricsFile string
}

// migrateConfig snapshots the resolved flags.  Nothing below cmd looks at flags or the
// environment.
func migrateConfig() *migrate.Config {
	return &migrate.Config{
		APIURL: APIURL,
		Current: migrate.Credentials{
			APIKey:  CurrentAPIKey,
			Version: CurrentVersion,
		},
		New: migrate.Credentials{
			APIKey:  NewAPIKey,
			Version: NewVersion,
		},
		DryRun:  DryRun,
		Workers: Workers,
	}
}

func newSession(cfg *migrate.Config) (*session, error) {
	s := &session{Registry: prometheus.NewRegistry()}

	if MetricsFile != "" {
		metricsFile, err := homedir.Expand(MetricsFile)
		if err != nil {
			return nil, fmt.Errorf("readme-migrate: unable to expand homedir: %w", err)
		}
		s.metricsFile = metricsFile
	}

	client := &http.Client{}
	if WithVCR {
		r, err := newRecorder(defaultCassette, http.DefaultTransport)
		if err != nil {
			return nil, err
		}
		s.recorder = r
		client = r.GetDefaultClient()
	}

	metrics := migrate.NewMetrics(s.Registry)

	m, err := migrate.NewMigrator(cfg, metrics.InstrumentClient(client), Logger)
	if err != nil {
		return nil, errors.Join(err, s.Close())
	}
	m.Metrics = metrics

	// Don't scribble progress bars into log files or CI output.
	if isTerminal(os.Stderr) {
		m.Progress = os.Stderr
	}

	s.Migrator = m
	return s, nil
}

const (
	defaultCassette = "fixtures/readme-migrate"

	// Recorded in place of Authorization, so replays still tell API keys apart.
	keyFingerprintHeader = "X-Key-Fingerprint"
)

// newRecorder caches reads only.  Writes always go to ReadMe and are never recorded, so a replayed
// "success" can't hide a page that was never updated.
func newRecorder(cassetteName string, transport http.RoundTripper) (*recorder.Recorder, error) {
	opts := &recorder.Options{
		CassetteName:       cassetteName,
		Mode:               recorder.ModeReplayWithNewEpisodes,
		SkipRequestLatency: true,
		RealTransport:      transport,
	}
	r, err := recorder.NewWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("readme-migrate: couldn't set up go-vcr recording: %w", err)
	}

	// Swap the Authorization header for a fingerprint of the key before anything hits disk
	hook := func(i *cassette.Interaction) error {
		if i.Request.Headers == nil {
			i.Request.Headers = http.Header{}
		}
		i.Request.Headers.Set(keyFingerprintHeader, keyFingerprint(i.Request.Headers.Get("Authorization")))
		delete(i.Request.Headers, "Authorization")
		return nil
	}
	r.AddHook(hook, recorder.AfterCaptureHook)
	r.AddPassthrough(func(req *http.Request) bool {
		return req.Method != http.MethodGet
	})
	r.SetMatcher(matchRecorded)
	r.SetReplayableInteractions(true)

	return r, nil
}

// matchRecorded only replays an interaction for the same key, version, URL and body.
func matchRecorded(req *http.Request, recorded cassette.Request) bool {
	if req.Method != recorded.Method || req.URL.String() != recorded.URL {
		return false
	}
	if req.Header.Get(readme.VersionHeader) != recorded.Headers.Get(readme.VersionHeader) {
		return false
	}
	if keyFingerprint(req.Header.Get("Authorization")) != recorded.Headers.Get(keyFingerprintHeader) {
		return false
	}

	body := ""
	if req.Body != nil && req.Body != http.NoBody {
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return false
		}
		req.Body = io.NopCloser(bytes.NewReader(raw))
		body = string(raw)
	}
	return body == recorded.Body
}

func keyFingerprint(authorization string) string {
	if authorization == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(authorization))
	return hex.EncodeToString(sum[:8])
}

// Close stops the recorder and writes out the metrics file, if either was asked for.
func (s *session) Close() error {
	var errs []error

	if s.recorder != nil {
		if err := s.recorder.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("readme-migrate: couldn't save go-vcr cassette: %w", err))
		}
	}

	if s.metricsFile != "" {
		if err := prometheus.WriteToTextfile(s.metricsFile, s.Registry); err != nil {
			errs = append(errs, fmt.Errorf("readme-migrate: couldn't write metrics to %s: %w", s.metricsFile, err))
		}
	}

	return errors.Join(errs...)
}
