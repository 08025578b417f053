// Pitchside - Athlete GPS Load Monitoring and Analytics
// Copyright 2026 J. Maglio (jmaglio)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jmaglio/pitchside

package gpsimport

import (
	"context"
	"errors"
	"testing"

	"github.com/jmaglio/pitchside/internal/config"
	"github.com/jmaglio/pitchside/internal/models"
)

// captureWriter collects written sessions in memory.
type captureWriter struct {
	sessions []*models.ConsolidatedSession
	err      error
}

func (w *captureWriter) WriteSession(_ context.Context, session *models.ConsolidatedSession) error {
	if w.err != nil {
		return w.err
	}
	w.sessions = append(w.sessions, session)
	return nil
}

func testImportConfig() config.ImportConfig {
	return config.ImportConfig{
		Strict:           false,
		MaxFileSizeBytes: 1 << 20,
	}
}

func TestImporterRun(t *testing.T) {
	writer := &captureWriter{}
	imp, err := NewImporter(testImportConfig(), writer)
	if err != nil {
		t.Fatal(err)
	}

	stats, err := imp.Run(context.Background(), []byte(catapultCSV), "ath-1", "coach-1")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if stats.Manufacturer != "catapult" {
		t.Errorf("Manufacturer = %s", stats.Manufacturer)
	}
	if stats.TotalRows != 3 || stats.Records != 3 {
		t.Errorf("rows = %d, records = %d, want 3/3", stats.TotalRows, stats.Records)
	}
	if stats.Sessions != 1 || stats.Written != 1 {
		t.Errorf("sessions = %d, written = %d, want 1/1", stats.Sessions, stats.Written)
	}
	if stats.DryRun {
		t.Error("DryRun = true with a writer attached")
	}
	if stats.EndTime.IsZero() {
		t.Error("EndTime not set")
	}

	if len(writer.sessions) != 1 {
		t.Fatalf("written sessions = %d, want 1", len(writer.sessions))
	}
	session := writer.sessions[0]
	if !session.HasSessionTotal {
		t.Error("HasSessionTotal = false, want true (file has a Session row)")
	}
	if v, _ := session.Metric(models.MetricTotalDistance); v != 10000 {
		t.Errorf("total_distance = %g, want 10000 from the total row", v)
	}
	if len(session.Periods) != 2 {
		t.Errorf("Periods = %d, want 2", len(session.Periods))
	}
	if session.AthleteID != "ath-1" || session.CoachID != "coach-1" {
		t.Errorf("identity = %s/%s", session.AthleteID, session.CoachID)
	}
}

func TestImporterDryRun(t *testing.T) {
	imp, err := NewImporter(testImportConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	stats, err := imp.Run(context.Background(), []byte(catapultCSV), "ath-1", "")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !stats.DryRun {
		t.Error("DryRun = false with nil writer")
	}
	if stats.Sessions != 1 || stats.Written != 0 {
		t.Errorf("sessions = %d, written = %d, want 1/0", stats.Sessions, stats.Written)
	}
}

func TestImporterEmptyFile(t *testing.T) {
	imp, err := NewImporter(testImportConfig(), &captureWriter{})
	if err != nil {
		t.Fatal(err)
	}
	stats, err := imp.Run(context.Background(), nil, "ath-1", "")
	if err != nil {
		t.Fatalf("Run error: %v (empty input is not an error)", err)
	}
	if stats.Sessions != 0 || stats.TotalRows != 0 {
		t.Errorf("stats = %+v, want no rows, no sessions", stats)
	}
}

func TestImporterFileSizeLimit(t *testing.T) {
	cfg := testImportConfig()
	cfg.MaxFileSizeBytes = 8
	imp, err := NewImporter(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := imp.Run(context.Background(), []byte(catapultCSV), "ath-1", ""); err == nil {
		t.Error("Run accepted an oversized file")
	}
}

func TestImporterContextCanceled(t *testing.T) {
	imp, err := NewImporter(testImportConfig(), &captureWriter{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = imp.Run(ctx, []byte(catapultCSV), "ath-1", "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestImporterWriteFailure(t *testing.T) {
	writer := &captureWriter{err: errors.New("store unavailable")}
	imp, err := NewImporter(testImportConfig(), writer)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := imp.Run(context.Background(), []byte(catapultCSV), "ath-1", ""); err == nil {
		t.Error("Run swallowed a write failure")
	}
}

func TestImporterRejectsOverlappingRuns(t *testing.T) {
	imp, err := NewImporter(testImportConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	imp.mu.Lock()
	imp.running = true
	imp.mu.Unlock()

	if _, err := imp.Run(context.Background(), []byte(catapultCSV), "ath-1", ""); err == nil {
		t.Error("Run accepted an overlapping import")
	}
}

func TestImporterMultipleSessionsInOneFile(t *testing.T) {
	data := "Player Name,Date,Session Name,Period Name,Total Distance (m),Velocity Band 4+ Total Distance\n" +
		"Jo,2026-03-14,Morning Run,Session,6000,400\n" +
		"Jo,2026-03-15,Evening Match,1st Half,5200,700\n" +
		"Jo,2026-03-15,Evening Match,2nd Half,4800,500\n"
	writer := &captureWriter{}
	imp, err := NewImporter(testImportConfig(), writer)
	if err != nil {
		t.Fatal(err)
	}
	stats, err := imp.Run(context.Background(), []byte(data), "ath-1", "")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if stats.Sessions != 2 || len(writer.sessions) != 2 {
		t.Fatalf("sessions = %d/%d, want 2", stats.Sessions, len(writer.sessions))
	}

	run, match := writer.sessions[0], writer.sessions[1]
	if !run.HasSessionTotal || len(run.Periods) != 0 {
		t.Errorf("single-row session = %+v, want its own total with no periods", run)
	}
	if match.HasSessionTotal {
		t.Error("two-period session has no total row, HasSessionTotal should be false")
	}
	if v, _ := match.Metric(models.MetricTotalDistance); v != 10000 {
		t.Errorf("summed total_distance = %g, want 10000", v)
	}
	if run.SessionID == match.SessionID {
		t.Error("distinct sessions share an id")
	}
}

func TestImporterSummaryStatus(t *testing.T) {
	imp, err := NewImporter(testImportConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := imp.Summary().Status; got != "pending" {
		t.Errorf("Status before run = %q, want pending", got)
	}
	if _, err := imp.Run(context.Background(), []byte(catapultCSV), "ath-1", ""); err != nil {
		t.Fatal(err)
	}
	summary := imp.Summary()
	if summary.Status != "completed" {
		t.Errorf("Status after run = %q, want completed", summary.Status)
	}
	if !summary.DryRun || summary.Sessions != 1 {
		t.Errorf("summary = %+v", summary)
	}
}
