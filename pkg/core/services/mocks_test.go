package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/intern-rota/pkg/clients/sheetsclient"
	"github.com/jakechorley/intern-rota/pkg/db"
)

// mockRunStore implements every store interface the services use
type mockRunStore struct {
	runs        []db.Run
	assignments map[string][]db.Assignment
	publishedAt map[string]time.Time

	insertErr error
	getErr    error
	inserted  int
}

func (m *mockRunStore) InsertRun(ctx context.Context, run *db.Run, assignments []db.Assignment) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted++
	m.runs = append(m.runs, *run)
	if m.assignments == nil {
		m.assignments = make(map[string][]db.Assignment)
	}
	m.assignments[run.ID] = assignments
	return nil
}

func (m *mockRunStore) GetRuns(ctx context.Context) ([]db.Run, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return append([]db.Run(nil), m.runs...), nil
}

func (m *mockRunStore) GetAssignments(ctx context.Context, runID string) ([]db.Assignment, error) {
	return m.assignments[runID], nil
}

func (m *mockRunStore) SetRunPublishedAt(ctx context.Context, runID string, publishedAt time.Time) error {
	for _, r := range m.runs {
		if r.ID == runID {
			if m.publishedAt == nil {
				m.publishedAt = make(map[string]time.Time)
			}
			m.publishedAt[runID] = publishedAt
			return nil
		}
	}
	return fmt.Errorf("run not found: %s", runID)
}

type mockPublisher struct {
	spreadsheetID string
	published     *sheetsclient.PublishedRota
	err           error
}

func (m *mockPublisher) PublishRota(spreadsheetID string, rota *sheetsclient.PublishedRota) error {
	if m.err != nil {
		return m.err
	}
	m.spreadsheetID = spreadsheetID
	m.published = rota
	return nil
}

type sentEmail struct {
	to      string
	subject string
	body    string
}

type mockNotifier struct {
	sent   []sentEmail
	failTo map[string]bool
}

func (m *mockNotifier) SendEmail(to, subject, body string) error {
	if m.failTo[to] {
		return fmt.Errorf("mailbox unavailable")
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}
