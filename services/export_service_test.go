package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/piotronm/tourney-backend-sub001/models"
	"github.com/piotronm/tourney-backend-sub001/storage"
)

type fakeScheduleService struct {
	schedule *DivisionSchedule
	err      error
}

func (f *fakeScheduleService) Generate(ctx context.Context, tournamentID, divisionID int, input GenerateScheduleInput) (*DivisionSchedule, error) {
	return f.schedule, f.err
}

func (f *fakeScheduleService) Get(ctx context.Context, tournamentID, divisionID int) (*DivisionSchedule, error) {
	return f.schedule, f.err
}

type fakeStandingsService struct {
	standings []PoolStandings
	err       error
}

func (f *fakeStandingsService) ByDivision(ctx context.Context, tournamentID, divisionID int) ([]PoolStandings, error) {
	return f.standings, f.err
}

type fakeUploader struct {
	lastKey         string
	lastContentType string
	lastBody        []byte
}

func (f *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.lastKey = key
	f.lastContentType = contentType
	f.lastBody = body
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeUploader) GetPublicURL(key string) string { return "https://cdn.example.com/" + key }

func exportFixture() (*fakeScheduleService, *fakeTeamRepo) {
	teams := newFakeTeamRepo(
		&models.Team{ID: 11, DivisionID: 7, Name: "Hawks"},
		&models.Team{ID: 12, DivisionID: 7, Name: "Owls"},
	)
	schedule := &DivisionSchedule{
		Division: &models.Division{ID: 7, Status: models.DivisionStatusScheduled},
		Pools:    []*models.Pool{{ID: 1, DivisionID: 7, Name: "Pool A"}},
		Matches: []*models.Match{
			{
				ID: 1, PoolID: 1, DivisionID: 7, Round: 1, MatchNumber: 1,
				TeamAID: 11, TeamBID: 12,
				ScoreA: intp(21), ScoreB: intp(15),
				Status: models.MatchStatusCompleted,
			},
		},
	}
	return &fakeScheduleService{schedule: schedule}, teams
}

func TestRenderScheduleCSV(t *testing.T) {
	scheduleSvc, teams := exportFixture()
	svc := NewExportService(scheduleSvc, &fakeStandingsService{}, teams, nil)

	file, err := svc.RenderSchedule(context.Background(), 1, 7, ExportCSV)
	if err != nil {
		t.Fatalf("RenderSchedule() error: %v", err)
	}

	if file.Filename != "schedule-division-7.csv" {
		t.Errorf("filename = %q", file.Filename)
	}
	if file.ContentType != "text/csv" {
		t.Errorf("content type = %q", file.ContentType)
	}

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header plus one match", len(records))
	}
	want := []string{"1", "Pool A", "1", "Hawks", "Owls", "21", "15", "completed", ""}
	for i, cell := range want {
		if records[1][i] != cell {
			t.Errorf("cell %d = %q, want %q", i, records[1][i], cell)
		}
	}
}

func TestRenderScheduleTSV(t *testing.T) {
	scheduleSvc, teams := exportFixture()
	svc := NewExportService(scheduleSvc, &fakeStandingsService{}, teams, nil)

	file, err := svc.RenderSchedule(context.Background(), 1, 7, ExportTSV)
	if err != nil {
		t.Fatalf("RenderSchedule() error: %v", err)
	}
	if !strings.Contains(string(file.Data), "Hawks\tOwls") {
		t.Error("TSV output not tab-separated")
	}
}

func TestRenderScheduleXLSX(t *testing.T) {
	scheduleSvc, teams := exportFixture()
	svc := NewExportService(scheduleSvc, &fakeStandingsService{}, teams, nil)

	file, err := svc.RenderSchedule(context.Background(), 1, 7, ExportXLSX)
	if err != nil {
		t.Fatalf("RenderSchedule() error: %v", err)
	}
	if file.Filename != "schedule-division-7.xlsx" {
		t.Errorf("filename = %q", file.Filename)
	}
	// XLSX files are zip archives.
	if len(file.Data) < 4 || file.Data[0] != 'P' || file.Data[1] != 'K' {
		t.Error("output is not a zip container")
	}
}

func TestRenderStandings(t *testing.T) {
	standings := &fakeStandingsService{standings: []PoolStandings{
		{
			Pool: &models.Pool{ID: 1, Name: "Pool A"},
			Rows: []models.StandingsRow{
				{TeamID: 11, Wins: 1, PointsFor: 21, PointsAgainst: 15, PointDiff: 6, Team: &models.Team{ID: 11, Name: "Hawks"}},
				{TeamID: 12, Losses: 1, PointsFor: 15, PointsAgainst: 21, PointDiff: -6, Team: &models.Team{ID: 12, Name: "Owls"}},
			},
		},
	}}
	svc := NewExportService(&fakeScheduleService{}, standings, newFakeTeamRepo(), nil)

	file, err := svc.RenderStandings(context.Background(), 1, 7, ExportCSV)
	if err != nil {
		t.Fatalf("RenderStandings() error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header plus two rows", len(records))
	}
	if records[1][1] != "1" || records[1][2] != "Hawks" {
		t.Errorf("first row = %v, want rank 1 Hawks", records[1])
	}
	if records[2][1] != "2" || records[2][2] != "Owls" {
		t.Errorf("second row = %v, want rank 2 Owls", records[2])
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	scheduleSvc, teams := exportFixture()
	svc := NewExportService(scheduleSvc, &fakeStandingsService{}, teams, nil)

	if _, err := svc.RenderSchedule(context.Background(), 1, 7, "pdf"); !errors.Is(err, ErrUnknownExportFormat) {
		t.Errorf("error = %v, want ErrUnknownExportFormat", err)
	}
}

func TestPublishSchedule(t *testing.T) {
	scheduleSvc, teams := exportFixture()
	uploader := &fakeUploader{}
	svc := NewExportService(scheduleSvc, &fakeStandingsService{}, teams, uploader)

	result, err := svc.PublishSchedule(context.Background(), 3, 7, ExportCSV)
	if err != nil {
		t.Fatalf("PublishSchedule() error: %v", err)
	}

	if !strings.HasPrefix(uploader.lastKey, "exports/tournament-3/schedule-division-7") {
		t.Errorf("upload key = %q", uploader.lastKey)
	}
	if uploader.lastContentType != "text/csv" {
		t.Errorf("content type = %q", uploader.lastContentType)
	}
	if len(uploader.lastBody) == 0 {
		t.Error("empty body uploaded")
	}
	if result.Location == "" {
		t.Error("no public location returned")
	}
}

func TestPublishScheduleWithoutUploader(t *testing.T) {
	scheduleSvc, teams := exportFixture()
	svc := NewExportService(scheduleSvc, &fakeStandingsService{}, teams, nil)

	if _, err := svc.PublishSchedule(context.Background(), 1, 7, ExportCSV); !errors.Is(err, ErrExportNotConfigured) {
		t.Errorf("error = %v, want ErrExportNotConfigured", err)
	}
}
