package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/piotronm/tourney-backend-sub001/repositories"
	"github.com/piotronm/tourney-backend-sub001/storage"
)

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportTSV  ExportFormat = "tsv"
	ExportXLSX ExportFormat = "xlsx"
)

// ExportFile is a fully rendered export ready to stream or publish.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

var scheduleHeader = []string{
	"match_number", "pool", "round", "team_a", "team_b", "score_a", "score_b", "status", "slot",
}

var standingsHeader = []string{
	"pool", "rank", "team", "wins", "losses", "points_for", "points_against", "point_diff",
}

type ExportService interface {
	RenderSchedule(ctx context.Context, tournamentID, divisionID int, format ExportFormat) (*ExportFile, error)
	RenderStandings(ctx context.Context, tournamentID, divisionID int, format ExportFormat) (*ExportFile, error)
	PublishSchedule(ctx context.Context, tournamentID, divisionID int, format ExportFormat) (*storage.UploadResult, error)
}

type exportService struct {
	scheduleService  ScheduleService
	standingsService StandingsService
	teamRepo         repositories.TeamRepository
	uploader         storage.FileUploader
}

func NewExportService(
	scheduleService ScheduleService,
	standingsService StandingsService,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
) ExportService {
	return &exportService{
		scheduleService:  scheduleService,
		standingsService: standingsService,
		teamRepo:         teamRepo,
		uploader:         uploader,
	}
}

func (s *exportService) RenderSchedule(ctx context.Context, tournamentID, divisionID int, format ExportFormat) (*ExportFile, error) {
	if err := validateExportFormat(format); err != nil {
		return nil, err
	}

	schedule, err := s.scheduleService.Get(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for division %d: %w", divisionID, err)
	}
	teamName := make(map[int]string, len(teams))
	for _, t := range teams {
		teamName[t.ID] = t.Name
	}
	poolName := make(map[int]string, len(schedule.Pools))
	for _, p := range schedule.Pools {
		poolName[p.ID] = p.Name
	}

	rows := make([][]string, 0, len(schedule.Matches)+1)
	rows = append(rows, scheduleHeader)
	for _, m := range schedule.Matches {
		rows = append(rows, []string{
			strconv.Itoa(m.MatchNumber),
			poolName[m.PoolID],
			strconv.Itoa(m.Round),
			teamName[m.TeamAID],
			teamName[m.TeamBID],
			optionalInt(m.ScoreA),
			optionalInt(m.ScoreB),
			string(m.Status),
			optionalInt(m.SlotIndex),
		})
	}

	name := fmt.Sprintf("schedule-division-%d", divisionID)
	return renderRows(name, "Schedule", rows, format)
}

func (s *exportService) RenderStandings(ctx context.Context, tournamentID, divisionID int, format ExportFormat) (*ExportFile, error) {
	if err := validateExportFormat(format); err != nil {
		return nil, err
	}

	standings, err := s.standingsService.ByDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, err
	}

	rows := [][]string{standingsHeader}
	for _, ps := range standings {
		for rank, row := range ps.Rows {
			name := strconv.Itoa(row.TeamID)
			if row.Team != nil {
				name = row.Team.Name
			}
			rows = append(rows, []string{
				ps.Pool.Name,
				strconv.Itoa(rank + 1),
				name,
				strconv.Itoa(row.Wins),
				strconv.Itoa(row.Losses),
				strconv.Itoa(row.PointsFor),
				strconv.Itoa(row.PointsAgainst),
				strconv.Itoa(row.PointDiff),
			})
		}
	}

	filename := fmt.Sprintf("standings-division-%d", divisionID)
	return renderRows(filename, "Standings", rows, format)
}

// PublishSchedule renders the schedule and pushes it to object storage
// under a timestamped key.
func (s *exportService) PublishSchedule(ctx context.Context, tournamentID, divisionID int, format ExportFormat) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrExportNotConfigured
	}

	file, err := s.RenderSchedule(ctx, tournamentID, divisionID, format)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/tournament-%d/%s-%d.%s",
		tournamentID, file.Filename, time.Now().Unix(), format)
	result, err := s.uploader.Upload(ctx, key, file.ContentType, bytes.NewReader(file.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to publish schedule export: %w", err)
	}
	return result, nil
}

func validateExportFormat(format ExportFormat) error {
	switch format {
	case ExportCSV, ExportTSV, ExportXLSX:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
}

func renderRows(name, sheet string, rows [][]string, format ExportFormat) (*ExportFile, error) {
	switch format {
	case ExportCSV, ExportTSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if format == ExportTSV {
			w.Comma = '\t'
		}
		if err := w.WriteAll(rows); err != nil {
			return nil, fmt.Errorf("failed to render %s export: %w", format, err)
		}
		contentType := "text/csv"
		if format == ExportTSV {
			contentType = "text/tab-separated-values"
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("%s.%s", name, format),
			ContentType: contentType,
			Data:        buf.Bytes(),
		}, nil

	case ExportXLSX:
		f := excelize.NewFile()
		defer f.Close()

		f.SetSheetName(f.GetSheetName(0), sheet)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return nil, fmt.Errorf("failed to address workbook row %d: %w", i+1, err)
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write workbook row %d: %w", i+1, err)
			}
		}

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return nil, fmt.Errorf("failed to render workbook: %w", err)
		}
		return &ExportFile{
			Filename:    name + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        buf.Bytes(),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
