package attendancehttp

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hnaspl/woltk-calendar/app/httpapi"
	attendanceservice "github.com/hnaspl/woltk-calendar/app/modules/attendance/application"
	attendancedomain "github.com/hnaspl/woltk-calendar/app/modules/attendance/domain"
	guildservice "github.com/hnaspl/woltk-calendar/app/modules/guild/application"
	guilddomain "github.com/hnaspl/woltk-calendar/app/modules/guild/domain"
	"github.com/hnaspl/woltk-calendar/app/shared/results"
	sharedtypes "github.com/hnaspl/woltk-calendar/app/shared/types"
)

const (
	testEventID = sharedtypes.EventID(100)
	testGuildID = sharedtypes.GuildID(7)
	testUserID  = sharedtypes.UserID(42)
)

// FakeAttendanceService returns programmed results per operation.
type FakeAttendanceService struct {
	trace []string

	RecordResult  results.OperationResult
	ListResult    results.OperationResult
	SummaryResult results.OperationResult
	ChartResult   results.OperationResult
	ExportResult  results.OperationResult
	Err           error

	LastRecord attendancedomain.Record
}

func (f *FakeAttendanceService) RecordOutcome(ctx context.Context, record attendancedomain.Record) (results.OperationResult, error) {
	f.trace = append(f.trace, "RecordOutcome")
	f.LastRecord = record
	return f.RecordResult, f.Err
}

func (f *FakeAttendanceService) GetEventAttendance(ctx context.Context, eventID sharedtypes.EventID) (results.OperationResult, error) {
	f.trace = append(f.trace, "GetEventAttendance")
	return f.ListResult, f.Err
}

func (f *FakeAttendanceService) GetGuildSummary(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	f.trace = append(f.trace, "GetGuildSummary")
	return f.SummaryResult, f.Err
}

func (f *FakeAttendanceService) RenderRateChart(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	f.trace = append(f.trace, "RenderRateChart")
	return f.ChartResult, f.Err
}

func (f *FakeAttendanceService) ExportSummary(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	f.trace = append(f.trace, "ExportSummary")
	return f.ExportResult, f.Err
}

var _ attendanceservice.Service = (*FakeAttendanceService)(nil)

// FakeGuildService answers Authorize with a programmed outcome.
type FakeGuildService struct {
	Denied bool
}

func (f *FakeGuildService) Authorize(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, capability sharedtypes.Capability) (results.OperationResult, error) {
	if f.Denied {
		return results.FailureResult(guildservice.ErrPermissionDenied), nil
	}
	return results.SuccessResult(&guildservice.Actor{}), nil
}

func (f *FakeGuildService) GetGuild(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

func (f *FakeGuildService) ListMembers(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

func (f *FakeGuildService) ListCharacters(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

func (f *FakeGuildService) CreateCharacter(ctx context.Context, character *guilddomain.Character) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

var _ guildservice.Service = (*FakeGuildService)(nil)

type harness struct {
	router  chi.Router
	service *FakeAttendanceService
	guilds  *FakeGuildService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		router:  chi.NewRouter(),
		service: &FakeAttendanceService{},
		guilds:  &FakeGuildService{},
	}
	api := NewAPI(h.service, h.guilds, slog.New(slog.DiscardHandler))
	api.Register(h.router)
	return h
}

func (h *harness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(httpapi.WithCaller(req.Context(), httpapi.Caller{
		UserID:  testUserID,
		GuildID: testGuildID,
		Role:    "officer",
	}))
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body httpapi.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestRecordOutcomeStampsCaller(t *testing.T) {
	h := newHarness(t)
	h.service.RecordResult = results.SuccessResult(&attendancedomain.Record{
		ID:          1,
		EventID:     testEventID,
		GuildID:     testGuildID,
		CharacterID: 11,
		Outcome:     attendancedomain.OutcomeAttended,
	})

	rec := h.do(t, http.MethodPut, "/events/100/attendance", map[string]any{
		"character_id": 11,
		"outcome":      "attended",
		"note":         "on time",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testUserID, h.service.LastRecord.RecordedBy)
	assert.Equal(t, testEventID, h.service.LastRecord.EventID)
	assert.Equal(t, attendancedomain.OutcomeAttended, h.service.LastRecord.Outcome)
}

func TestRecordOutcomeForbiddenWithoutCapability(t *testing.T) {
	h := newHarness(t)
	h.guilds.Denied = true

	rec := h.do(t, http.MethodPut, "/events/100/attendance", map[string]any{
		"character_id": 11,
		"outcome":      "attended",
	})

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", errorCode(t, rec))
	assert.Empty(t, h.service.trace)
}

func TestRecordOutcomeOnScheduledEventIsConflict(t *testing.T) {
	h := newHarness(t)
	h.service.RecordResult = results.FailureResult(attendanceservice.ErrEventNotFinished)

	rec := h.do(t, http.MethodPut, "/events/100/attendance", map[string]any{
		"character_id": 11,
		"outcome":      "attended",
	})

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "event_frozen", errorCode(t, rec))
}

func TestRecordOutcomeUnknownEventIs404(t *testing.T) {
	h := newHarness(t)
	h.service.RecordResult = results.FailureResult(attendanceservice.ErrEventNotFound)

	rec := h.do(t, http.MethodPut, "/events/100/attendance", map[string]any{
		"character_id": 11,
		"outcome":      "attended",
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestListEventAttendance(t *testing.T) {
	h := newHarness(t)
	h.service.ListResult = results.SuccessResult([]attendancedomain.Record{
		{ID: 1, EventID: testEventID, CharacterID: 11, Outcome: attendancedomain.OutcomeLate},
	})

	rec := h.do(t, http.MethodGet, "/events/100/attendance", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var records []attendancedomain.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, attendancedomain.OutcomeLate, records[0].Outcome)
}

func TestSummaryUsesCallerGuild(t *testing.T) {
	h := newHarness(t)
	h.service.SummaryResult = results.SuccessResult([]attendancedomain.CharacterSummary{
		{CharacterID: 11, CharacterName: "Alinya", Attended: 9, NoShow: 1},
	})

	rec := h.do(t, http.MethodGet, "/attendance/summary", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"GetGuildSummary"}, h.service.trace)
}

func TestChartServesPNG(t *testing.T) {
	h := newHarness(t)
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n'}
	h.service.ChartResult = results.SuccessResult(png)

	rec := h.do(t, http.MethodGet, "/attendance/summary/chart.png", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestExportServesWorkbook(t *testing.T) {
	h := newHarness(t)
	data := buildTestWorkbook(t)
	h.service.ExportResult = results.SuccessResult(data)

	rec := h.do(t, http.MethodGet, "/attendance/summary/export.xlsx", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance.xlsx")

	workbook, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer workbook.Close()
}

func buildTestWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Character"))
	buffer, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buffer.Bytes()
}

func TestInvalidEventIDIsBadRequest(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPut, "/events/zero/attendance", map[string]any{
		"character_id": 11,
		"outcome":      "attended",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", errorCode(t, rec))
}
