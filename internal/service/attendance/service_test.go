package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doelski/mabinihub-backend-go/internal/domain/attendance"
	"github.com/doelski/mabinihub-backend-go/internal/domain/employee"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/shift"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/validator"
)

// ========================================
// IN-MEMORY FAKES
// ========================================

func recordKey(employeeCode string, date time.Time) string {
	return employeeCode + "|" + date.Format("2006-01-02")
}

type fakeAttendanceRepo struct {
	records     map[string]*attendance.Record
	insertErr   error
	nextID      int
	insertCalls int
	updateCalls int
	repairCount int64
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]*attendance.Record{}}
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeCode string, date time.Time) (*attendance.Record, error) {
	rec, ok := f.records[recordKey(employeeCode, date)]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeAttendanceRepo) Insert(_ context.Context, record attendance.Record) (attendance.Record, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return attendance.Record{}, f.insertErr
	}
	key := recordKey(record.EmployeeCode, record.Date)
	if _, exists := f.records[key]; exists {
		return attendance.Record{}, attendance.ErrDuplicateRecord
	}
	f.nextID++
	record.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.records[key] = &record
	return record, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, employeeCode string, date time.Time, update attendance.RecordUpdate) error {
	f.updateCalls++
	rec, ok := f.records[recordKey(employeeCode, date)]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	rec.TimeIn = update.TimeIn
	rec.TimeOut = update.TimeOut
	rec.TimeInStatus = update.TimeInStatus
	rec.TimeOutStatus = update.TimeOutStatus
	rec.Status = update.Status
	return nil
}

func markableAbsent(rec *attendance.Record) bool {
	if rec.TimeIn != nil {
		return false
	}
	return rec.TimeInStatus == nil || string(*rec.TimeInStatus) != attendance.StatusAbsent
}

func (f *fakeAttendanceRepo) MarkAbsent(_ context.Context, employeeCode string, date time.Time) error {
	rec, ok := f.records[recordKey(employeeCode, date)]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	if markableAbsent(rec) {
		absentIn := shift.TimeInAbsent
		status := attendance.StatusAbsent
		rec.TimeInStatus = &absentIn
		rec.Status = &status
	}
	return nil
}

func (f *fakeAttendanceRepo) BulkMarkAbsent(_ context.Context, date time.Time) (int64, error) {
	var marked int64
	day := date.Format("2006-01-02")
	for _, rec := range f.records {
		if rec.Date.Format("2006-01-02") != day || !markableAbsent(rec) {
			continue
		}
		absentIn := shift.TimeInAbsent
		status := attendance.StatusAbsent
		rec.TimeInStatus = &absentIn
		rec.Status = &status
		marked++
	}
	return marked, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, employeeCode string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.EmployeeCode == employeeCode {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) RepairNumericEmployeeCodes(_ context.Context) (int64, error) {
	return f.repairCount, nil
}

type fakeDirectory struct {
	byID    map[int64]string
	codes   map[string]bool
	active  []employee.Employee
	listErr error
	dirErr  error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{byID: map[int64]string{}, codes: map[string]bool{}}
}

func (f *fakeDirectory) FindCodeByInternalID(_ context.Context, id int64) (string, error) {
	if f.dirErr != nil {
		return "", f.dirErr
	}
	code, ok := f.byID[id]
	if !ok {
		return "", employee.ErrEmployeeNotFound
	}
	return code, nil
}

func (f *fakeDirectory) CodeExists(_ context.Context, employeeCode string) (bool, error) {
	if f.dirErr != nil {
		return false, f.dirErr
	}
	return f.codes[employeeCode], nil
}

func (f *fakeDirectory) ListActive(_ context.Context) ([]employee.Employee, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.active, nil
}

func (f *fakeDirectory) GetByUserID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *fakeAttendanceRepo, dir *fakeDirectory) *AttendanceServiceImpl {
	return NewAttendanceService(repo, dir, fakeTxManager{}, shift.DefaultSchedule(), time.UTC)
}

func atClock(date time.Time, hour, minute int) *time.Time {
	t := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
	return &t
}

// monday is a plain working day in every scenario below.
var monday = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

// ========================================
// IMPORT
// ========================================

func TestImportInsertsAndClassifies(t *testing.T) {
	repo := newFakeAttendanceRepo()
	dir := newFakeDirectory()
	dir.byID[1001] = "EMP-1001"
	dir.codes["EMP-1001"] = true
	svc := newTestService(repo, dir)

	csv := "Emp ID,Date,Time In,Time Out\n1001,2025-03-03,07:45,17:10\n"
	summary, err := svc.Import(context.Background(), attendance.ImportRequest{
		Filename: "march.csv",
		Data:     []byte(csv),
		Actor:    "hr@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Errors)

	rec := repo.records[recordKey("EMP-1001", monday)]
	require.NotNil(t, rec, "record stored under resolved code, not raw token")
	require.NotNil(t, rec.TimeIn)
	assert.Equal(t, "07:45", rec.TimeIn.Format("15:04"))
	require.NotNil(t, rec.TimeInStatus)
	assert.Equal(t, shift.TimeInPresent, *rec.TimeInStatus)
	require.NotNil(t, rec.TimeOutStatus)
	assert.Equal(t, shift.TimeOutOut, *rec.TimeOutStatus)
}

func TestImportTwiceUpdatesInsteadOfDuplicating(t *testing.T) {
	repo := newFakeAttendanceRepo()
	dir := newFakeDirectory()
	dir.codes["EMP-7"] = true
	svc := newTestService(repo, dir)

	csv := "employee_code,date,time_in,time_out\nEMP-7,2025-03-03,08:30,18:15\n"
	req := attendance.ImportRequest{Filename: "again.csv", Data: []byte(csv)}

	first, err := svc.Import(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Import(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Inserted)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 1, second.Updated)
	assert.Len(t, repo.records, 1)

	rec := repo.records[recordKey("EMP-7", monday)]
	require.NotNil(t, rec.TimeInStatus)
	assert.Equal(t, shift.TimeInLate, *rec.TimeInStatus)
	require.NotNil(t, rec.TimeOutStatus)
	assert.Equal(t, shift.TimeOutOvertime, *rec.TimeOutStatus)
}

func TestImportClearsAbsentMarkWhenTimeInArrives(t *testing.T) {
	repo := newFakeAttendanceRepo()
	dir := newFakeDirectory()
	dir.codes["EMP-9"] = true
	svc := newTestService(repo, dir)

	absentIn := shift.TimeInAbsent
	status := attendance.StatusAbsent
	repo.records[recordKey("EMP-9", monday)] = &attendance.Record{
		ID:           "rec-9",
		EmployeeCode: "EMP-9",
		Date:         monday,
		TimeInStatus: &absentIn,
		Status:       &status,
	}

	csv := "employee_code,date,time_in\nEMP-9,2025-03-03,07:50\n"
	summary, err := svc.Import(context.Background(), attendance.ImportRequest{
		Filename: "late-upload.csv",
		Data:     []byte(csv),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	rec := repo.records[recordKey("EMP-9", monday)]
	require.NotNil(t, rec.TimeInStatus)
	assert.Equal(t, shift.TimeInPresent, *rec.TimeInStatus)
	assert.Nil(t, rec.Status, "absence mark must not survive a real clock-in")
}

func TestImportSkipsRowsWithoutIdentifierOrDate(t *testing.T) {
	repo := newFakeAttendanceRepo()
	dir := newFakeDirectory()
	dir.codes["EMP-1"] = true
	svc := newTestService(repo, dir)

	csv := "worker,when,time_in\nEMP-1,2025-03-03,08:00\nEMP-1,2025-03-04,08:00\n"
	summary, err := svc.Import(context.Background(), attendance.ImportRequest{
		Filename: "wrong-headers.csv",
		Data:     []byte(csv),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 0, summary.Inserted)
	assert.Empty(t, repo.records)
}

func TestImportSkipsUnparseableDates(t *testing.T) {
	repo := newFakeAttendanceRepo()
	dir := newFakeDirectory()
	dir.codes["EMP-1"] = true
	svc := newTestService(repo, dir)

	csv := "employee_code,date,time_in\nEMP-1,sometime in march,08:00\nEMP-1,2025-03-03,08:00\n"
	summary, err := svc.Import(context.Background(), attendance.ImportRequest{
		Filename: "dates.csv",
		Data:     []byte(csv),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Inserted)
}

func TestImportUnparseableTimeBecomesMissingValue(t *testing.T) {
	repo := newFakeAttendanceRepo()
	dir := newFakeDirectory()
	dir.codes["EMP-1"] = true
	svc := newTestService(repo, dir)

	csv := "employee_code,date,time_in,time_out\nEMP-1,2025-03-03,noonish,17:00\n"
	summary, err := svc.Import(context.Background(), attendance.ImportRequest{
		Filename: "times.csv",
		Data:     []byte(csv),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)

	rec := repo.records[recordKey("EMP-1", monday)]
	assert.Nil(t, rec.TimeIn)
	require.NotNil(t, rec.TimeInStatus)
	assert.Equal(t, shift.TimeInAbsent, *rec.TimeInStatus)
	require.NotNil(t, rec.TimeOutStatus)
	assert.Equal(t, shift.TimeOutOut, *rec.TimeOutStatus)
}

func TestImportCapsErrorSamples(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.insertErr = errors.New("boom")
	dir := newFakeDirectory()
	dir.codes["EMP-1"] = true
	svc := newTestService(repo, dir)

	csv := "employee_code,date,time_in\n"
	for day := 3; day < 10; day++ {
		csv += fmt.Sprintf("EMP-1,2025-03-%02d,08:00\n", day)
	}
	summary, err := svc.Import(context.Background(), attendance.ImportRequest{
		Filename: "failing.csv",
		Data:     []byte(csv),
	})

	require.NoError(t, err, "row failures never abort the batch")
	assert.Equal(t, 7, summary.Errors)
	require.Len(t, summary.ErrorSamples, attendance.MaxErrorSamples)
	assert.Equal(t, "Row 2: boom", summary.ErrorSamples[0])
	assert.Equal(t, "Row 6: boom", summary.ErrorSamples[4])
}

func TestImportRejectsUnknownExtension(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), newFakeDirectory())

	_, err := svc.Import(context.Background(), attendance.ImportRequest{
		Filename: "report.pdf",
		Data:     []byte("whatever"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestImportHeaderOnlyFileIsEmpty(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), newFakeDirectory())

	_, err := svc.Import(context.Background(), attendance.ImportRequest{
		Filename: "empty.csv",
		Data:     []byte("employee_code,date,time_in\n"),
	})

	require.ErrorIs(t, err, attendance.ErrEmptyImport)
}

// ========================================
// DAILY GENERATION
// ========================================

func TestGenerateDailyCreatesPlaceholders(t *testing.T) {
	repo := newFakeAttendanceRepo()
	dir := newFakeDirectory()
	dir.active = []employee.Employee{
		{ID: 1, EmployeeCode: "EMP-1", Status: employee.StatusApproved},
		{ID: 2, EmployeeCode: "EMP-2", Status: employee.StatusApproved},
	}
	svc := newTestService(repo, dir)
	svc.now = func() time.Time { return monday.Add(9 * time.Hour) }

	summary, err := svc.GenerateDaily(context.Background(), monday)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalEmployees)
	assert.Equal(t, 2, summary.RecordsCreated)
	assert.Equal(t, 0, summary.MarkedAbsent)
	assert.False(t, summary.IsPastCutoff)
	assert.Empty(t, summary.Errors)

	rec := repo.records[recordKey("EMP-1", monday)]
	require.NotNil(t, rec)
	assert.Nil(t, rec.TimeIn)
	assert.Nil(t, rec.TimeInStatus)
}

func TestGenerateDailyIsIdempotent(t *testing.T) {
	repo := newFakeAttendanceRepo()
	dir := newFakeDirectory()
	dir.active = []employee.Employee{
		{ID: 1, EmployeeCode: "EMP-1", Status: employee.StatusApproved},
	}
	svc := newTestService(repo, dir)
	svc.now = func() time.Time { return monday.Add(9 * time.Hour) }

	first, err := svc.GenerateDaily(context.Background(), monday)
	require.NoError(t, err)
	second, err := svc.GenerateDaily(context.Background(), monday)
	require.NoError(t, err)

	assert.Equal(t, 1, first.RecordsCreated)
	assert.Equal(t, 0, second.RecordsCreated)
	assert.Equal(t, 1, second.RecordsExisting)
	assert.Len(t, repo.records, 1)
}

func TestGenerateDailyMarksAbsentPastCutoff(t *testing.T) {
	repo := newFakeAttendanceRepo()
	dir := newFakeDirectory()
	dir.active = []employee.Employee{
		{ID: 1, EmployeeCode: "EMP-IN", Status: employee.StatusApproved},
		{ID: 2, EmployeeCode: "EMP-NOSHOW", Status: employee.StatusApproved},
	}
	present := shift.TimeInPresent
	repo.records[recordKey("EMP-IN", monday)] = &attendance.Record{
		ID:           "rec-1",
		EmployeeCode: "EMP-IN",
		Date:         monday,
		TimeIn:       atClock(monday, 7, 55),
		TimeInStatus: &present,
	}
	repo.records[recordKey("EMP-NOSHOW", monday)] = &attendance.Record{
		ID:           "rec-2",
		EmployeeCode: "EMP-NOSHOW",
		Date:         monday,
	}
	svc := newTestService(repo, dir)
	svc.now = func() time.Time { return monday.Add(18 * time.Hour) }

	summary, err := svc.GenerateDaily(context.Background(), monday)

	require.NoError(t, err)
	assert.True(t, summary.IsPastCutoff)

	noShow := repo.records[recordKey("EMP-NOSHOW", monday)]
	require.NotNil(t, noShow.TimeInStatus)
	assert.Equal(t, shift.TimeInAbsent, *noShow.TimeInStatus)

	clockedIn := repo.records[recordKey("EMP-IN", monday)]
	require.NotNil(t, clockedIn.TimeIn, "a real clock-in is never overwritten")
	assert.Equal(t, shift.TimeInPresent, *clockedIn.TimeInStatus)
}

func TestGenerateDailyInsertRaceCountsAsExisting(t *testing.T) {
	repo := newFakeAttendanceRepo()
	// Simulates a concurrent run inserting between our read and our
	// write: the read sees nothing, the insert hits the unique key.
	repo.insertErr = attendance.ErrDuplicateRecord
	dir := newFakeDirectory()
	dir.active = []employee.Employee{
		{ID: 1, EmployeeCode: "EMP-1", Status: employee.StatusApproved},
	}
	svc := newTestService(repo, dir)
	svc.now = func() time.Time { return monday.Add(9 * time.Hour) }

	summary, err := svc.GenerateDaily(context.Background(), monday)

	require.NoError(t, err)
	assert.Equal(t, 0, summary.RecordsCreated)
	assert.Equal(t, 1, summary.RecordsExisting)
	assert.Empty(t, summary.Errors, "losing the insert race is not an error")
}

func TestGenerateDailyAbsentMarkSticksAcrossRuns(t *testing.T) {
	repo := newFakeAttendanceRepo()
	dir := newFakeDirectory()
	dir.active = []employee.Employee{
		{ID: 1, EmployeeCode: "EMP-1", Status: employee.StatusApproved},
	}
	svc := newTestService(repo, dir)
	svc.now = func() time.Time { return monday.Add(18 * time.Hour) }

	first, err := svc.GenerateDaily(context.Background(), monday)
	require.NoError(t, err)
	second, err := svc.GenerateDaily(context.Background(), monday)
	require.NoError(t, err)

	assert.Equal(t, 1, first.MarkedAbsent)
	assert.Equal(t, 0, second.MarkedAbsent, "already-Absent rows are not re-marked")
}

func TestGenerateDailyRestDayWritesNothing(t *testing.T) {
	repo := newFakeAttendanceRepo()
	dir := newFakeDirectory()
	dir.active = []employee.Employee{
		{ID: 1, EmployeeCode: "EMP-1", Status: employee.StatusApproved},
	}
	svc := newTestService(repo, dir)
	saturday := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	summary, err := svc.GenerateDaily(context.Background(), saturday)

	require.NoError(t, err)
	assert.Equal(t, "Saturday", summary.Day)
	assert.Equal(t, 0, summary.RecordsCreated)
	assert.Equal(t, 0, repo.insertCalls)
	assert.Contains(t, summary.Message, "Rest day")
}

func TestGenerateDailyListFailurePropagates(t *testing.T) {
	repo := newFakeAttendanceRepo()
	dir := newFakeDirectory()
	dir.listErr = errors.New("directory down")
	svc := newTestService(repo, dir)
	svc.now = func() time.Time { return monday.Add(9 * time.Hour) }

	_, err := svc.GenerateDaily(context.Background(), monday)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory down")
}

// ========================================
// READ SIDE
// ========================================

func TestGetEmployeeAttendanceSummary(t *testing.T) {
	repo := newFakeAttendanceRepo()
	present := shift.TimeInPresent
	late := shift.TimeInLate
	absent := shift.TimeInAbsent
	out := shift.TimeOutOut
	overtime := shift.TimeOutOvertime

	tuesday := monday.AddDate(0, 0, 1)
	wednesday := monday.AddDate(0, 0, 2)
	repo.records[recordKey("EMP-1", monday)] = &attendance.Record{
		ID: "rec-1", EmployeeCode: "EMP-1", Date: monday,
		TimeIn: atClock(monday, 7, 45), TimeOut: atClock(monday, 17, 2),
		TimeInStatus: &present, TimeOutStatus: &out,
	}
	repo.records[recordKey("EMP-1", tuesday)] = &attendance.Record{
		ID: "rec-2", EmployeeCode: "EMP-1", Date: tuesday,
		TimeIn: atClock(tuesday, 9, 30), TimeOut: atClock(tuesday, 19, 0),
		TimeInStatus: &late, TimeOutStatus: &overtime,
	}
	repo.records[recordKey("EMP-1", wednesday)] = &attendance.Record{
		ID: "rec-3", EmployeeCode: "EMP-1", Date: wednesday,
		TimeInStatus: &absent,
	}
	svc := newTestService(repo, newFakeDirectory())

	result, err := svc.GetEmployeeAttendance(context.Background(), "EMP-1")

	require.NoError(t, err)
	assert.Len(t, result.Records, 3)
	assert.Equal(t, 1, result.Summary.DaysPresent)
	assert.Equal(t, 1, result.Summary.DaysLate)
	assert.Equal(t, 2, result.Summary.DaysActive)
	assert.Equal(t, 1, result.Summary.DaysAbsent)
	assert.Equal(t, 1, result.Summary.TotalTardy)
	assert.Equal(t, 1, result.Summary.TotalOvertime)
	assert.Equal(t, 0, result.Summary.TotalUndertime)
	assert.Equal(t, 67, result.Summary.AttendanceRate)
}

func TestGetEmployeeAttendanceRequiresCode(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), newFakeDirectory())

	_, err := svc.GetEmployeeAttendance(context.Background(), "")

	require.ErrorIs(t, err, employee.ErrNoEmployeeCode)
}

func TestRepairEmployeeCodes(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.repairCount = 42
	svc := newTestService(repo, newFakeDirectory())

	result, err := svc.RepairEmployeeCodes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(42), result.UpdatedRows)
}
