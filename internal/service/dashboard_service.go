package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/student-ews-api/internal/dto"
	"github.com/noah-isme/student-ews-api/internal/models"
)

type dashboardStudentReader interface {
	GetByUserID(ctx context.Context, userID string) (*models.StudentProfile, error)
}

type semesterAcademicReader interface {
	ListBySemester(ctx context.Context, studentID string) ([]models.AcademicRecord, error)
}

type semesterAttendanceReader interface {
	ListBySemester(ctx context.Context, studentID string) ([]models.AttendanceRecord, error)
}

// DashboardService builds the self-service dashboard a student sees about
// their own standing. It runs on raw records and a coarse heuristic, not
// the ML model, so it stays available even when the artifact is not.
type DashboardService struct {
	students   dashboardStudentReader
	academics  semesterAcademicReader
	attendance semesterAttendanceReader
	logger     *zap.Logger
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Students   dashboardStudentReader
	Academics  semesterAcademicReader
	Attendance semesterAttendanceReader
	Logger     *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		students:   params.Students,
		academics:  params.Academics,
		attendance: params.Attendance,
		logger:     logger,
	}
}

// Student resolves the profile behind userID and assembles its
// semester-by-semester performance rows.
func (s *DashboardService) Student(ctx context.Context, userID string) (*dto.StudentDashboardResponse, error) {
	profile, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	academics, err := s.academics.ListBySemester(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	attendance, err := s.attendance.ListBySemester(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	attendanceBySemester := make(map[int]models.AttendanceRecord, len(attendance))
	for _, rec := range attendance {
		attendanceBySemester[rec.Semester] = rec
	}

	semesters := make([]dto.SemesterPerformance, 0, len(academics))
	for _, rec := range academics {
		row := dto.SemesterPerformance{
			Semester: rec.Semester,
			GPA:      rec.GPA,
			Backlogs: rec.Backlogs,
		}
		if att, ok := attendanceBySemester[rec.Semester]; ok {
			pct := att.Percentage
			days := att.AbsenteeDays
			row.AttendancePercentage = &pct
			row.AbsentDays = &days
		}
		semesters = append(semesters, row)
	}

	response := &dto.StudentDashboardResponse{
		Profile:    *profile,
		Semesters:  semesters,
		RiskStatus: "Safe",
	}

	if len(semesters) > 0 {
		latest := semesters[len(semesters)-1]
		attendancePct := 100.0
		if latest.AttendancePercentage != nil {
			attendancePct = *latest.AttendancePercentage
		}
		response.RiskStatus = HeuristicRiskStatus(latest.GPA, attendancePct, latest.Backlogs)
	}

	return response, nil
}

// HeuristicRiskStatus grades a student's standing on a 10-point GPA scale
// without consulting the ML model.
func HeuristicRiskStatus(gpa, attendancePct float64, backlogs int) string {
	if gpa >= 7 && attendancePct >= 75 && backlogs == 0 {
		return "Safe"
	}
	if (gpa >= 5 && gpa < 7) || (attendancePct >= 65 && attendancePct < 75) ||
		(backlogs >= 1 && backlogs <= 2) {
		return "Warning"
	}
	return "At Risk"
}
