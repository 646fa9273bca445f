package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dbmanager"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/postgresql"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// The database surface is split in three: tenant/account metadata,
// tenant-scoped records, and connection management. Every RecordManager
// query filters by the tenant carried in the context before any other
// predicate.

type MetadataManager interface {
	// School (tenant)
	CreateSchool(ctx context.Context, school *models.School) apperrors.Error
	GetSchool(ctx context.Context, tenantID types.TenantId) (*models.School, apperrors.Error)
	GetSchoolByNPSN(ctx context.Context, npsn string) (*models.School, apperrors.Error)
	UpdateSchool(ctx context.Context, school *models.School) apperrors.Error
	DeleteSchool(ctx context.Context, tenantID types.TenantId) apperrors.Error

	// User (staff account)
	CreateUser(ctx context.Context, user *models.User) apperrors.Error
	GetUser(ctx context.Context, userID types.UserId) (*models.User, apperrors.Error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, apperrors.Error)
	DeleteUser(ctx context.Context, userID types.UserId) apperrors.Error
}

type RecordManager interface {
	// Student
	CreateStudent(ctx context.Context, student *models.Student) apperrors.Error
	GetStudent(ctx context.Context, studentID uuid.UUID) (*models.Student, apperrors.Error)
	UpdateStudent(ctx context.Context, student *models.Student) apperrors.Error
	DeleteStudent(ctx context.Context, studentID uuid.UUID) apperrors.Error
	ListStudentsByClass(ctx context.Context, classID uuid.UUID) ([]*models.Student, apperrors.Error)
	CountStudentsInClass(ctx context.Context, classID uuid.UUID) (int, apperrors.Error)

	// Teacher
	CreateTeacher(ctx context.Context, teacher *models.Teacher) apperrors.Error
	GetTeacher(ctx context.Context, teacherID uuid.UUID) (*models.Teacher, apperrors.Error)
	UpdateTeacher(ctx context.Context, teacher *models.Teacher) apperrors.Error
	DeleteTeacher(ctx context.Context, teacherID uuid.UUID) apperrors.Error
	CountHomeroomsForTeacher(ctx context.Context, teacherID uuid.UUID) (int, apperrors.Error)

	// ClassRoom
	CreateClassRoom(ctx context.Context, class *models.ClassRoom) apperrors.Error
	GetClassRoom(ctx context.Context, classID uuid.UUID) (*models.ClassRoom, apperrors.Error)
	UpdateClassRoom(ctx context.Context, class *models.ClassRoom) apperrors.Error
	DeleteClassRoom(ctx context.Context, classID uuid.UUID) apperrors.Error
	ListClassRooms(ctx context.Context) ([]*models.ClassRoom, apperrors.Error)

	// Subject
	CreateSubject(ctx context.Context, subject *models.Subject) apperrors.Error
	GetSubject(ctx context.Context, subjectID uuid.UUID) (*models.Subject, apperrors.Error)
	UpdateSubject(ctx context.Context, subject *models.Subject) apperrors.Error
	DeleteSubject(ctx context.Context, subjectID uuid.UUID) apperrors.Error

	// Schedule
	CreateSchedule(ctx context.Context, schedule *models.Schedule) apperrors.Error
	GetSchedule(ctx context.Context, scheduleID uuid.UUID) (*models.Schedule, apperrors.Error)
	DeleteSchedule(ctx context.Context, scheduleID uuid.UUID) apperrors.Error
	ListSchedulesByClass(ctx context.Context, classID uuid.UUID) ([]*models.Schedule, apperrors.Error)
	CountSchedulesForClass(ctx context.Context, classID uuid.UUID) (int, apperrors.Error)
	CountSchedulesForSubject(ctx context.Context, subjectID uuid.UUID) (int, apperrors.Error)
	CountSchedulesForTeacher(ctx context.Context, teacherID uuid.UUID) (int, apperrors.Error)

	// Grade
	CreateGrade(ctx context.Context, grade *models.Grade) apperrors.Error
	GetGrade(ctx context.Context, gradeID uuid.UUID) (*models.Grade, apperrors.Error)
	UpdateGrade(ctx context.Context, grade *models.Grade) apperrors.Error
	ListGradesByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Grade, apperrors.Error)
	CountGradesForSubject(ctx context.Context, subjectID uuid.UUID) (int, apperrors.Error)

	// Attendance
	CreateAttendance(ctx context.Context, att *models.Attendance) apperrors.Error
	GetAttendance(ctx context.Context, attendanceID uuid.UUID) (*models.Attendance, apperrors.Error)
	ListAttendanceByStudent(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]*models.Attendance, apperrors.Error)

	// Letter
	CreateLetter(ctx context.Context, letter *models.Letter) apperrors.Error
	GetLetter(ctx context.Context, letterID uuid.UUID) (*models.Letter, apperrors.Error)
	ListLettersByCategory(ctx context.Context, category string) ([]*models.Letter, apperrors.Error)
	NextLetterNumber(ctx context.Context, category string) (int, apperrors.Error)

	// ExportJob
	CreateExportJob(ctx context.Context, job *models.ExportJob) apperrors.Error
	GetExportJob(ctx context.Context, jobKey string) (*models.ExportJob, apperrors.Error)
	UpdateExportJobStatus(ctx context.Context, jobKey string, status types.ExportJobStatus, resultURL, failReason string) apperrors.Error
}

type ConnectionManager interface {
	AddScopes(ctx context.Context, scopes map[string]string)
	DropScopes(ctx context.Context, scopes []string) error
	AddScope(ctx context.Context, scope, value string)
	DropScope(ctx context.Context, scope string) error
	DropAllScopes(ctx context.Context) error

	Close(ctx context.Context)
}

type DB_ interface {
	MetadataManager
	RecordManager
	ConnectionManager
}

const (
	Scope_TenantId string = "siakad.curr_tenantid"
)

var configuredScopes = []string{
	Scope_TenantId,
}

var pool dbmanager.ScopedDb

// Init creates the connection pool. Called once at startup, after the
// config is loaded.
func Init(ctx context.Context) error {
	pg := dbmanager.NewScopedDb(ctx, "postgresql", configuredScopes)
	if pg == nil {
		return apperrors.New("unable to create db pool")
	}
	pool = pg
	return nil
}

func Conn(ctx context.Context) dbmanager.ScopedConn {
	if pool != nil {
		conn, err := pool.Conn(ctx)
		if err == nil {
			return conn
		}
		log.Ctx(ctx).Error().Err(err).Msg("unable to get db connection")
	}
	return nil
}

type ctxDbKeyType string

const ctxDbKey ctxDbKeyType = "SiakadDb"

// ConnCtx obtains a scoped connection and stores it in the context for
// the duration of a request.
func ConnCtx(ctx context.Context) context.Context {
	conn := Conn(ctx)
	return context.WithValue(ctx, ctxDbKey, conn)
}

type siakadDb struct {
	MetadataManager
	RecordManager
	ConnectionManager
}

// SqlConn returns the raw connection stored in the context, for callers
// that need transaction control. Nil when the context carries none.
func SqlConn(ctx context.Context) *sql.Conn {
	if conn, ok := ctx.Value(ctxDbKey).(dbmanager.ScopedConn); ok && conn != nil {
		return conn.Conn()
	}
	return nil
}

// DB returns the database interface bound to the connection stored in
// the context, or nil when the context carries none.
func DB(ctx context.Context) DB_ {
	if conn, ok := ctx.Value(ctxDbKey).(dbmanager.ScopedConn); ok {
		mm, rm, cm := postgresql.NewSiakadDb(conn)
		return &siakadDb{
			MetadataManager:   mm,
			RecordManager:     rm,
			ConnectionManager: cm,
		}
	}
	log.Ctx(ctx).Error().Msg("unable to get db connection from context")
	return nil
}
