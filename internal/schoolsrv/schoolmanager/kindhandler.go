package schoolmanager

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// RequestContext carries what the route layer extracted from the URL.
type RequestContext struct {
	ObjectID uuid.UUID
	// ObjectName holds non-uuid identifiers, such as an export job key.
	ObjectName  string
	QueryParams url.Values
}

// KindHandler is the controller interface for one entity kind. Handlers
// take and return raw JSON; the route layer stays kind-agnostic.
type KindHandler interface {
	Create(ctx context.Context, rsrcJSON []byte) (string, apperrors.Error)
	Get(ctx context.Context) ([]byte, apperrors.Error)
	Update(ctx context.Context, rsrcJSON []byte) apperrors.Error
	Delete(ctx context.Context) apperrors.Error
	List(ctx context.Context) ([]byte, apperrors.Error)
	Location() string
}

type KindHandlerFactory func(context.Context, RequestContext) (KindHandler, apperrors.Error)

var kindHandlerFactories = map[string]KindHandlerFactory{
	types.StudentKind:    NewStudentKindHandler,
	types.TeacherKind:    NewTeacherKindHandler,
	types.ClassRoomKind:  NewClassRoomKindHandler,
	types.SubjectKind:    NewSubjectKindHandler,
	types.ScheduleKind:   NewScheduleKindHandler,
	types.GradeKind:      NewGradeKindHandler,
	types.AttendanceKind: NewAttendanceKindHandler,
	types.LetterKind:     NewLetterKindHandler,
	types.ExportJobKind:  NewExportJobKindHandler,
}

// RecordManagerForKind returns the handler for a resource kind.
func RecordManagerForKind(ctx context.Context, kind string, name RequestContext) (KindHandler, apperrors.Error) {
	factory, ok := kindHandlerFactories[kind]
	if !ok {
		return nil, ErrInvalidKind.Msg("unsupported resource kind: " + kind)
	}
	return factory(ctx, name)
}
