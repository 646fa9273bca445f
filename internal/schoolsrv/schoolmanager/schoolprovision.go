package schoolmanager

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/policy"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// School provisioning is a super-admin flow and works on tenant
// metadata, so it lives outside the tenant-scoped kind handlers.

const maxIdRetries = 3

type schoolSchema struct {
	NPSN    string `json:"npsn" validate:"required,len=8,number"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type schoolRep struct {
	TenantID string `json:"tenant_id"`
	NPSN     string `json:"npsn"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ProvisionSchool registers a new tenant. The short tenant code is
// random; on a collision the insert is retried with a fresh code.
func ProvisionSchool(ctx context.Context, rsrcJSON []byte) (*models.School, apperrors.Error) {
	schema := &schoolSchema{}
	if uerr := json.Unmarshal(rsrcJSON, schema); uerr != nil {
		return nil, ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return nil, verr
	}

	if existing, err := db.DB(ctx).GetSchoolByNPSN(ctx, schema.NPSN); err == nil && existing != nil {
		return nil, ErrAlreadyExists.Msg("a school with this npsn is already registered")
	}

	school := &models.School{
		NPSN:    schema.NPSN,
		Name:    schema.Name,
		Address: schema.Address,
		Phone:   schema.Phone,
		Email:   schema.Email,
	}

	for attempt := 0; attempt < maxIdRetries; attempt++ {
		tenantID, ierr := schoolcommon.GetUniqueId(schoolcommon.ID_TYPE_TENANT)
		if ierr != nil {
			return nil, ErrSchoolManager.Err(ierr)
		}
		school.TenantID = types.TenantId(tenantID)

		dbErr := db.DB(ctx).CreateSchool(ctx, school)
		if dbErr == nil {
			log.Ctx(ctx).Info().
				Str("tenant_id", tenantID).
				Str("npsn", school.NPSN).
				Msg("school provisioned")
			return school, nil
		}
		if !errors.Is(dbErr, dberror.ErrAlreadyExists) {
			return nil, dbErr
		}
	}
	return nil, ErrSchoolManager.Msg("unable to allocate a tenant id")
}

// GetSchoolJSON returns the representation of the acting tenant.
func GetSchoolJSON(ctx context.Context) ([]byte, apperrors.Error) {
	school, err := policy.ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}
	out, merr := json.Marshal(schoolToRep(school))
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

// UpdateSchool applies contact-detail changes to the acting tenant.
// The tenant id and npsn never change after provisioning.
func UpdateSchool(ctx context.Context, rsrcJSON []byte) apperrors.Error {
	school, err := policy.ResolveTenant(ctx)
	if err != nil {
		return err
	}

	schema := &schoolSchema{
		NPSN:    school.NPSN,
		Name:    school.Name,
		Address: school.Address,
		Phone:   school.Phone,
		Email:   school.Email,
	}
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, []string{"name", "address", "phone", "email"}), schema); uerr != nil {
		return ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return verr
	}

	school.Name = schema.Name
	school.Address = schema.Address
	school.Phone = schema.Phone
	school.Email = schema.Email
	return db.DB(ctx).UpdateSchool(ctx, school)
}

type staffUserSchema struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin teacher staff"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreateStaffUser registers a staff account under the acting tenant.
// The password is stored as an argon2id hash.
func CreateStaffUser(ctx context.Context, rsrcJSON []byte) (*models.User, apperrors.Error) {
	school, err := policy.ResolveTenant(ctx)
	if err != nil {
		return nil, err
	}

	schema := &staffUserSchema{}
	if uerr := json.Unmarshal(rsrcJSON, schema); uerr != nil {
		return nil, ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return nil, verr
	}

	hash, herr := schoolcommon.HashPassword(schema.Password)
	if herr != nil {
		log.Ctx(ctx).Error().Err(herr).Msg("unable to hash password")
		return nil, ErrSchoolManager.Err(herr)
	}

	user := &models.User{
		TenantID:     school.TenantID,
		Email:        schema.Email,
		Name:         schema.Name,
		Role:         types.Role(schema.Role),
		PasswordHash: hash,
	}

	for attempt := 0; attempt < maxIdRetries; attempt++ {
		userID, ierr := schoolcommon.GetUniqueId(schoolcommon.ID_TYPE_USER)
		if ierr != nil {
			return nil, ErrSchoolManager.Err(ierr)
		}
		user.UserID = types.UserId(userID)

		dbErr := db.DB(ctx).CreateUser(ctx, user)
		if dbErr == nil {
			return user, nil
		}
		if !errors.Is(dbErr, dberror.ErrAlreadyExists) {
			return nil, dbErr
		}
		// A duplicate email is not an id collision; retrying will not
		// help.
		if existing, lookupErr := db.DB(ctx).GetUserByEmail(ctx, schema.Email); lookupErr == nil && existing != nil {
			return nil, ErrAlreadyExists.Msg("a user with this email already exists")
		}
	}
	return nil, ErrSchoolManager.Msg("unable to allocate a user id")
}

func schoolToRep(s *models.School) schoolRep {
	return schoolRep{
		TenantID: string(s.TenantID),
		NPSN:     s.NPSN,
		Name:     s.Name,
		Address:  s.Address,
		Phone:    s.Phone,
		Email:    s.Email,
	}
}
