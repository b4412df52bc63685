package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"carlog/internal/auth"
	apperrors "carlog/internal/errors"
	"carlog/internal/model"
	"carlog/internal/validation"
)

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Vehicle, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

// MockServiceRecordRepository is a mock implementation of ServiceRecordRepository.
type MockServiceRecordRepository struct {
	mock.Mock
}

func (m *MockServiceRecordRepository) Create(ctx context.Context, record *model.ServiceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockServiceRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ServiceRecord), args.Error(1)
}

// MockAccidentHistoryRepository is a mock implementation of AccidentHistoryRepository.
type MockAccidentHistoryRepository struct {
	mock.Mock
}

func (m *MockAccidentHistoryRepository) Create(ctx context.Context, record *model.AccidentHistory) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAccidentHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AccidentHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccidentHistory), args.Error(1)
}

type historyTestEnv struct {
	vehicles  *MockVehicleRepository
	services  *MockServiceRecordRepository
	accidents *MockAccidentHistoryRepository
	svc       *historyService
}

func newHistoryTestEnv(now time.Time) *historyTestEnv {
	env := &historyTestEnv{
		vehicles:  new(MockVehicleRepository),
		services:  new(MockServiceRecordRepository),
		accidents: new(MockAccidentHistoryRepository),
	}
	env.svc = &historyService{
		guard:     NewOwnershipGuard(env.vehicles),
		gateway:   validation.NewGateway(),
		services:  env.services,
		accidents: env.accidents,
		now:       func() time.Time { return now },
		recalc:    func(ctx context.Context, vehicleID uuid.UUID) error { return nil },
		logger:    zap.NewNop(),
	}
	return env
}

func intPtr(v int) *int { return &v }

func validServiceInput(date time.Time) *validation.ServiceRecordInput {
	return &validation.ServiceRecordInput{
		ServiceType:      "oil_change",
		ServiceDate:      date,
		MileageAtService: intPtr(42000),
	}
}

func TestHistoryService_CreateServiceRecord_Authorization(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	principal := &auth.Principal{UserID: uuid.New(), Role: model.RoleUser}
	vehicleID := uuid.New()

	tests := []struct {
		name          string
		principal     *auth.Principal
		rawVehicleID  string
		setupMock     func(*historyTestEnv)
		expectedError error
	}{
		{
			name:          "no session",
			principal:     nil,
			rawVehicleID:  vehicleID.String(),
			setupMock:     func(env *historyTestEnv) {},
			expectedError: apperrors.ErrUnauthorized,
		},
		{
			name:          "malformed vehicle id",
			principal:     principal,
			rawVehicleID:  "not-a-uuid",
			setupMock:     func(env *historyTestEnv) {},
			expectedError: apperrors.ErrInvalidVehicleID,
		},
		{
			name:         "vehicle missing or foreign",
			principal:    principal,
			rawVehicleID: vehicleID.String(),
			setupMock: func(env *historyTestEnv) {
				env.vehicles.On("FindByIDAndOwner", mock.Anything, vehicleID, principal.UserID).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrVehicleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newHistoryTestEnv(now)
			tt.setupMock(env)

			record, err := env.svc.CreateServiceRecord(context.Background(), tt.principal, tt.rawVehicleID, validServiceInput(now))

			assert.ErrorIs(t, err, tt.expectedError)
			assert.Nil(t, record)
			// Authorization failures never reach the store.
			env.services.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestHistoryService_CreateServiceRecord_FutureDateRule(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	principal := &auth.Principal{UserID: uuid.New(), Role: model.RoleUser}
	vehicleID := uuid.New()

	tests := []struct {
		name        string
		serviceDate time.Time
		wantErr     bool
	}{
		{"one second in the future rejected", now.Add(time.Second), true},
		{"exactly at the creation instant accepted", now, false},
		{"in the past accepted", now.Add(-24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newHistoryTestEnv(now)
			env.vehicles.On("FindByIDAndOwner", mock.Anything, vehicleID, principal.UserID).
				Return(&model.Vehicle{ID: vehicleID, UserID: principal.UserID}, nil)

			if !tt.wantErr {
				env.services.On("Create", mock.Anything, mock.AnythingOfType("*model.ServiceRecord")).Return(nil).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.ServiceRecord).ID = uuid.New()
					})
				env.services.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
					Return(&model.ServiceRecord{VehicleID: vehicleID}, nil)
			}

			record, err := env.svc.CreateServiceRecord(context.Background(), principal, vehicleID.String(), validServiceInput(tt.serviceDate))

			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrFutureServiceDate)
				assert.Nil(t, record)
				env.services.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, record)
			}
		})
	}
}

func TestHistoryService_CreateServiceRecord_StampsAndHook(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	principal := &auth.Principal{UserID: uuid.New(), Role: model.RoleUser}
	vehicleID := uuid.New()

	env := newHistoryTestEnv(now)
	var recalcCalled uuid.UUID
	env.svc.recalc = func(ctx context.Context, id uuid.UUID) error {
		recalcCalled = id
		return nil
	}

	var stored *model.ServiceRecord
	env.vehicles.On("FindByIDAndOwner", mock.Anything, vehicleID, principal.UserID).
		Return(&model.Vehicle{ID: vehicleID, UserID: principal.UserID}, nil)
	env.services.On("Create", mock.Anything, mock.AnythingOfType("*model.ServiceRecord")).Return(nil).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*model.ServiceRecord)
			stored.ID = uuid.New()
		})
	env.services.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&model.ServiceRecord{VehicleID: vehicleID}, nil)

	in := validServiceInput(now.Add(-time.Hour))
	cost := 129.99
	in.Cost = &cost

	_, err := env.svc.CreateServiceRecord(context.Background(), principal, vehicleID.String(), in)

	assert.NoError(t, err)
	assert.Equal(t, vehicleID, stored.VehicleID)
	assert.Equal(t, principal.UserID, stored.CreatedBy)
	assert.Equal(t, now, stored.CreatedAt)
	assert.Equal(t, 42000, stored.MileageAtService)
	assert.Equal(t, &cost, stored.Cost)
	assert.Equal(t, vehicleID, recalcCalled)
}

func TestHistoryService_CreateServiceRecord_RecalcFailureDoesNotFailRequest(t *testing.T) {
	now := time.Now().UTC()
	principal := &auth.Principal{UserID: uuid.New(), Role: model.RoleUser}
	vehicleID := uuid.New()

	env := newHistoryTestEnv(now)
	env.svc.recalc = func(ctx context.Context, id uuid.UUID) error {
		return assert.AnError
	}

	env.vehicles.On("FindByIDAndOwner", mock.Anything, vehicleID, principal.UserID).
		Return(&model.Vehicle{ID: vehicleID, UserID: principal.UserID}, nil)
	env.services.On("Create", mock.Anything, mock.AnythingOfType("*model.ServiceRecord")).Return(nil).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.ServiceRecord).ID = uuid.New()
		})
	env.services.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&model.ServiceRecord{VehicleID: vehicleID}, nil)

	record, err := env.svc.CreateServiceRecord(context.Background(), principal, vehicleID.String(), validServiceInput(now.Add(-time.Hour)))

	assert.NoError(t, err)
	assert.NotNil(t, record)
}

func TestHistoryService_CreateServiceRecord_ValidationError(t *testing.T) {
	now := time.Now().UTC()
	principal := &auth.Principal{UserID: uuid.New(), Role: model.RoleUser}
	vehicleID := uuid.New()

	env := newHistoryTestEnv(now)
	env.vehicles.On("FindByIDAndOwner", mock.Anything, vehicleID, principal.UserID).
		Return(&model.Vehicle{ID: vehicleID, UserID: principal.UserID}, nil)

	record, err := env.svc.CreateServiceRecord(context.Background(), principal, vehicleID.String(), &validation.ServiceRecordInput{})

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "service_type")
	assert.Contains(t, validationErr.Fields, "service_date")
	assert.Contains(t, validationErr.Fields, "mileage_at_service")
	assert.Nil(t, record)
}

func TestNewHistoryService_AcceptsPresentDatedRecords(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	services := new(MockServiceRecordRepository)
	accidents := new(MockAccidentHistoryRepository)
	principal := &auth.Principal{UserID: uuid.New(), Role: model.RoleUser}
	vehicleID := uuid.New()

	var recalcCalled bool
	svc := NewHistoryService(
		NewOwnershipGuard(vehicles),
		validation.NewGateway(),
		services,
		accidents,
		zap.NewNop(),
		WithRecalculate(func(ctx context.Context, id uuid.UUID) error {
			recalcCalled = true
			return nil
		}),
	)

	vehicles.On("FindByIDAndOwner", mock.Anything, vehicleID, principal.UserID).
		Return(&model.Vehicle{ID: vehicleID, UserID: principal.UserID}, nil)
	services.On("Create", mock.Anything, mock.AnythingOfType("*model.ServiceRecord")).Return(nil).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.ServiceRecord).ID = uuid.New()
		})
	services.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&model.ServiceRecord{VehicleID: vehicleID}, nil)

	// The default clock must track wall time, not the construction instant:
	// a record dated just before "now", submitted after the service has been
	// alive for a while, is within bounds.
	time.Sleep(50 * time.Millisecond)
	in := validServiceInput(time.Now().UTC().Add(-time.Millisecond))
	record, err := svc.CreateServiceRecord(context.Background(), principal, vehicleID.String(), in)

	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.True(t, recalcCalled)
}

func TestHistoryService_CreateAccidentHistory(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	principal := &auth.Principal{UserID: uuid.New(), Role: model.RoleUser}
	vehicleID := uuid.New()

	t.Run("not owned returns same error as missing", func(t *testing.T) {
		env := newHistoryTestEnv(now)
		env.vehicles.On("FindByIDAndOwner", mock.Anything, vehicleID, principal.UserID).
			Return(nil, gorm.ErrRecordNotFound)

		record, err := env.svc.CreateAccidentHistory(context.Background(), principal, vehicleID.String(), &validation.AccidentHistoryInput{
			AccidentDate: now,
			Description:  "rear-ended at a stoplight",
		})

		assert.ErrorIs(t, err, apperrors.ErrVehicleNotFound)
		assert.Nil(t, record)
	})

	t.Run("invalid severity rejected", func(t *testing.T) {
		env := newHistoryTestEnv(now)
		env.vehicles.On("FindByIDAndOwner", mock.Anything, vehicleID, principal.UserID).
			Return(&model.Vehicle{ID: vehicleID, UserID: principal.UserID}, nil)

		severity := "catastrophic"
		record, err := env.svc.CreateAccidentHistory(context.Background(), principal, vehicleID.String(), &validation.AccidentHistoryInput{
			AccidentDate: now,
			Description:  "rear-ended at a stoplight",
			Severity:     &severity,
		})

		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "severity")
		assert.Nil(t, record)
	})

	t.Run("successful creation stamps created_by", func(t *testing.T) {
		env := newHistoryTestEnv(now)
		var stored *model.AccidentHistory
		env.vehicles.On("FindByIDAndOwner", mock.Anything, vehicleID, principal.UserID).
			Return(&model.Vehicle{ID: vehicleID, UserID: principal.UserID}, nil)
		env.accidents.On("Create", mock.Anything, mock.AnythingOfType("*model.AccidentHistory")).Return(nil).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*model.AccidentHistory)
				stored.ID = uuid.New()
			})
		env.accidents.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).
			Return(&model.AccidentHistory{VehicleID: vehicleID}, nil)

		severity := model.SeverityMinor
		record, err := env.svc.CreateAccidentHistory(context.Background(), principal, vehicleID.String(), &validation.AccidentHistoryInput{
			AccidentDate:   now.Add(-48 * time.Hour),
			Description:    "rear-ended at a stoplight",
			InsuranceClaim: true,
			Severity:       &severity,
		})

		assert.NoError(t, err)
		assert.NotNil(t, record)
		assert.Equal(t, vehicleID, stored.VehicleID)
		assert.Equal(t, principal.UserID, stored.CreatedBy)
		assert.Equal(t, now, stored.CreatedAt)
		assert.True(t, stored.InsuranceClaim)
	})
}
