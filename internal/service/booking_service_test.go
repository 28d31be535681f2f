package service

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"medibook/internal/calendar"
	"medibook/internal/errors"
	"medibook/internal/model"
)

// MockDoctorRepository is a mock implementation of DoctorRepository.
type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) FindByUserID(ctx context.Context, userID uint) (*model.Doctor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) ListFiltered(ctx context.Context, categoryIDs []uint, location string, offset, limit int) ([]model.Doctor, int64, error) {
	args := m.Called(ctx, categoryIDs, location, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Doctor), args.Get(1).(int64), args.Error(2)
}

// MockAppointmentRepository is a mock implementation of AppointmentRepository.
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) SetEventLink(ctx context.Context, id uint, link string) error {
	args := m.Called(ctx, id, link)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id uint) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByPatientID(ctx context.Context, patientID uint) ([]model.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByDoctorID(ctx context.Context, doctorID uint) ([]model.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

// MockCalendarProvider is a mock implementation of calendar.Provider.
type MockCalendarProvider struct {
	mock.Mock
}

func (m *MockCalendarProvider) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockCalendarProvider) Exchange(ctx context.Context, code string) (*calendar.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Token), args.Error(1)
}

func (m *MockCalendarProvider) CreateEvent(ctx context.Context, accessToken string, event *calendar.Event) (string, error) {
	args := m.Called(ctx, accessToken, event)
	return args.String(0), args.Error(1)
}

func bookingUsers() (*model.User, *model.User, *model.Doctor) {
	patient := &model.User{ID: 1, Email: "patient@example.com", FirstName: "John", LastName: "Doe", IsPatient: true}
	doctorUser := &model.User{ID: 2, Email: "doctor@example.com", FirstName: "Jane", LastName: "Roe", IsDoctor: true}
	doctor := &model.Doctor{ID: 7, EstablishmentName: "City Clinic"}
	return patient, doctorUser, doctor
}

func TestBookingService_BookAppointment(t *testing.T) {
	patient, doctorUser, doctor := bookingUsers()

	tests := []struct {
		name          string
		input         *BookAppointmentInput
		setupMock     func(*MockUserRepository, *MockDoctorRepository, *MockAppointmentRepository, *MockCalendarProvider)
		expectedError error
		verify        func(*testing.T, *model.Appointment, *MockAppointmentRepository)
	}{
		{
			name: "successful booking with event link stored",
			input: &BookAppointmentInput{
				PatientID:   1,
				DoctorID:    2,
				Date:        "2026-09-15",
				StartTime:   "09:00",
				EndTime:     "09:45",
				AccessToken: "tok",
			},
			setupMock: func(mUser *MockUserRepository, mDoc *MockDoctorRepository, mAppt *MockAppointmentRepository, mProv *MockCalendarProvider) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(patient, nil)
				mUser.On("FindByID", mock.Anything, uint(2)).Return(doctorUser, nil)
				mDoc.On("FindByUserID", mock.Anything, uint(2)).Return(doctor, nil)
				mAppt.On("Create", mock.Anything, mock.AnythingOfType("*model.Appointment")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Appointment).ID = 42
				}).Return(nil)
				mProv.On("CreateEvent", mock.Anything, "tok", mock.MatchedBy(func(e *calendar.Event) bool {
					return e.Summary == "Appointment with Dr. Jane Roe" &&
						e.Location == "City Clinic" &&
						e.StartTime == "09:00" && e.EndTime == "09:45" &&
						len(e.AttendeeEmails) == 2
				})).Return("https://calendar.example.com/event/42", nil)
				mAppt.On("SetEventLink", mock.Anything, uint(42), "https://calendar.example.com/event/42").Return(nil)
			},
			verify: func(t *testing.T, appointment *model.Appointment, mAppt *MockAppointmentRepository) {
				assert.NotNil(t, appointment.GoogleEventLink)
				assert.Equal(t, "https://calendar.example.com/event/42", *appointment.GoogleEventLink)
				assert.NotNil(t, appointment.EndTime)
			},
		},
		{
			name: "missing end time defaults the event slot but stores no end",
			input: &BookAppointmentInput{
				PatientID:   1,
				DoctorID:    2,
				Date:        "2026-09-15",
				StartTime:   "09:00",
				AccessToken: "tok",
			},
			setupMock: func(mUser *MockUserRepository, mDoc *MockDoctorRepository, mAppt *MockAppointmentRepository, mProv *MockCalendarProvider) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(patient, nil)
				mUser.On("FindByID", mock.Anything, uint(2)).Return(doctorUser, nil)
				mDoc.On("FindByUserID", mock.Anything, uint(2)).Return(doctor, nil)
				mAppt.On("Create", mock.Anything, mock.AnythingOfType("*model.Appointment")).Return(nil)
				mProv.On("CreateEvent", mock.Anything, "tok", mock.MatchedBy(func(e *calendar.Event) bool {
					return e.StartTime == "09:00" && e.EndTime == "09:30"
				})).Return("https://calendar.example.com/event/1", nil)
				mAppt.On("SetEventLink", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			},
			verify: func(t *testing.T, appointment *model.Appointment, mAppt *MockAppointmentRepository) {
				assert.Nil(t, appointment.EndTime)
			},
		},
		{
			name: "missing credential blocks booking before any write",
			input: &BookAppointmentInput{
				PatientID: 1,
				DoctorID:  2,
				Date:      "2026-09-15",
				StartTime: "09:00",
			},
			setupMock:     func(mUser *MockUserRepository, mDoc *MockDoctorRepository, mAppt *MockAppointmentRepository, mProv *MockCalendarProvider) {},
			expectedError: errors.ErrMissingCredential,
		},
		{
			name: "end before start rejected",
			input: &BookAppointmentInput{
				PatientID:   1,
				DoctorID:    2,
				Date:        "2026-09-15",
				StartTime:   "10:00",
				EndTime:     "09:00",
				AccessToken: "tok",
			},
			setupMock:     func(mUser *MockUserRepository, mDoc *MockDoctorRepository, mAppt *MockAppointmentRepository, mProv *MockCalendarProvider) {},
			expectedError: errors.ErrInvalidTimeRange,
		},
		{
			name: "unknown patient",
			input: &BookAppointmentInput{
				PatientID:   99,
				DoctorID:    2,
				Date:        "2026-09-15",
				StartTime:   "09:00",
				AccessToken: "tok",
			},
			setupMock: func(mUser *MockUserRepository, mDoc *MockDoctorRepository, mAppt *MockAppointmentRepository, mProv *MockCalendarProvider) {
				mUser.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
		{
			name: "counterpart without a doctor record",
			input: &BookAppointmentInput{
				PatientID:   1,
				DoctorID:    3,
				Date:        "2026-09-15",
				StartTime:   "09:00",
				AccessToken: "tok",
			},
			setupMock: func(mUser *MockUserRepository, mDoc *MockDoctorRepository, mAppt *MockAppointmentRepository, mProv *MockCalendarProvider) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(patient, nil)
				mUser.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, IsPatient: true}, nil)
				mDoc.On("FindByUserID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrDoctorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockDoctorRepo := new(MockDoctorRepository)
			mockAppointmentRepo := new(MockAppointmentRepository)
			mockProvider := new(MockCalendarProvider)
			tt.setupMock(mockUserRepo, mockDoctorRepo, mockAppointmentRepo, mockProvider)

			service := NewBookingService(mockUserRepo, mockDoctorRepo, mockAppointmentRepo, mockProvider, nil, "Asia/Kolkata")
			appointment, err := service.BookAppointment(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, appointment)
				mockAppointmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, appointment)
				tt.verify(t, appointment, mockAppointmentRepo)
			}

			mockUserRepo.AssertExpectations(t)
			mockDoctorRepo.AssertExpectations(t)
			mockAppointmentRepo.AssertExpectations(t)
			mockProvider.AssertExpectations(t)
		})
	}
}

func TestBookingService_BookAppointment_SyncFailureKeepsAppointment(t *testing.T) {
	patient, doctorUser, doctor := bookingUsers()

	mockUserRepo := new(MockUserRepository)
	mockDoctorRepo := new(MockDoctorRepository)
	mockAppointmentRepo := new(MockAppointmentRepository)
	mockProvider := new(MockCalendarProvider)

	mockUserRepo.On("FindByID", mock.Anything, uint(1)).Return(patient, nil)
	mockUserRepo.On("FindByID", mock.Anything, uint(2)).Return(doctorUser, nil)
	mockDoctorRepo.On("FindByUserID", mock.Anything, uint(2)).Return(doctor, nil)
	mockAppointmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Appointment")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Appointment).ID = 42
	}).Return(nil)
	mockProvider.On("CreateEvent", mock.Anything, "tok", mock.Anything).Return("", stderrors.New("provider rejected event: status 401"))

	service := NewBookingService(mockUserRepo, mockDoctorRepo, mockAppointmentRepo, mockProvider, nil, "Asia/Kolkata")
	appointment, err := service.BookAppointment(context.Background(), &BookAppointmentInput{
		PatientID:   1,
		DoctorID:    2,
		Date:        "2026-09-15",
		StartTime:   "09:00",
		EndTime:     "09:45",
		AccessToken: "tok",
	})

	// The internal record survives the external failure and the caller sees
	// both the persisted appointment and the classified error.
	assert.ErrorIs(t, err, errors.ErrCalendarSync)
	assert.NotNil(t, appointment)
	assert.Equal(t, uint(42), appointment.ID)
	assert.Nil(t, appointment.GoogleEventLink)
	mockAppointmentRepo.AssertNotCalled(t, "SetEventLink", mock.Anything, mock.Anything, mock.Anything)

	mockUserRepo.AssertExpectations(t)
	mockAppointmentRepo.AssertExpectations(t)
	mockProvider.AssertExpectations(t)
}

func TestParseWindow(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		day, start, end, err := parseWindow("2026-09-15", "09:00", "10:30")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), day)
		assert.Equal(t, "09:00", start.Format(timeLayout))
		assert.Equal(t, "10:30", end.Format(timeLayout))
	})

	t.Run("absent end defaults to one slot", func(t *testing.T) {
		_, start, end, err := parseWindow("2026-09-15", "09:00", "")
		assert.NoError(t, err)
		assert.Equal(t, defaultSlot, end.Sub(start))
	})

	t.Run("malformed date", func(t *testing.T) {
		_, _, _, err := parseWindow("15-09-2026", "09:00", "")
		assert.ErrorIs(t, err, errors.ErrValidation)
	})

	t.Run("malformed start time", func(t *testing.T) {
		_, _, _, err := parseWindow("2026-09-15", "9am", "")
		assert.ErrorIs(t, err, errors.ErrValidation)
	})
}
