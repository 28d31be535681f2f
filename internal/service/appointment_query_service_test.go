package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"medibook/internal/errors"
	"medibook/internal/model"
)

func strPtr(s string) *string { return &s }

func TestAppointmentQueryService_ListByPatient(t *testing.T) {
	doctorSide := model.User{
		ID:        2,
		FirstName: "Jane",
		LastName:  "Roe",
		IsDoctor:  true,
		Profile: &model.Profile{
			ProfilePicture: "jane.png",
			DoctorProfile:  &model.Doctor{EstablishmentName: "City Clinic"},
		},
	}

	appointments := []model.Appointment{
		{
			ID:              2,
			PatientID:       1,
			DoctorID:        2,
			Date:            time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
			StartTime:       "14:00",
			EndTime:         strPtr("16:30"),
			GoogleEventLink: strPtr("https://calendar.example.com/event/2"),
			Doctor:          doctorSide,
		},
		{
			ID:        1,
			PatientID: 1,
			DoctorID:  2,
			Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			Doctor:    doctorSide,
		},
	}

	mockUserRepo := new(MockUserRepository)
	mockDoctorRepo := new(MockDoctorRepository)
	mockAppointmentRepo := new(MockAppointmentRepository)
	mockUserRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, IsPatient: true}, nil)
	mockAppointmentRepo.On("ListByPatientID", mock.Anything, uint(1)).Return(appointments, nil)

	service := NewAppointmentQueryService(mockUserRepo, mockDoctorRepo, mockAppointmentRepo, nil, model.DefaultAvatar)
	views, err := service.ListByPatient(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, views, 2)

	// Repository order is preserved: most recent date first.
	assert.Equal(t, uint(2), views[0].ID)
	assert.Equal(t, "2026-09-20", views[0].Date)
	assert.Equal(t, "Jane Roe", views[0].CounterpartName)
	assert.Equal(t, "jane.png", views[0].CounterpartAvatar)
	assert.Equal(t, "City Clinic", views[0].EstablishmentName)
	assert.NotNil(t, views[0].Duration)
	assert.Equal(t, "2 hours, 30 minutes", *views[0].Duration)
	assert.NotNil(t, views[0].GoogleEventLink)

	// No end time: duration and link are absent, not zeroed.
	assert.Equal(t, uint(1), views[1].ID)
	assert.Nil(t, views[1].EndTime)
	assert.Nil(t, views[1].Duration)
	assert.Nil(t, views[1].GoogleEventLink)

	mockUserRepo.AssertExpectations(t)
	mockAppointmentRepo.AssertExpectations(t)
}

func TestAppointmentQueryService_ListByDoctor(t *testing.T) {
	appointments := []model.Appointment{
		{
			ID:        5,
			PatientID: 1,
			DoctorID:  2,
			Date:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			EndTime:   strPtr("09:45"),
			Patient:   model.User{ID: 1, FirstName: "John", LastName: "Doe", IsPatient: true},
		},
	}

	mockUserRepo := new(MockUserRepository)
	mockDoctorRepo := new(MockDoctorRepository)
	mockAppointmentRepo := new(MockAppointmentRepository)
	mockUserRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, IsDoctor: true}, nil)
	mockDoctorRepo.On("FindByUserID", mock.Anything, uint(2)).Return(&model.Doctor{ID: 7, EstablishmentName: "City Clinic"}, nil)
	mockAppointmentRepo.On("ListByDoctorID", mock.Anything, uint(2)).Return(appointments, nil)

	service := NewAppointmentQueryService(mockUserRepo, mockDoctorRepo, mockAppointmentRepo, nil, model.DefaultAvatar)
	views, err := service.ListByDoctor(context.Background(), 2)

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "John Doe", views[0].CounterpartName)
	// Patient never uploaded a picture, so the placeholder is served.
	assert.Equal(t, model.DefaultAvatar, views[0].CounterpartAvatar)
	assert.NotNil(t, views[0].Duration)
	assert.Equal(t, "0 hours, 45 minutes", *views[0].Duration)
	// The doctor's own establishment rides along on every row.
	assert.Equal(t, "City Clinic", views[0].EstablishmentName)

	mockUserRepo.AssertExpectations(t)
	mockDoctorRepo.AssertExpectations(t)
	mockAppointmentRepo.AssertExpectations(t)
}

func TestAppointmentQueryService_ListByDoctorWithoutDoctorRecord(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockDoctorRepo := new(MockDoctorRepository)
	mockAppointmentRepo := new(MockAppointmentRepository)
	mockUserRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, IsDoctor: true}, nil)
	mockDoctorRepo.On("FindByUserID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)
	mockAppointmentRepo.On("ListByDoctorID", mock.Anything, uint(3)).Return([]model.Appointment{
		{
			ID:        9,
			PatientID: 1,
			DoctorID:  3,
			Date:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			Patient:   model.User{ID: 1, FirstName: "John", LastName: "Doe"},
		},
	}, nil)

	service := NewAppointmentQueryService(mockUserRepo, mockDoctorRepo, mockAppointmentRepo, nil, model.DefaultAvatar)
	views, err := service.ListByDoctor(context.Background(), 3)

	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Empty(t, views[0].EstablishmentName)
}

func TestAppointmentQueryService_EmptyListIsNotAnError(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockAppointmentRepo := new(MockAppointmentRepository)
	mockUserRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, IsPatient: true}, nil)
	mockAppointmentRepo.On("ListByPatientID", mock.Anything, uint(1)).Return([]model.Appointment{}, nil)

	service := NewAppointmentQueryService(mockUserRepo, new(MockDoctorRepository), mockAppointmentRepo, nil, model.DefaultAvatar)
	views, err := service.ListByPatient(context.Background(), 1)

	assert.NoError(t, err)
	assert.Empty(t, views)
}

func TestAppointmentQueryService_UnknownAccount(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockAppointmentRepo := new(MockAppointmentRepository)
	mockUserRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewAppointmentQueryService(mockUserRepo, new(MockDoctorRepository), mockAppointmentRepo, nil, model.DefaultAvatar)
	views, err := service.ListByPatient(context.Background(), 99)

	assert.ErrorIs(t, err, errors.ErrUserNotFound)
	assert.Nil(t, views)
	mockAppointmentRepo.AssertNotCalled(t, "ListByPatientID", mock.Anything, mock.Anything)
}

func TestDeriveDuration(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   *string
		expected  *string
	}{
		{name: "under an hour", startTime: "09:00", endTime: strPtr("09:45"), expected: strPtr("0 hours, 45 minutes")},
		{name: "hours and minutes", startTime: "14:00", endTime: strPtr("16:30"), expected: strPtr("2 hours, 30 minutes")},
		{name: "exact hours", startTime: "10:00", endTime: strPtr("12:00"), expected: strPtr("2 hours, 0 minutes")},
		{name: "absent end", startTime: "09:00", endTime: nil, expected: nil},
		{name: "unparseable end", startTime: "09:00", endTime: strPtr("noon"), expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveDuration(tt.startTime, tt.endTime)
			if tt.expected == nil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.Equal(t, *tt.expected, *got)
			}
		})
	}
}
