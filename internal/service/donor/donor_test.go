package donor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"oasis-blood-platform/internal/apperr"
	"oasis-blood-platform/internal/domain"
	"oasis-blood-platform/internal/service/donor"
)

func newService(t *testing.T) (*donor.Service, *MockDonorRepository, *MockDeviceRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	donors := NewMockDonorRepository(ctrl)
	devices := NewMockDeviceRepository(ctrl)
	return donor.NewService(donors, devices, time.Second), donors, devices
}

func validDonor() *domain.Donor {
	return &domain.Donor{
		ID:        " user-1 ",
		Name:      "Ada",
		BloodType: "o-",
		Location:  domain.Coordinate{Latitude: 6.5, Longitude: 3.4},
		City:      "Lagos",
		Verified:  true,
	}
}

func TestRegister_NormalizesAndDefaults(t *testing.T) {
	t.Parallel()

	svc, donors, _ := newService(t)
	donors.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *domain.Donor) error {
			require.Equal(t, "user-1", d.ID)
			require.Equal(t, domain.BloodTypeONeg, d.BloodType)
			require.Equal(t, domain.AvailabilityAvailable, d.Availability)
			require.False(t, d.Verified, "new donors are never pre-verified")
			return nil
		})

	require.NoError(t, svc.Register(context.Background(), validDonor()))
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	future := time.Now().Add(48 * time.Hour)
	cases := map[string]func(d *domain.Donor){
		"empty id":       func(d *domain.Donor) { d.ID = "  " },
		"empty name":     func(d *domain.Donor) { d.Name = "" },
		"blood type":     func(d *domain.Donor) { d.BloodType = "Z+" },
		"location":       func(d *domain.Donor) { d.Location.Latitude = 91 },
		"availability":   func(d *domain.Donor) { d.Availability = "busy" },
		"future donated": func(d *domain.Donor) { d.LastDonationAt = &future },
		"negative count": func(d *domain.Donor) { d.DonationCount = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			svc, _, _ := newService(t)
			d := validDonor()
			mutate(d)
			require.ErrorIs(t, svc.Register(context.Background(), d), apperr.Invalid)
		})
	}

	svc, _, _ := newService(t)
	require.ErrorIs(t, svc.Register(context.Background(), nil), apperr.Invalid)
}

func TestRegister_ConflictPropagates(t *testing.T) {
	t.Parallel()

	svc, donors, _ := newService(t)
	donors.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperr.Conflict)

	require.ErrorIs(t, svc.Register(context.Background(), validDonor()), apperr.Conflict)
}

func TestGet(t *testing.T) {
	t.Parallel()

	svc, donors, _ := newService(t)
	donors.EXPECT().Get(gomock.Any(), "u1").Return(&domain.Donor{ID: "u1"}, nil)
	donors.EXPECT().Get(gomock.Any(), "missing").Return(nil, nil)

	d, err := svc.Get(context.Background(), " u1 ")
	require.NoError(t, err)
	require.Equal(t, "u1", d.ID)

	_, err = svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, apperr.NotFound)
}

func TestUpdatePartial(t *testing.T) {
	t.Parallel()

	svc, donors, _ := newService(t)
	suspended := domain.AvailabilitySuspended
	u := domain.PartialDonorUpdate{ID: "u1", Availability: &suspended}

	donors.EXPECT().UpdatePartial(gomock.Any(), u).Return(true, nil)
	donors.EXPECT().Get(gomock.Any(), "u1").Return(&domain.Donor{ID: "u1", Availability: suspended}, nil)

	d, err := svc.UpdatePartial(context.Background(), u)
	require.NoError(t, err)
	require.Equal(t, suspended, d.Availability)
}

func TestUpdatePartial_Errors(t *testing.T) {
	t.Parallel()

	svc, donors, _ := newService(t)

	_, err := svc.UpdatePartial(context.Background(), domain.PartialDonorUpdate{ID: "u1"})
	require.ErrorIs(t, err, apperr.Invalid, "empty update")

	bad := domain.Availability("later")
	_, err = svc.UpdatePartial(context.Background(), domain.PartialDonorUpdate{ID: "u1", Availability: &bad})
	require.ErrorIs(t, err, apperr.Invalid)

	loc := domain.Coordinate{Longitude: 200}
	_, err = svc.UpdatePartial(context.Background(), domain.PartialDonorUpdate{ID: "u1", Location: &loc})
	require.ErrorIs(t, err, apperr.Invalid)

	city := "Ibadan"
	donors.EXPECT().UpdatePartial(gomock.Any(), gomock.Any()).Return(false, nil)
	_, err = svc.UpdatePartial(context.Background(), domain.PartialDonorUpdate{ID: "ghost", City: &city})
	require.ErrorIs(t, err, apperr.NotFound)

	boom := errors.New("db down")
	donors.EXPECT().UpdatePartial(gomock.Any(), gomock.Any()).Return(false, boom)
	_, err = svc.UpdatePartial(context.Background(), domain.PartialDonorUpdate{ID: "u1", City: &city})
	require.ErrorIs(t, err, boom)
}

func TestRegisterDevice(t *testing.T) {
	t.Parallel()

	svc, _, devices := newService(t)
	devices.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *domain.Device) error {
			require.Equal(t, "u1", d.UserID)
			require.Equal(t, "tok", d.Token)
			require.Equal(t, "android", d.Platform)
			return nil
		})

	require.NoError(t, svc.RegisterDevice(context.Background(), &domain.Device{UserID: "u1", Token: " tok ", Platform: "Android"}))

	require.ErrorIs(t, svc.RegisterDevice(context.Background(), nil), apperr.Invalid)
	require.ErrorIs(t, svc.RegisterDevice(context.Background(), &domain.Device{UserID: "u1", Platform: "ios"}), apperr.Invalid)
	require.ErrorIs(t, svc.RegisterDevice(context.Background(), &domain.Device{UserID: "u1", Token: "t", Platform: "pager"}), apperr.Invalid)
}

func TestRemoveDevice(t *testing.T) {
	t.Parallel()

	svc, _, devices := newService(t)
	devices.EXPECT().Delete(gomock.Any(), "u1", "tok").Return(true, nil)
	devices.EXPECT().Delete(gomock.Any(), "u1", "gone").Return(false, nil)

	require.NoError(t, svc.RemoveDevice(context.Background(), "u1", "tok"))
	require.ErrorIs(t, svc.RemoveDevice(context.Background(), "u1", "gone"), apperr.NotFound)
	require.ErrorIs(t, svc.RemoveDevice(context.Background(), "", "tok"), apperr.Invalid)
}
