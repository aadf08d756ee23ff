package services

import (
	"context"
	"fmt"
	"time"

	"fleetwatch-backend/internal/apperr"
	"fleetwatch-backend/internal/models"
	"fleetwatch-backend/internal/query"
	"fleetwatch-backend/internal/repository"
)

// In-memory store fakes shared by the service tests.

type fakeAlertStore struct {
	alerts map[int64]*models.Alert
	nextID int64

	// Canned aggregation results.
	severityCounts map[string]int64
	statusCounts   map[string]int64
	typeStats      []models.TypeStat
	vehicleBuckets []repository.VehicleAlertCount
	hourStats      []models.HourStat
	dayBuckets     []repository.DayBucket

	rankingLimit  int
	rankingCalled bool
	page          []*models.Alert
	lastQuery     query.ListQuery
}

func newFakeAlertStore() *fakeAlertStore {
	return &fakeAlertStore{alerts: make(map[int64]*models.Alert)}
}

func (f *fakeAlertStore) Create(_ context.Context, alert *models.Alert) (*models.Alert, error) {
	f.nextID++
	alert.ID = f.nextID
	f.alerts[alert.ID] = alert
	return alert, nil
}

func (f *fakeAlertStore) FindByID(_ context.Context, id int64) (*models.Alert, error) {
	alert, ok := f.alerts[id]
	if !ok {
		return nil, fmt.Errorf("alert %d: %w", id, apperr.ErrNotFound)
	}
	return alert, nil
}

func (f *fakeAlertStore) FindPage(_ context.Context, _ repository.AlertScope, _ repository.AlertFilter, q query.ListQuery) ([]*models.Alert, error) {
	f.lastQuery = q
	return f.page, nil
}

func (f *fakeAlertStore) Count(_ context.Context, scope repository.AlertScope, filter repository.AlertFilter) (int64, error) {
	var count int64
	for _, a := range f.alerts {
		if id, ok := scope.ByUser(); ok && (a.UserID == nil || *a.UserID != id) {
			continue
		}
		if id, ok := scope.ByVehicle(); ok && (a.VehicleID == nil || *a.VehicleID != id) {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Severity != "" && a.Severity != filter.Severity {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeAlertStore) CountBySeverity(_ context.Context, severity string) (int64, error) {
	return f.severityCounts[severity], nil
}

func (f *fakeAlertStore) CountByStatus(_ context.Context, status string) (int64, error) {
	return f.statusCounts[status], nil
}

func (f *fakeAlertStore) CountGroupByType(_ context.Context) ([]models.TypeStat, error) {
	return f.typeStats, nil
}

func (f *fakeAlertStore) CountGroupByVehicle(_ context.Context, limit int) ([]repository.VehicleAlertCount, error) {
	f.rankingCalled = true
	f.rankingLimit = limit
	if len(f.vehicleBuckets) > limit {
		return f.vehicleBuckets[:limit], nil
	}
	return f.vehicleBuckets, nil
}

func (f *fakeAlertStore) CountGroupByHour(_ context.Context) ([]models.HourStat, error) {
	return f.hourStats, nil
}

func (f *fakeAlertStore) CountGroupByDayOfWeek(_ context.Context) ([]repository.DayBucket, error) {
	return f.dayBuckets, nil
}

func (f *fakeAlertStore) Update(_ context.Context, alert *models.Alert) (*models.Alert, error) {
	if _, ok := f.alerts[alert.ID]; !ok {
		return nil, fmt.Errorf("alert %d: %w", alert.ID, apperr.ErrNotFound)
	}
	f.alerts[alert.ID] = alert
	return alert, nil
}

func (f *fakeAlertStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.alerts[id]; !ok {
		return fmt.Errorf("alert %d: %w", id, apperr.ErrNotFound)
	}
	delete(f.alerts, id)
	return nil
}

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[int64]*models.User)}
	for _, u := range users {
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
	}
	return user, nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, apperr.ErrNotFound)
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", email, apperr.ErrNotFound)
}

func (f *fakeUserStore) FindAll(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) (*models.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return nil, fmt.Errorf("user %d: %w", user.ID, apperr.ErrNotFound)
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, apperr.ErrNotFound)
	}
	delete(f.users, id)
	return nil
}

type fakeVehicleStore struct {
	vehicles    map[int64]*models.Vehicle
	assignments map[int64][]int64 // userID -> vehicleIDs
	nextID      int64
}

func newFakeVehicleStore(vehicles ...*models.Vehicle) *fakeVehicleStore {
	f := &fakeVehicleStore{
		vehicles:    make(map[int64]*models.Vehicle),
		assignments: make(map[int64][]int64),
	}
	for _, v := range vehicles {
		if v.ID > f.nextID {
			f.nextID = v.ID
		}
		f.vehicles[v.ID] = v
	}
	return f
}

func (f *fakeVehicleStore) Create(_ context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	f.nextID++
	vehicle.ID = f.nextID
	f.vehicles[vehicle.ID] = vehicle
	return vehicle, nil
}

func (f *fakeVehicleStore) FindByID(_ context.Context, id int64) (*models.Vehicle, error) {
	vehicle, ok := f.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("vehicle %d: %w", id, apperr.ErrNotFound)
	}
	return vehicle, nil
}

func (f *fakeVehicleStore) FindByLicensePlate(_ context.Context, plate string) (*models.Vehicle, error) {
	for _, v := range f.vehicles {
		if v.LicensePlate == plate {
			return v, nil
		}
	}
	return nil, fmt.Errorf("vehicle %q: %w", plate, apperr.ErrNotFound)
}

func (f *fakeVehicleStore) FindAll(_ context.Context) ([]models.Vehicle, error) {
	out := make([]models.Vehicle, 0, len(f.vehicles))
	for _, v := range f.vehicles {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeVehicleStore) FindByStatus(_ context.Context, status string) ([]models.Vehicle, error) {
	var out []models.Vehicle
	for _, v := range f.vehicles {
		if v.Status == status {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVehicleStore) FindByUserID(_ context.Context, userID int64) ([]models.Vehicle, error) {
	var out []models.Vehicle
	for _, id := range f.assignments[userID] {
		if v, ok := f.vehicles[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVehicleStore) AssignToUser(_ context.Context, userID, vehicleID int64) error {
	for _, id := range f.assignments[userID] {
		if id == vehicleID {
			return nil
		}
	}
	f.assignments[userID] = append(f.assignments[userID], vehicleID)
	return nil
}

func (f *fakeVehicleStore) RemoveFromUser(_ context.Context, userID, vehicleID int64) error {
	ids := f.assignments[userID]
	for i, id := range ids {
		if id == vehicleID {
			f.assignments[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeVehicleStore) Update(_ context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	if _, ok := f.vehicles[vehicle.ID]; !ok {
		return nil, fmt.Errorf("vehicle %d: %w", vehicle.ID, apperr.ErrNotFound)
	}
	f.vehicles[vehicle.ID] = vehicle
	return vehicle, nil
}

func (f *fakeVehicleStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.vehicles[id]; !ok {
		return fmt.Errorf("vehicle %d: %w", id, apperr.ErrNotFound)
	}
	delete(f.vehicles, id)
	return nil
}

type fakeSensorStore struct {
	gps   []models.GPSData
	accel []models.AccelerometerData
	gyro  []models.GyroscopeData
}

func (f *fakeSensorStore) InsertGPS(_ context.Context, d *models.GPSData) (*models.GPSData, error) {
	d.ID = int64(len(f.gps) + 1)
	f.gps = append(f.gps, *d)
	return d, nil
}

func (f *fakeSensorStore) FindGPS(_ context.Context) ([]models.GPSData, error) {
	return f.gps, nil
}

func (f *fakeSensorStore) FindGPSByDevice(_ context.Context, deviceID string) ([]models.GPSData, error) {
	var out []models.GPSData
	for _, d := range f.gps {
		if d.DeviceID == deviceID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeSensorStore) FindGPSSince(_ context.Context, since time.Time) ([]models.GPSData, error) {
	var out []models.GPSData
	for _, d := range f.gps {
		if !d.Timestamp.Before(since) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeSensorStore) InsertAccelerometer(_ context.Context, d *models.AccelerometerData) (*models.AccelerometerData, error) {
	d.ID = int64(len(f.accel) + 1)
	f.accel = append(f.accel, *d)
	return d, nil
}

func (f *fakeSensorStore) FindAccelerometer(_ context.Context) ([]models.AccelerometerData, error) {
	return f.accel, nil
}

func (f *fakeSensorStore) FindAccelerometerByDevice(_ context.Context, deviceID string) ([]models.AccelerometerData, error) {
	var out []models.AccelerometerData
	for _, d := range f.accel {
		if d.DeviceID == deviceID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeSensorStore) FindAccelerometerSince(_ context.Context, since time.Time) ([]models.AccelerometerData, error) {
	var out []models.AccelerometerData
	for _, d := range f.accel {
		if !d.Timestamp.Before(since) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeSensorStore) InsertGyroscope(_ context.Context, d *models.GyroscopeData) (*models.GyroscopeData, error) {
	d.ID = int64(len(f.gyro) + 1)
	f.gyro = append(f.gyro, *d)
	return d, nil
}

func (f *fakeSensorStore) FindGyroscope(_ context.Context) ([]models.GyroscopeData, error) {
	return f.gyro, nil
}

func (f *fakeSensorStore) FindGyroscopeByDevice(_ context.Context, deviceID string) ([]models.GyroscopeData, error) {
	var out []models.GyroscopeData
	for _, d := range f.gyro {
		if d.DeviceID == deviceID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeSensorStore) FindGyroscopeSince(_ context.Context, since time.Time) ([]models.GyroscopeData, error) {
	var out []models.GyroscopeData
	for _, d := range f.gyro {
		if !d.Timestamp.Before(since) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeSensorStore) DistinctDeviceIDs(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, d := range f.gps {
		if !seen[d.DeviceID] {
			seen[d.DeviceID] = true
			out = append(out, d.DeviceID)
		}
	}
	for _, d := range f.accel {
		if !seen[d.DeviceID] {
			seen[d.DeviceID] = true
			out = append(out, d.DeviceID)
		}
	}
	for _, d := range f.gyro {
		if !seen[d.DeviceID] {
			seen[d.DeviceID] = true
			out = append(out, d.DeviceID)
		}
	}
	return out, nil
}

func (f *fakeSensorStore) CountGPS(_ context.Context) (int64, error) {
	return int64(len(f.gps)), nil
}

func (f *fakeSensorStore) CountAccelerometer(_ context.Context) (int64, error) {
	return int64(len(f.accel)), nil
}

func (f *fakeSensorStore) CountGyroscope(_ context.Context) (int64, error) {
	return int64(len(f.gyro)), nil
}
