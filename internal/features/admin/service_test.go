package admin

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go-chat/internal/features/channel"
	"go-chat/internal/features/group"
	"go-chat/internal/features/message"
	"go-chat/internal/features/user"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// countGate blocks every arriving counter until all expected counters have
// arrived; if the queries ran sequentially the first one would time out.
type countGate struct {
	remaining int32
	release   chan struct{}
}

func newCountGate(expected int32) *countGate {
	return &countGate{remaining: expected, release: make(chan struct{})}
}

func (g *countGate) arrive() error {
	if atomic.AddInt32(&g.remaining, -1) == 0 {
		close(g.release)
	}
	select {
	case <-g.release:
		return nil
	case <-time.After(2 * time.Second):
		return errors.New("count queries did not run concurrently")
	}
}

type MockUserRepo struct {
	Total    int64
	Active   int64
	NewCount int64
	Users    []user.User
	Err      error
	Gate     *countGate
}

func (m *MockUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (m *MockUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*user.User, error) {
	return nil, nil
}
func (m *MockUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, nil
}
func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (m *MockUserRepo) List(ctx context.Context, search string, limit, offset int64) ([]user.User, int64, error) {
	return m.Users, int64(len(m.Users)), m.Err
}
func (m *MockUserRepo) Update(ctx context.Context, id primitive.ObjectID, u *user.User) error {
	return nil
}
func (m *MockUserRepo) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return nil
}
func (m *MockUserRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return 0, nil
}
func (m *MockUserRepo) Count(ctx context.Context) (int64, error) {
	if m.Gate != nil {
		if err := m.Gate.arrive(); err != nil {
			return 0, err
		}
	}
	return m.Total, m.Err
}
func (m *MockUserRepo) CountActive(ctx context.Context) (int64, error) {
	if m.Gate != nil {
		if err := m.Gate.arrive(); err != nil {
			return 0, err
		}
	}
	return m.Active, m.Err
}
func (m *MockUserRepo) CountNewSince(ctx context.Context, since time.Time) (int64, error) {
	return m.NewCount, m.Err
}

type MockGroupRepo struct {
	Total  int64
	Active int64
	Err    error
	Gate   *countGate
}

func (m *MockGroupRepo) Create(ctx context.Context, g *group.Group) error { return nil }
func (m *MockGroupRepo) FindAll(ctx context.Context) ([]group.Group, error) {
	return nil, nil
}
func (m *MockGroupRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*group.Group, error) {
	return nil, nil
}
func (m *MockGroupRepo) Update(ctx context.Context, id primitive.ObjectID, g *group.Group) error {
	return nil
}
func (m *MockGroupRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return 0, nil
}
func (m *MockGroupRepo) AddMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	return nil
}
func (m *MockGroupRepo) RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	return nil
}
func (m *MockGroupRepo) FindByMember(ctx context.Context, userID primitive.ObjectID) ([]group.Group, error) {
	return nil, nil
}
func (m *MockGroupRepo) Count(ctx context.Context) (int64, error) {
	if m.Gate != nil {
		if err := m.Gate.arrive(); err != nil {
			return 0, err
		}
	}
	return m.Total, m.Err
}
func (m *MockGroupRepo) CountActive(ctx context.Context) (int64, error) { return m.Active, m.Err }

type MockChannelRepo struct {
	Total  int64
	Active int64
	Err    error
	Gate   *countGate
}

func (m *MockChannelRepo) Create(ctx context.Context, c *channel.Channel) error { return nil }
func (m *MockChannelRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*channel.Channel, error) {
	return nil, nil
}
func (m *MockChannelRepo) FindByGroup(ctx context.Context, groupID primitive.ObjectID) ([]channel.Channel, error) {
	return nil, nil
}
func (m *MockChannelRepo) Update(ctx context.Context, id primitive.ObjectID, c *channel.Channel) error {
	return nil
}
func (m *MockChannelRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return 0, nil
}
func (m *MockChannelRepo) Count(ctx context.Context) (int64, error) {
	if m.Gate != nil {
		if err := m.Gate.arrive(); err != nil {
			return 0, err
		}
	}
	return m.Total, m.Err
}
func (m *MockChannelRepo) CountActive(ctx context.Context) (int64, error) { return m.Active, m.Err }

type MockMessageRepo struct {
	Total int64
	Today int64
	Err   error
	Gate  *countGate
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *message.Message) error { return nil }
func (m *MockMessageRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*message.Message, error) {
	return nil, nil
}
func (m *MockMessageRepo) FindByChannel(ctx context.Context, channelID primitive.ObjectID, limit, offset int64) ([]message.Message, error) {
	return nil, nil
}
func (m *MockMessageRepo) FindByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int64) ([]message.Message, error) {
	return nil, nil
}
func (m *MockMessageRepo) Search(ctx context.Context, filter message.SearchFilter) ([]message.Message, error) {
	return nil, nil
}
func (m *MockMessageRepo) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) error {
	return nil
}
func (m *MockMessageRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return 0, nil
}
func (m *MockMessageRepo) Count(ctx context.Context) (int64, error) {
	if m.Gate != nil {
		if err := m.Gate.arrive(); err != nil {
			return 0, err
		}
	}
	return m.Total, m.Err
}
func (m *MockMessageRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return m.Today, m.Err
}
func (m *MockMessageRepo) CountByChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	return 0, nil
}

func newTestService(users *MockUserRepo, groups *MockGroupRepo, channels *MockChannelRepo, messages *MockMessageRepo) AdminService {
	return NewAdminService(users, groups, channels, messages, zap.NewNop())
}

func TestDashboardStatsAggregatesAllCounters(t *testing.T) {
	service := newTestService(
		&MockUserRepo{Total: 10, Active: 7},
		&MockGroupRepo{Total: 3},
		&MockChannelRepo{Total: 12},
		&MockMessageRepo{Total: 250},
	)

	stats, err := service.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardStats failed: %v", err)
	}

	if stats.TotalUsers != 10 || stats.TotalGroups != 3 || stats.TotalChannels != 12 || stats.TotalMessages != 250 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if stats.ActiveUsers != 7 {
		t.Errorf("expected 7 active users, got %d", stats.ActiveUsers)
	}
	if stats.RecentActivity == nil || len(stats.RecentActivity) != 0 {
		t.Error("recent activity should be an empty list")
	}
}

func TestDashboardStatsCountsRunConcurrently(t *testing.T) {
	gate := newCountGate(5)
	service := newTestService(
		&MockUserRepo{Total: 10, Active: 7, Gate: gate},
		&MockGroupRepo{Total: 3, Gate: gate},
		&MockChannelRepo{Total: 12, Gate: gate},
		&MockMessageRepo{Total: 250, Gate: gate},
	)

	stats, err := service.GetDashboardStats(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardStats failed: %v", err)
	}
	if stats.TotalUsers != 10 {
		t.Errorf("expected 10 users, got %d", stats.TotalUsers)
	}
}

func TestDashboardStatsFailsWhenAnyCountFails(t *testing.T) {
	service := newTestService(
		&MockUserRepo{Total: 10},
		&MockGroupRepo{Err: errors.New("connection reset")},
		&MockChannelRepo{},
		&MockMessageRepo{},
	)

	if _, err := service.GetDashboardStats(context.Background()); err == nil {
		t.Fatal("expected error when a counter fails")
	}
}

func TestSystemStatsDerivesInactiveCounts(t *testing.T) {
	service := newTestService(
		&MockUserRepo{Total: 20, Active: 15, NewCount: 4},
		&MockGroupRepo{Total: 6, Active: 5},
		&MockChannelRepo{Total: 9, Active: 6},
		&MockMessageRepo{Total: 500, Today: 42},
	)

	stats, err := service.GetSystemStats(context.Background())
	if err != nil {
		t.Fatalf("GetSystemStats failed: %v", err)
	}

	if stats.Users.Inactive != 5 {
		t.Errorf("expected 5 inactive users, got %d", stats.Users.Inactive)
	}
	if stats.Users.NewThisWeek != 4 {
		t.Errorf("expected 4 new users, got %d", stats.Users.NewThisWeek)
	}
	if stats.Groups.Inactive != 1 {
		t.Errorf("expected 1 inactive group, got %d", stats.Groups.Inactive)
	}
	if stats.Channels.Inactive != 3 {
		t.Errorf("expected 3 inactive channels, got %d", stats.Channels.Inactive)
	}
	if stats.Messages.Today != 42 {
		t.Errorf("expected 42 messages today, got %d", stats.Messages.Today)
	}
	if stats.Storage.TotalFiles != 0 || stats.Storage.TotalSize != 0 {
		t.Error("storage stats should report zero until uploads exist")
	}
}

func TestUserActivityIsEmpty(t *testing.T) {
	service := newTestService(&MockUserRepo{}, &MockGroupRepo{}, &MockChannelRepo{}, &MockMessageRepo{})

	activity, err := service.GetUserActivity(context.Background())
	if err != nil {
		t.Fatalf("GetUserActivity failed: %v", err)
	}
	if activity == nil || len(activity) != 0 {
		t.Error("expected an empty activity list")
	}
}

func TestExportUsersProducesReadableWorkbook(t *testing.T) {
	lastLogin := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	users := []user.User{
		{
			ID:        primitive.NewObjectID(),
			Username:  "alice",
			Email:     "alice@example.com",
			Roles:     []string{"user", "admin"},
			IsActive:  true,
			LastLogin: &lastLogin,
			CreatedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        primitive.NewObjectID(),
			Username:  "bob",
			Email:     "bob@example.com",
			Roles:     []string{"user"},
			CreatedAt: time.Date(2025, 2, 20, 9, 0, 0, 0, time.UTC),
		},
	}

	service := newTestService(&MockUserRepo{Users: users}, &MockGroupRepo{}, &MockChannelRepo{}, &MockMessageRepo{})

	data, err := service.ExportUsers(context.Background())
	if err != nil {
		t.Fatalf("ExportUsers failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("export is not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Users")
	if err != nil {
		t.Fatalf("missing Users sheet: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "Username" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][1] != "alice" || rows[2][1] != "bob" {
		t.Errorf("unexpected user rows: %v %v", rows[1], rows[2])
	}
}
