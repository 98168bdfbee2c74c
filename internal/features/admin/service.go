package admin

import (
	"bytes"
	"context"
	"strings"
	"time"

	"go-chat/internal/features/channel"
	"go-chat/internal/features/group"
	"go-chat/internal/features/message"
	"go-chat/internal/features/user"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DashboardStats is the landing-page summary for the admin console.
type DashboardStats struct {
	TotalUsers     int64         `json:"totalUsers"`
	TotalGroups    int64         `json:"totalGroups"`
	TotalChannels  int64         `json:"totalChannels"`
	TotalMessages  int64         `json:"totalMessages"`
	ActiveUsers    int64         `json:"activeUsers"`
	RecentActivity []interface{} `json:"recentActivity"`
}

type EntityStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type UserStats struct {
	EntityStats
	NewThisWeek int64 `json:"newThisWeek"`
}

type MessageStats struct {
	Total int64 `json:"total"`
	Today int64 `json:"today"`
}

// StorageStats is a placeholder until file uploads land; the fields are
// reported as zero so API consumers can already bind to the shape.
type StorageStats struct {
	TotalFiles int64 `json:"totalFiles"`
	TotalSize  int64 `json:"totalSize"`
}

type SystemStats struct {
	Users    UserStats    `json:"users"`
	Groups   EntityStats  `json:"groups"`
	Channels EntityStats  `json:"channels"`
	Messages MessageStats `json:"messages"`
	Storage  StorageStats `json:"storage"`
}

type AdminService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetSystemStats(ctx context.Context) (*SystemStats, error)
	GetGroupStats(ctx context.Context) (*EntityStats, error)
	GetChannelStats(ctx context.Context) (*EntityStats, error)
	GetUserActivity(ctx context.Context) ([]interface{}, error)
	ExportUsers(ctx context.Context) ([]byte, error)
}

type AdminServiceImpl struct {
	userRepo    user.UserRepository
	groupRepo   group.GroupRepository
	channelRepo channel.ChannelRepository
	messageRepo message.MessageRepository
	logger      *zap.Logger
}

func NewAdminService(
	userRepo user.UserRepository,
	groupRepo group.GroupRepository,
	channelRepo channel.ChannelRepository,
	messageRepo message.MessageRepository,
	logger *zap.Logger,
) AdminService {
	return &AdminServiceImpl{
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		channelRepo: channelRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// GetDashboardStats gathers the counters concurrently; the first failed
// count cancels the rest and fails the whole request.
func (s *AdminServiceImpl) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{RecentActivity: []interface{}{}}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalUsers, err = s.userRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalGroups, err = s.groupRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalChannels, err = s.channelRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalMessages, err = s.messageRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveUsers, err = s.userRepo.CountActive(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *AdminServiceImpl) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	stats := &SystemStats{}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		users, err := s.entityStats(gctx, s.userRepo.Count, s.userRepo.CountActive)
		if err != nil {
			return err
		}
		stats.Users.EntityStats = *users

		stats.Users.NewThisWeek, err = s.userRepo.CountNewSince(gctx, weekAgo)
		return err
	})
	g.Go(func() error {
		groups, err := s.entityStats(gctx, s.groupRepo.Count, s.groupRepo.CountActive)
		if err != nil {
			return err
		}
		stats.Groups = *groups
		return nil
	})
	g.Go(func() error {
		channels, err := s.entityStats(gctx, s.channelRepo.Count, s.channelRepo.CountActive)
		if err != nil {
			return err
		}
		stats.Channels = *channels
		return nil
	})
	g.Go(func() (err error) {
		stats.Messages.Total, err = s.messageRepo.Count(gctx)
		if err != nil {
			return err
		}
		stats.Messages.Today, err = s.messageRepo.CountSince(gctx, startOfDay)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *AdminServiceImpl) entityStats(
	ctx context.Context,
	count func(context.Context) (int64, error),
	countActive func(context.Context) (int64, error),
) (*EntityStats, error) {
	total, err := count(ctx)
	if err != nil {
		return nil, err
	}

	active, err := countActive(ctx)
	if err != nil {
		return nil, err
	}

	return &EntityStats{
		Total:    total,
		Active:   active,
		Inactive: total - active,
	}, nil
}

func (s *AdminServiceImpl) GetGroupStats(ctx context.Context) (*EntityStats, error) {
	return s.entityStats(ctx, s.groupRepo.Count, s.groupRepo.CountActive)
}

func (s *AdminServiceImpl) GetChannelStats(ctx context.Context) (*EntityStats, error) {
	return s.entityStats(ctx, s.channelRepo.Count, s.channelRepo.CountActive)
}

// GetUserActivity returns an empty list; per-user activity tracking has no
// backing events yet but the endpoint shape is fixed.
func (s *AdminServiceImpl) GetUserActivity(ctx context.Context) ([]interface{}, error) {
	return []interface{}{}, nil
}

var exportHeaders = []string{"ID", "Username", "Email", "Roles", "Active", "Last Login", "Created At"}

// ExportUsers renders the full user list to an XLSX workbook.
func (s *AdminServiceImpl) ExportUsers(ctx context.Context) ([]byte, error) {
	users, _, err := s.userRepo.List(ctx, "", 0, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Users"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, u := range users {
		lastLogin := ""
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format(time.RFC3339)
		}

		values := []interface{}{
			u.ID.Hex(),
			u.Username,
			u.Email,
			strings.Join(u.Roles, ", "),
			u.IsActive,
			lastLogin,
			u.CreatedAt.Format(time.RFC3339),
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	s.logger.Info("exported users", zap.Int("count", len(users)))
	return buf.Bytes(), nil
}
