package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arentz1234-code/jrodstudios/internal/domain"
	blockedRepo "github.com/arentz1234-code/jrodstudios/internal/infra/storage/blockedtime"
	"github.com/arentz1234-code/jrodstudios/internal/service/schedule/models"
)

type fakeHoursRepo struct {
	rules map[time.Weekday]*domain.DayRule
}

func newFakeHoursRepo() *fakeHoursRepo {
	return &fakeHoursRepo{rules: make(map[time.Weekday]*domain.DayRule)}
}

func (f *fakeHoursRepo) GetAll(_ context.Context) ([]*domain.DayRule, error) {
	rules := make([]*domain.DayRule, 0, len(f.rules))
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		if rule, ok := f.rules[weekday]; ok {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func (f *fakeHoursRepo) GetByWeekday(_ context.Context, weekday time.Weekday) (*domain.DayRule, error) {
	return f.rules[weekday], nil
}

func (f *fakeHoursRepo) Upsert(_ context.Context, update domain.DayRuleUpdate) (*domain.DayRule, error) {
	rule := &domain.DayRule{
		Weekday:    update.Weekday,
		IsOpen:     update.IsOpen,
		OpenTime:   update.OpenTime,
		CloseTime:  update.CloseTime,
		BreakStart: update.BreakStart,
		BreakEnd:   update.BreakEnd,
	}
	f.rules[update.Weekday] = rule
	return rule, nil
}

type fakeBlockedRepo struct {
	blocks map[int64]*domain.BlockedTime
	nextID int64
}

func newFakeBlockedRepo() *fakeBlockedRepo {
	return &fakeBlockedRepo{blocks: make(map[int64]*domain.BlockedTime), nextID: 1}
}

func (f *fakeBlockedRepo) Create(_ context.Context, block *domain.BlockedTime) (*domain.BlockedTime, error) {
	created := *block
	created.ID = f.nextID
	f.nextID++
	f.blocks[created.ID] = &created
	return &created, nil
}

func (f *fakeBlockedRepo) List(_ context.Context, _ *time.Time) ([]*domain.BlockedTime, error) {
	blocks := make([]*domain.BlockedTime, 0, len(f.blocks))
	for _, block := range f.blocks {
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func (f *fakeBlockedRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.blocks[id]; !ok {
		return blockedRepo.ErrBlockNotFound
	}
	delete(f.blocks, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func strPtr(s string) *string {
	return &s
}

func TestUpdateBusinessHours(t *testing.T) {
	hours := newFakeHoursRepo()
	svc := NewService(hours, newFakeBlockedRepo(), nopLogger{})

	req := &models.UpdateBusinessHoursRequest{
		Rules: []models.DayRuleRequest{
			{Weekday: 0, IsOpen: false},
			{Weekday: 2, IsOpen: true, OpenTime: strPtr("09:00"), CloseTime: strPtr("18:00"),
				BreakStart: strPtr("13:00"), BreakEnd: strPtr("14:00")},
			{Weekday: 6, IsOpen: true, OpenTime: strPtr("08:00"), CloseTime: strPtr("14:00")},
		},
	}

	resp, err := svc.UpdateBusinessHours(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Rules, 3)

	assert.False(t, resp.Rules[0].IsOpen)
	assert.Equal(t, "09:00", *resp.Rules[1].OpenTime)
	assert.Equal(t, "13:00", *resp.Rules[1].BreakStart)
	assert.Nil(t, resp.Rules[2].BreakStart)
}

func TestUpdateBusinessHoursValidation(t *testing.T) {
	tests := []struct {
		name string
		rule models.DayRuleRequest
	}{
		{"open without times", models.DayRuleRequest{Weekday: 2, IsOpen: true}},
		{"open after close", models.DayRuleRequest{Weekday: 2, IsOpen: true,
			OpenTime: strPtr("18:00"), CloseTime: strPtr("09:00")}},
		{"half break", models.DayRuleRequest{Weekday: 2, IsOpen: true,
			OpenTime: strPtr("09:00"), CloseTime: strPtr("18:00"), BreakStart: strPtr("13:00")}},
		{"break outside window", models.DayRuleRequest{Weekday: 2, IsOpen: true,
			OpenTime: strPtr("09:00"), CloseTime: strPtr("18:00"),
			BreakStart: strPtr("17:30"), BreakEnd: strPtr("18:30")}},
		{"inverted break", models.DayRuleRequest{Weekday: 2, IsOpen: true,
			OpenTime: strPtr("09:00"), CloseTime: strPtr("18:00"),
			BreakStart: strPtr("14:00"), BreakEnd: strPtr("13:00")}},
		{"bad weekday", models.DayRuleRequest{Weekday: 7, IsOpen: false}},
		{"bad time format", models.DayRuleRequest{Weekday: 2, IsOpen: true,
			OpenTime: strPtr("9am"), CloseTime: strPtr("18:00")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeHoursRepo(), newFakeBlockedRepo(), nopLogger{})

			_, err := svc.UpdateBusinessHours(context.Background(), &models.UpdateBusinessHoursRequest{
				Rules: []models.DayRuleRequest{tt.rule},
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateBusinessHoursDuplicateWeekday(t *testing.T) {
	svc := NewService(newFakeHoursRepo(), newFakeBlockedRepo(), nopLogger{})

	_, err := svc.UpdateBusinessHours(context.Background(), &models.UpdateBusinessHoursRequest{
		Rules: []models.DayRuleRequest{
			{Weekday: 1, IsOpen: false},
			{Weekday: 1, IsOpen: false},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBlockedTime(t *testing.T) {
	svc := NewService(newFakeHoursRepo(), newFakeBlockedRepo(), nopLogger{})

	t.Run("partial block", func(t *testing.T) {
		resp, err := svc.CreateBlockedTime(context.Background(), &models.CreateBlockedTimeRequest{
			Date:      "2026-03-17",
			StartTime: strPtr("15:00"),
			EndTime:   strPtr("16:00"),
			Reason:    strPtr("Dentist"),
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-03-17", resp.Date)
		assert.Equal(t, "15:00", *resp.StartTime)
		assert.False(t, resp.AllDay)
	})

	t.Run("all-day block", func(t *testing.T) {
		resp, err := svc.CreateBlockedTime(context.Background(), &models.CreateBlockedTimeRequest{
			Date:   "2026-03-20",
			AllDay: true,
		})
		require.NoError(t, err)
		assert.True(t, resp.AllDay)
		assert.Nil(t, resp.StartTime)
	})
}

func TestCreateBlockedTimeValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateBlockedTimeRequest
	}{
		{"bad date", models.CreateBlockedTimeRequest{Date: "17.03.2026", AllDay: true}},
		{"all-day with interval", models.CreateBlockedTimeRequest{Date: "2026-03-17",
			AllDay: true, StartTime: strPtr("15:00"), EndTime: strPtr("16:00")}},
		{"partial without interval", models.CreateBlockedTimeRequest{Date: "2026-03-17"}},
		{"inverted interval", models.CreateBlockedTimeRequest{Date: "2026-03-17",
			StartTime: strPtr("16:00"), EndTime: strPtr("15:00")}},
		{"bad time", models.CreateBlockedTimeRequest{Date: "2026-03-17",
			StartTime: strPtr("3pm"), EndTime: strPtr("16:00")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeHoursRepo(), newFakeBlockedRepo(), nopLogger{})

			_, err := svc.CreateBlockedTime(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDeleteBlockedTime(t *testing.T) {
	blocked := newFakeBlockedRepo()
	svc := NewService(newFakeHoursRepo(), blocked, nopLogger{})

	created, err := svc.CreateBlockedTime(context.Background(), &models.CreateBlockedTimeRequest{
		Date:   "2026-03-17",
		AllDay: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBlockedTime(context.Background(), created.ID))
	assert.ErrorIs(t, svc.DeleteBlockedTime(context.Background(), created.ID), ErrBlockNotFound)
}
