package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botadmin-backend/internal/domain"
	"botadmin-backend/internal/repository"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func validForm() BotFormInput {
	return BotFormInput{
		Crypto:             "Bitcoin",
		Interval:           "5 minut",
		Strategy:           "LAX",
		Nazwa:              "Testowy bot",
		DesiredState:       domain.StateStopped,
		DryRun:             "true",
		StrategyEnabled:    "true",
		StrategyMode:       domain.StrategyModeMomentum,
		BuyOpposite:        "false",
		OrderSize:          "10",
		MomentumThreshold:  "0.25",
		MomentumSec:        "20",
		ConfirmationMethod: domain.ConfirmationSustained,
		StopLoss:           "0.15",
	}
}

func TestCreateBot(t *testing.T) {
	bots := repository.NewMemoryBotRepository()
	servers := repository.NewMemoryServerRepository()
	svc := NewBotService(bots, servers, quietLogger())

	res, err := svc.Create(context.Background(), CreateBotInput{
		BotFormInput: validForm(),
		OwnerID:      "u1",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Bot)
	assert.Empty(t, res.Warning)

	bot := res.Bot
	assert.Equal(t, "u1--btc-5m-lax-d20-25--1", bot.InstanceName)
	assert.Equal(t, "u1", bot.OwnerID)
	assert.Equal(t, domain.StateStopped, bot.DesiredState)
	assert.Nil(t, bot.ServerID)

	cfg := bot.StrategyConfig
	assert.Equal(t, "btc-updown-5m", cfg.BaseSeriesSlug)
	assert.Equal(t, "5m", cfg.MarketInterval)
	assert.Equal(t, bot.InstanceName, cfg.BotInstance)
	assert.Equal(t, "Testowy bot", cfg.Nazwa)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.StrategyEnabled)
	assert.False(t, cfg.BuyOpposite)
	assert.Equal(t, 10, cfg.OrderSize)
	assert.Equal(t, 0.25, cfg.MomentumThreshold)
	assert.Equal(t, 20, cfg.MomentumConfirmationSec)
	require.NotNil(t, cfg.StopLoss)
	assert.Equal(t, 0.15, *cfg.StopLoss)
	assert.Nil(t, cfg.MaxSpread)
	assert.Equal(t, "/srv/polymarket/users/u1/.secrets", cfg.SecretsPath)
}

func TestCreateBotRunningAttachesServer(t *testing.T) {
	svc := NewBotService(repository.NewMemoryBotRepository(), repository.NewMemoryServerRepository(), quietLogger())

	form := validForm()
	form.DesiredState = domain.StateRunning
	form.ServerID = "srv-1"

	res, err := svc.Create(context.Background(), CreateBotInput{BotFormInput: form, OwnerID: "u1"})
	require.NoError(t, err)
	require.NotNil(t, res.Bot.ServerID)
	assert.Equal(t, "srv-1", *res.Bot.ServerID)
}

func TestCreateBotMissingInputs(t *testing.T) {
	svc := NewBotService(repository.NewMemoryBotRepository(), repository.NewMemoryServerRepository(), quietLogger())

	form := validForm()
	form.Crypto = ""
	_, err := svc.Create(context.Background(), CreateBotInput{BotFormInput: form, OwnerID: "u1"})
	assert.Error(t, err)
}

func TestCreateBotInvalidNumber(t *testing.T) {
	svc := NewBotService(repository.NewMemoryBotRepository(), repository.NewMemoryServerRepository(), quietLogger())

	form := validForm()
	form.OrderSize = "ten"
	_, err := svc.Create(context.Background(), CreateBotInput{BotFormInput: form, OwnerID: "u1"})
	assert.ErrorContains(t, err, "orderSize")
}

func TestCopyKillsPreviousBot(t *testing.T) {
	source := domain.BotInstance{ID: 3, InstanceName: "u1--btc-5m-lax-d20-25--3", OwnerID: "u1", DesiredState: domain.StateRunning}
	bots := repository.NewMemoryBotRepository(source)
	svc := NewBotService(bots, repository.NewMemoryServerRepository(), quietLogger())

	sourceID := int64(3)
	res, err := svc.Create(context.Background(), CreateBotInput{
		BotFormInput:    validForm(),
		OwnerID:         "u1",
		KillPreviousBot: true,
		SourceBotID:     &sourceID,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Warning)

	killed, err := bots.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.StateStopped, killed.DesiredState)
}

func TestCopyKillFailureIsWarningOnly(t *testing.T) {
	bots := repository.NewMemoryBotRepository()
	svc := NewBotService(bots, repository.NewMemoryServerRepository(), quietLogger())

	missing := int64(99)
	res, err := svc.Create(context.Background(), CreateBotInput{
		BotFormInput:    validForm(),
		OwnerID:         "u1",
		KillPreviousBot: true,
		SourceBotID:     &missing,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Bot)
	assert.Contains(t, res.Warning, "Nie udało się zatrzymać poprzedniego bota")
}

func TestToggleStartRequiresServer(t *testing.T) {
	bots := repository.NewMemoryBotRepository(domain.BotInstance{ID: 1, DesiredState: domain.StateStopped})
	svc := NewBotService(bots, repository.NewMemoryServerRepository(), quietLogger())

	_, err := svc.ToggleDesiredState(context.Background(), 1)
	assert.ErrorContains(t, err, "server_id")
}

func TestToggleStartRejectsFullServer(t *testing.T) {
	serverID := "srv-1"
	bots := repository.NewMemoryBotRepository(domain.BotInstance{ID: 1, DesiredState: domain.StateStopped, ServerID: &serverID})
	servers := repository.NewMemoryServerRepository(domain.ServerStatus{ID: "srv-1", DesiredRunning: 5, AvailableSlots: 5})
	svc := NewBotService(bots, servers, quietLogger())

	_, err := svc.ToggleDesiredState(context.Background(), 1)
	assert.ErrorContains(t, err, "Serwer srv-1 jest pełny (5/5)")

	bot, getErr := bots.GetByID(context.Background(), 1)
	require.NoError(t, getErr)
	assert.Equal(t, domain.StateStopped, bot.DesiredState)
}

func TestToggleStartWithFreeSlot(t *testing.T) {
	serverID := "srv-1"
	bots := repository.NewMemoryBotRepository(domain.BotInstance{ID: 1, DesiredState: domain.StateStopped, ServerID: &serverID})
	servers := repository.NewMemoryServerRepository(domain.ServerStatus{ID: "srv-1", DesiredRunning: 2, AvailableSlots: 5})
	svc := NewBotService(bots, servers, quietLogger())

	bot, err := svc.ToggleDesiredState(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StateRunning, bot.DesiredState)
}

func TestToggleStartUnknownServerAllowed(t *testing.T) {
	serverID := "srv-ghost"
	bots := repository.NewMemoryBotRepository(domain.BotInstance{ID: 1, DesiredState: domain.StateStopped, ServerID: &serverID})
	servers := repository.NewMemoryServerRepository(domain.ServerStatus{ID: "srv-1", DesiredRunning: 5, AvailableSlots: 5})
	svc := NewBotService(bots, servers, quietLogger())

	bot, err := svc.ToggleDesiredState(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StateRunning, bot.DesiredState)
}

func TestToggleStopAlwaysAllowed(t *testing.T) {
	serverID := "srv-1"
	bots := repository.NewMemoryBotRepository(domain.BotInstance{ID: 1, DesiredState: domain.StateRunning, ServerID: &serverID})
	svc := NewBotService(bots, repository.NewMemoryServerRepository(), quietLogger())

	bot, err := svc.ToggleDesiredState(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StateStopped, bot.DesiredState)
}

func TestToggleUnknownBot(t *testing.T) {
	svc := NewBotService(repository.NewMemoryBotRepository(), repository.NewMemoryServerRepository(), quietLogger())

	_, err := svc.ToggleDesiredState(context.Background(), 42)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateClearsServerWhenStopped(t *testing.T) {
	serverID := "srv-1"
	bots := repository.NewMemoryBotRepository(domain.BotInstance{
		ID: 1, InstanceName: "u1--btc-5m-lax-d20-25--1", OwnerID: "u1",
		DesiredState: domain.StateRunning, ServerID: &serverID,
	})
	svc := NewBotService(bots, repository.NewMemoryServerRepository(), quietLogger())

	form := validForm()
	form.DesiredState = domain.StateStopped
	form.ServerID = "srv-1"

	bot, err := svc.Update(context.Background(), 1, form)
	require.NoError(t, err)
	assert.Equal(t, domain.StateStopped, bot.DesiredState)
	assert.Nil(t, bot.ServerID)
	// the generated name never changes on edit
	assert.Equal(t, "u1--btc-5m-lax-d20-25--1", bot.StrategyConfig.BotInstance)
}

func TestNextSequence(t *testing.T) {
	bots := repository.NewMemoryBotRepository(domain.BotInstance{ID: 7})
	svc := NewBotService(bots, repository.NewMemoryServerRepository(), quietLogger())

	seq, err := svc.NextSequence(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), seq)
}
