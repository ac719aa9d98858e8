package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"botadmin-backend/internal/domain"
)

// BotService orchestrates bot_instances writes: create, copy, edit, delete
// and desired-state toggling with the server-slot guard.
type BotService struct {
	bots    domain.BotInstanceRepository
	servers domain.ServerStatusRepository
	log     *logrus.Logger
}

func NewBotService(bots domain.BotInstanceRepository, servers domain.ServerStatusRepository, log *logrus.Logger) *BotService {
	return &BotService{bots: bots, servers: servers, log: log}
}

// BotFormInput is the raw form payload for create and edit. Numeric and
// boolean knobs arrive as strings from select/input controls and are coerced
// here, at the boundary; a blank optional becomes null in the stored config.
type BotFormInput struct {
	Crypto                 string `json:"crypto"`
	Interval               string `json:"interval"`
	Strategy               string `json:"strategy"`
	Nazwa                  string `json:"nazwa"`
	DesiredState           string `json:"desiredState"`
	ServerID               string `json:"serverId"`
	DryRun                 string `json:"dryRun"`
	StrategyEnabled        string `json:"strategyEnabled"`
	StrategyMode           string `json:"strategyMode"`
	BuyOpposite            string `json:"buyOpposite"`
	OrderSize              string `json:"orderSize"`
	MomentumThreshold      string `json:"momentumThreshold"`
	MomentumSec            string `json:"momentumSec"`
	ConfirmationMethod     string `json:"confirmationMethod"`
	ConfirmationTolerance  string `json:"confirmationTolerance"`
	EntryThreshold         string `json:"entryThreshold"`
	MaxReversalEntryPrice  string `json:"maxReversalEntryPrice"`
	VelocityMinTicks       string `json:"velocityMinTicks"`
	VelocityMinIncrease    string `json:"velocityMinIncrease"`
	MaxSpread              string `json:"maxSpread"`
	WarmupDelaySec         string `json:"warmupDelaySec"`
	MinTimeRemaining       string `json:"minTimeRemaining"`
	MaxReentries           string `json:"maxReentries"`
	ExitPrice              string `json:"exitPrice"`
	ExitBeforeCloseSec     string `json:"exitBeforeCloseSec"`
	StopLoss               string `json:"stopLoss"`
	AggressiveExitUnderbid string `json:"aggressiveExitUnderbid"`
	ExitMaxRetries         string `json:"exitMaxRetries"`
	ExitPriceDecrement     string `json:"exitPriceDecrement"`
}

// CreateBotInput wraps the form with the copy controls.
type CreateBotInput struct {
	BotFormInput
	OwnerID         string `json:"ownerId"`
	KillPreviousBot bool   `json:"killPreviousBot"`
	SourceBotID     *int64 `json:"sourceBotId"`
}

// CreateBotResult carries the inserted row plus the non-fatal copy warning.
type CreateBotResult struct {
	Bot     *domain.BotInstance `json:"bot"`
	Warning string              `json:"warning,omitempty"`
}

// secretsPath is where the runtime expects per-owner credentials on the host.
func secretsPath(ownerID string) string {
	return fmt.Sprintf("/srv/polymarket/users/%s/.secrets", ownerID)
}

// Create inserts one bot. Also serves copy: when KillPreviousBot and
// SourceBotID are set, the source bot is stopped after a successful insert;
// a failed stop is reported as a warning, never rolls the insert back.
func (s *BotService) Create(ctx context.Context, in CreateBotInput) (*CreateBotResult, error) {
	if missing := MissingNameInputs(NameInputs{Crypto: in.Crypto, Interval: in.Interval, Strategy: in.Strategy}); len(missing) > 0 {
		return nil, fmt.Errorf("brakujące pola: %v", missing)
	}

	cfg, err := s.buildConfig(in.BotFormInput, in.OwnerID)
	if err != nil {
		return nil, err
	}

	seq, err := s.bots.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("next id: %w", err)
	}

	name := InstanceName(NameInputs{
		OwnerID:           in.OwnerID,
		Crypto:            in.Crypto,
		Interval:          in.Interval,
		Strategy:          in.Strategy,
		MomentumSec:       cfg.MomentumConfirmationSec,
		MomentumThreshold: cfg.MomentumThreshold,
	}, seq)
	cfg.BotInstance = name

	bot := &domain.BotInstance{
		InstanceName:   name,
		OwnerID:        in.OwnerID,
		DesiredState:   in.DesiredState,
		ActualState:    domain.StateStopped,
		StrategyConfig: *cfg,
	}
	if in.DesiredState == domain.StateRunning && in.ServerID != "" {
		bot.ServerID = &in.ServerID
	}

	created, err := s.bots.Create(ctx, bot)
	if err != nil {
		return nil, err
	}

	result := &CreateBotResult{Bot: created}
	if in.KillPreviousBot && in.SourceBotID != nil {
		if err := s.bots.SetDesiredState(ctx, *in.SourceBotID, domain.StateStopped); err != nil {
			s.log.WithError(err).WithField("source_bot_id", *in.SourceBotID).
				Warn("failed to stop previous bot after copy")
			result.Warning = fmt.Sprintf("Nie udało się zatrzymać poprzedniego bota: %v", err)
		}
	}
	return result, nil
}

// Update rewrites one bot's desired state and strategy config. server_id is
// attached only while running and cleared when stopped.
func (s *BotService) Update(ctx context.Context, id int64, in BotFormInput) (*domain.BotInstance, error) {
	existing, err := s.bots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cfg, err := s.buildConfig(in, existing.OwnerID)
	if err != nil {
		return nil, err
	}
	cfg.BotInstance = existing.InstanceName

	existing.DesiredState = in.DesiredState
	existing.StrategyConfig = *cfg
	if in.DesiredState == domain.StateRunning && in.ServerID != "" {
		existing.ServerID = &in.ServerID
	} else {
		existing.ServerID = nil
	}
	return s.bots.Update(ctx, existing)
}

// Delete removes one bot.
func (s *BotService) Delete(ctx context.Context, id int64) error {
	return s.bots.Delete(ctx, id)
}

// ToggleDesiredState flips desired_state. Stopping is always allowed;
// starting requires an assigned server with a free slot, checked against
// freshly fetched server status. A server absent from the status list does
// not block the start.
func (s *BotService) ToggleDesiredState(ctx context.Context, id int64) (*domain.BotInstance, error) {
	bot, err := s.bots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newState := domain.StateStopped
	if bot.DesiredState != domain.StateRunning {
		newState = domain.StateRunning
	}

	if newState == domain.StateRunning {
		if bot.ServerID == nil || *bot.ServerID == "" {
			return nil, fmt.Errorf("Bot musi mieć przypisany server_id aby go uruchomić. Użyj edycji.")
		}
		servers, err := s.servers.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("server status: %w", err)
		}
		for _, srv := range servers {
			if srv.ID != *bot.ServerID {
				continue
			}
			if !srv.HasFreeSlot() {
				return nil, fmt.Errorf("Serwer %s jest pełny (%d/%d). Wybierz inny serwer.",
					srv.ID, srv.DesiredRunning, srv.AvailableSlots)
			}
			break
		}
	}

	if err := s.bots.SetDesiredState(ctx, id, newState); err != nil {
		return nil, err
	}
	bot.DesiredState = newState
	return bot, nil
}

// NextSequence exposes the repository's next id for the name generator.
func (s *BotService) NextSequence(ctx context.Context) (int64, error) {
	return s.bots.NextID(ctx)
}

// buildConfig coerces the stringly form fields into the typed config.
func (s *BotService) buildConfig(in BotFormInput, ownerID string) (*domain.StrategyConfig, error) {
	cfg := &domain.StrategyConfig{
		BaseSeriesSlug:             BaseSeriesSlug(in.Crypto, in.Interval),
		MarketInterval:             IntervalShort(in.Interval),
		Nazwa:                      in.Nazwa,
		StrategyMode:               in.StrategyMode,
		MomentumConfirmationMethod: in.ConfirmationMethod,
		SecretsPath:                secretsPath(ownerID),
	}

	var err error
	if cfg.StrategyEnabled, err = parseBool("strategyEnabled", in.StrategyEnabled); err != nil {
		return nil, err
	}
	if cfg.DryRun, err = parseBool("dryRun", in.DryRun); err != nil {
		return nil, err
	}
	if cfg.BuyOpposite, err = parseBool("buyOpposite", in.BuyOpposite); err != nil {
		return nil, err
	}
	if cfg.OrderSize, err = parseInt("orderSize", in.OrderSize); err != nil {
		return nil, err
	}
	if cfg.MomentumThreshold, err = parseFloat("momentumThreshold", in.MomentumThreshold); err != nil {
		return nil, err
	}
	if cfg.MomentumConfirmationSec, err = parseInt("momentumSec", in.MomentumSec); err != nil {
		return nil, err
	}

	if cfg.MomentumConfirmationTolerance, err = parseOptFloat("confirmationTolerance", in.ConfirmationTolerance); err != nil {
		return nil, err
	}
	if cfg.EntryThreshold, err = parseOptFloat("entryThreshold", in.EntryThreshold); err != nil {
		return nil, err
	}
	if cfg.MaxReversalEntryPrice, err = parseOptFloat("maxReversalEntryPrice", in.MaxReversalEntryPrice); err != nil {
		return nil, err
	}
	if cfg.VelocityMinTicks, err = parseOptInt("velocityMinTicks", in.VelocityMinTicks); err != nil {
		return nil, err
	}
	if cfg.VelocityMinIncrease, err = parseOptFloat("velocityMinIncrease", in.VelocityMinIncrease); err != nil {
		return nil, err
	}
	if cfg.MaxSpread, err = parseOptFloat("maxSpread", in.MaxSpread); err != nil {
		return nil, err
	}
	if cfg.WarmupDelaySec, err = parseOptInt("warmupDelaySec", in.WarmupDelaySec); err != nil {
		return nil, err
	}
	if cfg.MinTimeRemaining, err = parseOptInt("minTimeRemaining", in.MinTimeRemaining); err != nil {
		return nil, err
	}
	if cfg.MaxReentries, err = parseOptInt("maxReentries", in.MaxReentries); err != nil {
		return nil, err
	}
	if cfg.ExitPrice, err = parseOptFloat("exitPrice", in.ExitPrice); err != nil {
		return nil, err
	}
	if cfg.ExitBeforeCloseSec, err = parseOptInt("exitBeforeCloseSec", in.ExitBeforeCloseSec); err != nil {
		return nil, err
	}
	if cfg.StopLoss, err = parseOptFloat("stopLoss", in.StopLoss); err != nil {
		return nil, err
	}
	if cfg.AggressiveExitUnderbid, err = parseOptFloat("aggressiveExitUnderbid", in.AggressiveExitUnderbid); err != nil {
		return nil, err
	}
	if cfg.ExitMaxRetries, err = parseOptInt("exitMaxRetries", in.ExitMaxRetries); err != nil {
		return nil, err
	}
	if cfg.ExitPriceDecrement, err = parseOptFloat("exitPriceDecrement", in.ExitPriceDecrement); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseBool(field, v string) (bool, error) {
	switch v {
	case "true":
		return true, nil
	case "false", "":
		return false, nil
	default:
		return false, fmt.Errorf("%s: invalid boolean %q", field, v)
	}
}

func parseInt(field, v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", field, v)
	}
	return n, nil
}

func parseFloat(field, v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", field, v)
	}
	return n, nil
}

func parseOptInt(field, v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := parseInt(field, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseOptFloat(field, v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	n, err := parseFloat(field, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
