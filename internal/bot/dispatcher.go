package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"calorie-tracker-bot/internal/features/diary/service"
	"calorie-tracker-bot/internal/oracle"
	"calorie-tracker-bot/internal/platform/telegram"
)

// Gateway is the outbound messaging surface the dispatcher needs.
type Gateway interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	GetFile(ctx context.Context, fileID string) (*telegram.File, error)
	DownloadFile(ctx context.Context, filePath string) ([]byte, error)
}

// Dispatcher routes inbound Telegram updates to the diary service and
// renders the results back to the chat.
type Dispatcher struct {
	gateway Gateway
	diary   service.DiaryService
}

func NewDispatcher(gateway Gateway, diary service.DiaryService) *Dispatcher {
	return &Dispatcher{gateway: gateway, diary: diary}
}

// Commands is the menu registered with Telegram at startup.
func Commands() []telegram.BotCommand {
	return []telegram.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "done", Description: "Add the last estimated dish to the diary"},
		{Command: "eat", Description: "Add a dish manually"},
		{Command: "stats", Description: "Show today's stats"},
		{Command: "reset", Description: "Reset today's stats"},
		{Command: "setgoal", Description: "Set the daily calorie goal (/setgoal 2000)"},
	}
}

// Dispatch handles a single update. Each update runs independently; callers
// invoke it on its own goroutine.
func (d *Dispatcher) Dispatch(ctx context.Context, update telegram.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	log := zlog.With().
		Str("request_id", uuid.NewString()).
		Int64("user_id", msg.From.ID).
		Logger()

	switch {
	case len(msg.Photo) > 0:
		d.handlePhoto(ctx, log, msg)
	case strings.HasPrefix(msg.Text, "/start"):
		d.reply(ctx, log, msg.Chat.ID, msgStart)
	case strings.HasPrefix(msg.Text, "/setgoal"):
		d.handleSetGoal(ctx, log, msg)
	case strings.HasPrefix(msg.Text, "/stats"):
		d.handleStats(ctx, log, msg)
	case strings.HasPrefix(msg.Text, "/reset"):
		d.handleReset(ctx, log, msg)
	case strings.HasPrefix(msg.Text, "/done"):
		d.handleDone(ctx, log, msg)
	case strings.HasPrefix(msg.Text, "/eat"):
		d.handleEat(ctx, log, msg)
	}
}

func (d *Dispatcher) handlePhoto(ctx context.Context, log zerolog.Logger, msg *telegram.Message) {
	chatID := msg.Chat.ID

	// Telegram sends several sizes; the last one is the largest.
	fileID := msg.Photo[len(msg.Photo)-1].FileID

	file, err := d.gateway.GetFile(ctx, fileID)
	if err != nil {
		log.Err(err).Msg("failed to resolve photo file")
		d.reply(ctx, log, chatID, msgOracleError)
		return
	}
	image, err := d.gateway.DownloadFile(ctx, file.FilePath)
	if err != nil {
		log.Err(err).Msg("failed to download photo")
		d.reply(ctx, log, chatID, msgOracleError)
		return
	}

	candidate, err := d.diary.RequestEstimate(ctx, msg.From.ID, image, extractHint(msg.Caption))
	switch {
	case err == nil:
		d.reply(ctx, log, chatID, renderEstimate(candidate))
	case errors.Is(err, oracle.ErrDishNotFound):
		d.reply(ctx, log, chatID, msgDishNotFound)
	default:
		log.Err(err).Msg("estimate request failed")
		d.reply(ctx, log, chatID, msgOracleError)
	}
}

func (d *Dispatcher) handleSetGoal(ctx context.Context, log zerolog.Logger, msg *telegram.Message) {
	args := strings.Fields(msg.Text)[1:]
	if len(args) == 0 {
		d.reply(ctx, log, msg.Chat.ID, msgGoalUsage)
		return
	}

	goal, err := d.diary.SetGoal(ctx, msg.From.ID, args[0])
	switch {
	case errors.Is(err, service.ErrInvalidGoal):
		d.reply(ctx, log, msg.Chat.ID, msgGoalUsage)
	case err != nil:
		log.Err(err).Msg("failed to set goal")
		d.reply(ctx, log, msg.Chat.ID, msgInternalError)
	default:
		d.reply(ctx, log, msg.Chat.ID, renderGoal(goal))
	}
}

func (d *Dispatcher) handleStats(ctx context.Context, log zerolog.Logger, msg *telegram.Message) {
	stats, err := d.diary.DailyStats(ctx, msg.From.ID)
	if err != nil {
		log.Err(err).Msg("failed to get daily stats")
		d.reply(ctx, log, msg.Chat.ID, msgInternalError)
		return
	}
	d.reply(ctx, log, msg.Chat.ID, renderStats(stats))
}

func (d *Dispatcher) handleReset(ctx context.Context, log zerolog.Logger, msg *telegram.Message) {
	if err := d.diary.ResetToday(ctx, msg.From.ID); err != nil {
		log.Err(err).Msg("failed to reset today")
		d.reply(ctx, log, msg.Chat.ID, msgInternalError)
		return
	}
	d.reply(ctx, log, msg.Chat.ID, msgReset)
}

func (d *Dispatcher) handleDone(ctx context.Context, log zerolog.Logger, msg *telegram.Message) {
	result, err := d.diary.ConfirmPending(ctx, msg.From.ID)
	switch {
	case errors.Is(err, service.ErrNoPending):
		d.reply(ctx, log, msg.Chat.ID, msgNoPending)
	case err != nil:
		log.Err(err).Msg("failed to confirm pending meal")
		d.reply(ctx, log, msg.Chat.ID, msgInternalError)
	default:
		d.reply(ctx, log, msg.Chat.ID, renderCommit("✅ *Dish added to the diary!*", result))
	}
}

func (d *Dispatcher) handleEat(ctx context.Context, log zerolog.Logger, msg *telegram.Message) {
	fields := strings.Fields(msg.Text)
	if len(fields) < 3 {
		d.reply(ctx, log, msg.Chat.ID, msgEatUsage)
		return
	}

	// Last field is the calories, everything between is the dish name.
	name := strings.Join(fields[1:len(fields)-1], " ")
	caloriesText := fields[len(fields)-1]

	result, err := d.diary.AddManualMeal(ctx, msg.From.ID, name, caloriesText)
	switch {
	case errors.Is(err, service.ErrInvalidCalories), errors.Is(err, service.ErrEmptyName):
		d.reply(ctx, log, msg.Chat.ID, msgEatUsage)
	case err != nil:
		log.Err(err).Msg("failed to add manual meal")
		d.reply(ctx, log, msg.Chat.ID, msgInternalError)
	default:
		d.reply(ctx, log, msg.Chat.ID, renderCommit("✅ *Dish added!*", result))
	}
}

func (d *Dispatcher) reply(ctx context.Context, log zerolog.Logger, chatID int64, text string) {
	if err := d.gateway.SendMessage(ctx, chatID, text); err != nil {
		log.Err(err).Int64("chat_id", chatID).Msg("failed to send reply")
	}
}

// extractHint turns a photo caption into the free-text hint for the oracle.
// A leading /calc token is tolerated for compatibility with the old command
// convention.
func extractHint(caption string) string {
	hint := strings.TrimSpace(caption)
	if strings.HasPrefix(strings.ToLower(hint), "/calc") {
		hint = strings.TrimSpace(hint[len("/calc"):])
	}
	return hint
}
