package bot

import (
	"context"

	"tutorbot_backend/internal/config"
	"tutorbot_backend/internal/service"
	"tutorbot_backend/pkg/logger"
	"tutorbot_backend/pkg/monitoring"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Bot is the Telegram transport: it parses commands, drives the two
// multi-step conversations (registration and code submission) and renders
// service results back to the student.
type Bot struct {
	api           *tgbotapi.BotAPI
	conversations *conversationStore

	students    *service.StudentService
	topics      *service.TopicService
	exercises   *service.ExerciseService
	hints       *service.HintService
	submissions *service.SubmissionService
	qa          *service.QAService

	updateTimeout int
}

func NewBot(
	cfg *config.TelegramConfig,
	rdb *redis.Client,
	students *service.StudentService,
	topics *service.TopicService,
	exercises *service.ExerciseService,
	hints *service.HintService,
	submissions *service.SubmissionService,
	qa *service.QAService,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	api.Debug = cfg.Debug

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60
	}

	return &Bot{
		api:           api,
		conversations: newConversationStore(rdb),
		students:      students,
		topics:        topics,
		exercises:     exercises,
		hints:         hints,
		submissions:   submissions,
		qa:            qa,
		updateTimeout: timeout,
	}, nil
}

// Run polls for updates until the context is cancelled. Each update is
// handled on its own goroutine; the store's transactions keep concurrent
// operations for the same student safe.
func (b *Bot) Run(ctx context.Context) {
	logger.Log.Info("Telegram bot started", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.updateTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			logger.Log.Info("Telegram bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("panic handling update", zap.Any("panic", r))
		}
	}()

	if msg.From == nil {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleText(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	command := msg.Command()
	outcome := "ok"
	defer func() {
		monitoring.BotCommandCounter.WithLabelValues(command, outcome).Inc()
	}()

	var err error
	switch command {
	case "start":
		err = b.handleStart(ctx, msg)
	case "help":
		err = b.handleHelp(msg)
	case "topics":
		err = b.handleTopics(ctx, msg)
	case "topic":
		err = b.handleTopicDescription(msg)
	case "ask":
		err = b.handleAsk(ctx, msg)
	case "exercise":
		err = b.handleExerciseRequest(msg)
	case "hint":
		err = b.handleHintRequest(msg)
	case "solution":
		err = b.handleSolutionRequest(msg)
	case "submit":
		err = b.handleSubmitStart(ctx, msg)
	case "cancel":
		err = b.handleCancel(ctx, msg)
	default:
		outcome = "unknown"
		b.reply(msg, "Lo siento, no entiendo ese comando. 😕 Escribe /help para ver qué puedes hacer.")
		return
	}

	if err != nil {
		outcome = "error"
		logger.Log.Error("command handler failed",
			zap.String("command", command), zap.Error(err))
	}
}

// reply sends plain text to the message's chat.
func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	if _, err := b.api.Send(out); err != nil {
		logger.Log.Error("failed to send message", zap.Error(err))
	}
}

// replyMarkdown sends MarkdownV2-formatted text. Callers must escape it.
func (b *Bot) replyMarkdown(msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := b.api.Send(out); err != nil {
		logger.Log.Error("failed to send markdown message", zap.Error(err))
	}
}
