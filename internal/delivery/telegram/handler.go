package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options tune update polling.
type Options struct {
	UpdateTimeout int // long polling timeout in seconds
	Workers       int // updates handled concurrently
}

type Handler struct {
	bot           BotAPI
	logger        *zap.Logger
	quizService   QuizService
	userService   UserService
	resultService ResultService
	opts          Options
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	quizService QuizService,
	userService UserService,
	resultService ResultService,
	opts Options,
) *Handler {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &Handler{
		bot:           bot,
		logger:        logger,
		quizService:   quizService,
		userService:   userService,
		resultService: resultService,
		opts:          opts,
	}
}

// Run polls updates until ctx is done. Updates are handled concurrently by at
// most opts.Workers goroutines; ordering per quiz is left to the session store.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started", zap.Int("workers", h.opts.Workers))
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.opts.UpdateTimeout

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.opts.Workers)

	for {
		select {
		case <-ctx.Done():
			_ = g.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return g.Wait()
			}
			g.Go(func() error {
				h.handleUpdate(gctx, update)
				return nil
			})
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	created, err := h.userService.EnsureUser(ctx, from.ID, chatID)
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	} else if created {
		h.logger.Info("new user", zap.Int64("user_id", from.ID))
	}

	if !update.Message.IsCommand() {
		h.send(newHTMLMessage(chatID, msgUseStart))
		return
	}

	switch update.Message.Command() {
	case "start", "quiz":
		_ = h.withErrorHandling(h.handleStart())(ctx, chatID)
	case "results":
		_ = h.withErrorHandling(h.handleResults(from.ID))(ctx, chatID)
	case "help":
		h.send(newHTMLMessage(chatID, msgHelp))
	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// request is send for API calls that return no message, e.g. callback answers.
func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Error("failed to make telegram request",
			zap.Error(err),
		)
	}
}
