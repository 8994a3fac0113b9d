package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"calibration-bot/internal/container"
	"calibration-bot/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для проверки калибровки камеры.

Я оцениваю цветопередачу по цветовой карте CameraTrax 24, резкость, освещённость и дисторсию объектива, а затем собираю отчёт.

📋 Команды:
/card — проверить цветопередачу
/focus — проверить резкость
/light — проверить освещённость
/lens — калибровка объектива по шахматной доске
/report — итоговый отчёт в PDF
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ /card — снимите карту целиком, белое поле слева сверху
2️⃣ /focus — снимок сцены для оценки резкости
3️⃣ /light — снимок при рабочем освещении
4️⃣ /lens — несколько снимков шахматной доски 10×7 с разных ракурсов, затем /done
5️⃣ /report — PDF-отчёт с вердиктом по всем метрикам

💡 Рекомендации:
• Отправляйте снимки файлом (без сжатия), чтобы Telegram не искажал цвета
• Карта должна занимать большую часть кадра на тёмном фоне
• Избегайте бликов на карте

/start — начать проверку заново`

	msgAwaitingCard    = "📸 Отправьте снимок цветовой карты (лучше файлом, без сжатия)."
	msgAwaitingFocus   = "📸 Отправьте снимок для оценки резкости."
	msgAwaitingLight   = "📸 Отправьте снимок для оценки освещённости."
	msgAwaitingBoards  = "♟ Отправляйте снимки шахматной доски. Когда закончите, отправьте /done."
	msgNoBoards        = "♟ Сначала отправьте /lens и хотя бы один снимок доски."
	msgCancelled       = "❌ Операция отменена. Отправьте /help для списка команд."
	msgSendCommand     = "❓ Сначала выберите проверку: /card, /focus, /light или /lens."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgBusy            = "⏳ Подождите, предыдущий снимок ещё обрабатывается."
	msgNotImage        = "⚠️ Это не изображение. Отправьте фото или файл PNG/JPEG/TIFF/BMP/WebP."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
	msgReportError     = "⚠️ Не удалось собрать отчёт."
)

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	container *container.Container
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:       api,
		container: c,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.container.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	// Обработка фото и изображений, присланных файлом
	if fileID, ok := imageFileID(msg); ok {
		b.handleImage(ctx, msg, user, fileID)
		return
	}
	if msg.Document != nil {
		b.sendMessage(msg.Chat.ID, msgNotImage)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendCommand)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	users := b.container.UserService
	chatID := msg.Chat.ID

	var err error
	switch msg.Command() {
	case "start":
		_, err = b.container.CalibrationService.Reset(ctx, user.ID, chatID)
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "card":
		_, err = users.BeginColorCard(ctx, user.ID, chatID)
		b.sendMessage(chatID, msgAwaitingCard)

	case "focus":
		_, err = users.BeginFocus(ctx, user.ID, chatID)
		b.sendMessage(chatID, msgAwaitingFocus)

	case "light":
		_, err = users.BeginLight(ctx, user.ID, chatID)
		b.sendMessage(chatID, msgAwaitingLight)

	case "lens":
		_, err = users.BeginLens(ctx, user.ID, chatID)
		b.sendMessage(chatID, msgAwaitingBoards)

	case "done":
		b.finishLens(ctx, chatID, user)

	case "report":
		b.sendReport(ctx, chatID, user)

	case "cancel":
		_, err = users.Cancel(ctx, user.ID, chatID)
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}

	if err != nil {
		log.Printf("Error handling /%s: %v", msg.Command(), err)
	}
}

// handleImage направляет снимок в нужную проверку по состоянию пользователя
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, user *entity.User, fileID string) {
	chatID := msg.Chat.ID

	switch user.State {
	case entity.StateMainMenu:
		b.sendMessage(chatID, msgSendCommand)
		return
	case entity.StateProcessing:
		b.sendMessage(chatID, msgBusy)
		return
	}

	imageData, err := b.downloadFile(fileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(chatID, msgProcessingError)
		return
	}
	log.Printf("Received image from %d: %d bytes, state %s", user.ID, len(imageData), user.State)

	calibration := b.container.CalibrationService

	// Снимки доски только копятся, обработка будет по /done
	if user.State == entity.StateCollectingBoards {
		count, err := calibration.AddChessboardFrame(ctx, user.ID, imageData)
		if err != nil {
			log.Printf("Error storing chessboard frame: %v", err)
			b.sendMessage(chatID, msgProcessingError)
			return
		}
		b.sendMessage(chatID, fmt.Sprintf("♟ Кадр %d принят. Ещё снимок или /done.", count))
		return
	}

	state := user.State
	if _, err := b.container.UserService.MarkProcessing(ctx, user.ID, chatID); err != nil {
		log.Printf("Error updating state: %v", err)
	}
	b.sendMessage(chatID, msgProcessing)

	switch state {
	case entity.StateAwaitingCardPhoto:
		out, err := calibration.RecordColorCard(ctx, user.ID, chatID, imageData)
		if err != nil {
			b.fail(ctx, chatID, user, err)
			return
		}
		b.sendMessage(chatID, formatColorResult(out.Result))
		if out.Analysis != nil {
			b.sendMessage(chatID, formatCardRegion(out.Analysis))
			b.sendPhoto(chatID, "cells.png", out.Analysis.Diagnostics.Cells, "Ячейки, залитые медианным цветом")
			b.sendPhoto(chatID, "grid.png", out.Analysis.Diagnostics.GridLines, "Найденные линии сетки")
		}

	case entity.StateAwaitingFocusPhoto:
		metric, err := calibration.RecordFocus(ctx, user.ID, chatID, imageData)
		if err != nil {
			b.fail(ctx, chatID, user, err)
			return
		}
		b.sendMessage(chatID, formatMetric("Резкость", *metric))

	case entity.StateAwaitingLightPhoto:
		metric, err := calibration.RecordLight(ctx, user.ID, chatID, imageData)
		if err != nil {
			b.fail(ctx, chatID, user, err)
			return
		}
		b.sendMessage(chatID, formatMetric("Освещённость", *metric))
	}
}

// finishLens калибрует объектив по собранным кадрам
func (b *Bot) finishLens(ctx context.Context, chatID int64, user *entity.User) {
	if user.State != entity.StateCollectingBoards {
		b.sendMessage(chatID, msgNoBoards)
		return
	}

	if _, err := b.container.UserService.MarkProcessing(ctx, user.ID, chatID); err != nil {
		log.Printf("Error updating state: %v", err)
	}
	b.sendMessage(chatID, msgProcessing)

	metric, lens, err := b.container.CalibrationService.CalibrateLens(ctx, user.ID, chatID)
	if err != nil {
		b.fail(ctx, chatID, user, err)
		return
	}
	b.sendMessage(chatID, formatLens(*metric, lens))
}

// sendReport отправляет сводку и полный отчёт в PDF.
// Если PDF собрать не удалось, отчёт уходит текстовым файлом.
func (b *Bot) sendReport(ctx context.Context, chatID int64, user *entity.User) {
	calibration := b.container.CalibrationService

	text, report, err := calibration.RenderReport(ctx, user.ID)
	if err != nil {
		log.Printf("Error building report: %v", err)
		b.sendMessage(chatID, msgReportError)
		return
	}

	b.sendMessage(chatID, formatSummary(report))

	file := tgbotapi.FileBytes{Name: "CameraCalibrationReport.pdf"}
	if file.Bytes, err = calibration.RenderDocument(ctx, report); err != nil {
		log.Printf("Error rendering PDF report: %v", err)
		file = tgbotapi.FileBytes{Name: "calibration_report.txt", Bytes: []byte(text)}
	}

	if _, err := b.api.Send(tgbotapi.NewDocument(chatID, file)); err != nil {
		log.Printf("Error sending report: %v", err)
	}
}

func (b *Bot) fail(ctx context.Context, chatID int64, user *entity.User, err error) {
	log.Printf("Error processing image: %v", err)
	b.sendMessage(chatID, msgProcessingError)
	if _, err := b.container.UserService.Cancel(ctx, user.ID, chatID); err != nil {
		log.Printf("Error updating state: %v", err)
	}
}

// imageFileID возвращает файл наибольшего размера из фото или изображение, присланное документом
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// sendPhoto отправляет PNG с подписью
func (b *Bot) sendPhoto(chatID int64, name string, data []byte, caption string) {
	if len(data) == 0 {
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
	}
}
