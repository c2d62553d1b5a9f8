// Package render turns abstract screen descriptions into Telegram messages.
package render

import (
	"fmt"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/sofiko-bakery/consultant-bot/internal/bot/keyboard"
	"github.com/sofiko-bakery/consultant-bot/internal/cart"
	"github.com/sofiko-bakery/consultant-bot/internal/session"
)

// Renderer draws session.Render values as Telegram text and inline keyboards.
type Renderer struct {
	kb  *keyboard.Builder
	log *slog.Logger
}

// New returns a Renderer using the provided keyboard builder.
func New(kb *keyboard.Builder, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}

	return &Renderer{kb: kb, log: log}
}

// Reply draws the screen, editing the tapped message for callbacks and
// sending a fresh one for commands.
func (r *Renderer) Reply(c telebot.Context, rn session.Render) error {
	if cb := c.Callback(); cb != nil {
		if rn.Notice == session.NoticeItemAdded {
			// The added item is acknowledged as a toast, not in the message body.
			_ = c.Respond(&telebot.CallbackResponse{
				Text: fmt.Sprintf("%s добавлен в заказ!", rn.AddedItem),
			})
		} else {
			_ = c.Respond()
		}
	}

	text, markup := r.compose(c, rn)

	return c.EditOrSend(text, markup, telebot.ModeMarkdown)
}

func (r *Renderer) compose(c telebot.Context, rn session.Render) (string, *telebot.ReplyMarkup) {
	var text string
	var markup *telebot.ReplyMarkup

	switch rn.Screen {
	case session.ScreenMainMenu:
		text = mainMenuText(c)
		markup = r.kb.MainMenu()
	case session.ScreenHelp:
		text = helpText
		markup = r.kb.MainMenu()
	case session.ScreenCourseList:
		text = "📚 *Доступные образовательные курсы:*\nВыберите курс для получения подробной информации:"
		markup = r.kb.CourseList(rn.Courses)
	case session.ScreenCourseDetail:
		text = fmt.Sprintf(
			"*%s*\n\n%s\n\n*Продолжительность:* %s\n*Стоимость:* %d руб.",
			rn.Course.Name,
			rn.Course.Description,
			rn.Course.Duration,
			rn.Course.Price,
		)
		markup = r.kb.CourseActions(rn.Course.ID)
	case session.ScreenPaymentOptions:
		text = fmt.Sprintf(
			"Оплата курса: *%s*\n\nСумма к оплате: *%d руб.*\n\nВыберите способ оплаты:",
			rn.Course.Name,
			rn.Course.Price,
		)
		markup = r.kb.PaymentOptions(rn.Course.ID)
	case session.ScreenBakeryMenu:
		text = "🍰 *Меню кондитерской Софико:*\nВыберите товары для заказа:" + orderBlock(rn.Lines)
		markup = r.kb.BakeryMenu(rn.Items, rn.Total, len(rn.Lines) > 0)
	case session.ScreenCheckoutSummary:
		text = fmt.Sprintf(
			"🛒 *Оформление заказа*\n\n%s\n\nДля завершения заказа, пожалуйста, оставьте ваши контактные данные.",
			orderDetails(rn.Lines, rn.Total),
		)
		markup = r.kb.CheckoutActions()
	case session.ScreenContactPrompt:
		text = "📱 Пожалуйста, отправьте ваши контактные данные (имя и телефон) ответным сообщением, и мы свяжемся с вами для подтверждения заказа."
		markup = r.kb.CheckoutActions()
	default:
		r.log.Warn("unknown screen, falling back to main menu", slog.String("screen", string(rn.Screen)))
		text = mainMenuText(c)
		markup = r.kb.MainMenu()
	}

	if prefix := noticeText(rn.Notice); prefix != "" {
		text = prefix + "\n\n" + text
	}

	return text, markup
}

const helpText = "🤖 *Как пользоваться ботом:*\n\n" +
	"*/start* - Начать взаимодействие с ботом\n" +
	"*/courses* - Просмотр доступных образовательных курсов\n" +
	"*/order* - Сделать заказ в кондитерской\n" +
	"*/help* - Показать это сообщение\n\n" +
	"Если у вас возникли вопросы, напишите нам: example@email.com"

func mainMenuText(c telebot.Context) string {
	if c.Callback() == nil && c.Sender() != nil && c.Sender().FirstName != "" {
		return fmt.Sprintf(
			"Привет, %s! 👋\n\nЯ бот-консультант кондитерской Софико. Чем могу помочь?",
			c.Sender().FirstName,
		)
	}

	return "Главное меню. Чем могу помочь?"
}

func noticeText(notice session.Notice) string {
	switch notice {
	case session.NoticeCourseNotFound:
		return "Курс не найден. Пожалуйста, выберите другой курс."
	case session.NoticeItemNotFound:
		return "Товар не найден. Пожалуйста, выберите другой товар."
	case session.NoticeEmptyOrder:
		return "Ваш заказ пуст. Пожалуйста, добавьте товары в заказ."
	default:
		return ""
	}
}

func orderBlock(lines []cart.Line) string {
	if len(lines) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\n*Ваш текущий заказ:*\n")
	for _, line := range lines {
		fmt.Fprintf(&sb, "• %s x%d - %d руб.\n", line.Name, line.Quantity, line.Subtotal())
	}

	return sb.String()
}

func orderDetails(lines []cart.Line, total int64) string {
	var sb strings.Builder
	sb.WriteString("*Детали заказа:*\n")
	for _, line := range lines {
		fmt.Fprintf(&sb, "• %s x%d - %d руб.\n", line.Name, line.Quantity, line.Subtotal())
	}
	fmt.Fprintf(&sb, "\n*Итого:* %d руб.", total)

	return sb.String()
}
