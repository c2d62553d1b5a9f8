package keyboard

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/sofiko-bakery/consultant-bot/internal/catalog"
)

// Callback uniques shared with the router.
const (
	CallbackCourses        = "courses"
	CallbackBakery         = "bakery"
	CallbackHelp           = "help"
	CallbackBackToMain     = "back_to_main"
	CallbackCourse         = "course"
	CallbackPayCourse      = "pay_course"
	CallbackPaymentCard    = "payment_card"
	CallbackBakeryItem     = "bakery_item"
	CallbackCheckout       = "checkout"
	CallbackCancelOrder    = "cancel_order"
	CallbackProvideContact = "provide_contact"
)

// Builder creates inline keyboards for the bot screens.
type Builder struct {
	log *slog.Logger
}

// NewBuilder returns a new Builder instance.
func NewBuilder(log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}

	return &Builder{log: log}
}

// MainMenu builds the top-level menu.
func (b *Builder) MainMenu() *telebot.ReplyMarkup {
	return NewInlineKeyboard().
		AddRow(InlineButton{Text: "📚 Образовательные курсы", Unique: CallbackCourses}).
		AddRow(InlineButton{Text: "🍰 Заказать в кондитерской", Unique: CallbackBakery}).
		AddRow(InlineButton{Text: "❓ Помощь", Unique: CallbackHelp}).
		Build(b.encode)
}

// CourseList builds one button per course plus a back row.
func (b *Builder) CourseList(courses []catalog.Course) *telebot.ReplyMarkup {
	kb := NewInlineKeyboard()
	for _, course := range courses {
		kb.AddRow(InlineButton{
			Text:   fmt.Sprintf("%s - %d руб.", course.Name, course.Price),
			Unique: CallbackCourse,
			Data:   course.ID,
		})
	}
	kb.AddRow(InlineButton{Text: "⬅️ Назад", Unique: CallbackBackToMain})

	return kb.Build(b.encode)
}

// CourseActions builds the pay/back rows for a course detail screen.
func (b *Builder) CourseActions(courseID string) *telebot.ReplyMarkup {
	return NewInlineKeyboard().
		AddRow(InlineButton{Text: "💳 Оплатить курс", Unique: CallbackPayCourse, Data: courseID}).
		AddRow(InlineButton{Text: "⬅️ Назад к курсам", Unique: CallbackCourses}).
		AddRow(InlineButton{Text: "🏠 Главное меню", Unique: CallbackBackToMain}).
		Build(b.encode)
}

// PaymentOptions builds the payment method rows for a course.
func (b *Builder) PaymentOptions(courseID string) *telebot.ReplyMarkup {
	return NewInlineKeyboard().
		AddRow(InlineButton{Text: "💳 Оплатить через банковскую карту", Unique: CallbackPaymentCard, Data: courseID}).
		AddRow(InlineButton{Text: "⬅️ Назад", Unique: CallbackCourse, Data: courseID}).
		AddRow(InlineButton{Text: "🏠 Главное меню", Unique: CallbackBackToMain}).
		Build(b.encode)
}

// BakeryMenu builds one button per item, a checkout row when the order has
// lines, and a back row.
func (b *Builder) BakeryMenu(items []catalog.Item, total int64, hasOrder bool) *telebot.ReplyMarkup {
	kb := NewInlineKeyboard()
	for _, item := range items {
		kb.AddRow(InlineButton{
			Text:   fmt.Sprintf("%s - %d руб.", item.Name, item.Price),
			Unique: CallbackBakeryItem,
			Data:   item.ID,
		})
	}
	if hasOrder {
		kb.AddRow(InlineButton{
			Text:   fmt.Sprintf("🛒 Оформить заказ (%d руб.)", total),
			Unique: CallbackCheckout,
		})
	}
	kb.AddRow(InlineButton{Text: "⬅️ Назад", Unique: CallbackBackToMain})

	return kb.Build(b.encode)
}

// CheckoutActions builds the summary screen rows.
func (b *Builder) CheckoutActions() *telebot.ReplyMarkup {
	return NewInlineKeyboard().
		AddRow(InlineButton{Text: "📱 Оставить контактные данные", Unique: CallbackProvideContact}).
		AddRow(InlineButton{Text: "⬅️ Вернуться к меню", Unique: CallbackBakery}).
		AddRow(InlineButton{Text: "❌ Отменить заказ", Unique: CallbackCancelOrder}).
		Build(b.encode)
}

func (b *Builder) encode(unique, data string) string {
	encoded, err := EncodeCallback(unique, data)
	if err != nil {
		b.log.Error("failed to encode callback data",
			slog.String("unique", unique),
			slog.String("data", data),
			slog.Any("error", err),
		)
		return unique
	}

	return encoded
}
