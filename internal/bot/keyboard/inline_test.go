package keyboard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sofiko-bakery/consultant-bot/internal/bot/keyboard"
	"github.com/sofiko-bakery/consultant-bot/internal/catalog"
)

func TestInlineKeyboardBuilder(t *testing.T) {
	markup := keyboard.NewInlineKeyboard().
		AddRow(
			keyboard.InlineButton{Text: "Prev", Unique: "course", Data: "1"},
			keyboard.InlineButton{Text: "Next", Unique: "course", Data: "2"},
		).
		AddRow(keyboard.InlineButton{Text: "Back", Unique: "back_to_main"}).
		Build(nil)

	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)
	require.Len(t, markup.InlineKeyboard[0], 2)
	require.Equal(t, "Prev", markup.InlineKeyboard[0][0].Text)
	// Without an encoder the data wins over the unique.
	require.Equal(t, "1", markup.InlineKeyboard[0][0].Data)
	require.Equal(t, "back_to_main", markup.InlineKeyboard[1][0].Data)
}

func TestInlineKeyboardBuilder_EmptyRowIgnored(t *testing.T) {
	markup := keyboard.NewInlineKeyboard().
		AddRow().
		AddRow(keyboard.InlineButton{Text: "Only", Unique: "checkout"}).
		Build(nil)

	require.Len(t, markup.InlineKeyboard, 1)
}

func TestBuilder_MainMenu(t *testing.T) {
	b := keyboard.NewBuilder(nil)

	markup := b.MainMenu()
	require.Len(t, markup.InlineKeyboard, 3)
	require.Equal(t, "courses", markup.InlineKeyboard[0][0].Data)
	require.Equal(t, "bakery", markup.InlineKeyboard[1][0].Data)
	require.Equal(t, "help", markup.InlineKeyboard[2][0].Data)
}

func TestBuilder_CourseList(t *testing.T) {
	b := keyboard.NewBuilder(nil)

	courses := []catalog.Course{
		{ID: "1", Name: "Основы кондитерского искусства", Price: 5000},
		{ID: "2", Name: "Шоколадное мастерство", Price: 6000},
	}

	markup := b.CourseList(courses)
	require.Len(t, markup.InlineKeyboard, 3)
	require.Equal(t, "course:1", markup.InlineKeyboard[0][0].Data)
	require.Contains(t, markup.InlineKeyboard[0][0].Text, "5000 руб.")
	require.Equal(t, "course:2", markup.InlineKeyboard[1][0].Data)
	require.Equal(t, "back_to_main", markup.InlineKeyboard[2][0].Data)
}

func TestBuilder_BakeryMenu(t *testing.T) {
	b := keyboard.NewBuilder(nil)

	items := []catalog.Item{
		{ID: "1", Name: "Торт 'Наполеон'", Price: 1500},
		{ID: "4", Name: "Чизкейк", Price: 900},
	}

	// No checkout row while the order is empty.
	markup := b.BakeryMenu(items, 0, false)
	require.Len(t, markup.InlineKeyboard, 3)

	markup = b.BakeryMenu(items, 2400, true)
	require.Len(t, markup.InlineKeyboard, 4)
	require.Equal(t, "checkout", markup.InlineKeyboard[2][0].Data)
	require.Contains(t, markup.InlineKeyboard[2][0].Text, "2400 руб.")
}

func TestBuilder_CheckoutActions(t *testing.T) {
	b := keyboard.NewBuilder(nil)

	markup := b.CheckoutActions()
	require.Len(t, markup.InlineKeyboard, 3)
	require.Equal(t, "provide_contact", markup.InlineKeyboard[0][0].Data)
	require.Equal(t, "bakery", markup.InlineKeyboard[1][0].Data)
	require.Equal(t, "cancel_order", markup.InlineKeyboard[2][0].Data)
}
