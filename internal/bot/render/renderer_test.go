package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sofiko-bakery/consultant-bot/internal/cart"
	"github.com/sofiko-bakery/consultant-bot/internal/reminder"
)

func TestReminderMessage(t *testing.T) {
	msg := ReminderMessage(reminder.Job{
		CourseName: "Основы кондитерского искусства",
		Price:      5000,
	})

	require.Contains(t, msg, "Основы кондитерского искусства")
	require.Contains(t, msg, "5000 руб.")
	require.Contains(t, msg, "Напоминание")
}

func TestOrderDetails(t *testing.T) {
	lines := []cart.Line{
		{ItemID: "2", Name: "Эклеры (набор 6 шт.)", UnitPrice: 800, Quantity: 2},
		{ItemID: "3", Name: "Макаронс (набор 12 шт.)", UnitPrice: 1200, Quantity: 1},
	}

	details := orderDetails(lines, 2800)
	require.Contains(t, details, "Эклеры (набор 6 шт.) x2 - 1600 руб.")
	require.Contains(t, details, "Макаронс (набор 12 шт.) x1 - 1200 руб.")
	require.Contains(t, details, "*Итого:* 2800 руб.")
}

func TestOrderBlock(t *testing.T) {
	require.Empty(t, orderBlock(nil))

	block := orderBlock([]cart.Line{
		{ItemID: "4", Name: "Чизкейк", UnitPrice: 900, Quantity: 3},
	})
	require.Contains(t, block, "Ваш текущий заказ")
	require.Contains(t, block, "Чизкейк x3 - 2700 руб.")
}
