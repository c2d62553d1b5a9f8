package render

import (
	"fmt"

	"github.com/sofiko-bakery/consultant-bot/internal/reminder"
)

// ReminderMessage formats the payment reminder delivered by the scheduler.
func ReminderMessage(job reminder.Job) string {
	return fmt.Sprintf(
		"Напоминание: у вас есть незавершенная оплата курса *%s* на сумму *%d руб.*\n\n"+
			"Для завершения оплаты, пожалуйста, вернитесь в бот и выберите курс снова.",
		job.CourseName,
		job.Price,
	)
}
