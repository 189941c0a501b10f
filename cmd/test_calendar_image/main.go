package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charodeyka/salon_bot/internal/controller/callbacks/common"
	"github.com/charodeyka/salon_bot/internal/model"
	"github.com/charodeyka/salon_bot/internal/schedule"
)

func main() {
	// Создаем тестового мастера с графиком салона
	now := time.Now()
	master := &model.Master{
		Name:           "Анна",
		Specialization: []string{"парикмахер"},
		Schedule: model.Schedule{
			StartHour:      8,
			EndHour:        18,
			BreakStartHour: 12,
			BreakEndHour:   13,
			ClosedWeekdays: []time.Weekday{time.Saturday, time.Sunday},
			Vacations: []model.Vacation{
				// Недельный отпуск через неделю от сегодня
				{
					From: model.DateOnly(now.AddDate(0, 0, 7)),
					To:   model.DateOnly(now.AddDate(0, 0, 13)),
				},
			},
		},
	}

	calc := schedule.NewCalculator(now.Location())
	grid := schedule.NewGridRenderer(calc)

	anchor := calc.Today()
	weeks := grid.MonthGrid(master, anchor)

	// Генерируем изображение
	imageData, err := common.GenerateCalendarImage(anchor, weeks)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	// Сохраняем в файл
	filename := "calendar.png"
	err = os.WriteFile(filename, imageData, 0644)
	if err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение успешно сохранено в %s\n", filename)
	fmt.Printf("📅 Месяц: %s %d\n", anchor.Month(), anchor.Year())
	fmt.Printf("📊 Недель в сетке: %d\n", len(weeks))
}
