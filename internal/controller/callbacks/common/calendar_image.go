package common

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"time"

	"github.com/charodeyka/salon_bot/internal/schedule"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	cellSize         = 96.0
	cellGap          = 6.0
	gridMargin       = 24.0
	titleHeight      = 64.0
	weekdayRowHeight = 32.0
	cellBorderRadius = 10.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	titleColor       = color.RGBA{80, 85, 90, 255}
	weekdayColor     = color.RGBA{110, 115, 120, 255}
	dayTextColor     = color.RGBA{20, 24, 28, 230}
	availableColor   = color.RGBA{133, 193, 85, 220}
	unavailableColor = color.RGBA{255, 182, 193, 255}
	todayFillColor   = color.RGBA{255, 255, 255, 255}
	todayRingColor   = color.RGBA{255, 99, 71, 255}
)

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// GenerateCalendarImage рисует календарь месяца: зелёные ячейки -
// доступные дни, розовые - недоступные, белая с обводкой - сегодня.
// Дни вне месяца рисуются пустыми ячейками
func GenerateCalendarImage(anchor time.Time, weeks [][]*schedule.Day) ([]byte, error) {
	width := int(gridMargin*2 + cellSize*7 + cellGap*6)
	height := int(titleHeight + weekdayRowHeight + float64(len(weeks))*(cellSize+cellGap) + gridMargin)

	dc := gg.NewContext(width, height)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	title := fmt.Sprintf("%s %d", anchor.Month().String(), anchor.Year())
	dc.SetColor(titleColor)
	dc.DrawStringAnchored(title, float64(width)/2, titleHeight/2, 0.5, 0.5)

	for i, label := range weekdayLabels {
		x := gridMargin + float64(i)*(cellSize+cellGap) + cellSize/2
		dc.SetColor(weekdayColor)
		dc.DrawStringAnchored(label, x, titleHeight+weekdayRowHeight/2, 0.5, 0.5)
	}

	for row, week := range weeks {
		for col, day := range week {
			if day == nil {
				continue // пустая ячейка вне месяца
			}

			x := gridMargin + float64(col)*(cellSize+cellGap)
			y := titleHeight + weekdayRowHeight + float64(row)*(cellSize+cellGap)

			switch day.State {
			case schedule.DayToday:
				dc.SetColor(todayFillColor)
			case schedule.DayAvailable:
				dc.SetColor(availableColor)
			default:
				dc.SetColor(unavailableColor)
			}
			dc.DrawRoundedRectangle(x, y, cellSize, cellSize, cellBorderRadius)
			dc.Fill()

			if day.State == schedule.DayToday {
				dc.SetColor(todayRingColor)
				dc.SetLineWidth(3)
				dc.DrawRoundedRectangle(x, y, cellSize, cellSize, cellBorderRadius)
				dc.Stroke()
			}

			dc.SetColor(dayTextColor)
			dc.DrawStringAnchored(strconv.Itoa(day.Date.Day()), x+cellSize/2, y+cellSize/2, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode calendar image: %w", err)
	}
	return buf.Bytes(), nil
}
