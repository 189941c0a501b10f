package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charodeyka/salon_bot/internal/model"
	"gopkg.in/yaml.v3"
)

// Salon статическая конфигурация салона: каталог услуг, мастера
// с графиками и общие рабочие часы. Загружается один раз при старте
type Salon struct {
	Name     string
	Address  string
	City     string
	Phone    string
	Location *time.Location

	WorkingHours WorkingHours
	Services     []model.Service
	Masters      []*model.Master
}

// WorkingHours общие рабочие часы салона
type WorkingHours struct {
	StartHour      int
	EndHour        int
	BreakStartHour int
	BreakEndHour   int
	ClosedWeekdays []time.Weekday
}

// salonFile формат salon.yaml
type salonFile struct {
	Salon struct {
		Name    string `yaml:"name"`
		Address string `yaml:"address"`
		City    string `yaml:"city"`
		Phone   string `yaml:"phone"`
	} `yaml:"salon"`
	Timezone     string `yaml:"timezone"`
	WorkingHours struct {
		Start          int   `yaml:"start"`
		End            int   `yaml:"end"`
		BreakStart     int   `yaml:"break_start"`
		BreakEnd       int   `yaml:"break_end"`
		ClosedWeekdays []int `yaml:"closed_weekdays"` // ISO: 1=Пн ... 7=Вс
	} `yaml:"working_hours"`
	Services []struct {
		Name  string `yaml:"name"`
		Price int    `yaml:"price"`
	} `yaml:"services"`
	Masters []struct {
		Name           string   `yaml:"name"`
		TelegramID     int64    `yaml:"telegram_id"`
		Specialization []string `yaml:"specialization"`
		Vacations      []struct {
			Start string `yaml:"start"`
			End   string `yaml:"end"`
		} `yaml:"vacations"`
	} `yaml:"masters"`
}

// LoadSalon загружает и валидирует конфигурацию салона из YAML файла
func LoadSalon(path string) (*Salon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read salon config: %w", err)
	}

	var file salonFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse salon config: %w", err)
	}

	if file.Timezone == "" {
		file.Timezone = "Europe/Moscow"
	}
	loc, err := time.LoadLocation(file.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", file.Timezone, err)
	}

	hours := WorkingHours{
		StartHour:      file.WorkingHours.Start,
		EndHour:        file.WorkingHours.End,
		BreakStartHour: file.WorkingHours.BreakStart,
		BreakEndHour:   file.WorkingHours.BreakEnd,
	}
	if hours.StartHour < 0 || hours.EndHour > 24 || hours.StartHour >= hours.EndHour {
		return nil, fmt.Errorf("invalid working hours: %d-%d", hours.StartHour, hours.EndHour)
	}
	if hours.BreakStartHour > hours.BreakEndHour {
		return nil, fmt.Errorf("invalid break window: %d-%d", hours.BreakStartHour, hours.BreakEndHour)
	}

	for _, iso := range file.WorkingHours.ClosedWeekdays {
		if iso < 1 || iso > 7 {
			return nil, fmt.Errorf("invalid closed weekday %d (expected 1-7, 1=Monday)", iso)
		}
		// ISO 7 (воскресенье) соответствует time.Sunday (0)
		hours.ClosedWeekdays = append(hours.ClosedWeekdays, time.Weekday(iso%7))
	}

	salon := &Salon{
		Name:         file.Salon.Name,
		Address:      file.Salon.Address,
		City:         file.Salon.City,
		Phone:        file.Salon.Phone,
		Location:     loc,
		WorkingHours: hours,
	}

	if len(file.Services) == 0 {
		return nil, fmt.Errorf("salon config must list at least one service")
	}
	for _, s := range file.Services {
		if s.Name == "" || s.Price < 0 {
			return nil, fmt.Errorf("invalid service %q", s.Name)
		}
		salon.Services = append(salon.Services, model.Service{Name: s.Name, Price: s.Price})
	}

	if len(file.Masters) == 0 {
		return nil, fmt.Errorf("salon config must list at least one master")
	}
	seen := make(map[string]bool)
	for _, m := range file.Masters {
		if m.Name == "" {
			return nil, fmt.Errorf("master name must not be empty")
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("duplicate master %q", m.Name)
		}
		seen[m.Name] = true

		master := &model.Master{
			Name:           m.Name,
			TelegramID:     m.TelegramID,
			Specialization: m.Specialization,
			Schedule: model.Schedule{
				StartHour:      hours.StartHour,
				EndHour:        hours.EndHour,
				BreakStartHour: hours.BreakStartHour,
				BreakEndHour:   hours.BreakEndHour,
				ClosedWeekdays: hours.ClosedWeekdays,
			},
		}

		for _, v := range m.Vacations {
			from, err := time.ParseInLocation("2006-01-02", v.Start, loc)
			if err != nil {
				return nil, fmt.Errorf("master %q: invalid vacation start %q: %w", m.Name, v.Start, err)
			}
			to, err := time.ParseInLocation("2006-01-02", v.End, loc)
			if err != nil {
				return nil, fmt.Errorf("master %q: invalid vacation end %q: %w", m.Name, v.End, err)
			}
			if to.Before(from) {
				return nil, fmt.Errorf("master %q: vacation ends before it starts", m.Name)
			}
			master.Schedule.Vacations = append(master.Schedule.Vacations, model.Vacation{From: from, To: to})
		}

		salon.Masters = append(salon.Masters, master)
	}

	return salon, nil
}

// MasterByName ищет мастера по имени
func (s *Salon) MasterByName(name string) *model.Master {
	for _, m := range s.Masters {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ServiceByName ищет услугу по названию
func (s *Salon) ServiceByName(name string) *model.Service {
	for i := range s.Services {
		if s.Services[i].Name == name {
			return &s.Services[i]
		}
	}
	return nil
}

// MasterByTelegramID ищет мастера по telegram ID
func (s *Salon) MasterByTelegramID(telegramID int64) *model.Master {
	for _, m := range s.Masters {
		if m.TelegramID == telegramID {
			return m
		}
	}
	return nil
}
