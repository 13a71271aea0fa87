package models

import (
	"strings"
	"time"

	"github.com/m04kA/barber-booking/internal/domain"
)

// Request модели

// UpdateRulesRequest запрос на замену переопределений правил барбершопа
// Незаполненные поля наследуют значения по умолчанию сервиса
type UpdateRulesRequest struct {
	WorkingDays                   []string `json:"workingDays,omitempty"` // ["monday", "tuesday"] или ["1", "2"]
	StartHour                     *int     `json:"startHour,omitempty"`
	EndHour                       *int     `json:"endHour,omitempty"`
	IntervalMinutes               *int     `json:"intervalMinutes,omitempty"`
	SameDayCutoffHour             *int     `json:"sameDayCutoffHour,omitempty"`
	SameDayMinAdvanceMinutes      *int     `json:"sameDayMinAdvanceMinutes,omitempty"`
	DefaultServiceDurationMinutes *int     `json:"defaultServiceDurationMinutes,omitempty"`
}

// Response модели

// RulesResponse действующие правила барбершопа
type RulesResponse struct {
	ShopID                        int64      `json:"shopId"`
	Customized                    bool       `json:"customized"` // false - действуют значения по умолчанию
	WorkingDays                   []string   `json:"workingDays"`
	StartHour                     int        `json:"startHour"`
	EndHour                       int        `json:"endHour"`
	IntervalMinutes               int        `json:"intervalMinutes"`
	SameDayCutoffHour             int        `json:"sameDayCutoffHour"`
	SameDayMinAdvanceMinutes      int        `json:"sameDayMinAdvanceMinutes"`
	DefaultServiceDurationMinutes int        `json:"defaultServiceDurationMinutes"`
	UpdatedAt                     *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainRules собирает ответ из действующих правил и сохранённого переопределения (может быть nil)
func FromDomainRules(shopID int64, effective domain.BookingRules, override *domain.ShopRules) *RulesResponse {
	days := effective.WorkingDays.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = strings.ToLower(d.String())
	}

	resp := &RulesResponse{
		ShopID:                        shopID,
		Customized:                    override != nil,
		WorkingDays:                   names,
		StartHour:                     effective.StartHour,
		EndHour:                       effective.EndHour,
		IntervalMinutes:               effective.IntervalMinutes,
		SameDayCutoffHour:             effective.SameDayCutoffHour,
		SameDayMinAdvanceMinutes:      effective.SameDayMinAdvanceMinutes,
		DefaultServiceDurationMinutes: effective.DefaultServiceDurationMinutes,
	}

	if override != nil && !override.UpdatedAt.IsZero() {
		updatedAt := override.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
