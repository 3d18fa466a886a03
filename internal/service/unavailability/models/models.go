package models

import (
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

// Request модели

// ListDaysRequest запрос дней недоступности за период
type ListDaysRequest struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Response модели

// UnavailabilityDayResponse ответ с данными дня недоступности
type UnavailabilityDayResponse struct {
	ID             string  `json:"id"`
	RecordID       int64   `json:"recordId"`
	Ordinal        int     `json:"ordinal"`
	VeterinarianID int64   `json:"veterinarianId"`
	Date           string  `json:"date"` // "2026-09-15"
	IsAllDay       bool    `json:"isAllDay"`
	StartTime      *string `json:"startTime,omitempty"` // "1:00 PM"
	EndTime        *string `json:"endTime,omitempty"`
	Reason         string  `json:"reason,omitempty"`
}

// UnavailabilityDayListResponse ответ со списком дней
type UnavailabilityDayListResponse struct {
	Days []UnavailabilityDayResponse `json:"days"`
}

// Методы конвертации

// FromDomainDay конвертирует domain модель в DTO
func FromDomainDay(d *domain.UnavailabilityDay) *UnavailabilityDayResponse {
	if d == nil {
		return nil
	}

	resp := &UnavailabilityDayResponse{
		ID:             d.ID,
		RecordID:       d.RecordID,
		Ordinal:        d.Ordinal,
		VeterinarianID: d.VeterinarianID,
		Date:           d.Date.Format(domain.DateFormat),
		IsAllDay:       d.IsAllDay,
		Reason:         d.Reason,
	}

	if d.StartTime != nil {
		startStr := d.StartTime.String()
		resp.StartTime = &startStr
	}
	if d.EndTime != nil {
		endStr := d.EndTime.String()
		resp.EndTime = &endStr
	}

	return resp
}

// FromDomainDayList конвертирует список domain моделей в DTO
func FromDomainDayList(days []*domain.UnavailabilityDay) *UnavailabilityDayListResponse {
	if days == nil {
		return &UnavailabilityDayListResponse{
			Days: []UnavailabilityDayResponse{},
		}
	}

	resp := &UnavailabilityDayListResponse{
		Days: make([]UnavailabilityDayResponse, len(days)),
	}

	for i, day := range days {
		if dayResp := FromDomainDay(day); dayResp != nil {
			resp.Days[i] = *dayResp
		}
	}

	return resp
}
