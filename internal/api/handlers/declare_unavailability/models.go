package declare_unavailability

import (
	"fmt"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/internal/usecase/declare_unavailability"
	"github.com/BlackLex29/RLfursure-sub000/pkg/types"
)

// DeclareUnavailabilityRequest HTTP модель запроса на объявление недоступности
type DeclareUnavailabilityRequest struct {
	VeterinarianID int64   `json:"veterinarianId"`
	StartDate      string  `json:"startDate"` // "2026-09-15"
	EndDate        string  `json:"endDate"`
	IsAllDay       bool    `json:"isAllDay"`
	StartTime      *string `json:"startTime,omitempty"` // "1:00 PM"
	EndTime        *string `json:"endTime,omitempty"`
	Reason         string  `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP модель в модель usecase
func (r *DeclareUnavailabilityRequest) ToUseCaseRequest() (*declare_unavailability.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate %q, expected YYYY-MM-DD", r.StartDate)
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate %q, expected YYYY-MM-DD", r.EndDate)
	}

	req := &declare_unavailability.Request{
		VeterinarianID: r.VeterinarianID,
		StartDate:      startDate,
		EndDate:        endDate,
		IsAllDay:       r.IsAllDay,
		Reason:         r.Reason,
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid startTime %q, expected h:MM AM/PM", *r.StartTime)
		}
		req.StartTime = &startTime
	}
	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("invalid endTime %q, expected h:MM AM/PM", *r.EndTime)
		}
		req.EndTime = &endTime
	}

	return req, nil
}

// UnavailabilityDayResponse HTTP модель дня недоступности
type UnavailabilityDayResponse struct {
	ID             string  `json:"id"`
	Ordinal        int     `json:"ordinal"`
	VeterinarianID int64   `json:"veterinarianId"`
	Date           string  `json:"date"`
	IsAllDay       bool    `json:"isAllDay"`
	StartTime      *string `json:"startTime,omitempty"`
	EndTime        *string `json:"endTime,omitempty"`
	Reason         string  `json:"reason,omitempty"`
}

// DeclareUnavailabilityResponse HTTP модель ответа с созданной записью
type DeclareUnavailabilityResponse struct {
	RecordID       int64                       `json:"recordId"`
	VeterinarianID int64                       `json:"veterinarianId"`
	StartDate      string                      `json:"startDate"`
	EndDate        string                      `json:"endDate"`
	IsAllDay       bool                        `json:"isAllDay"`
	Reason         string                      `json:"reason,omitempty"`
	Days           []UnavailabilityDayResponse `json:"days"`
}

// FromUseCaseResponse конвертирует модель usecase в HTTP модель
func FromUseCaseResponse(resp *declare_unavailability.Response) *DeclareUnavailabilityResponse {
	if resp == nil || resp.Record == nil {
		return nil
	}

	out := &DeclareUnavailabilityResponse{
		RecordID:       resp.Record.ID,
		VeterinarianID: resp.Record.VeterinarianID,
		StartDate:      resp.Record.StartDate.Format(domain.DateFormat),
		EndDate:        resp.Record.EndDate.Format(domain.DateFormat),
		IsAllDay:       resp.Record.IsAllDay,
		Reason:         resp.Record.Reason,
		Days:           make([]UnavailabilityDayResponse, len(resp.Days)),
	}

	for i, day := range resp.Days {
		dayResp := UnavailabilityDayResponse{
			ID:             day.ID,
			Ordinal:        day.Ordinal,
			VeterinarianID: day.VeterinarianID,
			Date:           day.Date.Format(domain.DateFormat),
			IsAllDay:       day.IsAllDay,
			Reason:         day.Reason,
		}
		if day.StartTime != nil {
			startStr := day.StartTime.String()
			dayResp.StartTime = &startStr
		}
		if day.EndTime != nil {
			endStr := day.EndTime.String()
			dayResp.EndTime = &endStr
		}
		out.Days[i] = dayResp
	}

	return out
}
