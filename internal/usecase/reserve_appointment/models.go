package reserve_appointment

import (
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

// Request модель запроса на бронирование приёма
type Request struct {
	ClientID      int64                // ID клиента (владельца питомца)
	PetID         int64                // ID питомца
	VisitDate     time.Time            // Дата визита (без времени)
	TimeSlot      domain.TimeSlot      // Слот каталога (например, "8:00 AM - 8:30 AM")
	Service       domain.ServiceType   // Тип услуги
	PaymentMethod domain.PaymentMethod // Метод оплаты

	// Номер GCash-перевода, если клиент оплатил сразу (опционально)
	PaymentReference *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID            int64
	PetID         int64
	ClientID      int64
	VisitDate     time.Time
	TimeSlot      domain.TimeSlot
	Service       domain.ServiceType
	PaymentMethod domain.PaymentMethod
	Status        string
	PaymentStatus string

	// Денормализованные данные питомца и цены
	PetName      string
	PetSpecies   *string
	PetBreed     *string
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
