package petregistry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с реестром питомцев
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента реестра питомцев
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPet получает питомца по ID
func (c *Client) GetPet(ctx context.Context, petID int64) (*Pet, error) {
	url := fmt.Sprintf("%s/internal/pets/%d", c.baseURL, petID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid pet ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrPetNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var pet Pet
	if err := json.NewDecoder(resp.Body).Decode(&pet); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &pet, nil
}

// GetPetWithGracefulDegradation получает питомца с graceful degradation
// При недоступности реестра возвращает ErrServiceDegraded: запись на приём
// всё равно создается, но снапшот вида и породы будет пустым
func (c *Client) GetPetWithGracefulDegradation(ctx context.Context, petID int64) (*Pet, error) {
	c.log.Info("Fetching pet pet_id=%d", petID)

	pet, err := c.GetPet(ctx, petID)
	if err != nil {
		// Отсутствие питомца - бизнес-ошибка, пробрасываем её дальше
		if err == ErrPetNotFound {
			c.log.Info("Pet not found pet_id=%d", petID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("PetRegistry unavailable, applying graceful degradation for pet_id=%d: %v", petID, err)
		return nil, fmt.Errorf("%w: pet_id=%d, error=%v", ErrServiceDegraded, petID, err)
	}

	c.log.Info("Successfully fetched pet pet_id=%d, name=%s", petID, pet.Name)
	return pet, nil
}
