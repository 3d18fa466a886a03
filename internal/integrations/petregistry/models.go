package petregistry

// Pet модель питомца из реестра
type Pet struct {
	ID      int64   `json:"id"`
	OwnerID int64   `json:"owner_id"`
	Name    string  `json:"name"`
	Species *string `json:"species,omitempty"`
	Breed   *string `json:"breed,omitempty"`
}

// ErrorResponse модель ошибки от реестра питомцев
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
