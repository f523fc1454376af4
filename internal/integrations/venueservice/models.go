package venueservice

// Venue модель площадки из VenueService
type Venue struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	ManagerIDs []int64 `json:"manager_ids"` // пользователи с правами управления площадкой
	Spaces     []Space `json:"spaces"`
}

// Space модель бронируемого пространства (поле, зал, комната)
type Space struct {
	ID       int64  `json:"id"`
	VenueID  int64  `json:"venue_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// Customer модель клиента из VenueService
type Customer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ErrorResponse модель ошибки от VenueService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HasManager проверяет, что пользователь является менеджером площадки
func (v *Venue) HasManager(userID int64) bool {
	for _, id := range v.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}
