package user

// User представляет структуру данных пользователя.
type User struct {
	ID          int64   `db:"id"`           // ID пользователя, 0 до первого сохранения
	Email       string  `db:"email"`        // Электронная почта
	FirstName   string  `db:"first_name"`   // Имя
	LastName    string  `db:"last_name"`    // Фамилия
	BirthDate   Date    `db:"birth_date"`   // Дата рождения
	Address     *string `db:"address"`      // Адрес (необязательно)
	PhoneNumber *string `db:"phone_number"` // Телефон (необязательно)
}

// Response is the outbound shape of a user.
type Response struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	BirthDate   Date    `json:"birth_date"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
}
