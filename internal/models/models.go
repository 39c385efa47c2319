package models

type User struct {
	ID       string
	Name     string
	Email    string
	PassHash []byte
}

// PublicUser is the profile returned on login; it never carries the hash.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

type Todo struct {
	ID        string `json:"_id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

const PurposeWelcome = "welcome"

// Message is an account event published to the mail queue.
type Message struct {
	Email   string `json:"to"`
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
}
