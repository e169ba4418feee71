package db

import (
	"log"

	"subtrackr/internal/models"
)

func CreateUser(username, email, passwordHash, language, preferredCurrency string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, language, preferred_currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`
	user := &models.User{}
	err := DB.Get(user, query, username, email, passwordHash, language, preferredCurrency)
	if err != nil {
		log.Printf("Error creating user %s: %v", username, err)
		return nil, err
	}
	return user, nil
}

func GetUserByID(id int64) (models.User, error) {
	user := models.User{}
	err := DB.Get(&user, "SELECT * FROM users WHERE id = $1", id)
	return user, err
}

func GetUserByUsername(username string) (models.User, error) {
	user := models.User{}
	err := DB.Get(&user, "SELECT * FROM users WHERE username = $1", username)
	return user, err
}

func GetUserByEmail(email string) (models.User, error) {
	user := models.User{}
	err := DB.Get(&user, "SELECT * FROM users WHERE email = $1", email)
	return user, err
}

func UpdateUserSettings(id int64, language, preferredCurrency string) error {
	query := `
		UPDATE users
		SET language = $1, preferred_currency = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := DB.Exec(query, language, preferredCurrency, id)
	if err != nil {
		log.Printf("Error updating settings for user %d: %v", id, err)
	}
	return err
}

func UpdateUserPassword(id int64, passwordHash string) error {
	_, err := DB.Exec("UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2", passwordHash, id)
	if err != nil {
		log.Printf("Error updating password for user %d: %v", id, err)
	}
	return err
}
