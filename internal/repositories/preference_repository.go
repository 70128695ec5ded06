package repositories

import (
	"database/sql"

	"github.com/gurkanindibay/portfolio/internal/models"
)

type PreferenceRepository struct {
	db *sql.DB
}

func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{
		db: db,
	}
}

// Toggle stores pref.Value for the visitor, or alternate when pref.Value
// is already stored, in a single statement. It returns the stored value.
func (r *PreferenceRepository) Toggle(pref *models.Preference, alternate string) (string, error) {
	query := `
		INSERT INTO preferences (id, visitor_id, key, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (visitor_id, key)
		DO UPDATE SET
			value = CASE preferences.value WHEN excluded.value THEN $5 ELSE excluded.value END,
			updated_at = CURRENT_TIMESTAMP
		RETURNING value
	`

	var value string
	err := r.db.QueryRow(query,
		pref.ID,
		pref.VisitorID,
		pref.Key,
		pref.Value,
		alternate,
	).Scan(&value)

	return value, err
}

// Get retrieves a visitor's preference. It returns sql.ErrNoRows when unset.
func (r *PreferenceRepository) Get(visitorID, key string) (*models.Preference, error) {
	query := `
		SELECT id, visitor_id, key, value, created_at, updated_at
		FROM preferences
		WHERE visitor_id = $1 AND key = $2
	`

	pref := &models.Preference{}
	err := r.db.QueryRow(query, visitorID, key).Scan(
		&pref.ID,
		&pref.VisitorID,
		&pref.Key,
		&pref.Value,
		&pref.CreatedAt,
		&pref.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return pref, nil
}
