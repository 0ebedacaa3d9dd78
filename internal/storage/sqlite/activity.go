package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/doselog/internal/models"
)

func (s *Store) AddExerciseLog(e models.ExerciseLog) error {
	if err := e.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO exercise_logs (id, profile_id, activity_type, duration_minutes, calories_burned, logged_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProfileID, e.ActivityType, e.DurationMinutes, e.CaloriesBurned, formatTime(e.LoggedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert exercise log: %w", err)
	}
	return nil
}

func (s *Store) GetExerciseLogsInRange(profileID string, from, to time.Time) ([]models.ExerciseLog, error) {
	rows, err := s.db.Query(`
		SELECT id, profile_id, activity_type, duration_minutes, calories_burned, logged_at
		FROM exercise_logs
		WHERE profile_id = ? AND logged_at >= ? AND logged_at < ?
		ORDER BY logged_at`,
		profileID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ExerciseLog
	for rows.Next() {
		var e models.ExerciseLog
		var loggedAt string
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.ActivityType, &e.DurationMinutes,
			&e.CaloriesBurned, &loggedAt); err != nil {
			return nil, err
		}
		if e.LoggedAt, err = parseTime("logged_at", loggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, e)
	}
	return logs, rows.Err()
}

func (s *Store) AddFoodLog(f models.FoodLog) error {
	if err := f.Validate(); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO food_logs (id, profile_id, food_name, meal, calories, serving_size, quantity, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.ProfileID, f.FoodName, string(f.Meal), f.Calories, f.ServingSize, f.Quantity, formatTime(f.LoggedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert food log: %w", err)
	}
	return nil
}

func (s *Store) GetFoodLogsInRange(profileID string, from, to time.Time) ([]models.FoodLog, error) {
	rows, err := s.db.Query(`
		SELECT id, profile_id, food_name, meal, calories, serving_size, quantity, logged_at
		FROM food_logs
		WHERE profile_id = ? AND logged_at >= ? AND logged_at < ?
		ORDER BY logged_at`,
		profileID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.FoodLog
	for rows.Next() {
		var f models.FoodLog
		var meal, loggedAt string
		if err := rows.Scan(&f.ID, &f.ProfileID, &f.FoodName, &meal, &f.Calories,
			&f.ServingSize, &f.Quantity, &loggedAt); err != nil {
			return nil, err
		}
		f.Meal = models.Meal(meal)
		if f.LoggedAt, err = parseTime("logged_at", loggedAt); err != nil {
			return nil, err
		}
		logs = append(logs, f)
	}
	return logs, rows.Err()
}
