package models

import (
	"fmt"
	"strings"
	"time"
)

type ExerciseLog struct {
	ID              string    `json:"id"`
	ProfileID       string    `json:"profile_id"`
	ActivityType    string    `json:"activity_type"`
	DurationMinutes float64   `json:"duration_minutes"`
	CaloriesBurned  float64   `json:"calories_burned"`
	LoggedAt        time.Time `json:"logged_at"`
}

func (e *ExerciseLog) Validate() error {
	if strings.TrimSpace(e.ActivityType) == "" {
		return fmt.Errorf("activity type cannot be empty")
	}
	if e.DurationMinutes <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if e.CaloriesBurned < 0 {
		return fmt.Errorf("calories burned cannot be negative")
	}
	if e.LoggedAt.IsZero() {
		return fmt.Errorf("exercise timestamp cannot be empty")
	}
	return nil
}

type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealLunch     Meal = "lunch"
	MealDinner    Meal = "dinner"
	MealSnack     Meal = "snack"
)

var AllMeals = []Meal{MealBreakfast, MealLunch, MealDinner, MealSnack}

// ParseMeal resolves a meal name case-insensitively. Empty input means snack.
func ParseMeal(s string) (Meal, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MealSnack, nil
	}
	for _, m := range AllMeals {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid meal %q (expected breakfast, lunch, dinner or snack)", s)
}

// FoodLog is a manually entered food item. Calories are per serving.
type FoodLog struct {
	ID          string    `json:"id"`
	ProfileID   string    `json:"profile_id"`
	FoodName    string    `json:"food_name"`
	Meal        Meal      `json:"meal"`
	Calories    float64   `json:"calories"`
	ServingSize float64   `json:"serving_size"`
	Quantity    float64   `json:"quantity"`
	LoggedAt    time.Time `json:"logged_at"`
}

func (f *FoodLog) Validate() error {
	if strings.TrimSpace(f.FoodName) == "" {
		return fmt.Errorf("food name cannot be empty")
	}
	if _, err := ParseMeal(string(f.Meal)); err != nil {
		return err
	}
	if f.Calories < 0 {
		return fmt.Errorf("calories cannot be negative")
	}
	if f.ServingSize <= 0 || f.Quantity <= 0 {
		return fmt.Errorf("serving size and quantity must be positive")
	}
	if f.LoggedAt.IsZero() {
		return fmt.Errorf("food log timestamp cannot be empty")
	}
	return nil
}

// TotalCalories is calories * serving size * quantity.
func (f FoodLog) TotalCalories() float64 {
	return f.Calories * f.ServingSize * f.Quantity
}

// DailyTotals sums consumed and burned calories for one local date.
type DailyTotals struct {
	Date     string  `json:"date" yaml:"date"` // YYYY-MM-DD format
	Consumed float64 `json:"total_calories_consumed" yaml:"total_calories_consumed"`
	Burned   float64 `json:"total_calories_burned" yaml:"total_calories_burned"`
}

// Net is consumed minus burned.
func (d DailyTotals) Net() float64 {
	return d.Consumed - d.Burned
}
