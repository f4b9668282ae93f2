package tracker

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is returned when a record request is missing level or
// day-at-level, or carries a non-numeric value. Nothing reaches the store.
var ErrInvalidInput = errors.New("invalid input")

// Input is one "record today" request. Pointers distinguish "missing" from 0.
type Input struct {
	Level      *int `json:"level" validate:"required"`
	DayAtLevel *int `json:"day_at_level" validate:"required"`
	GoalLevel  *int `json:"goal_level,omitempty"`
}

// ParseInput converts raw form fields. Level and day-at-level must be
// integers. A goal that is blank or not a number means "no goal".
func ParseInput(level, dayAtLevel, goalLevel string) (Input, error) {
	var in Input
	var problems []string

	if v, err := parseField(level); err != nil {
		problems = append(problems, "level "+err.Error())
	} else {
		in.Level = v
	}
	if v, err := parseField(dayAtLevel); err != nil {
		problems = append(problems, "day_at_level "+err.Error())
	} else {
		in.DayAtLevel = v
	}
	if v, err := parseField(goalLevel); err == nil {
		in.GoalLevel = v
	}

	if len(problems) > 0 {
		return Input{}, fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return in, nil
}

func parseField(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("must be a whole number, got %q", s)
	}
	return &n, nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func validateInput(v *validator.Validate, in Input) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
}
