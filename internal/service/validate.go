package service

import (
	"errors"
	"fmt"
	"strings"

	"todoTracker/internal/models/task"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateTask проверяет поля задачи по тегам и правило срока.
// checkDueDate=false пропускает правило "срок не в прошлом".
func validateTask(t *task.Task, today task.Date, checkDueDate bool) error {
	if err := validate.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return NewBusinessRuleViolation("%s", strings.Join(msgs, " "))
		}
		return NewUnclassified(err, "Task validation failed.")
	}

	if t.DueDate.IsZero() {
		return NewBusinessRuleViolation("DueDate is required.")
	}
	if checkDueDate && t.DueDate.Before(today) {
		return NewBusinessRuleViolation("DueDate %s cannot be in the past.", t.DueDate)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}
