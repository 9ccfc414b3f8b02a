package validators

import (
	"empresas/cmd/internal/domain/entity"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// WorkflowStatus accepts only the exact wire values of entity.WorkflowStatus.
// Letter case is significant.
func WorkflowStatus(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		log.Warnf("validator 'workflowstatus' applied to non-string type: %s", field.Kind().String())
		return false
	}
	return entity.WorkflowStatus(field.String()).Valid()
}

// Register installs the custom tags used by request contracts.
func Register(validate *validator.Validate) {
	_ = validate.RegisterValidation("workflowstatus", WorkflowStatus)
}
